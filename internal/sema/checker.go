package sema

import (
	"fmt"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/types"
	"lumen/internal/vm"
)

// Checker lowers one module's checked items into HIR, running unification,
// coercion and cast-admissibility checks as it goes and dispatching into
// the compile-time VM for constant folding and `static {}` blocks.
type Checker struct {
	WS            *symbols.Workspace
	Ctx           *types.TypeContext
	Nodes         *hir.Nodes
	Cache         *hir.Cache
	Diags         *diag.Bag
	Module        types.ModuleID
	Tree          *ast.Module
	Res           *Resolver
	WordSizeBytes int

	// StructTypes holds the resolved shape of every struct item checked so
	// far in the whole program, keyed by its declaring binding.
	StructTypes map[symbols.BindingID]*types.StructType

	locals  []hir.LocalSlot
	localOf map[symbols.BindingID]hir.LocalID
}

// NewChecker creates a Checker for one module, sharing program-wide state
// (types, symbol table, struct shapes, diagnostics) with its siblings.
func NewChecker(ws *symbols.Workspace, ctx *types.TypeContext, nodes *hir.Nodes, cache *hir.Cache, diags *diag.Bag, module types.ModuleID, tree *ast.Module, res *Resolver, structTypes map[symbols.BindingID]*types.StructType, wordSizeBytes int) *Checker {
	return &Checker{
		WS: ws, Ctx: ctx, Nodes: nodes, Cache: cache, Diags: diags,
		Module: module, Tree: tree, Res: res, StructTypes: structTypes,
		WordSizeBytes: wordSizeBytes,
	}
}

// CheckStruct resolves a struct item's field types and records its shape so
// later type expressions naming it can be resolved.
func (c *Checker) CheckStruct(scope symbols.ScopeID, itemID ast.ItemID, binding symbols.BindingID) {
	st, ok := c.Tree.ItemData.Struct(itemID)
	if !ok {
		return
	}
	fields := make([]types.StructField, len(st.Fields))
	for i, fid := range st.Fields {
		decl, ok := c.Tree.ItemData.Field(fid)
		if !ok {
			continue
		}
		fields[i] = types.StructField{
			Name: decl.Name,
			Type: c.resolveTypeExpr(scope, decl.Type),
			Span: decl.Span,
		}
	}
	kind := types.StructNormal
	switch {
	case st.Packed:
		kind = types.StructPacked
	case st.Union:
		kind = types.StructUnion
	}
	c.StructTypes[binding] = &types.StructType{
		ID:    uint32(binding),
		Name:  st.Name,
		Kind:  kind,
		Field: fields,
	}
}

// CheckExtern resolves one `extern` member's signature into a Function
// type and installs it on its binding, so calls into it type-check the
// same way a call to an ordinary fn does (§4.8: extern members are call
// targets the VM resolves dynamically by name, not by pointer).
func (c *Checker) CheckExtern(scope symbols.ScopeID, memberID ast.ExternMemberID, binding symbols.BindingID) {
	member, ok := c.Tree.ItemData.ExternMember(memberID)
	if !ok {
		return
	}
	params := make([]types.FnParam, 0, len(member.Params))
	for _, pid := range member.Params {
		p, ok := c.Tree.ItemData.Param(pid)
		if !ok {
			continue
		}
		params = append(params, types.FnParam{Name: p.Name, Type: c.resolveTypeExpr(scope, p.Type)})
	}
	var returnTy types.Type
	if member.Return.IsValid() {
		returnTy = c.resolveTypeExpr(scope, member.Return)
	} else {
		returnTy = types.Unit()
	}
	fnTy := types.Function(&types.FunctionType{Params: params, Return: &returnTy})
	c.WS.Bindings.SetType(binding, c.Ctx.Bound(fnTy, member.Span))
}

// CheckGlobal type-checks one top-level let/const initializer exactly once,
// using hir.Cache to detect a binding that depends on itself (§4.5).
func (c *Checker) CheckGlobal(scope symbols.ScopeID, binding symbols.BindingID, valueExpr ast.ExprID, declaredType ast.TypeExprID, span source.Span) {
	entry, already := c.Cache.Begin(binding)
	if already {
		if entry.State == hir.InProgress {
			c.Diags.Add(ptr(diag.NewError(diag.NameCycle, span,
				"this binding's initializer depends on itself")))
		}
		return
	}

	var expected types.Type
	hasAnnotation := declaredType.IsValid()
	if hasAnnotation {
		expected = c.resolveTypeExpr(scope, declaredType)
	} else {
		expected = types.VarOf(c.Ctx.Var(span))
	}

	var node hir.NodeID = hir.NoNodeID
	if valueExpr.IsValid() {
		n, got := c.checkExpr(scope, valueExpr)
		node = n
		if hasAnnotation {
			if res, unified := types.Coerce(c.Ctx, c.WordSizeBytes, expected, got); res == types.NoCoercion {
				c.reportMismatch(span, expected, got)
			} else {
				expected = unified
			}
		} else {
			expected = got
		}
	}

	expected = c.Ctx.MakeConcrete(expected)
	typeID := c.Ctx.Bound(expected, span)
	c.WS.Bindings.SetType(binding, typeID)
	c.Cache.Finish(binding, typeID, node)
}

// CheckFunction type-checks a function's parameters and body, returning a
// fully lowered hir.Func.
func (c *Checker) CheckFunction(moduleScope symbols.ScopeID, fnID ast.ItemID, binding symbols.BindingID) *hir.Func {
	fn, ok := c.Tree.ItemData.Fn(fnID)
	if !ok {
		return nil
	}

	c.locals = nil
	c.localOf = make(map[symbols.BindingID]hir.LocalID)
	fnScope := c.WS.Scopes.New(symbols.LevelFunction, moduleScope, uint32(c.Module))

	fnParams := make([]types.FnParam, 0, len(fn.Params))
	for _, pid := range fn.Params {
		p, ok := c.Tree.ItemData.Param(pid)
		if !ok {
			continue
		}
		paramTy := c.resolveTypeExpr(fnScope, p.Type)
		fnParams = append(fnParams, types.FnParam{Name: p.Name, Type: paramTy})
		paramBinding := c.WS.Bindings.New(symbols.BindingInfo{
			Name: p.Name, Kind: symbols.BindingParam, Level: symbols.LevelFunction,
			Module: c.Module, Visibility: ast.VisPrivate,
			Type: c.Ctx.Bound(paramTy, p.Span), Span: p.Span,
			Decl: symbols.BindingDecl{Module: c.Module, Item: fnID, Param: pid},
		})
		c.WS.Scopes.Declare(fnScope, p.Name, paramBinding)
		c.declareLocal(paramBinding, p.Name, paramTy)
	}
	params := len(c.locals)

	var returnTy types.Type
	if fn.Return.IsValid() {
		returnTy = c.resolveTypeExpr(fnScope, fn.Return)
	} else {
		returnTy = types.Unit()
	}

	bodyNode, bodyTy := c.checkExpr(fnScope, fn.Body)
	if res, _ := types.Coerce(c.Ctx, c.WordSizeBytes, returnTy, bodyTy); res == types.NoCoercion {
		c.reportMismatch(fn.Span, returnTy, bodyTy)
	}

	concreteReturn := c.Ctx.MakeConcrete(returnTy)
	retID := c.Ctx.Bound(concreteReturn, fn.Span)

	// A source-level `fn` item is never C-variadic; only `extern` members
	// declare varargs (§4.8 FFI).
	fnTy := types.Function(&types.FunctionType{Params: fnParams, Return: &concreteReturn, Varargs: nil})
	c.WS.Bindings.SetType(binding, c.Ctx.Bound(fnTy, fn.Span))

	return &hir.Func{
		Name:   fn.Name,
		Locals: c.locals,
		Params: params,
		Return: retID,
		Body:   bodyNode,
		Span:   fn.Span,
	}
}

func (c *Checker) declareLocal(binding symbols.BindingID, name source.StringID, ty types.Type) hir.LocalID {
	id := hir.LocalID(len(c.locals))
	c.locals = append(c.locals, hir.LocalSlot{Name: name, Type: c.Ctx.Bound(ty, source.Span{})})
	c.localOf[binding] = id
	return id
}

// checkExpr lowers one ast.Expr to an hir.Node, returning the node id and
// its (possibly still-inferring) type.
func (c *Checker) checkExpr(scope symbols.ScopeID, id ast.ExprID) (hir.NodeID, types.Type) {
	expr, ok := c.Tree.Exprs.Get(id)
	if !ok {
		return hir.NoNodeID, types.Unit()
	}

	switch expr.Kind {
	case ast.ExprIntLit:
		v := c.Ctx.AnyInt(expr.Span)
		n := c.Nodes.New(hir.Node{Kind: hir.NodeConst, Span: expr.Span, Value: hir.Int(int64(expr.IntValue)), Type: v})
		return n, types.InferOf(v, types.InferAnyInt)

	case ast.ExprFloatLit:
		v := c.Ctx.AnyFloat(expr.Span)
		n := c.Nodes.New(hir.Node{Kind: hir.NodeConst, Span: expr.Span, Value: hir.Float(expr.FloatValue), Type: v})
		return n, types.InferOf(v, types.InferAnyFloat)

	case ast.ExprBoolLit:
		t := types.Bool()
		n := c.Nodes.New(hir.Node{Kind: hir.NodeConst, Span: expr.Span, Value: hir.Bool(expr.BoolValue), Type: c.Ctx.Bound(t, expr.Span)})
		return n, t

	case ast.ExprStrLit:
		t := types.Str()
		n := c.Nodes.New(hir.Node{Kind: hir.NodeConst, Span: expr.Span, Value: hir.Str(expr.StrValue), Type: c.Ctx.Bound(t, expr.Span)})
		return n, t

	case ast.ExprIdent:
		return c.checkIdent(scope, expr)

	case ast.ExprBinary:
		return c.checkBinary(scope, expr)

	case ast.ExprUnary:
		return c.checkUnary(scope, expr)

	case ast.ExprCall:
		return c.checkCall(scope, expr)

	case ast.ExprMemberAccess:
		return c.checkMemberAccess(scope, expr)

	case ast.ExprIndex:
		return c.checkIndex(scope, expr)

	case ast.ExprCast:
		return c.checkCast(scope, expr)

	case ast.ExprBlock:
		return c.checkBlock(scope, expr)

	case ast.ExprIf:
		return c.checkIf(scope, expr)

	case ast.ExprStaticEval:
		return c.checkStaticEval(scope, expr)

	case ast.ExprStructLit:
		return c.checkStructLit(scope, expr)

	case ast.ExprTupleLit:
		return c.checkTupleLit(scope, expr)

	case ast.ExprArrayLit:
		return c.checkArrayLit(scope, expr)

	default:
		return hir.NoNodeID, types.Unit()
	}
}

func (c *Checker) checkIdent(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	binding, ok := c.Res.LookupQualified(scope, expr.Name)
	if !ok {
		return hir.NoNodeID, types.AnyType()
	}
	info := c.WS.Bindings.MustGet(binding)

	if local, isLocal := c.localOf[binding]; isLocal {
		n := c.Nodes.New(hir.Node{Kind: hir.NodeLocalRef, Span: expr.Span, Local: local, Type: info.Type})
		return n, c.Ctx.Normalize(types.VarOf(info.Type))
	}

	n := c.Nodes.New(hir.Node{Kind: hir.NodeBindingRef, Span: expr.Span, Binding: binding, Type: info.Type})
	return n, c.Ctx.Normalize(types.VarOf(info.Type))
}

func (c *Checker) checkBinary(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	lhsNode, lhsTy := c.checkExpr(scope, expr.Lhs)
	rhsNode, rhsTy := c.checkExpr(scope, expr.Rhs)

	resultTy := lhsTy
	switch expr.BinOp {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpAnd, ast.OpOr:
		if res, _ := types.Coerce(c.Ctx, c.WordSizeBytes, lhsTy, rhsTy); res == types.NoCoercion {
			c.reportMismatch(expr.Span, lhsTy, rhsTy)
		}
		resultTy = types.Bool()
	default:
		res, unified := types.Coerce(c.Ctx, c.WordSizeBytes, lhsTy, rhsTy)
		if res == types.NoCoercion {
			c.reportMismatch(expr.Span, lhsTy, rhsTy)
			unified = lhsTy
		}
		resultTy = unified
	}

	n := c.Nodes.New(hir.Node{
		Kind: hir.NodeBinary, Span: expr.Span, BinOp: expr.BinOp,
		Lhs: lhsNode, Rhs: rhsNode, Type: c.Ctx.Bound(resultTy, expr.Span),
	})
	return n, resultTy
}

func (c *Checker) checkUnary(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	operandNode, operandTy := c.checkExpr(scope, expr.Operand)

	resultTy := operandTy
	switch expr.UnOp {
	case ast.OpNot:
		resultTy = types.Bool()
	case ast.OpAddr:
		resultTy = types.Pointer(operandTy, expr.Mutable)
	case ast.OpDeref:
		norm := c.Ctx.Normalize(operandTy)
		if norm.Kind == types.KindPointer && norm.Elem != nil {
			resultTy = *norm.Elem
		}
	}

	n := c.Nodes.New(hir.Node{
		Kind: hir.NodeUnary, Span: expr.Span, UnOp: expr.UnOp, Mutable: expr.Mutable,
		Operand: operandNode, Type: c.Ctx.Bound(resultTy, expr.Span),
	})
	return n, resultTy
}

func (c *Checker) checkCall(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	calleeNode, calleeTy := c.checkExpr(scope, expr.Callee)
	calleeGround := c.Ctx.Normalize(calleeTy)

	args := make([]hir.NodeID, len(expr.Args))
	argTypes := make([]types.Type, len(expr.Args))
	for i, a := range expr.Args {
		n, t := c.checkExpr(scope, a)
		args[i] = n
		argTypes[i] = t
	}

	resultTy := types.Unit()
	if calleeGround.Kind == types.KindFunction && calleeGround.Function != nil {
		fn := calleeGround.Function
		for i, param := range fn.Params {
			if i >= len(argTypes) {
				break
			}
			if res, _ := types.Coerce(c.Ctx, c.WordSizeBytes, param.Type, argTypes[i]); res == types.NoCoercion {
				c.reportMismatch(expr.Span, param.Type, argTypes[i])
			}
		}
		if fn.Varargs == nil && len(expr.Args) != len(fn.Params) {
			c.Diags.Add(ptr(diag.NewError(diag.TypeVarargMismatch, expr.Span,
				fmt.Sprintf("expected %d arguments, got %d", len(fn.Params), len(expr.Args)))))
		}
		if fn.Return != nil {
			resultTy = *fn.Return
		}
	}

	n := c.Nodes.New(hir.Node{
		Kind: hir.NodeCall, Span: expr.Span, Callee: calleeNode, Args: args,
		Type: c.Ctx.Bound(resultTy, expr.Span),
	})
	return n, resultTy
}

func (c *Checker) checkMemberAccess(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	baseNode, baseTy := c.checkExpr(scope, expr.Base)
	ground := c.Ctx.Normalize(baseTy)

	resultTy := types.AnyType()
	if ground.Kind == types.KindStruct && ground.Struct != nil {
		if t, found := lookupStructField(ground.Struct, expr.Field); found {
			resultTy = t
		} else {
			name, _ := c.WS.Strings.Lookup(expr.Field)
			c.Diags.Add(ptr(diag.NewError(diag.UnpackFieldNotFound, expr.Span,
				fmt.Sprintf("struct %s has no field %q", structName(c.WS.Strings, ground.Struct), name))))
		}
	}

	n := c.Nodes.New(hir.Node{
		Kind: hir.NodeMemberAccess, Span: expr.Span, Operand: baseNode,
		FieldName: expr.Field, Type: c.Ctx.Bound(resultTy, expr.Span),
	})
	return n, resultTy
}

func (c *Checker) checkIndex(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	baseNode, baseTy := c.checkExpr(scope, expr.Base)
	indexNode, _ := c.checkExpr(scope, expr.Index)
	ground := c.Ctx.Normalize(baseTy)

	resultTy := types.AnyType()
	if (ground.Kind == types.KindSlice || ground.Kind == types.KindArray) && ground.Elem != nil {
		resultTy = *ground.Elem
	}

	n := c.Nodes.New(hir.Node{
		Kind: hir.NodeIndex, Span: expr.Span, Operand: baseNode, Index: indexNode,
		Type: c.Ctx.Bound(resultTy, expr.Span),
	})
	return n, resultTy
}

func (c *Checker) checkCast(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	operandNode, operandTy := c.checkExpr(scope, expr.Operand)
	target := c.resolveTypeExpr(scope, expr.Target)
	target = c.Ctx.MakeConcrete(target)

	if !types.CanCast(c.Ctx, c.WordSizeBytes, operandTy, target) {
		c.Diags.Add(ptr(diag.NewError(diag.TypeIllegalCast, expr.Span,
			fmt.Sprintf("cannot cast %s to %s", types.Display(c.Ctx, operandTy), types.Display(c.Ctx, target)))))
	}

	n := c.Nodes.New(hir.Node{
		Kind: hir.NodeCast, Span: expr.Span, Operand: operandNode,
		CastTarget: target, Type: c.Ctx.Bound(target, expr.Span),
	})
	return n, target
}

func (c *Checker) checkBlock(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	blockScope := c.WS.Scopes.New(symbols.LevelBlock, scope, uint32(c.Module))
	elems := make([]hir.NodeID, len(expr.Stmts))
	resultTy := types.Unit()
	for i, s := range expr.Stmts {
		n, t := c.checkExpr(blockScope, s)
		elems[i] = n
		resultTy = t
	}
	n := c.Nodes.New(hir.Node{
		Kind: hir.NodeSequence, Span: expr.Span, Elements: elems,
		Type: c.Ctx.Bound(resultTy, expr.Span),
	})
	return n, resultTy
}

func (c *Checker) checkIf(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	condNode, condTy := c.checkExpr(scope, expr.Cond)
	if types.Unify(c.Ctx, condTy, types.Bool()) != nil {
		c.reportMismatch(expr.Span, types.Bool(), condTy)
	}

	thenNode, thenTy := c.checkExpr(scope, expr.Then)
	resultTy := thenTy
	elseNode := hir.NoNodeID
	if expr.Else.IsValid() {
		var elseTy types.Type
		elseNode, elseTy = c.checkExpr(scope, expr.Else)
		if res, unified := types.Coerce(c.Ctx, c.WordSizeBytes, thenTy, elseTy); res == types.NoCoercion {
			c.reportMismatch(expr.Span, thenTy, elseTy)
		} else {
			resultTy = unified
		}
	} else {
		resultTy = types.Unit()
	}

	n := c.Nodes.New(hir.Node{
		Kind: hir.NodeIf, Span: expr.Span, Cond: condNode, Then: thenNode, Else: elseNode,
		Type: c.Ctx.Bound(resultTy, expr.Span),
	})
	return n, resultTy
}

// checkStaticEval fully evaluates its body through the compile-time VM
// (§4.8) and folds the result into a single NodeConst — static blocks never
// reach the runtime representation.
func (c *Checker) checkStaticEval(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	bodyNode, bodyTy := c.checkExpr(scope, expr.Operand)

	chunk, err := vm.Compile(&vm.CompileContext{Nodes: c.Nodes}, bodyNode, 0)
	if err != nil {
		c.Diags.Add(ptr(diag.NewError(diag.ConstNotConstant, expr.Span, err.Error())))
		return bodyNode, bodyTy
	}
	machine := vm.New(nil, vm.NewRegistry())
	value, err := machine.Run(chunk)
	if err != nil {
		c.Diags.Add(ptr(diag.NewError(diag.ConstNotConstant, expr.Span, err.Error())))
		return bodyNode, bodyTy
	}

	concrete := c.Ctx.MakeConcrete(bodyTy)
	n := c.Nodes.New(hir.Node{Kind: hir.NodeConst, Span: expr.Span, Value: value, Type: c.Ctx.Bound(concrete, expr.Span)})
	return n, concrete
}

func (c *Checker) checkStructLit(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	binding, ok := c.Res.LookupQualified(scope, expr.StructName)
	var st *types.StructType
	if ok {
		st = c.StructTypes[binding]
	}

	fields := make([]hir.Field, len(expr.Fields))
	for i, fid := range expr.Fields {
		f, ok := c.Tree.Exprs.Field(fid)
		if !ok {
			continue
		}
		valueNode, valueTy := c.checkExpr(scope, f.Value)
		if st != nil {
			if expected, found := lookupStructField(st, f.Name); found {
				if res, _ := types.Coerce(c.Ctx, c.WordSizeBytes, expected, valueTy); res == types.NoCoercion {
					c.reportMismatch(f.Span, expected, valueTy)
				}
			} else {
				name, _ := c.WS.Strings.Lookup(f.Name)
				c.Diags.Add(ptr(diag.NewError(diag.UnpackFieldNotFound, f.Span,
					fmt.Sprintf("struct %s has no field %q", structName(c.WS.Strings, st), name))))
			}
		}
		fields[i] = hir.Field{Name: f.Name, Value: valueNode}
	}

	resultTy := types.AnyType()
	if st != nil {
		resultTy = types.Struct(st)
	}
	n := c.Nodes.New(hir.Node{
		Kind: hir.NodeStructLit, Span: expr.Span, StructFields: fields, Type: c.Ctx.Bound(resultTy, expr.Span),
	})
	return n, resultTy
}

func (c *Checker) checkTupleLit(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	elems := make([]hir.NodeID, len(expr.Elements))
	elemTypes := make([]types.Type, len(expr.Elements))
	for i, e := range expr.Elements {
		n, t := c.checkExpr(scope, e)
		elems[i] = n
		elemTypes[i] = t
	}
	resultTy := types.Tuple(elemTypes...)
	n := c.Nodes.New(hir.Node{Kind: hir.NodeTupleLit, Span: expr.Span, Elements: elems, Type: c.Ctx.Bound(resultTy, expr.Span)})
	return n, resultTy
}

func (c *Checker) checkArrayLit(scope symbols.ScopeID, expr *ast.Expr) (hir.NodeID, types.Type) {
	elems := make([]hir.NodeID, len(expr.Elements))
	var elemTy types.Type = types.AnyType()
	for i, e := range expr.Elements {
		n, t := c.checkExpr(scope, e)
		elems[i] = n
		if i == 0 {
			elemTy = t
		} else if res, unified := types.Coerce(c.Ctx, c.WordSizeBytes, elemTy, t); res != types.NoCoercion {
			elemTy = unified
		} else {
			c.reportMismatch(expr.Span, elemTy, t)
		}
	}
	resultTy := types.Array(elemTy, uint32(len(expr.Elements)))
	n := c.Nodes.New(hir.Node{Kind: hir.NodeArrayLit, Span: expr.Span, Elements: elems, Type: c.Ctx.Bound(resultTy, expr.Span)})
	return n, resultTy
}

func (c *Checker) resolveTypeExpr(scope symbols.ScopeID, id ast.TypeExprID) types.Type {
	if !id.IsValid() {
		return types.Unit()
	}
	te, ok := c.Tree.TypeExprs.Get(id)
	if !ok {
		return types.AnyType()
	}
	switch te.Kind {
	case ast.TypeExprUnit:
		return types.Unit()
	case ast.TypeExprAnyType:
		return types.AnyType()
	case ast.TypeExprName:
		return c.resolveNamedType(scope, te.Name)
	case ast.TypeExprPointer:
		return types.Pointer(c.resolveTypeExpr(scope, te.Elem), te.Mutable)
	case ast.TypeExprSlice:
		return types.Slice(c.resolveTypeExpr(scope, te.Elem))
	case ast.TypeExprArray:
		length := c.constEvalArrayLength(scope, te.Length)
		return types.Array(c.resolveTypeExpr(scope, te.Elem), length)
	case ast.TypeExprTuple:
		elems := make([]types.Type, len(te.Elements))
		for i, e := range te.Elements {
			elems[i] = c.resolveTypeExpr(scope, e)
		}
		return types.Tuple(elems...)
	case ast.TypeExprFunction:
		return c.resolveFunctionType(scope, te)
	default:
		return types.AnyType()
	}
}

func (c *Checker) resolveFunctionType(scope symbols.ScopeID, te *ast.TypeExpr) types.Type {
	params := make([]types.FnParam, len(te.Params))
	for i, p := range te.Params {
		name := source.NoStringID
		if i < len(te.ParamNames) {
			name = te.ParamNames[i]
		}
		params[i] = types.FnParam{Name: name, Type: c.resolveTypeExpr(scope, p)}
	}
	ret := types.Unit()
	if te.Return.IsValid() {
		ret = c.resolveTypeExpr(scope, te.Return)
	}
	var varargs *types.Vararg
	if te.Varargs {
		vt := types.AnyType()
		if te.VarargType.IsValid() {
			vt = c.resolveTypeExpr(scope, te.VarargType)
		}
		varargs = &types.Vararg{Type: &vt}
	}
	return types.Function(&types.FunctionType{Params: params, Return: &ret, Varargs: varargs})
}

func (c *Checker) resolveNamedType(scope symbols.ScopeID, qn ast.QualifiedName) types.Type {
	if len(qn.Segments) == 1 {
		name, _ := c.WS.Strings.Lookup(qn.Segments[0])
		if t, ok := primitiveType(c.Ctx, name); ok {
			return t
		}
	}
	binding, ok := c.Res.LookupQualified(scope, qn)
	if !ok {
		return types.AnyType()
	}
	info := c.WS.Bindings.MustGet(binding)
	if info.Kind != symbols.BindingStruct {
		c.Diags.Add(ptr(diag.NewError(diag.NameNotAType, qn.Span, "name does not refer to a type")))
		return types.AnyType()
	}
	if st, found := c.StructTypes[binding]; found {
		return types.Struct(st)
	}
	return types.AnyType()
}

// constEvalArrayLength evaluates an array type's length expression through
// the compile-time VM; array lengths must always be known at build time.
func (c *Checker) constEvalArrayLength(scope symbols.ScopeID, id ast.ExprID) uint32 {
	if !id.IsValid() {
		return 0
	}
	node, _ := c.checkExpr(scope, id)
	chunk, err := vm.Compile(&vm.CompileContext{Nodes: c.Nodes}, node, 0)
	if err != nil {
		return 0
	}
	value, err := vm.New(nil, nil).Run(chunk)
	if err != nil {
		return 0
	}
	switch value.Kind {
	case hir.ValueInt:
		return uint32(value.Int64)
	case hir.ValueUint:
		return uint32(value.Uint64)
	default:
		return 0
	}
}

func (c *Checker) reportMismatch(span source.Span, expected, got types.Type) {
	c.Diags.Add(ptr(diag.NewError(diag.TypeMismatch, span,
		fmt.Sprintf("expected %s, got %s", types.Display(c.Ctx, expected), types.Display(c.Ctx, got)))))
}

func primitiveType(ctx *types.TypeContext, name string) (types.Type, bool) {
	var id types.TypeID
	switch name {
	case "unit":
		id = ctx.Common.Unit
	case "bool":
		id = ctx.Common.Bool
	case "int":
		id = ctx.Common.Int
	case "uint":
		id = ctx.Common.Uint
	case "float":
		id = ctx.Common.Float
	case "i8":
		id = ctx.Common.I8
	case "i16":
		id = ctx.Common.I16
	case "i32":
		id = ctx.Common.I32
	case "i64":
		id = ctx.Common.I64
	case "u8":
		id = ctx.Common.U8
	case "u16":
		id = ctx.Common.U16
	case "u32":
		id = ctx.Common.U32
	case "u64":
		id = ctx.Common.U64
	case "f32":
		id = ctx.Common.F32
	case "f64":
		id = ctx.Common.F64
	case "str":
		id = ctx.Common.Str
	default:
		return types.Type{}, false
	}
	return ctx.MustLookup(id).Bound, true
}
