package sema

import (
	"fmt"

	"lumen/internal/diag"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

// CheckEntryPoint validates the configured entry-point binding exists in
// root's scope with type `fn() -> unit|never`, no parameters, and no C
// varargs (§4.5, §7, §13). Call this only after every binding in root has
// been checked, since it inspects the already-resolved binding type.
func CheckEntryPoint(ws *symbols.Workspace, diags *diag.Bag, ctx *types.TypeContext, root *symbols.ModuleInfo, entryName string) {
	id := ws.Strings.Intern(entryName)

	bid, ok := ws.Scopes.Lookup(root.Scope, id)
	if !ok {
		reportEntryPointMissing(diags, root)
		return
	}
	binding := ws.Bindings.MustGet(bid)
	if binding.Kind != symbols.BindingFn {
		reportEntryPointBadType(diags, ws, ctx, binding)
		return
	}

	ty := ctx.Normalize(types.VarOf(binding.Type))
	if ty.Kind != types.KindFunction || ty.Function == nil {
		reportEntryPointBadType(diags, ws, ctx, binding)
		return
	}
	fn := ty.Function
	ret := types.Unit()
	if fn.Return != nil {
		ret = ctx.Normalize(*fn.Return)
	}
	okReturn := ret.Kind == types.KindUnit || ret.Kind == types.KindNever
	if !okReturn || len(fn.Params) != 0 || fn.Varargs != nil {
		reportEntryPointBadType(diags, ws, ctx, binding)
	}
}

func reportEntryPointMissing(diags *diag.Bag, root *symbols.ModuleInfo) {
	diags.Add(ptr(diag.NewError(diag.EntryPointMissing, root.AST.Span,
		"entry point function is not defined").
		WithNote(root.AST.Span, "define an entry point function, e.g. `fn main = ()`")))
}

func reportEntryPointBadType(diags *diag.Bag, ws *symbols.Workspace, ctx *types.TypeContext, binding *symbols.BindingInfo) {
	name, _ := ws.Strings.Lookup(binding.Name)
	diags.Add(ptr(diag.NewError(diag.EntryPointBadType, binding.Span,
		fmt.Sprintf("entry point function `%s` has type `%s`, expected `fn() -> ()`",
			name, types.Display(ctx, types.VarOf(binding.Type))))))
}
