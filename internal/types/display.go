package types

import (
	"fmt"
	"strings"
)

// Display renders t the way diagnostics quote types in messages, e.g.
// "&mut [i32; 4]" or "fn(x: i32) -> bool". Var/Infer placeholders that
// haven't been bound yet render as "{unknown}"/"{integer}"/"{float}".
func Display(ctx *TypeContext, t Type) string {
	t = ctx.Normalize(t)
	switch t.Kind {
	case KindInvalid:
		return "{invalid}"
	case KindUnit:
		return "()"
	case KindNever:
		return "!"
	case KindBool:
		return "bool"
	case KindInt:
		return "i" + widthName(t.Width)
	case KindUint:
		return "u" + widthName(t.Width)
	case KindFloat:
		return "f" + widthName(t.Width)
	case KindStr:
		return "str"
	case KindAnyType:
		return "anytype"
	case KindPointer:
		if t.Mutable {
			return "&mut " + Display(ctx, *t.Elem)
		}
		return "&" + Display(ctx, *t.Elem)
	case KindSlice:
		return "[]" + Display(ctx, *t.Elem)
	case KindArray:
		return fmt.Sprintf("[%s; %d]", Display(ctx, *t.Elem), t.Count)
	case KindTuple:
		parts := make([]string, len(t.Tuple))
		for i, e := range t.Tuple {
			parts[i] = Display(ctx, e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KindStruct:
		return displayStruct(ctx, t.Struct)
	case KindFunction:
		return displayFunction(ctx, t.Function)
	case KindModule:
		return fmt.Sprintf("module#%d", t.Module)
	case KindVar, KindInfer:
		switch ctx.MustLookup(t.Var).Kind {
		case BoundAnyInt:
			return "{integer}"
		case BoundAnyFloat:
			return "{float}"
		default:
			return "{unknown}"
		}
	default:
		return "{?}"
	}
}

func widthName(w Width) string {
	switch w {
	case Width8:
		return "8"
	case Width16:
		return "16"
	case Width32:
		return "32"
	case Width64:
		return "64"
	default:
		return "size"
	}
}

func displayStruct(ctx *TypeContext, st *StructType) string {
	if st == nil {
		return "struct {}"
	}
	if st.Name != 0 && ctx.Strings != nil {
		if name, ok := ctx.Strings.Lookup(st.Name); ok {
			return name
		}
	}
	parts := make([]string, len(st.Field))
	for i, f := range st.Field {
		name := "_"
		if ctx.Strings != nil {
			if n, ok := ctx.Strings.Lookup(f.Name); ok {
				name = n
			}
		}
		parts[i] = name + ": " + Display(ctx, f.Type)
	}
	return "struct { " + strings.Join(parts, ", ") + " }"
}

func displayFunction(ctx *TypeContext, fn *FunctionType) string {
	if fn == nil {
		return "fn()"
	}
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		name := "_"
		if ctx.Strings != nil {
			if n, ok := ctx.Strings.Lookup(p.Name); ok {
				name = n
			}
		}
		parts[i] = name + ": " + Display(ctx, p.Type)
	}
	sig := "fn(" + strings.Join(parts, ", ")
	if fn.Varargs != nil {
		sig += ", ..."
	}
	sig += ")"
	if fn.Return != nil {
		sig += " -> " + Display(ctx, *fn.Return)
	}
	return sig
}
