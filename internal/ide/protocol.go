// Package ide implements the line-delimited JSON protocol an editor
// integration drives: one request produces one JSON value written to
// stdout, consumed by `lumen ide` (SPEC_FULL.md §13). Each exported
// function here corresponds to one editor action: dump diagnostics, hover
// over an offset, jump to a binding's definition, or list inline type
// hints for a module.
package ide

import (
	"encoding/json"
	"io"

	"lumen/internal/diag"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

// Position is a 1-based line/column, matching source.LineCol.
type Position struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// Span is a source range rendered with a file path instead of an opaque
// FileID, since the editor on the other end of the protocol has no access
// to this process's FileSet.
type Span struct {
	File  string   `json:"file"`
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func spanOf(files *source.FileSet, s source.Span) Span {
	file := files.Get(s.File)
	path := ""
	if file != nil {
		path = file.Path
	}
	start, end := files.Resolve(s)
	return Span{
		File:  path,
		Start: Position{Line: start.Line, Col: start.Col},
		End:   Position{Line: end.Line, Col: end.Col},
	}
}

// Object is the tagged union every protocol line serializes as. Exactly
// one of Diagnostic/Hint/Hover/Definition is non-nil, matching how the
// editor discriminates on Kind.
type Object struct {
	Kind       string      `json:"kind"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
	Hint       *Hint       `json:"hint,omitempty"`
	Hover      *Hover      `json:"hover,omitempty"`
	Definition *Span       `json:"definition,omitempty"`
}

// Diagnostic is one reported issue, projected from diag.Diagnostic into
// the editor-facing shape: a severity, the primary span, and a rendered
// message (notes are folded into the message body, one per line, the way
// the original tool concatenates a diagnostic's message with its first
// label).
type Diagnostic struct {
	Severity string `json:"severity"`
	Span     Span   `json:"span"`
	Message  string `json:"message"`
}

// Hint is an inline type annotation for a binding whose type was not
// written out explicitly in the source (§13: "inline type hints").
type Hint struct {
	Span  Span   `json:"span"`
	Label string `json:"label"`
}

// Hover is the type displayed when the cursor rests on an identifier.
type Hover struct {
	Contents string `json:"contents"`
}

func write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

func writeNull(w io.Writer) error {
	_, err := io.WriteString(w, "null\n")
	return err
}

// WriteDiagnostics emits one Object per diagnostic in diags that carries a
// non-empty primary span, skipping span-less internal diagnostics the way
// the original filters out labels with no span.
func WriteDiagnostics(w io.Writer, diags *diag.Bag, files *source.FileSet) error {
	for _, d := range diags.Items() {
		if d.Primary == (source.Span{}) {
			continue
		}
		message := d.Message
		for _, note := range d.Notes {
			message += "\n" + note.Msg
		}
		obj := Object{
			Kind: "diagnostic",
			Diagnostic: &Diagnostic{
				Severity: d.Severity.String(),
				Span:     spanOf(files, d.Primary),
				Message:  message,
			},
		}
		if err := write(w, obj); err != nil {
			return err
		}
	}
	return nil
}

// WriteHints emits one Object per user-defined binding in module whose
// type is already resolved, giving the editor enough to render an inline
// `: T` annotation next to each let/const/param (§13).
func WriteHints(w io.Writer, ws *symbols.Workspace, ctx *types.TypeContext, files *source.FileSet, module types.ModuleID) error {
	for i := 1; i < ws.Bindings.Count(); i++ {
		info, ok := ws.Bindings.Get(symbols.BindingID(i))
		if !ok || info.Module != module {
			continue
		}
		if info.Kind != symbols.BindingLet && info.Kind != symbols.BindingConst && info.Kind != symbols.BindingParam {
			continue
		}
		if info.Type == types.NoTypeID {
			continue
		}
		name, _ := ws.Strings.Lookup(info.Name)
		label := name + ": " + types.Display(ctx, types.VarOf(info.Type))
		obj := Object{Kind: "hint", Hint: &Hint{Span: spanOf(files, info.Span), Label: label}}
		if err := write(w, obj); err != nil {
			return err
		}
	}
	return nil
}

func containsOffset(s source.Span, file source.FileID, offset uint32) bool {
	return s.File == file && offset >= s.Start && offset <= s.End
}

// WriteHover writes the type of the binding whose declaration span
// contains (file, offset), or the JSON literal null if no binding
// matches.
func WriteHover(w io.Writer, ws *symbols.Workspace, ctx *types.TypeContext, file source.FileID, offset uint32) error {
	for i := 1; i < ws.Bindings.Count(); i++ {
		info, ok := ws.Bindings.Get(symbols.BindingID(i))
		if !ok {
			continue
		}
		if !containsOffset(info.Span, file, offset) {
			continue
		}
		contents := "{unresolved}"
		if info.Type != types.NoTypeID {
			contents = types.Display(ctx, types.VarOf(info.Type))
		}
		return write(w, Object{Kind: "hover", Hover: &Hover{Contents: contents}})
	}
	return writeNull(w)
}

// WriteGotoDefinition writes the declaration span of the binding whose
// span contains (file, offset), or null if no binding matches (§13:
// "goto-definition").
func WriteGotoDefinition(w io.Writer, ws *symbols.Workspace, files *source.FileSet, file source.FileID, offset uint32) error {
	for i := 1; i < ws.Bindings.Count(); i++ {
		info, ok := ws.Bindings.Get(symbols.BindingID(i))
		if !ok {
			continue
		}
		if !containsOffset(info.Span, file, offset) {
			continue
		}
		span := spanOf(files, info.Span)
		return write(w, Object{Kind: "definition", Definition: &span})
	}
	return writeNull(w)
}
