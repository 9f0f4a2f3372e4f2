package ide

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lumen/internal/diag"
	"lumen/internal/source"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

func newFileSet(t *testing.T, content string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.lumen", []byte(content))
	return fs, id
}

func TestWriteDiagnosticsSkipsSpanlessEntries(t *testing.T) {
	fs, file := newFileSet(t, "let x = 1\n")
	diags := diag.NewBag(8)
	withSpan := diag.NewError(diag.TypeMismatch, source.Span{File: file, Start: 4, End: 5}, "boom")
	diags.Add(&withSpan)
	noSpan := diag.NewError(diag.TypeMismatch, source.Span{}, "no span")
	diags.Add(&noSpan)

	var buf bytes.Buffer
	if err := WriteDiagnostics(&buf, diags, fs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var obj Object
	if err := json.Unmarshal([]byte(lines[0]), &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if obj.Kind != "diagnostic" || obj.Diagnostic == nil || obj.Diagnostic.Message != "boom" {
		t.Fatalf("unexpected object: %+v", obj)
	}
}

func TestWriteHoverNullWhenNoBindingMatches(t *testing.T) {
	fs, file := newFileSet(t, "let x = 1\n")
	strs := source.NewInterner()
	ws := symbols.NewWorkspace(strs)
	ctx := types.NewTypeContext(strs, 8)

	var buf bytes.Buffer
	if err := WriteHover(&buf, ws, ctx, file, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "null" {
		t.Fatalf("expected null, got %q", buf.String())
	}
}
