package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddAllocatesFreshIDPerCall(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("math.lumen", []byte("fn add(a i32, b i32) i32 { a + b }"), 0)
	if id1 != 0 {
		t.Fatalf("expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("math.lumen", []byte("fn add(a i32, b i32) i32 { a + b + 1 }"), 0)
	if id2 == id1 {
		t.Fatal("expected re-adding the same path to allocate a new FileID")
	}

	f1, f2 := fs.Get(id1), fs.Get(id2)
	if string(f1.Content) == string(f2.Content) {
		t.Fatal("expected the two FileIDs to carry distinct content")
	}
	if f1.Path != f2.Path {
		t.Fatal("expected both versions to report the same path")
	}
}

func TestAddVirtualSetsLineIndexAndFlag(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<stdin>.lumen", []byte("let a = 1\nlet b = 2\n"))
	file := fs.Get(id)

	if len(file.LineIdx) != 2 {
		t.Fatalf("expected two newline offsets, got %v", file.LineIdx)
	}
	if file.Flags&FileVirtual == 0 {
		t.Fatal("expected FileVirtual to be set on AddVirtual")
	}
}

func TestFileSetResolveHandlesMultiByteRunes(t *testing.T) {
	fs := NewFileSet()
	// "α" (module-path segment) occupies two UTF-8 bytes.
	id := fs.AddVirtual("mod_α.lumen", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) {
		t.Fatalf("unexpected start %+v", start)
	}
	if end != (LineCol{Line: 1, Col: 2}) {
		t.Fatalf("unexpected end %+v", end)
	}
}

func TestFileSetLoadNormalizesBOMAndCRLF(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "module.lumen")
	if err := os.WriteFile(tmp, []byte("\xEF\xBB\xBFlet a = 1\r\nlet b = 2\r\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp source file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(tmp)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	file := fs.Get(id)
	if string(file.Content) != "let a = 1\nlet b = 2\n" {
		t.Fatalf("expected normalized content, got %q", string(file.Content))
	}
	if file.Flags&FileHadBOM == 0 {
		t.Fatal("expected FileHadBOM to be set")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Fatal("expected FileNormalizedCRLF to be set")
	}
}

func TestGetLineReturnsRequestedLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("module.lumen", []byte("let a = 1\nlet b = 2\nlet c = 3"))
	file := fs.Get(id)

	if got := file.GetLine(2); got != "let b = 2" {
		t.Fatalf("GetLine(2) = %q, want %q", got, "let b = 2")
	}
	if got := file.GetLine(0); got != "" {
		t.Fatalf("GetLine(0) = %q, want empty", got)
	}
	if got := file.GetLine(99); got != "" {
		t.Fatalf("GetLine(99) = %q, want empty", got)
	}
}

func TestFormatPathModes(t *testing.T) {
	fs := NewFileSetWithBase(string(filepath.Separator) + filepath.Join("work", "lumen"))
	id := fs.AddVirtual(filepath.Join(fs.BaseDir(), "pkg", "math.lumen"), nil)
	file := fs.Get(id)

	if got := file.FormatPath("basename", ""); got != "math.lumen" {
		t.Fatalf("FormatPath(basename) = %q, want %q", got, "math.lumen")
	}
}
