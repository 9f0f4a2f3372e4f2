package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, or an IDE buffer) rather than from disk.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a leading UTF-8 BOM was stripped when the file was loaded.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF line endings were normalized to LF when the file was loaded.
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
