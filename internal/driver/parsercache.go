package driver

import (
	"sync"

	"lumen/internal/ast"
	"lumen/internal/diag"
)

// ParserCache is the shared, mutex-protected bookkeeping the parse-stage
// worker pool accumulates while ingesting a module set (§5: "{libraries,
// include_paths, diagnostics, parsed_files: set of canonical paths,
// total_lines}"). It is scoped to the parse stage and dropped once the
// pool joins, leaving the Workspace owning diagnostics and libraries.
type ParserCache struct {
	mu sync.Mutex

	Libraries    map[string]bool
	IncludePaths []string
	parsedFiles  map[string]bool
	totalLines   int
	diags        *diag.Bag
}

// NewParserCache creates an empty cache reporting into diags.
func NewParserCache(diags *diag.Bag) *ParserCache {
	return &ParserCache{
		Libraries:   make(map[string]bool),
		parsedFiles: make(map[string]bool),
		diags:       diags,
	}
}

// MarkParsed records that path has been ingested, returning false if it was
// already present (§5: "a file is parsed at most once").
func (c *ParserCache) MarkParsed(path string, lines int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.parsedFiles[path] {
		return false
	}
	c.parsedFiles[path] = true
	c.totalLines += lines
	return true
}

// AddLibrary records a library name referenced by an import (§4.5 rule 4:
// "a library name — return that library's root module").
func (c *ParserCache) AddLibrary(name string) {
	c.mu.Lock()
	c.Libraries[name] = true
	c.mu.Unlock()
}

// AddDiagnostic merges one worker's diagnostic into the shared sink. Diags
// within one worker are already in emission order; callers sort the bag
// after every worker has joined (§5: "cross-thread diagnostics are
// collected into a shared sink and flushed after the thread pool joins").
func (c *ParserCache) AddDiagnostic(d diag.Diagnostic) {
	c.mu.Lock()
	c.diags.Add(&d)
	c.mu.Unlock()
}

// TotalLines reports the summed line count of every file parsed so far.
func (c *ParserCache) TotalLines() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLines
}

// ParsedFileCount reports how many distinct files have been marked parsed.
func (c *ParserCache) ParsedFileCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.parsedFiles)
}

// SourceModule is one already-parsed module handed to the driver (§6
// "Input to the core": Non-goals exclude lexing/parsing from this module,
// so the driver never reads source text itself).
type SourceModule struct {
	Path string
	Name string
	Tree *ast.Module
}
