package main

import (
	"errors"

	"lumen/internal/driver"
	"lumen/internal/source"
)

// Frontend turns source text into parsed modules. Lexing and parsing are
// out of this module's scope (spec.md §1 Non-goals): this core consumes
// already-parsed `ast.Module` trees, never raw bytes. A real deployment
// links in a concrete Frontend (its own lexer/parser package); this CLI
// ships without one, since no such front end exists anywhere in this
// repository's scope, and says so rather than silently no-op'ing. file is
// already registered in the shared FileSet so spans the parser produces
// carry the right FileID.
type Frontend interface {
	Parse(strs *source.Interner, path string, file source.FileID, content []byte) (driver.SourceModule, error)
}

// ErrNoFrontend is returned by the default, unconfigured Frontend. A
// caller embedding this core as a library supplies its own Frontend
// (by replacing defaultFrontend below) instead of hitting this path.
var ErrNoFrontend = errors.New("lumen: no parser front end is linked into this build; construct []driver.SourceModule directly and call driver.Build")

type unconfiguredFrontend struct{}

func (unconfiguredFrontend) Parse(strs *source.Interner, path string, file source.FileID, content []byte) (driver.SourceModule, error) {
	return driver.SourceModule{}, ErrNoFrontend
}

// defaultFrontend is overridden by build tags or init() in a deployment
// that links a real parser; the CLI's check/run commands fail fast with
// ErrNoFrontend otherwise rather than pretending to succeed.
var defaultFrontend Frontend = unconfiguredFrontend{}
