// Package cache persists a checked workspace's resolved binding types to
// disk, keyed by a hash of the input module set, so a repeat `lumen check`
// over an unchanged tree can report diagnostics without re-running
// inference. This is ambient infrastructure outside the core's own
// contract (SPEC_FULL.md §6 notes the core itself persists nothing) —
// the cache is a standalone layer over driver.Build's results; neither
// cmd/lumen nor internal/driver reads or writes it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"lumen/internal/driver"
	"lumen/internal/symbols"
	"lumen/internal/types"
)

// BindingSnapshot is the durable form of one resolved symbols.BindingInfo:
// enough to report "this name has type T" without re-running the checker,
// but not enough to resume checking from (HIR bodies are never cached).
type BindingSnapshot struct {
	Name    string `msgpack:"name"`
	Kind    string `msgpack:"kind"`
	Module  string `msgpack:"module"`
	Type    string `msgpack:"type"`
	Mutable bool   `msgpack:"mutable"`
}

// Snapshot is one cached build: the hash of the inputs that produced it,
// and every binding's resolved type as rendered text (types.Display),
// since a TypeID is only meaningful against the TypeContext that produced
// it and cannot be replayed into a fresh one.
type Snapshot struct {
	InputHash string            `msgpack:"input_hash"`
	Bindings  []BindingSnapshot `msgpack:"bindings"`
	HadErrors bool              `msgpack:"had_errors"`
}

// HashModules derives the cache key as a hash over a module set's sorted
// paths. Source contents are not hashed, so two sets with the same paths
// share a key even when their contents differ; module order and file
// mtimes do not affect the key either.
func HashModules(modules []driver.SourceModule) string {
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Path
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// BuildSnapshot builds a Snapshot from a checked workspace, using
// ws.Strings to resolve the StringIDs stored on each binding into their
// text form for the on-disk record.
func BuildSnapshot(inputHash string, ws *symbols.Workspace, ctx *types.TypeContext, hadErrors bool) Snapshot {
	snap := Snapshot{InputHash: inputHash, HadErrors: hadErrors}
	for i := 1; i < ws.Bindings.Count(); i++ {
		info, ok := ws.Bindings.Get(symbols.BindingID(i))
		if !ok {
			continue
		}
		name, _ := ws.Strings.Lookup(info.Name)
		moduleInfo := ws.Module(info.Module)
		modName := ""
		if moduleInfo != nil {
			modName, _ = ws.Strings.Lookup(moduleInfo.Name)
		}
		typeStr := "{unresolved}"
		if info.Type != types.NoTypeID {
			typeStr = types.Display(ctx, types.VarOf(info.Type))
		}
		snap.Bindings = append(snap.Bindings, BindingSnapshot{
			Name:    name,
			Kind:    info.Kind.String(),
			Module:  modName,
			Type:    typeStr,
			Mutable: info.Mutable,
		})
	}
	return snap
}

// Store encodes snap as msgpack and writes it to path, overwriting any
// prior cache entry.
func Store(path string, snap Snapshot) error {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache: encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cache: write %q: %w", path, err)
	}
	return nil
}

// Load reads and decodes the snapshot at path. A missing file is reported
// through errors.Is(err, fs.ErrNotExist), letting callers treat "no cache
// yet" as a normal cold-start condition rather than a failure.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, err
		}
		return Snapshot{}, fmt.Errorf("cache: read %q: %w", path, err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("cache: decode %q: %w", path, err)
	}
	return snap, nil
}

// Fresh reports whether a loaded snapshot still matches the given input
// hash, i.e. whether the caller can skip rebuilding.
func (s Snapshot) Fresh(inputHash string) bool {
	return s.InputHash == inputHash
}
