package source

import "sync"

// StringID identifies a string owned by an Interner: an identifier, a
// module path segment, a qualified-name component, or a string literal's
// text. Comparing two StringIDs is comparing the strings they name.
type StringID uint32

// NoStringID is the interner's own entry for "", occupying slot 0 so a
// zero-value StringID never aliases a real interned string.
const NoStringID StringID = 0

// Interner deduplicates strings behind a StringID, so that every later
// comparison (name resolution, qualified-name lookup, binding hashing) is
// an integer compare instead of a string compare. Safe for concurrent use
// from the module-ingestion worker pool.
type Interner struct {
	mu    sync.RWMutex
	byID  []string
	index map[string]StringID
}

// NewInterner returns an Interner with slot 0 pre-populated as NoStringID.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns s's StringID, assigning a new one the first time s is
// seen. Takes a read lock for the common case (s already interned) and
// only upgrades to a write lock to insert, re-checking under the write
// lock in case another goroutine won the race.
func (i *Interner) Intern(s string) StringID {
	i.mu.RLock()
	if id, ok := i.index[s]; ok {
		i.mu.RUnlock()
		return id
	}
	i.mu.RUnlock()

	// Copy s so the interner doesn't keep an unrelated buffer (e.g. a
	// slice into a module's full source text) alive indefinitely.
	cpy := string([]byte(s))

	i.mu.Lock()
	if id, ok := i.index[cpy]; ok {
		i.mu.Unlock()
		return id
	}
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	i.mu.Unlock()
	return id
}

// Lookup returns the string named by id, or ("", false) if id was never
// produced by this Interner.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string named by id, panicking if id is invalid —
// for call sites downstream of a resolved binding, where an invalid
// StringID means the workspace itself is corrupt, not a user error.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Len returns the number of distinct strings interned, including the
// NoStringID slot (so it is never less than 1).
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}
