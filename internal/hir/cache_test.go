package hir

import (
	"testing"

	"lumen/internal/symbols"
	"lumen/internal/types"
)

func TestCacheDetectsReentry(t *testing.T) {
	cache := NewCache()
	binding := symbols.BindingID(1)

	if _, already := cache.Begin(binding); already {
		t.Fatal("expected first Begin to report not-already-tracked")
	}
	if _, already := cache.Begin(binding); !already {
		t.Fatal("expected second Begin to report the binding is already tracked (cycle)")
	}

	entry, ok := cache.Lookup(binding)
	if !ok || entry.State != InProgress {
		t.Fatalf("expected in-progress entry, got %+v", entry)
	}

	cache.Finish(binding, types.NoTypeID, NoNodeID)
	entry, _ = cache.Lookup(binding)
	if entry.State != Done {
		t.Fatalf("expected done entry after Finish, got %+v", entry)
	}
}

func TestNodesArenaGetInvalid(t *testing.T) {
	nodes := NewNodes(0)
	if _, ok := nodes.Get(NoNodeID); ok {
		t.Fatal("expected NoNodeID to be invalid")
	}
	id := nodes.New(Node{Kind: NodeConst, Value: Unit()})
	got, ok := nodes.Get(id)
	if !ok || got.Kind != NodeConst {
		t.Fatalf("expected to fetch allocated node, got %+v ok=%v", got, ok)
	}
}
