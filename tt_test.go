package rock

import "testing"

func TestTTStoreAndLookup(t *testing.T) {
	tt := NewTranspositionTable(8)
	friends := BitBoard(0x1)
	enemies := BitBoard(0x2)

	if _, found := tt.Lookup(friends, enemies); found {
		t.Fatalf("expected miss on empty table")
	}

	tt.Store(friends, enemies, Move{From: 0, To: 1}, 42, 3, Pv)

	entry, found := tt.Lookup(friends, enemies)
	if !found {
		t.Fatalf("expected hit after store")
	}
	if entry.Score != 42 || entry.Depth != 3 || entry.Type != Pv {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestTTReplacementPreservesPv(t *testing.T) {
	tt := NewTranspositionTable(8)
	friends := BitBoard(0x10)
	enemies := BitBoard(0x20)

	tt.Store(friends, enemies, Move{From: 1, To: 2}, 10, 5, Pv)
	tt.Store(friends, enemies, Move{From: 3, To: 4}, 999, 10, All)

	entry, found := tt.Lookup(friends, enemies)
	if !found {
		t.Fatalf("expected entry to still be present")
	}
	if entry.Type != Pv || entry.Score != 10 {
		t.Fatalf("non-Pv write should not evict a Pv entry, got %+v", entry)
	}
}

func TestTTReplacementDeeperPvWins(t *testing.T) {
	tt := NewTranspositionTable(8)
	friends := BitBoard(0x10)
	enemies := BitBoard(0x20)

	tt.Store(friends, enemies, Move{From: 1, To: 2}, 10, 5, Pv)
	tt.Store(friends, enemies, Move{From: 3, To: 4}, 999, 10, Pv)

	entry, _ := tt.Lookup(friends, enemies)
	if entry.Score != 999 || entry.Depth != 10 {
		t.Fatalf("deeper Pv write should replace shallower Pv, got %+v", entry)
	}
}

func TestTTReplacementShallowerDoesNotOverwrite(t *testing.T) {
	tt := NewTranspositionTable(8)
	friends := BitBoard(0x10)
	enemies := BitBoard(0x20)

	tt.Store(friends, enemies, Move{From: 1, To: 2}, 10, 8, All)
	tt.Store(friends, enemies, Move{From: 3, To: 4}, 999, 3, All)

	entry, _ := tt.Lookup(friends, enemies)
	if entry.Score != 10 || entry.Depth != 8 {
		t.Fatalf("shallower non-Pv write should not replace deeper entry, got %+v", entry)
	}
}

func TestTTCollisionIsReportedAsMiss(t *testing.T) {
	tt := NewTranspositionTable(4)
	tt.Store(1, 2, Move{From: 0, To: 1}, 5, 1, All)

	// Lookup compares both stored keys, so (3, 4) must miss even if it
	// hashes to the slot that (1, 2) occupies.
	if _, found := tt.Lookup(3, 4); found {
		t.Fatalf("differing keys should never report a match")
	}
}
