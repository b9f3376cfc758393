package rock

import "testing"

func TestSearchDepthZeroReturnsLeafEvaluation(t *testing.T) {
	friends := StartingBoard.PiecesFor(White)
	enemies := StartingBoard.PiecesFor(Black)
	table := NewTranspositionTable(8)

	rec := Search(friends, enemies, 0, -2*BIG, 2*BIG, table, Move{})
	if !rec.Move.IsEmpty() {
		t.Fatalf("depth-0 search should return an empty move")
	}
	want := EvaluateLeaf(friends, enemies)
	if rec.Score != want {
		t.Fatalf("depth-0 score = %d, want %d", rec.Score, want)
	}
}

func TestSearchReturnsLegalBestMove(t *testing.T) {
	friends := StartingBoard.PiecesFor(White)
	enemies := StartingBoard.PiecesFor(Black)
	table := NewTranspositionTable(12)

	rec := Search(friends, enemies, 3, -2*BIG, 2*BIG, table, Move{})
	if rec.Move.IsEmpty() {
		t.Fatalf("expected a best move from a non-terminal position")
	}
	if !IsMoveLegalLowLevel(rec.Move.From.BitBoard(), rec.Move.To.BitBoard(), friends, enemies) {
		t.Fatalf("best move %v is not legal", rec.Move)
	}
}

func TestSearchTerminalPositionHasNoMove(t *testing.T) {
	var white, black BitBoard
	for _, sq := range []Square{NewSquare(3, 3), NewSquare(4, 3), NewSquare(3, 4), NewSquare(4, 4)} {
		white.SetBit(sq)
	}
	black.SetBit(NewSquare(0, 0))
	black.SetBit(NewSquare(7, 7))

	table := NewTranspositionTable(8)
	rec := Search(white, black, 4, -2*BIG, 2*BIG, table, Move{})
	if !rec.Move.IsEmpty() {
		t.Fatalf("expected no move in a decisively won terminal position")
	}
	if rec.Score != BIG {
		t.Fatalf("expected +BIG score, got %d", rec.Score)
	}
}

func TestSearchSymmetricPositionsNegate(t *testing.T) {
	friends := StartingBoard.PiecesFor(White)
	enemies := StartingBoard.PiecesFor(Black)

	table1 := NewTranspositionTable(10)
	rec1 := Search(friends, enemies, 2, -2*BIG, 2*BIG, table1, Move{})

	table2 := NewTranspositionTable(10)
	rec2 := Search(enemies, friends, 2, -2*BIG, 2*BIG, table2, Move{})

	if rec1.Score != rec2.Score {
		t.Fatalf("negamax symmetry violated: %d vs %d", rec1.Score, rec2.Score)
	}
}
