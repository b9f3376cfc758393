package rock

import "testing"

func TestParseFormatSquareRoundTrip(t *testing.T) {
	for _, s := range []string{"A1", "H8", "D6", "E2", "C3"} {
		sq, err := ParseSquare(s)
		if err != nil {
			t.Fatalf("ParseSquare(%q) error: %v", s, err)
		}
		if got := FormatSquare(sq); got != s {
			t.Fatalf("round trip failed: %q -> %v -> %q", s, sq, got)
		}
	}
}

func TestParseSquareRejectsInvalid(t *testing.T) {
	for _, s := range []string{"", "A", "Z1", "A9", "A0"} {
		if _, err := ParseSquare(s); err == nil {
			t.Fatalf("expected ParseSquare(%q) to fail", s)
		}
	}
}

func TestParseFormatMoveRoundTrip(t *testing.T) {
	m, err := ParseMove("A1-C3")
	if err != nil {
		t.Fatalf("ParseMove error: %v", err)
	}
	if got := FormatMove(m); got != "A1-C3" {
		t.Fatalf("FormatMove = %q, want A1-C3", got)
	}
	if m.From != ParseSquareOrPanic("A1") || m.To != ParseSquareOrPanic("C3") {
		t.Fatalf("parsed move has wrong squares: %+v", m)
	}
}

func TestParseMoveRejectsMalformed(t *testing.T) {
	for _, s := range []string{"A1C3", "A1-", "-C3", "A1-C3-E5"} {
		if _, err := ParseMove(s); err == nil {
			t.Fatalf("expected ParseMove(%q) to fail", s)
		}
	}
}

func TestFormatParseBoardRoundTrip(t *testing.T) {
	literal := FormatBoard(StartingBoard)
	got := ParseLiteralBoard(literal)
	if got.PiecesFor(White) != StartingBoard.PiecesFor(White) {
		t.Fatalf("white pieces did not round-trip")
	}
	if got.PiecesFor(Black) != StartingBoard.PiecesFor(Black) {
		t.Fatalf("black pieces did not round-trip")
	}
}

func TestParsePlayerLetters(t *testing.T) {
	if ParsePlayer("w") != White || ParsePlayer("W") != White {
		t.Fatalf("expected 'w'/'W' to parse as White")
	}
	if ParsePlayer("b") != Black || ParsePlayer("B") != Black {
		t.Fatalf("expected 'b'/'B' to parse as Black")
	}
	if ParsePlayer("") != White {
		t.Fatalf("expected empty string to default to White")
	}
}

func TestFormatParsePositionFENRoundTrip(t *testing.T) {
	fen := FormatPositionFEN(StartingPosition)
	got, err := ParsePositionFEN(fen)
	if err != nil {
		t.Fatalf("ParsePositionFEN error: %v", err)
	}
	if got.PlayerToMove != StartingPosition.PlayerToMove {
		t.Fatalf("player to move did not round-trip")
	}
	if got.Board.PiecesFor(White) != StartingPosition.Board.PiecesFor(White) {
		t.Fatalf("white pieces did not round-trip through FEN")
	}
	if got.Board.PiecesFor(Black) != StartingPosition.Board.PiecesFor(Black) {
		t.Fatalf("black pieces did not round-trip through FEN")
	}
}

func TestParsePositionFENRejectsMalformed(t *testing.T) {
	if _, err := ParsePositionFEN("too short w"); err == nil {
		t.Fatalf("expected malformed FEN to fail")
	}
}
