package rock

import (
	"fmt"
	"strings"
)

// This file is a thin external-collaborator adapter: literal board/FEN-like
// text in and out of the engine. None of the scored core depends on it; only
// tests and the HTTP front end do.

// ParseLiteralBoard parses an 8-line literal board string, 'w'/'b' per
// square and anything else (conventionally a space) for empty, read top row
// first (rank 8 down to rank 1), matching the engine's own fixture style.
func ParseLiteralBoard(s string) Board {
	var board Board
	row := 8
	col := 0
	for _, ch := range s {
		if ch == '\n' {
			continue
		}
		if col == 8 {
			col = 0
			row--
		}
		if row <= 0 {
			break
		}
		sq := NewSquare(col, row-1)
		switch ch {
		case 'w', 'W':
			white := board.PiecesFor(White)
			white.SetBit(sq)
			board.SetPiecesFor(White, white)
		case 'b', 'B':
			black := board.PiecesFor(Black)
			black.SetBit(sq)
			board.SetPiecesFor(Black, black)
		}
		col++
	}
	return board
}

// ParseLiteralBitBoard parses an 8-line literal string into a single
// BitBoard; any non-space character marks the square occupied.
func ParseLiteralBitBoard(s string) BitBoard {
	var b BitBoard
	row := 8
	col := 0
	for _, ch := range s {
		if ch == '\n' {
			continue
		}
		if col == 8 {
			col = 0
			row--
		}
		if row <= 0 {
			break
		}
		if ch != ' ' {
			b.SetBit(NewSquare(col, row-1))
		}
		col++
	}
	return b
}

// FormatBoard renders a board as an 8-line literal string, rank 8 first.
func FormatBoard(b Board) string {
	var sb strings.Builder
	white := b.PiecesFor(White)
	black := b.PiecesFor(Black)
	for row := 7; row >= 0; row-- {
		for col := 0; col < 8; col++ {
			sq := NewSquare(col, row)
			switch {
			case white.At(sq):
				sb.WriteByte('w')
			case black.At(sq):
				sb.WriteByte('b')
			default:
				sb.WriteByte(' ')
			}
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParsePlayer parses "w"/"W"/"b"/"B". The empty string yields White; any
// other non-empty string defaults to Black, as in the engine's own literal
// parser.
func ParsePlayer(s string) Player {
	if s == "" {
		return White
	}
	switch s[0] {
	case 'w', 'W':
		return White
	default:
		return Black
	}
}

func playerLetter(p Player) byte {
	if p == White {
		return 'w'
	}
	return 'b'
}

// ParseSquare parses algebraic notation like "A1".."H8".
func ParseSquare(s string) (Square, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("rock: square %q too short", s)
	}
	col := s[0]
	if col >= 'a' && col <= 'h' {
		col -= 'a' - 'A'
	}
	if col < 'A' || col > 'H' {
		return 0, fmt.Errorf("rock: invalid file in square %q", s)
	}
	var row int
	if _, err := fmt.Sscanf(s[1:], "%d", &row); err != nil || row < 1 || row > 8 {
		return 0, fmt.Errorf("rock: invalid rank in square %q", s)
	}
	return NewSquare(int(col-'A'), row-1), nil
}

// FormatSquare renders a square as algebraic notation.
func FormatSquare(s Square) string {
	return fmt.Sprintf("%c%d", 'A'+s.X(), s.Y()+1)
}

// ParseMove parses "A1-B2" notation.
func ParseMove(s string) (Move, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Move{}, fmt.Errorf("rock: malformed move %q", s)
	}
	from, err := ParseSquare(strings.TrimSpace(parts[0]))
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(strings.TrimSpace(parts[1]))
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

// FormatMove renders a move as "A1-B2".
func FormatMove(m Move) string {
	return fmt.Sprintf("%s-%s", FormatSquare(m.From), FormatSquare(m.To))
}

// FormatPositionFEN renders a position as a one-line string: the 64-char
// literal board (rank 8 first, no newlines) followed by the side to move.
func FormatPositionFEN(p Position) string {
	board := strings.ReplaceAll(FormatBoard(p.Board), "\n", "")
	return fmt.Sprintf("%s %c", board, playerLetter(p.PlayerToMove))
}

// ParsePositionFEN parses the format produced by FormatPositionFEN.
func ParsePositionFEN(s string) (Position, error) {
	// The board half itself uses spaces for empty squares, so split on the
	// last space only.
	i := strings.LastIndexByte(s, ' ')
	if i != 64 || i+1 >= len(s) {
		return Position{}, fmt.Errorf("rock: malformed position string %q", s)
	}
	return Position{
		Board:        ParseLiteralBoard(s[:i]),
		PlayerToMove: ParsePlayer(s[i+1:]),
	}, nil
}
