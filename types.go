// Package rock implements a move generator and search engine for Romanian
// checkers: an 8x8 connection game played with bitboards.
package rock

import "fmt"

// Player identifies a side.
type Player bool

const (
	White Player = false
	Black Player = true
)

// Opponent returns the other side.
func (p Player) Opponent() Player { return !p }

func (p Player) String() string {
	if p == White {
		return "White"
	}
	return "Black"
}

// Square is a board index in [0, 64). Square 0 is bottom-left (A1), square 63
// is top-right (H8). Square = y*8 + x.
type Square uint8

// NewSquare builds a Square from 0-indexed file/rank coordinates.
func NewSquare(x, y int) Square {
	return Square(y*8 + x)
}

func (s Square) X() int { return int(s) % 8 }
func (s Square) Y() int { return int(s) / 8 }

// BitBoard returns the single-bit mask for this square.
func (s Square) BitBoard() BitBoard { return BitBoard(1) << BitBoard(s) }

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'A'+s.X(), s.Y()+1)
}

// BitBoard is a 64-bit set of squares, bit i set iff square i is occupied.
type BitBoard uint64

func (b BitBoard) At(s Square) bool { return b&s.BitBoard() != 0 }

func (b *BitBoard) SetBit(s Square)   { *b |= s.BitBoard() }
func (b *BitBoard) ClearBit(s Square) { *b &^= s.BitBoard() }
func (b *BitBoard) FlipBit(s Square)  { *b ^= s.BitBoard() }

// Board holds both sides' bitboards.
type Board struct {
	pieces [2]BitBoard
}

func NewBoard(white, black BitBoard) Board {
	var b Board
	b.SetPiecesFor(White, white)
	b.SetPiecesFor(Black, black)
	return b
}

func (b Board) PiecesFor(p Player) BitBoard         { return b.pieces[boolIndex(p)] }
func (b *Board) SetPiecesFor(p Player, bb BitBoard) { b.pieces[boolIndex(p)] = bb }

func boolIndex(p Player) int {
	if p {
		return 1
	}
	return 0
}

// Position is a board plus the side to move.
type Position struct {
	Board        Board
	PlayerToMove Player
}

// Move is a single piece relocation, from one square to another. An empty
// Move (zero value, From == To == 0) is used as a sentinel for "no move".
type Move struct {
	From Square
	To   Square
}

func (m Move) IsEmpty() bool { return m.From == 0 && m.To == 0 }

func (m Move) String() string {
	return fmt.Sprintf("%s -> %s", m.From, m.To)
}

// ApplyMove returns the board obtained by moving a piece of player from
// m.From to m.To, capturing any opposing piece on m.To. The caller must
// ensure the move is legal; this function performs no validation.
func ApplyMove(m Move, b Board, player Player) Board {
	from := m.From.BitBoard()
	to := m.To.BitBoard()

	mover := b.PiecesFor(player) ^ (from | to)
	b.SetPiecesFor(player, mover)

	opponent := b.PiecesFor(player.Opponent()) &^ to
	b.SetPiecesFor(player.Opponent(), opponent)

	return b
}

// ApplyMoveToPosition applies m to p and flips the side to move.
func ApplyMoveToPosition(m Move, p Position) Position {
	p.Board = ApplyMove(m, p.Board, p.PlayerToMove)
	p.PlayerToMove = p.PlayerToMove.Opponent()
	return p
}

// GameOutcome classifies a position as finished or not.
type GameOutcome int

const (
	Ongoing GameOutcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o GameOutcome) String() string {
	switch o {
	case Ongoing:
		return "Ongoing"
	case WhiteWins:
		return "WhiteWins"
	case BlackWins:
		return "BlackWins"
	case Draw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// InternalMoveSet groups every legal destination from a single source square.
type InternalMoveSet struct {
	From BitBoard
	To   BitBoard
}

// MoveList holds at most one InternalMoveSet per friendly piece (≤ 12).
type MoveList []InternalMoveSet

// Score is a signed evaluation in centipawn-like units. BIG denotes a
// decisive (won or lost) position.
type Score int64

const BIG Score = 1_000_000_000

// NodeType records how a search result relates to its alpha-beta window.
type NodeType int

const (
	All NodeType = iota // true value <= returned score
	Pv                  // exact value within (alpha, beta)
	Cut                 // true value >= returned score (beta cutoff)
)

// Recommendation is a move/score pair produced by the searcher.
type Recommendation struct {
	Move  Move
	Score Score
}

// PositionAnalysis is the public result of analyzing a position.
type PositionAnalysis struct {
	BestMove           Move
	PrincipalVariation []Move
	Score              Score
}
