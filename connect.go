package rock

// findAllNeighboursOf flood-fills outward from pieces, staying within board,
// using each piece's radius-1 ring as its 8-neighbourhood.
func findAllNeighboursOf(pieces, board BitBoard) BitBoard {
	var found BitBoard

	for pieces != 0 {
		pos := squareFromBitBoard(pieces)
		posBoard := pos.BitBoard()

		circle := circles[pos][1]
		edge := circle ^ posBoard

		populatedCircle := circle & board
		populatedEdge := edge & board

		found |= posBoard
		found |= populatedCircle
		found |= findAllNeighboursOf(populatedEdge, board&^found)

		pieces &^= found
	}

	return found
}

// AreAllTogether reports whether every set bit of board lies in a single
// 8-connected component. An empty board is trivially together.
func AreAllTogether(board BitBoard) bool {
	if board == 0 {
		return true
	}
	pos := squareFromBitBoard(board)
	posBoard := pos.BitBoard()

	blob := findAllNeighboursOf(posBoard, board)

	return (board ^ blob) == 0
}

func hasNoLegalMoves(friends, enemies BitBoard) bool {
	for pieces := friends; pieces != 0; {
		fromBoard := extractOneBit(&pieces)
		from := squareFromBitBoard(fromBoard)
		if GenerateLegalDestinations(from, friends, enemies) != 0 {
			return false
		}
	}
	return true
}

// GetGameOutcome classifies a position. The mover wins if only their pieces
// are connected; simultaneous connectedness is a draw.
func GetGameOutcome(p Position) GameOutcome {
	white := p.Board.PiecesFor(White)
	black := p.Board.PiecesFor(Black)

	friends := p.Board.PiecesFor(p.PlayerToMove)
	enemies := p.Board.PiecesFor(p.PlayerToMove.Opponent())

	w := AreAllTogether(white)
	b := AreAllTogether(black)

	switch {
	case w && !b:
		return WhiteWins
	case b && !w:
		return BlackWins
	case (w && b) || hasNoLegalMoves(friends, enemies):
		return Draw
	default:
		return Ongoing
	}
}
