package rock

// Precomputed per-square masks, built once at package init and never
// mutated afterward. Go has no constexpr evaluator for this shape, so these
// are ordinary package-level vars populated by init().

const numDirections = 4

const (
	dirHorizontal = 0
	dirVertical   = 1
	dirNegDiag    = 2
	dirPosDiag    = 3
)

var (
	directions [64][numDirections]BitBoard
	circles    [64][8]BitBoard
)

func init() {
	directions = makeAllDirections()
	circles = makeAllCircles()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func makeCircle(centre Square, radius int) BitBoard {
	var board BitBoard
	cx, cy := centre.X(), centre.Y()
	for i := 0; i < 64; i++ {
		s := Square(i)
		if maxInt(abs(s.X()-cx), abs(s.Y()-cy)) <= radius {
			board.SetBit(s)
		}
	}
	return board
}

func makeHorizontal(pos Square) BitBoard {
	var res BitBoard
	for x := 0; x < 8; x++ {
		res.SetBit(NewSquare(x, pos.Y()))
	}
	return res
}

func makeVertical(pos Square) BitBoard {
	var res BitBoard
	for y := 0; y < 8; y++ {
		res.SetBit(NewSquare(pos.X(), y))
	}
	return res
}

func makePositiveDiagonal(pos Square) BitBoard {
	var res BitBoard
	for x := 0; x < 8; x++ {
		if y := pos.Y() + x - pos.X(); y >= 0 && y < 8 {
			res.SetBit(NewSquare(x, y))
		}
	}
	return res
}

func makeNegativeDiagonal(pos Square) BitBoard {
	var res BitBoard
	for x := 0; x < 8; x++ {
		if y := pos.Y() + pos.X() - x; y >= 0 && y < 8 {
			res.SetBit(NewSquare(x, y))
		}
	}
	return res
}

func makeAllDirections() [64][numDirections]BitBoard {
	var out [64][numDirections]BitBoard
	for i := 0; i < 64; i++ {
		pos := Square(i)
		out[i][dirHorizontal] = makeHorizontal(pos)
		out[i][dirVertical] = makeVertical(pos)
		out[i][dirNegDiag] = makeNegativeDiagonal(pos)
		out[i][dirPosDiag] = makePositiveDiagonal(pos)
	}
	return out
}

func makeAllCircles() [64][8]BitBoard {
	var out [64][8]BitBoard
	for pos := 0; pos < 64; pos++ {
		for radius := 0; radius < 8; radius++ {
			out[pos][radius] = makeCircle(Square(pos), radius)
		}
	}
	return out
}
