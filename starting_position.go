package rock

// StartingBoard is the standard starting arrangement: White holds columns
// 1-6 of ranks 1 and 8; Black holds columns 0 and 7 of ranks 2-7.
var StartingBoard = ParseLiteralBoard(
	" wwwwww " +
		"b      b" +
		"b      b" +
		"b      b" +
		"b      b" +
		"b      b" +
		"b      b" +
		" wwwwww ")

// StartingPosition is the standard starting position, White to move.
var StartingPosition = Position{Board: StartingBoard, PlayerToMove: White}
