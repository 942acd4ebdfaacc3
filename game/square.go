package game

const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	// WinLength is the number of aligned pawns on a diagonal needed to win.
	WinLength = 4

	// PawnsPerPlayer is the number of pawns each side places before the
	// movement phase begins.
	PawnsPerPlayer = 12
)

// Color is the fixed board color of a square. Pawns are assigned the color of
// their owner and only ever occupy squares of that color.
type Color int8

const (
	Light Color = iota
	Dark
)

func (c Color) String() string {
	if c == Dark {
		return "dark"
	}
	return "light"
}

// Square is one cell of the board. Index, Row, Col and Color are fixed at
// board construction; only Occupant changes over a game.
type Square struct {
	Index    int
	Row      int
	Col      int
	Color    Color
	Occupant Player
}

// Index converts row/col coordinates to a linear square index.
func Index(row, col int) int {
	return row*BoardSize + col
}

// RowCol converts a linear square index to row/col coordinates.
func RowCol(index int) (row, col int) {
	return index / BoardSize, index % BoardSize
}

// SquareColor returns the fixed board color of a square: (row+col) even is
// light, odd is dark.
func SquareColor(index int) Color {
	row, col := RowCol(index)
	if (row+col)%2 == 0 {
		return Light
	}
	return Dark
}

// OnBoard reports whether row/col coordinates fall inside the board.
func OnBoard(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}
