package game

import "fmt"

// Action is a placement or a move. Actions are plain data: applying one never
// mutates the board it is applied to.
type Action interface {
	fmt.Stringer
	isAction()
}

// Place puts a new pawn on an empty square. Only legal during the placement
// phase.
type Place struct {
	Square int
}

func (p Place) isAction() {}

func (p Place) String() string {
	row, col := RowCol(p.Square)
	return fmt.Sprintf("place %d (r%dc%d)", p.Square, row, col)
}

// Move relocates an already placed pawn. Only legal during the movement
// phase. There is no adjacency constraint: any empty matching-color square is
// reachable in one move.
type Move struct {
	From int
	To   int
}

func (m Move) isAction() {}

func (m Move) String() string {
	return fmt.Sprintf("move %d -> %d", m.From, m.To)
}
