package game

import "fmt"

// The rule engine: pure functions over a board. Nothing in this file mutates
// the board it is given except annotate/detectWin, which Apply calls on the
// fresh copy it is building.

// diagonals lists the four diagonal ray directions, in the order win
// detection scans them.
var diagonals = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// CheckPlacement reports whether the player may place a pawn on the square.
func CheckPlacement(b *Board, index int, p Player) error {
	if index < 0 || index >= NumSquares {
		return fmt.Errorf("%w: square %d out of range", ErrInvalidAction, index)
	}
	sq := b.Squares[index]
	if sq.Occupant != NoPlayer {
		return fmt.Errorf("%w: square %d is occupied", ErrInvalidAction, index)
	}
	if sq.Color != p.Color() {
		return fmt.Errorf("%w: square %d is %s, %s plays %s", ErrInvalidAction, index, sq.Color, p, p.Color())
	}
	if b.DeadFor[p].Has(index) {
		return fmt.Errorf("%w: square %d is a dead zone for %s", ErrInvalidAction, index, p)
	}
	if sandwiched(b, index, p.Opponent()) {
		return fmt.Errorf("%w: square %d is sandwiched by opposing pawns", ErrInvalidAction, index)
	}
	return nil
}

// CheckMove reports whether the player may move the pawn on from to to.
func CheckMove(b *Board, from, to int, p Player) error {
	if from < 0 || from >= NumSquares || to < 0 || to >= NumSquares {
		return fmt.Errorf("%w: move %d -> %d out of range", ErrInvalidAction, from, to)
	}
	if b.Squares[from].Occupant != p {
		return fmt.Errorf("%w: square %d holds no %s pawn", ErrInvalidAction, from, p)
	}
	if b.Blocked.Has(from) {
		return fmt.Errorf("%w: pawn on %d is blocked", ErrInvalidAction, from)
	}
	if b.Squares[to].Occupant != NoPlayer {
		return fmt.Errorf("%w: square %d is occupied", ErrInvalidAction, to)
	}
	if b.Squares[to].Color != p.Color() {
		return fmt.Errorf("%w: square %d is %s, %s plays %s", ErrInvalidAction, to, b.Squares[to].Color, p, p.Color())
	}
	if b.DeadFor[p].Has(to) {
		return fmt.Errorf("%w: square %d is a dead zone for %s", ErrInvalidAction, to, p)
	}
	return nil
}

// sandwiched reports whether the square sits between two of opponent's pawns
// on the horizontal or vertical axis, at distance 1 on each side.
func sandwiched(b *Board, index int, opponent Player) bool {
	row, col := RowCol(index)
	if col > 0 && col < BoardSize-1 &&
		b.Squares[Index(row, col-1)].Occupant == opponent &&
		b.Squares[Index(row, col+1)].Occupant == opponent {
		return true
	}
	if row > 0 && row < BoardSize-1 &&
		b.Squares[Index(row-1, col)].Occupant == opponent &&
		b.Squares[Index(row+1, col)].Occupant == opponent {
		return true
	}
	return false
}

// annotate recomputes the blocked/blocking/dead-zone sets from the occupant
// layout. The sets are derived data: callers must never adjust them directly.
func annotate(b *Board) {
	b.Blocked = 0
	b.Blocking = 0
	b.Creators = 0
	b.DeadFor[Player1] = 0
	b.DeadFor[Player2] = 0

	for index := range b.Squares {
		row, col := RowCol(index)
		occupant := b.Squares[index].Occupant

		if occupant != NoPlayer {
			// A pawn flanked on one axis by the same opponent is blocked;
			// the flankers are blocking. A pawn can be blocked on one axis
			// and blocking on another.
			opponent := occupant.Opponent()
			if col > 0 && col < BoardSize-1 {
				left, right := Index(row, col-1), Index(row, col+1)
				if b.Squares[left].Occupant == opponent && b.Squares[right].Occupant == opponent {
					b.Blocked.Set(index)
					b.Blocking.Set(left)
					b.Blocking.Set(right)
				}
			}
			if row > 0 && row < BoardSize-1 {
				below, above := Index(row-1, col), Index(row+1, col)
				if b.Squares[below].Occupant == opponent && b.Squares[above].Occupant == opponent {
					b.Blocked.Set(index)
					b.Blocking.Set(below)
					b.Blocking.Set(above)
				}
			}
			continue
		}

		// An empty square flanked by two pawns of the same owner becomes a
		// dead zone for that owner's opponent, but only when the square's
		// board color is the flanking owner's own color. The flanking pair
		// are dead-zone creators.
		if col > 0 && col < BoardSize-1 {
			left, right := Index(row, col-1), Index(row, col+1)
			owner := b.Squares[left].Occupant
			if owner != NoPlayer && b.Squares[right].Occupant == owner &&
				b.Squares[index].Color == owner.Color() {
				b.DeadFor[owner.Opponent()].Set(index)
				b.Creators.Set(left)
				b.Creators.Set(right)
			}
		}
		if row > 0 && row < BoardSize-1 {
			below, above := Index(row-1, col), Index(row+1, col)
			owner := b.Squares[below].Occupant
			if owner != NoPlayer && b.Squares[above].Occupant == owner &&
				b.Squares[index].Color == owner.Color() {
				b.DeadFor[owner.Opponent()].Set(index)
				b.Creators.Set(below)
				b.Creators.Set(above)
			}
		}
	}
}

// detectWin scans for the first winning diagonal, row-major then direction
// order, and records it on the board. At most one winner can exist because
// every action is checked immediately after application.
func detectWin(b *Board) {
	b.Won = NoPlayer
	for index := range b.Squares {
		p := b.Squares[index].Occupant
		if p == NoPlayer {
			continue
		}
		for _, dir := range diagonals {
			line, ok := winningLine(b, index, dir, p)
			if ok {
				b.Won = p
				b.WinLine = line
				return
			}
		}
	}
}

// winningLine walks WinLength steps from start along dir and reports whether
// every square holds an unobstructed pawn of p on p's color. Pawns that are
// blocked, blocking or dead-zone creators never form part of a winning line,
// nor do squares that are dead zones for p.
func winningLine(b *Board, start int, dir [2]int, p Player) ([WinLength]int, bool) {
	var line [WinLength]int
	row, col := RowCol(start)
	for step := 0; step < WinLength; step++ {
		if !OnBoard(row, col) {
			return line, false
		}
		index := Index(row, col)
		sq := b.Squares[index]
		if sq.Occupant != p || sq.Color != p.Color() {
			return line, false
		}
		if b.Blocked.Has(index) || b.Blocking.Has(index) || b.Creators.Has(index) {
			return line, false
		}
		if b.DeadFor[p].Has(index) {
			return line, false
		}
		line[step] = index
		row += dir[0]
		col += dir[1]
	}
	return line, true
}
