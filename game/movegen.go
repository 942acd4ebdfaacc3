package game

// LegalActions enumerates every legal action for the side to move. A terminal
// position (winner found) yields none. An empty result on a live board is the
// stalemate condition, distinct from a detected winner.
func (b *Board) LegalActions() []Action {
	if b.Won != NoPlayer {
		return nil
	}
	if b.Phase == PlacementPhase {
		return b.legalPlacements()
	}
	return b.legalMoves()
}

func (b *Board) legalPlacements() []Action {
	if b.ToPlace[b.Turn] == 0 {
		return nil
	}
	var actions []Action
	for index := range b.Squares {
		if CheckPlacement(b, index, b.Turn) == nil {
			actions = append(actions, Place{Square: index})
		}
	}
	return actions
}

func (b *Board) legalMoves() []Action {
	// Collect targets once: empty matching-color squares outside the
	// player's dead zones.
	var targets []int
	for index := range b.Squares {
		sq := b.Squares[index]
		if sq.Occupant == NoPlayer && sq.Color == b.Turn.Color() && !b.DeadFor[b.Turn].Has(index) {
			targets = append(targets, index)
		}
	}

	var actions []Action
	for index := range b.Squares {
		if b.Squares[index].Occupant != b.Turn || b.Blocked.Has(index) {
			continue
		}
		for _, to := range targets {
			actions = append(actions, Move{From: index, To: to})
		}
	}
	return actions
}
