package game

import "fmt"

// Apply produces the board that results from playing the action. The receiver
// is never touched: on success a fresh, fully annotated board is returned, on
// failure the error wraps ErrInvalidAction and the caller must not advance
// the turn. Apply re-validates even pre-checked actions.
func (b *Board) Apply(a Action) (*Board, error) {
	nb := b.Copy()
	nb.hash ^= StateHash(zobrist.side[b.Turn] ^ zobrist.phase[b.Phase])

	switch act := a.(type) {
	case Place:
		if b.Phase != PlacementPhase {
			return nil, fmt.Errorf("%w: placements end once all pawns are down", ErrWrongPhase)
		}
		if err := CheckPlacement(b, act.Square, b.Turn); err != nil {
			return nil, err
		}
		nb.Squares[act.Square].Occupant = b.Turn
		nb.ToPlace[b.Turn]--
		nb.Placed[b.Turn]++
		nb.hash ^= StateHash(zobrist.pieces[act.Square][b.Turn])
		if nb.ToPlace[Player1] == 0 && nb.ToPlace[Player2] == 0 {
			// One-way transition: there is no way back to placement.
			nb.Phase = MovementPhase
		}

	case Move:
		if b.Phase != MovementPhase {
			return nil, fmt.Errorf("%w: moves require all pawns placed", ErrWrongPhase)
		}
		if err := CheckMove(b, act.From, act.To, b.Turn); err != nil {
			return nil, err
		}
		nb.Squares[act.From].Occupant = NoPlayer
		nb.Squares[act.To].Occupant = b.Turn
		nb.hash ^= StateHash(zobrist.pieces[act.From][b.Turn] ^ zobrist.pieces[act.To][b.Turn])

	default:
		return nil, fmt.Errorf("%w: unknown action %T", ErrInvalidAction, a)
	}

	annotate(nb)
	detectWin(nb)
	if nb.Won == NoPlayer {
		nb.Turn = b.Turn.Opponent()
	}
	nb.hash ^= StateHash(zobrist.side[nb.Turn] ^ zobrist.phase[nb.Phase])
	return nb, nil
}
