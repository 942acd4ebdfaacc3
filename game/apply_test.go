package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyPlacement(t *testing.T) {
	t.Run("first placement succeeds and stays in placement phase", func(t *testing.T) {
		b := NewBoard()

		next, err := b.Apply(Place{Square: 0})

		require.NoError(t, err)
		require.Equal(t, Player1, next.Occupant(0))
		require.Equal(t, PawnsPerPlayer-1, next.ToPlace[Player1])
		require.Equal(t, 1, next.Placed[Player1])
		require.Equal(t, PlacementPhase, next.Phase)
		require.Equal(t, Player2, next.Player(), "turn advances")
	})

	t.Run("never mutates the input board", func(t *testing.T) {
		b := NewBoard()
		before := *b

		_, err := b.Apply(Place{Square: 0})

		require.NoError(t, err)
		require.Equal(t, before, *b)
	})

	t.Run("is a pure function", func(t *testing.T) {
		b := NewBoard()

		first, err1 := b.Apply(Place{Square: 0})
		second, err2 := b.Apply(Place{Square: 0})

		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, first, second)
	})

	t.Run("rejects an illegal placement without touching state", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{0: Player1})
		before := *b

		next, err := b.Apply(Place{Square: 0})

		require.ErrorIs(t, err, ErrInvalidAction)
		require.Nil(t, next)
		require.Equal(t, before, *b)
	})

	t.Run("rejects placement in the movement phase", func(t *testing.T) {
		b := position(Player1, MovementPhase, map[int]Player{0: Player1})

		_, err := b.Apply(Place{Square: 2})

		require.ErrorIs(t, err, ErrWrongPhase)
		require.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("flips to movement phase when the last pawn is placed", func(t *testing.T) {
		b := position(Player1, PlacementPhase, nil)
		b.ToPlace[Player1] = 1
		b.ToPlace[Player2] = 0
		b.hash = ComputeHash(b)

		next, err := b.Apply(Place{Square: 0})

		require.NoError(t, err)
		require.Equal(t, MovementPhase, next.Phase)
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("relocates the pawn and advances the turn", func(t *testing.T) {
		b := position(Player1, MovementPhase, map[int]Player{0: Player1, 1: Player2})

		next, err := b.Apply(Move{From: 0, To: 27})

		require.NoError(t, err)
		require.Equal(t, NoPlayer, next.Occupant(0))
		require.Equal(t, Player1, next.Occupant(27))
		require.Equal(t, Player2, next.Player())
	})

	t.Run("rejects moves during placement", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{0: Player1})

		_, err := b.Apply(Move{From: 0, To: 27})

		require.ErrorIs(t, err, ErrWrongPhase)
	})

	t.Run("recomputes annotations after the action", func(t *testing.T) {
		// Moving player 2's pawn to 19 completes the flank around 18.
		b := position(Player2, MovementPhase, map[int]Player{18: Player1, 17: Player2, 10: Player2})

		next, err := b.Apply(Move{From: 10, To: 19})

		require.NoError(t, err)
		require.True(t, next.Blocked.Has(18))
		require.True(t, next.Blocking.Has(17))
		require.True(t, next.Blocking.Has(19))
	})

	t.Run("a winning action leaves the side to move unchanged", func(t *testing.T) {
		b := position(Player1, MovementPhase, map[int]Player{
			0: Player1, 9: Player1, 18: Player1, 45: Player1,
		})

		next, err := b.Apply(Move{From: 45, To: 27})

		require.NoError(t, err)
		require.Equal(t, Player1, next.Winner())
		require.Equal(t, [WinLength]int{0, 9, 18, 27}, next.WinLine)
		require.Equal(t, Player1, next.Player(), "turn does not advance past a win")
	})
}
