package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckPlacement(t *testing.T) {
	t.Run("empty matching-color square is legal", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, CheckPlacement(b, 0, Player1))
		require.NoError(t, CheckPlacement(b, 1, Player2))
	})

	t.Run("occupied square is rejected", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{0: Player1})
		err := CheckPlacement(b, 0, Player1)
		require.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("wrong board color is rejected", func(t *testing.T) {
		b := NewBoard()
		require.ErrorIs(t, CheckPlacement(b, 1, Player1), ErrInvalidAction, "dark square for the light player")
		require.ErrorIs(t, CheckPlacement(b, 0, Player2), ErrInvalidAction, "light square for the dark player")
	})

	t.Run("dead zone square is rejected for the targeted player only", func(t *testing.T) {
		// Player 1 pawns on 26 and 28 flank light square 27: dead for player 2.
		b := position(Player2, PlacementPhase, map[int]Player{26: Player1, 28: Player1})
		require.Equal(t, Player2, b.DeadZoneFor(27))

		require.ErrorIs(t, CheckPlacement(b, 27, Player2), ErrInvalidAction)
		require.NoError(t, CheckPlacement(b, 27, Player1), "the creating player may still use the square")
	})

	t.Run("horizontally sandwiched square is rejected", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{26: Player2, 28: Player2})
		require.ErrorIs(t, CheckPlacement(b, 27, Player1), ErrInvalidAction)
	})

	t.Run("vertically sandwiched square is rejected", func(t *testing.T) {
		// 19 (r2c3) and 35 (r4c3) sandwich 27 (r3c3) vertically.
		b := position(Player1, PlacementPhase, map[int]Player{19: Player2, 35: Player2})
		require.ErrorIs(t, CheckPlacement(b, 27, Player1), ErrInvalidAction)
	})

	t.Run("one-sided flank is not a sandwich", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{26: Player2})
		require.NoError(t, CheckPlacement(b, 27, Player1))
	})
}

func TestCheckMove(t *testing.T) {
	t.Run("own unblocked pawn to empty matching-color square is legal", func(t *testing.T) {
		b := position(Player1, MovementPhase, map[int]Player{0: Player1})
		require.NoError(t, CheckMove(b, 0, 9, Player1))
		require.NoError(t, CheckMove(b, 0, 63, Player1), "movement has no adjacency constraint")
	})

	t.Run("moving an opponent or missing pawn is rejected", func(t *testing.T) {
		b := position(Player1, MovementPhase, map[int]Player{0: Player1, 1: Player2})
		require.ErrorIs(t, CheckMove(b, 1, 3, Player1), ErrInvalidAction)
		require.ErrorIs(t, CheckMove(b, 9, 11, Player1), ErrInvalidAction)
	})

	t.Run("blocked pawn cannot move", func(t *testing.T) {
		// 17 and 19 hold player 2 pawns flanking player 1's pawn on 18.
		b := position(Player1, MovementPhase, map[int]Player{18: Player1, 17: Player2, 19: Player2})
		require.True(t, b.Blocked.Has(18))
		require.ErrorIs(t, CheckMove(b, 18, 0, Player1), ErrInvalidAction)
	})

	t.Run("occupied or wrong-color destination is rejected", func(t *testing.T) {
		b := position(Player1, MovementPhase, map[int]Player{0: Player1, 9: Player1})
		require.ErrorIs(t, CheckMove(b, 0, 9, Player1), ErrInvalidAction)
		require.ErrorIs(t, CheckMove(b, 0, 8, Player1), ErrInvalidAction, "dark square")
	})

	t.Run("dead zone destination is rejected", func(t *testing.T) {
		b := position(Player1, MovementPhase, map[int]Player{0: Player1, 26: Player1, 28: Player1})
		require.Equal(t, Player2, b.DeadZoneFor(27))
		require.NoError(t, CheckMove(b, 0, 27, Player1), "dead zone binds only its targeted player")

		b.DeadFor[Player1].Set(45) // light square, flagged dead for player 1
		require.ErrorIs(t, CheckMove(b, 0, 45, Player1), ErrInvalidAction)
	})
}

func TestBlockingAnnotation(t *testing.T) {
	t.Run("horizontal flank by one opponent blocks the center", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{18: Player1, 17: Player2, 19: Player2})

		require.True(t, b.Blocked.Has(18))
		require.True(t, b.Blocking.Has(17))
		require.True(t, b.Blocking.Has(19))
		require.False(t, b.Blocked.Has(17))
	})

	t.Run("vertical flank blocks the center", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{18: Player1, 10: Player2, 26: Player2})

		require.True(t, b.Blocked.Has(18))
		require.True(t, b.Blocking.Has(10))
		require.True(t, b.Blocking.Has(26))
	})

	t.Run("mixed-owner flank does not block", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{18: Player1, 17: Player2, 19: Player1})
		require.False(t, b.Blocked.Has(18))
		require.Zero(t, b.Blocking)
	})

	t.Run("a pawn can be blocked on one axis and blocking on another", func(t *testing.T) {
		// 18 is blocked horizontally by 17/19; 17 together with 15 would
		// block 16, making 17 both blocking (for 18) and part of another
		// block. Keep it simple: 17 and 19 block 18, while 18 and 34 flank
		// player 2's pawn on 26 vertically.
		b := position(Player1, PlacementPhase, map[int]Player{
			18: Player1, 17: Player2, 19: Player2,
			26: Player2, 34: Player1,
		})

		require.True(t, b.Blocked.Has(18))
		require.True(t, b.Blocked.Has(26), "18 and 34 flank 26 vertically")
		require.True(t, b.Blocking.Has(18), "18 blocks 26 while being blocked itself")
	})

	t.Run("edge squares lack a full flank", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{0: Player1, 1: Player2, 8: Player2})
		require.Zero(t, b.Blocked)
	})
}

func TestDeadZoneAnnotation(t *testing.T) {
	t.Run("flanked empty square of the owner's color becomes a dead zone for the opponent", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{26: Player1, 28: Player1})

		require.True(t, b.DeadFor[Player2].Has(27), "27 is light, player 1's color")
		require.False(t, b.DeadFor[Player1].Has(27))
		require.True(t, b.Creators.Has(26))
		require.True(t, b.Creators.Has(28))
	})

	t.Run("no dead zone when the square's color is not the flanking owner's", func(t *testing.T) {
		// 28 (r3c4) is dark; player 1 is light, so flanking it creates nothing.
		b := position(Player1, PlacementPhase, map[int]Player{27: Player1, 29: Player1})

		require.Zero(t, b.DeadFor[Player1])
		require.Zero(t, b.DeadFor[Player2])
		require.Zero(t, b.Creators)
	})

	t.Run("vertical flank also creates a dead zone", func(t *testing.T) {
		// 11 (r1c3) and 27 (r3c3) flank 19 (r2c3, dark) for player 2.
		b := position(Player1, PlacementPhase, map[int]Player{11: Player2, 27: Player2})

		require.True(t, b.DeadFor[Player1].Has(19))
		require.True(t, b.Creators.Has(11))
		require.True(t, b.Creators.Has(27))
	})

	t.Run("mixed owners create nothing", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{26: Player1, 28: Player2})
		require.Zero(t, b.DeadFor[Player1])
		require.Zero(t, b.DeadFor[Player2])
	})
}

func TestDetectWin(t *testing.T) {
	t.Run("four on a clean diagonal wins", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{0: Player1, 9: Player1, 18: Player1, 27: Player1})

		require.Equal(t, Player1, b.Winner())
		require.Equal(t, [WinLength]int{0, 9, 18, 27}, b.WinLine)
	})

	t.Run("player 2 wins on a dark diagonal", func(t *testing.T) {
		b := position(Player2, PlacementPhase, map[int]Player{8: Player2, 17: Player2, 26: Player2, 35: Player2})

		require.Equal(t, Player2, b.Winner())
		require.Equal(t, [WinLength]int{8, 17, 26, 35}, b.WinLine)
	})

	t.Run("anti-diagonal wins too", func(t *testing.T) {
		// (0,6)=6, (1,5)=13, (2,4)=20, (3,3)=27, all light.
		b := position(Player1, PlacementPhase, map[int]Player{6: Player1, 13: Player1, 20: Player1, 27: Player1})

		require.Equal(t, Player1, b.Winner())
		require.Equal(t, [WinLength]int{6, 13, 20, 27}, b.WinLine)
	})

	t.Run("a blocked pawn voids the line", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{0: Player1, 9: Player1, 18: Player1, 27: Player1})
		require.Equal(t, Player1, b.Winner())

		b.Blocked.Set(18)
		detectWin(b)
		require.Equal(t, NoPlayer, b.Winner())
	})

	t.Run("a blocking pawn voids the line", func(t *testing.T) {
		// 17/19 block 18 but also mark themselves blocking; a diagonal
		// through 19 must not count. Line 1,10,19,28 is dark... use player 2:
		// (0,1)=1, (1,2)=10, (2,3)=19, (3,4)=28.
		b := position(Player2, PlacementPhase, map[int]Player{
			1: Player2, 10: Player2, 19: Player2, 28: Player2,
			18: Player1, 17: Player2, // 17+19 flank 18: 19 becomes blocking
		})

		require.True(t, b.Blocking.Has(19))
		require.Equal(t, NoPlayer, b.Winner())
	})

	t.Run("a dead-zone creator voids the line", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{0: Player1, 9: Player1, 18: Player1, 27: Player1})
		b.Creators.Set(9)
		detectWin(b)
		require.Equal(t, NoPlayer, b.Winner())
	})

	t.Run("three in a row is not a win", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{0: Player1, 9: Player1, 18: Player1})
		require.Equal(t, NoPlayer, b.Winner())
	})

	t.Run("row-major scan returns the first line", func(t *testing.T) {
		b := position(Player1, PlacementPhase, map[int]Player{
			0: Player1, 9: Player1, 18: Player1, 27: Player1,
			4: Player1, 13: Player1, 22: Player1, 31: Player1,
		})
		require.Equal(t, Player1, b.Winner())
		require.Equal(t, [WinLength]int{0, 9, 18, 27}, b.WinLine)
	})
}

func TestWinDetectionIsColorSymmetric(t *testing.T) {
	// Mirror a player 1 winning layout onto player 2 squares by shifting one
	// column: the mirrored board yields the mirrored winner.
	p1 := position(Player1, PlacementPhase, map[int]Player{0: Player1, 9: Player1, 18: Player1, 27: Player1})
	p2 := position(Player2, PlacementPhase, map[int]Player{1: Player2, 10: Player2, 19: Player2, 28: Player2})

	require.Equal(t, Player1, p1.Winner())
	require.Equal(t, Player2, p2.Winner())
}
