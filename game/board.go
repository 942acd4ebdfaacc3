package game

import "strings"

// Phase is the game phase. The transition from placement to movement is
// one-way: it happens once both players have placed all their pawns.
type Phase int

const (
	PlacementPhase Phase = iota
	MovementPhase
)

func (p Phase) String() string {
	if p == MovementPhase {
		return "movement"
	}
	return "placement"
}

// Bitboard is a set of square indices, one bit per square.
type Bitboard uint64

func (b Bitboard) Has(index int) bool {
	return b&(1<<uint(index)) != 0
}

func (b *Bitboard) Set(index int) {
	*b |= 1 << uint(index)
}

func (b Bitboard) Count() int {
	count := 0
	for b != 0 {
		b &= b - 1
		count++
	}
	return count
}

// Board is one fully annotated game position. The annotation sets (blocked,
// blocking, dead-zone creators, dead zones) and the terminal marker are pure
// functions of the occupant layout, recomputed on every action; they are never
// mutated independently. Boards copy cheaply, so the searcher can keep many
// snapshots alive at once.
type Board struct {
	Squares [NumSquares]Square
	Turn    Player
	Phase   Phase

	// Pawns left to place / already placed, indexed by Player.
	ToPlace [3]int
	Placed  [3]int

	// Tactical annotations, derived from the occupant layout.
	Blocked  Bitboard
	Blocking Bitboard
	Creators Bitboard
	DeadFor  [3]Bitboard // squares that are dead zones for each player

	// Terminal status. WinLine is meaningful only when Won != NoPlayer.
	Won     Player
	WinLine [WinLength]int

	hash StateHash
}

// NewBoard returns an empty starting position with player 1 to move.
func NewBoard() *Board {
	b := &Board{Turn: Player1, Phase: PlacementPhase}
	for i := range b.Squares {
		row, col := RowCol(i)
		b.Squares[i] = Square{Index: i, Row: row, Col: col, Color: SquareColor(i)}
	}
	b.ToPlace[Player1] = PawnsPerPlayer
	b.ToPlace[Player2] = PawnsPerPlayer
	b.hash = ComputeHash(b)
	return b
}

// Copy returns an independent snapshot of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// Occupant returns the owner of the pawn on a square, or NoPlayer.
func (b *Board) Occupant(index int) Player {
	return b.Squares[index].Occupant
}

// DeadZoneFor returns the player for whom the square is a dead zone, or
// NoPlayer.
func (b *Board) DeadZoneFor(index int) Player {
	if b.DeadFor[Player1].Has(index) {
		return Player1
	}
	if b.DeadFor[Player2].Has(index) {
		return Player2
	}
	return NoPlayer
}

// Player returns the side to move.
func (b *Board) Player() Player {
	return b.Turn
}

// Winner returns the winning player, or NoPlayer while the game is live.
func (b *Board) Winner() Player {
	return b.Won
}

// Hash returns the position hash, maintained incrementally by Apply.
func (b *Board) Hash() StateHash {
	return b.hash
}

// Play applies an action as a State, for the searcher.
func (b *Board) Play(a Action) (State, error) {
	return b.Apply(a)
}

// String renders the board for logs: x for player 1, o for player 2, dots for
// empty light squares, spaces for empty dark squares.
func (b *Board) String() string {
	var sb strings.Builder
	for row := BoardSize - 1; row >= 0; row-- {
		for col := 0; col < BoardSize; col++ {
			sq := b.Squares[Index(row, col)]
			switch sq.Occupant {
			case Player1:
				sb.WriteByte('x')
			case Player2:
				sb.WriteByte('o')
			default:
				if sq.Color == Light {
					sb.WriteByte('.')
				} else {
					sb.WriteByte(' ')
				}
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
