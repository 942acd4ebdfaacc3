package game

// Zobrist-style position hashing. One pseudo-random 64-bit key per
// (square, occupant) pair, plus keys for the side to move and the phase, all
// XOR-folded. Two boards with the same occupant layout, phase and side to
// move hash identically regardless of history, which is what makes the
// transposition cache work. The table is generated once at process start.

type zobristTable struct {
	pieces [NumSquares][3]uint64 // indexed by square, Player
	side   [3]uint64             // indexed by Player to move
	phase  [2]uint64             // indexed by Phase
}

var zobrist = newZobristTable()

func newZobristTable() *zobristTable {
	rng := splitmix64{state: 0x9e3779b97f4a7c15}
	t := &zobristTable{}
	for sq := 0; sq < NumSquares; sq++ {
		t.pieces[sq][Player1] = rng.next()
		t.pieces[sq][Player2] = rng.next()
	}
	t.side[Player1] = rng.next()
	t.side[Player2] = rng.next()
	t.phase[PlacementPhase] = rng.next()
	t.phase[MovementPhase] = rng.next()
	return t
}

// ComputeHash computes the position hash from scratch. Apply maintains the
// same value incrementally; the two must always agree.
func ComputeHash(b *Board) StateHash {
	var hash uint64
	for index := range b.Squares {
		if occupant := b.Squares[index].Occupant; occupant != NoPlayer {
			hash ^= zobrist.pieces[index][occupant]
		}
	}
	hash ^= zobrist.side[b.Turn]
	hash ^= zobrist.phase[b.Phase]
	return StateHash(hash)
}

// A fixed-seed splitmix64 keeps the key table identical across runs.
type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
