package game

// The static evaluator scores a non-terminal board for the side to move by
// extracting a feature vector. The dominant signal is the diagonal window
// scan: 4-length windows on the player's color that are fully open except for
// the player's own pawns, graded by how many pawns they already hold.

// PatternTable is an optional read-only side table of learned priors, keyed
// by position hash. It is injected by the caller; the evaluator never fetches
// anything itself.
type PatternTable map[StateHash]float64

// Features is the raw feature vector extracted for one player.
type Features struct {
	Positional int            // positional weight over the player's pawns
	Blocked    int            // player's pawns currently blocked
	Blocking   int            // player's pawns blocking an opponent pawn
	Creators   int            // player's pawns sustaining a dead zone
	Windows    [WinLength]int // open diagonal windows holding 0..3 own pawns
}

// Feature weights. Windows close to a full diagonal dominate everything else.
var windowWeight = [WinLength]float64{0, 0.010, 0.035, 0.120}

const (
	positionalWeight = 0.004
	blockedWeight    = 0.010
	tiedWeight       = 0.005 // blocking and dead-zone creator pawns
)

// squareWeight grades positions: corners over edges over the center.
func squareWeight(index int) int {
	row, col := RowCol(index)
	edgeRow := row == 0 || row == BoardSize-1
	edgeCol := col == 0 || col == BoardSize-1
	switch {
	case edgeRow && edgeCol:
		return 3
	case edgeRow || edgeCol:
		return 2
	}
	return 1
}

// ExtractFeatures computes the feature vector for one player.
func ExtractFeatures(b *Board, p Player) Features {
	var f Features
	for index := range b.Squares {
		if b.Squares[index].Occupant != p {
			continue
		}
		f.Positional += squareWeight(index)
		if b.Blocked.Has(index) {
			f.Blocked++
		}
		if b.Blocking.Has(index) {
			f.Blocking++
		}
		if b.Creators.Has(index) {
			f.Creators++
		}
	}
	scanWindows(b, p, &f)
	return f
}

// scanWindows counts open 4-length diagonal windows on p's color. A window is
// open when every square is empty or holds p's own pawn and none of its
// squares is blocked, blocking, a dead-zone creator, or a dead zone for p.
// These are the same exclusions win detection applies.
func scanWindows(b *Board, p Player, f *Features) {
	// Diagonal steps keep (row+col) parity constant, so checking the
	// window's start square color covers the whole window.
	for index := range b.Squares {
		if b.Squares[index].Color != p.Color() {
			continue
		}
		for _, dir := range [2][2]int{{1, 1}, {1, -1}} {
			pawns, ok := openWindow(b, index, dir, p)
			if ok && pawns < WinLength {
				f.Windows[pawns]++
			}
		}
	}
}

func openWindow(b *Board, start int, dir [2]int, p Player) (pawns int, ok bool) {
	row, col := RowCol(start)
	for step := 0; step < WinLength; step++ {
		if !OnBoard(row, col) {
			return 0, false
		}
		index := Index(row, col)
		switch b.Squares[index].Occupant {
		case p:
			pawns++
		case NoPlayer:
		default:
			return 0, false
		}
		if b.Blocked.Has(index) || b.Blocking.Has(index) || b.Creators.Has(index) ||
			b.DeadFor[p].Has(index) {
			return 0, false
		}
		row += dir[0]
		col += dir[1]
	}
	return pawns, true
}

// EvaluatePosition is the default evaluator, with no learned patterns.
func EvaluatePosition(s State) float64 {
	return evaluate(s, nil)
}

// NewEvaluator returns an evaluator that blends the heuristic score with
// priors from the injected pattern table.
func NewEvaluator(patterns PatternTable) Evaluate {
	return func(s State) float64 {
		return evaluate(s, patterns)
	}
}

func evaluate(s State, patterns PatternTable) float64 {
	b, ok := s.(*Board)
	if !ok {
		panic("unexpected state type")
	}

	p := b.Turn
	if b.Won == p {
		return 1.0
	}
	if b.Won == p.Opponent() {
		return 0.0
	}

	own := ExtractFeatures(b, p)
	opp := ExtractFeatures(b, p.Opponent())

	score := 0.5
	for k := 1; k < WinLength; k++ {
		score += windowWeight[k] * float64(own.Windows[k]-opp.Windows[k])
	}
	score += positionalWeight * float64(own.Positional-opp.Positional)
	score -= blockedWeight * float64(own.Blocked-opp.Blocked)
	score -= tiedWeight * float64((own.Blocking+own.Creators)-(opp.Blocking+opp.Creators))

	if prior, found := patterns[b.Hash()]; found {
		score = (score + prior) / 2
	}

	return clamp(score)
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
