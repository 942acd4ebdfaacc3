package searcher

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"diago/experiments/metrics"
	"diago/game"
	"diago/utils"
)

type Option func(m *MCTS)

// Segment is one observed ply since the previous search, used to descend the
// old tree to the new root instead of discarding it.
type Segment struct {
	Action    game.Action
	StateHash game.StateHash
}

// MCTS is the decision engine: iterative UCT search with heuristic-guided
// rollouts, a transposition cache for leaf scoring, and optional tree
// parallelization. Difficulty is purely configuration: budget, exploration,
// cutoff and intentional randomness.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	cSquared   float64
	randomness float64
	evaluate   game.Evaluate
	table      *Table
	root       *decision
	metrics    metrics.Collector
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff caps rollout depth; cut-off rollouts are scored by the evaluator.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

// WithExploration sets the UCT exploration constant C.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.cSquared = c * c
		}
	}
}

// WithRandomness sets the probability of skipping search entirely and playing
// a quality-weighted random action instead.
func WithRandomness(probability float64) Option {
	return func(m *MCTS) {
		if probability >= 0 && probability <= 1 {
			m.randomness = probability
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithTranspositions sets the transposition cache capacity.
func WithTranspositions(capacity int) Option {
	return func(m *MCTS) {
		m.table = NewTable(capacity)
	}
}

// WithSeed seeds the searcher's randomness, for reproducible runs.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		rand.Seed(seed)
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: 1,
		cutoff:     MaxCutoff,
		cSquared:   DefaultCSquared,
		evaluate:   game.EvaluatePosition,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	if m.table == nil {
		m.table = NewTable(DefaultTableCapacity)
	}
	return m
}

// ChooseAction is the one-shot decision contract: configure a searcher, run
// it against the state, return the best action. ErrNoMove means the side to
// move has no legal action.
func ChooseAction(state game.State, options ...Option) (game.Action, error) {
	action, _, err := NewMCTS(options...).FindBestAction(state, nil)
	return action, err
}

// FindBestAction runs the configured search budget from state and returns the
// action with the best win rate, along with search metrics. The lineage of
// plies since the previous call lets the search reuse its old tree.
func (m *MCTS) FindBestAction(state game.State, lineage []Segment) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		m.root = nil
		return nil, metrics.SearchMetric{}, ErrNoMove
	}
	if len(actions) == 1 {
		// Degenerate case: nothing to search.
		m.root = nil
		return actions[0], metrics.SearchMetric{}, nil
	}
	if m.randomness > 0 && rand.Float64() < m.randomness {
		m.root = nil
		return weightedRandomAction(state, actions, m.evaluate), metrics.SearchMetric{}, nil
	}

	m.findRoot(lineage, state)

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	best, ok := m.root.bestAction()
	if !ok {
		return nil, metric, ErrNoMove
	}
	m.table.Store(state.Hash(), Entry{
		Value:       m.root.rewards / float64(max(m.root.visits, 1)),
		Perspective: m.root.mover,
		Depth:       m.cutoff,
		Best:        best,
	})
	return best, metric, nil
}

// Policy returns the most recent search's root visit distribution.
func (m *MCTS) Policy() map[game.Action]float64 {
	if m.root == nil {
		return nil
	}
	return m.root.Policy()
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	// When a wall-clock budget is also set, whichever limit hits first wins.
	var deadline time.Time
	if m.duration > 0 {
		deadline = time.Now().Add(m.duration)
	}

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				if !deadline.IsZero() && time.Now().After(deadline) {
					return
				}
				m.simulate(state)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// findRoot descends the previous tree along the observed lineage; a miss or a
// hash mismatch resets the tree.
func (m *MCTS) findRoot(lineage []Segment, state game.State) {
	root := traverse(m.root, lineage)
	if root == nil || root.hash != state.Hash() {
		m.root = newDecision(nil, state.Player().Opponent(), state, m.cSquared)
		m.metrics.SetTreeReset(true)
	} else {
		root.parent = nil
		m.root = root
		m.metrics.SetTreeReset(false)
	}
}

func traverse(root *decision, lineage []Segment) *decision {
	if root == nil {
		return nil
	}

	node := root
	for _, segment := range lineage {
		node.RLock()
		ith := utils.FindIndex(node.explored, segment.Action)
		var child *decision
		if ith >= 0 {
			child = node.children[ith]
		}
		node.RUnlock()

		if child == nil { // Node has not expanded this action
			return nil
		}
		if child.hash != segment.StateHash {
			log.Warn().
				Uint64("node", uint64(child.hash)).
				Uint64("segment", uint64(segment.StateHash)).
				Msg("stale tree: state hash mismatch")
			return nil
		}
		node = child
	}
	return node
}

func (m *MCTS) simulate(state game.State) {
	newNode, newState := selectThenExpand(m.root, state)
	perspective, score := m.rollout(newState)
	backup(newNode, perspective, score)
}

func selectThenExpand(root Node, state game.State) (Node, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

// rollout plays forward with the heuristic policy until a terminal state or
// the cutoff, then scores the leaf from the cache or the static evaluator.
func (m *MCTS) rollout(state game.State) (game.Player, float64) {
	depth := 0
	for {
		if winner := state.Winner(); winner != game.NoPlayer {
			m.metrics.AddFullPlayout()
			m.table.Store(state.Hash(), Entry{Value: Win, Perspective: winner, Depth: MaxCutoff})
			return winner, Win
		}
		actions := state.LegalActions()
		if len(actions) == 0 { // Stalemate before cutoff
			m.metrics.AddFullPlayout()
			return state.Player(), Draw
		}
		if depth >= m.cutoff {
			break
		}

		next, err := state.Play(rolloutAction(state, actions, m.evaluate, m.table))
		if err != nil {
			log.Warn().Err(err).Msg("rollout applied an illegal action")
			break
		}
		state = next
		depth++
	}

	// At the cutoff state, return a cached or freshly evaluated score from
	// the current player's perspective.
	if entry, ok := m.table.Probe(state.Hash(), 0); ok {
		m.metrics.AddCacheHit()
		return entry.Perspective, entry.Value
	}
	m.metrics.AddCacheMiss()
	score := m.evaluate(state)
	m.table.Store(state.Hash(), Entry{Value: score, Perspective: state.Player(), Depth: 0})
	return state.Player(), score
}

func backup(newNode Node, perspective game.Player, score float64) {
	node := newNode
	for node != nil {
		node = node.Backup(perspective, score)
	}
}
