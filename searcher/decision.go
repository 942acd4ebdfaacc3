package searcher

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"

	"diago/game"
)

// decision is a search tree node. Its statistics are stored from the
// perspective of the player who moved into the node (mover), so a parent
// picking the child with the best win rate is maximizing its own outcome.
// The per-node lock supports optional tree parallelization; rewards carry a
// temporary virtual loss while a simulation is in flight below the node.
type decision struct {
	sync.RWMutex
	parent   *decision
	mover    game.Player
	player   game.Player
	hash     game.StateHash
	cSquared float64

	unexplored []game.Action
	explored   []game.Action
	children   []*decision
	rewards    float64
	visits     int
}

func newDecision(parent *decision, mover game.Player, state game.State, cSquared float64) *decision {
	// Shuffling up front makes expansion pop untried actions in random order.
	actions := state.LegalActions()
	rand.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
	})

	return &decision{
		parent:     parent,
		mover:      mover,
		player:     state.Player(),
		hash:       state.Hash(),
		cSquared:   cSquared,
		unexplored: actions,
		children:   make([]*decision, 0, len(actions)),
	}
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	for len(d.unexplored) > 0 { // Expandable node
		action := d.unexplored[len(d.unexplored)-1]
		d.unexplored = d.unexplored[:len(d.unexplored)-1]
		childState, err := state.Play(action)
		if err != nil {
			// Application failed: discard the action and try the next one.
			continue
		}
		child := newDecision(d, d.player, childState, d.cSquared)
		d.explored = append(d.explored, action)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, childState, false
	}

	if len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	childState, err := state.Play(d.explored[ith])
	if err != nil {
		panic("explored action no longer applies to the same state")
	}
	return child, childState, true
}

// pickChild returns the index of the child maximizing UCB1, choosing randomly
// among ties.
func (d *decision) pickChild() int {
	if d.visits == 0 {
		panic("node has children but no visits")
	}

	normalizer := d.cSquared * math.Log(float64(d.visits))

	maxScore := math.Inf(-1)
	var best []int
	for i, child := range d.children {
		score := child.score(normalizer)
		switch {
		case score > maxScore:
			maxScore = score
			best = best[:0]
			best = append(best, i)
		case score == maxScore:
			best = append(best, i)
		}
	}
	return best[rand.Intn(len(best))]
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) score(normalizer float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb1(d.rewards, d.visits, normalizer)
}

func (d *decision) Visits() int {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

func (d *decision) Backup(perspective game.Player, score float64) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(perspective, score, d.mover)
	d.visits++

	if d.parent == nil {
		return nil
	}
	return d.parent
}

// bestAction returns the root action with the highest win rate. Exploration
// bonuses only steer the search, never the reported decision.
func (d *decision) bestAction() (game.Action, bool) {
	d.RLock()
	defer d.RUnlock()

	if len(d.children) == 0 {
		return nil, false
	}

	bestIndex := 0
	maxRate := math.Inf(-1)
	for i, child := range d.children {
		child.RLock()
		rate := 0.0
		if child.visits > 0 {
			rate = child.rewards / float64(child.visits)
		}
		child.RUnlock()
		if rate > maxRate {
			maxRate = rate
			bestIndex = i
		}
	}
	return d.explored[bestIndex], true
}

// Policy returns the root visit distribution over explored actions.
func (d *decision) Policy() map[game.Action]float64 {
	d.RLock()
	defer d.RUnlock()

	total := 0
	for _, child := range d.children {
		total += child.Visits()
	}
	policy := make(map[game.Action]float64, len(d.explored))
	if total == 0 {
		return policy
	}
	for i, action := range d.explored {
		policy[action] = float64(d.children[i].Visits()) / float64(total)
	}
	return policy
}
