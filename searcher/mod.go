package searcher

import (
	"errors"
	"math"

	"diago/game"
)

// Rewards estimate the chance of winning, so they live in [0, 1].
const (
	Win  = 1.0
	Loss = 0.0
	Draw = 0.5
)

// DefaultCSquared is the squared UCT exploration constant (C = sqrt(2)).
const DefaultCSquared = 2.0

// MaxCutoff effectively disables the rollout depth limit.
const MaxCutoff = math.MaxInt32

// ErrNoMove is returned when the root position has no legal action: the
// caller must treat it as "the synthetic player cannot move".
var ErrNoMove = errors.New("no legal action at root")

// Node is one node of the search tree.
type Node interface {
	// SelectOrExpand either descends to the best child (selected=true) or
	// expands one untried action into a new child (selected=false). A
	// terminal node returns itself.
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	// Backup propagates a rollout result and returns the parent.
	Backup(perspective game.Player, score float64) Node
	Visits() int
	applyLoss()
	score(normalizer float64) float64
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Unexplored nodes are infinitely attractive.
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

// reward orients a rollout score to the given player's perspective.
func reward(perspective game.Player, score float64, player game.Player) float64 {
	if player == perspective {
		return score
	}
	return 1 - score
}
