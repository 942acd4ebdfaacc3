package searcher

import (
	"sort"

	"golang.org/x/exp/rand"

	"diago/game"
)

// Rollout move selection: heuristic-guided rather than uniform random. Each
// candidate action is scored by the static evaluator's verdict on the
// resulting state and the move is sampled from the top-scoring set.

const (
	// maxPolicyWidth caps how many candidate actions get scored per rollout
	// ply; beyond it a random subset is scored instead.
	maxPolicyWidth = 24

	// policyEpsilon is the score margin within which actions count as
	// equally good and are sampled from uniformly.
	policyEpsilon = 0.02
)

// scoreAction applies the action and returns the mover's value of the
// resulting state.
func scoreAction(state game.State, action game.Action, evaluate game.Evaluate) (float64, bool) {
	child, err := state.Play(action)
	if err != nil {
		return 0, false
	}
	return reward(child.Player(), evaluate(child), state.Player()), true
}

// rolloutAction picks the next rollout move. A cached best move for the
// position takes priority; otherwise actions are scored and one of the
// near-best is sampled.
func rolloutAction(state game.State, actions []game.Action, evaluate game.Evaluate, table *Table) game.Action {
	if len(actions) == 1 {
		return actions[0]
	}

	if table != nil {
		if entry, ok := table.Probe(state.Hash(), 0); ok && entry.Best != nil {
			for _, action := range actions {
				if action == entry.Best {
					return action
				}
			}
		}
	}

	candidates := actions
	if len(candidates) > maxPolicyWidth {
		candidates = make([]game.Action, maxPolicyWidth)
		for i, ith := range rand.Perm(len(actions))[:maxPolicyWidth] {
			candidates[i] = actions[ith]
		}
	}

	best := candidates[:0:0]
	maxScore := 0.0
	for _, action := range candidates {
		score, ok := scoreAction(state, action, evaluate)
		if !ok {
			continue
		}
		switch {
		case len(best) == 0 || score > maxScore+policyEpsilon:
			maxScore = score
			best = append(best[:0], action)
		case score > maxScore-policyEpsilon:
			best = append(best, action)
			if score > maxScore {
				maxScore = score
			}
		}
	}
	if len(best) == 0 {
		return actions[rand.Intn(len(actions))]
	}
	return best[rand.Intn(len(best))]
}

// weightedRandomAction picks uniformly among the better half of the legal
// actions. It implements the intentional-randomness difficulty knob: weaker
// play without touching the search itself.
func weightedRandomAction(state game.State, actions []game.Action, evaluate game.Evaluate) game.Action {
	type scored struct {
		action game.Action
		score  float64
	}
	ranked := make([]scored, 0, len(actions))
	for _, action := range actions {
		if score, ok := scoreAction(state, action, evaluate); ok {
			ranked = append(ranked, scored{action, score})
		}
	}
	if len(ranked) == 0 {
		return actions[rand.Intn(len(actions))]
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	half := (len(ranked) + 1) / 2
	return ranked[rand.Intn(half)].action
}
