package agent

import (
	"diago/experiments/metrics"
	"diago/game"
	"diago/searcher"
)

type Agent interface {
	// FindAction returns the agent's chosen action and performance metrics
	// (if collected) from the search. searcher.ErrNoMove means the agent
	// cannot move.
	FindAction(state game.State, lineage []searcher.Segment) (game.Action, metrics.SearchMetric, error)
}
