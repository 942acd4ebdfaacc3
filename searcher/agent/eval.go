package agent

import (
	"diago/experiments/metrics"
	"diago/game"
	"diago/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindAction(state game.State, lineage []searcher.Segment) (game.Action, metrics.SearchMetric, error) {
	return a.mcts.FindBestAction(state, lineage)
}
