package engine

import (
	"diago/experiments/metrics"
	"diago/game"
	"diago/searcher"
	"diago/searcher/agent"
)

// MaxMoves caps runaway games: the movement phase admits shuffling forever.
const MaxMoves = 1000

type Engine interface {
	// Run starts a game till there's a winner, a stalemate, or the move cap.
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

// Update is one authoritative ply, recorded so an agent can walk its search
// tree forward instead of rebuilding it.
type Update struct {
	Action game.Action
	Hash   game.StateHash
}

// MCTSAdapter bridges the engine loop to a search agent.
type MCTSAdapter struct {
	InternalAgent agent.Agent
}

// FindAction asks the wrapped agent for a move and re-validates it against
// the authoritative board before handing it back.
func (ma *MCTSAdapter) FindAction(b *game.Board, recentUpdates []Update) (game.Action, metrics.SearchMetric, error) {
	segments := make([]searcher.Segment, len(recentUpdates))
	for i, upd := range recentUpdates {
		segments[i] = searcher.Segment{
			Action:    upd.Action,
			StateHash: upd.Hash,
		}
	}

	candidate, metric, err := ma.InternalAgent.FindAction(b, segments)
	if err != nil {
		return nil, metric, err
	}

	if _, applyErr := b.Apply(candidate); applyErr != nil {
		// The agent returned something the authoritative rules reject.
		// Fall back to any legal action rather than corrupt the game.
		fallback := b.LegalActions()
		if len(fallback) == 0 {
			return nil, metric, game.ErrNoLegalActions
		}
		return fallback[0], metric, nil
	}
	return candidate, metric, nil
}
