package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"diago/experiments/metrics"
	"diago/game"
	"diago/searcher"
)

// Local runs a complete game between two agents on one authoritative board.
type Local struct {
	ID     uuid.UUID
	State  *game.Board
	Agents []*MCTSAdapter
}

func LocalEngine(agents []*MCTSAdapter) *Local {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}

	return &Local{
		ID:     uuid.New(),
		State:  game.NewBoard(),
		Agents: agents,
	}
}

// Run executes the game loop until a winner, a stalemate, or the move cap.
func (e *Local) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	// Per-agent backlog of plies played since that agent last searched,
	// so each search can reuse its previous tree.
	pending := make([][]Update, len(e.Agents))

	startTime := time.Now()
	startingPlayer := e.State.Player()
	logger := log.With().Str("game", e.ID.String()).Logger()
	logger.Info().Stringer("player", startingPlayer).Msg("game starting")

	var moveMetrics []metrics.MoveMetric
	step := 1
	for e.State.Winner() == game.NoPlayer && step <= MaxMoves {
		current := e.State.Player()
		ith := int(current) - 1

		action, metric, err := e.Agents[ith].FindAction(e.State, pending[ith])
		pending[ith] = pending[ith][:0]
		if err != nil {
			if errors.Is(err, searcher.ErrNoMove) || errors.Is(err, game.ErrNoLegalActions) {
				logger.Info().Stringer("player", current).Msg("stalemate: no legal actions")
				break
			}
			logger.Error().Err(err).Stringer("player", current).Msg("agent failed to move")
			break
		}

		newState, err := e.State.Apply(action)
		if err != nil {
			logger.Error().Err(err).Stringer("action", action).Msg("rejected agent action")
			break
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       current,
			SearchMetric: metric,
		})

		update := Update{Action: action, Hash: newState.Hash()}
		for i := range pending {
			pending[i] = append(pending[i], update)
		}

		logger.Debug().
			Int("step", step).
			Stringer("player", current).
			Stringer("action", action).
			Stringer("phase", newState.Phase).
			Msg("played")

		e.State = newState
		step++
	}

	winner := e.State.Winner()
	if winner != game.NoPlayer {
		logger.Info().Stringer("winner", winner).Int("moves", step-1).Msg("game over")
	} else {
		logger.Info().Int("moves", step-1).Msg("game over with no winner")
	}

	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: startingPlayer,
		Winner:         winner,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     step - 1,
	}
	return winner, gameMetric, moveMetrics
}
