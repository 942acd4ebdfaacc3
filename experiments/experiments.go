package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"diago/engine"
	"diago/experiments/metrics"
	"diago/game"
	"diago/searcher"
	"diago/searcher/agent"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 100 * time.Millisecond
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Goroutines: 2, Duration: TimeBudget},
	{ID: 3, Goroutines: 4, Duration: TimeBudget},
	{ID: 4, Goroutines: 8, Duration: TimeBudget},
	{ID: 5, Goroutines: 16, Duration: TimeBudget},
}

// RunParallelizationExperiment measures how search throughput and playing
// strength scale with worker count. Each matchup pairs an agent against the
// sequential baseline.
func RunParallelizationExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("parallelization", append(parallelConfigs, baseline), matchUps)
}

// RunCutoffExperiment compares rollout depth limits against full playouts.
func RunCutoffExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 4, Duration: TimeBudget} // Full playouts
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 8},
		{ID: 2, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 16},
		{ID: 3, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 32},
		{ID: 4, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 64},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("cutoff", append(cutoffConfigs, baseline), matchUps)
}

// RunRandomnessExperiment measures how much the intentional-randomness knob
// actually weakens play.
func RunRandomnessExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Episodes: 1000}
	randomConfigs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 1, Episodes: 1000, Randomness: 0.1},
		{ID: 2, Goroutines: 1, Episodes: 1000, Randomness: 0.25},
		{ID: 3, Goroutines: 1, Episodes: 1000, Randomness: 0.5},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range randomConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("randomness", append(randomConfigs, baseline), matchUps)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < NumGames; i++ {
			winner, gameMetric, moveMetrics := runGame(config1, config2)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s", mi+1, len(matchUps), i+1, NumGames, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata and results
	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write game records: %v", err))
	}

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write move records: %v", err))
	}

	log.Info().Msg("stored experiment records")
}

// runGame executes a single game between two agents and returns the winner
func runGame(config1, config2 metrics.AgentConfig) (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	agents := []*engine.MCTSAdapter{
		{InternalAgent: agent.NewEvaluationAgent(createMCTS(config1))},
		{InternalAgent: agent.NewEvaluationAgent(createMCTS(config2))},
	}
	e := engine.LocalEngine(agents)

	return e.Run()
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(),
	}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.Randomness > 0 {
		options = append(options, searcher.WithRandomness(config.Randomness))
	}

	return searcher.NewMCTS(options...)
}
