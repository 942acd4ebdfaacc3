package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"diago/engine"
	"diago/experiments"
	"diago/searcher"
	"diago/searcher/agent"
)

func main() {
	games := flag.Int("games", 1, "Number of games to play")
	tier1 := flag.String("tier1", "standard", "Difficulty tier for player 1 (casual, standard, tournament)")
	tier2 := flag.String("tier2", "standard", "Difficulty tier for player 2 (casual, standard, tournament)")
	experiment := flag.String("experiment", "", "Run an experiment instead (parallelization, cutoff, randomness)")
	debug := flag.Bool("debug", false, "Log every move")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).Level(level)

	switch *experiment {
	case "":
	case "parallelization":
		experiments.RunParallelizationExperiment()
		return
	case "cutoff":
		experiments.RunCutoffExperiment()
		return
	case "randomness":
		experiments.RunRandomnessExperiment()
		return
	default:
		log.Fatal().Str("experiment", *experiment).Msg("unknown experiment")
	}

	wins := map[string]int{}
	for i := 0; i < *games; i++ {
		agents := []*engine.MCTSAdapter{
			{InternalAgent: agent.NewEvaluationAgent(searcher.NewMCTS(tierOptions(*tier1)...))},
			{InternalAgent: agent.NewEvaluationAgent(searcher.NewMCTS(tierOptions(*tier2)...))},
		}
		winner, gameMetric, _ := engine.LocalEngine(agents).Run()
		wins[winner.String()]++
		log.Info().
			Int("game", i+1).
			Stringer("winner", winner).
			Int("moves", gameMetric.TotalMoves).
			Dur("duration", gameMetric.Duration).
			Msg("finished")
	}
	log.Info().Interface("wins", wins).Msgf("played %d games", *games)
}

func tierOptions(tier string) []searcher.Option {
	switch tier {
	case "casual":
		return searcher.Casual()
	case "tournament":
		return searcher.Tournament()
	case "standard":
		return searcher.Standard()
	}
	log.Fatal().Str("tier", tier).Msg("unknown difficulty tier")
	return nil
}
