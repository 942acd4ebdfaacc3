package searcher

import "time"

// Difficulty tiers are nothing but configuration bundles: the search
// algorithm itself is identical across tiers. Weaker tiers get a smaller
// budget, shallower rollouts and a chance of playing a merely decent move
// instead of searching at all.

// Casual plays quickly and deliberately imperfectly.
func Casual() []Option {
	return []Option{
		WithEpisodes(250),
		WithCutoff(12),
		WithExploration(1.6),
		WithRandomness(0.30),
		WithTranspositions(1 << 12),
	}
}

// Standard is a balanced opponent.
func Standard() []Option {
	return []Option{
		WithEpisodes(1500),
		WithCutoff(24),
		WithRandomness(0.05),
		WithTranspositions(1 << 15),
	}
}

// Tournament spends a fixed wall-clock budget per move and never plays an
// intentionally random move.
func Tournament() []Option {
	return []Option{
		WithDuration(2 * time.Second),
		WithCutoff(48),
		WithGoroutines(4),
		WithTranspositions(1 << 18),
	}
}
