package sim

import (
	"context"
	"sync"

	"github.com/san-kum/ropeclimb/internal/game"
)

// GameFactory builds a fresh game for one run of an ensemble.
type GameFactory func(gravity float64) *game.Game

// Ensemble plays the same script at several gravity settings concurrently.
// Every run gets its own game and its own metrics.
type Ensemble struct {
	newGame    GameFactory
	newMetrics func() []Metric
}

func NewEnsemble(newGame GameFactory, newMetrics func() []Metric) *Ensemble {
	if newGame == nil {
		newGame = func(g float64) *game.Game { return game.New(game.WithGravity(g)) }
	}
	return &Ensemble{newGame: newGame, newMetrics: newMetrics}
}

// Run returns one result per gravity value, in the order given.
func (e *Ensemble) Run(ctx context.Context, gravities []float64, script *Script, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(gravities))
	errs := make([]error, len(gravities))

	var wg sync.WaitGroup
	for i, gravity := range gravities {
		wg.Add(1)
		go func(idx int, gravity float64) {
			defer wg.Done()

			s := New()
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, e.newGame(gravity), script, cfg)
		}(i, gravity)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
