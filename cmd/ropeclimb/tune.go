package main

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/optim"
	"github.com/san-kum/ropeclimb/internal/sim"
	"github.com/spf13/cobra"
)

func tuneCmd() *cobra.Command {
	var (
		cutTicks   []int
		climbTicks []int
		ticks      int
	)
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "find the cut and climb timing that wins fastest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			gs, err := optim.NewGridSearch(
				[]string{"cut_at", "climb_at"},
				[][]float64{toFloats(cutTicks), toFloats(climbTicks)},
			)
			if err != nil {
				return err
			}

			simCfg := sim.Config{MaxTicks: ticks}
			objective := func(ctx context.Context, p map[string]float64) (float64, error) {
				script := sim.QuickScript(int(p["climb_at"]), int(p["cut_at"]))
				result, err := sim.New().Run(ctx, game.New(game.WithGravity(cfg.Gravity)), script, simCfg)
				if err != nil {
					return 0, err
				}
				if !result.Won {
					return math.Inf(1), nil
				}
				return float64(result.WonAt), nil
			}

			logger.Info("tuning", "gravity", cfg.Gravity, "candidates", len(cutTicks)*len(climbTicks))
			best, wonAt, err := gs.Search(ctx, objective)
			if err != nil {
				return err
			}
			if math.IsInf(wonAt, 1) {
				fmt.Printf("no timing wins within %d ticks\n", ticks)
				return nil
			}
			fmt.Printf("cut at tick %d, climb at tick %d: won at tick %d\n",
				int(best["cut_at"]), int(best["climb_at"]), int(wonAt))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntSliceVar(&cutTicks, "cut-at", []int{-1, 0, 15, 30, 60}, "cut ticks to try, -1 never")
	f.IntSliceVar(&climbTicks, "climb-at", []int{0, 15, 30, 60}, "climb ticks to try")
	f.IntVar(&ticks, "ticks", sim.DefaultConfig().MaxTicks, "tick budget per run")
	return cmd
}

func toFloats(vs []int) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}
