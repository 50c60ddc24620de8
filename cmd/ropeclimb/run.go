package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ropeclimb/internal/analysis"
	"github.com/san-kum/ropeclimb/internal/export"
	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/metrics"
	"github.com/san-kum/ropeclimb/internal/sim"
	"github.com/san-kum/ropeclimb/internal/storage"
	"github.com/spf13/cobra"
)

var (
	scriptFile string
	maxTicks   int
	climbAt    int
	cutAt      int
	plot       bool
	csvOut     string
	pathOut    string
	sweep      []float64
	save       bool
	validate   bool
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "play a scripted game headless and report metrics",
		RunE:  runSimulation,
	}
	f := cmd.Flags()
	f.StringVar(&scriptFile, "script", "", "scenario file (yaml)")
	f.IntVar(&maxTicks, "ticks", sim.DefaultConfig().MaxTicks, "maximum ticks")
	f.IntVar(&climbAt, "climb-at", 0, "tick to start climbing, -1 never")
	f.IntVar(&cutAt, "cut-at", -1, "tick to cut the rope, -1 never")
	f.BoolVar(&plot, "plot", false, "plot the climber's rope length")
	f.StringVar(&csvOut, "csv", "", "write the trace as csv ('-' for stdout)")
	f.StringVar(&pathOut, "path", "", "write the climber's path as svg")
	f.Float64SliceVar(&sweep, "sweep", nil, "run once per gravity value, e.g. 1.62,3.71,9.81")
	f.BoolVar(&save, "save", false, "archive the run under --data")
	f.BoolVar(&validate, "validate", true, "stop on invalid chain state")
	return cmd
}

// loadScript returns the scenario and the run config after applying the
// scenario's own gravity and tick budget, unless flags override them.
func loadScript(cmd *cobra.Command) (*sim.Script, sim.Config, error) {
	simCfg := sim.DefaultConfig()
	simCfg.MaxTicks = maxTicks
	simCfg.ValidateState = validate

	if scriptFile == "" {
		return sim.QuickScript(climbAt, cutAt), simCfg, nil
	}

	script, err := sim.LoadScript(scriptFile)
	if err != nil {
		return nil, simCfg, fmt.Errorf("failed to load script: %w", err)
	}
	if script.MaxTicks > 0 && !cmd.Flags().Changed("ticks") {
		simCfg.MaxTicks = script.MaxTicks
	}
	if script.Gravity != nil && !cmd.Flags().Changed("preset") {
		cfg.Gravity = *script.Gravity
	}
	return script, simCfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	script, simCfg, err := loadScript(cmd)
	if err != nil {
		return err
	}

	if len(sweep) > 0 {
		return runSweep(ctx, script, simCfg)
	}

	s := sim.New()
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	logger.Info("running simulation", "script", script.Name, "gravity", cfg.Gravity, "max_ticks", simCfg.MaxTicks)
	start := time.Now()

	result, err := s.Run(ctx, newGame(logger), script, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	printResult(os.Stdout, result)

	if plot && len(result.Trace) > 0 {
		fmt.Println()
		fmt.Println(plotLength(result.Trace))
	}

	if csvOut != "" {
		if err := writeCSV(csvOut, result); err != nil {
			return err
		}
	}

	if pathOut != "" {
		svg := export.ClimbPathToSVG(result.Trace, result.Final.Width, result.Final.Height, export.DefaultPalette)
		if err := os.WriteFile(pathOut, []byte(svg), 0644); err != nil {
			return err
		}
		logger.Info("climb path written", "path", pathOut)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(script.Name, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func runSweep(ctx context.Context, script *sim.Script, simCfg sim.Config) error {
	simCfg.Trace = false
	ens := sim.NewEnsemble(func(gravity float64) *game.Game {
		return game.New(game.WithGravity(gravity), game.WithLogger(logger))
	}, metrics.Default)

	logger.Info("running sweep", "script", script.Name, "runs", len(sweep))
	results, err := ens.Run(ctx, sweep, script, simCfg)
	if err != nil {
		return err
	}

	names := metricNames(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "GRAVITY\tWON\tWON AT\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.2f\t%v\t%d", r.Gravity, r.Won, r.WonAt)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func printResult(w io.Writer, r *sim.Result) {
	fmt.Fprintf(w, "ticks: %d\n", r.Ticks)
	fmt.Fprintf(w, "gravity: %.2f\n", r.Gravity)
	if r.Won {
		fmt.Fprintf(w, "won at tick %d\n", r.WonAt)
	} else {
		fmt.Fprintln(w, "did not reach the top")
	}
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range metricNames(r.Metrics) {
		fmt.Fprintf(w, "  %s: %.6f\n", name, r.Metrics[name])
	}
}

func metricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func plotLength(trace []sim.Sample) string {
	data := make([]float64, len(trace))
	for i, s := range trace {
		data[i] = s.Length
	}
	return asciigraph.Plot(downsample(data, 80),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("climber rope length"),
	)
}

func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	step := float64(len(data)) / float64(n)
	for i := range out {
		out[i] = data[int(float64(i)*step)]
	}
	return out
}

func writeCSV(path string, result *sim.Result) error {
	if path == "-" {
		return sim.WriteCSV(os.Stdout, result)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := sim.WriteCSV(f, result); err != nil {
		return err
	}
	logger.Info("trace written", "path", path, "rows", len(result.Trace))
	return f.Close()
}

func runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCRIPT\tGRAVITY\tTICKS\tWON AT\tTIMESTAMP")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%d\t%s\n",
					r.ID, r.Script, r.Gravity, r.Ticks, r.WonAt, r.Timestamp.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}

func plotCmd() *cobra.Command {
	var phase bool
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			trace, err := st.LoadTrace(args[0])
			if err != nil {
				return err
			}
			if len(trace) == 0 {
				return fmt.Errorf("run %s has no trace", meta.ID)
			}

			angles := make([]float64, len(trace))
			for i, s := range trace {
				angles[i] = s.Angle
			}

			fmt.Printf("%s at gravity %.2f\n\n", meta.Script, meta.Gravity)
			fmt.Println(plotLength(trace))
			fmt.Println()
			fmt.Println(asciigraph.Plot(downsample(angles, 80),
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption("climber angle (rad)"),
			))

			if phase {
				fmt.Println("\nphase portrait (angle vs angular velocity)")
				fmt.Print(analysis.PhasePortraitOf(trace).ToASCII(80, 24))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&phase, "phase", false, "also draw the climber's phase portrait")
	return cmd
}

func exportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}
}
