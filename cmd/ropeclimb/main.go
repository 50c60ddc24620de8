package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/san-kum/ropeclimb/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string
	dataDir    string

	cfg    *config.Config
	logger *log.Logger
	logOut io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ropeclimb",
		Short: "cut the rope and climb to the top",
		Long: "A chain of four pendulums hangs from a pivot. Cut the weight below\n" +
			"the climber, then haul yourself up to the pivot before gravity wins.",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logOut != nil {
				logOut.Close()
			}
		},
		RunE: runPlay,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "gravity preset (see 'ropeclimb presets')")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&dataDir, "data", ".ropeclimb", "directory for saved runs")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(
		playCmd(),
		windowCmd(),
		sshCmd(),
		serveCmd(),
		runCmd(),
		runsCmd(),
		tuneCmd(),
		plotCmd(),
		exportJSONCmd(),
		snapshotCmd(),
		presetsCmd(),
		configCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config in order of precedence: defaults, file, .env and
// environment, preset, flags.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if err := config.LoadDotenv(); err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p.Apply(cfg)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	return setupLogger(os.Stderr)
}

func setupLogger(fallback io.Writer) error {
	w := fallback
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w, logOut = f, f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "ropeclimb",
		Level:           cfg.Level(),
	})
	return nil
}

// tuiLogger keeps log lines off a terminal that is drawing the game.
func tuiLogger() *log.Logger {
	if logFile != "" {
		return logger
	}
	return log.New(io.Discard)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
