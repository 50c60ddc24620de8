package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/gui"
	"github.com/san-kum/ropeclimb/internal/sim"
	"github.com/san-kum/ropeclimb/internal/viz"
	"github.com/spf13/cobra"
)

var (
	showGraph  bool
	themeName  string
	windowSize []int
)

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&showGraph, "graph", false, "show the climber's angle graph")
	cmd.Flags().StringVar(&themeName, "theme", "", "colour theme (overrides config)")
}

func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "play in the terminal",
		RunE:  runPlay,
	}
	addPlayFlags(cmd)
	return cmd
}

func theme() string {
	if themeName != "" {
		return themeName
	}
	return cfg.Theme
}

func newGame(l *log.Logger) *game.Game {
	return game.New(game.WithGravity(cfg.Gravity), game.WithLogger(l))
}

// sessionOptions are shared by the local terminal and SSH sessions.
func sessionOptions(l *log.Logger) []viz.SessionOption {
	return []viz.SessionOption{
		viz.WithLoopOptions(
			sim.WithFPS(cfg.FPS),
			sim.WithHoldWindow(cfg.HoldWindow()),
			sim.WithLoopLogger(l),
		),
		viz.WithModelOptions(viz.WithTheme(theme()), viz.WithGraph(showGraph)),
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	l := tuiLogger()
	opts := append(sessionOptions(l), viz.WithProgramOptions(tea.WithAltScreen()))
	session := viz.NewSession(newGame(l), opts...)

	l.Info("starting terminal session", "gravity", cfg.Gravity, "theme", theme())
	return session.Run(ctx)
}

func windowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "play in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			wcfg := gui.DefaultConfig()
			wcfg.TPS = cfg.FPS
			wcfg.Theme = theme()
			if len(windowSize) == 2 {
				wcfg.Width, wcfg.Height = windowSize[0], windowSize[1]
			}
			return gui.Run(ctx, newGame(logger), wcfg, gui.WithLogger(logger))
		},
	}
	cmd.Flags().StringVar(&themeName, "theme", "", "colour theme (overrides config)")
	cmd.Flags().IntSliceVar(&windowSize, "size", nil, "window size as width,height")
	return cmd
}

func sshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ssh",
		Short: "serve the game over ssh",
		Long:  "Every ssh session gets its own game. Connect with: ssh -t -p 2222 host",
		RunE:  runSSH,
	}
}

func runSSH(cmd *cobra.Command, args []string) error {
	addr := net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)

	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting ssh server", "addr", addr, "host_key", cfg.SSH.HostKey)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down ssh server")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return s.Shutdown(shutdownCtx)
}

// gameMiddleware runs a terminal session inside each ssh session.
func gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		l := logger.With("user", sess.User())
		l.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// The program cannot ask an ssh channel for its size, so seed it.
		resizes := make(chan tea.WindowSizeMsg, 1)
		resizes <- tea.WindowSizeMsg{Width: pty.Window.Width, Height: pty.Window.Height}
		go func() {
			defer close(resizes)
			for win := range winCh {
				select {
				case resizes <- tea.WindowSizeMsg{Width: win.Width, Height: win.Height}:
				case <-sess.Context().Done():
					return
				}
			}
		}()

		opts := append(sessionOptions(l),
			viz.WithResizes(resizes),
			viz.WithProgramOptions(tea.WithInput(sess), tea.WithOutput(sess), tea.WithAltScreen()),
		)
		if err := viz.NewSession(newGame(l), opts...).Run(sess.Context()); err != nil {
			l.Error("game error", "err", err)
		}

		l.Info("session ended")
		next(sess)
	}
}
