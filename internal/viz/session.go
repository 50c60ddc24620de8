package viz

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/sim"
)

// Session runs one game in one terminal: a loop owning the game, and a
// Bubble Tea program drawing its frames.
type Session struct {
	game        *game.Game
	loopOpts    []sim.LoopOption
	modelOpts   []ModelOption
	programOpts []tea.ProgramOption
	resizes     <-chan tea.WindowSizeMsg
}

// SessionOption configures a Session.
type SessionOption func(*Session)

func WithLoopOptions(opts ...sim.LoopOption) SessionOption {
	return func(s *Session) { s.loopOpts = append(s.loopOpts, opts...) }
}

func WithModelOptions(opts ...ModelOption) SessionOption {
	return func(s *Session) { s.modelOpts = append(s.modelOpts, opts...) }
}

func WithProgramOptions(opts ...tea.ProgramOption) SessionOption {
	return func(s *Session) { s.programOpts = append(s.programOpts, opts...) }
}

// WithResizes forwards size changes the program cannot see itself, such
// as SSH window-change requests.
func WithResizes(ch <-chan tea.WindowSizeMsg) SessionOption {
	return func(s *Session) { s.resizes = ch }
}

func NewSession(g *game.Game, opts ...SessionOption) *Session {
	s := &Session{game: g}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until the player quits or ctx is cancelled.
func (s *Session) Run(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var program *tea.Program
	loop := sim.NewLoop(s.game, func(f game.Frame) {
		program.Send(FrameMsg(f))
	}, s.loopOpts...)

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, s.programOpts...)
	program = tea.NewProgram(NewModel(loop, s.modelOpts...), opts...)

	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	if s.resizes != nil {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg, ok := <-s.resizes:
					if !ok {
						return
					}
					program.Send(msg)
				}
			}
		}()
	}

	_, err := program.Run()
	cancel()
	loopErr := <-loopDone

	if errors.Is(err, tea.ErrProgramKilled) && parent.Err() != nil {
		err = nil
	}
	return errors.Join(err, loopErr)
}
