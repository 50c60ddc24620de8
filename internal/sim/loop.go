package sim

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/ropeclimb/internal/game"
)

const (
	DefaultFPS = 60
	// Longer than the usual 500ms terminal key-repeat delay, so a held key
	// does not drop the climb before its first repeat arrives.
	DefaultHoldWindow = 600 * time.Millisecond
	inboxSize         = 64
)

// FrameSink receives a snapshot after every tick and after every input
// handled while the game is won.
type FrameSink func(game.Frame)

// Loop owns a game and drives it at a fixed frame rate. Front ends never
// touch the game directly; they send inputs that the loop applies between
// ticks. Once the game is won the loop stops ticking and only waits for
// input, so a restart resumes it.
type Loop struct {
	game  *game.Game
	sink  FrameSink
	inbox chan input

	fps        int
	ticks      <-chan time.Time
	holdWindow time.Duration
	now        func() time.Time
	logger     *log.Logger

	pulseHeld bool
	lastPulse time.Time
}

type input struct {
	event game.Event
	pulse bool
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

func WithFPS(fps int) LoopOption {
	return func(l *Loop) {
		if fps > 0 {
			l.fps = fps
		}
	}
}

// WithTickSource replaces the internal ticker.
func WithTickSource(ticks <-chan time.Time) LoopOption {
	return func(l *Loop) { l.ticks = ticks }
}

// WithHoldWindow sets how long a climb pulse keeps the climb going.
func WithHoldWindow(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.holdWindow = d
		}
	}
}

func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) { l.now = now }
}

func WithLoopLogger(logger *log.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func NewLoop(g *game.Game, sink FrameSink, opts ...LoopOption) *Loop {
	if sink == nil {
		sink = func(game.Frame) {}
	}
	l := &Loop{
		game:       g,
		sink:       sink,
		inbox:      make(chan input, inboxSize),
		fps:        DefaultFPS,
		holdWindow: DefaultHoldWindow,
		now:        time.Now,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Send queues an input for the next loop iteration. It never blocks and
// reports false if the inbox is full.
func (l *Loop) Send(ev game.Event) bool {
	return l.push(input{event: ev})
}

// PulseClimb keeps the climb going for one hold window. Terminals only
// report key repeats, never key releases, so holding the climb key shows up
// as a stream of pulses.
func (l *Loop) PulseClimb() bool {
	return l.push(input{pulse: true})
}

func (l *Loop) push(in input) bool {
	select {
	case l.inbox <- in:
		return true
	default:
		l.logger.Warn("input dropped, loop is busy")
		return false
	}
}

// Run drives the game until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticks := l.ticks
	if ticks == nil {
		ticker := time.NewTicker(time.Second / time.Duration(l.fps))
		defer ticker.Stop()
		ticks = ticker.C
	}

	l.logger.Debug("loop started", "fps", l.fps)
	l.sink(l.game.Snapshot())

	for {
		if l.game.Won() {
			select {
			case <-ctx.Done():
				l.logger.Debug("loop stopped", "tick", l.game.TickCount())
				return nil
			case in := <-l.inbox:
				l.handle(in)
				l.drain()
				l.sink(l.game.Snapshot())
			}
			continue
		}

		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopped", "tick", l.game.TickCount())
			return nil
		case in := <-l.inbox:
			l.handle(in)
		case <-ticks:
			l.drain()
			l.expireHold()
			if !l.game.Tick() {
				l.logger.Info("climber reached the top", "tick", l.game.TickCount())
			}
			l.sink(l.game.Snapshot())
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case in := <-l.inbox:
			l.handle(in)
		default:
			return
		}
	}
}

func (l *Loop) handle(in input) {
	if in.pulse {
		l.pulseHeld = true
		l.lastPulse = l.now()
		l.game.StartClimb()
		return
	}
	if _, ok := in.event.(game.ClimbStop); ok {
		l.pulseHeld = false
	}
	l.game.Apply(in.event)
}

// expireHold releases a pulsed climb once no pulse arrived for a whole
// hold window.
func (l *Loop) expireHold() {
	if !l.pulseHeld {
		return
	}
	if l.now().Sub(l.lastPulse) > l.holdWindow {
		l.pulseHeld = false
		l.game.StopClimb()
	}
}
