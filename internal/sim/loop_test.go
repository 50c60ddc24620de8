package sim

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/san-kum/ropeclimb/internal/game"
	"github.com/san-kum/ropeclimb/internal/physics"
)

type loopHarness struct {
	loop   *Loop
	ticks  chan time.Time
	frames chan game.Frame
}

func startLoop(t *testing.T, g *game.Game, opts ...LoopOption) *loopHarness {
	t.Helper()

	h := &loopHarness{
		ticks:  make(chan time.Time),
		frames: make(chan game.Frame, 4096),
	}
	opts = append([]LoopOption{WithTickSource(h.ticks)}, opts...)
	h.loop = NewLoop(g, func(f game.Frame) { h.frames <- f }, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("loop returned %v", err)
		}
	})

	h.next(t)
	return h
}

func (h *loopHarness) next(t *testing.T) game.Frame {
	t.Helper()
	select {
	case f := <-h.frames:
		return f
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a frame")
		return game.Frame{}
	}
}

func (h *loopHarness) tick(t *testing.T) game.Frame {
	t.Helper()
	select {
	case h.ticks <- time.Now():
	case <-time.After(time.Second):
		t.Fatal("loop did not accept a tick")
	}
	return h.next(t)
}

func TestLoopTicks(t *testing.T) {
	h := startLoop(t, newTestGame())

	for want := 1; want <= 3; want++ {
		if f := h.tick(t); f.Tick != want {
			t.Errorf("expected tick %d, got %d", want, f.Tick)
		}
	}
}

func TestLoopAppliesInputsBeforeTick(t *testing.T) {
	h := startLoop(t, newTestGame())

	h.loop.Send(game.CutPressed{})
	h.loop.Send(game.GravitySet{Value: 4})
	f := h.tick(t)

	if f.CutCount != physics.BodyCount-1 {
		t.Errorf("expected %d cut bodies, got %d", physics.BodyCount-1, f.CutCount)
	}
	if f.Gravity != 4 {
		t.Errorf("expected gravity 4, got %f", f.Gravity)
	}
}

func TestLoopHaltsAfterWinAndResumesOnRestart(t *testing.T) {
	h := startLoop(t, newTestGame())

	h.loop.Send(game.CutPressed{})
	h.loop.Send(game.ClimbStart{})

	won := false
	for i := 0; i < 10000 && !won; i++ {
		won = h.tick(t).Won()
	}
	if !won {
		t.Fatal("expected the climber to win")
	}

	select {
	case h.ticks <- time.Now():
		t.Fatal("loop accepted a tick after the win")
	case <-time.After(50 * time.Millisecond):
	}

	h.loop.Send(game.CutPressed{})
	f := h.next(t)
	if f.Won() {
		t.Fatal("expected restart to clear the win")
	}
	for i, b := range f.Bodies {
		if b.Cut {
			t.Errorf("body %d: expected a fresh chain after restart", i)
		}
	}

	before := f.Tick
	if f := h.tick(t); f.Tick != before+1 {
		t.Errorf("expected ticking to resume at %d, got %d", before+1, f.Tick)
	}
}

func TestLoopPulseHoldExpires(t *testing.T) {
	var clock atomic.Int64
	now := func() time.Time { return time.Unix(0, clock.Load()) }

	h := startLoop(t, newTestGame(), WithClock(now), WithHoldWindow(100*time.Millisecond))

	h.loop.PulseClimb()
	if f := h.tick(t); f.Status != game.StatusClimbing {
		t.Fatalf("expected climbing after a pulse, got %s", f.Status)
	}

	clock.Add(int64(50 * time.Millisecond))
	if f := h.tick(t); f.Status != game.StatusClimbing {
		t.Errorf("expected climb to hold inside the window, got %s", f.Status)
	}

	clock.Add(int64(200 * time.Millisecond))
	if f := h.tick(t); f.Status != game.StatusIdle {
		t.Errorf("expected climb to release after the window, got %s", f.Status)
	}
}

func TestLoopDefaultHoldBridgesKeyRepeatDelay(t *testing.T) {
	var clock atomic.Int64
	now := func() time.Time { return time.Unix(0, clock.Load()) }

	h := startLoop(t, newTestGame(), WithClock(now))

	h.loop.PulseClimb()
	h.tick(t)

	// First auto-repeat of a held key typically lands after 500ms.
	clock.Add(int64(550 * time.Millisecond))
	if f := h.tick(t); f.Status != game.StatusClimbing {
		t.Errorf("expected climb to survive the key-repeat delay, got %s", f.Status)
	}
}

func TestLoopExplicitClimbDoesNotExpire(t *testing.T) {
	var clock atomic.Int64
	now := func() time.Time { return time.Unix(0, clock.Load()) }

	h := startLoop(t, newTestGame(), WithClock(now))

	h.loop.Send(game.ClimbStart{})
	h.tick(t)

	clock.Add(int64(10 * time.Second))
	if f := h.tick(t); f.Status != game.StatusClimbing {
		t.Errorf("expected a held climb to stay held, got %s", f.Status)
	}

	h.loop.Send(game.ClimbStop{})
	if f := h.tick(t); f.Status != game.StatusIdle {
		t.Errorf("expected climb to stop on release, got %s", f.Status)
	}
}

func TestLoopSendDropsWhenFull(t *testing.T) {
	l := NewLoop(newTestGame(), nil)

	for i := 0; i < inboxSize; i++ {
		if !l.Send(game.ClimbStart{}) {
			t.Fatalf("send %d dropped before the inbox was full", i)
		}
	}
	if l.Send(game.ClimbStart{}) {
		t.Error("expected send to report a full inbox")
	}
}

func TestLoopOwnTicker(t *testing.T) {
	frames := make(chan game.Frame, 4096)
	l := NewLoop(newTestGame(), func(f game.Frame) { frames <- f }, WithFPS(500))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go l.Run(ctx)

	for {
		select {
		case f := <-frames:
			if f.Tick >= 3 {
				return
			}
		case <-ctx.Done():
			t.Fatal("expected the loop to tick on its own")
		}
	}
}
