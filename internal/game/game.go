package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go-tetris/internal/state"

	"golang.org/x/sync/errgroup"
)

// PollInterval is how long the input loop sleeps when no key is waiting.
const PollInterval = 5 * time.Millisecond

// Renderer draws a snapshot. It must not keep or mutate engine state.
type Renderer interface {
	Render(snap state.Snapshot) error
}

// InputSource is a non-blocking key source.
type InputSource interface {
	Available() bool
	ReadKey() string
}

// Game drives the engine from a gravity clock and an input source. All
// engine access goes through mu.
type Game struct {
	mu    sync.Mutex
	State *state.State

	renderer Renderer
	logger   *slog.Logger
	keys     KeyMap

	// frames queued by engine hooks while mu is held
	pending []state.Snapshot

	done     chan struct{}
	doneOnce sync.Once
}

// NewGame builds an idle game. Hooks in opts still run; they are called with
// the game lock held.
func NewGame(renderer Renderer, logger *slog.Logger, opts state.Options) *Game {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	g := &Game{
		renderer: renderer,
		logger:   logger.With("component", "game"),
		keys:     DefaultKeyMap(),
		done:     make(chan struct{}),
	}

	onLineClear := opts.OnLineClear
	opts.OnLineClear = func(rows []int, snap state.Snapshot) {
		g.logger.Debug("rows cleared", "rows", rows)
		g.pending = append(g.pending, snap)
		if onLineClear != nil {
			onLineClear(rows, snap)
		}
	}

	onGameOver := opts.OnGameOver
	opts.OnGameOver = func(score int) {
		g.logger.Info("game over", "score", score)
		g.doneOnce.Do(func() { close(g.done) })
		if onGameOver != nil {
			onGameOver(score)
		}
	}

	g.State = state.NewState(opts)
	return g
}

// Init spawns the first piece. Calling it again is a no-op.
func (g *Game) Init() {
	g.update(func(s *state.State) bool {
		if s.Phase() != state.Idle {
			return false
		}
		s.Start()
		return true
	})
}

// HandleTick applies one gravity step.
func (g *Game) HandleTick() {
	g.update(func(s *state.State) bool {
		if s.GameOver || s.Paused {
			return false
		}
		s.HandleTick()
		return true
	})
}

// HandleKeyPress maps k to an action and applies it. Unknown keys are
// ignored. It reports whether the key changed anything.
func (g *Game) HandleKeyPress(k string) bool {
	action := g.keys.Action(k)
	if action == ActionNone {
		return false
	}

	return g.update(func(s *state.State) bool {
		switch action {
		case ActionLeft:
			return s.MoveLeft()
		case ActionRight:
			return s.MoveRight()
		case ActionSoftDrop:
			return s.SoftDrop()
		case ActionRotate:
			return s.Rotate()
		case ActionHardDrop:
			if !s.FSM.Is(state.Falling) || s.Paused {
				return false
			}
			s.HardDrop()
			return true
		case ActionPause:
			return s.TogglePause()
		}
		return false
	})
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() state.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.State.Snapshot()
}

// Done is closed when the game ends.
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// Run starts the game if needed and plays until it ends or ctx is cancelled.
// It returns nil on game over and the context error on cancellation.
func (g *Game) Run(ctx context.Context, input InputSource) error {
	g.Init()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return g.gravityLoop(ctx)
	})
	eg.Go(func() error {
		return g.inputLoop(ctx, input)
	})

	return eg.Wait()
}

func (g *Game) gravityLoop(ctx context.Context) error {
	timer := time.NewTimer(g.fallDelay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.done:
			return nil
		case <-timer.C:
			g.HandleTick()
			timer.Reset(g.fallDelay())
		}
	}
}

func (g *Game) inputLoop(ctx context.Context, input InputSource) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.done:
			return nil
		default:
		}

		if input == nil || !input.Available() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-g.done:
				return nil
			case <-time.After(PollInterval):
			}
			continue
		}

		g.HandleKeyPress(input.ReadKey())
	}
}

func (g *Game) fallDelay() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.State.FallDelay
}

// update runs fn under the lock and renders the resulting frames after
// releasing it. A frame is drawn only when fn reports a change.
func (g *Game) update(fn func(s *state.State) bool) bool {
	g.mu.Lock()
	changed := fn(g.State)
	frames := g.pending
	g.pending = nil
	if changed {
		frames = append(frames, g.State.Snapshot())
	}
	g.mu.Unlock()

	for _, f := range frames {
		g.render(f)
	}
	return changed
}

func (g *Game) render(snap state.Snapshot) {
	if g.renderer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("renderer panicked", "panic", r)
		}
	}()

	if err := g.renderer.Render(snap); err != nil {
		g.logger.Warn("render failed", "error", err)
	}
}
