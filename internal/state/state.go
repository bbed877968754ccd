package state

import (
	"context"
	"time"

	"go-tetris/internal/board"
	"go-tetris/internal/piece"
	"go-tetris/internal/scoring"

	"github.com/looplab/fsm"
)

// Machine states.
const (
	Idle     = "idle"
	Spawning = "spawning"
	Falling  = "falling"
	Locking  = "locking"
	Clearing = "clearing"
	GameOver = "gameOver"
)

// Options customises a State. Every field is optional.
type Options struct {
	// Spawn builds the next piece. Defaults to piece.CreateRandom.
	Spawn func(x, y int) *piece.Piece
	// OnLineClear runs after full rows are found and before they are
	// removed. snap shows the locked board with those rows still present.
	OnLineClear func(rows []int, snap Snapshot)
	// OnGameOver runs once when a spawned piece has no room.
	OnGameOver func(score int)
}

type State struct {
	Board     *board.Board
	Active    *piece.Piece
	Next      *piece.Piece
	Score     int
	Level     int
	Lines     int
	Paused    bool
	GameOver  bool          // Set once the spawn check fails; never cleared
	FallDelay time.Duration // Gravity interval for the current level
	Clearing  []int         // Rows being removed while in the clearing state
	FSM       *fsm.FSM
	Options   Options
}

func NewState(opts Options) *State {
	if opts.Spawn == nil {
		opts.Spawn = piece.CreateRandom
	}

	s := &State{
		Board:     board.New(),
		FallDelay: FallDelayFor(0),
		Options:   opts,
	}

	s.FSM = fsm.NewFSM(
		Idle,
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

// Start spawns the first piece.
func (s *State) Start() {
	_ = s.FSM.Event(context.Background(), "start")
}

// HandleTick applies one gravity step. It reports whether the active piece
// locked.
func (s *State) HandleTick() bool {
	if !s.canAct() {
		return false
	}
	if s.tryMove(0, 1) {
		return false
	}
	_ = s.FSM.Event(context.Background(), "land")
	return true
}

func (s *State) MoveLeft() bool {
	if !s.canAct() {
		return false
	}
	return s.tryMove(-1, 0)
}

func (s *State) MoveRight() bool {
	if !s.canAct() {
		return false
	}
	return s.tryMove(1, 0)
}

// SoftDrop moves the piece down one row for a point. It never locks.
func (s *State) SoftDrop() bool {
	if !s.canAct() {
		return false
	}
	if !s.tryMove(0, 1) {
		return false
	}
	s.Score += scoring.SoftDropCell
	return true
}

// HardDrop drops the piece as far as it goes, locks it and returns the
// number of rows travelled.
func (s *State) HardDrop() int {
	if !s.canAct() {
		return 0
	}
	steps := 0
	for s.tryMove(0, 1) {
		steps++
	}
	s.Score += steps * scoring.HardDropCell
	_ = s.FSM.Event(context.Background(), "land")
	return steps
}

// Rotate turns the piece clockwise, kicking one column left and then one
// column right of the start when the turn is blocked.
func (s *State) Rotate() bool {
	if !s.canAct() {
		return false
	}
	p := s.Active
	p.RotateClockwise()
	if !s.Board.Collides(p) {
		return true
	}

	p.X--
	if !s.Board.Collides(p) {
		return true
	}
	p.X += 2
	if !s.Board.Collides(p) {
		return true
	}

	p.X--
	for i := 0; i < piece.Rotations-1; i++ {
		p.RotateClockwise()
	}
	return false
}

// TogglePause flips the pause flag. It has no effect after game over.
func (s *State) TogglePause() bool {
	if s.GameOver {
		return false
	}
	s.Paused = !s.Paused
	return true
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "start", Src: []string{Idle}, Dst: Spawning},
		{Name: "spawned", Src: []string{Spawning}, Dst: Falling},
		{Name: "topOut", Src: []string{Spawning}, Dst: GameOver},

		{Name: "land", Src: []string{Falling}, Dst: Locking},
		{Name: "clear", Src: []string{Locking}, Dst: Clearing},
		{Name: "respawn", Src: []string{Locking, Clearing}, Dst: Spawning},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + Spawning: func(ctx context.Context, e *fsm.Event) {
			if s.Next == nil {
				s.Next = s.Options.Spawn(0, 0)
			}
			s.Active = s.Next
			s.Active.X = SpawnX
			s.Active.Y = SpawnY
			s.Next = s.Options.Spawn(0, 0)

			if s.Board.Collides(s.Active) {
				e.FSM.Event(ctx, "topOut")
				return
			}
			e.FSM.Event(ctx, "spawned")
		},
		"enter_" + Locking: func(ctx context.Context, e *fsm.Event) {
			s.Board.Lock(s.Active)

			rows := s.Board.FullRows()
			if len(rows) > 0 {
				e.FSM.Event(ctx, "clear", rows)
				return
			}

			s.applyClear(0)
			e.FSM.Event(ctx, "respawn")
		},
		"enter_" + Clearing: func(ctx context.Context, e *fsm.Event) {
			if len(e.Args) > 0 {
				s.Clearing, _ = e.Args[0].([]int)
			}

			if s.Options.OnLineClear != nil {
				s.Options.OnLineClear(s.Clearing, s.snapshot(false))
			}

			s.Board.ClearRows(s.Clearing)
			s.applyClear(len(s.Clearing))
			s.Clearing = nil

			e.FSM.Event(ctx, "respawn")
		},
		"enter_" + GameOver: func(ctx context.Context, e *fsm.Event) {
			s.GameOver = true
			s.Paused = false
			if s.Options.OnGameOver != nil {
				s.Options.OnGameOver(s.Score)
			}
		},
	}
}
