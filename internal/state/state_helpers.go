package state

import (
	"time"

	"go-tetris/internal/board"
	"go-tetris/internal/piece"
	"go-tetris/internal/scoring"
)

// Spawn anchor: horizontally centred 4x4 mask on the top row.
const (
	SpawnX = board.Width/2 - 2
	SpawnY = 0
)

const (
	MaxLevel      = 9
	LinesPerLevel = 10
	baseFallDelay = 500 * time.Millisecond
	fallDelayStep = 50 * time.Millisecond
	minFallDelay  = 50 * time.Millisecond
)

// LevelFor returns the level reached after clearing lines rows in total.
func LevelFor(lines int) int {
	return min(MaxLevel, lines/LinesPerLevel)
}

// FallDelayFor returns the gravity interval at level.
func FallDelayFor(level int) time.Duration {
	return max(minFallDelay, baseFallDelay-time.Duration(level)*fallDelayStep)
}

// PieceView is a display copy of a piece.
type PieceView struct {
	Kind  piece.Kind
	Mask  piece.Mask
	X, Y  int
	Color string
}

// Snapshot is a self-contained copy of everything a renderer draws.
type Snapshot struct {
	Grid     board.Grid
	Active   PieceView
	Next     PieceView
	Score    int
	Level    int
	Lines    int
	Paused   bool
	GameOver bool
	Clearing []int // Rows about to be removed; set only on line-clear frames
}

// Snapshot copies the current state with the active piece drawn in.
func (s *State) Snapshot() Snapshot {
	return s.snapshot(!s.GameOver)
}

// Phase returns the name of the machine state.
func (s *State) Phase() string {
	return s.FSM.Current()
}

func (s *State) snapshot(overlay bool) Snapshot {
	snap := Snapshot{
		Grid:     s.Board.Grid(),
		Active:   viewOf(s.Active),
		Next:     viewOf(s.Next),
		Score:    s.Score,
		Level:    s.Level,
		Lines:    s.Lines,
		Paused:   s.Paused,
		GameOver: s.GameOver,
	}
	if overlay && s.Active != nil {
		snap.Grid = s.Board.Snapshot(s.Active)
	}
	if len(s.Clearing) > 0 {
		snap.Clearing = append([]int(nil), s.Clearing...)
	}
	return snap
}

func viewOf(p *piece.Piece) PieceView {
	if p == nil {
		return PieceView{}
	}
	return PieceView{
		Kind:  p.Kind,
		Mask:  p.Mask(),
		X:     p.X,
		Y:     p.Y,
		Color: p.Kind.Color(),
	}
}

func (s State) canAct() bool {
	return !s.GameOver && !s.Paused && s.Active != nil && s.FSM.Is(Falling)
}

// tryMove shifts the active piece and reverts the shift on collision.
func (s *State) tryMove(dx, dy int) bool {
	s.Active.X += dx
	s.Active.Y += dy
	if s.Board.Collides(s.Active) {
		s.Active.X -= dx
		s.Active.Y -= dy
		return false
	}
	return true
}

// applyClear books n cleared rows. Points use the level in force before the
// clear; level and gravity are recomputed afterwards.
func (s *State) applyClear(n int) {
	s.Lines += n
	s.Score += scoring.LineClearPoints(n, s.Level)
	s.Level = LevelFor(s.Lines)
	s.FallDelay = FallDelayFor(s.Level)
}
