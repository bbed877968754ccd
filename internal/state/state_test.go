package state

import (
	"testing"
	"time"

	"go-tetris/internal/board"
	"go-tetris/internal/piece"
)

// cycleSpawner hands out kinds in order, repeating the list.
func cycleSpawner(kinds ...piece.Kind) func(x, y int) *piece.Piece {
	i := 0
	return func(x, y int) *piece.Piece {
		k := kinds[i%len(kinds)]
		i++
		return piece.New(k, x, y)
	}
}

func newStarted(t *testing.T, opts Options) *State {
	t.Helper()
	s := NewState(opts)
	s.Start()
	if s.Phase() != Falling {
		t.Fatalf("Expected %s after start, got %s", Falling, s.Phase())
	}
	return s
}

// fillRows fills the given rows except for the hole columns.
func fillRows(g *board.Grid, rows []int, holes ...int) {
	for _, y := range rows {
		for x := 0; x < board.Width; x++ {
			g[y][x] = 2
		}
		for _, x := range holes {
			g[y][x] = 0
		}
	}
}

func TestState_Start(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.T, piece.O)})

	if s.Active == nil || s.Active.Kind != piece.T {
		t.Fatalf("Expected active T, got %+v", s.Active)
	}
	if s.Active.X != SpawnX || s.Active.Y != SpawnY || s.Active.Rotation != 0 {
		t.Errorf("Active not at spawn: %+v", s.Active)
	}
	if s.Next == nil || s.Next.Kind != piece.O {
		t.Errorf("Expected next O, got %+v", s.Next)
	}
	if s.Score != 0 || s.Level != 0 || s.Lines != 0 || s.Paused || s.GameOver {
		t.Errorf("Expected zeroed session, got score=%d level=%d lines=%d", s.Score, s.Level, s.Lines)
	}
	if s.FallDelay != 500*time.Millisecond {
		t.Errorf("Expected 500ms fall delay, got %v", s.FallDelay)
	}
}

func TestState_HardDropO(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.O)})

	active := s.Active
	steps := s.HardDrop()

	if steps != 18 {
		t.Errorf("Expected 18 steps, got %d", steps)
	}
	if active.Y != 18 {
		t.Errorf("Expected final y 18, got %d", active.Y)
	}
	if s.Score != 36 {
		t.Errorf("Expected score 36, got %d", s.Score)
	}
	if s.Lines != 0 {
		t.Errorf("Expected 0 lines, got %d", s.Lines)
	}

	g := s.Board.Grid()
	filled := 0
	for y := 0; y < board.Height; y++ {
		for x := 0; x < board.Width; x++ {
			if g[y][x] != 0 {
				filled++
			}
		}
	}
	if filled != 4 {
		t.Errorf("Expected 4 locked cells, got %d", filled)
	}
	for _, c := range [][2]int{{4, 18}, {5, 18}, {4, 19}, {5, 19}} {
		if g[c[1]][c[0]] != int(piece.O) {
			t.Errorf("Expected O at (%d,%d)", c[0], c[1])
		}
	}

	if s.Phase() != Falling || s.Active == active {
		t.Error("Expected a fresh piece falling after hard drop")
	}
}

func TestState_GravityTickLocks(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.O)})

	for i := 0; i < 18; i++ {
		if s.HandleTick() {
			t.Fatalf("Piece locked early at tick %d", i)
		}
	}
	if s.Active.Y != 18 {
		t.Fatalf("Expected y 18 after 18 ticks, got %d", s.Active.Y)
	}
	if !s.HandleTick() {
		t.Fatal("Expected lock on 19th tick")
	}
	if s.Score != 0 {
		t.Errorf("Gravity must not score, got %d", s.Score)
	}
	if s.Board.Cell(4, 19) != int(piece.O) {
		t.Error("Expected O locked at bottom")
	}
}

func TestState_SoftDrop(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.O)})

	for i := 0; i < 18; i++ {
		if !s.SoftDrop() {
			t.Fatalf("SoftDrop %d failed", i)
		}
	}
	if s.Score != 18 {
		t.Errorf("Expected 18 points, got %d", s.Score)
	}
	if s.SoftDrop() {
		t.Error("SoftDrop at the floor should fail")
	}
	if s.Score != 18 {
		t.Errorf("Failed soft drop must not score, got %d", s.Score)
	}
	if s.Board.Cell(4, 19) != 0 {
		t.Error("SoftDrop must not lock")
	}
}

func TestState_MoveLeftRight(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.O)})

	moves := 0
	for s.MoveLeft() {
		moves++
	}
	// O mask starts at column 1: x 3 -> -1.
	if moves != 4 || s.Active.X != -1 {
		t.Errorf("Expected 4 moves to x=-1, got %d moves x=%d", moves, s.Active.X)
	}

	moves = 0
	for s.MoveRight() {
		moves++
	}
	if moves != 8 || s.Active.X != 7 {
		t.Errorf("Expected 8 moves to x=7, got %d moves x=%d", moves, s.Active.X)
	}
}

func TestState_MoveBlockedByLockedCells(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.O)})

	var g board.Grid
	g[0][3] = 1
	g[1][3] = 1
	s.Board = board.FromGrid(g)

	if s.MoveLeft() {
		t.Error("MoveLeft into a locked cell should fail")
	}
	if s.Active.X != SpawnX {
		t.Errorf("Failed move must not change x, got %d", s.Active.X)
	}
}

func TestState_RotateInOpenSpace(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.T)})
	s.SoftDrop()
	s.SoftDrop()

	for i := 1; i <= 4; i++ {
		if !s.Rotate() {
			t.Fatalf("Rotate %d failed", i)
		}
		if s.Active.Rotation != i%4 {
			t.Errorf("Expected rotation %d, got %d", i%4, s.Active.Rotation)
		}
	}
	if s.Active.X != SpawnX {
		t.Errorf("Free rotation must not shift x, got %d", s.Active.X)
	}
}

func TestState_RotateWallKickRight(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.T)})
	s.SoftDrop()

	s.Rotate() // rotation 1 occupies mask columns 1-2
	for s.MoveLeft() {
	}
	if s.Active.X != -1 {
		t.Fatalf("Expected x=-1 against the wall, got %d", s.Active.X)
	}

	// Rotation 2 spans mask columns 0-2 and hits the wall; the left kick
	// is worse, the right kick lands at x=0.
	if !s.Rotate() {
		t.Fatal("Expected wall kick to succeed")
	}
	if s.Active.Rotation != 2 || s.Active.X != 0 {
		t.Errorf("Expected rotation 2 at x=0, got rotation %d x=%d", s.Active.Rotation, s.Active.X)
	}
}

func TestState_RotateWallKickLeft(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.T)})
	s.SoftDrop()

	for i := 0; i < 3; i++ { // rotation 3 occupies mask columns 0-1
		s.Rotate()
	}
	for s.MoveRight() {
	}
	if s.Active.X != 8 {
		t.Fatalf("Expected x=8 against the wall, got %d", s.Active.X)
	}

	if !s.Rotate() {
		t.Fatal("Expected wall kick to succeed")
	}
	if s.Active.Rotation != 0 || s.Active.X != 7 {
		t.Errorf("Expected rotation 0 at x=7, got rotation %d x=%d", s.Active.Rotation, s.Active.X)
	}
}

func TestState_RotateFailureReverts(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.I)})
	s.SoftDrop()

	s.Rotate() // vertical in mask column 2
	for s.MoveLeft() {
	}
	if s.Active.X != -2 {
		t.Fatalf("Expected x=-2 against the wall, got %d", s.Active.X)
	}

	if s.Rotate() {
		t.Fatal("Rotation should fail: no kick fits a horizontal I here")
	}
	if s.Active.Rotation != 1 || s.Active.X != -2 {
		t.Errorf("Expected original rotation 1 at x=-2, got rotation %d x=%d", s.Active.Rotation, s.Active.X)
	}
}

func TestState_LineClear(t *testing.T) {
	var cleared []int
	s := newStarted(t, Options{
		Spawn: cycleSpawner(piece.O),
		OnLineClear: func(rows []int, snap Snapshot) {
			cleared = rows
			for _, y := range rows {
				for x := 0; x < board.Width; x++ {
					if snap.Grid[y][x] == 0 {
						t.Errorf("Row %d should still be full in the clear snapshot", y)
					}
				}
			}
			if len(snap.Clearing) != len(rows) {
				t.Errorf("Snapshot should carry the clearing rows")
			}
		},
	})

	var g board.Grid
	fillRows(&g, []int{18, 19}, 4, 5)
	g[17][0] = 3
	s.Board = board.FromGrid(g)

	s.HardDrop()

	if len(cleared) != 2 {
		t.Fatalf("Expected 2 rows reported, got %v", cleared)
	}
	if s.Lines != 2 {
		t.Errorf("Expected 2 lines, got %d", s.Lines)
	}
	// 18 rows travelled * 2 + 100 for a double at level 0
	if s.Score != 136 {
		t.Errorf("Expected score 136, got %d", s.Score)
	}
	if s.Board.Cell(0, 19) != 3 {
		t.Error("Row above cleared rows should have dropped to the floor")
	}
	if len(s.Board.FullRows()) != 0 {
		t.Error("No full rows may remain after clearing")
	}
	if s.Clearing != nil {
		t.Error("Clearing should be reset after the clear")
	}
}

func tetrisSetup(t *testing.T, lines int) *State {
	t.Helper()
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.I)})

	var g board.Grid
	fillRows(&g, []int{16, 17, 18, 19}, 5)
	s.Board = board.FromGrid(g)
	s.Lines = lines
	s.Level = LevelFor(lines)

	if !s.Rotate() { // vertical in column x+2 = 5
		t.Fatal("Rotate failed")
	}
	return s
}

func TestState_TetrisLevelZero(t *testing.T) {
	s := tetrisSetup(t, 0)

	steps := s.HardDrop()
	if steps != 16 {
		t.Fatalf("Expected 16 steps, got %d", steps)
	}
	if want := 16*2 + 1200; s.Score != want {
		t.Errorf("Expected score %d, got %d", want, s.Score)
	}
	if s.Lines != 4 {
		t.Errorf("Expected 4 lines, got %d", s.Lines)
	}
	if s.Board.Grid() != (board.Grid{}) {
		t.Error("Expected an empty board after a tetris")
	}
}

func TestState_TetrisLevelThree(t *testing.T) {
	s := tetrisSetup(t, 30)
	if s.Level != 3 {
		t.Fatalf("Expected level 3, got %d", s.Level)
	}

	s.HardDrop()
	if want := 16*2 + 4800; s.Score != want {
		t.Errorf("Expected score %d, got %d", want, s.Score)
	}
	if s.Lines != 34 || s.Level != 3 {
		t.Errorf("Expected 34 lines at level 3, got %d at %d", s.Lines, s.Level)
	}
}

func TestState_LevelUpChangesGravity(t *testing.T) {
	s := tetrisSetup(t, 8)

	s.HardDrop()
	if s.Lines != 12 || s.Level != 1 {
		t.Fatalf("Expected 12 lines at level 1, got %d at %d", s.Lines, s.Level)
	}
	// Points use the level before the clear.
	if want := 16*2 + 1200; s.Score != want {
		t.Errorf("Expected score %d, got %d", want, s.Score)
	}
	if s.FallDelay != 450*time.Millisecond {
		t.Errorf("Expected 450ms fall delay, got %v", s.FallDelay)
	}
}

func TestState_GameOver(t *testing.T) {
	var finalScore = -1
	s := newStarted(t, Options{
		Spawn:      cycleSpawner(piece.O),
		OnGameOver: func(score int) { finalScore = score },
	})

	drops := 0
	for !s.GameOver && drops < 20 {
		s.HardDrop()
		drops++
	}

	if !s.GameOver {
		t.Fatal("Expected game over")
	}
	if drops != 10 {
		t.Errorf("Expected game over after 10 drops, got %d", drops)
	}
	if s.Phase() != GameOver {
		t.Errorf("Expected phase %s, got %s", GameOver, s.Phase())
	}
	// 2*(18+16+...+2+0)
	if s.Score != 180 {
		t.Errorf("Expected final score 180, got %d", s.Score)
	}
	if finalScore != 180 {
		t.Errorf("OnGameOver should receive 180, got %d", finalScore)
	}

	grid := s.Board.Grid()
	if s.HardDrop() != 0 || s.MoveLeft() || s.Rotate() || s.SoftDrop() || s.HandleTick() || s.TogglePause() {
		t.Error("No command may act after game over")
	}
	if s.Board.Grid() != grid || s.Score != 180 {
		t.Error("State must stay frozen after game over")
	}
	if snap := s.Snapshot(); !snap.GameOver || snap.Grid != grid {
		t.Error("Game over snapshot should show the locked grid without overlay")
	}
}

func TestState_Pause(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.T)})

	if !s.TogglePause() || !s.Paused {
		t.Fatal("Expected paused")
	}

	y, x, rot := s.Active.Y, s.Active.X, s.Active.Rotation
	if s.HandleTick() || s.MoveLeft() || s.MoveRight() || s.SoftDrop() || s.Rotate() || s.HardDrop() != 0 {
		t.Error("Commands must be no-ops while paused")
	}
	if s.Active.Y != y || s.Active.X != x || s.Active.Rotation != rot || s.Score != 0 {
		t.Error("Paused state must not change")
	}

	s.TogglePause()
	if s.Paused {
		t.Fatal("Expected resumed")
	}
	s.HandleTick()
	if s.Active.Y != y+1 {
		t.Errorf("Expected tick to move piece after resume")
	}
}

func TestState_SnapshotIsACopy(t *testing.T) {
	s := newStarted(t, Options{Spawn: cycleSpawner(piece.O, piece.Z)})

	snap := s.Snapshot()
	if snap.Grid[0][4] != int(piece.O) {
		t.Error("Snapshot should overlay the active piece")
	}
	if snap.Active.Kind != piece.O || snap.Next.Kind != piece.Z {
		t.Errorf("Unexpected piece views %+v / %+v", snap.Active, snap.Next)
	}
	if snap.Next.Color != piece.Z.Color() {
		t.Error("Next view should carry its color")
	}

	snap.Grid[19][0] = 7
	if s.Board.Cell(0, 19) != 0 {
		t.Error("Mutating a snapshot must not touch the board")
	}
	if s.Board.Cell(4, 0) != 0 {
		t.Error("Overlay must not be written into the board")
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct{ lines, want int }{
		{0, 0}, {9, 0}, {10, 1}, {25, 2}, {99, 9}, {200, 9},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.lines); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, expected %d", tt.lines, got, tt.want)
		}
	}
}

func TestFallDelayFor(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{0, 500 * time.Millisecond},
		{1, 450 * time.Millisecond},
		{9, 50 * time.Millisecond},
		{12, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := FallDelayFor(tt.level); got != tt.want {
			t.Errorf("FallDelayFor(%d) = %v, expected %v", tt.level, got, tt.want)
		}
	}
}
