// Package board holds the locked cells of the playfield and answers
// placement questions about pieces.
package board

import "go-tetris/internal/piece"

const (
	Width  = 10
	Height = 20
)

// Grid is indexed [row][col]; row 0 is the top. Zero is empty, 1..7 are
// piece color ids.
type Grid [Height][Width]int

type Board struct {
	cells Grid
}

func New() *Board {
	return &Board{}
}

// FromGrid returns a board preloaded with g.
func FromGrid(g Grid) *Board {
	return &Board{cells: g}
}

func (b *Board) Cell(x, y int) int {
	return b.cells[y][x]
}

// Grid returns a copy of the locked cells.
func (b *Board) Grid() Grid {
	return b.cells
}

// Collides reports whether p overlaps a wall, the floor or a locked cell.
// Cells above the top edge only fail the wall and floor checks.
func (b *Board) Collides(p *piece.Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Width || c.Y >= Height {
			return true
		}
		if c.Y < 0 {
			continue
		}
		if b.cells[c.Y][c.X] != 0 {
			return true
		}
	}
	return false
}

// Lock writes every in-bounds cell of p into the grid.
func (b *Board) Lock(p *piece.Piece) {
	for _, c := range p.Cells() {
		if inBounds(c.X, c.Y) {
			b.cells[c.Y][c.X] = c.Value
		}
	}
}

// FullRows returns the indices of completely filled rows, bottom first.
func (b *Board) FullRows() []int {
	var rows []int
	for y := Height - 1; y >= 0; y-- {
		if b.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows removes the given rows and drops everything above them. Rows are
// compacted in a single bottom-up pass so the order of rows does not matter.
func (b *Board) ClearRows(rows []int) {
	if len(rows) == 0 {
		return
	}
	var remove [Height]bool
	for _, y := range rows {
		if y >= 0 && y < Height {
			remove[y] = true
		}
	}

	dst := Height - 1
	for src := Height - 1; src >= 0; src-- {
		if remove[src] {
			continue
		}
		b.cells[dst] = b.cells[src]
		dst--
	}
	for ; dst >= 0; dst-- {
		b.cells[dst] = [Width]int{}
	}
}

// Snapshot returns the grid with active drawn over it. A nil active piece
// yields the plain grid.
func (b *Board) Snapshot(active *piece.Piece) Grid {
	g := b.cells
	if active == nil {
		return g
	}
	for _, c := range active.Cells() {
		if inBounds(c.X, c.Y) {
			g[c.Y][c.X] = c.Value
		}
	}
	return g
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < Width; x++ {
		if b.cells[y][x] == 0 {
			return false
		}
	}
	return true
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}
