package piece

import (
	"fmt"
	"math/rand/v2"
)

// Size is the edge length of every shape mask.
const Size = 4

// Rotations is the number of orientations each kind has.
const Rotations = 4

// Kind identifies one of the seven tetrominoes. Its value doubles as the
// color id written into the board when the piece locks.
type Kind int

const (
	I Kind = iota + 1
	J
	L
	O
	S
	T
	Z
)

// Kinds lists every kind in catalog order.
var Kinds = [...]Kind{I, J, L, O, S, T, Z}

// Mask is a 4x4 occupancy grid indexed [row][col]. Zero is empty, any other
// value is the kind's color id.
type Mask [Size][Size]int

// Cell is an occupied square in grid coordinates.
type Cell struct {
	X, Y  int
	Value int
}

func (k Kind) String() string {
	switch k {
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case T:
		return "T"
	case Z:
		return "Z"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the seven catalog kinds.
func (k Kind) Valid() bool {
	return k >= I && k <= Z
}

// Color returns the terminal color for the kind as an ANSI 256 index.
func (k Kind) Color() string {
	return ColorFor(int(k))
}

// ColorFor maps a board cell value to its display color.
func ColorFor(cell int) string {
	switch Kind(cell) {
	case I:
		return "14" // aqua
	case J:
		return "12" // blue
	case L:
		return "208" // orange
	case O:
		return "11" // yellow
	case S:
		return "10" // green
	case T:
		return "13" // purple
	case Z:
		return "9" // red
	}
	return "15"
}

// Shape returns the mask for kind k in the given rotation. It panics on
// values outside the catalog.
func Shape(k Kind, rotation int) Mask {
	if !k.Valid() || rotation < 0 || rotation >= Rotations {
		panic(fmt.Sprintf("piece: no shape for kind %v rotation %d", k, rotation))
	}
	return shapes[k-1][rotation]
}

// Piece is a kind placed on the board: anchor (X, Y) is the top-left corner
// of its mask in grid coordinates.
type Piece struct {
	Kind     Kind
	Rotation int
	X        int
	Y        int
}

// New returns a piece of kind k in its spawn orientation at (x, y).
func New(k Kind, x, y int) *Piece {
	return &Piece{Kind: k, X: x, Y: y}
}

// CreateRandom picks a kind uniformly at random.
func CreateRandom(x, y int) *Piece {
	return New(Kinds[rand.IntN(len(Kinds))], x, y)
}

// RotateClockwise advances the orientation. Collision checks are the
// caller's job.
func (p *Piece) RotateClockwise() {
	p.Rotation = (p.Rotation + 1) % Rotations
}

func (p *Piece) Mask() Mask {
	return Shape(p.Kind, p.Rotation)
}

// Cells returns the occupied squares of the current mask mapped to grid
// coordinates. Coordinates may fall outside the board.
func (p *Piece) Cells() []Cell {
	mask := p.Mask()
	cells := make([]Cell, 0, 4)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if mask[row][col] != 0 {
				cells = append(cells, Cell{X: p.X + col, Y: p.Y + row, Value: mask[row][col]})
			}
		}
	}
	return cells
}

// Clone returns an independent copy.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}
