package world

import "sort"

// Position is a cell coordinate. X grows to the right, Y grows downward.
type Position struct {
	X, Y int
}

// Pos is shorthand for Position{x, y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the position shifted by the given delta.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Less orders positions by X, then Y.
func (p Position) Less(o Position) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

// SortPositions sorts in place using Less.
func SortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })
}

// Orthogonal lists the four unit moves, north first, clockwise.
var Orthogonal = [4]Position{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Around lists the eight unit moves.
var Around = [8]Position{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Rect is an inclusive rectangle of cells: X..X+W by Y..Y+H.
type Rect struct {
	X, Y int
	W, H int
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains returns true if the given cell lies inside the rectangle.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// OnBorder returns true if the cell lies on the rectangle's edge.
func (r Rect) OnBorder(p Position) bool {
	return r.Contains(p) && (p.X == r.X || p.X == r.X+r.W || p.Y == r.Y || p.Y == r.Y+r.H)
}

// IsCorner returns true if the cell is one of the four corners.
func (r Rect) IsCorner(p Position) bool {
	return (p.X == r.X || p.X == r.X+r.W) && (p.Y == r.Y || p.Y == r.Y+r.H)
}

// Area returns the product of the container dimensions.
func (r Rect) Area() int {
	return r.W * r.H
}

// Grow returns the rectangle extended by n cells on every side.
func (r Rect) Grow(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Cells lists the rectangle's cells in sorted order.
func (r Rect) Cells() []Position {
	cells := make([]Position, 0, (r.W+1)*(r.H+1))
	for x := r.X; x <= r.X+r.W; x++ {
		for y := r.Y; y <= r.Y+r.H; y++ {
			cells = append(cells, Position{X: x, Y: y})
		}
	}
	return cells
}
