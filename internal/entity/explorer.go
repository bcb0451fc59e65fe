// Package entity provides what moves through a generated dungeon.
package entity

import (
	"errors"

	"github.com/samdwyer/delve/internal/world"
)

// ErrVoid is returned when a staircase leads out of the dungeon.
var ErrVoid = errors.New("the staircase leads out of the dungeon")

// Explorer is the marker walked through the levels by the viewer.
type Explorer struct {
	Level  *world.Level
	Pos    world.Position
	Symbol rune
}

// NewExplorer places an explorer on a level.
func NewExplorer(level *world.Level, pos world.Position) *Explorer {
	return &Explorer{
		Level:  level,
		Pos:    pos,
		Symbol: '@',
	}
}

// Move steps by the given delta if the destination is walkable.
func (e *Explorer) Move(dx, dy int) bool {
	next := e.Pos.Add(dx, dy)
	if !e.Level.IsWalkable(next) {
		return false
	}
	e.Pos = next
	return true
}

// Climb follows the junction of the staircase the explorer stands on. up
// selects which kind of staircase is expected. It returns false when there
// is no such staircase here.
func (e *Explorer) Climb(up bool) (bool, error) {
	want := world.TileStairsDown
	if up {
		want = world.TileStairsUp
	}
	if e.Level.Tile(e.Pos) != want {
		return false, nil
	}

	j, ok := e.Level.Junction(e.Pos)
	if !ok || j.IsVoid() {
		return true, ErrVoid
	}
	e.Level, e.Pos = j.Level, j.Pos
	return true, nil
}
