package entity

import (
	"errors"
	"testing"

	"github.com/samdwyer/delve/internal/world"
)

func corridorLevel(name string, depth int) *world.Level {
	l := world.NewLevel(world.Header{Name: name, Depth: depth, Branch: "D", Width: 8, Height: 3})
	for x := 1; x <= 6; x++ {
		l.SetTile(world.Pos(x, 1), world.TileGround)
	}
	return l
}

func TestExplorerMove(t *testing.T) {
	e := NewExplorer(corridorLevel("a", 1), world.Pos(1, 1))

	if e.Move(-1, 0) {
		t.Error("moved into matter")
	}
	if !e.Move(1, 0) || e.Pos != world.Pos(2, 1) {
		t.Errorf("Move(1,0) left the explorer at %v", e.Pos)
	}
	if e.Move(0, 1) {
		t.Error("moved off the corridor")
	}
}

func TestExplorerClimb(t *testing.T) {
	upper, lower := corridorLevel("upper", 1), corridorLevel("lower", 2)
	upper.AddStaircase(world.Pos(6, 1), false)
	upper.AddStaircase(world.Pos(1, 1), true)
	lower.AddStaircase(world.Pos(3, 1), true)
	upper.SetJunction(world.Pos(6, 1), world.Junction{Level: lower, Pos: world.Pos(3, 1)})
	lower.SetJunction(world.Pos(3, 1), world.Junction{Level: upper, Pos: world.Pos(6, 1)})
	upper.SetJunction(world.Pos(1, 1), world.Junction{})

	e := NewExplorer(upper, world.Pos(6, 1))
	if moved, err := e.Climb(true); moved || err != nil {
		t.Errorf("Climb(up) on a down staircase = %v, %v", moved, err)
	}
	if moved, err := e.Climb(false); !moved || err != nil {
		t.Fatalf("Climb(down) = %v, %v", moved, err)
	}
	if e.Level != lower || e.Pos != world.Pos(3, 1) {
		t.Errorf("explorer on %s at %v, want lower at (3,1)", e.Level.Name, e.Pos)
	}
	if moved, err := e.Climb(true); !moved || err != nil || e.Level != upper {
		t.Fatalf("Climb(up) back = %v, %v", moved, err)
	}

	e.Pos = world.Pos(1, 1)
	if _, err := e.Climb(true); !errors.Is(err, ErrVoid) {
		t.Errorf("Climb(up) at the entry = %v, want ErrVoid", err)
	}
}
