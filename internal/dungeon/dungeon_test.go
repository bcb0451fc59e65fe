package dungeon

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/generator"
	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/world"
)

func testLevel(name string, depth, up, down int) *world.Level {
	l := world.NewLevel(world.Header{Name: name, Depth: depth, Branch: "D", Width: 20, Height: 10})
	for i := 0; i < up; i++ {
		l.AddStaircase(world.Pos(2+i, 2), true)
	}
	for i := 0; i < down; i++ {
		l.AddStaircase(world.Pos(2+i, 6), false)
	}
	return l
}

func TestJoinIsSymmetric(t *testing.T) {
	a := testLevel("A", 1, 1, 1)
	b := testLevel("B", 2, 1, 1)

	if err := Join(context.Background(), logr.Discard(), a, b, false); err != nil {
		t.Fatalf("Join() error = %v", err)
	}

	down, up := a.DownStairs()[0], b.UpStairs()[0]
	ja, ok := a.Junction(down)
	if !ok || ja.Level != b || ja.Pos != up {
		t.Errorf("A junction at %v = %+v, want B at %v", down, ja, up)
	}
	jb, ok := b.Junction(up)
	if !ok || jb.Level != a || jb.Pos != down {
		t.Errorf("B junction at %v = %+v, want A at %v", up, jb, down)
	}
	if a.FreeDownStairs() != 0 || b.FreeUpStairs() != 0 {
		t.Error("linked staircases should no longer be free")
	}
}

func TestJoinVoid(t *testing.T) {
	top := testLevel("top", 1, 1, 0)
	bottom := testLevel("bottom", 5, 0, 1)

	if err := Join(context.Background(), logr.Discard(), nil, top, false); err != nil {
		t.Fatalf("Join(nil, top) error = %v", err)
	}
	if j, ok := top.Junction(top.UpStairs()[0]); !ok || !j.IsVoid() {
		t.Errorf("top up staircase junction = %+v, want void", j)
	}

	if err := Join(context.Background(), logr.Discard(), bottom, nil, false); err != nil {
		t.Fatalf("Join(bottom, nil) error = %v", err)
	}
	if j, ok := bottom.Junction(bottom.DownStairs()[0]); !ok || !j.IsVoid() {
		t.Errorf("bottom down staircase junction = %+v, want void", j)
	}
}

func TestJoinErrors(t *testing.T) {
	tests := []struct {
		name         string
		upper, lower *world.Level
		preview      bool
	}{
		{"no level", nil, nil, false},
		{"same depth", testLevel("A", 2, 1, 1), testLevel("B", 2, 1, 1), false},
		{"going up", testLevel("A", 3, 1, 1), testLevel("B", 2, 1, 1), false},
		{"upper without down staircase", testLevel("A", 1, 1, 0), testLevel("B", 2, 1, 1), false},
		{"lower without up staircase", testLevel("A", 1, 1, 1), testLevel("B", 2, 0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Join(context.Background(), logr.Discard(), tt.upper, tt.lower, tt.preview)
			if !errors.Is(err, generator.ErrConfiguration) {
				t.Errorf("Join() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestJoinFailureKeepsStaircasesFree(t *testing.T) {
	a := testLevel("A", 1, 1, 1)
	b := testLevel("B", 2, 0, 1)

	if err := Join(context.Background(), logr.Discard(), a, b, false); err == nil {
		t.Fatal("Join() should fail without a free up staircase below")
	}
	if a.FreeDownStairs() != 1 {
		t.Errorf("upper free down staircases = %d after a failed join, want 1", a.FreeDownStairs())
	}
	if len(a.JunctionPositions()) != 0 || len(b.JunctionPositions()) != 0 {
		t.Error("a failed join must not record junctions")
	}

	c := testLevel("C", 2, 1, 1)
	if err := Join(context.Background(), logr.Discard(), a, c, false); err != nil {
		t.Fatalf("Join() after a failed attempt error = %v", err)
	}
}

func TestJoinPreviewToleratesMissingUpStair(t *testing.T) {
	a := testLevel("A", 1, 1, 1)
	b := testLevel("B", 2, 0, 1)

	if err := Join(context.Background(), logr.Discard(), a, b, true); err != nil {
		t.Fatalf("Join() in preview error = %v", err)
	}
	if j, ok := a.Junction(a.DownStairs()[0]); !ok || !j.IsVoid() {
		t.Errorf("upper junction = %+v, want void", j)
	}
	if len(b.JunctionPositions()) != 0 {
		t.Error("lower level should hold no junction")
	}
}

func TestBuildDefaultPlan(t *testing.T) {
	plan, err := gamedata.LoadPlan()
	if err != nil {
		t.Fatalf("LoadPlan() error = %v", err)
	}

	d, err := Build(context.Background(), plan, random.New(2024))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(d.Levels()) != len(plan.Levels) {
		t.Fatalf("%d levels, want %d", len(d.Levels()), len(plan.Levels))
	}
	if d.Entrance() == nil || d.Entrance().Name != "Dungeons of Doom 1" {
		t.Fatalf("entrance = %v", d.Entrance())
	}
	entry, ok := d.Entrance().Entry()
	if !ok {
		t.Fatal("entrance has no entry position")
	}
	if j, ok := d.Entrance().Junction(entry); !ok || !j.IsVoid() {
		t.Errorf("entry staircase junction = %+v, want void", j)
	}

	for _, l := range d.Levels() {
		if l.FreeUpStairs() != 0 || l.FreeDownStairs() != 0 {
			t.Errorf("%s keeps unlinked staircases: up=%d down=%d", l.Name, l.FreeUpStairs(), l.FreeDownStairs())
		}
		for _, p := range l.JunctionPositions() {
			j, _ := l.Junction(p)
			if j.IsVoid() {
				continue
			}
			back, ok := j.Level.Junction(j.Pos)
			if !ok || back.Level != l || back.Pos != p {
				t.Errorf("%s junction at %v has no mirror on %s", l.Name, p, j.Level.Name)
			}
		}
	}

	mines, ok := d.Level("Gnomish Mines 3")
	if !ok || mines.Kind != world.KindCave || mines.Branch != "M" {
		t.Errorf("mines level = %+v", mines)
	}
	seen := make(map[world.SpecialKind]bool)
	for _, l := range d.Levels() {
		for _, s := range l.SpecialRooms() {
			if s.Kind == world.SpecialShop {
				continue
			}
			if seen[s.Kind] {
				t.Errorf("special room %v appears twice", s.Kind)
			}
			seen[s.Kind] = true
		}
	}
}

func TestBuildRejectsBadPlans(t *testing.T) {
	name := func(s string) *string { return &s }
	tests := []struct {
		name string
		plan gamedata.Plan
	}{
		{"invalid plan", gamedata.Plan{}},
		{"unknown type", gamedata.Plan{Levels: []gamedata.LevelDef{{Name: "a", Type: "swamp", Entry: true}}}},
		{"shared identifier", gamedata.Plan{Levels: []gamedata.LevelDef{
			{Name: "a", Type: "maze", Depth: 2, Entry: true},
			{Name: "b", Type: "maze", Depth: 2},
		}}},
		{"junction going up", gamedata.Plan{
			Levels: []gamedata.LevelDef{
				{Name: "a", Type: "maze", Depth: 2, Entry: true},
				{Name: "b", Type: "maze", Depth: 1},
			},
			Junctions: []gamedata.JunctionDef{{Up: name("a"), Down: name("b")}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(context.Background(), tt.plan, random.New(1))
			if !errors.Is(err, generator.ErrConfiguration) {
				t.Errorf("Build() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	for _, kind := range []world.Kind{world.KindRoom, world.KindMaze, world.KindCave} {
		level, err := Preview(context.Background(), kind, 3, random.New(8))
		if err != nil {
			t.Fatalf("Preview(%v) error = %v", kind, err)
		}
		if level.Kind != kind || level.Depth != 3 {
			t.Errorf("Preview(%v) built a %v level at depth %d", kind, level.Kind, level.Depth)
		}
		if j, ok := level.Junction(level.UpStairs()[0]); !ok || !j.IsVoid() {
			t.Errorf("Preview(%v) up staircase junction = %+v, want void", kind, j)
		}
		if level.FreeDownStairs() != 1 {
			t.Errorf("Preview(%v) down staircase should stay free", kind)
		}
	}
}
