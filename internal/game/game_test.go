package game

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/samdwyer/delve/internal/world"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestStateString(t *testing.T) {
	if StateExplore.String() != "explore" || StateInspect.String() != "inspect" || State(9).String() != "unknown" {
		t.Error("unexpected state names")
	}
}

func TestLoadStartsAtEntry(t *testing.T) {
	g, err := Load(context.Background(), Config{Seed: 31}, logr.Discard())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	e := g.Explorer()
	entry, _ := e.Level.Entry()
	if e.Level.Name != "Dungeons of Doom 1" || e.Pos != entry {
		t.Errorf("explorer on %s at %v, want the entry %v", e.Level.Name, e.Pos, entry)
	}
	if !strings.Contains(g.Message(), "Dungeons of Doom 1") {
		t.Errorf("arrival message = %q", g.Message())
	}

	g.HandleKey(context.Background(), runeKey('<'))
	if !strings.Contains(g.Message(), "out of the dungeon") {
		t.Errorf("climbing the entry staircase: %q", g.Message())
	}
	g.HandleKey(context.Background(), runeKey('>'))
	if !strings.Contains(g.Message(), "can't go down") {
		t.Errorf("going down from an up staircase: %q", g.Message())
	}
}

func TestTakeStaircaseDown(t *testing.T) {
	g, err := Load(context.Background(), Config{Seed: 31}, logr.Discard())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	e := g.Explorer()
	e.Pos = e.Level.DownStairs()[0]

	g.HandleKey(context.Background(), runeKey('>'))
	if e.Level.Name != "Dungeons of Doom 2" || e.Level.Tile(e.Pos) != world.TileStairsUp {
		t.Fatalf("explorer on %s at %v after going down", e.Level.Name, e.Pos)
	}
	g.HandleKey(context.Background(), runeKey('<'))
	if e.Level.Name != "Dungeons of Doom 1" {
		t.Errorf("explorer on %s after going back up", e.Level.Name)
	}
}

func TestLoadPreviewAndNamedLevel(t *testing.T) {
	kind := world.KindCave
	g, err := Load(context.Background(), Config{Seed: 5, Preview: &kind, Depth: 3}, logr.Discard())
	if err != nil {
		t.Fatalf("Load(preview) error = %v", err)
	}
	if l := g.Explorer().Level; l.Kind != world.KindCave || l.Depth != 3 {
		t.Errorf("preview level %v at depth %d", l.Kind, l.Depth)
	}

	g, err = Load(context.Background(), Config{Seed: 5, Level: "Gehennom 5"}, logr.Discard())
	if err != nil {
		t.Fatalf("Load(level) error = %v", err)
	}
	if l := g.Explorer().Level; l.Kind != world.KindMaze {
		t.Errorf("named level is a %v", l.Kind)
	}

	if _, err := Load(context.Background(), Config{Seed: 5, Level: "Nowhere"}, logr.Discard()); err == nil {
		t.Error("Load() should reject an unknown level name")
	}
}

func TestInspectMode(t *testing.T) {
	g, err := Load(context.Background(), Config{Seed: 12}, logr.Discard())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	ctx := context.Background()

	g.HandleKey(ctx, runeKey('i'))
	if g.state != StateInspect || !strings.Contains(g.Message(), "stairs going up") {
		t.Fatalf("inspect at the entry: state %v message %q", g.state, g.Message())
	}
	start := g.Explorer().Pos
	g.HandleKey(ctx, key(tcell.KeyLeft))
	if g.Explorer().Pos != start {
		t.Error("inspect mode should move the cursor, not the explorer")
	}
	g.HandleKey(ctx, key(tcell.KeyEscape))
	if g.state != StateExplore || !g.running {
		t.Error("escape should leave inspect mode without quitting")
	}
	g.HandleKey(ctx, runeKey('q'))
	if g.running {
		t.Error("q should quit")
	}
}

func TestDescribe(t *testing.T) {
	l := world.NewLevel(world.Header{Name: "d", Width: 5, Height: 1})
	l.SetTile(world.Pos(0, 0), world.TileGround)
	l.At(world.Pos(0, 0)).Feature = &world.Feature{Kind: world.FeatureHeadstone, Inscription: "RIP"}
	l.SetTile(world.Pos(1, 0), world.TileGround)
	l.At(world.Pos(1, 0)).Door = &world.Door{Status: world.DoorLocked}
	l.SetTile(world.Pos(2, 0), world.TileGround)
	l.At(world.Pos(2, 0)).Corridor = &world.Corridor{Secret: true}

	tests := []struct {
		x    int
		want string
	}{
		{0, `reading "RIP"`},
		{1, "a locked door"},
		{2, "some hard matter"},
		{4, "some hard matter"},
	}
	for _, tt := range tests {
		if got := Describe(l, world.Pos(tt.x, 0)); !strings.Contains(got, tt.want) {
			t.Errorf("Describe(%d) = %q, want it to mention %q", tt.x, got, tt.want)
		}
	}
}
