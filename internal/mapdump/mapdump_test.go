package mapdump

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samdwyer/delve/internal/generator"
	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/world"
)

func smallLevel() *world.Level {
	l := world.NewLevel(world.Header{Name: "vestibule", Depth: 2, Branch: "D", Kind: world.KindRoom, Width: 6, Height: 3})
	for x := 1; x <= 4; x++ {
		l.SetTile(world.Pos(x, 1), world.TileGround)
	}
	l.AddStaircase(world.Pos(1, 1), true)
	l.AddStaircase(world.Pos(4, 1), false)
	l.SetJunction(world.Pos(1, 1), world.Junction{})
	l.At(world.Pos(2, 1)).Door = &world.Door{Pos: world.Pos(2, 1), Status: world.DoorClosed}
	l.AddSpecialRoom(world.SpecialRoom{Kind: world.SpecialGraveyard, Area: world.Rect{X: 0, Y: 0, W: 5, H: 2}})
	l.AddVault(world.Rect{X: 5, Y: 0, W: 1, H: 1})
	return l
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, smallLevel(), Options{Seed: 99}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"name: vestibule",
		"identifier: 2D",
		"seed: 99",
		"      \n <+·> \n      \n",
		"up x: 1 y: 1 -> void",
		"down x: 4 y: 1 (unlinked)",
		"x: 2 y: 1 status: closed secret: false",
		"kind: graveyard x: 0 y: 0 w: 5 h: 2",
		world.SpecialGraveyard.LevelMessage(),
		"--- Vaults ---\n  x: 5 y: 0 w: 1 h: 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump lacks %q:\n%s", want, out)
		}
	}
}

func TestWriteMarksEntry(t *testing.T) {
	l := smallLevel()
	l.SetEntry(world.Pos(1, 1))

	var buf bytes.Buffer
	if err := Write(&buf, l, Options{}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), " @+·> ") {
		t.Errorf("entry not marked:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "seed:") {
		t.Error("zero seed should be omitted")
	}
}

func TestWriteFileGeneratedLevel(t *testing.T) {
	level, err := generator.NewMazeGenerator(random.New(3), generator.DefaultMazeConfig()).
		Generate(context.Background(), generator.Spec{Name: "maze", Depth: 4, UpStairs: 1, DownStairs: 1})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	path, err := WriteFile(filepath.Join(t.TempDir(), "level.txt"), level, Options{Color: true})
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}
	if !strings.Contains(string(content), "kind: maze") {
		t.Errorf("dump lacks the level kind")
	}
}
