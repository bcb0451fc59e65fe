package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/samdwyer/delve/internal/game"
	"github.com/samdwyer/delve/internal/world"
)

func TestParseFlags(t *testing.T) {
	t.Setenv("DELVE_SEED", "12")
	t.Setenv("DELVE_PLAN", "plan.json")
	t.Setenv("DELVE_VERBOSITY", "")

	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if o.seed != 12 || o.plan != "plan.json" || o.depth != 1 {
		t.Errorf("env defaults = %+v", o)
	}

	o, err = parseFlags([]string{"-seed", "5", "-preview", "maze", "-depth", "7", "-v", "2"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if o.seed != 5 || o.preview != "maze" || o.depth != 7 || o.verbosity != 2 {
		t.Errorf("flags = %+v", o)
	}

	t.Setenv("DELVE_SEED", "lots")
	if _, err := parseFlags(nil); err == nil {
		t.Error("parseFlags() should reject a non-numeric DELVE_SEED")
	}
}

func TestParseFlagsPicksSeed(t *testing.T) {
	t.Setenv("DELVE_SEED", "")
	t.Setenv("DELVE_VERBOSITY", "")
	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if o.seed == 0 {
		t.Error("a zero seed should be replaced")
	}
}

func TestDumpPreview(t *testing.T) {
	kind := world.KindMaze
	path := filepath.Join(t.TempDir(), "maze.txt")
	cfg := game.Config{Seed: 21, Preview: &kind, Depth: 4}

	if err := dump(context.Background(), cfg, path, logr.Discard()); err != nil {
		t.Fatalf("dump() error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}
	if !strings.Contains(string(content), "kind: maze") || !strings.Contains(string(content), "seed: 21") {
		t.Errorf("unexpected dump:\n%s", content)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDumpReportsWriteErrors(t *testing.T) {
	l := world.NewLevel(world.Header{Name: "tiny", Depth: 1, Branch: "D", Width: 3, Height: 3})
	if err := writeLevels(brokenWriter{}, []*world.Level{l}, false, 1); err == nil {
		t.Error("writeLevels() should report a failing writer")
	}

	kind := world.KindCave
	cfg := game.Config{Seed: 5, Preview: &kind, Depth: 3}
	path := filepath.Join(t.TempDir(), "missing", "cave.txt")
	if err := dump(context.Background(), cfg, path, logr.Discard()); err == nil {
		t.Error("dump() into a missing directory should fail")
	}
}
