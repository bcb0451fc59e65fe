package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/world"
)

func TestCaveGrowsOneRegion(t *testing.T) {
	cfg := DefaultCaveConfig()
	for seed := int64(1); seed <= 10; seed++ {
		g := NewCaveGenerator(random.New(seed), cfg)
		c, _ := g.grow()

		regions, _ := c.regions()
		if len(regions) != 1 {
			t.Fatalf("seed %d: %d regions after joining, want 1", seed, len(regions))
		}
		if len(regions[0].cells) != c.open() {
			t.Errorf("seed %d: region holds %d of %d open cells", seed, len(regions[0].cells), c.open())
		}
	}
}

func TestCaveOpenPinches(t *testing.T) {
	c := newCave(6, 6)
	c.set(world.Pos(1, 1), true)
	c.set(world.Pos(2, 2), true)
	c.set(world.Pos(4, 1), true)
	c.set(world.Pos(3, 2), true)

	if opened := c.openPinches(); opened != 2 {
		t.Errorf("openPinches() = %d, want 2", opened)
	}
	if !c.get(world.Pos(2, 1)) || !c.get(world.Pos(3, 1)) {
		t.Error("pinches should be opened on the upper row")
	}
}

func TestCaveJoinBridgesRegions(t *testing.T) {
	c := newCave(20, 9)
	for x := 1; x <= 6; x++ {
		for y := 1; y <= 7; y++ {
			c.set(world.Pos(x, y), true)
		}
	}
	for x := 10; x <= 18; x++ {
		for y := 1; y <= 7; y++ {
			c.set(world.Pos(x, y), true)
		}
	}

	if joins := c.join(5); joins != 1 {
		t.Errorf("join() = %d joins, want 1", joins)
	}
	if regions, _ := c.regions(); len(regions) != 1 {
		t.Errorf("%d regions after join, want 1", len(regions))
	}
}

func TestCaveJoinDropsSmallRegions(t *testing.T) {
	c := newCave(20, 9)
	for x := 1; x <= 8; x++ {
		for y := 1; y <= 7; y++ {
			c.set(world.Pos(x, y), true)
		}
	}
	c.set(world.Pos(15, 4), true)
	c.set(world.Pos(16, 4), true)

	if joins := c.join(5); joins != 0 {
		t.Errorf("join() = %d joins, want 0", joins)
	}
	if c.get(world.Pos(15, 4)) || c.open() != 8*7 {
		t.Errorf("small region should be dropped, %d cells open", c.open())
	}
}

func TestCaveLevel(t *testing.T) {
	cfg := DefaultCaveConfig()
	g := NewCaveGenerator(random.New(5), cfg)
	level, err := g.Generate(context.Background(), Spec{Name: "Gnomish Mines 3", Depth: 3, UpStairs: 1, DownStairs: 1, Entry: true})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if level.Branch != "M" {
		t.Errorf("branch = %q, want the cave default M", level.Branch)
	}

	entry, ok := level.Entry()
	if !ok {
		t.Fatal("entry cave has no entry")
	}
	reached := world.Reachable(level, entry)
	open, features, engravings := 0, 0, 0
	level.Each(func(p world.Position, place *world.Place) {
		if !place.Walkable() {
			return
		}
		open++
		if !reached.Has(p) {
			t.Errorf("cell %v unreachable from the entry", p)
		}
		if place.Feature != nil {
			features++
		}
		if place.Engraving != nil {
			engravings++
		}
	})

	interior := (cfg.Width - 2) * (cfg.Height - 2)
	if pct := open * 100 / interior; pct < cfg.MinOpenPercent || pct > cfg.MaxOpenPercent {
		t.Errorf("cave opens %d%% of its interior", pct)
	}
	if features < 5 || features > 8 {
		t.Errorf("%d features, want 5..8", features)
	}
	if engravings < 3 || engravings > 4 {
		t.Errorf("%d engravings, want 3..4", engravings)
	}
	lights := level.LightSources()
	if len(lights) < 4 || len(lights) > 7 {
		t.Errorf("%d light sources, want 4..7", len(lights))
	}
	for _, l := range lights {
		if l.Radius < 5 || l.Radius > 8 || l.Level == world.LightNormal {
			t.Errorf("light source %+v out of range", l)
		}
	}
}

func TestCaveLevelIsDeterministic(t *testing.T) {
	spec := Spec{Name: "Gnomish Mines 4", Depth: 4, UpStairs: 1, DownStairs: 1}
	generate := func() *world.Level {
		level, err := NewCaveGenerator(random.New(77), DefaultCaveConfig()).Generate(context.Background(), spec)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		return level
	}
	a, b := generate(), generate()
	a.Each(func(p world.Position, place *world.Place) {
		if place.Tile != b.Tile(p) {
			t.Fatalf("tile at %v: %v vs %v", p, place.Tile, b.Tile(p))
		}
	})
}

func TestCaveConfigurationErrors(t *testing.T) {
	cfg := DefaultCaveConfig()
	cfg.Features = "4+d4"
	_, err := NewCaveGenerator(random.New(1), cfg).Generate(context.Background(), Spec{Name: "bad", Depth: 2})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("bad dice: error = %v, want ErrConfiguration", err)
	}

	cfg = DefaultCaveConfig()
	cfg.AliveChance = 0
	_, err = NewCaveGenerator(random.New(1), cfg).Generate(context.Background(), Spec{Name: "bad", Depth: 2})
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero alive chance: error = %v, want ErrConfiguration", err)
	}
}
