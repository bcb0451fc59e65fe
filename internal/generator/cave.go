package generator

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/telemetry"
	"github.com/samdwyer/delve/internal/world"
)

// CaveConfig tunes the cave generator.
type CaveConfig struct {
	Width, Height int

	AliveChance     int // percent of interior cells seeded alive
	ErosionPasses   int // passes of the "born on 5+, kept on 2-" rule
	SmoothingPasses int // passes of the "alive on 5+" rule
	BirthLimit      int
	ErosionLimit    int
	MinJoinRegion   int // regions smaller than this are dropped, not joined
	MinOpenPercent  int
	MaxOpenPercent  int
	LevelAttempts   int

	Features     string // dice
	Engravings   string // dice
	LightSources string // dice
	LightRadius  string // dice
}

// DefaultCaveConfig returns the standard tuning for a 79x21 level.
func DefaultCaveConfig() CaveConfig {
	return CaveConfig{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		AliveChance:     45,
		ErosionPasses:   4,
		SmoothingPasses: 3,
		BirthLimit:      5,
		ErosionLimit:    2,
		MinJoinRegion:   5,
		MinOpenPercent:  25,
		MaxOpenPercent:  80,
		LevelAttempts:   100,
		Features:        "d4+4",
		Engravings:      "d2+2",
		LightSources:    "d4+3",
		LightRadius:     "d4+4",
	}
}

// CaveGenerator grows a cave with a cellular automaton and joins its
// regions into one.
type CaveGenerator struct {
	src     *random.Source
	cfg     CaveConfig
	log     logr.Logger
	furnish furnisher
}

// NewCaveGenerator creates a cave generator.
func NewCaveGenerator(src *random.Source, cfg CaveConfig, opts ...Option) *CaveGenerator {
	o := buildOptions(opts)
	if o.width > 0 && o.height > 0 {
		cfg.Width, cfg.Height = o.width, o.height
	}
	return &CaveGenerator{
		src:     src,
		cfg:     cfg,
		log:     o.logger.WithName("cave"),
		furnish: furnisher{src: src, texts: o.texts},
	}
}

// Kind returns world.KindCave.
func (g *CaveGenerator) Kind() world.Kind { return world.KindCave }

// joinRing holds the offsets at distance exactly two from a joiner.
var joinRing = func() []world.Position {
	var ring []world.Position
	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			if max(abs(dx), abs(dy)) == 2 {
				ring = append(ring, world.Pos(dx, dy))
			}
		}
	}
	return ring
}()

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// cave is the automaton field. Only interior cells are ever alive.
type cave struct {
	width, height int
	alive         []bool
}

func newCave(width, height int) *cave {
	return &cave{width: width, height: height, alive: make([]bool, width*height)}
}

func (c *cave) interior(p world.Position) bool {
	return p.X >= 1 && p.X <= c.width-2 && p.Y >= 1 && p.Y <= c.height-2
}

func (c *cave) get(p world.Position) bool {
	return c.interior(p) && c.alive[p.Y*c.width+p.X]
}

func (c *cave) set(p world.Position, v bool) {
	if c.interior(p) {
		c.alive[p.Y*c.width+p.X] = v
	}
}

// each visits interior cells column by column.
func (c *cave) each(fn func(p world.Position)) {
	for x := 1; x <= c.width-2; x++ {
		for y := 1; y <= c.height-2; y++ {
			fn(world.Pos(x, y))
		}
	}
}

func (c *cave) neighbours(p world.Position) int {
	n := 0
	for _, d := range world.Around {
		if c.get(p.Add(d.X, d.Y)) {
			n++
		}
	}
	return n
}

func (c *cave) seed(src *random.Source, chance int) {
	c.each(func(p world.Position) {
		c.set(p, src.PercentChance(chance))
	})
}

// step applies one synchronous automaton pass.
func (c *cave) step(rule func(n int) bool) {
	next := make([]bool, len(c.alive))
	c.each(func(p world.Position) {
		next[p.Y*c.width+p.X] = rule(c.neighbours(p))
	})
	c.alive = next
}

func (c *cave) open() int {
	n := 0
	for _, a := range c.alive {
		if a {
			n++
		}
	}
	return n
}

// region is a maximal 8-connected set of alive cells.
type region struct {
	id    int
	cells []world.Position
}

// regions flood-fills the field, largest region first. label maps each
// alive cell index to its region id.
func (c *cave) regions() ([]region, []int) {
	label := make([]int, len(c.alive))
	for i := range label {
		label[i] = -1
	}

	var out []region
	c.each(func(start world.Position) {
		if !c.get(start) || label[start.Y*c.width+start.X] >= 0 {
			return
		}
		r := region{id: len(out)}
		queue := []world.Position{start}
		label[start.Y*c.width+start.X] = r.id
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			r.cells = append(r.cells, p)
			for _, d := range world.Around {
				n := p.Add(d.X, d.Y)
				if c.get(n) && label[n.Y*c.width+n.X] < 0 {
					label[n.Y*c.width+n.X] = r.id
					queue = append(queue, n)
				}
			}
		}
		out = append(out, r)
	})

	sort.SliceStable(out, func(i, j int) bool { return len(out[i].cells) > len(out[j].cells) })
	return out, label
}

// keepOnly kills every alive cell outside r.
func (c *cave) keepOnly(r region) {
	keep := make([]bool, len(c.alive))
	for _, p := range r.cells {
		keep[p.Y*c.width+p.X] = true
	}
	c.alive = keep
}

// join bridges regions until one remains. A region too small to be worth
// joining, or a field with no joiner left, ends with only the largest
// region kept.
func (c *cave) join(minRegion int) (joins int) {
	for {
		regions, label := c.regions()
		if len(regions) <= 1 {
			return joins
		}
		if len(regions[1].cells) < minRegion {
			c.keepOnly(regions[0])
			return joins
		}

		size := make(map[int]int, len(regions))
		for _, r := range regions {
			size[r.id] = len(r.cells)
		}

		var best world.Position
		bestScore := 0
		c.each(func(p world.Position) {
			if c.get(p) {
				return
			}
			touched := make(map[int]bool)
			for _, d := range joinRing {
				n := p.Add(d.X, d.Y)
				if c.get(n) {
					touched[label[n.Y*c.width+n.X]] = true
				}
			}
			if len(touched) < 2 {
				return
			}
			score := 0
			for id := range touched {
				score += size[id]
			}
			if score > bestScore {
				best, bestScore = p, score
			}
		})

		if bestScore == 0 {
			c.keepOnly(regions[0])
			return joins
		}

		for dx := -2; dx <= 2; dx++ {
			for dy := -2; dy <= 2; dy++ {
				c.set(best.Add(dx, dy), true)
			}
		}
		joins++
	}
}

// openPinches makes diagonal-only contacts walkable orthogonally.
func (c *cave) openPinches() (opened int) {
	for changed := true; changed; {
		changed = false
		c.each(func(p world.Position) {
			if !c.get(p) {
				return
			}
			for _, dx := range []int{-1, 1} {
				q := p.Add(dx, 1)
				if !c.get(q) {
					continue
				}
				side, below := p.Add(dx, 0), p.Add(0, 1)
				if !c.get(side) && !c.get(below) {
					c.set(side, true)
					opened++
					changed = true
				}
			}
		})
	}
	return opened
}

// sheltered lists alive cells surrounded by alive cells.
func (c *cave) sheltered() []world.Position {
	var out []world.Position
	c.each(func(p world.Position) {
		if c.get(p) && c.neighbours(p) == 8 {
			out = append(out, p)
		}
	})
	return out
}

type caveDice struct {
	features, engravings, lights, radius random.Dice
}

func (g *CaveGenerator) parseDice() (caveDice, error) {
	var d caveDice
	var err error
	for _, item := range []struct {
		expr string
		dst  *random.Dice
	}{
		{g.cfg.Features, &d.features},
		{g.cfg.Engravings, &d.engravings},
		{g.cfg.LightSources, &d.lights},
		{g.cfg.LightRadius, &d.radius},
	} {
		if *item.dst, err = random.ParseDice(item.expr); err != nil {
			return d, err
		}
	}
	return d, nil
}

// Generate builds a cave level.
func (g *CaveGenerator) Generate(ctx context.Context, spec Spec) (*world.Level, error) {
	tracer := telemetry.Tracer("generator")
	ctx, span := tracer.Start(ctx, "level.generate.cave")
	defer span.End()

	if err := checkStairs(spec); err != nil {
		return nil, configError(spec, world.KindCave, err)
	}
	if g.cfg.Width < 5 || g.cfg.Height < 5 {
		return nil, configError(spec, world.KindCave, fmt.Errorf("level %dx%d too small for a cave", g.cfg.Width, g.cfg.Height))
	}
	if g.cfg.AliveChance < 1 || g.cfg.AliveChance > 99 || g.cfg.LevelAttempts < 1 {
		return nil, configError(spec, world.KindCave, fmt.Errorf("alive chance %d or attempts %d out of range", g.cfg.AliveChance, g.cfg.LevelAttempts))
	}
	dice, err := g.parseDice()
	if err != nil {
		return nil, configError(spec, world.KindCave, err)
	}

	var joins int
	level, attempts, err := retryLevel(ctx, g.cfg.LevelAttempts, g.log, func(n int) (*world.Level, error) {
		level, j, err := g.attempt(spec, dice)
		joins = j
		return level, err
	})

	span.SetAttributes(
		attribute.String("level.name", spec.Name),
		attribute.Int("level.depth", spec.Depth),
		attribute.Int("level.attempts", attempts),
		attribute.Int("cave.joins", joins),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cave level generation failed")
		return nil, &GenerationError{Level: spec.Name, Kind: world.KindCave, Stage: "automaton", Err: err}
	}
	g.log.V(1).Info("cave level generated", "name", spec.Name, "joins", joins, "attempts", attempts)
	return level, nil
}

// attempt grows, joins and furnishes one cave.
func (g *CaveGenerator) attempt(spec Spec, dice caveDice) (*world.Level, int, error) {
	c, joins := g.grow()

	interior := (g.cfg.Width - 2) * (g.cfg.Height - 2)
	percent := c.open() * 100 / interior
	if percent < g.cfg.MinOpenPercent || percent > g.cfg.MaxOpenPercent {
		return nil, joins, attemptFailed("cave opens %d%% of its interior", percent)
	}

	spots := newPool(g.src, c.sheltered())
	if spots.len() < spec.UpStairs+spec.DownStairs {
		return nil, joins, attemptFailed("%d sheltered cells for %d staircases", spots.len(), spec.UpStairs+spec.DownStairs)
	}

	var downs, ups []world.Position
	for i := 0; i < spec.DownStairs; i++ {
		p, _ := spots.take()
		downs = append(downs, p)
	}
	for i := 0; i < spec.UpStairs; i++ {
		p, _ := spots.take()
		ups = append(ups, p)
	}

	var features []*world.Feature
	for n := dice.features.Roll(g.src); n > 0; n-- {
		p, ok := spots.take()
		if !ok {
			return nil, joins, attemptFailed("no room left for features")
		}
		features = append(features, g.furnish.randomFeature(caveFeatureTable, p))
	}
	var engravings []*world.Engraving
	for n := dice.engravings.Roll(g.src); n > 0; n-- {
		p, ok := spots.take()
		if !ok {
			return nil, joins, attemptFailed("no room left for engravings")
		}
		engravings = append(engravings, g.furnish.engraving(p))
	}
	var lights []world.LightSource
	for n := dice.lights.Roll(g.src); n > 0; n-- {
		p, ok := spots.take()
		if !ok {
			return nil, joins, attemptFailed("no room left for light sources")
		}
		light := world.LightLit
		if g.src.CoinFlip() {
			light = world.LightDark
		}
		lights = append(lights, world.LightSource{Pos: p, Level: light, Radius: dice.radius.Roll(g.src)})
	}

	level := newLevel(spec, world.KindCave, g.cfg.Width, g.cfg.Height)
	c.each(func(p world.Position) {
		if c.get(p) {
			level.SetTile(p, world.TileGround)
		}
	})
	for _, f := range features {
		place := level.At(f.Pos)
		if place.Tile != world.TileGround {
			return nil, joins, fmt.Errorf("feature at %v landed on %v", f.Pos, place.Tile)
		}
		place.Feature = f
	}
	for _, e := range engravings {
		place := level.At(e.Pos)
		if place.Tile != world.TileGround {
			return nil, joins, fmt.Errorf("engraving at %v landed on %v", e.Pos, place.Tile)
		}
		place.Engraving = e
	}
	for _, l := range lights {
		level.AddLightSource(l)
	}
	for _, p := range downs {
		level.AddStaircase(p, false)
	}
	for _, p := range ups {
		level.AddStaircase(p, true)
	}
	if spec.Entry {
		level.SetEntry(ups[0])
	}

	if missed := world.Unreachable(level); len(missed) > 0 {
		g.log.Error(nil, "cave region joined but tiles are not", "unreachable", len(missed), "first", missed[0])
		return nil, joins, attemptFailed("%d unreachable cells", len(missed))
	}
	return level, joins, nil
}

// grow runs the automaton and joins its regions.
func (g *CaveGenerator) grow() (*cave, int) {
	c := newCave(g.cfg.Width, g.cfg.Height)
	c.seed(g.src, g.cfg.AliveChance)

	for i := 0; i < g.cfg.ErosionPasses; i++ {
		c.step(func(n int) bool { return n >= g.cfg.BirthLimit || n <= g.cfg.ErosionLimit })
	}
	for i := 0; i < g.cfg.SmoothingPasses; i++ {
		c.step(func(n int) bool { return n >= g.cfg.BirthLimit })
	}

	joins := c.join(g.cfg.MinJoinRegion)
	c.openPinches()
	return c, joins
}
