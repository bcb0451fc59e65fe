package generator

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/telemetry"
	"github.com/samdwyer/delve/internal/world"
)

// MazeConfig tunes the maze generator.
type MazeConfig struct {
	Width, Height int
	Fountains     string // dice
	Engravings    string // dice
}

// DefaultMazeConfig returns the standard tuning for a 79x21 level.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Fountains:  "d2+2",
		Engravings: "d1+1",
	}
}

// MazeGenerator carves a perfect maze: every cell reachable, no loops.
type MazeGenerator struct {
	src     *random.Source
	cfg     MazeConfig
	log     logr.Logger
	furnish furnisher
}

// NewMazeGenerator creates a maze generator.
func NewMazeGenerator(src *random.Source, cfg MazeConfig, opts ...Option) *MazeGenerator {
	o := buildOptions(opts)
	if o.width > 0 && o.height > 0 {
		cfg.Width, cfg.Height = o.width, o.height
	}
	return &MazeGenerator{
		src:     src,
		cfg:     cfg,
		log:     o.logger.WithName("maze"),
		furnish: furnisher{src: src, texts: o.texts},
	}
}

// Kind returns world.KindMaze.
func (g *MazeGenerator) Kind() world.Kind { return world.KindMaze }

type mazeNode uint8

const (
	mazeCorner mazeNode = iota
	mazeWall
	mazeCell
)

// possWall separates the one or two cells listed in connects. Walls on the
// maze border touch a single cell and are never cancelled.
type possWall struct {
	pos       world.Position
	vertical  bool
	connects  []world.Position
	cancelled bool
}

// maze is the lattice: corners on even/even nodes, cells on odd/odd nodes,
// walls in between. group labels track which cells are already joined.
type maze struct {
	width, height int
	walls         []*possWall
	wallAt        map[world.Position]*possWall
	cells         []world.Position
	group         map[world.Position]int
	cancelled     int
}

func nodeKind(p world.Position) mazeNode {
	switch {
	case p.X%2 == 0 && p.Y%2 == 0:
		return mazeCorner
	case p.X%2 == 1 && p.Y%2 == 1:
		return mazeCell
	default:
		return mazeWall
	}
}

// newMaze builds the lattice over the largest 4k-1 sized area that fits.
func newMaze(width, height int) *maze {
	m := &maze{
		width:  (width/4)*4 - 1,
		height: (height/4)*4 - 1,
		wallAt: make(map[world.Position]*possWall),
		group:  make(map[world.Position]int),
	}

	inside := func(p world.Position) bool {
		return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
	}

	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			p := world.Pos(x, y)
			switch nodeKind(p) {
			case mazeCell:
				m.group[p] = len(m.cells)
				m.cells = append(m.cells, p)
			case mazeWall:
				w := &possWall{pos: p, vertical: x%2 == 0}
				sides := [2]world.Position{p.Add(0, -1), p.Add(0, 1)}
				if w.vertical {
					sides = [2]world.Position{p.Add(-1, 0), p.Add(1, 0)}
				}
				for _, s := range sides {
					if inside(s) {
						w.connects = append(w.connects, s)
					}
				}
				m.walls = append(m.walls, w)
				m.wallAt[p] = w
			}
		}
	}
	return m
}

// carve cancels walls between distinct groups until one group remains.
func (m *maze) carve(src *random.Source) {
	for {
		var selectable []*possWall
		for _, w := range m.walls {
			if !w.cancelled && len(w.connects) == 2 && m.group[w.connects[0]] != m.group[w.connects[1]] {
				selectable = append(selectable, w)
			}
		}
		if len(selectable) == 0 {
			return
		}

		w := selectable[src.Intn(len(selectable))]
		w.cancelled = true
		m.cancelled++

		keep, drop := m.group[w.connects[0]], m.group[w.connects[1]]
		for _, c := range m.cells {
			if m.group[c] == drop {
				m.group[c] = keep
			}
		}
	}
}

// groups counts distinct cell labels.
func (m *maze) groups() int {
	seen := make(map[int]bool)
	for _, c := range m.cells {
		seen[m.group[c]] = true
	}
	return len(seen)
}

// cornerTile picks a corner's shape from the walls still standing around it.
func (m *maze) cornerTile(p world.Position) world.TileKind {
	mask := 0
	for bit, d := range map[int]world.Position{
		world.WallNorth: {X: 0, Y: -1},
		world.WallEast:  {X: 1, Y: 0},
		world.WallSouth: {X: 0, Y: 1},
		world.WallWest:  {X: -1, Y: 0},
	} {
		if w, ok := m.wallAt[p.Add(d.X, d.Y)]; ok && !w.cancelled {
			mask |= bit
		}
	}
	return world.MazeCorner(mask)
}

// sheltered lists cells whose neighbours all stay clear of the maze border.
func (m *maze) sheltered() []world.Position {
	var out []world.Position
	for _, c := range m.cells {
		if c.X >= 3 && c.X <= m.width-4 && c.Y >= 3 && c.Y <= m.height-4 {
			out = append(out, c)
		}
	}
	return out
}

// Generate builds a maze level.
func (g *MazeGenerator) Generate(ctx context.Context, spec Spec) (*world.Level, error) {
	tracer := telemetry.Tracer("generator")
	_, span := tracer.Start(ctx, "level.generate.maze")
	defer span.End()

	fail := func(stage string, err error) (*world.Level, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "maze level generation failed")
		return nil, &GenerationError{Level: spec.Name, Kind: world.KindMaze, Stage: stage, Err: err}
	}

	if err := checkStairs(spec); err != nil {
		return nil, configError(spec, world.KindMaze, err)
	}
	if g.cfg.Width < 4 || g.cfg.Height < 4 {
		return nil, configError(spec, world.KindMaze, fmt.Errorf("level %dx%d too small for a maze", g.cfg.Width, g.cfg.Height))
	}
	fountains, err := random.ParseDice(g.cfg.Fountains)
	if err != nil {
		return nil, configError(spec, world.KindMaze, err)
	}
	engravings, err := random.ParseDice(g.cfg.Engravings)
	if err != nil {
		return nil, configError(spec, world.KindMaze, err)
	}

	m := newMaze(g.cfg.Width, g.cfg.Height)
	if spec.UpStairs+spec.DownStairs > len(m.cells) {
		return nil, configError(spec, world.KindMaze, fmt.Errorf("%d staircases for %d maze cells", spec.UpStairs+spec.DownStairs, len(m.cells)))
	}
	m.carve(g.src)

	level := newLevel(spec, world.KindMaze, g.cfg.Width, g.cfg.Height)
	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			p := world.Pos(x, y)
			switch nodeKind(p) {
			case mazeCell:
				level.SetTile(p, world.TileGround)
			case mazeWall:
				w := m.wallAt[p]
				switch {
				case w.cancelled:
					level.SetTile(p, world.TileGround)
				case w.vertical:
					level.SetTile(p, world.TileMazeVWall)
				default:
					level.SetTile(p, world.TileMazeHWall)
				}
			case mazeCorner:
				level.SetTile(p, m.cornerTile(p))
			}
		}
	}

	preferred := newPool(g.src, m.sheltered())
	fallback := newPool(g.src, m.cells)
	take := func() (world.Position, bool) {
		if p, ok := preferred.take(); ok {
			fallback.remove(p)
			return p, true
		}
		return fallback.take()
	}

	var downs, ups []world.Position
	for i := 0; i < spec.DownStairs; i++ {
		p, _ := take()
		downs = append(downs, p)
	}
	for i := 0; i < spec.UpStairs; i++ {
		p, _ := take()
		ups = append(ups, p)
	}

	for n := fountains.Roll(g.src); n > 0; n-- {
		p, ok := take()
		if !ok {
			break
		}
		level.At(p).Feature = g.furnish.feature(world.FeatureFountain, p)
	}
	for n := engravings.Roll(g.src); n > 0; n-- {
		p, ok := take()
		if !ok {
			break
		}
		level.At(p).Engraving = g.furnish.engraving(p)
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
		return fail("connectivity", fmt.Errorf("%w: %d maze cells unreachable", ErrExhausted, len(missed)))
	}

	span.SetAttributes(
		attribute.String("level.name", spec.Name),
		attribute.Int("level.depth", spec.Depth),
		attribute.Int("maze.cells", len(m.cells)),
		attribute.Int("maze.cancelled_walls", m.cancelled),
	)
	g.log.V(1).Info("maze level generated", "name", spec.Name, "cells", len(m.cells), "cancelled", m.cancelled)
	return level, nil
}
