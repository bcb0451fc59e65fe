// Package generator builds dungeon levels. Three generators share one
// contract: rooms joined by corridors, perfect mazes and organic caves.
package generator

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/world"
)

const (
	// Default level dimensions
	DefaultWidth  = 79
	DefaultHeight = 21
)

// Spec describes the level a generator must build.
type Spec struct {
	Name       string
	Depth      int
	Branch     string
	UpStairs   int
	DownStairs int
	Entry      bool
}

// LevelGenerator turns a Spec into a fully connected level.
type LevelGenerator interface {
	Generate(ctx context.Context, spec Spec) (*world.Level, error)
	Kind() world.Kind
}

// Option configures the collaborators shared by every generator.
type Option func(*options)

type options struct {
	logger logr.Logger
	texts  *gamedata.Texts
	width  int
	height int
}

// WithLogger sends diagnostics to logger. The default discards them.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTexts overrides the inscriptions drawn for headstones, graffiti and statues.
func WithTexts(texts *gamedata.Texts) Option {
	return func(o *options) { o.texts = texts }
}

// WithSize overrides the level dimensions.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.texts == nil {
		o.texts = gamedata.MustLoadTexts()
	}
	return o
}

// New returns the default-configured generator for kind.
func New(kind world.Kind, src *random.Source, used *world.UsedSpecialKinds, opts ...Option) (LevelGenerator, error) {
	switch kind {
	case world.KindRoom:
		return NewRoomGenerator(src, used, DefaultRoomConfig(), opts...), nil
	case world.KindMaze:
		return NewMazeGenerator(src, DefaultMazeConfig(), opts...), nil
	case world.KindCave:
		return NewCaveGenerator(src, DefaultCaveConfig(), opts...), nil
	default:
		return nil, fmt.Errorf("%w: no generator for level kind %v", ErrConfiguration, kind)
	}
}

func newLevel(spec Spec, kind world.Kind, width, height int) *world.Level {
	branch := spec.Branch
	if branch == "" {
		branch = kind.DefaultBranch()
	}
	return world.NewLevel(world.Header{
		Name:   spec.Name,
		Depth:  spec.Depth,
		Branch: branch,
		Kind:   kind,
		Width:  width,
		Height: height,
	})
}

// checkStairs validates the staircase part of a spec.
func checkStairs(spec Spec) error {
	if spec.UpStairs < 0 || spec.DownStairs < 0 {
		return fmt.Errorf("negative staircase count (up=%d, down=%d)", spec.UpStairs, spec.DownStairs)
	}
	if spec.Entry && spec.UpStairs == 0 {
		return fmt.Errorf("entry level needs an up staircase")
	}
	return nil
}
