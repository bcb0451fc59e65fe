// Package dungeon generates every level of a plan and links their
// staircases.
package dungeon

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/generator"
	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/telemetry"
	"github.com/samdwyer/delve/internal/world"
)

// Dungeon is a set of linked levels.
type Dungeon struct {
	levels   []*world.Level
	byName   map[string]*world.Level
	entrance *world.Level
	used     *world.UsedSpecialKinds
}

// Option configures a build.
type Option func(*options)

type options struct {
	logger    logr.Logger
	generator []generator.Option
}

// WithLogger sends build diagnostics, and those of the generators, to logger.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithGeneratorOptions passes options on to every level generator.
func WithGeneratorOptions(opts ...generator.Option) Option {
	return func(o *options) { o.generator = append(o.generator, opts...) }
}

func buildOptions(opts []Option) options {
	o := options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	o.generator = append([]generator.Option{generator.WithLogger(o.logger)}, o.generator...)
	return o
}

// Build generates the plan's levels in order, sharing one record of used
// special-room kinds, then applies its junctions.
func Build(ctx context.Context, plan gamedata.Plan, src *random.Source, opts ...Option) (*Dungeon, error) {
	tracer := telemetry.Tracer("dungeon")
	ctx, span := tracer.Start(ctx, "dungeon.build")
	defer span.End()

	d, err := build(ctx, plan, src, buildOptions(opts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dungeon build failed")
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("dungeon.levels", len(d.levels)),
		attribute.Int("dungeon.special_kinds", d.used.Len()),
	)
	return d, nil
}

func build(ctx context.Context, plan gamedata.Plan, src *random.Source, o options) (*Dungeon, error) {
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generator.ErrConfiguration, err)
	}

	d := &Dungeon{
		byName: make(map[string]*world.Level, len(plan.Levels)),
		used:   world.NewUsedSpecialKinds(),
	}
	identifiers := make(map[string]string)

	for _, def := range plan.Levels {
		kind, err := world.ParseKind(def.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: level %q: %v", generator.ErrConfiguration, def.Name, err)
		}
		gen, err := generator.New(kind, src, d.used, o.generator...)
		if err != nil {
			return nil, err
		}

		up, down := def.Stairs()
		level, err := gen.Generate(ctx, generator.Spec{
			Name:       def.Name,
			Depth:      def.LevelDepth(),
			Branch:     def.Branch,
			UpStairs:   up,
			DownStairs: down,
			Entry:      def.Entry,
		})
		if err != nil {
			return nil, err
		}

		id := level.Identifier()
		if other, dup := identifiers[id]; dup {
			return nil, fmt.Errorf("%w: levels %q and %q share identifier %s", generator.ErrConfiguration, other, def.Name, id)
		}
		identifiers[id] = def.Name

		d.levels = append(d.levels, level)
		d.byName[def.Name] = level
		if def.Entry {
			d.entrance = level
		}
		o.logger.V(1).Info("level ready", "name", def.Name, "id", id, "kind", kind.String())
	}

	for _, j := range plan.Junctions {
		var upper, lower *world.Level
		if j.Up != nil {
			upper = d.byName[*j.Up]
		}
		if j.Down != nil {
			lower = d.byName[*j.Down]
		}
		if err := Join(ctx, o.logger, upper, lower, false); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Preview generates a single level of the given kind for inspection. Its
// up staircase leads to the void; its down staircase stays unlinked.
func Preview(ctx context.Context, kind world.Kind, depth int, src *random.Source, opts ...Option) (*world.Level, error) {
	o := buildOptions(opts)
	gen, err := generator.New(kind, src, world.NewUsedSpecialKinds(), o.generator...)
	if err != nil {
		return nil, err
	}
	level, err := gen.Generate(ctx, generator.Spec{
		Name:       fmt.Sprintf("%s preview %d", kind, depth),
		Depth:      depth,
		UpStairs:   1,
		DownStairs: 1,
		Entry:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := Join(ctx, o.logger, nil, level, true); err != nil {
		return nil, err
	}
	return level, nil
}

// Entrance returns the level the hero starts on.
func (d *Dungeon) Entrance() *world.Level { return d.entrance }

// Level looks a level up by name.
func (d *Dungeon) Level(name string) (*world.Level, bool) {
	l, ok := d.byName[name]
	return l, ok
}

// Levels lists the levels in generation order.
func (d *Dungeon) Levels() []*world.Level { return d.levels }

// UsedSpecialKinds returns the special-room kinds placed across the dungeon.
func (d *Dungeon) UsedSpecialKinds() *world.UsedSpecialKinds { return d.used }
