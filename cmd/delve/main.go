// Command delve generates roguelike dungeons and lets you walk them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"golang.org/x/term"

	"github.com/samdwyer/delve/internal/dungeon"
	"github.com/samdwyer/delve/internal/game"
	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/generator"
	"github.com/samdwyer/delve/internal/mapdump"
	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/telemetry"
	"github.com/samdwyer/delve/internal/world"
)

type options struct {
	seed      int64
	plan      string
	level     string
	preview   string
	depth     int
	dump      string
	verbosity int
}

func parseFlags(args []string) (options, error) {
	o := options{plan: os.Getenv("DELVE_PLAN")}
	if s := os.Getenv("DELVE_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return o, fmt.Errorf("DELVE_SEED: %w", err)
		}
		o.seed = seed
	}
	if v := os.Getenv("DELVE_VERBOSITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return o, fmt.Errorf("DELVE_VERBOSITY: %w", err)
		}
		o.verbosity = n
	}

	fs := flag.NewFlagSet("delve", flag.ContinueOnError)
	fs.Int64Var(&o.seed, "seed", o.seed, "generator seed, 0 for a random one (env DELVE_SEED)")
	fs.StringVar(&o.plan, "plan", o.plan, "dungeon plan JSON file, empty for the built-in plan (env DELVE_PLAN)")
	fs.StringVar(&o.level, "level", "", "start on the named level")
	fs.StringVar(&o.preview, "preview", "", "generate a single level of this kind: room, maze or cave")
	fs.IntVar(&o.depth, "depth", 1, "depth of the previewed level")
	fs.StringVar(&o.dump, "dump", "", "write the levels as text to this file, - for stdout, instead of opening the viewer")
	fs.IntVar(&o.verbosity, "v", o.verbosity, "log verbosity (env DELVE_VERBOSITY)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.seed == 0 {
		o.seed = random.NewSeed()
	}
	return o, nil
}

func newLogger(verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	logger := stdr.NewWithOptions(log.New(os.Stderr, "delve ", log.LstdFlags), stdr.Options{LogCaller: stdr.Error})
	otel.SetLogger(logger)
	return logger
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "delve: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	envErr := godotenv.Load()

	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	logger := newLogger(o.verbosity)
	if envErr != nil {
		logger.V(1).Info(".env file not loaded", "reason", envErr.Error())
	}

	ctx := context.Background()
	if telemetry.ConfigureHoneycomb() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Error(err, "telemetry setup failed, running without traces")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error(err, "telemetry shutdown failed")
				}
			}()
		}
	}
	logger.V(1).Info("starting", "seed", o.seed)

	cfg := game.Config{Seed: o.seed, PlanPath: o.plan, Level: o.level, Depth: o.depth}
	if o.preview != "" {
		kind, err := world.ParseKind(o.preview)
		if err != nil {
			return err
		}
		cfg.Preview = &kind
	}

	if o.dump != "" {
		return dump(ctx, cfg, o.dump, logger)
	}

	g, err := game.Load(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return g.Run(ctx)
}

// dump writes every generated level as text.
func dump(ctx context.Context, cfg game.Config, path string, logger logr.Logger) error {
	levels, err := generate(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if path == "-" {
		return writeLevels(os.Stdout, levels, term.IsTerminal(int(os.Stdout.Fd())), cfg.Seed)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeLevels(f, levels, false, cfg.Seed); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	logger.Info("levels written", "path", path, "levels", len(levels))
	return nil
}

func writeLevels(w io.Writer, levels []*world.Level, colored bool, seed int64) error {
	for _, l := range levels {
		if err := mapdump.Write(w, l, mapdump.Options{Color: colored, Seed: seed}); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func generate(ctx context.Context, cfg game.Config, logger logr.Logger) ([]*world.Level, error) {
	src := random.New(cfg.Seed)
	opts := []dungeon.Option{dungeon.WithLogger(logger)}

	if cfg.Preview != nil {
		level, err := dungeon.Preview(ctx, *cfg.Preview, max(cfg.Depth, 1), src, opts...)
		if err != nil {
			return nil, err
		}
		return []*world.Level{level}, nil
	}

	plan, err := gamedata.LoadPlan()
	if cfg.PlanPath != "" {
		plan, err = gamedata.LoadPlanFile(cfg.PlanPath)
	}
	if err != nil {
		return nil, err
	}
	d, err := dungeon.Build(ctx, plan, src, opts...)
	if err != nil {
		var genErr *generator.GenerationError
		if errors.As(err, &genErr) {
			logger.Error(err, "level generation failed", "level", genErr.Level, "stage", genErr.Stage)
		}
		return nil, err
	}
	if cfg.Level != "" {
		l, ok := d.Level(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("no level named %q in the plan", cfg.Level)
		}
		return []*world.Level{l}, nil
	}
	return d.Levels(), nil
}
