// Package game runs the interactive level viewer.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/leonelquinteros/gotext"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/delve/internal/dungeon"
	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/telemetry"
	"github.com/samdwyer/delve/internal/ui"
	"github.com/samdwyer/delve/internal/world"
)

// Game is the viewer: a generated dungeon and an explorer walking it.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	log      logr.Logger

	explorer *entity.Explorer
	cursor   world.Position
	state    State
	message  string
	running  bool
}

// Load generates the levels described by cfg and places an explorer at the
// entry. It does not touch the terminal.
func Load(ctx context.Context, cfg Config, logger logr.Logger) (*Game, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.load")
	defer span.End()

	src := random.New(cfg.Seed)
	opts := []dungeon.Option{dungeon.WithLogger(logger)}

	var start *world.Level
	if cfg.Preview != nil {
		level, err := dungeon.Preview(ctx, *cfg.Preview, max(cfg.Depth, 1), src, opts...)
		if err != nil {
			return nil, err
		}
		start = level
	} else {
		plan, err := loadPlan(cfg.PlanPath)
		if err != nil {
			return nil, err
		}
		d, err := dungeon.Build(ctx, plan, src, opts...)
		if err != nil {
			return nil, err
		}
		start = d.Entrance()
		if cfg.Level != "" {
			l, ok := d.Level(cfg.Level)
			if !ok {
				return nil, fmt.Errorf("no level named %q in the plan", cfg.Level)
			}
			start = l
		}
		span.SetAttributes(attribute.Int("dungeon.levels", len(d.Levels())))
	}

	pos, ok := world.ReachabilityOrigin(start)
	if !ok {
		return nil, fmt.Errorf("level %q has nowhere to stand", start.Name)
	}
	span.SetAttributes(attribute.String("game.start_level", start.Name))

	g := &Game{
		log:      logger,
		explorer: entity.NewExplorer(start, pos),
		state:    StateExplore,
		running:  true,
	}
	g.arrive()
	return g, nil
}

func loadPlan(path string) (gamedata.Plan, error) {
	if path == "" {
		return gamedata.LoadPlan()
	}
	return gamedata.LoadPlanFile(path)
}

// Explorer returns the explorer.
func (g *Game) Explorer() *entity.Explorer { return g.explorer }

// Message returns the current status line.
func (g *Game) Message() string { return g.message }

// arrive sets the status line for the explorer's level.
func (g *Game) arrive() {
	g.message = gotext.Get("You arrive on %s.", g.explorer.Level.Name)
	if rooms := g.explorer.Level.SpecialRooms(); len(rooms) > 0 {
		g.message += " " + rooms[0].Kind.LevelMessage()
	}
}

// Run opens the terminal and loops until the user quits.
func (g *Game) Run(ctx context.Context) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	palette, err := gamedata.LoadPalette()
	if err != nil {
		screen.Close()
		return err
	}
	g.screen = screen
	g.renderer = ui.NewRenderer(screen, palette)
	defer g.Close()

	for g.running {
		g.render()
		g.handleInput(ctx)
	}
	return nil
}

func (g *Game) header() string {
	l := g.explorer.Level
	return fmt.Sprintf("%s  [%s %s, depth %d]  %s  arrows move, < > stairs, i inspect, q quit",
		l.Name, l.Identifier(), l.Kind, l.Depth, g.state)
}

func (g *Game) render() {
	if g.state == StateInspect {
		marker := *g.explorer
		marker.Pos, marker.Symbol = g.cursor, 'X'
		g.renderer.Render(&marker, g.header(), g.message)
		return
	}
	g.renderer.Render(g.explorer, g.header(), g.message)
}

func (g *Game) handleInput(ctx context.Context) {
	switch ev := g.screen.PollEvent().(type) {
	case *tcell.EventKey:
		g.HandleKey(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// HandleKey applies one key press.
func (g *Game) HandleKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		if g.state == StateInspect {
			g.state = StateExplore
			g.message = ""
			return
		}
		g.running = false
	case tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyUp:
		g.step(0, -1)
	case tcell.KeyDown:
		g.step(0, 1)
	case tcell.KeyLeft:
		g.step(-1, 0)
	case tcell.KeyRight:
		g.step(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case '<':
			g.climb(ctx, true)
		case '>':
			g.climb(ctx, false)
		case 'i':
			g.toggleInspect()
		}
	}
}

func (g *Game) step(dx, dy int) {
	if g.state == StateInspect {
		next := g.cursor.Add(dx, dy)
		if g.explorer.Level.InBounds(next) {
			g.cursor = next
		}
		g.message = Describe(g.explorer.Level, g.cursor)
		return
	}

	before, _ := g.explorer.Level.SpecialRoomAt(g.explorer.Pos)
	if !g.explorer.Move(dx, dy) {
		return
	}
	g.message = ""
	if room, ok := g.explorer.Level.SpecialRoomAt(g.explorer.Pos); ok && room != before {
		g.message = room.Kind.RoomMessage()
	}
}

func (g *Game) climb(ctx context.Context, up bool) {
	_, span := telemetry.Tracer("game").Start(ctx, "game.climb")
	defer span.End()

	from := g.explorer.Level
	moved, err := g.explorer.Climb(up)
	switch {
	case errors.Is(err, entity.ErrVoid):
		g.message = gotext.Get("These stairs lead out of the dungeon.")
	case !moved && up:
		g.message = gotext.Get("You can't go up here.")
	case !moved:
		g.message = gotext.Get("You can't go down here.")
	default:
		span.SetAttributes(
			attribute.String("level.from", from.Name),
			attribute.String("level.to", g.explorer.Level.Name),
		)
		g.log.V(1).Info("took staircase", "from", from.Name, "to", g.explorer.Level.Name)
		g.arrive()
	}
}

func (g *Game) toggleInspect() {
	if g.state == StateInspect {
		g.state = StateExplore
		g.message = ""
		return
	}
	g.state = StateInspect
	g.cursor = g.explorer.Pos
	g.message = Describe(g.explorer.Level, g.cursor)
}

// Describe tells what lies at p, topmost content first.
func Describe(l *world.Level, p world.Position) string {
	place := l.At(p)
	if place == nil {
		return ""
	}
	var what string
	switch {
	case place.HeavyRock != nil && place.HeavyRock.Kind == world.RockStatue && place.HeavyRock.Subject != "":
		what = gotext.Get("a statue of %s", place.HeavyRock.Subject)
	case place.HeavyRock != nil:
		what = gotext.Get("a %s", place.HeavyRock.Kind)
	case place.Feature != nil && place.Feature.Kind == world.FeatureAltar:
		what = gotext.Get("a %s altar", place.Feature.Alignment)
	case place.Feature != nil && place.Feature.Inscription != "":
		what = gotext.Get("a %s reading \"%s\"", place.Feature.Kind, place.Feature.Inscription)
	case place.Feature != nil:
		what = gotext.Get("a %s", place.Feature.Kind)
	case place.Door != nil && !place.Door.Secret:
		what = gotext.Get("a %s door", place.Door.Status)
	case place.Door != nil:
		what = world.TileRoomVWall.Description()
	case place.Engraving != nil:
		what = gotext.Get("something engraved: \"%s\"", place.Engraving.Text)
	case place.Corridor != nil && place.Corridor.Secret:
		what = world.TileMatter.Description()
	case place.Corridor != nil:
		what = gotext.Get("a corridor")
	default:
		what = place.Tile.Description()
	}
	if room, ok := l.SpecialRoomAt(p); ok {
		what += gotext.Get(" (%s)", room.Kind)
	}
	return gotext.Get("You see %s.", what)
}

// Close restores the terminal.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
