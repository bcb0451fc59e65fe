package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/world"
)

// statusLines is the space kept below the map for the header and messages.
const statusLines = 2

// Renderer draws a level, the explorer and a status area.
type Renderer struct {
	screen  *Screen
	palette gamedata.Palette
	styles  map[world.TileKind]tcell.Style
	door    tcell.Style
	object  tcell.Style
}

// NewRenderer creates a renderer colouring tiles from palette.
func NewRenderer(screen *Screen, palette gamedata.Palette) *Renderer {
	r := &Renderer{
		screen:  screen,
		palette: palette,
		styles:  make(map[world.TileKind]tcell.Style),
		door:    tcell.StyleDefault.Foreground(colorOr(palette.Doors, tcell.ColorOlive)),
		object:  tcell.StyleDefault.Foreground(colorOr(palette.Objects, tcell.ColorYellow)),
	}
	return r
}

func colorOr(hex string, fallback tcell.Color) tcell.Color {
	if c, err := gamedata.ParseHexColor(hex); err == nil {
		return c
	}
	return fallback
}

func (r *Renderer) tileStyle(t world.TileKind) tcell.Style {
	if s, ok := r.styles[t]; ok {
		return s
	}
	s := tcell.StyleDefault.Foreground(r.palette.Color(t.String()))
	r.styles[t] = s
	return s
}

func (r *Renderer) placeStyle(place *world.Place) tcell.Style {
	switch {
	case place.Tile == world.TileStairsUp || place.Tile == world.TileStairsDown:
		return r.tileStyle(place.Tile).Bold(true)
	case place.HeavyRock != nil, place.Feature != nil, len(place.Items) > 0:
		return r.object
	case place.Door != nil && !place.Door.Secret:
		return r.door
	default:
		return r.tileStyle(place.Tile)
	}
}

// Viewport returns the top-left level cell to draw so that the explorer
// stays visible on a screen of the given size.
func Viewport(level *world.Level, focus world.Position, width, height int) world.Position {
	origin := world.Pos(0, 0)
	if level.Width > width {
		origin.X = min(max(focus.X-width/2, 0), level.Width-width)
	}
	if level.Height > height {
		origin.Y = min(max(focus.Y-height/2, 0), level.Height-height)
	}
	return origin
}

// Render draws the explorer's level with the header on the first line and
// msg on the last.
func (r *Renderer) Render(e *entity.Explorer, header, msg string) {
	r.screen.Clear()
	width, height := r.screen.Size()
	mapHeight := height - statusLines
	level := e.Level

	r.screen.DrawText(0, 0, header, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	origin := Viewport(level, e.Pos, width, mapHeight)
	for sy := 0; sy < mapHeight && origin.Y+sy < level.Height; sy++ {
		for sx := 0; sx < width && origin.X+sx < level.Width; sx++ {
			place := level.At(world.Pos(origin.X+sx, origin.Y+sy))
			r.screen.SetContent(sx, sy+1, place.Rune(), r.placeStyle(place))
		}
	}

	explorerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.screen.SetContent(e.Pos.X-origin.X, e.Pos.Y-origin.Y+1, e.Symbol, explorerStyle)

	r.screen.DrawText(0, height-1, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.screen.Show()
}
