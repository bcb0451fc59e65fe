// Package mapdump writes a generated level as text: the grid, a legend,
// then every staircase, junction, door and special room with coordinates.
package mapdump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gookit/color"

	"github.com/samdwyer/delve/internal/world"
)

// Options control the dump.
type Options struct {
	// Color wraps grid glyphs in ANSI styles.
	Color bool
	// Seed is echoed in the metadata section when non-zero.
	Seed int64
}

var (
	styleWall    = color.Style{color.FgGray}
	styleFloor   = color.Style{color.FgGray, color.OpBold}
	styleDoor    = color.Style{color.FgYellow, color.OpBold}
	styleStairs  = color.Style{color.FgGreen, color.OpBold}
	styleFeature = color.Style{color.FgCyan}
	styleRock    = color.Style{color.FgMagenta}
	styleSpecial = color.Style{color.FgRed}
)

func glyphStyle(l *world.Level, p world.Position, place *world.Place) color.Style {
	switch {
	case place.Tile == world.TileStairsUp || place.Tile == world.TileStairsDown:
		return styleStairs
	case place.HeavyRock != nil:
		return styleRock
	case place.Feature != nil:
		return styleFeature
	case place.Door != nil:
		return styleDoor
	case place.Tile.IsWall():
		if _, ok := l.SpecialRoomAt(p); ok {
			return styleSpecial
		}
		return styleWall
	default:
		return styleFloor
	}
}

// Write dumps level to w.
func Write(w io.Writer, level *world.Level, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "=== LEVEL DUMP ===")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "name: %s\n", level.Name)
	fmt.Fprintf(bw, "id: %s\n", level.ID)
	fmt.Fprintf(bw, "identifier: %s\n", level.Identifier())
	fmt.Fprintf(bw, "kind: %s\n", level.Kind)
	fmt.Fprintf(bw, "depth: %d\n", level.Depth)
	fmt.Fprintf(bw, "branch: %s\n", level.Branch)
	fmt.Fprintf(bw, "size: %dx%d\n", level.Width, level.Height)
	if opts.Seed != 0 {
		fmt.Fprintf(bw, "seed: %d\n", opts.Seed)
	}
	fmt.Fprintln(bw, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)")
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Legend ---")
	fmt.Fprintln(bw, "· floor  # corridor  < up stairs  > down stairs  + closed door  ' open door or statue  ~ engraving  { fountain  _ altar  \\ throne  | headstone  0 boulder  @ entry")
	fmt.Fprintln(bw, "room walls ═ ║ ╔ ╗ ╚ ╝, maze walls ─ │ and box corners, secret doors show as walls, secret corridors as blanks")
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Map ---")
	entry, hasEntry := level.Entry()
	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			p := world.Pos(x, y)
			place := level.At(p)
			glyph := string(place.Rune())
			if hasEntry && p == entry {
				glyph = "@"
			}
			if opts.Color {
				glyph = glyphStyle(level, p, place).Sprint(glyph)
			}
			bw.WriteString(glyph)
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Staircases ---")
	for _, p := range level.UpStairs() {
		fmt.Fprintf(bw, "  up x: %d y: %d%s\n", p.X, p.Y, junctionSuffix(level, p))
	}
	for _, p := range level.DownStairs() {
		fmt.Fprintf(bw, "  down x: %d y: %d%s\n", p.X, p.Y, junctionSuffix(level, p))
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Doors ---")
	level.Each(func(p world.Position, place *world.Place) {
		if d := place.Door; d != nil {
			fmt.Fprintf(bw, "  x: %d y: %d status: %s secret: %v\n", p.X, p.Y, d.Status, d.Secret)
		}
	})
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Features ---")
	level.Each(func(p world.Position, place *world.Place) {
		if f := place.Feature; f != nil {
			fmt.Fprintf(bw, "  x: %d y: %d kind: %s", p.X, p.Y, f.Kind)
			if f.Kind == world.FeatureAltar {
				fmt.Fprintf(bw, " alignment: %s", f.Alignment)
			}
			if f.Inscription != "" {
				fmt.Fprintf(bw, " inscription: %q", f.Inscription)
			}
			fmt.Fprintln(bw)
		}
	})
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Light sources ---")
	for _, l := range level.LightSources() {
		fmt.Fprintf(bw, "  x: %d y: %d level: %s radius: %d\n", l.Pos.X, l.Pos.Y, l.Level, l.Radius)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Special rooms ---")
	for _, s := range level.SpecialRooms() {
		fmt.Fprintf(bw, "  kind: %s x: %d y: %d w: %d h: %d", s.Kind, s.Area.X, s.Area.Y, s.Area.W, s.Area.H)
		if s.Alignment != nil {
			fmt.Fprintf(bw, " alignment: %s", *s.Alignment)
		}
		fmt.Fprintf(bw, " message: %q\n", s.Kind.LevelMessage())
	}

	if vaults := level.Vaults(); len(vaults) > 0 {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "--- Vaults ---")
		for _, v := range vaults {
			fmt.Fprintf(bw, "  x: %d y: %d w: %d h: %d\n", v.X, v.Y, v.W, v.H)
		}
	}

	return bw.Flush()
}

func junctionSuffix(level *world.Level, p world.Position) string {
	j, ok := level.Junction(p)
	switch {
	case !ok:
		return " (unlinked)"
	case j.IsVoid():
		return " -> void"
	default:
		return fmt.Sprintf(" -> %s x: %d y: %d", j.Level.Name, j.Pos.X, j.Pos.Y)
	}
}

// WriteFile dumps level to path and returns the absolute path written.
func WriteFile(path string, level *world.Level, opts Options) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := Write(f, level, opts); err != nil {
		return "", err
	}
	return abs, f.Close()
}
