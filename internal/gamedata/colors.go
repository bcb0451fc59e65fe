package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Palette maps tile identifiers to hex colours.
type Palette struct {
	Default string            `json:"default"`
	Tiles   map[string]string `json:"tiles"`
	Doors   string            `json:"doors"`
	Objects string            `json:"objects"`
}

// LoadPalette loads the embedded palette.json.
func LoadPalette() (Palette, error) {
	return Load[Palette]("palette.json")
}

// Color returns the colour for a tile identifier, or the default colour.
func (p Palette) Color(tile string) tcell.Color {
	if hex, ok := p.Tiles[tile]; ok {
		if c, err := ParseHexColor(hex); err == nil {
			return c
		}
	}
	if c, err := ParseHexColor(p.Default); err == nil {
		return c
	}
	return tcell.ColorDefault
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
