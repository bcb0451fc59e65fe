package generator

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/world"
)

// room is a rectangle of walls around a floor. area spans the walls
// included: walls sit on x = X, X+W and y = Y, Y+H.
type room struct {
	area  world.Rect
	vault bool
	light world.LightLevel

	footprint mapset.Set[world.Position]

	doors      []*world.Door
	features   []*world.Feature
	engravings []*world.Engraving
	rocks      []*world.HeavyRock
	staircase  *world.Position
}

// newRoom draws a room's size, position and lighting.
func newRoom(src *random.Source, cfg RoomConfig, vault bool) *room {
	r := &room{vault: vault, light: world.LightNormal}

	if vault {
		r.area.W, r.area.H = 3, 3
	} else {
		maxH, maxW := cfg.Height/4, cfg.Width/4
		if src.PercentChance(cfg.BigRoomChance) {
			maxH, maxW = cfg.Height/3, cfg.Width/3
		}
		r.area.H = src.Range(4, maxH)
		r.area.W = src.Range(4, maxW)
	}
	r.area.X = src.Range(0, cfg.Width-r.area.W-1)
	r.area.Y = src.Range(0, cfg.Height-r.area.H-1)

	r.footprint = world.SetOf(r.area.Grow(1).Cells()...)

	if !vault && src.PercentChance(cfg.SpecialLightChance) {
		if src.PercentChance(cfg.DarkLightChance) {
			r.light = world.LightDark
		} else {
			r.light = world.LightLit
		}
	}
	return r
}

// Footprint returns the room's cells plus a one-cell margin.
func (r *room) Footprint() mapset.Set[world.Position] {
	return r.footprint
}

// less orders rooms by their upper-left corner, row first.
func (r *room) less(o *room) bool {
	if r.area.Y != o.area.Y {
		return r.area.Y < o.area.Y
	}
	return r.area.X < o.area.X
}

func (r *room) corners() []world.Position {
	a := r.area
	return []world.Position{
		world.Pos(a.X, a.Y), world.Pos(a.X+a.W, a.Y),
		world.Pos(a.X, a.Y+a.H), world.Pos(a.X+a.W, a.Y+a.H),
	}
}

func (r *room) isWall(p world.Position) bool {
	return r.area.OnBorder(p)
}

func (r *room) doorIsVertical(p world.Position) bool {
	return p.X == r.area.X || p.X == r.area.X+r.area.W
}

// inset lists the cells at least margin cells inside the walls.
func (r *room) inset(margin int) []world.Position {
	var cells []world.Position
	for x := r.area.X + margin; x <= r.area.X+r.area.W-margin; x++ {
		for y := r.area.Y + margin; y <= r.area.Y+r.area.H-margin; y++ {
			cells = append(cells, world.Pos(x, y))
		}
	}
	return cells
}

// insideTiles lists the cells away from walls and not touching a door.
func (r *room) insideTiles() []world.Position {
	var cells []world.Position
	for _, p := range r.inset(2) {
		if !r.touchesDoor(p) {
			cells = append(cells, p)
		}
	}
	return cells
}

func (r *room) touchesDoor(p world.Position) bool {
	for _, d := range world.Around {
		n := p.Add(d.X, d.Y)
		for _, door := range r.doors {
			if door.Pos == n {
				return true
			}
		}
	}
	return false
}

func (r *room) hasFeatureAt(p world.Position) bool {
	for _, f := range r.features {
		if f.Pos == p {
			return true
		}
	}
	return false
}

func (r *room) putStaircase(src *random.Source) {
	p := world.Pos(
		r.area.X+src.Range(2, r.area.W-2),
		r.area.Y+src.Range(2, r.area.H-2),
	)
	r.staircase = &p
}

// wallTile returns the wall tile for a border cell.
func (r *room) wallTile(p world.Position) world.TileKind {
	a := r.area
	switch {
	case p.X == a.X && p.Y == a.Y:
		return world.TileRoomULCorner
	case p.X == a.X+a.W && p.Y == a.Y:
		return world.TileRoomURCorner
	case p.X == a.X && p.Y == a.Y+a.H:
		return world.TileRoomLLCorner
	case p.X == a.X+a.W && p.Y == a.Y+a.H:
		return world.TileRoomLRCorner
	case p.Y == a.Y || p.Y == a.Y+a.H:
		return world.TileRoomHWall
	default:
		return world.TileRoomVWall
	}
}
