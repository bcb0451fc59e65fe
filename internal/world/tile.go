// Package world provides the level grid shared by every generator: tiles,
// places, staircases, junctions and the occupier collision model.
package world

// TileKind is the terrain of a single cell.
type TileKind uint8

const (
	TileMatter TileKind = iota
	TileGround

	TileRoomVWall
	TileRoomHWall
	TileRoomULCorner
	TileRoomURCorner
	TileRoomLLCorner
	TileRoomLRCorner

	TileMazeVWall
	TileMazeHWall
	TileMazeXCorner
	TileMazeL0Corner
	TileMazeL90Corner
	TileMazeL180Corner
	TileMazeL270Corner
	TileMazeT0Corner
	TileMazeT90Corner
	TileMazeT180Corner
	TileMazeT270Corner
	TileMazeI0Corner
	TileMazeI90Corner
	TileMazeI180Corner
	TileMazeI270Corner
	TileMazePillar

	TileStairsDown
	TileStairsUp
	TileMoat

	tileKindCount
)

type tileInfo struct {
	name     string
	desc     string
	glyph    rune
	walkable bool
}

var tileTable = [tileKindCount]tileInfo{
	TileMatter:         {"matter", "some hard matter", ' ', false},
	TileGround:         {"ground", "a ground", '·', true},
	TileRoomVWall:      {"room_v_wall", "a room wall", '║', false},
	TileRoomHWall:      {"room_h_wall", "a room wall", '═', false},
	TileRoomULCorner:   {"room_ul_corner", "a room corner wall", '╔', false},
	TileRoomURCorner:   {"room_ur_corner", "a room corner wall", '╗', false},
	TileRoomLLCorner:   {"room_ll_corner", "a room corner wall", '╚', false},
	TileRoomLRCorner:   {"room_lr_corner", "a room corner wall", '╝', false},
	TileMazeVWall:      {"maze_v_wall", "a maze wall", '│', false},
	TileMazeHWall:      {"maze_h_wall", "a maze wall", '─', false},
	TileMazeXCorner:    {"maze_x_corner", "a maze corner wall", '┼', false},
	TileMazeL0Corner:   {"maze_l0_corner", "a maze corner wall", '└', false},
	TileMazeL90Corner:  {"maze_l90_corner", "a maze corner wall", '┌', false},
	TileMazeL180Corner: {"maze_l180_corner", "a maze corner wall", '┐', false},
	TileMazeL270Corner: {"maze_l270_corner", "a maze corner wall", '┘', false},
	TileMazeT0Corner:   {"maze_t0_corner", "a maze corner wall", '┬', false},
	TileMazeT90Corner:  {"maze_t90_corner", "a maze corner wall", '┤', false},
	TileMazeT180Corner: {"maze_t180_corner", "a maze corner wall", '┴', false},
	TileMazeT270Corner: {"maze_t270_corner", "a maze corner wall", '├', false},
	TileMazeI0Corner:   {"maze_i0_corner", "a maze corner wall", '╵', false},
	TileMazeI90Corner:  {"maze_i90_corner", "a maze corner wall", '╶', false},
	TileMazeI180Corner: {"maze_i180_corner", "a maze corner wall", '╷', false},
	TileMazeI270Corner: {"maze_i270_corner", "a maze corner wall", '╴', false},
	TileMazePillar:     {"maze_pillar", "a maze pillar", '•', false},
	TileStairsDown:     {"stairs_down", "stairs going down", '>', true},
	TileStairsUp:       {"stairs_up", "stairs going up", '<', true},
	TileMoat:           {"moat", "a moat", '}', false},
}

// Rune returns the tile's display character.
func (t TileKind) Rune() rune {
	if t >= tileKindCount {
		return '?'
	}
	return tileTable[t].glyph
}

// Walkable returns true if the tile can be walked on.
func (t TileKind) Walkable() bool {
	return t < tileKindCount && tileTable[t].walkable
}

// Description returns a short phrase for the tile.
func (t TileKind) Description() string {
	if t >= tileKindCount {
		return "something strange"
	}
	return tileTable[t].desc
}

// String returns the tile's identifier, as used in palette files.
func (t TileKind) String() string {
	if t >= tileKindCount {
		return "unknown"
	}
	return tileTable[t].name
}

// IsWall reports whether the tile belongs to a room or maze wall.
func (t TileKind) IsWall() bool {
	return t >= TileRoomVWall && t <= TileMazePillar
}

// TileKindByName looks a tile up by its identifier.
func TileKindByName(name string) (TileKind, bool) {
	for k := TileKind(0); k < tileKindCount; k++ {
		if tileTable[k].name == name {
			return k, true
		}
	}
	return 0, false
}

// Direction bits used to pick maze corner shapes.
const (
	WallNorth = 1 << iota
	WallEast
	WallSouth
	WallWest
)

// MazeCorner returns the corner tile for the set of walls still standing
// around a maze joint.
func MazeCorner(mask int) TileKind {
	switch mask & 0xF {
	case WallNorth | WallEast | WallSouth | WallWest:
		return TileMazeXCorner
	case WallEast | WallWest | WallSouth:
		return TileMazeT0Corner
	case WallWest | WallNorth | WallSouth:
		return TileMazeT90Corner
	case WallEast | WallWest | WallNorth:
		return TileMazeT180Corner
	case WallEast | WallNorth | WallSouth:
		return TileMazeT270Corner
	case WallEast | WallNorth:
		return TileMazeL0Corner
	case WallEast | WallSouth:
		return TileMazeL90Corner
	case WallWest | WallSouth:
		return TileMazeL180Corner
	case WallWest | WallNorth:
		return TileMazeL270Corner
	case WallEast | WallWest:
		return TileMazeHWall
	case WallNorth | WallSouth:
		return TileMazeVWall
	case WallNorth:
		return TileMazeI0Corner
	case WallEast:
		return TileMazeI90Corner
	case WallSouth:
		return TileMazeI180Corner
	case WallWest:
		return TileMazeI270Corner
	default:
		return TileMazePillar
	}
}
