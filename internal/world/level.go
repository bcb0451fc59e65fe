package world

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// Kind is the generation method of a level.
type Kind uint8

const (
	KindRoom Kind = iota
	KindMaze
	KindCave
)

// String returns the kind's plan identifier.
func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindMaze:
		return "maze"
	case KindCave:
		return "cave"
	default:
		return "unknown"
	}
}

// DefaultBranch returns the branch a kind lives in when the plan names none.
func (k Kind) DefaultBranch() string {
	switch k {
	case KindMaze:
		return "G"
	case KindCave:
		return "M"
	default:
		return "D"
	}
}

// ParseKind converts a plan identifier into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "room", "rooms":
		return KindRoom, nil
	case "maze":
		return KindMaze, nil
	case "cave":
		return KindCave, nil
	default:
		return 0, fmt.Errorf("unknown level type %q", s)
	}
}

var levelNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("delve/level"))

// Junction points a staircase at a cell on another level. A nil Level is
// the void: the dungeon ends there on purpose.
type Junction struct {
	Level *Level
	Pos   Position
}

// IsVoid reports whether the junction leads nowhere.
func (j Junction) IsVoid() bool {
	return j.Level == nil
}

// Header carries the identity and size of a level.
type Header struct {
	Name   string
	Depth  int
	Branch string
	Kind   Kind
	Width  int
	Height int
}

// Level is a generated dungeon level. Generators fill it once; afterwards
// only the junction table and the free staircase sets change.
type Level struct {
	ID     string
	Name   string
	Depth  int
	Branch string
	Kind   Kind
	Width  int
	Height int

	places [][]Place

	upStairs   mapset.Set[Position]
	downStairs mapset.Set[Position]
	freeUp     mapset.Set[Position]
	freeDown   mapset.Set[Position]
	junctions  map[Position]Junction

	entry        *Position
	specialRooms []SpecialRoom
	lights       []LightSource
	vaults       []Rect
}

// NewLevel creates a level filled with matter.
func NewLevel(h Header) *Level {
	places := make([][]Place, h.Height)
	for y := range places {
		places[y] = make([]Place, h.Width)
		for x := range places[y] {
			places[y][x].Tile = TileMatter
		}
	}

	return &Level{
		ID:         uuid.NewSHA1(levelNamespace, []byte(fmt.Sprintf("%s/%d/%s", h.Name, h.Depth, h.Branch))).String(),
		Name:       h.Name,
		Depth:      h.Depth,
		Branch:     h.Branch,
		Kind:       h.Kind,
		Width:      h.Width,
		Height:     h.Height,
		places:     places,
		upStairs:   mapset.New[Position](),
		downStairs: mapset.New[Position](),
		freeUp:     mapset.New[Position](),
		freeDown:   mapset.New[Position](),
		junctions:  make(map[Position]Junction),
	}
}

// Identifier is depth followed by branch, unique within a dungeon.
func (l *Level) Identifier() string {
	return fmt.Sprintf("%d%s", l.Depth, l.Branch)
}

// InBounds returns true if the position lies on the grid.
func (l *Level) InBounds(p Position) bool {
	return p.X >= 0 && p.X < l.Width && p.Y >= 0 && p.Y < l.Height
}

// At returns the place at p, or nil outside the grid.
func (l *Level) At(p Position) *Place {
	if !l.InBounds(p) {
		return nil
	}
	return &l.places[p.Y][p.X]
}

// Tile returns the tile at p. Cells outside the grid read as matter.
func (l *Level) Tile(p Position) TileKind {
	if !l.InBounds(p) {
		return TileMatter
	}
	return l.places[p.Y][p.X].Tile
}

// SetTile changes the terrain at p.
func (l *Level) SetTile(p Position, t TileKind) {
	if l.InBounds(p) {
		l.places[p.Y][p.X].Tile = t
	}
}

// IsWalkable returns true if the given position can be walked on.
func (l *Level) IsWalkable(p Position) bool {
	return l.InBounds(p) && l.places[p.Y][p.X].Walkable()
}

// AddStaircase stamps a staircase tile and registers it as free.
func (l *Level) AddStaircase(p Position, up bool) {
	if up {
		l.SetTile(p, TileStairsUp)
		l.upStairs.Put(p)
		l.freeUp.Put(p)
		return
	}
	l.SetTile(p, TileStairsDown)
	l.downStairs.Put(p)
	l.freeDown.Put(p)
}

// UpStairs lists the up staircases in sorted order.
func (l *Level) UpStairs() []Position { return Sorted(l.upStairs) }

// DownStairs lists the down staircases in sorted order.
func (l *Level) DownStairs() []Position { return Sorted(l.downStairs) }

// PopFreeUpStair claims an unlinked up staircase.
func (l *Level) PopFreeUpStair() (Position, bool) {
	return popFirst(l.freeUp)
}

// PopFreeDownStair claims an unlinked down staircase.
func (l *Level) PopFreeDownStair() (Position, bool) {
	return popFirst(l.freeDown)
}

// FreeUpStairs counts up staircases not yet linked.
func (l *Level) FreeUpStairs() int { return l.freeUp.Size() }

// FreeDownStairs counts down staircases not yet linked.
func (l *Level) FreeDownStairs() int { return l.freeDown.Size() }

func popFirst(s mapset.Set[Position]) (Position, bool) {
	if s.Size() == 0 {
		return Position{}, false
	}
	p := Sorted(s)[0]
	s.Remove(p)
	return p, true
}

// SetJunction links the staircase at p to another level.
func (l *Level) SetJunction(p Position, j Junction) {
	l.junctions[p] = j
}

// Junction returns where the staircase at p leads.
func (l *Level) Junction(p Position) (Junction, bool) {
	j, ok := l.junctions[p]
	return j, ok
}

// JunctionPositions lists the linked staircases in sorted order.
func (l *Level) JunctionPositions() []Position {
	out := make([]Position, 0, len(l.junctions))
	for p := range l.junctions {
		out = append(out, p)
	}
	SortPositions(out)
	return out
}

// SetEntry marks p as the dungeon's starting cell.
func (l *Level) SetEntry(p Position) {
	l.entry = &p
}

// Entry returns the starting cell if this is the entry level.
func (l *Level) Entry() (Position, bool) {
	if l.entry == nil {
		return Position{}, false
	}
	return *l.entry, true
}

// AddSpecialRoom registers a promoted room.
func (l *Level) AddSpecialRoom(s SpecialRoom) {
	l.specialRooms = append(l.specialRooms, s)
}

// SpecialRooms returns the promoted rooms in promotion order.
func (l *Level) SpecialRooms() []SpecialRoom {
	return append([]SpecialRoom(nil), l.specialRooms...)
}

// SpecialRoomAt returns the special room containing p, if any.
func (l *Level) SpecialRoomAt(p Position) (SpecialRoom, bool) {
	for _, s := range l.specialRooms {
		if s.Contains(p) {
			return s, true
		}
	}
	return SpecialRoom{}, false
}

// AddLightSource registers a light or darkness source.
func (l *Level) AddLightSource(s LightSource) {
	l.lights = append(l.lights, s)
}

// LightSources returns the registered sources.
func (l *Level) LightSources() []LightSource {
	return append([]LightSource(nil), l.lights...)
}

// AddVault registers a closed room that is deliberately unreachable.
func (l *Level) AddVault(r Rect) {
	l.vaults = append(l.vaults, r)
}

// Vaults returns the sealed rooms.
func (l *Level) Vaults() []Rect {
	return append([]Rect(nil), l.vaults...)
}

// InVault reports whether p lies in a sealed room.
func (l *Level) InVault(p Position) bool {
	for _, v := range l.vaults {
		if v.Contains(p) {
			return true
		}
	}
	return false
}

// Each calls fn for every place, column by column.
func (l *Level) Each(fn func(p Position, place *Place)) {
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			fn(Position{X: x, Y: y}, &l.places[y][x])
		}
	}
}
