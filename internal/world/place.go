package world

// DoorStatus is the state a door is generated in.
type DoorStatus uint8

const (
	DoorOpened DoorStatus = iota
	DoorClosed
	DoorLocked
	DoorDestroyed
)

// String returns a human-readable status.
func (s DoorStatus) String() string {
	switch s {
	case DoorOpened:
		return "opened"
	case DoorClosed:
		return "closed"
	case DoorLocked:
		return "locked"
	case DoorDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// DoorContext tells which kind of level structure a door belongs to.
type DoorContext uint8

const (
	DoorInRoom DoorContext = iota
	DoorInMaze
)

// Door sits on a room wall where a corridor enters.
type Door struct {
	Pos      Position
	Status   DoorStatus
	Secret   bool
	Vertical bool
	Context  DoorContext
}

// Corridor marks a corridor cell. Secret corridors look like rock until found.
type Corridor struct {
	Pos    Position
	Secret bool
}

// FeatureKind enumerates the fixtures a level can hold.
type FeatureKind uint8

const (
	FeatureAltar FeatureKind = iota
	FeatureSink
	FeatureFountain
	FeatureThrone
	FeatureHeadstone
)

// String returns a human-readable feature name.
func (k FeatureKind) String() string {
	switch k {
	case FeatureAltar:
		return "altar"
	case FeatureSink:
		return "sink"
	case FeatureFountain:
		return "fountain"
	case FeatureThrone:
		return "throne"
	case FeatureHeadstone:
		return "headstone"
	default:
		return "feature"
	}
}

// Rune returns the feature's display character.
func (k FeatureKind) Rune() rune {
	switch k {
	case FeatureAltar:
		return '_'
	case FeatureSink:
		return '#'
	case FeatureFountain:
		return '{'
	case FeatureThrone:
		return '\\'
	case FeatureHeadstone:
		return '|'
	default:
		return '?'
	}
}

// Alignment is the moral alignment of an altar.
type Alignment uint8

const (
	Lawful Alignment = iota
	Neutral
	Chaotic
)

// Alignments lists every alignment in a stable order.
var Alignments = []Alignment{Lawful, Neutral, Chaotic}

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case Lawful:
		return "lawful"
	case Neutral:
		return "neutral"
	default:
		return "chaotic"
	}
}

// Feature is a fixture placed on a floor cell.
type Feature struct {
	Kind        FeatureKind
	Pos         Position
	Alignment   Alignment // altars only
	Inscription string    // headstones only
}

// HeavyRockKind enumerates the movable obstacles.
type HeavyRockKind uint8

const (
	RockBoulder HeavyRockKind = iota
	RockStatue
)

// String returns a human-readable rock name.
func (k HeavyRockKind) String() string {
	if k == RockStatue {
		return "statue"
	}
	return "boulder"
}

// Rune returns the rock's display character.
func (k HeavyRockKind) Rune() rune {
	if k == RockStatue {
		return '\''
	}
	return '0'
}

// HeavyRock is a boulder or statue. Statues remember their subject.
type HeavyRock struct {
	Kind    HeavyRockKind
	Pos     Position
	Subject string
	LevelID string
}

// Engraving is text scratched on the floor.
type Engraving struct {
	Pos  Position
	Text string
}

// LightLevel describes how a region is lit.
type LightLevel uint8

const (
	LightNormal LightLevel = iota
	LightDark
	LightLit
)

// String returns the light level name.
func (l LightLevel) String() string {
	switch l {
	case LightDark:
		return "dark"
	case LightLit:
		return "lit"
	default:
		return "normal"
	}
}

// LightSource lights or darkens the cells within Radius of Pos.
type LightSource struct {
	Pos    Position
	Level  LightLevel
	Radius int
}

// Item is anything that can lie on the floor. Item definitions live
// outside the generator; places only carry them.
type Item interface {
	Name() string
	Rune() rune
}

// Place is the full content of one grid cell.
type Place struct {
	Tile      TileKind
	Door      *Door
	Corridor  *Corridor
	Feature   *Feature
	HeavyRock *HeavyRock
	Engraving *Engraving
	Items     []Item
}

// Walkable returns true if the place's terrain can be walked on.
// Doors, secret or locked, count as passable terrain.
func (p *Place) Walkable() bool {
	return p.Tile.Walkable()
}

// Rune returns the character the place shows, topmost content first.
func (p *Place) Rune() rune {
	switch {
	case p.Tile == TileStairsUp || p.Tile == TileStairsDown:
		return p.Tile.Rune()
	case p.HeavyRock != nil:
		return p.HeavyRock.Kind.Rune()
	case len(p.Items) > 0:
		return p.Items[len(p.Items)-1].Rune()
	case p.Feature != nil:
		return p.Feature.Kind.Rune()
	case p.Door != nil && p.Door.Secret:
		if p.Door.Vertical {
			return TileRoomVWall.Rune()
		}
		return TileRoomHWall.Rune()
	case p.Door != nil:
		switch p.Door.Status {
		case DoorOpened, DoorDestroyed:
			return '\''
		default:
			return '+'
		}
	case p.Corridor != nil && p.Corridor.Secret:
		return TileMatter.Rune()
	case p.Corridor != nil:
		return '#'
	case p.Engraving != nil:
		return '~'
	default:
		return p.Tile.Rune()
	}
}
