package world

import (
	"sync"

	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"
)

// SpecialKind tags a room with a narrative role.
type SpecialKind uint8

const (
	SpecialShop SpecialKind = iota
	SpecialThroneRoom
	SpecialTreasureZoo
	SpecialTemple
	SpecialGraveyard
	SpecialBarracks
	SpecialOracle
	SpecialFungusFarm
	SpecialLeprechaunHall
	SpecialBeehive
	SpecialNymphGarden
	SpecialAnthole
	SpecialCockatriceNest
	SpecialGiantCourt
	SpecialDragonLair

	specialKindCount
)

type specialInfo struct {
	name         string
	difficulty   int
	frequency    int
	levelMessage string
	roomMessage  string
}

var specialTable = [specialKindCount]specialInfo{
	SpecialShop:           {"shop", 0, 0, "You hear someone cursing shoplifters.", "Welcome to the store!"},
	SpecialThroneRoom:     {"throne room", 1, 3, "You hear the tones of courtly conversation.", "You enter an opulent throne room!"},
	SpecialTreasureZoo:    {"treasure zoo", 2, 1, "You hear a sound reminiscent of an elephant stepping on a peanut.", "You enter a zoo!"},
	SpecialTemple:         {"temple", 3, 4, "You have an eerie feeling...", "You enter a temple!"},
	SpecialGraveyard:      {"graveyard", 4, 2, "You suddenly realize it is unnaturally quiet.", "You have an uncanny feeling..."},
	SpecialBarracks:       {"barracks", 5, 5, "You hear blades being honed.", "You enter a military barracks!"},
	SpecialOracle:         {"oracle", 0, 0, "You hear a strange wind.", "You enter the Oracle's chamber."},
	SpecialFungusFarm:     {"fungus farm", 1, 4, "You smell something damp.", "You enter a fungus farm!"},
	SpecialLeprechaunHall: {"leprechaun hall", 2, 5, "You hear the chime of a cash register.", "You enter a leprechaun hall!"},
	SpecialBeehive:        {"beehive", 3, 3, "You hear a low buzzing.", "You enter a giant beehive!"},
	SpecialNymphGarden:    {"nymph garden", 4, 3, "You hear soft laughter.", "You enter a lovely garden!"},
	SpecialAnthole:        {"anthole", 5, 5, "You hear a scurrying of many legs.", "You enter an anthole!"},
	SpecialCockatriceNest: {"cockatrice nest", 6, 4, "You hear a hissing sound.", "You enter a disgusting nest!"},
	SpecialGiantCourt:     {"giant court", 7, 2, "You hear the footsteps of something huge.", "You enter a giant's court!"},
	SpecialDragonLair:     {"dragon lair", 8, 1, "You smell smoke and sulfur.", "You enter a dragon's lair!"},
}

// SpecialKinds lists every kind in declaration order.
func SpecialKinds() []SpecialKind {
	kinds := make([]SpecialKind, 0, specialKindCount)
	for k := SpecialKind(0); k < specialKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k SpecialKind) String() string {
	if k >= specialKindCount {
		return "unknown"
	}
	return specialTable[k].name
}

// Difficulty is the depth at which the kind is most likely.
func (k SpecialKind) Difficulty() int { return specialTable[k].difficulty }

// Frequency is the kind's base weight. Zero means never drawn at random.
func (k SpecialKind) Frequency() int { return specialTable[k].frequency }

// LevelMessage is shown when the hero arrives on a level holding the room.
func (k SpecialKind) LevelMessage() string {
	return gotext.Get(specialTable[k].levelMessage)
}

// RoomMessage is shown when the hero steps into the room.
func (k SpecialKind) RoomMessage() string {
	return gotext.Get(specialTable[k].roomMessage)
}

// SpecialRoom records a promoted room's kind and area.
type SpecialRoom struct {
	Kind      SpecialKind
	Area      Rect
	Alignment *Alignment
}

// Contains returns true if the cell lies inside the room, walls included.
func (s SpecialRoom) Contains(p Position) bool {
	return s.Area.Contains(p)
}

// UsedSpecialKinds is the dungeon-wide record of special-room kinds already
// placed. It is safe for concurrent use.
type UsedSpecialKinds struct {
	mu    sync.Mutex
	kinds mapset.Set[SpecialKind]
}

// NewUsedSpecialKinds creates an empty record.
func NewUsedSpecialKinds() *UsedSpecialKinds {
	return &UsedSpecialKinds{kinds: mapset.New[SpecialKind]()}
}

// Has reports whether kind was already placed.
func (u *UsedSpecialKinds) Has(kind SpecialKind) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.kinds.Has(kind)
}

// Claim records kind as placed and reports whether it was still free.
// Only one of several concurrent claims of the same kind succeeds.
func (u *UsedSpecialKinds) Claim(kind SpecialKind) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.kinds.Has(kind) {
		return false
	}
	u.kinds.Put(kind)
	return true
}

// Release frees a claimed kind whose level was abandoned.
func (u *UsedSpecialKinds) Release(kind SpecialKind) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.kinds.Remove(kind)
}

// Len returns the number of kinds placed so far.
func (u *UsedSpecialKinds) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.kinds.Size()
}
