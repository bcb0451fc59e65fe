package generator

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/go-logr/logr"
	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/telemetry"
	"github.com/samdwyer/delve/internal/world"
)

// RoomConfig tunes the room generator. Chances are percentages in 1..99.
type RoomConfig struct {
	Width, Height int

	RoomAttempts       int // placements tried before evicting the largest room
	EvictionMax        int
	CorridorSteps      int
	ConnectionAttempts int // corridor attempts before resetting the network
	LevelAttempts      int
	VaultAttempts      int

	FakeRooms int // rooms placed only to be removed, leaving a corridor stub
	MinRooms  int
	MaxRooms  int

	BigRoomChance        int
	SpecialLightChance   int
	DarkLightChance      int
	ShopChance           int
	ShopDecreasePerDepth int
	SpecialRoomChance    int
	FeatureChance        int
	EngravingChance      int
	HeavyRockChance      int
	OpenedDoorChance     int
	LockedDoorChance     int
	SecretDoorChance     int
	SecretCorridorChance int
}

// DefaultRoomConfig returns the standard tuning for a 79x21 level.
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		Width:                DefaultWidth,
		Height:               DefaultHeight,
		RoomAttempts:         10000,
		EvictionMax:          10000,
		CorridorSteps:        10000,
		ConnectionAttempts:   1000,
		LevelAttempts:        1000,
		VaultAttempts:        1000,
		FakeRooms:            1,
		MinRooms:             8,
		MaxRooms:             8,
		BigRoomChance:        25,
		SpecialLightChance:   40,
		DarkLightChance:      30,
		ShopChance:           90,
		ShopDecreasePerDepth: 3,
		SpecialRoomChance:    75,
		FeatureChance:        35,
		EngravingChance:      13,
		HeavyRockChance:      25,
		OpenedDoorChance:     33,
		LockedDoorChance:     45,
		SecretDoorChance:     15,
		SecretCorridorChance: 4,
	}
}

func (c RoomConfig) validate(spec Spec) error {
	if c.Width < 16 || c.Height < 16 {
		return fmt.Errorf("level %dx%d too small for rooms, need at least 16x16", c.Width, c.Height)
	}
	if c.MinRooms < 1 || c.MaxRooms < c.MinRooms {
		return fmt.Errorf("room bounds min=%d max=%d are inconsistent", c.MinRooms, c.MaxRooms)
	}
	if spec.UpStairs+spec.DownStairs+1 > c.MaxRooms || spec.UpStairs+spec.DownStairs > c.MinRooms {
		return fmt.Errorf("%d staircases do not fit in %d..%d rooms", spec.UpStairs+spec.DownStairs, c.MinRooms, c.MaxRooms)
	}
	for name, v := range map[string]int{
		"room attempts": c.RoomAttempts, "eviction max": c.EvictionMax, "corridor steps": c.CorridorSteps,
		"connection attempts": c.ConnectionAttempts, "level attempts": c.LevelAttempts, "vault attempts": c.VaultAttempts,
	} {
		if v < 1 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	for name, p := range map[string]int{
		"big room": c.BigRoomChance, "special light": c.SpecialLightChance, "dark light": c.DarkLightChance,
		"special room": c.SpecialRoomChance, "feature": c.FeatureChance, "engraving": c.EngravingChance,
		"heavy rock": c.HeavyRockChance, "opened door": c.OpenedDoorChance, "locked door": c.LockedDoorChance,
		"secret door": c.SecretDoorChance, "secret corridor": c.SecretCorridorChance,
	} {
		if p < 1 || p > 99 {
			return fmt.Errorf("%s chance %d outside 1..99", name, p)
		}
	}
	return nil
}

// RoomGenerator places rectangular rooms and joins them with corridors.
type RoomGenerator struct {
	src     *random.Source
	used    *world.UsedSpecialKinds
	cfg     RoomConfig
	log     logr.Logger
	furnish furnisher
}

// NewRoomGenerator creates a room generator. used is the dungeon-wide record
// of special-room kinds; it may be shared between generators.
func NewRoomGenerator(src *random.Source, used *world.UsedSpecialKinds, cfg RoomConfig, opts ...Option) *RoomGenerator {
	o := buildOptions(opts)
	if o.width > 0 && o.height > 0 {
		cfg.Width, cfg.Height = o.width, o.height
	}
	if used == nil {
		used = world.NewUsedSpecialKinds()
	}
	return &RoomGenerator{
		src:     src,
		used:    used,
		cfg:     cfg,
		log:     o.logger.WithName("rooms"),
		furnish: furnisher{src: src, texts: o.texts},
	}
}

// Kind returns world.KindRoom.
func (g *RoomGenerator) Kind() world.Kind { return world.KindRoom }

// roomLayout is the generator-side result before materialization.
type roomLayout struct {
	rooms     []*room
	corridors []*corridorSuite
	upRooms   []*room
	downRooms []*room
	entry     *room
	specials  []world.SpecialRoom
}

func (l *roomLayout) isStairRoom(r *room) bool {
	return containsRoom(l.upRooms, r) || containsRoom(l.downRooms, r)
}

// Generate builds a room level.
func (g *RoomGenerator) Generate(ctx context.Context, spec Spec) (*world.Level, error) {
	tracer := telemetry.Tracer("generator")
	ctx, span := tracer.Start(ctx, "level.generate.room")
	defer span.End()

	if err := checkStairs(spec); err != nil {
		return nil, configError(spec, world.KindRoom, err)
	}
	if err := g.cfg.validate(spec); err != nil {
		return nil, configError(spec, world.KindRoom, err)
	}

	var layout *roomLayout
	level, attempts, err := retryLevel(ctx, g.cfg.LevelAttempts, g.log, func(n int) (*world.Level, error) {
		var err error
		layout, err = g.layout(spec)
		if err != nil {
			return nil, err
		}
		level, err := g.materialize(spec, layout)
		if err != nil {
			g.releaseSpecials(layout)
			return nil, err
		}
		if missed := world.Unreachable(level); len(missed) > 0 {
			g.releaseSpecials(layout)
			g.log.Error(nil, "room graph connected but tiles are not", "attempt", n, "unreachable", len(missed), "first", missed[0])
			return nil, attemptFailed("%d unreachable cells", len(missed))
		}
		return level, nil
	})

	span.SetAttributes(
		attribute.String("level.name", spec.Name),
		attribute.Int("level.depth", spec.Depth),
		attribute.Int("level.width", g.cfg.Width),
		attribute.Int("level.height", g.cfg.Height),
		attribute.Int("level.attempts", attempts),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "room level generation failed")
		return nil, &GenerationError{Level: spec.Name, Kind: world.KindRoom, Stage: "layout", Err: err}
	}

	span.SetAttributes(
		attribute.Int("level.rooms", len(layout.rooms)),
		attribute.Int("level.corridors", len(layout.corridors)),
		attribute.Int("level.special_rooms", len(layout.specials)),
	)
	g.log.V(1).Info("room level generated", "name", spec.Name, "rooms", len(layout.rooms), "corridors", len(layout.corridors), "attempts", attempts)
	return level, nil
}

// releaseSpecials gives back the kinds an abandoned layout claimed.
func (g *RoomGenerator) releaseSpecials(l *roomLayout) {
	for _, s := range l.specials {
		if s.Kind != world.SpecialShop {
			g.used.Release(s.Kind)
		}
	}
}

// layout runs one full attempt: placement, stairs, connectivity, decoration.
func (g *RoomGenerator) layout(spec Spec) (*roomLayout, error) {
	rooms, err := g.placeRooms()
	if err != nil {
		return nil, err
	}

	l := &roomLayout{rooms: rooms}
	g.assignStairRooms(l, spec)

	if err := g.connect(l); err != nil {
		return nil, err
	}

	g.removeFakeRooms(l)
	g.addVault(l)

	for _, r := range l.rooms {
		if l.isStairRoom(r) {
			r.putStaircase(g.src)
		}
	}

	candidates := make([]*room, 0, len(l.rooms))
	for _, r := range l.rooms {
		if !r.vault && !l.isStairRoom(r) {
			candidates = append(candidates, r)
		}
	}
	candidates = g.promoteShop(l, spec, candidates)
	candidates = g.promoteSpecial(l, spec, candidates)
	g.decorate(candidates)

	return l, nil
}

// placeRooms draws rooms until one extra beyond the maximum fits, evicting
// the largest room whenever the attempt budget runs dry.
func (g *RoomGenerator) placeRooms() ([]*room, error) {
	var rooms []*room
	attempts, evictions := 0, 0
	target := g.cfg.MaxRooms + g.cfg.FakeRooms

	for len(rooms) < target {
		attempts++
		if attempts > g.cfg.RoomAttempts {
			if evictions >= g.cfg.EvictionMax {
				return nil, attemptFailed("evicted %d rooms without fitting %d", evictions, target)
			}
			rooms = removeRoom(rooms, largestRoom(rooms))
			attempts = 0
			evictions++
			continue
		}

		candidate := newRoom(g.src, g.cfg, false)
		accepted := true
		for _, other := range rooms {
			if world.Collides(candidate, other) {
				accepted = false
				break
			}
		}
		if accepted {
			rooms = append(rooms, candidate)
		}
	}

	for len(rooms) > g.cfg.MinRooms+g.cfg.FakeRooms {
		if g.src.CoinFlip() {
			break
		}
		rooms = removeRoom(rooms, rooms[g.src.Intn(len(rooms))])
	}

	sortRooms(rooms)
	return rooms, nil
}

func (g *RoomGenerator) assignStairRooms(l *roomLayout, spec Spec) {
	candidates := append([]*room(nil), l.rooms...)
	draw := func() *room {
		i := g.src.Intn(len(candidates))
		r := candidates[i]
		candidates = append(candidates[:i], candidates[i+1:]...)
		return r
	}

	for i := 0; i < spec.UpStairs; i++ {
		l.upRooms = append(l.upRooms, draw())
	}
	for i := 0; i < spec.DownStairs; i++ {
		l.downRooms = append(l.downRooms, draw())
	}

	switch {
	case len(l.upRooms) > 0:
		l.entry = l.upRooms[0]
	case len(l.downRooms) > 0:
		l.entry = l.downRooms[0]
	default:
		l.entry = l.rooms[0]
	}
}

// connect digs corridors until every room is reachable from the entry room.
func (g *RoomGenerator) connect(l *roomLayout) error {
	var connections [][2]*room
	attempts := 0

	for {
		reached := reachedRooms(l.entry, connections)
		if reached.Size() == len(l.rooms) {
			return nil
		}

		attempts++
		if attempts > g.cfg.ConnectionAttempts {
			l.corridors = nil
			connections = nil
			for _, r := range l.rooms {
				r.doors = nil
			}
			if len(l.rooms) <= g.cfg.MinRooms {
				return attemptFailed("could not connect %d rooms", len(l.rooms))
			}

			var removable []*room
			for _, r := range l.rooms {
				if !reached.Has(r) && !l.isStairRoom(r) {
					removable = append(removable, r)
				}
			}
			if len(removable) == 0 {
				return attemptFailed("no unreachable room can be evicted")
			}
			victim := removable[g.src.Intn(len(removable))]
			l.rooms = removeRoom(l.rooms, victim)
			g.log.V(2).Info("evicted unreachable room", "at", victim.area)
			attempts = 0
			continue
		}

		pairs := candidatePairs(l.rooms, connections, reached)
		if len(pairs) == 0 {
			continue
		}
		pair := pairs[g.src.Intn(len(pairs))]
		one, two := pair[0], pair[1]

		taboo := mapset.New[world.Position]()
		for _, r := range l.rooms {
			if r == one || r == two {
				continue
			}
			for _, c := range r.area.Cells() {
				taboo.Put(c)
			}
		}
		for _, c := range one.corners() {
			taboo.Put(c)
		}
		for _, c := range two.corners() {
			taboo.Put(c)
		}

		suite, ok := g.digCorridor(one, two, taboo)
		if !ok {
			continue
		}
		one.doors = append(one.doors, suite.doorFrom)
		two.doors = append(two.doors, suite.doorTo)
		l.corridors = append(l.corridors, suite)
		connections = append(connections, pair)
	}
}

// candidatePairs prefers rooms with no corridor yet. When every room has
// one, any pair not yet joined directly qualifies, and pairs bridging the
// reached and unreached rooms count twice.
func candidatePairs(rooms []*room, connections [][2]*room, reached mapset.Set[*room]) [][2]*room {
	linked := mapset.New[*room]()
	direct := make(map[[2]*room]bool)
	for _, c := range connections {
		linked.Put(c[0])
		linked.Put(c[1])
		direct[c] = true
		direct[[2]*room{c[1], c[0]}] = true
	}

	var lonely []*room
	for _, r := range rooms {
		if !linked.Has(r) {
			lonely = append(lonely, r)
		}
	}

	firsts, seconds := rooms, rooms
	switch {
	case len(lonely) >= 2:
		firsts, seconds = lonely, lonely
	case len(lonely) == 1:
		firsts = lonely
	}

	var pairs [][2]*room
	for _, a := range firsts {
		for _, b := range seconds {
			if a == b || direct[[2]*room{a, b}] {
				continue
			}
			pairs = append(pairs, [2]*room{a, b})
			if len(lonely) == 0 && reached.Has(a) != reached.Has(b) {
				pairs = append(pairs, [2]*room{a, b})
			}
		}
	}
	return pairs
}

// reachedRooms follows recorded corridors from start.
func reachedRooms(start *room, connections [][2]*room) mapset.Set[*room] {
	reached := mapset.New[*room]()
	reached.Put(start)
	for changed := true; changed; {
		changed = false
		for _, c := range connections {
			if reached.Has(c[0]) != reached.Has(c[1]) {
				reached.Put(c[0])
				reached.Put(c[1])
				changed = true
			}
		}
	}
	return reached
}

// removeFakeRooms drops single-door rooms, leaving their corridor as a
// dead end.
func (g *RoomGenerator) removeFakeRooms(l *roomLayout) {
	for i := 0; i < g.cfg.FakeRooms; i++ {
		shuffled := append([]*room(nil), l.rooms...)
		g.src.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		for _, r := range shuffled {
			if l.isStairRoom(r) || len(r.doors) != 1 {
				continue
			}
			l.rooms = removeRoom(l.rooms, r)
			g.log.V(2).Info("removed fake room", "at", r.area)
			break
		}
	}
}

// addVault tries to fit a small sealed room clear of everything else.
func (g *RoomGenerator) addVault(l *roomLayout) {
	for attempt := 0; attempt < g.cfg.VaultAttempts; attempt++ {
		vault := newRoom(g.src, g.cfg, true)
		accepted := true
		for _, r := range l.rooms {
			if world.Collides(vault, r) {
				accepted = false
				break
			}
		}
		if accepted {
			for _, c := range l.corridors {
				if world.Collides(vault, c) {
					accepted = false
					break
				}
			}
		}
		if accepted {
			l.rooms = append(l.rooms, vault)
			sortRooms(l.rooms)
			return
		}
	}
	g.log.V(2).Info("no room for a vault")
}

// decorate scatters features, engravings and heavy rocks, one independent
// roll per room for each.
func (g *RoomGenerator) decorate(candidates []*room) {
	for _, r := range candidates {
		if !g.src.PercentChance(g.cfg.FeatureChance) {
			continue
		}
		cells := r.insideTiles()
		if len(cells) == 0 {
			continue
		}
		pos := cells[g.src.Intn(len(cells))]
		r.features = append(r.features, g.furnish.randomFeature(roomFeatureTable, pos))
	}

	for _, r := range candidates {
		if !g.src.PercentChance(g.cfg.EngravingChance) {
			continue
		}
		cells := r.inset(1)
		pos := cells[g.src.Intn(len(cells))]
		r.engravings = append(r.engravings, g.furnish.engraving(pos))
	}

	for _, r := range candidates {
		if !g.src.PercentChance(g.cfg.HeavyRockChance) {
			continue
		}
		var cells []world.Position
		for _, c := range r.insideTiles() {
			if !r.hasFeatureAt(c) {
				cells = append(cells, c)
			}
		}
		if len(cells) == 0 {
			continue
		}
		pos := cells[g.src.Intn(len(cells))]
		r.rocks = append(r.rocks, g.furnish.randomHeavyRock(pos, ""))
	}
}

// materialize stamps the layout onto a fresh level. Staircases go last so
// they win over anything else.
func (g *RoomGenerator) materialize(spec Spec, l *roomLayout) (*world.Level, error) {
	level := newLevel(spec, world.KindRoom, g.cfg.Width, g.cfg.Height)

	for _, r := range l.rooms {
		for _, c := range r.area.Cells() {
			if r.isWall(c) {
				level.SetTile(c, r.wallTile(c))
			} else {
				level.SetTile(c, world.TileGround)
			}
		}
		for _, d := range r.doors {
			place := level.At(d.Pos)
			place.Tile = world.TileGround
			place.Door = d
		}
		for _, f := range r.features {
			level.At(f.Pos).Feature = f
		}
		for _, e := range r.engravings {
			level.At(e.Pos).Engraving = e
		}
		for _, rock := range r.rocks {
			rock.LevelID = level.ID
			level.At(rock.Pos).HeavyRock = rock
		}
		if r.vault {
			level.AddVault(r.area)
		}
		if r.light != world.LightNormal {
			halfDiagonal := int(math.Sqrt(float64((r.area.H/2)*(r.area.H/2)+(r.area.W/2)*(r.area.W/2)))) + 1
			level.AddLightSource(world.LightSource{Pos: r.area.Center(), Level: r.light, Radius: halfDiagonal})
		}
	}

	for _, c := range l.corridors {
		for _, tile := range c.tiles {
			place := level.At(tile.Pos)
			if place == nil {
				return nil, fmt.Errorf("corridor cell %v outside the level", tile.Pos)
			}
			place.Tile = world.TileGround
			place.Corridor = tile
		}
	}

	for _, s := range l.specials {
		level.AddSpecialRoom(s)
	}

	for _, r := range l.downRooms {
		level.AddStaircase(*r.staircase, false)
	}
	for _, r := range l.upRooms {
		level.AddStaircase(*r.staircase, true)
	}
	if spec.Entry && l.entry.staircase != nil {
		level.SetEntry(*l.entry.staircase)
	}

	return level, nil
}

func sortRooms(rooms []*room) {
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].less(rooms[j]) })
}

func containsRoom(rooms []*room, r *room) bool {
	for _, o := range rooms {
		if o == r {
			return true
		}
	}
	return false
}

func removeRoom(rooms []*room, r *room) []*room {
	out := make([]*room, 0, len(rooms))
	for _, o := range rooms {
		if o != r {
			out = append(out, o)
		}
	}
	return out
}

// largestRoom returns the room with the biggest area, the last in sorted
// order on ties.
func largestRoom(rooms []*room) *room {
	sorted := append([]*room(nil), rooms...)
	sortRooms(sorted)
	var best *room
	for _, r := range sorted {
		if best == nil || r.area.Area() >= best.area.Area() {
			best = r
		}
	}
	return best
}
