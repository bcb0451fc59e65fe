package generator

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/delve/internal/world"
)

// corridorSuite is one completed corridor between two rooms: its cells and
// the door it opens in each room's wall.
type corridorSuite struct {
	from, to  *room
	tiles     []*world.Corridor
	doorFrom  *world.Door
	doorTo    *world.Door
	footprint mapset.Set[world.Position]
}

// Footprint returns the corridor cells.
func (c *corridorSuite) Footprint() mapset.Set[world.Position] {
	return c.footprint
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// digCorridor walks from the center of one room toward the center of the
// other. Each step must not move against the goal, must avoid taboo cells
// and stays orthogonal. The walk ends when it reaches the target room's
// wall; a dead end or an exhausted step budget discards everything.
// taboo is consumed.
func (g *RoomGenerator) digCorridor(one, two *room, taboo mapset.Set[world.Position]) (*corridorSuite, bool) {
	suite := &corridorSuite{from: one, to: two, footprint: mapset.New[world.Position]()}
	chances := doorChances{opened: g.cfg.OpenedDoorChance, locked: g.cfg.LockedDoorChance, secret: g.cfg.SecretDoorChance}

	pos := one.area.Center()
	goal := two.area.Center()
	leftStart := false

	for step := 0; ; step++ {
		if step >= g.cfg.CorridorSteps {
			g.log.V(2).Info("corridor walked too long", "steps", step)
			return nil, false
		}

		switch {
		case !leftStart && one.isWall(pos):
			suite.doorFrom = g.furnish.door(pos, one.doorIsVertical(pos), world.DoorInRoom, chances)
			leftStart = true
			for _, c := range one.area.Cells() {
				taboo.Put(c)
			}
		case two.isWall(pos):
			suite.doorTo = g.furnish.door(pos, two.doorIsVertical(pos), world.DoorInRoom, chances)
			return suite, true
		case leftStart:
			suite.tiles = append(suite.tiles, &world.Corridor{Pos: pos, Secret: g.src.PercentChance(g.cfg.SecretCorridorChance)})
			suite.footprint.Put(pos)
		}
		taboo.Put(pos)

		idealX, idealY := sign(goal.X-pos.X), sign(goal.Y-pos.Y)
		var moves []world.Position
		for _, m := range world.Orthogonal {
			if m.X != 0 && m.X == -idealX || m.Y != 0 && m.Y == -idealY {
				continue
			}
			next := pos.Add(m.X, m.Y)
			if next.X < 0 || next.X >= g.cfg.Width || next.Y < 0 || next.Y >= g.cfg.Height {
				continue
			}
			if taboo.Has(next) {
				continue
			}
			moves = append(moves, m)
		}
		if len(moves) == 0 {
			g.log.V(2).Info("corridor reached a dead end", "at", pos)
			return nil, false
		}

		m := g.pickMove(moves, idealX, idealY)
		pos = pos.Add(m.X, m.Y)
	}
}

// pickMove prefers the step straight at the goal. A diagonal ideal is
// served by either of its axis steps.
func (g *RoomGenerator) pickMove(moves []world.Position, idealX, idealY int) world.Position {
	var progress []world.Position
	for _, m := range moves {
		if m.X == idealX && m.Y == idealY {
			return m
		}
		if (m.X != 0 && m.X == idealX) || (m.Y != 0 && m.Y == idealY) {
			progress = append(progress, m)
		}
	}
	if len(progress) > 0 {
		return progress[g.src.Intn(len(progress))]
	}
	return moves[g.src.Intn(len(moves))]
}
