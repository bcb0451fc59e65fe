package generator

import (
	"math"

	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/world"
)

// crowdDice counts the headstones of a graveyard and the statues of a nest.
var crowdDice = random.MustParseDice("d6+5")

// promoteShop turns one single-door room into a shop, smaller rooms being
// likelier. The chance drops with depth and there is none on the first level.
func (g *RoomGenerator) promoteShop(l *roomLayout, spec Spec, candidates []*room) []*room {
	if spec.Depth <= 1 {
		return candidates
	}

	var singles []*room
	for _, r := range candidates {
		if len(r.doors) == 1 {
			singles = append(singles, r)
		}
	}
	chance := min(g.cfg.ShopChance-spec.Depth*g.cfg.ShopDecreasePerDepth, 99)
	if len(singles) == 0 || chance < 1 || !g.src.PercentChance(chance) {
		return candidates
	}

	weights := make([]float64, len(singles))
	for i, r := range singles {
		weights[i] = 1 / float64(r.area.Area())
	}
	shop := singles[g.src.Weighted(weights)]

	l.specials = append(l.specials, world.SpecialRoom{Kind: world.SpecialShop, Area: shop.area})
	g.makeSpecial(shop, world.SpecialShop, nil)
	return removeRoom(candidates, shop)
}

// promoteSpecial picks a kind weighted by frequency and closeness of its
// difficulty to the depth, skipping kinds used anywhere in the dungeon,
// then a room favouring small rooms with few doors. The kind is claimed as
// soon as it is drawn; Generate releases it if the level attempt fails.
func (g *RoomGenerator) promoteSpecial(l *roomLayout, spec Spec, candidates []*room) []*room {
	if spec.Depth <= 1 || len(candidates) == 0 || !g.src.PercentChance(g.cfg.SpecialRoomChance) {
		return candidates
	}

	kinds := world.SpecialKinds()
	var kind world.SpecialKind
	for {
		kindWeights := make([]float64, len(kinds))
		for i, k := range kinds {
			if g.used.Has(k) {
				continue
			}
			kindWeights[i] = float64(k.Frequency()*100) / float64(1+int(math.Abs(float64(k.Difficulty()-spec.Depth))))
		}
		k := g.src.Weighted(kindWeights)
		if k < 0 {
			g.log.V(1).Info("every special room kind already used")
			return candidates
		}
		// Another level may have claimed the kind since the weights were read.
		if g.used.Claim(kinds[k]) {
			kind = kinds[k]
			break
		}
	}

	roomWeights := make([]float64, len(candidates))
	for i, r := range candidates {
		roomWeights[i] = 1 / float64(r.area.Area()*max(len(r.doors), 1))
	}
	chosen := candidates[g.src.Weighted(roomWeights)]

	special := world.SpecialRoom{Kind: kind, Area: chosen.area}
	g.makeSpecial(chosen, kind, &special)
	l.specials = append(l.specials, special)
	g.log.V(1).Info("special room promoted", "kind", kind.String(), "at", chosen.area)
	return removeRoom(candidates, chosen)
}

// makeSpecial furnishes a promoted room according to its kind.
func (g *RoomGenerator) makeSpecial(r *room, kind world.SpecialKind, record *world.SpecialRoom) {
	spots := newPool(g.src, r.inset(2))

	place := func(kind world.FeatureKind) *world.Feature {
		pos, ok := spots.take()
		if !ok {
			return nil
		}
		f := g.furnish.feature(kind, pos)
		r.features = append(r.features, f)
		return f
	}

	switch kind {
	case world.SpecialThroneRoom, world.SpecialGiantCourt:
		place(world.FeatureThrone)
	case world.SpecialTemple:
		if altar := place(world.FeatureAltar); altar != nil && record != nil {
			alignment := altar.Alignment
			record.Alignment = &alignment
		}
	case world.SpecialGraveyard:
		for n := crowdDice.Roll(g.src); n > 0; n-- {
			place(world.FeatureHeadstone)
		}
	case world.SpecialCockatriceNest:
		for n := crowdDice.Roll(g.src); n > 0; n-- {
			pos, ok := spots.take()
			if !ok {
				break
			}
			r.rocks = append(r.rocks, g.furnish.heavyRock(world.RockStatue, pos, ""))
		}
	}
}
