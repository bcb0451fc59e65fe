package generator

import (
	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/random"
	"github.com/samdwyer/delve/internal/world"
)

type featureWeight struct {
	kind   world.FeatureKind
	weight int
}

type rockWeight struct {
	kind   world.HeavyRockKind
	weight int
}

var (
	roomFeatureTable = []featureWeight{
		{world.FeatureAltar, 20},
		{world.FeatureSink, 15},
		{world.FeatureFountain, 26},
		{world.FeatureThrone, 23},
		{world.FeatureHeadstone, 16},
	}

	caveFeatureTable = []featureWeight{
		{world.FeatureSink, 15},
		{world.FeatureFountain, 26},
		{world.FeatureHeadstone, 16},
	}

	heavyRockTable = []rockWeight{
		{world.RockBoulder, 66},
		{world.RockStatue, 34},
	}
)

// furnisher builds the decorations generators scatter: features, doors,
// engravings and heavy rocks. It draws from the generator's source so the
// decorations replay with the layout.
type furnisher struct {
	src   *random.Source
	texts *gamedata.Texts
}

func (f furnisher) feature(kind world.FeatureKind, pos world.Position) *world.Feature {
	feature := &world.Feature{Kind: kind, Pos: pos}
	switch kind {
	case world.FeatureAltar:
		feature.Alignment = world.Alignments[f.src.Intn(len(world.Alignments))]
	case world.FeatureHeadstone:
		feature.Inscription = f.texts.Headstone(f.src)
	}
	return feature
}

func (f furnisher) randomFeature(table []featureWeight, pos world.Position) *world.Feature {
	weights := make([]int, len(table))
	for i, fw := range table {
		weights[i] = fw.weight
	}
	return f.feature(table[f.src.WeightedInt(weights)].kind, pos)
}

func (f furnisher) engraving(pos world.Position) *world.Engraving {
	return &world.Engraving{Pos: pos, Text: f.texts.Graffito(f.src)}
}

func (f furnisher) heavyRock(kind world.HeavyRockKind, pos world.Position, levelID string) *world.HeavyRock {
	rock := &world.HeavyRock{Kind: kind, Pos: pos, LevelID: levelID}
	if kind == world.RockStatue {
		rock.Subject = f.texts.Statue(f.src)
	}
	return rock
}

func (f furnisher) randomHeavyRock(pos world.Position, levelID string) *world.HeavyRock {
	weights := make([]int, len(heavyRockTable))
	for i, rw := range heavyRockTable {
		weights[i] = rw.weight
	}
	return f.heavyRock(heavyRockTable[f.src.WeightedInt(weights)].kind, pos, levelID)
}

// doorChances holds the percentages a door is drawn with.
type doorChances struct {
	opened int
	locked int
	secret int
}

func (f furnisher) door(pos world.Position, vertical bool, context world.DoorContext, c doorChances) *world.Door {
	status := world.DoorClosed
	if f.src.PercentChance(c.opened) {
		status = world.DoorOpened
	} else if f.src.PercentChance(c.locked) {
		status = world.DoorLocked
	}
	return &world.Door{
		Pos:      pos,
		Status:   status,
		Secret:   f.src.PercentChance(c.secret),
		Vertical: vertical,
		Context:  context,
	}
}

// pool is a sorted candidate list that hands out cells without repeats.
type pool struct {
	src   *random.Source
	cells []world.Position
}

func newPool(src *random.Source, cells []world.Position) *pool {
	sorted := append([]world.Position(nil), cells...)
	world.SortPositions(sorted)
	return &pool{src: src, cells: sorted}
}

func (p *pool) len() int { return len(p.cells) }

// take removes and returns a random cell.
func (p *pool) take() (world.Position, bool) {
	if len(p.cells) == 0 {
		return world.Position{}, false
	}
	i := p.src.Intn(len(p.cells))
	cell := p.cells[i]
	p.cells = append(p.cells[:i], p.cells[i+1:]...)
	return cell, true
}

// remove drops a cell from the pool if present.
func (p *pool) remove(cell world.Position) {
	for i, c := range p.cells {
		if c == cell {
			p.cells = append(p.cells[:i], p.cells[i+1:]...)
			return
		}
	}
}
