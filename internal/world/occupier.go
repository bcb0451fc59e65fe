package world

import "github.com/zyedidia/generic/mapset"

// Occupier is anything owning a set of cells that must not overlap another
// occupier's set. The footprint may include a safety margin.
type Occupier interface {
	Footprint() mapset.Set[Position]
}

// Collides returns true if the two occupiers' footprints intersect.
func Collides(a, b Occupier) bool {
	return Intersects(a.Footprint(), b.Footprint())
}

// Intersects returns true if the two sets share at least one cell.
func Intersects(a, b mapset.Set[Position]) bool {
	if a.Size() > b.Size() {
		a, b = b, a
	}
	hit := false
	a.Each(func(p Position) {
		if !hit && b.Has(p) {
			hit = true
		}
	})
	return hit
}

// SetOf builds a set from positions.
func SetOf(ps ...Position) mapset.Set[Position] {
	s := mapset.New[Position]()
	for _, p := range ps {
		s.Put(p)
	}
	return s
}

// Sorted returns the set's members ordered by Less.
func Sorted(s mapset.Set[Position]) []Position {
	out := make([]Position, 0, s.Size())
	s.Each(func(p Position) {
		out = append(out, p)
	})
	SortPositions(out)
	return out
}
