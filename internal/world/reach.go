package world

import "github.com/zyedidia/generic/mapset"

// Reachable returns every walkable cell connected to from by orthogonal moves.
func Reachable(l *Level, from Position) mapset.Set[Position] {
	visited := mapset.New[Position]()
	if !l.IsWalkable(from) {
		return visited
	}

	queue := []Position{from}
	visited.Put(from)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range Orthogonal {
			next := current.Add(d.X, d.Y)
			if visited.Has(next) || !l.IsWalkable(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return visited
}

// ReachabilityOrigin is the cell reachability checks start from: the entry
// if the level has one, else its first staircase, else its first walkable
// cell outside a vault.
func ReachabilityOrigin(l *Level) (Position, bool) {
	if p, ok := l.Entry(); ok {
		return p, true
	}
	if up := l.UpStairs(); len(up) > 0 {
		return up[0], true
	}
	if down := l.DownStairs(); len(down) > 0 {
		return down[0], true
	}

	var origin Position
	found := false
	l.Each(func(p Position, place *Place) {
		if !found && place.Walkable() && !l.InVault(p) {
			origin, found = p, true
		}
	})
	return origin, found
}

// Unreachable lists the walkable cells outside vaults that cannot be reached
// from the level's reachability origin.
func Unreachable(l *Level) []Position {
	origin, ok := ReachabilityOrigin(l)
	if !ok {
		return nil
	}
	reached := Reachable(l, origin)

	var missed []Position
	l.Each(func(p Position, place *Place) {
		if place.Walkable() && !l.InVault(p) && !reached.Has(p) {
			missed = append(missed, p)
		}
	})
	return missed
}
