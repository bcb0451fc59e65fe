package gamedata

import (
	"errors"
	"fmt"
)

// LevelDef describes one level of a dungeon plan.
type LevelDef struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Depth      int    `json:"depth,omitempty"`
	Branch     string `json:"branch,omitempty"`
	UpStairs   *int   `json:"up_stairs,omitempty"`
	DownStairs *int   `json:"down_stairs,omitempty"`
	Entry      bool   `json:"entry,omitempty"`
}

// JunctionDef links two levels by name. A missing side is the void.
type JunctionDef struct {
	Up   *string `json:"up"`
	Down *string `json:"down"`
}

// Plan is the full description of a dungeon: its levels in generation
// order, then the junctions between them.
type Plan struct {
	Levels    []LevelDef    `json:"levels"`
	Junctions []JunctionDef `json:"junctions"`
}

// Stairs returns the requested up and down staircase counts, defaulting
// to one each.
func (d LevelDef) Stairs() (up, down int) {
	up, down = 1, 1
	if d.UpStairs != nil {
		up = *d.UpStairs
	}
	if d.DownStairs != nil {
		down = *d.DownStairs
	}
	return up, down
}

// LevelDepth returns the depth, defaulting to one.
func (d LevelDef) LevelDepth() int {
	if d.Depth == 0 {
		return 1
	}
	return d.Depth
}

// Validate checks the structural rules of a plan that do not need the
// generators: named levels, known junction endpoints, one entry.
func (p Plan) Validate() error {
	if len(p.Levels) == 0 {
		return errors.New("plan has no levels")
	}

	names := make(map[string]bool)
	entries := 0
	for i, l := range p.Levels {
		if l.Name == "" {
			return fmt.Errorf("level %d has no name", i)
		}
		if names[l.Name] {
			return fmt.Errorf("level name %q used twice", l.Name)
		}
		names[l.Name] = true
		if l.Entry {
			entries++
		}
		up, down := l.Stairs()
		if up < 0 || down < 0 {
			return fmt.Errorf("level %q asks for a negative staircase count", l.Name)
		}
		if l.Entry && up == 0 {
			return fmt.Errorf("entry level %q needs an up staircase", l.Name)
		}
	}
	if entries != 1 {
		return fmt.Errorf("plan needs exactly one entry level, found %d", entries)
	}

	for i, j := range p.Junctions {
		if j.Up == nil && j.Down == nil {
			return fmt.Errorf("junction %d links nothing", i)
		}
		for _, side := range []*string{j.Up, j.Down} {
			if side != nil && !names[*side] {
				return fmt.Errorf("junction %d references unknown level %q", i, *side)
			}
		}
	}
	return nil
}

// LoadPlan loads the embedded default dungeon plan.
func LoadPlan() (Plan, error) {
	return Load[Plan]("dungeon.json")
}

// LoadPlanFile loads a dungeon plan from disk.
func LoadPlanFile(path string) (Plan, error) {
	return LoadFile[Plan](path)
}
