package game

import "github.com/samdwyer/delve/internal/world"

// Config holds viewer options.
type Config struct {
	// Seed for the dungeon generator. Zero picks one from the clock.
	Seed int64
	// PlanPath names a dungeon plan on disk. Empty uses the embedded plan.
	PlanPath string
	// Level starts the viewer on the named level instead of the entrance.
	Level string
	// Preview, when set, shows a single generated level of this kind.
	Preview *world.Kind
	// Depth of the previewed level.
	Depth int
}
