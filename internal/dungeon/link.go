package dungeon

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/delve/internal/generator"
	"github.com/samdwyer/delve/internal/telemetry"
	"github.com/samdwyer/delve/internal/world"
)

// Join links a free down staircase of upper to a free up staircase of
// lower and records the junction on both sides. Either level may be nil:
// the staircase on the other side then leads to the void. In preview mode
// a lower level without a free up staircase is tolerated.
func Join(ctx context.Context, logger logr.Logger, upper, lower *world.Level, preview bool) error {
	tracer := telemetry.Tracer("dungeon")
	_, span := tracer.Start(ctx, "dungeon.join")
	defer span.End()

	if upper == nil && lower == nil {
		return fmt.Errorf("%w: junction links no level", generator.ErrConfiguration)
	}
	if upper != nil && lower != nil && upper.Depth >= lower.Depth {
		return fmt.Errorf("%w: junction from %q (depth %d) must go down to %q (depth %d)",
			generator.ErrConfiguration, upper.Name, upper.Depth, lower.Name, lower.Depth)
	}

	if upper != nil && upper.FreeDownStairs() == 0 {
		return fmt.Errorf("%w: %q has no free down staircase", generator.ErrConfiguration, upper.Name)
	}
	linked := lower
	if lower != nil && lower.FreeUpStairs() == 0 {
		if !preview {
			return fmt.Errorf("%w: %q has no free up staircase", generator.ErrConfiguration, lower.Name)
		}
		logger.V(1).Info("no up staircase to link in preview", "level", lower.Name)
		linked = nil
	}

	// Both sides are checked before either staircase is claimed.
	var down, up world.Position
	if upper != nil {
		down, _ = upper.PopFreeDownStair()
		span.SetAttributes(attribute.String("junction.upper", upper.Name))
	}
	if linked != nil {
		up, _ = linked.PopFreeUpStair()
	}
	if lower != nil {
		span.SetAttributes(attribute.String("junction.lower", lower.Name))
	}

	if upper != nil {
		upper.SetJunction(down, world.Junction{Level: linked, Pos: up})
	}
	if linked != nil {
		linked.SetJunction(up, world.Junction{Level: upper, Pos: down})
	}
	return nil
}
