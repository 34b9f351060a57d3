package system

import (
	"math"

	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

// DefaultWallTolerance is the vertical force below which a contact counts as a wall
const DefaultWallTolerance = 1e-3

// ContactClassifier turns raw contact-force events into a touch signal per character
type ContactClassifier struct {
	tolerance float64
}

// NewContactClassifier creates a classifier. A nil config uses the default tolerance.
func NewContactClassifier(cfg *config.ClassifierConfig) *ContactClassifier {
	tol := DefaultWallTolerance
	if cfg != nil && cfg.WallVerticalTolerance > 0 {
		tol = cfg.WallVerticalTolerance
	}
	return &ContactClassifier{tolerance: tol}
}

// Update recomputes the touch signal of every character from this tick's events.
// Events are processed in order; when a character has several stage contacts
// the last one wins.
func (c *ContactClassifier) Update(w *ecs.World, events []entity.ContactEvent) {
	for _, id := range w.Characters() {
		if m := w.Movement[id]; m != nil {
			m.Touch = entity.Touch{Kind: entity.TouchNone}
		}
	}

	for _, ev := range events {
		id, force, ok := c.orient(w, ev)
		if !ok {
			continue
		}
		m := w.Movement[id]
		if m == nil {
			continue
		}

		m.Touch = c.Classify(force)
		if m.Touch.OnFloor() {
			m.StopFastfall()
		}
	}
}

// orient returns the character side of a character-vs-stage event and the force
// acting on it. Any other pairing is rejected.
func (c *ContactClassifier) orient(w *ecs.World, ev entity.ContactEvent) (entity.EntityID, entity.Vec2, bool) {
	aChar, bChar := w.IsCharacterID(ev.A), w.IsCharacterID(ev.B)
	aStage, bStage := w.IsStageID(ev.A), w.IsStageID(ev.B)

	switch {
	case aChar && bStage && !bChar && !aStage:
		return ev.A, ev.Force, true
	case bChar && aStage && !aChar && !bStage:
		return ev.B, ev.Force.Scale(-1), true
	default:
		return 0, entity.Vec2{}, false
	}
}

// Classify maps a stage force on a character to a touch signal
func (c *ContactClassifier) Classify(force entity.Vec2) entity.Touch {
	t := entity.Touch{Force: force}

	switch {
	case math.Abs(force.Y) > c.tolerance:
		if force.Y > 0 {
			t.Kind = entity.TouchFloor
		} else {
			t.Kind = entity.TouchBelow
		}
	case force.X < 0:
		// Stage pushes left: the wall is on the right
		t.Kind = entity.TouchRight
	case force.X > 0:
		t.Kind = entity.TouchLeft
	default:
		t.Kind = entity.TouchUnknown
	}
	return t
}
