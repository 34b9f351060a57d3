package system

import (
	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
)

// Intent represents an action that an entity wants to perform
type Intent interface {
	isIntent()
}

// MoveIntent sets the horizontal intent in [-1, 1]
type MoveIntent struct {
	EntityID entity.EntityID
	DesiredX float64
}

func (MoveIntent) isIntent() {}

// JumpIntent represents a jump press
type JumpIntent struct {
	EntityID entity.EntityID
}

func (JumpIntent) isIntent() {}

// FastfallIntent represents a fastfall press
type FastfallIntent struct {
	EntityID entity.EntityID
}

func (FastfallIntent) isIntent() {}

// AttackIntent represents an attack press
type AttackIntent struct {
	EntityID entity.EntityID
}

func (AttackIntent) isIntent() {}

// IntentsFor expands one normalized input frame into intents
func IntentsFor(id entity.EntityID, in entity.Intent) []Intent {
	intents := []Intent{MoveIntent{EntityID: id, DesiredX: entity.Clamp(in.DesiredX, -1, 1)}}
	if in.Jump {
		intents = append(intents, JumpIntent{EntityID: id})
	}
	if in.Fastfall {
		intents = append(intents, FastfallIntent{EntityID: id})
	}
	if in.Attack {
		intents = append(intents, AttackIntent{EntityID: id})
	}
	return intents
}

// ApplyIntents writes intents into the runtime state they target.
// Intents for unknown entities are dropped.
func ApplyIntents(w *ecs.World, intents []Intent) {
	for _, in := range intents {
		switch it := in.(type) {
		case MoveIntent:
			if m := w.Movement[it.EntityID]; m != nil {
				m.DesiredX = it.DesiredX
			}
		case JumpIntent:
			if m := w.Movement[it.EntityID]; m != nil {
				m.WantsJump = true
			}
		case FastfallIntent:
			if m := w.Movement[it.EntityID]; m != nil {
				m.WantsFastfall = true
			}
		case AttackIntent:
			if st := w.Attack[it.EntityID]; st != nil {
				st.WantsAttack = true
			}
		}
	}
}
