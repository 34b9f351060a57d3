package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
)

func TestIntentsFor(t *testing.T) {
	tests := []struct {
		name     string
		in       entity.Intent
		expected []Intent
	}{
		{
			name:     "idle",
			in:       entity.Intent{},
			expected: []Intent{MoveIntent{EntityID: 1}},
		},
		{
			name: "everything pressed",
			in:   entity.Intent{DesiredX: -1, Jump: true, Fastfall: true, Attack: true},
			expected: []Intent{
				MoveIntent{EntityID: 1, DesiredX: -1},
				JumpIntent{EntityID: 1},
				FastfallIntent{EntityID: 1},
				AttackIntent{EntityID: 1},
			},
		},
		{
			name:     "axis clamped",
			in:       entity.Intent{DesiredX: 3},
			expected: []Intent{MoveIntent{EntityID: 1, DesiredX: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IntentsFor(1, tt.in))
		})
	}
}

func TestApplyIntents(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateCharacter(ecs.CharacterConfig{Name: "p1", Tunables: entity.DefaultTunables()})

	ApplyIntents(w, IntentsFor(id, entity.Intent{DesiredX: 0.5, Jump: true, Fastfall: true, Attack: true}))

	m := w.Movement[id]
	require.NotNil(t, m)
	assert.Equal(t, 0.5, m.DesiredX)
	assert.True(t, m.WantsJump)
	assert.True(t, m.WantsFastfall)
	assert.True(t, w.Attack[id].WantsAttack)
}

func TestApplyIntents_UnknownEntity(t *testing.T) {
	w := ecs.NewWorld()
	assert.NotPanics(t, func() {
		ApplyIntents(w, IntentsFor(42, entity.Intent{Jump: true, Attack: true}))
	})
}
