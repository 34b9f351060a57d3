package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

func createTestSpace() (*Space, *ecs.World) {
	w := ecs.NewWorld()
	// Floor top at y = -375
	w.CreateStageBlock(entity.Rect{Center: entity.Vec2{Y: -400}, Size: entity.Vec2{X: 2000, Y: 50}})
	return NewSpace(config.WorldConfig{Gravity: 50, Iterations: 10, Friction: 0.7}), w
}

func spawn(w *ecs.World, name string, pos entity.Vec2) entity.EntityID {
	return w.CreateCharacter(ecs.CharacterConfig{
		Name:     name,
		Position: pos,
		Size:     entity.Vec2{X: 100, Y: 100},
		Tunables: entity.DefaultTunables(),
		Attack:   entity.DefaultAttackTunables(),
	})
}

func TestSpace_GravityScaleAppliesPerBody(t *testing.T) {
	s, w := createTestSpace()
	light := spawn(w, "light", entity.Vec2{X: -500, Y: 500})
	heavy := spawn(w, "heavy", entity.Vec2{X: 500, Y: 500})
	w.Body[heavy].GravityScale = 175

	s.Step(w, testDT)

	assert.Less(t, w.Body[light].Velocity.Y, 0.0)
	assert.Less(t, w.Body[heavy].Velocity.Y, w.Body[light].Velocity.Y)
	assert.Equal(t, 2, s.BodyCount())
}

func TestSpace_VelocityIsPushed(t *testing.T) {
	s, w := createTestSpace()
	id := spawn(w, "a", entity.Vec2{Y: 500})
	w.Body[id].Velocity = entity.Vec2{X: 600}

	s.Step(w, testDT)

	assert.InDelta(t, 600*testDT, w.Body[id].Position.X, 1e-6)
}

func TestSpace_FloorContactPushesUp(t *testing.T) {
	s, w := createTestSpace()
	id := spawn(w, "a", entity.Vec2{Y: -300})

	var contacts []entity.ContactEvent
	for i := 0; i < 120; i++ {
		contacts, _ = s.Step(w, testDT)
	}

	require.NotEmpty(t, contacts, "resting on the floor reports contacts")
	for _, c := range contacts {
		assert.Equal(t, id, c.A)
		assert.True(t, w.IsStageID(c.B))
		assert.Greater(t, c.Force.Y, 0.0)
	}
	assert.InDelta(t, -325, w.Body[id].Position.Y, 2)
}

func TestSpace_WallContactPushesBack(t *testing.T) {
	s, w := createTestSpace()
	// Wall to the right, face at x = 100
	w.CreateStageBlock(entity.Rect{Center: entity.Vec2{X: 125, Y: 0}, Size: entity.Vec2{X: 50, Y: 2000}})
	id := spawn(w, "a", entity.Vec2{X: 40, Y: 200})
	w.Body[id].GravityScale = 0

	var contacts []entity.ContactEvent
	for i := 0; i < 30; i++ {
		w.Body[id].Velocity = entity.Vec2{X: 300}
		contacts, _ = s.Step(w, testDT)
	}

	require.NotEmpty(t, contacts)
	last := contacts[len(contacts)-1]
	assert.Less(t, last.Force.X, 0.0, "stage pushes the character left")
	assert.InDelta(t, 0, last.Force.Y, 1e-3)
}

func TestSpace_HitboxOverlap(t *testing.T) {
	s, w := createTestSpace()
	attacker := spawn(w, "attacker", entity.Vec2{X: 0, Y: 500})
	target := spawn(w, "target", entity.Vec2{X: 120, Y: 500})

	s.Step(w, testDT)

	hb := w.CreateHitbox(attacker, entity.AttackTunables{Size: entity.Vec2{X: 300, Y: 200}})
	_, overlaps := s.Step(w, testDT)

	require.Len(t, overlaps, 1)
	assert.Equal(t, entity.OverlapEvent{Hitbox: hb, Target: target}, overlaps[0])
}

func TestSpace_RemovesDestroyedEntities(t *testing.T) {
	s, w := createTestSpace()
	a := spawn(w, "a", entity.Vec2{Y: 500})
	w.CreateHitbox(a, entity.DefaultAttackTunables())
	s.Step(w, testDT)
	require.Equal(t, 1, s.BodyCount())
	require.Len(t, s.hitboxes, 1)

	w.DestroyEntity(a)
	assert.NotPanics(t, func() { s.Step(w, testDT) })

	assert.Equal(t, 0, s.BodyCount())
	assert.Empty(t, s.hitboxes)
}

func TestSpace_Teleport(t *testing.T) {
	s, w := createTestSpace()
	id := spawn(w, "a", entity.Vec2{Y: 500})
	s.Step(w, testDT)

	s.Teleport(id, entity.Vec2{X: 300, Y: 600})
	w.Body[id].Velocity = entity.Vec2{}
	w.Body[id].GravityScale = 0
	s.Step(w, testDT)

	assert.InDelta(t, 300, w.Body[id].Position.X, 1e-6)
	assert.InDelta(t, 600, w.Body[id].Position.Y, 1e-6)
}
