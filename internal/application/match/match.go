// Package match runs one fight: it owns the world and steps the physics
// adapter and the movement and combat systems in a fixed order each tick.
package match

import (
	"sync"
	"time"

	"github.com/younwookim/platfight/internal/application/system"
	"github.com/younwookim/platfight/internal/application/tuning"
	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

// PhysicsEngine steps the world and reports what happened during the step
type PhysicsEngine interface {
	Step(w *ecs.World, dt float64) ([]entity.ContactEvent, []entity.OverlapEvent)
}

// Teleporter is implemented by engines that can move a body directly
type Teleporter interface {
	Teleport(id entity.EntityID, pos entity.Vec2)
}

// Hooks are optional event callbacks, called on the simulation goroutine
type Hooks struct {
	OnTick     func(d time.Duration)
	OnJump     func(id entity.EntityID, walljump bool)
	OnFastfall func(id entity.EntityID)
	OnHit      func(attacker, target entity.EntityID, damage float64)
}

// Match is a running fight
type Match struct {
	world   *ecs.World
	physics PhysicsEngine
	tuning  *tuning.Store

	classifier *system.ContactClassifier
	movement   *system.MovementIntegrator
	attack     *system.AttackController

	hooks Hooks
	tick  uint64

	mu       sync.RWMutex
	snapshot Snapshot
}

// New creates a match over an already populated world.
// The tuning store is seeded with the world's current tunables.
func New(w *ecs.World, physics PhysicsEngine, store *tuning.Store, cfg *config.ClassifierConfig) *Match {
	if store == nil {
		store = tuning.NewStore()
	}
	store.Register(w)

	m := &Match{
		world:      w,
		physics:    physics,
		tuning:     store,
		classifier: system.NewContactClassifier(cfg),
		movement:   system.NewMovementIntegrator(),
		attack:     system.NewAttackController(),
	}
	m.movement.OnJump = m.onJump
	m.movement.OnFastfall = m.onFastfall
	m.attack.OnHit = m.onHit
	m.snapshot = buildSnapshot(w, 0)
	return m
}

// SetHooks replaces the event callbacks
func (m *Match) SetHooks(h Hooks) {
	m.hooks = h
}

// World returns the simulated world. Only the simulation goroutine may touch it.
func (m *Match) World() *ecs.World {
	return m.world
}

// Tuning returns the store that queues live tunable edits
func (m *Match) Tuning() *tuning.Store {
	return m.tuning
}

// Tick returns the number of completed ticks
func (m *Match) Tick() uint64 {
	return m.tick
}

// SetIntent sets the input of one character for the next tick
func (m *Match) SetIntent(id entity.EntityID, in entity.Intent) {
	if !m.world.IsCharacterID(id) {
		return
	}
	m.world.Intent[id] = in
}

// Step advances the fight by dt seconds
func (m *Match) Step(dt float64) {
	start := time.Now()
	w := m.world

	m.tuning.Apply(w)

	for _, id := range w.Characters() {
		system.ApplyIntents(w, system.IntentsFor(id, w.Intent[id]))
	}
	// Intents are per tick
	for id := range w.Intent {
		delete(w.Intent, id)
	}

	var (
		contacts []entity.ContactEvent
		overlaps []entity.OverlapEvent
	)
	if m.physics != nil {
		contacts, overlaps = m.physics.Step(w, dt)
	}

	m.classifier.Update(w, contacts)
	m.movement.Update(w, dt)
	m.attack.Update(w, overlaps, dt)

	m.tick++
	snap := buildSnapshot(w, m.tick)

	m.mu.Lock()
	m.snapshot = snap
	m.mu.Unlock()

	if m.hooks.OnTick != nil {
		m.hooks.OnTick(time.Since(start))
	}
}

// Snapshot returns the state published after the last tick. Safe from any goroutine.
func (m *Match) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Teleport moves a character and stops it. Used by the editor while paused.
func (m *Match) Teleport(id entity.EntityID, pos entity.Vec2) {
	b := m.world.Body[id]
	if b == nil {
		return
	}
	b.Position = pos
	b.Velocity = entity.Vec2{}
	if tp, ok := m.physics.(Teleporter); ok {
		tp.Teleport(id, pos)
	}

	snap := buildSnapshot(m.world, m.tick)
	m.mu.Lock()
	m.snapshot = snap
	m.mu.Unlock()
}

func (m *Match) onJump(id entity.EntityID, walljump bool) {
	if m.hooks.OnJump != nil {
		m.hooks.OnJump(id, walljump)
	}
}

func (m *Match) onFastfall(id entity.EntityID) {
	if m.hooks.OnFastfall != nil {
		m.hooks.OnFastfall(id)
	}
}

func (m *Match) onHit(attacker, target entity.EntityID, damage float64) {
	if m.hooks.OnHit != nil {
		m.hooks.OnHit(attacker, target, damage)
	}
}
