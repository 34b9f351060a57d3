// Package tuning queues live tunable edits and applies them between ticks.
// Submit is safe from any goroutine; Apply runs on the simulation goroutine.
package tuning

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
)

// ErrUnknownCharacter is returned for edits naming a character not in the roster
var ErrUnknownCharacter = errors.New("unknown character")

// Edit is one queued change for a named character.
// A nil field leaves that tunable set untouched.
type Edit struct {
	Name     string
	Movement *entity.Tunables
	Attack   *entity.AttackTunables
}

// Store holds the queued edits and the current value of every known character
type Store struct {
	mu       sync.Mutex
	pending  []Edit
	movement map[string]entity.Tunables
	attack   map[string]entity.AttackTunables
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		movement: make(map[string]entity.Tunables),
		attack:   make(map[string]entity.AttackTunables),
	}
}

// Register records the spawn-time tunables of every character in the world
func (s *Store) Register(w *ecs.World) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range w.Characters() {
		f := w.Fighter[id]
		if f == nil {
			continue
		}
		if t := w.Tunables[id]; t != nil {
			s.movement[f.Name] = *t
		}
		if a := w.AttackTunables[id]; a != nil {
			s.attack[f.Name] = *a
		}
	}
}

// Names returns the known character names in sorted order
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.movement))
	for name := range s.movement {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Movement returns the latest accepted movement tunables for name
func (s *Store) Movement(name string) (entity.Tunables, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.movement[name]
	if !ok {
		return entity.Tunables{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, name)
	}
	return t, nil
}

// Attack returns the latest accepted attack tunables for name
func (s *Store) Attack(name string) (entity.AttackTunables, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attack[name]
	if !ok {
		return entity.AttackTunables{}, fmt.Errorf("%w: %q", ErrUnknownCharacter, name)
	}
	return a, nil
}

// SubmitMovement validates and queues new movement tunables
func (s *Store) SubmitMovement(name string, t entity.Tunables) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.submit(Edit{Name: name, Movement: &t})
}

// SubmitAttack validates and queues new attack tunables
func (s *Store) SubmitAttack(name string, a entity.AttackTunables) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return s.submit(Edit{Name: name, Attack: &a})
}

func (s *Store) submit(e Edit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movement[e.Name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCharacter, e.Name)
	}
	if e.Movement != nil {
		s.movement[e.Name] = *e.Movement
	}
	if e.Attack != nil {
		s.attack[e.Name] = *e.Attack
	}
	s.pending = append(s.pending, e)
	return nil
}

// Pending returns the number of queued edits
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Apply writes every queued edit into the world in submission order and
// returns how many were applied. Edits for characters no longer in the
// world are dropped.
func (s *Store) Apply(w *ecs.World) int {
	s.mu.Lock()
	edits := s.pending
	s.pending = nil
	s.mu.Unlock()

	applied := 0
	for _, e := range edits {
		id, ok := w.FindCharacter(e.Name)
		if !ok {
			continue
		}
		if e.Movement != nil {
			if t := w.Tunables[id]; t != nil {
				*t = *e.Movement
				syncPhase(w, id, *t)
				syncGravity(w, id, *t)
			}
		}
		if e.Attack != nil {
			if a := w.AttackTunables[id]; a != nil {
				*a = *e.Attack
			}
		}
		applied++
	}
	return applied
}

// syncPhase caps the air jumps left in flight to a lowered limit
func syncPhase(w *ecs.World, id entity.EntityID, t entity.Tunables) {
	m := w.Movement[id]
	if m == nil {
		return
	}
	switch p := m.Phase.(type) {
	case entity.Airborne:
		if p.AirJumpsLeft > t.MaxAirJumps {
			p.AirJumpsLeft = t.MaxAirJumps
			m.Phase = p
		}
	case entity.Fastfalling:
		if p.AirJumpsLeft > t.MaxAirJumps {
			p.AirJumpsLeft = t.MaxAirJumps
			m.Phase = p
		}
	}
}

// syncGravity keeps the live gravity scale in step with the phase
func syncGravity(w *ecs.World, id entity.EntityID, t entity.Tunables) {
	b, m := w.Body[id], w.Movement[id]
	if b == nil || m == nil {
		return
	}
	if m.IsFastfalling() {
		b.GravityScale = t.FastfallingGravity
	} else {
		b.GravityScale = t.NormalGravity
	}
}
