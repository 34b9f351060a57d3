package entity

import "fmt"

// Clock counts elapsed seconds toward a fixed duration
type Clock struct {
	Duration float64
	Elapsed  float64
}

// NewClock creates a clock that finishes after d seconds
func NewClock(d float64) *Clock {
	return &Clock{Duration: d}
}

// Tick advances the clock by dt seconds
func (c *Clock) Tick(dt float64) {
	c.Elapsed += dt
}

// Finished reports whether the duration has elapsed
func (c *Clock) Finished() bool {
	return c.Elapsed >= c.Duration
}

// Remaining returns seconds left, never negative
func (c *Clock) Remaining() float64 {
	if c.Finished() {
		return 0
	}
	return c.Duration - c.Elapsed
}

// AttackTunables configures the melee attack of a character
type AttackTunables struct {
	Damage    float64 `json:"damage" yaml:"damage"`
	Knockback Vec2    `json:"knockback" yaml:"knockback"`
	Lifetime  float64 `json:"lifetime" yaml:"lifetime"` // seconds
	Size      Vec2    `json:"size" yaml:"size"`
	Offset    Vec2    `json:"offset" yaml:"offset"`
}

// DefaultAttackTunables returns the stock forward-air
func DefaultAttackTunables() AttackTunables {
	return AttackTunables{
		Damage:    20,
		Knockback: Vec2{X: 0, Y: 1000},
		Lifetime:  1,
		Size:      Vec2{X: 200, Y: 200},
	}
}

// Validate rejects attacks that could never land or never end
func (a AttackTunables) Validate() error {
	switch {
	case a.Damage < 0:
		return fmt.Errorf("%w: damage must be >= 0", ErrInvalidTunables)
	case a.Lifetime <= 0:
		return fmt.Errorf("%w: lifetime must be > 0", ErrInvalidTunables)
	case a.Size.X < 0 || a.Size.Y < 0:
		return fmt.Errorf("%w: size must be >= 0", ErrInvalidTunables)
	}
	return nil
}

// AttackState is the attack bookkeeping of one character.
// A non-nil Cooldown means an attack is active.
type AttackState struct {
	Cooldown    *Clock
	WantsAttack bool
	HitSet      map[EntityID]struct{}
	Hitbox      EntityID
}

// IsAttacking reports whether an attack is active
func (a *AttackState) IsAttacking() bool {
	return a.Cooldown != nil
}

// Hitbox is a transient attack volume owned by a character
type Hitbox struct {
	Owner     EntityID
	Damage    float64
	Knockback Vec2
	Size      Vec2
	Offset    Vec2
	Facing    float64 // -1 mirrors Offset.X; fixed at spawn
	Credited  map[EntityID]struct{}
}

// NewHitbox creates a hitbox for owner from its attack tunables
func NewHitbox(owner EntityID, t AttackTunables) Hitbox {
	return Hitbox{
		Owner:     owner,
		Damage:    t.Damage,
		Knockback: t.Knockback,
		Size:      t.Size,
		Offset:    t.Offset,
		Facing:    1,
		Credited:  make(map[EntityID]struct{}),
	}
}

// HasCredited reports whether target was already hit by this hitbox
func (h *Hitbox) HasCredited(target EntityID) bool {
	_, ok := h.Credited[target]
	return ok
}
