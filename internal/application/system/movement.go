package system

import (
	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
)

// MovementResult reports what happened to one character during a tick
type MovementResult struct {
	Jumped          bool
	Walljumped      bool
	FastfallStarted bool
}

// MovementIntegrator turns touch signal and intents into velocity and gravity
type MovementIntegrator struct {
	// Event callbacks
	OnJump     func(id entity.EntityID, walljump bool)
	OnFastfall func(id entity.EntityID)
}

// NewMovementIntegrator creates a new movement integrator
func NewMovementIntegrator() *MovementIntegrator {
	return &MovementIntegrator{}
}

// Update integrates every character once
func (s *MovementIntegrator) Update(w *ecs.World, dt float64) {
	for _, id := range w.Characters() {
		tun, m, b := w.Tunables[id], w.Movement[id], w.Body[id]
		if tun == nil || m == nil || b == nil {
			continue
		}

		res := Integrate(*tun, m, b, dt)

		if res.Jumped && s.OnJump != nil {
			s.OnJump(id, res.Walljumped)
		}
		if res.FastfallStarted && s.OnFastfall != nil {
			s.OnFastfall(id)
		}
	}
}

// Integrate runs one movement tick for a single character.
// It never validates its input; NaN intents propagate.
func Integrate(t entity.Tunables, m *entity.Movement, b *entity.Body, dt float64) MovementResult {
	var res MovementResult

	// Walking off a ledge leaves the ground with a full jump pool
	if _, grounded := m.Phase.(entity.Grounded); grounded && !m.Touch.OnFloor() {
		m.Phase = entity.Airborne{AirJumpsLeft: t.MaxAirJumps}
	}
	onFloor := m.Touch.OnFloor()
	v := b.Velocity

	// Horizontal movement
	if onFloor {
		v.X = m.DesiredX * t.SpeedFloor
	} else {
		v.X = entity.Clamp(v.X+m.DesiredX*t.SpeedAir, -t.MaxSpeedAir, t.MaxSpeedAir)
	}

	// Knockback drain
	v = v.Add(m.PendingKnockback)
	m.PendingKnockback = entity.Vec2{}

	// Fastfall start
	if !m.WasFastfallingLastFrame && m.WantsFastfall && !onFloor && m.AirTime() >= t.MinAirTimeToFastfall {
		if v.Y < 0 {
			v.Y -= t.FastfallInitialSpeed
		} else {
			v.Y = -t.FastfallInitialSpeed
		}
		b.GravityScale = t.FastfallingGravity
		m.Phase = entity.Fastfalling{
			AirJumpsLeft: m.CurrentAirJumps(t.MaxAirJumps),
			AirTime:      m.AirTime(),
		}
		res.FastfallStarted = true
	}

	// Fastfall end
	if m.WasFastfallingLastFrame && !m.IsFastfalling() {
		b.GravityScale = t.NormalGravity
		resetAirTime(m)
	}

	m.WantsFastfall = false
	m.WasFastfallingLastFrame = m.IsFastfalling()

	// Walljump pre-check: pushing into a wall on the same side as the intent.
	// The lock holds only while the intent keeps the locked sign.
	dir := entity.Sign(m.DesiredX)
	if m.WalljumpLock != 0 && dir != m.WalljumpLock {
		m.WalljumpLock = 0
	}
	walljump := t.CanWalljump && dir != 0 && m.Touch.WallSign() == dir && dir != m.WalljumpLock
	if walljump {
		m.WalljumpLock = dir
	}

	// Jump. The pool never exceeds the current limit.
	jumps := min(m.CurrentAirJumps(t.MaxAirJumps), t.MaxAirJumps)
	if (m.WantsJump && jumps > 0) || walljump {
		if m.Touch.InAir() && jumps > 0 {
			jumps--
		}
		v.Y = t.JumpBoost
		v.X = m.DesiredX * t.SpeedFloor
		m.Phase = entity.Airborne{AirJumpsLeft: jumps}
		res.Jumped = true
		res.Walljumped = walljump
	}

	// End of tick
	m.WantsJump = false
	if onFloor {
		m.Phase = entity.Grounded{}
		m.WalljumpLock = 0
	} else {
		advanceAirTime(m, dt)
	}

	b.Velocity = v
	return res
}

func resetAirTime(m *entity.Movement) {
	switch p := m.Phase.(type) {
	case entity.Airborne:
		p.AirTime = 0
		m.Phase = p
	case entity.Fastfalling:
		p.AirTime = 0
		m.Phase = p
	}
}

func advanceAirTime(m *entity.Movement, dt float64) {
	switch p := m.Phase.(type) {
	case entity.Airborne:
		p.AirTime += dt
		m.Phase = p
	case entity.Fastfalling:
		p.AirTime += dt
		m.Phase = p
	}
}
