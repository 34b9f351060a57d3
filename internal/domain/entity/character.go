package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidTunables is returned when a tunable set cannot be used
var ErrInvalidTunables = errors.New("invalid tunables")

// Tunables are the per-character movement constants.
// Set at spawn; changed only through the tuning store between ticks.
type Tunables struct {
	SpeedAir             float64 `json:"speedAir" yaml:"speed_air"`
	SpeedFloor           float64 `json:"speedFloor" yaml:"speed_floor"`
	MaxSpeedAir          float64 `json:"maxSpeedAir" yaml:"max_speed_air"`
	FastfallInitialSpeed float64 `json:"fastfallInitialSpeed" yaml:"fastfall_initial_speed"`
	NormalGravity        float64 `json:"normalGravity" yaml:"normal_gravity"`
	FastfallingGravity   float64 `json:"fastfallingGravity" yaml:"fastfalling_gravity"`
	JumpBoost            float64 `json:"jumpBoost" yaml:"jump_boost"`
	MaxAirJumps          int     `json:"maxAirJumps" yaml:"max_air_jumps"`
	MinAirTimeToFastfall float64 `json:"minAirTimeToFastfall" yaml:"min_air_time_to_fastfall"` // seconds
	CanWalljump          bool    `json:"canWalljump" yaml:"can_walljump"`
}

// DefaultTunables returns the stock fighter feel
func DefaultTunables() Tunables {
	return Tunables{
		SpeedAir:             20,
		SpeedFloor:           500,
		MaxSpeedAir:          650,
		FastfallInitialSpeed: 0,
		NormalGravity:        20,
		FastfallingGravity:   175,
		JumpBoost:            1000,
		MaxAirJumps:          1,
		MinAirTimeToFastfall: 0.1,
		CanWalljump:          true,
	}
}

// Validate checks the values a loader or tuning client may hand us.
// The movement core itself never validates.
func (t Tunables) Validate() error {
	switch {
	case t.SpeedAir < 0:
		return fmt.Errorf("%w: speedAir must be >= 0", ErrInvalidTunables)
	case t.SpeedFloor < 0:
		return fmt.Errorf("%w: speedFloor must be >= 0", ErrInvalidTunables)
	case t.MaxSpeedAir < 0:
		return fmt.Errorf("%w: maxSpeedAir must be >= 0", ErrInvalidTunables)
	case t.FastfallInitialSpeed < 0:
		return fmt.Errorf("%w: fastfallInitialSpeed must be >= 0", ErrInvalidTunables)
	case t.MaxAirJumps < 0:
		return fmt.Errorf("%w: maxAirJumps must be >= 0", ErrInvalidTunables)
	case t.MinAirTimeToFastfall < 0:
		return fmt.Errorf("%w: minAirTimeToFastfall must be >= 0", ErrInvalidTunables)
	}
	return nil
}

// TouchKind categorizes how a character rests against the stage this tick
type TouchKind int

const (
	TouchNone TouchKind = iota
	TouchFloor
	TouchBelow // touching the stage from below (ceiling)
	TouchLeft  // wall on the left
	TouchRight // wall on the right
	TouchUnknown
)

// String returns the string representation of the touch kind
func (k TouchKind) String() string {
	switch k {
	case TouchNone:
		return "None"
	case TouchFloor:
		return "Floor"
	case TouchBelow:
		return "Below"
	case TouchLeft:
		return "Left"
	case TouchRight:
		return "Right"
	case TouchUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Touch is the per-tick stage contact signal.
// Force is the contact force the stage exerts on the character.
type Touch struct {
	Kind  TouchKind
	Force Vec2
}

// OnFloor reports floor contact
func (t Touch) OnFloor() bool { return t.Kind == TouchFloor }

// OnWall reports wall contact on either side
func (t Touch) OnWall() bool { return t.Kind == TouchLeft || t.Kind == TouchRight }

// InAir reports a true "in the air" state: neither floor nor wall.
// Below and Unknown count as in the air.
func (t Touch) InAir() bool { return !t.OnFloor() && !t.OnWall() }

// WallSign returns +1 for a wall on the right, -1 for a wall on the left, 0 otherwise
func (t Touch) WallSign() float64 {
	switch t.Kind {
	case TouchRight:
		return 1
	case TouchLeft:
		return -1
	default:
		return 0
	}
}

// Phase is the movement phase of a character
type Phase interface {
	isPhase()
}

// Grounded means the character stood on the floor at the end of the last tick.
// Air jumps are full and air time is zero by construction.
type Grounded struct{}

func (Grounded) isPhase() {}

// Airborne is any non-floor state that is not fastfalling
type Airborne struct {
	AirJumpsLeft int
	AirTime      float64 // seconds since leaving the ground or last jump
}

func (Airborne) isPhase() {}

// Fastfalling is an accelerated descent
type Fastfalling struct {
	AirJumpsLeft int
	AirTime      float64
}

func (Fastfalling) isPhase() {}

// PhaseName returns a short label for snapshots and logs
func PhaseName(p Phase) string {
	switch p.(type) {
	case Grounded:
		return "Grounded"
	case Airborne:
		return "Airborne"
	case Fastfalling:
		return "Fastfalling"
	default:
		return "Unknown"
	}
}

// Movement is the runtime state owned by the movement core
type Movement struct {
	Touch    Touch
	DesiredX float64 // horizontal intent in [-1, 1]

	// One-shot intents, cleared by the tick that consumes them
	WantsJump     bool
	WantsFastfall bool

	Phase                   Phase
	WasFastfallingLastFrame bool

	// Horizontal sign of the last walljump; 0 means unlocked
	WalljumpLock float64

	// Knockback accumulated by attacks since the last movement tick
	PendingKnockback Vec2
}

// NewMovement returns the runtime state of a freshly spawned character
func NewMovement(t Tunables) Movement {
	return Movement{
		Phase: Airborne{AirJumpsLeft: t.MaxAirJumps},
	}
}

// IsFastfalling reports whether the character is in the fastfall phase
func (m *Movement) IsFastfalling() bool {
	_, ok := m.Phase.(Fastfalling)
	return ok
}

// AirTime returns seconds spent in the air since leaving the ground or jumping
func (m *Movement) AirTime() float64 {
	switch p := m.Phase.(type) {
	case Airborne:
		return p.AirTime
	case Fastfalling:
		return p.AirTime
	default:
		return 0
	}
}

// CurrentAirJumps returns the remaining air jumps. Grounded characters have a full pool.
func (m *Movement) CurrentAirJumps(maxAirJumps int) int {
	switch p := m.Phase.(type) {
	case Airborne:
		return p.AirJumpsLeft
	case Fastfalling:
		return p.AirJumpsLeft
	default:
		return maxAirJumps
	}
}

// StopFastfall leaves the fastfall phase keeping jumps and air time
func (m *Movement) StopFastfall() {
	if p, ok := m.Phase.(Fastfalling); ok {
		m.Phase = Airborne{AirJumpsLeft: p.AirJumpsLeft, AirTime: p.AirTime}
	}
}

// Intent is the already-normalized per-tick input of one character
type Intent struct {
	DesiredX float64
	Jump     bool
	Fastfall bool
	Attack   bool
}
