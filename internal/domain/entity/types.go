package entity

import "math"

// EntityID is a unique identifier for an entity (0 is "nil")
type EntityID uint32

// Vec2 is a 2D vector in world units. +Y is up.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the vector length
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Fighter holds the per-character damage accumulator
type Fighter struct {
	Name       string
	Percentage float64
}

// CameraFollow marks an entity the camera keeps in frame
type CameraFollow struct {
	Padding float64
}

// Rect is an axis-aligned rectangle given by its center and size
type Rect struct {
	Center Vec2 `json:"center" yaml:"center"`
	Size   Vec2 `json:"size" yaml:"size"`
}

// Min returns the bottom-left corner
func (r Rect) Min() Vec2 {
	return Vec2{X: r.Center.X - r.Size.X/2, Y: r.Center.Y - r.Size.Y/2}
}

// Max returns the top-right corner
func (r Rect) Max() Vec2 {
	return Vec2{X: r.Center.X + r.Size.X/2, Y: r.Center.Y + r.Size.Y/2}
}

// Contains reports whether p lies inside the rectangle
func (r Rect) Contains(p Vec2) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// Stage is the static geometry characters stand on
type Stage struct {
	Name     string
	Blocks   []Rect
	Spawns   map[string]Vec2
	Friction float64
}

// Spawn returns the named spawn point, or the origin if none is defined
func (s *Stage) Spawn(name string) Vec2 {
	if s == nil || s.Spawns == nil {
		return Vec2{}
	}
	return s.Spawns[name]
}

// ContactEvent is one contact-force report from the physics engine.
// Force is the force exerted on A by B during the step.
type ContactEvent struct {
	A, B  EntityID
	Force Vec2
}

// OverlapEvent reports a hitbox sensor overlapping a body
type OverlapEvent struct {
	Hitbox EntityID
	Target EntityID
}

// Sign returns -1, 0 or 1
func Sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
