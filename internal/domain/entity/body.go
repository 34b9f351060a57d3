package entity

// Body is the physics-facing state of a character.
// The physics engine owns Position; the movement core writes Velocity and GravityScale.
type Body struct {
	Position     Vec2
	Velocity     Vec2
	GravityScale float64
	Size         Vec2 // collider width/height
}

// NewBody creates a body at pos with the given collider size and normal gravity
func NewBody(pos, size Vec2, t Tunables) Body {
	return Body{
		Position:     pos,
		Size:         size,
		GravityScale: t.NormalGravity,
	}
}

// Bounds returns the collider rectangle in world coordinates
func (b *Body) Bounds() Rect {
	return Rect{Center: b.Position, Size: b.Size}
}

// Facing returns -1 when the body is moving left and 1 otherwise
func (b *Body) Facing() float64 {
	if b.Velocity.X < 0 {
		return -1
	}
	return 1
}

// HitboxRect returns the world rectangle of a hitbox attached to this body.
// The X offset follows the facing the hitbox was spawned with.
func (b *Body) HitboxRect(h *Hitbox) Rect {
	off := h.Offset
	if h.Facing < 0 {
		off.X = -off.X
	}
	return Rect{Center: b.Position.Add(off), Size: h.Size}
}

// Speed returns the velocity magnitude
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}
