// Package physics adapts the chipmunk space to the fighter world.
// It pushes velocities and gravity scales in, steps the space, pulls positions
// back, and collects contact and hitbox overlap events for the systems to process.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

const (
	collisionTypeCharacter cp.CollisionType = iota + 1
	collisionTypeStage
	collisionTypeHitbox
)

const characterMass = 1.0

type bodyInfo struct {
	body         *cp.Body
	shape        *cp.Shape
	gravityScale float64
}

// Space owns the chipmunk space and the entity <-> shape mapping
type Space struct {
	space    *cp.Space
	friction float64

	bodies   map[entity.EntityID]*bodyInfo
	stage    map[entity.EntityID]*cp.Shape
	hitboxes map[entity.EntityID]*cp.Shape
	owners   map[*cp.Shape]entity.EntityID

	// Collected during Step, handed out after
	dt       float64
	contacts []entity.ContactEvent
	overlaps []entity.OverlapEvent
}

// NewSpace creates an empty physics space
func NewSpace(cfg config.WorldConfig) *Space {
	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	// Per-body gravity is applied in the velocity update func
	space.SetGravity(cp.Vector{X: 0, Y: -cfg.Gravity})

	s := &Space{
		space:    space,
		friction: cfg.Friction,
		bodies:   make(map[entity.EntityID]*bodyInfo),
		stage:    make(map[entity.EntityID]*cp.Shape),
		hitboxes: make(map[entity.EntityID]*cp.Shape),
		owners:   make(map[*cp.Shape]entity.EntityID),
	}
	s.ensureHandlers()
	return s
}

func (s *Space) ensureHandlers() {
	contact := s.space.NewCollisionHandler(collisionTypeCharacter, collisionTypeStage)
	contact.UserData = s
	contact.PostSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		sp, ok := userData.(*Space)
		if !ok || sp.dt <= 0 {
			return
		}
		a, b := arb.Shapes()
		charID, okA := sp.owners[a]
		stageID, okB := sp.owners[b]
		if !okA || !okB {
			return
		}

		// Normal points from the character into the stage
		n := arb.Normal()
		mag := math.Abs(arb.TotalImpulse().Dot(n)) / sp.dt
		force := n.Neg().Mult(mag)

		sp.contacts = append(sp.contacts, entity.ContactEvent{
			A:     charID,
			B:     stageID,
			Force: entity.Vec2{X: force.X, Y: force.Y},
		})
	}

	hit := s.space.NewCollisionHandler(collisionTypeHitbox, collisionTypeCharacter)
	hit.UserData = s
	hit.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sp, ok := userData.(*Space)
		if !ok {
			return true
		}
		a, b := arb.Shapes()
		hitboxID, okA := sp.owners[a]
		targetID, okB := sp.owners[b]
		if okA && okB {
			sp.overlaps = append(sp.overlaps, entity.OverlapEvent{Hitbox: hitboxID, Target: targetID})
		}
		return true
	}
}

// Step syncs the world into the space, advances it by dt and syncs positions back.
// Returned events are in the order the space reported them.
func (s *Space) Step(w *ecs.World, dt float64) ([]entity.ContactEvent, []entity.OverlapEvent) {
	// Sensors go first so no shape outlives its body
	s.removeStaleHitboxes(w)
	s.syncStage(w)
	s.syncCharacters(w)
	s.syncHitboxes(w)

	s.contacts = s.contacts[:0]
	s.overlaps = s.overlaps[:0]
	s.dt = dt

	s.space.Step(dt)

	s.pull(w)

	contacts := make([]entity.ContactEvent, len(s.contacts))
	copy(contacts, s.contacts)
	overlaps := make([]entity.OverlapEvent, len(s.overlaps))
	copy(overlaps, s.overlaps)
	return contacts, overlaps
}

func (s *Space) syncStage(w *ecs.World) {
	for _, id := range w.StageBlocks() {
		if _, ok := s.stage[id]; ok {
			continue
		}
		r := w.StageBlock[id]
		lo, hi := r.Min(), r.Max()
		shape := cp.NewBox2(s.space.StaticBody, cp.BB{L: lo.X, B: lo.Y, R: hi.X, T: hi.Y}, 0)
		shape.SetFriction(s.friction)
		shape.SetElasticity(0)
		shape.SetCollisionType(collisionTypeStage)
		s.space.AddShape(shape)

		s.stage[id] = shape
		s.owners[shape] = id
	}

	for id, shape := range s.stage {
		if !w.IsStageID(id) {
			s.removeShape(shape)
			delete(s.stage, id)
		}
	}
}

func (s *Space) syncCharacters(w *ecs.World) {
	for _, id := range w.Characters() {
		b := w.Body[id]
		if b == nil {
			continue
		}
		info, ok := s.bodies[id]
		if !ok {
			info = s.addCharacter(id, b)
		}
		info.gravityScale = b.GravityScale
		info.body.SetVelocityVector(cp.Vector{X: b.Velocity.X, Y: b.Velocity.Y})
	}

	for id, info := range s.bodies {
		if !w.IsCharacterID(id) {
			s.removeShape(info.shape)
			s.space.RemoveBody(info.body)
			delete(s.bodies, id)
		}
	}
}

func (s *Space) addCharacter(id entity.EntityID, b *entity.Body) *bodyInfo {
	info := &bodyInfo{gravityScale: b.GravityScale}

	// Infinite moment locks rotation
	body := cp.NewBody(characterMass, math.Inf(1))
	body.SetPosition(cp.Vector{X: b.Position.X, Y: b.Position.Y})
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(info.gravityScale), damping, dt)
	})

	shape := cp.NewBox(body, b.Size.X, b.Size.Y, 0)
	shape.SetFriction(s.friction)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeCharacter)

	s.space.AddBody(body)
	s.space.AddShape(shape)

	info.body = body
	info.shape = shape
	s.bodies[id] = info
	s.owners[shape] = id
	return info
}

func (s *Space) syncHitboxes(w *ecs.World) {
	for _, id := range w.Hitboxes() {
		if _, ok := s.hitboxes[id]; ok {
			continue
		}
		hb := w.Hitbox[id]
		if hb == nil {
			continue
		}
		owner, ok := s.bodies[hb.Owner]
		if !ok {
			continue
		}

		// Sensor in the owner's local frame, mirrored when facing left
		r := hb.Size
		off := hb.Offset
		if b := w.Body[hb.Owner]; b != nil {
			off = b.HitboxRect(hb).Center.Sub(b.Position)
		}
		bb := cp.BB{L: off.X - r.X/2, B: off.Y - r.Y/2, R: off.X + r.X/2, T: off.Y + r.Y/2}
		shape := cp.NewBox2(owner.body, bb, 0)
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeHitbox)
		s.space.AddShape(shape)

		s.hitboxes[id] = shape
		s.owners[shape] = id
	}
}

func (s *Space) removeStaleHitboxes(w *ecs.World) {
	for id, shape := range s.hitboxes {
		if _, ok := w.Hitbox[id]; !ok {
			s.removeShape(shape)
			delete(s.hitboxes, id)
		}
	}
}

func (s *Space) removeShape(shape *cp.Shape) {
	s.space.RemoveShape(shape)
	delete(s.owners, shape)
}

// pull copies positions and velocities out of the space
func (s *Space) pull(w *ecs.World) {
	for id, info := range s.bodies {
		b := w.Body[id]
		if b == nil {
			continue
		}
		p := info.body.Position()
		v := info.body.Velocity()
		b.Position = entity.Vec2{X: p.X, Y: p.Y}
		b.Velocity = entity.Vec2{X: v.X, Y: v.Y}
	}
}

// Teleport moves a character body, used by the editor
func (s *Space) Teleport(id entity.EntityID, pos entity.Vec2) {
	if info, ok := s.bodies[id]; ok {
		info.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
		info.body.SetVelocityVector(cp.Vector{})
	}
}

// BodyCount returns the number of tracked character bodies
func (s *Space) BodyCount() int {
	return len(s.bodies)
}
