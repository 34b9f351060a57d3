package system

import (
	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
)

// AttackController runs the Idle -> Attacking -> Idle cycle of every character
// and credits hitbox overlaps to their targets
type AttackController struct {
	// Event callbacks
	OnAttack func(id entity.EntityID)
	OnHit    func(attacker, target entity.EntityID, damage float64)
}

// NewAttackController creates a new attack controller
func NewAttackController() *AttackController {
	return &AttackController{}
}

// Update processes this tick's overlaps, then advances cooldowns, then starts
// queued attacks. Overlaps come from the physics step that just ran, so a
// hitbox expiring this tick still gets its last overlaps credited.
func (s *AttackController) Update(w *ecs.World, overlaps []entity.OverlapEvent, dt float64) {
	for _, ev := range overlaps {
		s.resolveOverlap(w, ev)
	}

	for _, id := range w.Characters() {
		st := w.Attack[id]
		if st == nil {
			continue
		}
		s.advance(w, st, dt)
		s.start(w, id, st)
	}
}

// advance ticks an active attack and ends it when its clock elapses
func (s *AttackController) advance(w *ecs.World, st *entity.AttackState, dt float64) {
	if !st.IsAttacking() {
		return
	}
	st.Cooldown.Tick(dt)
	if !st.Cooldown.Finished() {
		return
	}
	if st.Hitbox != 0 {
		w.DestroyEntity(st.Hitbox)
	}
	st.Cooldown = nil
	st.Hitbox = 0
}

// start consumes the queued attack intent. Intents while attacking are dropped.
func (s *AttackController) start(w *ecs.World, id entity.EntityID, st *entity.AttackState) {
	wants := st.WantsAttack
	st.WantsAttack = false
	if !wants || st.IsAttacking() {
		return
	}

	tun := entity.DefaultAttackTunables()
	if t := w.AttackTunables[id]; t != nil {
		tun = *t
	}

	st.Hitbox = w.CreateHitbox(id, tun)
	st.Cooldown = entity.NewClock(tun.Lifetime)
	st.HitSet = make(map[entity.EntityID]struct{})

	if s.OnAttack != nil {
		s.OnAttack(id)
	}
}

// resolveOverlap credits one hitbox/target overlap at most once per attack
func (s *AttackController) resolveOverlap(w *ecs.World, ev entity.OverlapEvent) {
	hb := w.Hitbox[ev.Hitbox]
	if hb == nil || ev.Target == hb.Owner || !w.IsCharacterID(ev.Target) {
		return
	}
	if hb.HasCredited(ev.Target) {
		return
	}

	st := w.Attack[hb.Owner]
	if st != nil && st.Hitbox == ev.Hitbox {
		if _, hit := st.HitSet[ev.Target]; hit {
			return
		}
		st.HitSet[ev.Target] = struct{}{}
	}
	hb.Credited[ev.Target] = struct{}{}

	if f := w.Fighter[ev.Target]; f != nil {
		f.Percentage += hb.Damage
	}
	if m := w.Movement[ev.Target]; m != nil {
		m.PendingKnockback = m.PendingKnockback.Add(hb.Knockback)
	}

	if s.OnHit != nil {
		s.OnHit(hb.Owner, ev.Target, hb.Damage)
	}
}
