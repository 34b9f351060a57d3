package match

import (
	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
)

// CharacterView is the read-only state of one character after a tick
type CharacterView struct {
	ID         entity.EntityID `json:"id"`
	Name       string          `json:"name"`
	Player     bool            `json:"player"`
	Position   entity.Vec2     `json:"position"`
	Velocity   entity.Vec2     `json:"velocity"`
	Size       entity.Vec2     `json:"size"`
	Phase      string          `json:"phase"`
	Touch      string          `json:"touch"`
	AirJumps   int             `json:"airJumps"`
	Attacking  bool            `json:"attacking"`
	Percentage float64         `json:"percentage"`
	Padding    float64         `json:"padding,omitempty"` // camera follow padding, 0 when not followed
}

// HitboxView is an active hitbox in world space
type HitboxView struct {
	ID    entity.EntityID `json:"id"`
	Owner entity.EntityID `json:"owner"`
	Rect  entity.Rect     `json:"rect"`
}

// Snapshot is what readers outside the simulation goroutine see
type Snapshot struct {
	Tick       uint64          `json:"tick"`
	Characters []CharacterView `json:"characters"`
	Hitboxes   []HitboxView    `json:"hitboxes"`
}

// Character returns the view with the given name
func (s Snapshot) Character(name string) (CharacterView, bool) {
	for _, c := range s.Characters {
		if c.Name == name {
			return c, true
		}
	}
	return CharacterView{}, false
}

func buildSnapshot(w *ecs.World, tick uint64) Snapshot {
	snap := Snapshot{
		Tick:       tick,
		Characters: make([]CharacterView, 0, len(w.IsCharacter)),
		Hitboxes:   make([]HitboxView, 0, len(w.IsHitbox)),
	}

	for _, id := range w.Characters() {
		b, m := w.Body[id], w.Movement[id]
		if b == nil || m == nil {
			continue
		}
		view := CharacterView{
			ID:       id,
			Player:   id == w.PlayerID,
			Position: b.Position,
			Velocity: b.Velocity,
			Size:     b.Size,
			Phase:    entity.PhaseName(m.Phase),
			Touch:    m.Touch.Kind.String(),
		}
		if t := w.Tunables[id]; t != nil {
			view.AirJumps = m.CurrentAirJumps(t.MaxAirJumps)
		}
		if f := w.Fighter[id]; f != nil {
			view.Name = f.Name
			view.Percentage = f.Percentage
		}
		if a := w.Attack[id]; a != nil {
			view.Attacking = a.IsAttacking()
		}
		if cf, ok := w.CameraFollow[id]; ok {
			view.Padding = cf.Padding
		}
		snap.Characters = append(snap.Characters, view)
	}

	for _, id := range w.Hitboxes() {
		hb := w.Hitbox[id]
		if hb == nil {
			continue
		}
		b := w.Body[hb.Owner]
		if b == nil {
			continue
		}
		snap.Hitboxes = append(snap.Hitboxes, HitboxView{
			ID:    id,
			Owner: hb.Owner,
			Rect:  b.HitboxRect(hb),
		})
	}

	return snap
}
