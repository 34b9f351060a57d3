package ecs

import "github.com/younwookim/platfight/internal/domain/entity"

// CharacterConfig holds everything needed to spawn a fighter
type CharacterConfig struct {
	Name     string
	Position entity.Vec2
	Size     entity.Vec2
	Tunables entity.Tunables
	Attack   entity.AttackTunables
	Padding  float64 // camera follow padding
	IsPlayer bool
}

// CreateCharacter creates a character entity with movement and attack state
func (w *World) CreateCharacter(cfg CharacterConfig) EntityID {
	id := w.NewEntity()

	tun := cfg.Tunables
	atk := cfg.Attack
	body := entity.NewBody(cfg.Position, cfg.Size, tun)
	mov := entity.NewMovement(tun)

	w.Body[id] = &body
	w.Movement[id] = &mov
	w.Tunables[id] = &tun
	w.AttackTunables[id] = &atk
	w.Attack[id] = &entity.AttackState{HitSet: make(map[EntityID]struct{})}
	w.Fighter[id] = &entity.Fighter{Name: cfg.Name}
	w.Intent[id] = entity.Intent{}
	if cfg.Padding > 0 {
		w.CameraFollow[id] = entity.CameraFollow{Padding: cfg.Padding}
	}
	w.IsCharacter[id] = struct{}{}

	if cfg.IsPlayer {
		w.IsPlayer[id] = struct{}{}
		if w.PlayerID == 0 {
			w.PlayerID = id
		}
	}
	return id
}

// CreateStageBlock creates one static stage rectangle
func (w *World) CreateStageBlock(r entity.Rect) EntityID {
	id := w.NewEntity()
	w.StageBlock[id] = r
	w.IsStage[id] = struct{}{}
	return id
}

// CreateStage creates a block entity for every rectangle of the stage
func (w *World) CreateStage(s *entity.Stage) []EntityID {
	if s == nil {
		return nil
	}
	ids := make([]EntityID, 0, len(s.Blocks))
	for _, r := range s.Blocks {
		ids = append(ids, w.CreateStageBlock(r))
	}
	return ids
}

// CreateHitbox creates a hitbox entity as a child of its owner
func (w *World) CreateHitbox(owner EntityID, t entity.AttackTunables) EntityID {
	id := w.NewEntity()
	hb := entity.NewHitbox(owner, t)
	if b := w.Body[owner]; b != nil {
		hb.Facing = b.Facing()
	}
	w.Hitbox[id] = &hb
	w.Parent[id] = owner
	w.IsHitbox[id] = struct{}{}
	return id
}
