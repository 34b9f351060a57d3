package ecs

import (
	"sort"

	"github.com/younwookim/platfight/internal/domain/entity"
)

// EntityID aliases the domain ID so systems can use either package
type EntityID = entity.EntityID

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Body           map[EntityID]*entity.Body
	Movement       map[EntityID]*entity.Movement
	Tunables       map[EntityID]*entity.Tunables
	Attack         map[EntityID]*entity.AttackState
	AttackTunables map[EntityID]*entity.AttackTunables
	Fighter        map[EntityID]*entity.Fighter
	Hitbox         map[EntityID]*entity.Hitbox
	CameraFollow   map[EntityID]entity.CameraFollow
	Intent         map[EntityID]entity.Intent

	// Hierarchy: child -> parent
	Parent map[EntityID]EntityID

	// Tags
	IsCharacter map[EntityID]struct{}
	IsStage     map[EntityID]struct{}
	IsHitbox    map[EntityID]struct{}
	IsPlayer    map[EntityID]struct{}

	// Stage geometry, one entity per block
	StageBlock map[EntityID]entity.Rect

	// Singleton references
	PlayerID EntityID
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:         1, // 0 is "nil"
		Body:           make(map[EntityID]*entity.Body),
		Movement:       make(map[EntityID]*entity.Movement),
		Tunables:       make(map[EntityID]*entity.Tunables),
		Attack:         make(map[EntityID]*entity.AttackState),
		AttackTunables: make(map[EntityID]*entity.AttackTunables),
		Fighter:        make(map[EntityID]*entity.Fighter),
		Hitbox:         make(map[EntityID]*entity.Hitbox),
		CameraFollow:   make(map[EntityID]entity.CameraFollow),
		Intent:         make(map[EntityID]entity.Intent),
		Parent:         make(map[EntityID]EntityID),
		IsCharacter:    make(map[EntityID]struct{}),
		IsStage:        make(map[EntityID]struct{}),
		IsHitbox:       make(map[EntityID]struct{}),
		IsPlayer:       make(map[EntityID]struct{}),
		StageBlock:     make(map[EntityID]entity.Rect),
	}
}

// NewEntity returns a new unique entity ID (never recycled)
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity and its children
func (w *World) DestroyEntity(id EntityID) {
	for child, parent := range w.Parent {
		if parent == id {
			w.DestroyEntity(child)
		}
	}

	delete(w.Body, id)
	delete(w.Movement, id)
	delete(w.Tunables, id)
	delete(w.Attack, id)
	delete(w.AttackTunables, id)
	delete(w.Fighter, id)
	delete(w.Hitbox, id)
	delete(w.CameraFollow, id)
	delete(w.Intent, id)
	delete(w.Parent, id)
	delete(w.IsCharacter, id)
	delete(w.IsStage, id)
	delete(w.IsHitbox, id)
	delete(w.IsPlayer, id)
	delete(w.StageBlock, id)

	if w.PlayerID == id {
		w.PlayerID = 0
	}
}

// Exists reports whether the entity still carries any identifying tag
func (w *World) Exists(id EntityID) bool {
	if _, ok := w.IsCharacter[id]; ok {
		return true
	}
	if _, ok := w.IsStage[id]; ok {
		return true
	}
	_, ok := w.IsHitbox[id]
	return ok
}

// IsCharacterID reports whether id is a tracked character
func (w *World) IsCharacterID(id EntityID) bool {
	_, ok := w.IsCharacter[id]
	return ok
}

// IsStageID reports whether id is tagged as stage geometry
func (w *World) IsStageID(id EntityID) bool {
	_, ok := w.IsStage[id]
	return ok
}

// Characters returns character IDs in ascending order for deterministic iteration
func (w *World) Characters() []EntityID {
	return sortedKeys(w.IsCharacter)
}

// Hitboxes returns hitbox IDs in ascending order
func (w *World) Hitboxes() []EntityID {
	return sortedKeys(w.IsHitbox)
}

// StageBlocks returns stage block IDs in ascending order
func (w *World) StageBlocks() []EntityID {
	return sortedKeys(w.IsStage)
}

// FindCharacter returns the character with the given fighter name
func (w *World) FindCharacter(name string) (EntityID, bool) {
	for _, id := range w.Characters() {
		if f := w.Fighter[id]; f != nil && f.Name == name {
			return id, true
		}
	}
	return 0, false
}

// CharacterNear returns the character closest to p within radius
func (w *World) CharacterNear(p entity.Vec2, radius float64) (EntityID, bool) {
	var best EntityID
	bestDist := radius
	found := false
	for _, id := range w.Characters() {
		b := w.Body[id]
		if b == nil {
			continue
		}
		if d := b.Position.Sub(p).Len(); d < bestDist || (!found && d == bestDist) {
			best, bestDist, found = id, d, true
		}
	}
	return best, found
}

func sortedKeys(m map[EntityID]struct{}) []EntityID {
	ids := make([]EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
