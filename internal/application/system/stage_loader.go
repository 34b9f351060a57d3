package system

import (
	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/ecs"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage and creates its block entities
func LoadStage(w *ecs.World, cfg *config.StageConfig) *entity.Stage {
	stage := cfg.ToStage()
	w.CreateStage(stage)
	return stage
}

// SpawnRoster creates every character of the roster at its stage spawn point.
// IDs are returned in roster order.
func SpawnRoster(w *ecs.World, roster *config.RosterConfig, stage *entity.Stage) []entity.EntityID {
	if roster == nil {
		return nil
	}

	ids := make([]entity.EntityID, 0, len(roster.Characters))
	for _, c := range roster.Characters {
		spawn := c.Spawn
		if spawn == "" {
			spawn = c.Name
		}
		ids = append(ids, w.CreateCharacter(ecs.CharacterConfig{
			Name:     c.Name,
			Position: stage.Spawn(spawn),
			Size:     c.Size,
			Tunables: c.Movement,
			Attack:   c.Attack,
			Padding:  c.Padding,
			IsPlayer: c.Player,
		}))
	}
	return ids
}
