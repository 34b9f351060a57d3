package config

import "github.com/younwookim/platfight/internal/domain/entity"

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID       string                    `json:"id"`
	Name     string                    `json:"name"`
	Friction float64                   `json:"friction"`
	Blocks   []RectConfig              `json:"blocks"`
	Spawns   map[string]PositionConfig `json:"spawns"`
}

type PositionConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RectConfig is a block given by its center and size
type RectConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ToStage converts the config into stage geometry
func (c *StageConfig) ToStage() *entity.Stage {
	s := &entity.Stage{
		Name:     c.Name,
		Friction: c.Friction,
		Blocks:   make([]entity.Rect, 0, len(c.Blocks)),
		Spawns:   make(map[string]entity.Vec2, len(c.Spawns)),
	}
	for _, b := range c.Blocks {
		s.Blocks = append(s.Blocks, entity.Rect{
			Center: entity.Vec2{X: b.X, Y: b.Y},
			Size:   entity.Vec2{X: b.W, Y: b.H},
		})
	}
	for name, p := range c.Spawns {
		s.Spawns[name] = entity.Vec2{X: p.X, Y: p.Y}
	}
	return s
}
