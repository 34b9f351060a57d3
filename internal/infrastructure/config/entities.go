package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/younwookim/platfight/internal/domain/entity"
)

// RosterConfig is the root config for characters.yaml
type RosterConfig struct {
	Characters []CharacterSpec `yaml:"characters"`
}

// CharacterSpec describes one fighter to spawn.
// Omitted movement and attack fields keep their stock values.
type CharacterSpec struct {
	Name     string                `yaml:"name"`
	Player   bool                  `yaml:"player"`
	Spawn    string                `yaml:"spawn"` // stage spawn point name
	Size     entity.Vec2           `yaml:"size"`
	Padding  float64               `yaml:"padding"` // camera follow padding, 0 = not followed
	Movement entity.Tunables       `yaml:"movement"`
	Attack   entity.AttackTunables `yaml:"attack"`
}

// UnmarshalYAML fills defaults before decoding so partial specs are valid
func (c *CharacterSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain CharacterSpec
	spec := plain{
		Size:     entity.Vec2{X: 100, Y: 100},
		Movement: entity.DefaultTunables(),
		Attack:   entity.DefaultAttackTunables(),
	}
	if err := value.Decode(&spec); err != nil {
		return err
	}
	*c = CharacterSpec(spec)
	return nil
}

// Validate checks names and tunables
func (r *RosterConfig) Validate() error {
	seen := make(map[string]struct{}, len(r.Characters))
	for i, c := range r.Characters {
		if c.Name == "" {
			return fmt.Errorf("character %d: missing name", i)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("character %q: duplicate name", c.Name)
		}
		seen[c.Name] = struct{}{}

		if err := c.Movement.Validate(); err != nil {
			return fmt.Errorf("character %q: %w", c.Name, err)
		}
		if err := c.Attack.Validate(); err != nil {
			return fmt.Errorf("character %q: %w", c.Name, err)
		}
	}
	return nil
}

// Find returns the spec with the given name
func (r *RosterConfig) Find(name string) (CharacterSpec, bool) {
	for _, c := range r.Characters {
		if c.Name == name {
			return c, true
		}
	}
	return CharacterSpec{}, false
}
