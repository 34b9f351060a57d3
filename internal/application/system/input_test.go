package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platfight/internal/infrastructure/config"
)

func createTestInputConfig() *config.InputConfig {
	return &config.InputConfig{
		FastfallThreshold: 0.5,
		StickFlickSpeed:   0.1,
	}
}

func TestNewInputSystem(t *testing.T) {
	cfg := createTestInputConfig()

	sys := NewInputSystem(cfg)

	require.NotNil(t, sys)
	assert.Equal(t, cfg, sys.config)
}

func TestNewInputSystem_NilConfigUsesDefaults(t *testing.T) {
	sys := NewInputSystem(nil)

	require.NotNil(t, sys.config)
	assert.Equal(t, 0.5, sys.config.FastfallThreshold)
}

func TestInputSystem_Keyboard(t *testing.T) {
	tests := []struct {
		name     string
		input    InputState
		desiredX float64
		jump     bool
		fastfall bool
		attack   bool
	}{
		{name: "idle", input: InputState{}},
		{name: "left", input: InputState{Left: true}, desiredX: -1},
		{name: "right", input: InputState{Right: true}, desiredX: 1},
		{name: "both cancel", input: InputState{Left: true, Right: true}},
		{name: "jump", input: InputState{JumpPressed: true}, jump: true},
		{name: "fastfall held", input: InputState{FastfallHeld: true}, fastfall: true},
		{name: "attack", input: InputState{AttackPressed: true}, attack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewInputSystem(createTestInputConfig())
			intent := sys.Intent(tt.input, 1.0/60.0)

			assert.Equal(t, tt.desiredX, intent.DesiredX)
			assert.Equal(t, tt.jump, intent.Jump)
			assert.Equal(t, tt.fastfall, intent.Fastfall)
			assert.Equal(t, tt.attack, intent.Attack)
		})
	}
}

func TestInputSystem_StickAxis(t *testing.T) {
	sys := NewInputSystem(createTestInputConfig())

	intent := sys.Intent(InputState{StickActive: true, StickX: 0.4}, 1.0/60.0)
	assert.Equal(t, 0.4, intent.DesiredX)

	intent = sys.Intent(InputState{StickActive: true, StickX: 0.4, Right: true}, 1.0/60.0)
	assert.Equal(t, 1.0, intent.DesiredX, "keyboard overrides the stick")
}

func TestInputSystem_StickFlickFastfall(t *testing.T) {
	dt := 1.0 / 60.0
	sys := NewInputSystem(createTestInputConfig())

	// Neutral frame, then a flick straight down
	assert.False(t, sys.Intent(InputState{StickActive: true}, dt).Fastfall)
	assert.True(t, sys.Intent(InputState{StickActive: true, StickY: -0.9}, dt).Fastfall)

	// Holding the stick down is not a flick
	assert.False(t, sys.Intent(InputState{StickActive: true, StickY: -0.9}, dt).Fastfall)
}

func TestInputSystem_StickBelowThresholdDoesNotFastfall(t *testing.T) {
	dt := 1.0 / 60.0
	sys := NewInputSystem(createTestInputConfig())

	sys.Intent(InputState{StickActive: true}, dt)
	assert.False(t, sys.Intent(InputState{StickActive: true, StickY: -0.4}, dt).Fastfall)
}
