package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_String(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{StatePlaying, "Playing"},
		{StateEditor, "Editor"},
		{GameState(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestGameStateConstants(t *testing.T) {
	// Playing is the zero value
	var s GameState
	assert.Equal(t, StatePlaying, s)
	assert.Equal(t, GameState(1), StateEditor)
}

func TestGameState_Toggle(t *testing.T) {
	assert.Equal(t, StateEditor, StatePlaying.Toggle())
	assert.Equal(t, StatePlaying, StateEditor.Toggle())
	assert.Equal(t, StatePlaying, StatePlaying.Toggle().Toggle())
}

func TestGameState_Simulating(t *testing.T) {
	assert.True(t, StatePlaying.Simulating())
	assert.False(t, StateEditor.Simulating())
}
