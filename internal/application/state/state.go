package state

// GameState represents what the fight screen is doing
type GameState int

const (
	// StatePlaying steps the simulation every frame
	StatePlaying GameState = iota
	// StateEditor pauses the simulation so characters can be picked and moved
	StateEditor
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateEditor:
		return "Editor"
	default:
		return "Unknown"
	}
}

// Toggle switches between playing and the editor
func (s GameState) Toggle() GameState {
	if s == StateEditor {
		return StatePlaying
	}
	return StateEditor
}

// Simulating reports whether the match should be stepped in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying
}
