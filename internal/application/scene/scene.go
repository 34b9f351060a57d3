// Package scene defines the Scene interface for game screens.
//
// The fight is a scene; menus or a character select would be others.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen driven by the window loop.
//
// The loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by one fixed step of dt seconds.
	// Returns the next scene if a transition is needed, nil to stay.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene or on shutdown.
	// Pending recordings are flushed here.
	OnExit()
}
