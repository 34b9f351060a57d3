package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

const stickDeadzone = 0.1

// InputSystem handles player input
type InputSystem struct {
	config *config.InputConfig

	// Stick Y of the previous frame, +Y up
	lastStickY float64
}

// NewInputSystem creates a new input system
func NewInputSystem(cfg *config.InputConfig) *InputSystem {
	if cfg == nil {
		def := config.DefaultInputConfig()
		cfg = &def
	}
	return &InputSystem{config: cfg}
}

// InputState holds the current raw input state
type InputState struct {
	Left          bool
	Right         bool
	JumpPressed   bool
	FastfallHeld  bool
	AttackPressed bool
	StickActive   bool
	StickX        float64
	StickY        float64 // +Y up
	TogglePressed bool
	MouseX        int
	MouseY        int
	MouseClick    bool
}

// GetInput reads the current input state from the keyboard and the first gamepad
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	in := InputState{
		Left:          ebiten.IsKeyPressed(ebiten.KeyA),
		Right:         ebiten.IsKeyPressed(ebiten.KeyD),
		JumpPressed:   inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		FastfallHeld:  ebiten.IsKeyPressed(ebiten.KeyS),
		AttackPressed: inpututil.IsKeyJustPressed(ebiten.KeyJ),
		TogglePressed: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		MouseX:        mx,
		MouseY:        my,
		MouseClick:    inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 || !ebiten.IsStandardGamepadLayoutAvailable(ids[0]) {
		return in
	}
	pad := ids[0]

	x := ebiten.StandardGamepadAxisValue(pad, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := -ebiten.StandardGamepadAxisValue(pad, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Abs(x) > stickDeadzone || math.Abs(y) > stickDeadzone {
		in.StickActive = true
		in.StickX = x
		in.StickY = y
	}

	in.JumpPressed = in.JumpPressed ||
		inpututil.IsStandardGamepadButtonJustPressed(pad, ebiten.StandardGamepadButtonRightLeft) ||
		inpututil.IsStandardGamepadButtonJustPressed(pad, ebiten.StandardGamepadButtonRightTop)
	in.AttackPressed = in.AttackPressed ||
		inpututil.IsStandardGamepadButtonJustPressed(pad, ebiten.StandardGamepadButtonRightBottom)
	in.TogglePressed = in.TogglePressed ||
		inpututil.IsStandardGamepadButtonJustPressed(pad, ebiten.StandardGamepadButtonCenterRight)

	return in
}

// Intent maps raw input to a normalized intent. The stick fastfalls only on a
// downward flick past the threshold; the keyboard overrides the stick axis.
func (s *InputSystem) Intent(in InputState, dt float64) entity.Intent {
	var out entity.Intent

	if in.StickActive {
		out.DesiredX = entity.Clamp(in.StickX, -1, 1)

		flick := in.StickY - s.lastStickY
		if in.StickY < -s.config.FastfallThreshold && flick < -s.config.StickFlickSpeed*dt {
			out.Fastfall = true
		}
	}
	s.lastStickY = in.StickY

	dir := 0.0
	if in.Left {
		dir--
	}
	if in.Right {
		dir++
	}
	if dir != 0 {
		out.DesiredX = dir
	}

	if in.FastfallHeld {
		out.Fastfall = true
	}
	out.Jump = in.JumpPressed
	out.Attack = in.AttackPressed

	return out
}
