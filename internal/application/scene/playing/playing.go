// Package playing provides the fight scene.
package playing

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/platfight/internal/application/camera"
	"github.com/younwookim/platfight/internal/application/match"
	"github.com/younwookim/platfight/internal/application/scene"
	"github.com/younwookim/platfight/internal/application/state"
	"github.com/younwookim/platfight/internal/application/system"
	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorStage     = color.RGBA{80, 80, 100, 255}
	colorPlayer    = color.RGBA{100, 200, 100, 255}
	colorDummy     = color.RGBA{200, 100, 100, 255}
	colorFastfall  = color.RGBA{100, 150, 255, 255}
	colorSelected  = color.RGBA{255, 215, 0, 255}
	colorHitbox    = color.RGBA{255, 100, 100, 96}
	colorEditorDim = color.RGBA{0, 0, 0, 96}
)

const defaultPickRadius = 50.0

// Playing is the fight scene
type Playing struct {
	config      *config.GameConfig
	stageName   string
	match       *match.Match
	camera      *camera.Camera
	state       state.GameState
	inputSystem *system.InputSystem
	screenW     int
	screenH     int
	dt          float64

	// Editor
	pickRadius float64
	selected   entity.EntityID

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene over a ready match.
// If recordPath is not empty, the player's intents are recorded.
func New(cfg *config.GameConfig, stageName string, m *match.Match, recordPath string) *Playing {
	phys := cfg.Physics
	tps := phys.Display.Framerate
	if tps <= 0 {
		tps = 60
	}

	p := &Playing{
		config:         cfg,
		stageName:      stageName,
		match:          m,
		camera:         camera.New(phys.Display.ScreenWidth, phys.Display.ScreenHeight, &phys.Camera),
		state:          state.StatePlaying,
		inputSystem:    system.NewInputSystem(&phys.Input),
		screenW:        phys.Display.ScreenWidth,
		screenH:        phys.Display.ScreenHeight,
		dt:             1.0 / float64(tps),
		pickRadius:     phys.Editor.PickRadius,
		recordFilename: recordPath,
	}
	if p.pickRadius <= 0 {
		p.pickRadius = defaultPickRadius
	}

	if recordPath != "" {
		p.recorder = NewRecorder(tps, stageName)
		log.Printf("Recording enabled: %s (%d tps)", recordPath, tps)
	}

	p.camera.Update(m.Snapshot())
	return p
}

// Update proceeds the fight (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	input := p.inputSystem.GetInput()

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	p.handleInput(input)
	return nil, nil // nil = stay on this scene
}

// handleInput runs one frame for an already sampled input
func (p *Playing) handleInput(input system.InputState) {
	if input.TogglePressed {
		p.toggleEditor()
	}

	switch p.state {
	case state.StatePlaying:
		p.updatePlaying(input)
	case state.StateEditor:
		p.updateEditor(input)
	}
}

func (p *Playing) toggleEditor() {
	p.state = p.state.Toggle()
	p.selected = 0
	log.Printf("State: %s", p.state)
}

func (p *Playing) updatePlaying(input system.InputState) {
	intent := p.inputSystem.Intent(input, p.dt)

	if p.recorder != nil {
		p.recorder.RecordFrame(intent)
	}

	p.match.SetIntent(p.match.World().PlayerID, intent)
	p.match.Step(p.dt)
	p.camera.Update(p.match.Snapshot())
}

// updateEditor picks the character under the cursor. Clicking empty space
// moves the picked character there.
func (p *Playing) updateEditor(input system.InputState) {
	if !input.MouseClick {
		return
	}
	pos := p.camera.ScreenToWorld(float64(input.MouseX), float64(input.MouseY))
	p.pickOrPlace(pos)
}

func (p *Playing) pickOrPlace(pos entity.Vec2) {
	w := p.match.World()
	if id, ok := w.CharacterNear(pos, p.pickRadius); ok {
		p.selected = id
		return
	}
	if p.selected != 0 && w.IsCharacterID(p.selected) {
		p.match.Teleport(p.selected, pos)
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the fight
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	snap := p.match.Snapshot()
	p.drawStage(screen)
	p.drawCharacters(screen, snap)
	p.drawHitboxes(screen, snap)
	p.drawPercentages(screen, snap)

	if p.state == state.StateEditor {
		p.drawEditorOverlay(screen)
	}
}

func (p *Playing) drawRect(screen *ebiten.Image, r entity.Rect, c color.Color) {
	lo := r.Min()
	// Top-left corner on screen is the world's min X, max Y
	x, y := p.camera.WorldToScreen(entity.Vec2{X: lo.X, Y: lo.Y + r.Size.Y})
	s := p.camera.Scale()
	ebitenutil.DrawRect(screen, x, y, r.Size.X*s, r.Size.Y*s, c)
}

func (p *Playing) drawStage(screen *ebiten.Image) {
	w := p.match.World()
	for _, id := range w.StageBlocks() {
		p.drawRect(screen, w.StageBlock[id], colorStage)
	}
}

func (p *Playing) drawCharacters(screen *ebiten.Image, snap match.Snapshot) {
	for _, c := range snap.Characters {
		clr := colorDummy
		switch {
		case c.ID == p.selected:
			clr = colorSelected
		case c.Phase == "Fastfalling":
			clr = colorFastfall
		case c.Player:
			clr = colorPlayer
		}
		p.drawRect(screen, entity.Rect{Center: c.Position, Size: c.Size}, clr)
	}
}

func (p *Playing) drawHitboxes(screen *ebiten.Image, snap match.Snapshot) {
	for _, hb := range snap.Hitboxes {
		p.drawRect(screen, hb.Rect, colorHitbox)
	}
}

func (p *Playing) drawPercentages(screen *ebiten.Image, snap match.Snapshot) {
	for i, c := range snap.Characters {
		text := fmt.Sprintf("%s: %.0f%%", c.Name, c.Percentage)
		ebitenutil.DebugPrintAt(screen, text, 10, 10+i*16)
	}
}

func (p *Playing) drawEditorOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), colorEditorDim)
	ebitenutil.DebugPrintAt(screen, "EDITOR - click a fighter to pick, click empty space to place, ESC to resume", 10, p.screenH-20)

	if p.selected == 0 {
		return
	}
	f := p.match.World().Fighter[p.selected]
	if f == nil {
		return
	}
	t, err := p.match.Tuning().Movement(f.Name)
	if err != nil {
		return
	}
	text := fmt.Sprintf("%s\nspeed floor %.0f  air %.0f  max air %.0f\njump %.0f  air jumps %d  walljump %t\ngravity %.0f  fastfall %.0f  min air time %.2fs",
		f.Name, t.SpeedFloor, t.SpeedAir, t.MaxSpeedAir,
		t.JumpBoost, t.MaxAirJumps, t.CanWalljump,
		t.NormalGravity, t.FastfallingGravity, t.MinAirTimeToFastfall)
	ebitenutil.DebugPrintAt(screen, text, p.screenW-360, 10)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	log.Printf("Entering fight on %s", p.stageName)
}

// OnExit saves any pending recording
func (p *Playing) OnExit() {
	if p.recorder != nil && p.recorder.FrameCount() > 0 {
		p.saveRecording()
	}
}

// State returns the current scene state
func (p *Playing) State() state.GameState {
	return p.state
}
