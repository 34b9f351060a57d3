// Package camera frames every followed character on screen.
// It only reads snapshot positions and follow padding.
package camera

import (
	"math"

	"github.com/younwookim/platfight/internal/application/match"
	"github.com/younwookim/platfight/internal/domain/entity"
	"github.com/younwookim/platfight/internal/infrastructure/config"
)

// DefaultPadding frames characters when nobody is explicitly followed
const DefaultPadding = 250.0

// Frame returns the smallest rectangle holding every followed character
// plus its padding. When nobody is followed every character is framed
// with fallback padding. ok is false when there are no characters.
func Frame(chars []match.CharacterView, fallback float64) (r entity.Rect, ok bool) {
	lo := entity.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	hi := entity.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}

	extend := func(p entity.Vec2, pad float64) {
		ok = true
		lo.X = math.Min(lo.X, p.X-pad)
		lo.Y = math.Min(lo.Y, p.Y-pad)
		hi.X = math.Max(hi.X, p.X+pad)
		hi.Y = math.Max(hi.Y, p.Y+pad)
	}

	for _, c := range chars {
		if c.Padding > 0 {
			extend(c.Position, c.Padding)
		}
	}
	if !ok {
		for _, c := range chars {
			extend(c.Position, fallback)
		}
	}
	if !ok {
		return entity.Rect{}, false
	}

	return entity.Rect{
		Center: entity.Vec2{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2},
		Size:   hi.Sub(lo),
	}, true
}

// Fit grows r to the screen aspect ratio and to at least minWidth
func Fit(r entity.Rect, aspect, minWidth float64) entity.Rect {
	w, h := r.Size.X, r.Size.Y
	if w < minWidth {
		w = minWidth
	}
	if aspect > 0 {
		if w/h < aspect {
			w = h * aspect
		} else {
			h = w / aspect
		}
	}
	return entity.Rect{Center: r.Center, Size: entity.Vec2{X: w, Y: h}}
}

// Camera follows the frame with smoothing and maps world to screen
type Camera struct {
	screenW, screenH float64
	minWidth         float64
	padding          float64
	smooth           float64 // 0..1, higher follows faster

	view  entity.Rect
	ready bool
}

// New creates a camera for the given screen size
func New(screenW, screenH int, cfg *config.CameraConfig) *Camera {
	c := &Camera{
		screenW:  float64(screenW),
		screenH:  float64(screenH),
		minWidth: float64(screenW),
		padding:  DefaultPadding,
		smooth:   0.15,
	}
	if cfg != nil && cfg.MinWidth > 0 {
		c.minWidth = cfg.MinWidth
	}
	if cfg != nil && cfg.DefaultPadding > 0 {
		c.padding = cfg.DefaultPadding
	}
	c.view = entity.Rect{Size: entity.Vec2{X: c.screenW, Y: c.screenH}}
	return c
}

// SetSmooth sets the follow factor. Values <= 0 or >= 1 snap.
func (c *Camera) SetSmooth(f float64) {
	c.smooth = f
}

// Update moves the view toward the current frame
func (c *Camera) Update(snap match.Snapshot) {
	r, ok := Frame(snap.Characters, c.padding)
	if !ok {
		return
	}
	target := Fit(r, c.screenW/c.screenH, c.minWidth)

	if !c.ready || c.smooth <= 0 || c.smooth >= 1 {
		c.view = target
		c.ready = true
		return
	}
	c.view.Center = c.view.Center.Add(target.Center.Sub(c.view.Center).Scale(c.smooth))
	c.view.Size = c.view.Size.Add(target.Size.Sub(c.view.Size).Scale(c.smooth))
}

// View returns the world rectangle currently on screen
func (c *Camera) View() entity.Rect {
	return c.view
}

// Scale returns screen pixels per world unit
func (c *Camera) Scale() float64 {
	if c.view.Size.X == 0 {
		return 1
	}
	return c.screenW / c.view.Size.X
}

// WorldToScreen maps a world point to screen pixels. World Y points up.
func (c *Camera) WorldToScreen(p entity.Vec2) (float64, float64) {
	s := c.Scale()
	x := (p.X-c.view.Center.X)*s + c.screenW/2
	y := c.screenH/2 - (p.Y-c.view.Center.Y)*s
	return x, y
}

// ScreenToWorld maps screen pixels back to a world point
func (c *Camera) ScreenToWorld(x, y float64) entity.Vec2 {
	s := c.Scale()
	return entity.Vec2{
		X: (x-c.screenW/2)/s + c.view.Center.X,
		Y: (c.screenH/2-y)/s + c.view.Center.Y,
	}
}
