// Package input maps keyboard and mouse events onto the camera and picker.
package input

import (
	"fmt"
	"strings"

	"mesh-picker/internal/camera"
	"mesh-picker/internal/mathutil"
	"mesh-picker/internal/picking"
	"mesh-picker/internal/scene"
)

const (
	// DefaultWalkSpeed is world units per second for walk and strafe keys.
	DefaultWalkSpeed = 10.0
	// DefaultMouseDegrees is the rotation per pixel of mouse drag.
	DefaultMouseDegrees = 0.25
)

// Controller owns the per-window input state and drives one camera.
type Controller struct {
	Camera    *camera.Camera
	Scene     *scene.Scene
	Highlight *scene.Highlight

	Width, Height int
	WalkSpeed     float64
	MouseDegrees  float64

	dragging     bool
	lastX, lastY float64
}

// NewController wires a camera, scene, and highlight for a width×height viewport
// and sets the camera lens to match the viewport aspect.
func NewController(cam *camera.Camera, sc *scene.Scene, hl *scene.Highlight, width, height int) *Controller {
	c := &Controller{
		Camera:       cam,
		Scene:        sc,
		Highlight:    hl,
		WalkSpeed:    DefaultWalkSpeed,
		MouseDegrees: DefaultMouseDegrees,
	}
	c.Resize(width, height)
	return c
}

// Resize updates the viewport and re-applies the lens with the new aspect ratio.
func (c *Controller) Resize(width, height int) {
	c.Width, c.Height = width, height
	c.Camera.SetLens(c.Camera.FovY(), float64(width)/float64(height), c.Camera.NearZ(), c.Camera.FarZ())
}

// Key applies a held key for dt seconds. Unknown keys return an error.
func (c *Controller) Key(key string, dt float64) error {
	d := c.WalkSpeed * dt
	switch strings.ToLower(key) {
	case "w":
		c.Camera.Walk(d)
	case "s":
		c.Camera.Walk(-d)
	case "a":
		c.Camera.Strafe(-d)
	case "d":
		c.Camera.Strafe(d)
	default:
		return fmt.Errorf("input: unknown key %q", key)
	}
	return nil
}

// MouseDown starts a drag at (x, y).
func (c *Controller) MouseDown(x, y float64) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// MouseUp ends a drag.
func (c *Controller) MouseUp() {
	c.dragging = false
}

// MouseMove pitches and yaws the camera by the motion since the last event
// while a drag is active.
func (c *Controller) MouseMove(x, y float64) {
	if c.dragging {
		dx := mathutil.Deg2Rad(c.MouseDegrees * (x - c.lastX))
		dy := mathutil.Deg2Rad(c.MouseDegrees * (y - c.lastY))
		c.Camera.Pitch(dy)
		c.Camera.RotateY(dx)
	}
	c.lastX, c.lastY = x, y
}

// RightClick picks at (x, y) among the scene's pickable objects and updates the highlight.
func (c *Controller) RightClick(x, y float64) picking.Result {
	c.Camera.UpdateViewMatrix()
	res := picking.Pick(x, y, c.Width, c.Height, c.Camera, c.Scene.Pickables())
	res.Apply(c.Highlight)
	return res
}

// Event is one scripted input step. Exactly one of Key, Drag, or Click is set.
type Event struct {
	Key   string    `json:"key,omitempty"`
	DT    float64   `json:"dt,omitempty"`    // seconds the key is held
	Drag  []float64 `json:"drag,omitempty"`  // dx, dy in pixels
	Click []float64 `json:"click,omitempty"` // x, y in pixels, right button
}

// Apply replays ev. A click returns its pick result.
func (c *Controller) Apply(ev Event) (*picking.Result, error) {
	switch {
	case ev.Key != "":
		return nil, c.Key(ev.Key, ev.DT)
	case len(ev.Drag) == 2:
		x, y := c.lastX, c.lastY
		c.MouseDown(x, y)
		c.MouseMove(x+ev.Drag[0], y+ev.Drag[1])
		c.MouseUp()
		return nil, nil
	case len(ev.Click) == 2:
		res := c.RightClick(ev.Click[0], ev.Click[1])
		return &res, nil
	}
	return nil, fmt.Errorf("input: empty or malformed event %+v", ev)
}
