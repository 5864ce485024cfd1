// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-spacerun/pkg/physics"
)

// CameraSystem maps field coordinates onto the game canvas. The whole field
// is always visible, scaled to fit and centered.
type CameraSystem struct {
	fieldWidth  float64
	fieldHeight float64

	viewWidth  float64
	viewHeight float64

	zoom    float64
	minZoom float64
	maxZoom float64
	offset  physics.Vector2D
}

// NewCameraSystem creates a camera for a field of the given size
func NewCameraSystem(fieldWidth, fieldHeight float64) *CameraSystem {
	cs := &CameraSystem{
		fieldWidth:  fieldWidth,
		fieldHeight: fieldHeight,
		zoom:        1.0,
		minZoom:     0.1,
		maxZoom:     3.0,
	}
	cs.Fit(fieldWidth, fieldHeight)
	return cs
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update refits the field whenever the canvas changes size
func (cs *CameraSystem) Update(dt float32) {
	w, h := float64(engo.GameWidth()), float64(engo.GameHeight())
	if w > 0 && h > 0 && (w != cs.viewWidth || h != cs.viewHeight) {
		cs.Fit(w, h)
	}
}

// Fit scales the field into a canvas of width by height
func (cs *CameraSystem) Fit(width, height float64) {
	cs.viewWidth, cs.viewHeight = width, height
	if cs.fieldWidth <= 0 || cs.fieldHeight <= 0 {
		cs.zoom = 1.0
		cs.offset = physics.Vector2D{}
		return
	}

	zoom := width / cs.fieldWidth
	if z := height / cs.fieldHeight; z < zoom {
		zoom = z
	}
	cs.zoom = cs.clampZoom(zoom)
	cs.offset = physics.Vector2D{
		X: (width - cs.fieldWidth*cs.zoom) / 2,
		Y: (height - cs.fieldHeight*cs.zoom) / 2,
	}
}

// clampZoom ensures zoom stays within valid bounds
func (cs *CameraSystem) clampZoom(zoom float64) float64 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// Zoom returns the current scale factor
func (cs *CameraSystem) Zoom() float64 {
	return cs.zoom
}

// WorldToScreen converts field coordinates to canvas coordinates
func (cs *CameraSystem) WorldToScreen(world physics.Vector2D) engo.Point {
	return engo.Point{
		X: float32(world.X*cs.zoom + cs.offset.X),
		Y: float32(world.Y*cs.zoom + cs.offset.Y),
	}
}

// ScreenToWorld converts canvas coordinates to field coordinates
func (cs *CameraSystem) ScreenToWorld(screen engo.Point) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(screen.X) - cs.offset.X) / cs.zoom,
		Y: (float64(screen.Y) - cs.offset.Y) / cs.zoom,
	}
}

// WorldRect converts a field box into a canvas position and size
func (cs *CameraSystem) WorldRect(r physics.Rect) (engo.Point, float32, float32) {
	return cs.WorldToScreen(r.Position()), float32(r.Width * cs.zoom), float32(r.Height * cs.zoom)
}
