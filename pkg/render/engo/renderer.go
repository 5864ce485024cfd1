// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-spacerun/pkg/engine"
	"github.com/opd-ai/go-spacerun/pkg/entity"
	"github.com/opd-ai/go-spacerun/pkg/physics"
	"github.com/opd-ai/go-spacerun/pkg/render"
)

// spriteSystem is the part of common.RenderSystem the renderer uses
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

// EngoRenderer implements render.Renderer on top of the engo render system.
// As an ecs system it redraws whenever the display holds a newer frame.
type EngoRenderer struct {
	system  spriteSystem
	assets  *AssetManager
	camera  *CameraSystem
	display *Display
	version uint64

	ship        *sprite
	projectiles map[entity.ID]*sprite
	obstacles   map[entity.ID]*sprite
}

// NewEngoRenderer creates a renderer adding its sprites to system
func NewEngoRenderer(system spriteSystem, assets *AssetManager, camera *CameraSystem, display *Display) *EngoRenderer {
	return &EngoRenderer{
		system:      system,
		assets:      assets,
		camera:      camera,
		display:     display,
		projectiles: make(map[entity.ID]*sprite),
		obstacles:   make(map[entity.ID]*sprite),
	}
}

// Remove satisfies the ecs.System interface
func (r *EngoRenderer) Remove(basic ecs.BasicEntity) {}

// Update draws the latest frame if it changed since the last call
func (r *EngoRenderer) Update(dt float32) {
	if r.display == nil {
		return
	}
	frame, version := r.display.Latest()
	if version == r.version {
		return
	}
	r.version = version
	_ = render.Draw(r, frame)
}

// Clear implements render.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.projectiles {
		s.seen = false
	}
	for _, s := range r.obstacles {
		s.seen = false
	}
}

// RenderShip implements render.Renderer
func (r *EngoRenderer) RenderShip(ship engine.ShipState) {
	if r.ship == nil {
		r.ship = r.newSprite(SpriteShip)
	}
	r.place(r.ship, ship.Bounds())
	r.ship.Rotation = float32(normalizeDegrees(ship.Heading))
	r.ship.Position = rotatedOrigin(r.ship.Position, r.ship.Width, r.ship.Height, r.ship.Rotation)
	r.ship.Color = colorShip
	if ship.Crashed {
		r.ship.Color = colorWreck
	}
}

// RenderProjectile implements render.Renderer
func (r *EngoRenderer) RenderProjectile(projectile engine.ProjectileState) {
	s, ok := r.projectiles[projectile.ID]
	if !ok {
		s = r.newSprite(SpriteMissile)
		r.projectiles[projectile.ID] = s
	}
	r.place(s, projectile.Bounds())
	s.Rotation = float32(normalizeDegrees(projectile.Heading))
	s.Position = rotatedOrigin(s.Position, s.Width, s.Height, s.Rotation)
	s.Color = colorMissile
	s.seen = true
}

// RenderObstacle implements render.Renderer
func (r *EngoRenderer) RenderObstacle(obstacle engine.ObstacleState) {
	s, ok := r.obstacles[obstacle.ID]
	if !ok {
		s = r.newSprite(SpriteRock)
		r.obstacles[obstacle.ID] = s
	}
	r.place(s, obstacle.Bounds)
	s.Color = colorRock
	if obstacle.Hit {
		s.Color = colorWreck
	}
	s.seen = true
}

// Present implements render.Renderer by dropping sprites missing from the
// frame just drawn
func (r *EngoRenderer) Present() error {
	r.cleanup(r.projectiles)
	r.cleanup(r.obstacles)
	return nil
}

// Sprites returns how many projectile and obstacle sprites are live
func (r *EngoRenderer) Sprites() (projectiles, obstacles int) {
	return len(r.projectiles), len(r.obstacles)
}

func (r *EngoRenderer) cleanup(sprites map[entity.ID]*sprite) {
	for id, s := range sprites {
		if !s.seen {
			r.system.Remove(s.BasicEntity)
			delete(sprites, id)
		}
	}
}

func (r *EngoRenderer) newSprite(kind string) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	if r.assets != nil {
		s.Drawable = r.assets.Sprite(kind)
	}
	s.Color = color.White
	r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// place positions s over box and scales its texture to the box size
func (r *EngoRenderer) place(s *sprite, box physics.Rect) {
	s.Position, s.Width, s.Height = r.camera.WorldRect(box)
	s.Scale = engo.Point{X: 1, Y: 1}
	if s.Drawable != nil && s.Drawable.Width() > 0 && s.Drawable.Height() > 0 {
		s.Scale = engo.Point{X: s.Width / s.Drawable.Width(), Y: s.Height / s.Drawable.Height()}
	}
}

// rotatedOrigin returns where the top left corner of a width by height
// sprite must go so that rotating it clockwise by degrees around that corner
// keeps its center where the unrotated box had it
func rotatedOrigin(topLeft engo.Point, width, height, degrees float32) engo.Point {
	if degrees == 0 {
		return topLeft
	}
	rad := float64(degrees) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	hw, hh := float64(width)/2, float64(height)/2
	cx, cy := float64(topLeft.X)+hw, float64(topLeft.Y)+hh
	return engo.Point{
		X: float32(cx - (hw*cos - hh*sin)),
		Y: float32(cy - (hw*sin + hh*cos)),
	}
}

func normalizeDegrees(heading int) int {
	h := heading % 360
	if h < 0 {
		h += 360
	}
	return h
}
