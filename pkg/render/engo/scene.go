// pkg/render/engo/scene.go
package engo

import (
	"context"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/engine"
	"github.com/opd-ai/go-spacerun/pkg/logging"
)

// Display is the engine.Sink side of the graphical client. The simulation
// writes into it from the clock goroutine and the engo systems read the
// latest state on the render thread.
type Display struct {
	mu      sync.Mutex
	frame   engine.Frame
	hud     engine.HUD
	summary *engine.Summary
	version uint64
}

// NewDisplay creates an empty display
func NewDisplay() *Display {
	return &Display{}
}

// Frame implements engine.Sink. The first frame of a new session clears the
// previous game over overlay.
func (d *Display) Frame(frame engine.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.summary != nil && frame.SessionID != d.summary.SessionID {
		d.summary = nil
	}
	d.frame = frame
	d.version++
	return nil
}

// HUD implements engine.Sink
func (d *Display) HUD(hud engine.HUD) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hud = hud
	d.version++
	return nil
}

// GameOver implements engine.Sink
func (d *Display) GameOver(summary engine.Summary) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.summary = &summary
	d.version++
	return nil
}

// Latest returns the newest frame together with a version that changes
// whenever anything was written
func (d *Display) Latest() (engine.Frame, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame, d.version
}

// Status returns the HUD and the game over summary, if any
func (d *Display) Status() (engine.HUD, *engine.Summary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.summary == nil {
		return d.hud, nil
	}
	s := *d.summary
	return d.hud, &s
}

// GameScene is the engo scene that shows one Display
type GameScene struct {
	ctx        context.Context
	display    *Display
	controller Controller
	field      config.FieldConfig
	logger     *logging.Logger

	assets   *AssetManager
	camera   *CameraSystem
	renderer *EngoRenderer
	input    *InputSystem
	hud      *HUDSystem
}

// NewGameScene creates a scene drawing display and sending keys to controller
func NewGameScene(ctx context.Context, display *Display, controller Controller, field config.FieldConfig, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		ctx:        ctx,
		display:    display,
		controller: controller,
		field:      field,
		logger:     logger,
		assets:     NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "SpacerunScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	if err := scene.assets.Preload(); err != nil {
		scene.logger.Error(scene.ctx, "Failed to preload assets", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		scene.logger.Warn(scene.ctx, "Scene updater is not an ecs world")
		return
	}

	common.SetBackground(colorBackground)
	if err := scene.assets.Load(hudFontSize); err != nil {
		scene.logger.Error(scene.ctx, "Failed to load assets", err)
	}

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.camera = NewCameraSystem(scene.field.Width, scene.field.Height)
	world.AddSystem(scene.camera)

	scene.renderer = NewEngoRenderer(renderSystem, scene.assets, scene.camera, scene.display)
	world.AddSystem(scene.renderer)

	scene.hud = NewHUDSystem(renderSystem, scene.assets.Font(), scene.display)
	world.AddSystem(scene.hud)

	SetupInputBindings()
	scene.input = NewInputSystem(scene.controller, engoButtons{}, engo.Exit)
	world.AddSystem(scene.input)

	scene.logger.Info(scene.ctx, "Graphical client ready",
		"field_width", scene.field.Width,
		"field_height", scene.field.Height,
	)
}

// Exit is called when the window closes (required by Engo)
func (scene *GameScene) Exit() {
	scene.logger.Info(scene.ctx, "Graphical client closed")
}
