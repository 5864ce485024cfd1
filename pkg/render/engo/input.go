// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-spacerun/pkg/engine"
)

// Controller is the part of the game runner the graphical client drives
type Controller interface {
	Submit(intent engine.Intent) bool
	Restart() bool
}

// Button names registered with engo.Input
const (
	ButtonThrustUp    = "thrustUp"
	ButtonThrustDown  = "thrustDown"
	ButtonRotateLeft  = "rotateLeft"
	ButtonRotateRight = "rotateRight"
	ButtonFire        = "fire"
	ButtonRestart     = "restart"
	ButtonQuit        = "quit"
)

// intentButtons fixes the order buttons are polled in within one update
var intentButtons = []struct {
	name   string
	intent engine.Intent
}{
	{ButtonThrustUp, engine.ThrustUp},
	{ButtonThrustDown, engine.ThrustDown},
	{ButtonRotateLeft, engine.RotateLeft},
	{ButtonRotateRight, engine.RotateRight},
	{ButtonFire, engine.Fire},
}

// buttons reports key-up transitions by button name
type buttons interface {
	JustReleased(name string) bool
}

type engoButtons struct{}

func (engoButtons) JustReleased(name string) bool {
	return engo.Input.Button(name).JustReleased()
}

// InputSystem turns released keys into intents. Every key release is one
// discrete action, so holding a key does not repeat it.
type InputSystem struct {
	controller Controller
	buttons    buttons
	quit       func()
}

// NewInputSystem creates an input system; quit is called on the quit button
func NewInputSystem(controller Controller, b buttons, quit func()) *InputSystem {
	return &InputSystem{
		controller: controller,
		buttons:    b,
		quit:       quit,
	}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(basic ecs.BasicEntity) {}

// Update forwards the keys released since the last frame
func (is *InputSystem) Update(dt float32) {
	if is.buttons.JustReleased(ButtonQuit) {
		if is.quit != nil {
			is.quit()
		}
		return
	}
	if is.controller == nil {
		return
	}
	for _, b := range intentButtons {
		if is.buttons.JustReleased(b.name) {
			is.controller.Submit(b.intent)
		}
	}
	if is.buttons.JustReleased(ButtonRestart) {
		is.controller.Restart()
	}
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	engo.Input.RegisterButton(ButtonThrustUp, engo.KeyW, engo.KeyArrowUp)
	engo.Input.RegisterButton(ButtonThrustDown, engo.KeyS, engo.KeyArrowDown)
	engo.Input.RegisterButton(ButtonRotateLeft, engo.KeyA, engo.KeyArrowLeft)
	engo.Input.RegisterButton(ButtonRotateRight, engo.KeyD, engo.KeyArrowRight)
	engo.Input.RegisterButton(ButtonFire, engo.KeySpace)
	engo.Input.RegisterButton(ButtonRestart, engo.KeyR)
	engo.Input.RegisterButton(ButtonQuit, engo.KeyEscape)
}
