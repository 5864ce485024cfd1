// pkg/render/engo/input_test.go
package engo

import (
	"testing"

	"github.com/opd-ai/go-spacerun/pkg/engine"
)

type fakeButtons map[string]bool

func (f fakeButtons) JustReleased(name string) bool {
	return f[name]
}

type fakeController struct {
	intents  []engine.Intent
	restarts int
}

func (f *fakeController) Submit(intent engine.Intent) bool {
	f.intents = append(f.intents, intent)
	return true
}

func (f *fakeController) Restart() bool {
	f.restarts++
	return true
}

func TestInputSystem_Update(t *testing.T) {
	tests := []struct {
		name         string
		released     fakeButtons
		wantIntents  []engine.Intent
		wantRestarts int
		wantQuit     bool
	}{
		{"nothing_released", fakeButtons{}, nil, 0, false},
		{"fire", fakeButtons{ButtonFire: true}, []engine.Intent{engine.Fire}, 0, false},
		{
			"several_keys_in_fixed_order",
			fakeButtons{ButtonFire: true, ButtonThrustUp: true, ButtonRotateLeft: true},
			[]engine.Intent{engine.ThrustUp, engine.RotateLeft, engine.Fire},
			0, false,
		},
		{"restart", fakeButtons{ButtonRestart: true}, nil, 1, false},
		{"quit_skips_everything_else", fakeButtons{ButtonQuit: true, ButtonFire: true}, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := &fakeController{}
			quit := false
			is := NewInputSystem(controller, tt.released, func() { quit = true })

			is.Update(0.016)

			if len(controller.intents) != len(tt.wantIntents) {
				t.Fatalf("Expected intents %v, got %v", tt.wantIntents, controller.intents)
			}
			for i := range tt.wantIntents {
				if controller.intents[i] != tt.wantIntents[i] {
					t.Errorf("Intent %d: expected %v, got %v", i, tt.wantIntents[i], controller.intents[i])
				}
			}
			if controller.restarts != tt.wantRestarts {
				t.Errorf("Expected %d restarts, got %d", tt.wantRestarts, controller.restarts)
			}
			if quit != tt.wantQuit {
				t.Errorf("Expected quit %v, got %v", tt.wantQuit, quit)
			}
		})
	}
}

func TestInputSystem_NilController(t *testing.T) {
	is := NewInputSystem(nil, fakeButtons{ButtonFire: true}, nil)
	is.Update(0.016)
}
