package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-spacerun/pkg/config"
	"github.com/opd-ai/go-spacerun/pkg/engine"
	"github.com/opd-ai/go-spacerun/pkg/physics"
)

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

// newTestClient uses a 64x25 screen: 64x24 cells of field plus the HUD
// row, so one cell covers 16x32 field units.
func newTestClient(t *testing.T) (*Client, tcell.SimulationScreen, *fakeController) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(64, 25)

	controller := &fakeController{}
	client := New(screen, controller, config.DefaultConfig().Field, nil)
	return client, screen, controller
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.Screen, y int) string {
	cols, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < cols; x++ {
		b.WriteRune(runeAt(screen, x, y))
	}
	return b.String()
}

func TestClient_DrawsFrame(t *testing.T) {
	client, screen, _ := newTestClient(t)

	if err := client.HUD(engine.HUD{Fuel: 150, Ammo: 20, Health: 2, TimeLeft: 60}); err != nil {
		t.Fatal(err)
	}
	frame := engine.Frame{
		Ship:        engine.ShipState{Position: physics.Vector2D{X: 100, Y: 100}, Width: 40, Height: 50, Heading: 90},
		Projectiles: []engine.ProjectileState{{ID: 1, Position: physics.Vector2D{X: 500, Y: 200}}},
		Obstacles: []engine.ObstacleState{
			{ID: 2, Alive: true, Bounds: physics.Rect{X: 300, Y: 300, Width: 30, Height: 30}},
			{ID: 3, Alive: false, Bounds: physics.Rect{X: 800, Y: 600, Width: 30, Height: 30}},
		},
	}
	if err := client.Frame(frame); err != nil {
		t.Fatal(err)
	}

	if got := runeAt(screen, 7, 3); got != '>' {
		t.Errorf("ship glyph %q, want '>'", got)
	}
	if got := runeAt(screen, 31, 6); got != '|' {
		t.Errorf("projectile glyph %q, want '|'", got)
	}
	if got := runeAt(screen, 18, 9); got != '#' {
		t.Errorf("obstacle glyph %q, want '#'", got)
	}
	if got := runeAt(screen, 50, 18); got == '#' {
		t.Error("hidden obstacle should not be drawn")
	}
	if hud := rowText(screen, 24); !strings.Contains(hud, "FUEL 150") {
		t.Errorf("HUD row %q", hud)
	}
}

func TestClient_GameOverOverlay(t *testing.T) {
	client, screen, _ := newTestClient(t)
	client.Frame(engine.Frame{SessionID: "one", Ship: engine.ShipState{Crashed: true, Width: 40, Height: 50}})

	if err := client.GameOver(engine.Summary{SessionID: "one", ElapsedSeconds: 9, FinalScore: 90, Reason: engine.ReasonCrash}); err != nil {
		t.Fatal(err)
	}
	if row := rowText(screen, 12); !strings.Contains(row, "Final score 90") {
		t.Errorf("summary row %q", row)
	}
	if got := runeAt(screen, 1, 0); got != '*' {
		t.Errorf("crashed ship glyph %q, want '*'", got)
	}

	// A frame from the next session clears the overlay.
	client.Frame(engine.Frame{SessionID: "two", Ship: engine.ShipState{Width: 40, Height: 50}})
	if row := rowText(screen, 12); strings.Contains(row, "Final score") {
		t.Errorf("overlay survived a restart: %q", row)
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name   string
		key    tcell.Key
		r      rune
		action action
		intent engine.Intent
	}{
		{"up", tcell.KeyUp, 0, actionIntent, engine.ThrustUp},
		{"down", tcell.KeyDown, 0, actionIntent, engine.ThrustDown},
		{"left", tcell.KeyLeft, 0, actionIntent, engine.RotateLeft},
		{"right", tcell.KeyRight, 0, actionIntent, engine.RotateRight},
		{"space", tcell.KeyRune, ' ', actionIntent, engine.Fire},
		{"w", tcell.KeyRune, 'w', actionIntent, engine.ThrustUp},
		{"d", tcell.KeyRune, 'd', actionIntent, engine.RotateRight},
		{"restart", tcell.KeyRune, 'r', actionRestart, 0},
		{"quit", tcell.KeyRune, 'q', actionQuit, 0},
		{"escape", tcell.KeyEscape, 0, actionQuit, 0},
		{"other", tcell.KeyRune, 'z', actionNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, intent := keyAction(tt.key, tt.r)
			if act != tt.action || (act == actionIntent && intent != tt.intent) {
				t.Errorf("keyAction() = %v, %v; want %v, %v", act, intent, tt.action, tt.intent)
			}
		})
	}
}

func TestClient_HandleKey(t *testing.T) {
	client, _, controller := newTestClient(t)

	if client.handleKey(tcell.KeyRune, ' ') {
		t.Error("fire should not quit")
	}
	client.handleKey(tcell.KeyLeft, 0)
	client.handleKey(tcell.KeyRune, 'r')

	if len(controller.intents) != 2 || controller.intents[0] != engine.Fire || controller.intents[1] != engine.RotateLeft {
		t.Errorf("unexpected intents %v", controller.intents)
	}
	if controller.restarts != 1 {
		t.Errorf("expected one restart, got %d", controller.restarts)
	}
	if !client.handleKey(tcell.KeyRune, 'q') {
		t.Error("q should quit")
	}
}
