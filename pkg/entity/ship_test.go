package entity

import (
	"testing"

	"github.com/opd-ai/go-spacerun/pkg/physics"
)

func newTestShip(fuel, ammo, health int) *Ship {
	return NewShip(physics.Vector2D{X: 100, Y: 200}, fuel, ammo, health, DefaultShipStats())
}

// TestNewShip tests the NewShip constructor function
func TestNewShip(t *testing.T) {
	ship := newTestShip(150, 20, 2)

	if ship.Position != (physics.Vector2D{X: 100, Y: 200}) {
		t.Errorf("Expected position {100 200}, got %v", ship.Position)
	}
	if ship.Fuel != 150 || ship.Ammo != 20 || ship.Health != 2 {
		t.Errorf("Unexpected supplies: fuel=%d ammo=%d health=%d", ship.Fuel, ship.Ammo, ship.Health)
	}
	if ship.Velocity != 0 || ship.Heading != 0 {
		t.Errorf("Expected ship at rest, got velocity=%d heading=%d", ship.Velocity, ship.Heading)
	}
	if ship.Thrust != ship.Stats.ThrustMin {
		t.Errorf("Expected thrust %d, got %d", ship.Stats.ThrustMin, ship.Thrust)
	}
}

func TestNewShip_ClampsNegativeSupplies(t *testing.T) {
	ship := newTestShip(-1, -5, -3)
	if ship.Fuel != 0 || ship.Ammo != 0 || ship.Health != 0 {
		t.Errorf("Expected supplies clamped to zero, got fuel=%d ammo=%d health=%d", ship.Fuel, ship.Ammo, ship.Health)
	}
}

func TestShip_ThrustUp(t *testing.T) {
	ship := newTestShip(2, 0, 0)

	if !ship.ThrustUp() {
		t.Fatal("ThrustUp() with fuel should succeed")
	}
	if ship.Fuel != 1 || ship.Velocity != 1 {
		t.Errorf("Expected fuel=1 velocity=1, got fuel=%d velocity=%d", ship.Fuel, ship.Velocity)
	}
	if ship.Thrust != 18 {
		t.Errorf("Expected thrust 18, got %d", ship.Thrust)
	}

	ship.ThrustUp()
	if ship.ThrustUp() {
		t.Error("ThrustUp() with empty tank should fail")
	}
	if ship.Fuel != 0 || ship.Velocity != 2 {
		t.Errorf("Expected fuel=0 velocity=2, got fuel=%d velocity=%d", ship.Fuel, ship.Velocity)
	}
}

func TestShip_ThrustClamp(t *testing.T) {
	ship := newTestShip(100, 0, 0)
	for i := 0; i < 40; i++ {
		ship.ThrustUp()
	}
	if ship.Thrust != ship.Stats.ThrustMax {
		t.Errorf("Expected thrust capped at %d, got %d", ship.Stats.ThrustMax, ship.Thrust)
	}
	for i := 0; i < 40; i++ {
		ship.ThrustDown()
	}
	if ship.Thrust != ship.Stats.ThrustMin {
		t.Errorf("Expected thrust floored at %d, got %d", ship.Stats.ThrustMin, ship.Thrust)
	}
}

func TestShip_ThrustDown_AtRest(t *testing.T) {
	tests := []struct {
		name     string
		velocity int
	}{
		{"zero_velocity", 0},
		{"negative_velocity", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship := newTestShip(10, 0, 0)
			ship.Velocity = tt.velocity

			if ship.ThrustDown() {
				t.Error("ThrustDown() should be a no-op when not moving forward")
			}
			if ship.Fuel != 10 {
				t.Errorf("Expected fuel untouched, got %d", ship.Fuel)
			}
			if ship.Velocity != tt.velocity {
				t.Errorf("Expected velocity %d, got %d", tt.velocity, ship.Velocity)
			}
		})
	}
}

func TestShip_Rotate(t *testing.T) {
	ship := newTestShip(3, 0, 0)

	ship.RotateRight()
	ship.RotateRight()
	ship.RotateLeft()
	if ship.Heading != 15 {
		t.Errorf("Expected heading 15, got %d", ship.Heading)
	}
	if ship.Fuel != 0 {
		t.Errorf("Expected fuel 0, got %d", ship.Fuel)
	}
	if ship.RotateLeft() {
		t.Error("Rotation without fuel should fail")
	}
	if ship.Heading != 15 {
		t.Errorf("Heading changed without fuel: %d", ship.Heading)
	}
}

func TestShip_Rotate_Unbounded(t *testing.T) {
	ship := newTestShip(100, 0, 0)
	for i := 0; i < 30; i++ {
		ship.RotateRight()
	}
	if ship.Heading != 450 {
		t.Errorf("Expected accumulated heading 450, got %d", ship.Heading)
	}
}

func TestShip_Fire(t *testing.T) {
	ship := newTestShip(0, 1, 0)
	ship.Heading = -45

	p := ship.Fire(ID(7))
	if p == nil {
		t.Fatal("Fire() with ammo returned nil")
	}
	if ship.Ammo != 0 {
		t.Errorf("Expected ammo 0, got %d", ship.Ammo)
	}
	if p.ID != 7 || !p.Alive {
		t.Errorf("Unexpected projectile: %+v", p)
	}
	if p.Heading() != -45 {
		t.Errorf("Expected projectile heading -45, got %d", p.Heading())
	}
	want := physics.Vector2D{X: 117, Y: 200}
	if p.Position != want {
		t.Errorf("Expected muzzle position %v, got %v", want, p.Position)
	}

	if ship.Fire(ID(8)) != nil {
		t.Error("Fire() with empty magazine should return nil")
	}
	if ship.Ammo != 0 {
		t.Errorf("Ammo went negative: %d", ship.Ammo)
	}
}

func TestShip_TakeHit(t *testing.T) {
	ship := newTestShip(0, 0, 1)
	if !ship.TakeHit() {
		t.Error("TakeHit() with health should succeed")
	}
	if ship.TakeHit() {
		t.Error("TakeHit() at zero health should fail")
	}
	if ship.Health != 0 {
		t.Errorf("Health went negative: %d", ship.Health)
	}
}

func TestShip_Move(t *testing.T) {
	ship := newTestShip(10, 0, 0)
	ship.Velocity = 5
	ship.Heading = 90
	ship.Move()
	if ship.Position.X < 104.999 || ship.Position.X > 105.001 || ship.Position.Y < 199.999 || ship.Position.Y > 200.001 {
		t.Errorf("Expected ship near {105 200}, got %v", ship.Position)
	}
}

func TestShip_Bounds(t *testing.T) {
	ship := newTestShip(0, 0, 0)
	b := ship.Bounds()
	if b != (physics.Rect{X: 100, Y: 200, Width: 40, Height: 50}) {
		t.Errorf("Unexpected bounds %+v", b)
	}
}
