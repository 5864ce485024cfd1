// pkg/physics/kinematics.go
package physics

import "math"

// Displacement converts a speed and a heading in degrees, measured clockwise
// from straight up, into a per-tick delta. X is the rightward component and Y
// the upward component.
func Displacement(speed, headingDegrees float64) Vector2D {
	rad := headingDegrees * math.Pi / 180
	return Vector2D{
		X: speed * math.Sin(rad),
		Y: speed * math.Cos(rad),
	}
}

// Advance moves pos by one tick at the given speed and heading. Screen y grows
// downwards, so the upward component is subtracted.
func Advance(pos Vector2D, speed, headingDegrees float64) Vector2D {
	d := Displacement(speed, headingDegrees)
	return Vector2D{X: pos.X + d.X, Y: pos.Y - d.Y}
}
