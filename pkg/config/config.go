// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/opd-ai/go-spacerun/pkg/entity"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid configuration")

// GameConfig contains configuration for one game session
type GameConfig struct {
	Field      FieldConfig      `json:"field"`
	Ship       ShipConfig       `json:"ship"`
	Projectile ProjectileConfig `json:"projectile"`
	Boundary   BoundaryConfig   `json:"boundary"`
	Clock      ClockConfig      `json:"clock"`
	Rules      RulesConfig      `json:"rules"`
	Tracker    TrackerConfig    `json:"tracker"`
	Spawn      SpawnConfig      `json:"spawn"`
}

// FieldConfig is the play field size, read once at session start
type FieldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ShipConfig contains the starting supplies and geometry of the ship
type ShipConfig struct {
	Fuel         int     `json:"fuel"`
	Ammo         int     `json:"ammo"`
	Health       int     `json:"health"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	RotateStep   int     `json:"rotateStep"`
	ThrustMin    int     `json:"thrustMin"`
	ThrustMax    int     `json:"thrustMax"`
	ThrustStep   int     `json:"thrustStep"`
	MuzzleOffset float64 `json:"muzzleOffset"`
}

// ProjectileConfig contains projectile flight settings
type ProjectileConfig struct {
	Speed  float64 `json:"speed"`
	Margin float64 `json:"margin"`
}

// BoundaryConfig contains the wrap thresholds of the ship
type BoundaryConfig struct {
	ShipMargin float64 `json:"shipMargin"`
	WrapInset  float64 `json:"wrapInset"`
}

// ClockConfig contains the tick periods and the session time limit
type ClockConfig struct {
	TickIntervalMs      int `json:"tickIntervalMs"`
	CountdownIntervalMs int `json:"countdownIntervalMs"`
	TimeLimitMs         int `json:"timeLimitMs"`
	CountdownStart      int `json:"countdownStart"`
}

// RulesConfig contains scoring rules
type RulesConfig struct {
	SecondBonus    int `json:"secondBonus"`
	ShotMultiplier int `json:"shotMultiplier"`
}

// TrackerConfig controls obstacle bookkeeping. CompactEvery is the number
// of ticks between compactions of hidden obstacles; zero keeps every
// obstacle for the whole session.
type TrackerConfig struct {
	CompactEvery int `json:"compactEvery"`
}

// SpawnConfig drives the built-in drifting rock feed
type SpawnConfig struct {
	EveryTicks int     `json:"everyTicks"`
	MinSize    float64 `json:"minSize"`
	MaxSize    float64 `json:"maxSize"`
	MinSpeed   float64 `json:"minSpeed"`
	MaxSpeed   float64 `json:"maxSpeed"`
	Seed       uint64  `json:"seed"`
}

// TickInterval returns the simulation tick period
func (c ClockConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// CountdownInterval returns the countdown tick period
func (c ClockConfig) CountdownInterval() time.Duration {
	return time.Duration(c.CountdownIntervalMs) * time.Millisecond
}

// TimeLimit returns the wall-clock session limit
func (c ClockConfig) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitMs) * time.Millisecond
}

// ShipStats converts the ship section into entity stats
func (c ShipConfig) ShipStats() entity.ShipStats {
	return entity.ShipStats{
		Width:        c.Width,
		Height:       c.Height,
		RotateStep:   c.RotateStep,
		ThrustMin:    c.ThrustMin,
		ThrustMax:    c.ThrustMax,
		ThrustStep:   c.ThrustStep,
		MuzzleOffset: c.MuzzleOffset,
	}
}

// LoadConfig loads a configuration from a file. Sections missing from the
// file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a session
func (c *GameConfig) Validate() error {
	var problems []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Errorf(format, args...))
		}
	}

	check(c.Field.Width > 0 && c.Field.Height > 0, "field size must be positive, got %vx%v", c.Field.Width, c.Field.Height)
	check(c.Ship.Fuel >= 0 && c.Ship.Ammo >= 0 && c.Ship.Health >= 0, "ship supplies must not be negative")
	check(c.Ship.Width > 0 && c.Ship.Height > 0, "ship size must be positive")
	check(c.Ship.ThrustMin <= c.Ship.ThrustMax, "thrustMin %d exceeds thrustMax %d", c.Ship.ThrustMin, c.Ship.ThrustMax)
	check(c.Projectile.Speed >= 0, "projectile speed must not be negative")
	check(c.Clock.TickIntervalMs > 0, "tickIntervalMs must be positive")
	check(c.Clock.CountdownIntervalMs > 0, "countdownIntervalMs must be positive")
	check(c.Clock.TimeLimitMs > 0, "timeLimitMs must be positive")
	check(c.Clock.CountdownStart >= 0, "countdownStart must not be negative")
	check(c.Tracker.CompactEvery >= 0, "compactEvery must not be negative")
	check(c.Spawn.EveryTicks >= 0, "spawn everyTicks must not be negative")
	check(c.Spawn.MinSize > 0 && c.Spawn.MinSize <= c.Spawn.MaxSize, "spawn sizes must satisfy 0 < min <= max")
	check(c.Spawn.MinSpeed <= c.Spawn.MaxSpeed, "spawn minSpeed exceeds maxSpeed")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
	}
	return nil
}

// DefaultConfig returns the arcade defaults: a 1024x768 field, 150 fuel, 20
// missiles, two extra lives and a 61 second session.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Field: FieldConfig{
			Width:  1024,
			Height: 768,
		},
		Ship: ShipConfig{
			Fuel:         150,
			Ammo:         20,
			Health:       2,
			Width:        40,
			Height:       50,
			RotateStep:   15,
			ThrustMin:    15,
			ThrustMax:    60,
			ThrustStep:   3,
			MuzzleOffset: 17,
		},
		Projectile: ProjectileConfig{
			Speed:  20,
			Margin: 5,
		},
		Boundary: BoundaryConfig{
			ShipMargin: 40,
			WrapInset:  40,
		},
		Clock: ClockConfig{
			TickIntervalMs:      20,
			CountdownIntervalMs: 1000,
			TimeLimitMs:         61000,
			CountdownStart:      59,
		},
		Rules: RulesConfig{
			SecondBonus:    10,
			ShotMultiplier: 2,
		},
		Tracker: TrackerConfig{
			CompactEvery: 0,
		},
		Spawn: SpawnConfig{
			EveryTicks: 50,
			MinSize:    30,
			MaxSize:    80,
			MinSpeed:   1,
			MaxSpeed:   4,
			Seed:       1,
		},
	}
}
