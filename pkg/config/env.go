// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables recognised by ApplyEnvironmentOverrides
const (
	EnvFieldWidth   = "SPACERUN_FIELD_WIDTH"
	EnvFieldHeight  = "SPACERUN_FIELD_HEIGHT"
	EnvShipFuel     = "SPACERUN_SHIP_FUEL"
	EnvShipAmmo     = "SPACERUN_SHIP_AMMO"
	EnvShipHealth   = "SPACERUN_SHIP_HEALTH"
	EnvTickInterval = "SPACERUN_TICK_INTERVAL"
	EnvTimeLimit    = "SPACERUN_TIME_LIMIT"
	EnvCompactEvery = "SPACERUN_COMPACT_EVERY"
	EnvSpawnSeed    = "SPACERUN_SPAWN_SEED"
)

// ApplyEnvironmentOverrides overwrites config values with any SPACERUN_*
// variables that are set. Malformed values are reported, not ignored.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}

	var err error
	if config.Field.Width, err = getEnvFloat(EnvFieldWidth, config.Field.Width); err != nil {
		return err
	}
	if config.Field.Height, err = getEnvFloat(EnvFieldHeight, config.Field.Height); err != nil {
		return err
	}
	if config.Ship.Fuel, err = getEnvInt(EnvShipFuel, config.Ship.Fuel); err != nil {
		return err
	}
	if config.Ship.Ammo, err = getEnvInt(EnvShipAmmo, config.Ship.Ammo); err != nil {
		return err
	}
	if config.Ship.Health, err = getEnvInt(EnvShipHealth, config.Ship.Health); err != nil {
		return err
	}
	if config.Tracker.CompactEvery, err = getEnvInt(EnvCompactEvery, config.Tracker.CompactEvery); err != nil {
		return err
	}

	tick, err := getEnvDuration(EnvTickInterval, config.Clock.TickInterval())
	if err != nil {
		return err
	}
	config.Clock.TickIntervalMs = int(tick / time.Millisecond)

	limit, err := getEnvDuration(EnvTimeLimit, config.Clock.TimeLimit())
	if err != nil {
		return err
	}
	config.Clock.TimeLimitMs = int(limit / time.Millisecond)

	if raw, ok := os.LookupEnv(EnvSpawnSeed); ok && raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSpawnSeed, raw, err)
		}
		config.Spawn.Seed = seed
	}

	return nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return value, nil
}
