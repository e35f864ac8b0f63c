package config

import (
	"fmt"
	"log/slog"
	"time"
)

// Config holds all bot configuration
type Config struct {
	// Logging
	LogLevel string `mapstructure:"log_level"`

	// Doctrine file; empty means the built-in reference tuning
	DoctrinePath string        `mapstructure:"doctrine"`
	ReloadDelay  time.Duration `mapstructure:"reload_delay"` // settle time after a doctrine file event

	// Decision settings
	Budget time.Duration `mapstructure:"budget"`
	Seed   uint64        `mapstructure:"seed"` // 0 seeds from the clock

	// Sensor synthesis for engines that send walls but no ray data
	SynthesizeSensors bool    `mapstructure:"synthesize_sensors"`
	SensorRange       float64 `mapstructure:"sensor_range"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		ReloadDelay: 200 * time.Millisecond,
		Budget:      100 * time.Millisecond,
		SensorRange: 300,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Budget <= 0 {
		return fmt.Errorf("budget must be positive")
	}
	if c.ReloadDelay <= 0 {
		return fmt.Errorf("reload_delay must be positive")
	}
	if c.SensorRange <= 0 {
		return fmt.Errorf("sensor_range must be positive")
	}
	return nil
}

// Level parses LogLevel (debug, info, warn, error).
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	return level, nil
}
