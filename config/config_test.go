package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"debug level", func(c *Config) { c.LogLevel = "debug" }, false},
		{"upper case level", func(c *Config) { c.LogLevel = "WARN" }, false},
		{"unknown level", func(c *Config) { c.LogLevel = "chatty" }, true},
		{"zero budget", func(c *Config) { c.Budget = 0 }, true},
		{"negative reload delay", func(c *Config) { c.ReloadDelay = -time.Second }, true},
		{"zero sensor range", func(c *Config) { c.SensorRange = 0 }, true},
		{"doctrine path", func(c *Config) { c.DoctrinePath = "aggressive.yaml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "error"
	level, err := c.Level()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if level != slog.LevelError {
		t.Errorf("expected %v, got %v", slog.LevelError, level)
	}
}
