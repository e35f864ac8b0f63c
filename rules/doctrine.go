package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Doctrine carries every tuning constant the reference rules use. Distances
// are in world units, angles in degrees, Lookahead in engine ticks.
type Doctrine struct {
	Name string `yaml:"name"`

	// Obstacle reflex (sensor data only).
	EmergencyDistance float64 `yaml:"emergency_distance"`
	AvoidDistance     float64 `yaml:"avoid_distance"`
	SideDistance      float64 `yaml:"side_distance"`
	TurnAngle         float64 `yaml:"turn_angle"`
	NudgeAngle        float64 `yaml:"nudge_angle"`

	// Threat avoidance.
	DangerRadius float64 `yaml:"danger_radius"`
	Lookahead    float64 `yaml:"lookahead"`

	// Scramble.
	Harass        bool    `yaml:"harass"`
	HarassRange   float64 `yaml:"harass_range"`
	HarassMinAmmo int     `yaml:"harass_min_ammo"`

	// Labyrinth and Duel.
	CloseRange  float64 `yaml:"close_range"`
	AttackRange float64 `yaml:"attack_range"`
	ShootChance float64 `yaml:"shoot_chance"`
	AimJitter   float64 `yaml:"aim_jitter"`

	ArenaWidth  float64 `yaml:"arena_width"`
	ArenaHeight float64 `yaml:"arena_height"`
}

// DefaultDoctrine returns the reference tuning.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Name:              "Reference",
		EmergencyDistance: 10,
		AvoidDistance:     50,
		SideDistance:      30,
		TurnAngle:         90,
		NudgeAngle:        45,
		DangerRadius:      50,
		Lookahead:         10,
		Harass:            true,
		HarassRange:       200,
		HarassMinAmmo:     10,
		CloseRange:        80,
		AttackRange:       250,
		ShootChance:       0.7,
		AimJitter:         5,
		ArenaWidth:        1280,
		ArenaHeight:       720,
	}
}

// Validate clamps all values to their valid ranges.
func (d *Doctrine) Validate() {
	d.EmergencyDistance = clamp(d.EmergencyDistance, 0, 1000)
	d.AvoidDistance = clamp(d.AvoidDistance, d.EmergencyDistance, 1000)
	d.SideDistance = clamp(d.SideDistance, 0, 1000)
	d.TurnAngle = clamp(d.TurnAngle, 0, 180)
	d.NudgeAngle = clamp(d.NudgeAngle, 0, 180)
	d.DangerRadius = clamp(d.DangerRadius, 0, 1000)
	d.Lookahead = clamp(d.Lookahead, 1, 120)
	d.HarassRange = clamp(d.HarassRange, 0, 5000)
	d.HarassMinAmmo = clampInt(d.HarassMinAmmo, 0, 1000)
	d.CloseRange = clamp(d.CloseRange, 0, 5000)
	d.AttackRange = clamp(d.AttackRange, d.CloseRange, 5000)
	d.ShootChance = clamp(d.ShootChance, 0, 1)
	d.AimJitter = clamp(d.AimJitter, 0, 45)
	if d.ArenaWidth <= 0 {
		d.ArenaWidth = DefaultDoctrine().ArenaWidth
	}
	if d.ArenaHeight <= 0 {
		d.ArenaHeight = DefaultDoctrine().ArenaHeight
	}
}

// ParseDoctrine decodes YAML over the reference tuning, so a file only
// needs the keys it changes.
func ParseDoctrine(data []byte) (Doctrine, error) {
	d := DefaultDoctrine()
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Doctrine{}, fmt.Errorf("decode doctrine: %w", err)
	}
	d.Validate()
	return d, nil
}

// LoadDoctrine reads a YAML doctrine file.
func LoadDoctrine(path string) (Doctrine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Doctrine{}, fmt.Errorf("read doctrine: %w", err)
	}
	return ParseDoctrine(data)
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clamp restricts v to [min, max]. NaN collapses to min.
func clamp(v, min, max float64) float64 {
	if v != v || v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
