// Package config provides YAML-based game configuration loading and
// difficulty presets for the game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned (wrapped) when a configuration value is out of range.
var ErrInvalidConfig = errors.New("config: invalid value")

// FlappyConfig contains every tunable constant of the simulation.
// It is loaded once and treated as immutable for the lifetime of a session.
type FlappyConfig struct {
	Physics   Physics   `yaml:"physics"`
	Obstacles Obstacles `yaml:"obstacles"`
	World     World     `yaml:"world"`
	Avatar    Avatar    `yaml:"avatar"`
	Lives     Lives     `yaml:"lives"`
}

// Physics defines per-tick motion parameters.
type Physics struct {
	Gravity       float64 `yaml:"gravity"`        // Added to vertical velocity every tick
	FlapImpulse   float64 `yaml:"flap_impulse"`   // Velocity set by a flap (negative = up)
	ObstacleSpeed float64 `yaml:"obstacle_speed"` // Leftward obstacle movement per tick
}

// Obstacles defines obstacle geometry and spawn cadence.
type Obstacles struct {
	Width           float64 `yaml:"width"`
	GapSize         float64 `yaml:"gap_size"`
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"`
	MinGapTop       float64 `yaml:"min_gap_top"`   // Smallest gap top height
	GapTopRange     int     `yaml:"gap_top_range"` // Gap top is drawn from [min, min+range)
}

// World defines the playfield dimensions in world units.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Avatar defines the player hitbox and starting position.
type Avatar struct {
	X      float64 `yaml:"x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Lives defines the timing of the post-collision recovery window.
type Lives struct {
	VibrateMs      int `yaml:"vibrate_ms"`
	InvulnerableMs int `yaml:"invulnerable_ms"`
}

// MaxAvatarY is the lowest allowed avatar position (its top edge).
func (c FlappyConfig) MaxAvatarY() float64 {
	return c.World.Height - c.Avatar.Height
}

// SpawnInterval returns the obstacle spawn cadence.
func (c FlappyConfig) SpawnInterval() time.Duration {
	return time.Duration(c.Obstacles.SpawnIntervalMs) * time.Millisecond
}

// VibrateDuration returns how long the screen shakes after a hit.
func (c FlappyConfig) VibrateDuration() time.Duration {
	return time.Duration(c.Lives.VibrateMs) * time.Millisecond
}

// InvulnerableDuration returns how long damage is suppressed after a hit.
func (c FlappyConfig) InvulnerableDuration() time.Duration {
	return time.Duration(c.Lives.InvulnerableMs) * time.Millisecond
}

// Validate checks that every value is inside the range the engine relies on.
func (c FlappyConfig) Validate() error {
	checks := []struct {
		ok    bool
		field string
	}{
		{c.Physics.Gravity >= 0, "physics.gravity must be >= 0"},
		{c.Physics.FlapImpulse < 0, "physics.flap_impulse must be negative"},
		{c.Physics.ObstacleSpeed > 0, "physics.obstacle_speed must be > 0"},
		{c.Obstacles.Width > 0, "obstacles.width must be > 0"},
		{c.Obstacles.GapSize > 0, "obstacles.gap_size must be > 0"},
		{c.Obstacles.SpawnIntervalMs > 0, "obstacles.spawn_interval_ms must be > 0"},
		{c.Obstacles.MinGapTop >= 0, "obstacles.min_gap_top must be >= 0"},
		{c.Obstacles.GapTopRange > 0, "obstacles.gap_top_range must be > 0"},
		{c.World.Width > 0, "world.width must be > 0"},
		{c.World.Height > 0, "world.height must be > 0"},
		{c.Avatar.Width > 0, "avatar.width must be > 0"},
		{c.Avatar.Height > 0 && c.Avatar.Height < c.World.Height, "avatar.height must be in (0, world.height)"},
		{c.Avatar.X >= 0 && c.Avatar.X+c.Avatar.Width <= c.World.Width, "avatar.x must keep the avatar inside the world"},
		{c.Avatar.StartY >= 0 && c.Avatar.StartY <= c.MaxAvatarY(), "avatar.start_y must be inside the world"},
		{c.Lives.VibrateMs >= 0, "lives.vibrate_ms must be >= 0"},
		{c.Lives.InvulnerableMs >= c.Lives.VibrateMs, "lives.invulnerable_ms must be >= lives.vibrate_ms"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.field)
		}
	}
	return nil
}
