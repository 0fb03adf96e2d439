package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. The values match the
// embedded defaults/flappy.yaml and are used if that file fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: Physics{
			Gravity:       0.6,
			FlapImpulse:   -8,
			ObstacleSpeed: 2,
		},
		Obstacles: Obstacles{
			Width:           60,
			GapSize:         150,
			SpawnIntervalMs: 2000,
			MinGapTop:       50,
			GapTopRange:     200,
		},
		World: World{
			Width:  400,
			Height: 600,
		},
		Avatar: Avatar{
			X:      50,
			StartY: 250,
			Width:  34,
			Height: 24,
		},
		Lives: Lives{
			VibrateMs:      1000,
			InvulnerableMs: 3000,
		},
	}
}

// DefaultYAML returns the embedded default YAML, as printed by `meowdy config --defaults`.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
