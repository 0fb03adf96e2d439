package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalidConfig, s)
	}
}

// ApplyPreset scales the gap and obstacle speed once, before a session starts.
// Normal leaves the config untouched.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.GapSize *= 1.2
		cfg.Physics.ObstacleSpeed *= 0.8
	case DifficultyHard:
		cfg.Obstacles.GapSize *= 0.85
		cfg.Physics.ObstacleSpeed *= 1.25
		cfg.Obstacles.SpawnIntervalMs = cfg.Obstacles.SpawnIntervalMs * 4 / 5
	}
}
