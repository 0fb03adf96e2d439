package flappy

import (
	"math/rand"
	"time"

	"github.com/PekerRian/meowdy/internal/config"
)

// Obstacle is a pair of vertical segments separated by a gap.
type Obstacle struct {
	X      float64 // Left edge, decreases every tick
	GapTop float64 // Bottom edge of the upper segment
	Scored bool    // Set once the avatar has fully passed it
}

// GapBottom returns the top edge of the lower segment.
func (o Obstacle) GapBottom(cfg config.FlappyConfig) float64 {
	return o.GapTop + cfg.Obstacles.GapSize
}

// RandSource is the randomness used for gap placement. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// NewRandSource returns a seeded source. Seed 0 uses the current time.
func NewRandSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewObstacle creates an obstacle at the right edge of the world with its gap
// top drawn uniformly from [MinGapTop, MinGapTop+GapTopRange).
func NewObstacle(cfg config.FlappyConfig, rng RandSource) Obstacle {
	return Obstacle{
		X:      cfg.World.Width,
		GapTop: cfg.Obstacles.MinGapTop + float64(rng.Intn(cfg.Obstacles.GapTopRange)),
	}
}

// advanceObstacles moves every obstacle left once, marks newly passed ones as
// scored and drops those that left the screen. It never mutates obs.
// Scoring is checked before culling so no obstacle leaves unscored.
func advanceObstacles(obs []Obstacle, cfg config.FlappyConfig) ([]Obstacle, int) {
	width := cfg.Obstacles.Width
	next := make([]Obstacle, 0, len(obs))
	scored := 0

	for _, o := range obs {
		o.X -= cfg.Physics.ObstacleSpeed

		if !o.Scored && o.X+width < cfg.Avatar.X {
			o.Scored = true
			scored++
		}

		if o.X+width <= 0 {
			continue
		}
		next = append(next, o)
	}

	return next, scored
}
