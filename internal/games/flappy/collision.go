package flappy

import (
	"github.com/PekerRian/meowdy/internal/config"
	"github.com/PekerRian/meowdy/internal/core"
)

// Collides reports whether the avatar hits an obstacle segment or the ground.
// While invulnerable nothing can hit.
func Collides(a Avatar, obstacles []Obstacle, cfg config.FlappyConfig, invulnerable bool) bool {
	if invulnerable {
		return false
	}

	box := AvatarBox(a, cfg)
	for _, o := range obstacles {
		if hitsObstacle(box, o, cfg) {
			return true
		}
	}
	return hitsGround(box, cfg)
}

// hitsObstacle tests the avatar box against one obstacle. Only the horizontal
// span is compared as a box; vertically the avatar must stay inside the gap.
func hitsObstacle(box core.Box, o Obstacle, cfg config.FlappyConfig) bool {
	span := core.NewBox(o.X, 0, cfg.Obstacles.Width, cfg.World.Height)
	if !box.OverlapsX(span) {
		return false
	}
	return box.Top() < o.GapTop || box.Bottom() > o.GapBottom(cfg)
}

func hitsGround(box core.Box, cfg config.FlappyConfig) bool {
	return box.Bottom() >= cfg.World.Height
}
