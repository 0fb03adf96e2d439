package flappy

import (
	"github.com/PekerRian/meowdy/internal/config"
	"github.com/PekerRian/meowdy/internal/core"
)

// Avatar is the player's vertical state. Its horizontal position is fixed by config.
type Avatar struct {
	Y   float64 // Top of the hitbox, 0 at the top of the world
	Vel float64 // Vertical velocity, positive = falling
}

// NewAvatar returns the avatar at its starting position with no velocity.
func NewAvatar(cfg config.FlappyConfig) Avatar {
	return Avatar{Y: cfg.Avatar.StartY}
}

// Integrate advances the avatar by one tick of gravity.
// The position is clamped to [0, worldHeight-avatarHeight].
func Integrate(a Avatar, cfg config.FlappyConfig) Avatar {
	a.Vel += cfg.Physics.Gravity
	a.Y = core.ClampF(a.Y+a.Vel, 0, cfg.MaxAvatarY())
	return a
}

// Flap replaces the velocity with the flap impulse.
func Flap(a Avatar, cfg config.FlappyConfig) Avatar {
	a.Vel = cfg.Physics.FlapImpulse
	return a
}

// AvatarBox returns the avatar hitbox in world units.
func AvatarBox(a Avatar, cfg config.FlappyConfig) core.Box {
	return core.NewBox(cfg.Avatar.X, a.Y, cfg.Avatar.Width, cfg.Avatar.Height)
}
