package flappy

import (
	"time"

	"github.com/PekerRian/meowdy/internal/config"
)

// Phase is the state of the life/invulnerability machine.
type Phase int

const (
	PhaseNormal     Phase = iota // Collisions are detected
	PhaseRecovering              // Vibrating, blinking and invulnerable
	PhaseBlinking                // Blinking and invulnerable
	PhaseGameOver                // Terminal until reset
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNormal:
		return "Normal"
	case PhaseRecovering:
		return "Recovering"
	case PhaseBlinking:
		return "Blinking"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// LivesFromCount converts an externally supplied life count into a life pool.
// Missing or non-positive counts give one life.
func LivesFromCount(count int) int {
	if count < 1 {
		return 1
	}
	return count
}

// Life tracks remaining lives and the post-collision recovery window.
// Deadlines are absolute times fixed at the moment of the hit.
type Life struct {
	Remaining         int
	Phase             Phase
	HitAt             time.Time
	VibrateUntil      time.Time
	InvulnerableUntil time.Time
}

// NewLife returns a machine in PhaseNormal with LivesFromCount(count) lives.
func NewLife(count int) Life {
	return Life{Remaining: LivesFromCount(count), Phase: PhaseNormal}
}

// Vibrating reports whether the screen-shake window is open.
func (l Life) Vibrating() bool {
	return l.Phase == PhaseRecovering
}

// Blinking reports whether the avatar should flash.
func (l Life) Blinking() bool {
	return l.Phase == PhaseRecovering || l.Phase == PhaseBlinking
}

// Invulnerable reports whether collision detection is suppressed.
func (l Life) Invulnerable() bool {
	return l.Phase == PhaseRecovering || l.Phase == PhaseBlinking
}

// Hit applies a detected collision. It only acts in PhaseNormal. The second
// result is true when the hit consumed the last life.
func (l Life) Hit(now time.Time, cfg config.FlappyConfig) (Life, bool) {
	if l.Phase != PhaseNormal {
		return l, false
	}

	if l.Remaining <= 1 {
		l.Remaining = 0
		l.Phase = PhaseGameOver
		l.HitAt = now
		return l, true
	}

	l.Remaining--
	l.Phase = PhaseRecovering
	l.HitAt = now
	l.VibrateUntil = now.Add(cfg.VibrateDuration())
	l.InvulnerableUntil = now.Add(cfg.InvulnerableDuration())
	return l, false
}

// Advance applies every deadline that has passed by now. Several transitions
// can happen in one call when ticks were delayed.
func (l Life) Advance(now time.Time) Life {
	if l.Phase == PhaseRecovering && !now.Before(l.VibrateUntil) {
		l.Phase = PhaseBlinking
	}
	if l.Phase == PhaseBlinking && !now.Before(l.InvulnerableUntil) {
		l.Phase = PhaseNormal
	}
	return l
}
