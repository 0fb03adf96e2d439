package flappy

import (
	"github.com/PekerRian/meowdy/internal/config"
)

// State is the complete simulation state of one session. It is a value:
// Step and SpawnInto return a new State and never modify their input.
type State struct {
	Avatar    Avatar
	Obstacles []Obstacle // Insertion order, oldest (leftmost) first
	Score     int
	Life      Life
	Started   bool
	Running   bool
}

// NewState returns a fresh, not yet started session state.
func NewState(cfg config.FlappyConfig, lifeCount int) State {
	return State{
		Avatar:  NewAvatar(cfg),
		Life:    NewLife(lifeCount),
		Running: true,
	}
}

// Active reports whether ticks and spawns may change the state.
func (s State) Active() bool {
	return s.Started && s.Running
}

// ObstacleView is the renderer's read-only view of an obstacle.
type ObstacleView struct {
	X      float64
	GapTop float64
}

// Snapshot is what a renderer reads each frame.
type Snapshot struct {
	AvatarY      float64
	Obstacles    []ObstacleView
	Score        int
	Lives        int
	Blinking     bool
	Vibrating    bool
	Invulnerable bool
	Phase        Phase
	Started      bool
	Running      bool
}

// GameOver reports whether the session ended by losing the last life.
func (s Snapshot) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Snapshot builds the observable view of the state.
func (s State) Snapshot() Snapshot {
	views := make([]ObstacleView, len(s.Obstacles))
	for i, o := range s.Obstacles {
		views[i] = ObstacleView{X: o.X, GapTop: o.GapTop}
	}
	return Snapshot{
		AvatarY:      s.Avatar.Y,
		Obstacles:    views,
		Score:        s.Score,
		Lives:        s.Life.Remaining,
		Blinking:     s.Life.Blinking(),
		Vibrating:    s.Life.Vibrating(),
		Invulnerable: s.Life.Invulnerable(),
		Phase:        s.Life.Phase,
		Started:      s.Started,
		Running:      s.Running,
	}
}
