package flappy

import (
	"time"

	"github.com/PekerRian/meowdy/internal/config"
)

// Step advances an active state by one tick and returns the new state with
// the events it produced. The order is fixed:
//
//  1. recovery deadlines are checked against now
//  2. gravity is integrated
//  3. obstacles move, score and are culled
//  4. collision is tested on the post-move positions of this tick
//  5. a hit drives the life machine
//
// Inactive states are returned unchanged.
func Step(s State, cfg config.FlappyConfig, now time.Time) (State, []Event) {
	if !s.Active() {
		return s, nil
	}

	var events []Event
	next := s

	next.Life = s.Life.Advance(now)
	next.Avatar = Integrate(s.Avatar, cfg)

	obstacles, passed := advanceObstacles(s.Obstacles, cfg)
	next.Obstacles = obstacles
	for i := 0; i < passed; i++ {
		next.Score++
		events = append(events, Event{Kind: EventScored, Score: next.Score, Lives: next.Life.Remaining})
	}

	if !Collides(next.Avatar, next.Obstacles, cfg, next.Life.Invulnerable()) {
		return next, events
	}

	life, over := next.Life.Hit(now, cfg)
	next.Life = life
	events = append(events, Event{Kind: EventCollided, Score: next.Score, Lives: life.Remaining})
	if over {
		next.Running = false
		events = append(events, Event{Kind: EventGameOver, Score: next.Score, Lives: 0})
	}
	return next, events
}

// SpawnInto appends a new obstacle to an active state.
func SpawnInto(s State, cfg config.FlappyConfig, rng RandSource) State {
	if !s.Active() {
		return s
	}
	obstacles := make([]Obstacle, len(s.Obstacles), len(s.Obstacles)+1)
	copy(obstacles, s.Obstacles)
	s.Obstacles = append(obstacles, NewObstacle(cfg, rng))
	return s
}
