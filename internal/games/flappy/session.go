// Package flappy implements the simulation engine of a side-scrolling
// avoidance game: the avatar falls under gravity, flaps on command and must
// pass through the gaps of a stream of obstacles while a pool of lives absorbs
// collisions.
//
// The per-tick update is the pure function Step; Session is the mutable
// controller that owns one State and dispatches its events to collaborators.
// A Session is not safe for concurrent use: schedulers must call it from a
// single goroutine.
package flappy

import (
	"context"

	"github.com/PekerRian/meowdy/internal/config"
)

// GameOverFunc receives the final score once per session.
type GameOverFunc func(finalScore int)

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for gap placement.
func WithRand(rng RandSource) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithClock sets the clock used for the recovery deadlines.
func WithClock(c Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithNotifier sets the receiver of jumped/scored/collided/gameOver events.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithGameOver sets the callback invoked when the last life is lost.
func WithGameOver(fn GameOverFunc) Option {
	return func(s *Session) {
		s.onGameOver = fn
	}
}

// WithPanicHandler sets a hook that receives values recovered from panicking
// callbacks or notifiers.
func WithPanicHandler(fn func(recovered any)) Option {
	return func(s *Session) {
		s.onPanic = fn
	}
}

// Session is the controller for one play session.
type Session struct {
	cfg        config.FlappyConfig
	state      State
	rng        RandSource
	clock      Clock
	notifier   Notifier
	onGameOver GameOverFunc
	onPanic    func(recovered any)

	ctx    context.Context
	cancel context.CancelFunc

	gameOverSent bool
}

// NewSession creates a session in its reset state with LivesFromCount(lifeCount) lives.
func NewSession(cfg config.FlappyConfig, lifeCount int, opts ...Option) *Session {
	s := &Session{
		cfg:   cfg,
		clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRandSource(0)
	}
	s.Reset(lifeCount)
	return s
}

// Config returns the session configuration.
func (s *Session) Config() config.FlappyConfig {
	return s.cfg
}

// Start marks the session as started. Calling it again has no effect.
func (s *Session) Start() {
	s.state.Started = true
}

// Stop halts the session: running is cleared and Done is closed so every
// scheduler driving this session exits. Safe to call repeatedly.
func (s *Session) Stop() {
	s.state.Running = false
	s.cancel()
}

// Reset reinitializes the session with LivesFromCount(lifeCount) lives.
// Schedulers bound to the previous Done channel are released.
func (s *Session) Reset(lifeCount int) {
	if s.cancel != nil {
		s.cancel()
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.state = NewState(s.cfg, lifeCount)
	s.gameOverSent = false
}

// Jump flaps the avatar when the session is started and running.
func (s *Session) Jump() {
	if !s.state.Active() {
		return
	}
	s.state.Avatar = Flap(s.state.Avatar, s.cfg)
	s.dispatch([]Event{{Kind: EventJumped, Score: s.state.Score, Lives: s.state.Life.Remaining}})
}

// Tick runs one simulation step at the current clock time.
func (s *Session) Tick() {
	if !s.state.Active() {
		return
	}
	next, events := Step(s.state, s.cfg, s.clock.Now())
	s.state = next
	s.dispatch(events)
}

// Spawn adds an obstacle at the right edge of the world.
func (s *Session) Spawn() {
	s.state = SpawnInto(s.state, s.cfg, s.rng)
}

// Started reports whether Start has been called since the last reset.
func (s *Session) Started() bool {
	return s.state.Started
}

// Running reports whether the session can still change.
func (s *Session) Running() bool {
	return s.state.Running
}

// Done is closed when the session is stopped, ends or is reset.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// State returns a copy of the current state.
func (s *Session) State() State {
	st := s.state
	st.Obstacles = append([]Obstacle(nil), s.state.Obstacles...)
	return st
}

// Snapshot returns the renderer view of the current state.
func (s *Session) Snapshot() Snapshot {
	return s.state.Snapshot()
}

// dispatch delivers events after the state they describe has been committed.
// Callback failures cannot change the state.
func (s *Session) dispatch(events []Event) {
	for _, e := range events {
		if s.notifier != nil {
			s.safely(func() { s.notifier.Notify(e) })
		}
		if e.Kind != EventGameOver || s.gameOverSent {
			continue
		}
		s.gameOverSent = true
		s.cancel()
		if s.onGameOver != nil {
			score := e.Score
			s.safely(func() { s.onGameOver(score) })
		}
	}
}

func (s *Session) safely(fn func()) {
	defer func() {
		if r := recover(); r != nil && s.onPanic != nil {
			s.onPanic(r)
		}
	}()
	fn()
}
