// Package scheduler drives a game session on fixed frame and spawn cadences
// outside of any UI loop. It is used by the headless simulator; the terminal
// UI schedules through Bubble Tea commands instead.
package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// ErrAlreadyRunning is returned when Run is called on a busy scheduler.
var ErrAlreadyRunning = errors.New("scheduler: already running")

// Driver is the session surface the scheduler needs.
// *flappy.Session satisfies it.
type Driver interface {
	Tick()
	Spawn()
	Running() bool
	Done() <-chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithFrameHook sets a function called after every frame tick, e.g. to render.
func WithFrameHook(fn func()) Option {
	return func(s *Scheduler) {
		s.onFrame = fn
	}
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// Scheduler runs frame and spawn callbacks from a single goroutine.
type Scheduler struct {
	frameInterval time.Duration
	spawnInterval time.Duration
	onFrame       func()
	logger        *log.Logger

	running atomic.Bool
	frames  atomic.Uint64
	spawns  atomic.Uint64
}

// New creates a scheduler. Non-positive intervals fall back to 60 Hz frames
// and two-second spawns.
func New(frameInterval, spawnInterval time.Duration, opts ...Option) *Scheduler {
	if frameInterval <= 0 {
		frameInterval = time.Second / 60
	}
	if spawnInterval <= 0 {
		spawnInterval = 2 * time.Second
	}
	s := &Scheduler{
		frameInterval: frameInterval,
		spawnInterval: spawnInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Frames returns the number of frame callbacks delivered.
func (s *Scheduler) Frames() uint64 {
	return s.frames.Load()
}

// Spawns returns the number of spawn callbacks delivered.
func (s *Scheduler) Spawns() uint64 {
	return s.spawns.Load()
}

// Run blocks until ctx is cancelled or the driver's Done channel closes.
// It returns ctx.Err() in the first case and nil in the second.
func (s *Scheduler) Run(ctx context.Context, d Driver) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	frame := time.NewTicker(s.frameInterval)
	defer frame.Stop()
	spawn := time.NewTicker(s.spawnInterval)
	defer spawn.Stop()

	s.logger.Debug("scheduler started", "frame", s.frameInterval, "spawn", s.spawnInterval)
	defer func() {
		s.logger.Debug("scheduler stopped", "frames", s.Frames(), "spawns", s.Spawns())
	}()

	done := d.Done()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		case <-frame.C:
			if !live(ctx, done, d) {
				continue
			}
			d.Tick()
			s.frames.Add(1)
			if s.onFrame != nil {
				s.onFrame()
			}
		case <-spawn.C:
			if !live(ctx, done, d) {
				continue
			}
			d.Spawn()
			s.spawns.Add(1)
		}
	}
}

// live re-checks cancellation right before a callback. select picks ready
// cases at random, so a tick can be chosen even when done is already closed.
func live(ctx context.Context, done <-chan struct{}, d Driver) bool {
	select {
	case <-ctx.Done():
		return false
	case <-done:
		return false
	default:
	}
	return d.Running()
}
