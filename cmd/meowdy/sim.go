package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/PekerRian/meowdy/internal/config"
	"github.com/PekerRian/meowdy/internal/core"
	"github.com/PekerRian/meowdy/internal/games/flappy"
	"github.com/PekerRian/meowdy/internal/scheduler"
)

var (
	flagSimTicks      int
	flagSimJumpEvery  int
	flagSimSpawnEvery int
	flagSimRealtime   bool
	flagSimRender     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run a session without a terminal UI and print a summary.

By default the simulation runs on a manual clock as fast as possible, so
the same seed and flags always produce the same result. With --realtime
the session is driven by wall-clock frame and spawn timers instead.

Examples:
  meowdy sim --seed 7
  meowdy sim --seed 7 --ticks 3600 --jump-every 18 --lives 3
  meowdy sim --realtime --ticks 600 -v
  meowdy sim --seed 1 --render`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum number of frames to simulate")
	simCmd.Flags().IntVar(&flagSimJumpEvery, "jump-every", 20, "Flap every N frames (0 = never)")
	simCmd.Flags().IntVar(&flagSimSpawnEvery, "spawn-every", 0, "Spawn every N frames (0 = spawn interval at --fps)")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Drive the session with wall-clock timers")
	simCmd.Flags().BoolVar(&flagSimRender, "render", false, "Print the final frame")
}

// simOptions configures one headless run.
type simOptions struct {
	Config     config.FlappyConfig
	Lives      int
	Seed       int64
	FPS        int
	Ticks      int
	JumpEvery  int
	SpawnEvery int
	Logger     *log.Logger
}

// simResult summarizes a finished run.
type simResult struct {
	Ticks      int
	Jumps      int
	Spawns     int
	Scored     int
	Collisions int
	GameOver   bool
	FinalScore int
	Snapshot   flappy.Snapshot
}

// eventCounter tallies engine events and logs them at debug level.
type eventCounter struct {
	result *simResult
	logger *log.Logger
	tick   *int
}

func (c eventCounter) Notify(e flappy.Event) {
	switch e.Kind {
	case flappy.EventJumped:
		c.result.Jumps++
	case flappy.EventScored:
		c.result.Scored++
	case flappy.EventCollided:
		c.result.Collisions++
	case flappy.EventGameOver:
		c.result.GameOver = true
	}
	c.logger.Debug("event", "tick", *c.tick, "kind", e.Kind, "score", e.Score, "lives", e.Lives)
}

func (o simOptions) frameInterval() time.Duration {
	fps := o.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

func (o simOptions) spawnEvery() int {
	if o.SpawnEvery > 0 {
		return o.SpawnEvery
	}
	n := int(o.Config.SpawnInterval() / o.frameInterval())
	if n < 1 {
		n = 1
	}
	return n
}

// simulate replays a session on a manual clock. Frame i advances the clock
// by one frame interval; spawns happen every spawnEvery frames after the
// first and flaps every JumpEvery frames starting with frame 0.
func simulate(opts simOptions) simResult {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}

	var (
		result simResult
		tick   int
	)
	clock := flappy.NewManualClock(time.Unix(0, 0).UTC())
	session := flappy.NewSession(opts.Config, opts.Lives,
		flappy.WithClock(clock),
		flappy.WithRand(flappy.NewRandSource(opts.Seed)),
		flappy.WithNotifier(eventCounter{result: &result, logger: opts.Logger, tick: &tick}),
		flappy.WithGameOver(func(score int) {
			result.FinalScore = score
		}),
	)
	session.Start()

	frame := opts.frameInterval()
	spawnEvery := opts.spawnEvery()
	for tick = 0; tick < opts.Ticks && session.Running(); tick++ {
		if tick > 0 && tick%spawnEvery == 0 {
			session.Spawn()
			result.Spawns++
		}
		if opts.JumpEvery > 0 && tick%opts.JumpEvery == 0 {
			session.Jump()
		}
		session.Tick()
		clock.Advance(frame)
	}

	result.Ticks = tick
	result.Snapshot = session.Snapshot()
	if !result.GameOver {
		result.FinalScore = result.Snapshot.Score
	}
	return result
}

// simulateRealtime drives a session with the scheduler until it ends, the
// tick budget is spent or ctx is cancelled.
func simulateRealtime(ctx context.Context, opts simOptions) (simResult, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr)
	}

	var (
		result simResult
		tick   int
	)
	session := flappy.NewSession(opts.Config, opts.Lives,
		flappy.WithRand(flappy.NewRandSource(opts.Seed)),
		flappy.WithNotifier(eventCounter{result: &result, logger: opts.Logger, tick: &tick}),
		flappy.WithGameOver(func(score int) {
			result.FinalScore = score
		}),
	)

	sched := scheduler.New(opts.frameInterval(), opts.Config.SpawnInterval(),
		scheduler.WithLogger(opts.Logger),
		scheduler.WithFrameHook(func() {
			tick++
			if opts.JumpEvery > 0 && tick%opts.JumpEvery == 0 {
				session.Jump()
			}
			if tick >= opts.Ticks {
				session.Stop()
			}
		}),
	)

	session.Start()
	session.Jump()
	err := sched.Run(ctx, session)

	result.Ticks = tick
	result.Spawns = int(sched.Spawns())
	result.Snapshot = session.Snapshot()
	if !result.GameOver {
		result.FinalScore = result.Snapshot.Score
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return result, err
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	cfg, err := loadGameConfig()
	if err != nil {
		fatal(logger, "invalid game config", err)
	}
	lives, _ := resolvePlayer(logger)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := simOptions{
		Config:     cfg,
		Lives:      lives,
		Seed:       seed,
		FPS:        flagFPS,
		Ticks:      flagSimTicks,
		JumpEvery:  flagSimJumpEvery,
		SpawnEvery: flagSimSpawnEvery,
		Logger:     logger,
	}

	var result simResult
	if flagSimRealtime {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		result, err = simulateRealtime(ctx, opts)
		if err != nil {
			fatal(logger, "simulation failed", err)
		}
	} else {
		result = simulate(opts)
	}

	logger.Info("simulation finished",
		"seed", seed,
		"ticks", result.Ticks,
		"score", result.FinalScore,
		"lives", result.Snapshot.Lives,
		"gameOver", result.GameOver,
	)
	fmt.Print(formatSummary(result))

	if flagSimRender {
		screen := core.NewScreen(core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH)
		flappy.Render(screen, result.Snapshot, cfg, result.Ticks)
		fmt.Println(screen.String())
	}
}

// formatSummary renders a run summary as aligned text.
func formatSummary(r simResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticks:      %d\n", r.Ticks)
	fmt.Fprintf(&b, "Score:      %d\n", r.FinalScore)
	fmt.Fprintf(&b, "Lives left: %d\n", r.Snapshot.Lives)
	fmt.Fprintf(&b, "Phase:      %s\n", r.Snapshot.Phase)
	fmt.Fprintf(&b, "Jumps:      %d\n", r.Jumps)
	fmt.Fprintf(&b, "Spawns:     %d\n", r.Spawns)
	fmt.Fprintf(&b, "Collisions: %d\n", r.Collisions)
	fmt.Fprintf(&b, "Game over:  %t\n", r.GameOver)
	return b.String()
}
