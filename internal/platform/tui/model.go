package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/PekerRian/meowdy/internal/config"
	"github.com/PekerRian/meowdy/internal/core"
	"github.com/PekerRian/meowdy/internal/games/flappy"
)

// inventoryPollInterval is how often the inventory file is re-read for life count changes.
const inventoryPollInterval = 5 * time.Second

// ScoreSaver persists final scores. *storage.Store satisfies it.
type ScoreSaver interface {
	SaveScore(player string, score int) (int64, error)
}

// GameOptions configures a game screen.
type GameOptions struct {
	Config   config.FlappyConfig
	Runtime  core.RuntimeConfig
	Store    ScoreSaver      // nil disables the leaderboard
	Notifier flappy.Notifier // Extra event receiver, e.g. audio
	Logger   *log.Logger

	Inventory string // Inventory file polled for life count changes
	Keyword   string // Token name keyword, empty uses the default
}

// GameModel is the Bubble Tea model for one play screen.
type GameModel struct {
	opts       GameOptions
	session    *flappy.Session
	screen     *core.Screen
	keyMapper  *KeyMapper
	input      core.InputFrame
	lives      int    // Life count used on every reset
	epoch      uint64 // Replaced on start, reset and stop; stale messages are dropped
	pollToken  uint64 // Identifies this screen's inventory poll
	frame      int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game screen with a fresh, unstarted session.
func NewGameModel(opts GameOptions) GameModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}

	return GameModel{
		opts:      opts,
		session:   newSession(opts),
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keyMapper: NewKeyMapper(),
		input:     core.NewInputFrame(),
		lives:     opts.Runtime.Lives,
		epoch:     nextEpoch(),
		pollToken: nextEpoch(),
	}
}

func newSession(opts GameOptions) *flappy.Session {
	logger := opts.Logger

	notifiers := flappy.Notifiers{
		flappy.NotifierFunc(func(e flappy.Event) {
			logger.Debug("game event", "event", e.Kind, "score", e.Score, "lives", e.Lives)
		}),
	}
	if opts.Notifier != nil {
		notifiers = append(notifiers, opts.Notifier)
	}

	return flappy.NewSession(opts.Config, opts.Runtime.Lives,
		flappy.WithRand(flappy.NewRandSource(opts.Runtime.Seed)),
		flappy.WithNotifier(notifiers),
		flappy.WithGameOver(saveScore(opts.Store, opts.Runtime.Player, logger)),
		flappy.WithPanicHandler(func(r any) {
			logger.Error("game callback panicked", "recovered", r)
		}),
	)
}

// saveScore returns the game-over callback writing to the leaderboard.
func saveScore(store ScoreSaver, player string, logger *log.Logger) flappy.GameOverFunc {
	return func(score int) {
		logger.Info("game over", "player", player, "score", score)
		if store == nil || player == "" {
			return
		}
		if _, err := store.SaveScore(player, score); err != nil {
			logger.Error("could not save score", "player", player, "score", score, "error", err)
		}
	}
}

// Init starts the inventory poll when an inventory file is configured.
func (m GameModel) Init() tea.Cmd {
	if m.opts.Inventory == "" {
		return nil
	}
	return livesCmd(m.pollToken, m.opts.Inventory, m.opts.Keyword, inventoryPollInterval)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		return m.handleFrame(msg)

	case SpawnMsg:
		return m.handleSpawn(msg)

	case LivesMsg:
		return m.handleLives(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.input) {
		m.stop()
		m.quitting = true
		return m, tea.Quit
	}
	defer m.input.Clear()

	switch {
	case m.input.Has(core.ActionJump):
		cmd := m.tap()
		return m, cmd

	case m.input.Has(core.ActionRestart):
		if m.session.Snapshot().GameOver() {
			m.reset()
		}

	case m.input.Has(core.ActionBack):
		m.stop()
		m.backToMenu = true
	}

	return m, nil
}

// tap starts an idle session, flaps a running one and restarts after game over.
func (m *GameModel) tap() tea.Cmd {
	snap := m.session.Snapshot()
	switch {
	case snap.GameOver():
		m.reset()
		return m.start()
	case !snap.Started:
		return m.start()
	default:
		m.session.Jump()
		return nil
	}
}

func (m *GameModel) start() tea.Cmd {
	m.session.Start()
	m.epoch = nextEpoch()
	return tea.Batch(
		frameCmd(m.epoch, m.opts.Runtime.TickRate),
		spawnCmd(m.epoch, m.opts.Config.SpawnInterval()),
	)
}

func (m *GameModel) reset() {
	m.session.Reset(m.lives)
	m.epoch = nextEpoch()
	m.frame = 0
}

func (m *GameModel) stop() {
	m.session.Stop()
	m.epoch = nextEpoch()
}

// handleFrame runs one simulation tick of the current run.
func (m GameModel) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if msg.Epoch != m.epoch || !m.session.Running() {
		return m, nil
	}
	m.session.Tick()
	m.frame++
	return m, frameCmd(m.epoch, m.opts.Runtime.TickRate)
}

// handleSpawn adds an obstacle to the current run.
func (m GameModel) handleSpawn(msg SpawnMsg) (tea.Model, tea.Cmd) {
	if msg.Epoch != m.epoch || !m.session.Running() {
		return m, nil
	}
	m.session.Spawn()
	return m, spawnCmd(m.epoch, m.opts.Config.SpawnInterval())
}

// handleLives resets the session when the held token count changes.
func (m GameModel) handleLives(msg LivesMsg) (tea.Model, tea.Cmd) {
	if msg.Token != m.pollToken || m.quitting || m.backToMenu {
		return m, nil
	}
	next := livesCmd(m.pollToken, m.opts.Inventory, m.opts.Keyword, inventoryPollInterval)
	if msg.Err != nil {
		m.opts.Logger.Warn("could not read inventory", "path", m.opts.Inventory, "error", msg.Err)
		return m, next
	}

	lives := flappy.LivesFromCount(msg.Count)
	if lives != flappy.LivesFromCount(m.lives) {
		m.opts.Logger.Info("life count changed", "from", m.lives, "to", lives)
		m.lives = lives
		m.reset()
	}
	return m, next
}

// saveScreenshot saves the current screen to ~/.meowdy/screenshots.
func (m *GameModel) saveScreenshot() {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".meowdy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("flappy_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.opts.Logger.Debug("screenshot saved", "path", path)
}

func (m GameModel) render() {
	flappy.Render(m.screen, m.session.Snapshot(), m.opts.Config, m.frame)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// Snapshot returns the session's current observable state.
func (m GameModel) Snapshot() flappy.Snapshot {
	return m.session.Snapshot()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a single game screen in its own Bubble Tea program.
func Run(opts GameOptions) error {
	p := tea.NewProgram(
		NewGameModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
