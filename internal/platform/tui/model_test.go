package tui

import (
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/PekerRian/meowdy/internal/config"
	"github.com/PekerRian/meowdy/internal/core"
	"github.com/PekerRian/meowdy/internal/games/flappy"
	"github.com/PekerRian/meowdy/internal/storage"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

type savedScore struct {
	player string
	score  int
}

type fakeStore struct {
	saved []savedScore
	err   error
}

func (f *fakeStore) SaveScore(player string, score int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, savedScore{player, score})
	return int64(len(f.saved)), nil
}

func (f *fakeStore) TopScores(int) ([]storage.ScoreEntry, error) {
	entries := make([]storage.ScoreEntry, len(f.saved))
	for i, s := range f.saved {
		entries[i] = storage.ScoreEntry{ID: int64(i + 1), Player: s.player, Score: s.score}
	}
	return entries, nil
}

func (f *fakeStore) Stats() (*storage.Stats, error) {
	return &storage.Stats{GamesCount: len(f.saved)}, nil
}

func (f *fakeStore) HighScore() (int, error) {
	best := 0
	for _, s := range f.saved {
		best = max(best, s.score)
	}
	return best, nil
}

func (f *fakeStore) PlayerBest(string) (int, bool, error) {
	return 0, false, nil
}

func testOptions(store ScoreSaver, lives int) GameOptions {
	rt := core.DefaultConfig()
	rt.Seed = 42
	rt.Lives = lives
	rt.Player = "alice"
	return GameOptions{
		Config:  config.DefaultFlappyConfig(),
		Runtime: rt,
		Store:   store,
		Logger:  log.New(io.Discard),
	}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{spaceKey, core.ActionJump, false},
		{runeKey('w'), core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{enterKey, core.ActionConfirm, false},
		{escKey, core.ActionBack, false},
		{runeKey('r'), core.ActionRestart, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.expected || quit != tc.quit {
			t.Errorf("MapKey(%q) = %v, %v, expected %v, %v", tc.msg.String(), action, quit, tc.expected, tc.quit)
		}
	}

	if km.MapKeyToMenuAction(downKey) != MenuActionDown {
		t.Error("down should move the menu cursor")
	}
}

func TestTapStartsThenFlaps(t *testing.T) {
	m := NewGameModel(testOptions(nil, 1))

	m, cmd := update(t, m, spaceKey)
	if !m.Snapshot().Started {
		t.Fatal("first tap should start the session")
	}
	if cmd == nil {
		t.Fatal("starting should schedule frame and spawn commands")
	}
	if v := m.session.State().Avatar.Vel; v != 0 {
		t.Errorf("starting tap should not flap, velocity = %v", v)
	}

	m, _ = update(t, m, spaceKey)
	if v := m.session.State().Avatar.Vel; v != m.opts.Config.Physics.FlapImpulse {
		t.Errorf("second tap should flap, velocity = %v", v)
	}
}

func TestStaleFramesDropped(t *testing.T) {
	m := NewGameModel(testOptions(nil, 1))
	oldEpoch := m.epoch
	m, _ = update(t, m, spaceKey)
	startY := m.Snapshot().AvatarY

	m, cmd := update(t, m, FrameMsg{Epoch: oldEpoch})
	if cmd != nil || m.Snapshot().AvatarY != startY {
		t.Fatal("a frame from an older run must be ignored")
	}
	m, _ = update(t, m, SpawnMsg{Epoch: oldEpoch})
	if len(m.Snapshot().Obstacles) != 0 {
		t.Fatal("a spawn from an older run must be ignored")
	}

	m, cmd = update(t, m, FrameMsg{Epoch: m.epoch})
	if cmd == nil || m.Snapshot().AvatarY == startY {
		t.Error("a current frame should tick and schedule the next one")
	}
	m, cmd = update(t, m, SpawnMsg{Epoch: m.epoch})
	if cmd == nil || len(m.Snapshot().Obstacles) != 1 {
		t.Error("a current spawn should add an obstacle and schedule the next one")
	}
}

// fallToGameOver ticks without flapping until the avatar hits the ground.
func fallToGameOver(t *testing.T, m GameModel) GameModel {
	t.Helper()
	for i := 0; i < 500 && !m.Snapshot().GameOver(); i++ {
		m, _ = update(t, m, FrameMsg{Epoch: m.epoch})
	}
	if !m.Snapshot().GameOver() {
		t.Fatal("session never ended")
	}
	return m
}

func TestGameOverSavesScoreAndTapRestarts(t *testing.T) {
	store := &fakeStore{}
	m := NewGameModel(testOptions(store, 1))
	m, _ = update(t, m, spaceKey)

	m = fallToGameOver(t, m)

	if len(store.saved) != 1 || store.saved[0] != (savedScore{"alice", 0}) {
		t.Fatalf("saved scores = %+v, expected one entry for alice", store.saved)
	}

	_, cmd := update(t, m, FrameMsg{Epoch: m.epoch})
	if cmd != nil {
		t.Error("frames after game over should stop the loop")
	}

	m, cmd = update(t, m, spaceKey)
	snap := m.Snapshot()
	if snap.GameOver() || !snap.Started || !snap.Running || snap.Lives != 1 {
		t.Errorf("tap after game over should restart, got %+v", snap)
	}
	if cmd == nil {
		t.Error("restart should schedule a new frame loop")
	}
	if len(store.saved) != 1 {
		t.Error("restart must not save again")
	}
}

func TestGameOverWithoutPlayerSkipsSave(t *testing.T) {
	store := &fakeStore{}
	opts := testOptions(store, 1)
	opts.Runtime.Player = ""
	m := NewGameModel(opts)
	m, _ = update(t, m, spaceKey)

	fallToGameOver(t, m)

	if len(store.saved) != 0 {
		t.Errorf("score saved without a player: %+v", store.saved)
	}
}

func TestSaveErrorDoesNotBreakGame(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	m := NewGameModel(testOptions(store, 1))
	m, _ = update(t, m, spaceKey)

	m = fallToGameOver(t, m)
	if m.Snapshot().Running {
		t.Error("session should have ended")
	}
}

func TestRestartKeyOnlyAfterGameOver(t *testing.T) {
	m := NewGameModel(testOptions(nil, 1))
	m, _ = update(t, m, spaceKey)
	m, _ = update(t, m, runeKey('r'))
	if !m.Snapshot().Started {
		t.Fatal("restart key should be ignored while playing")
	}

	m = fallToGameOver(t, m)
	m, _ = update(t, m, runeKey('r'))
	snap := m.Snapshot()
	if snap.Started || !snap.Running || snap.GameOver() {
		t.Errorf("restart after game over should leave a fresh idle session, got %+v", snap)
	}
}

func TestLivesMessageResetsOnChange(t *testing.T) {
	opts := testOptions(nil, 2)
	opts.Inventory = "inventory.yaml"
	m := NewGameModel(opts)
	m, _ = update(t, m, spaceKey)

	m, cmd := update(t, m, LivesMsg{Token: m.pollToken, Count: 2})
	if !m.Snapshot().Started || cmd == nil {
		t.Fatal("an unchanged count should not reset but keep polling")
	}

	m, _ = update(t, m, LivesMsg{Token: m.pollToken + 1000, Count: 5})
	if m.Snapshot().Lives != 2 {
		t.Fatal("a message from another screen must be ignored")
	}

	m, _ = update(t, m, LivesMsg{Token: m.pollToken, Err: errors.New("missing")})
	if m.Snapshot().Lives != 2 || !m.Snapshot().Started {
		t.Fatal("a read error should keep the session")
	}

	m, _ = update(t, m, LivesMsg{Token: m.pollToken, Count: 4})
	snap := m.Snapshot()
	if snap.Lives != 4 || snap.Started {
		t.Errorf("a new count should reset with 4 lives, got %+v", snap)
	}

	m, _ = update(t, m, LivesMsg{Token: m.pollToken, Count: 0})
	if m.Snapshot().Lives != 1 {
		t.Errorf("zero tokens should give one life, got %d", m.Snapshot().Lives)
	}
}

func TestBackStopsSession(t *testing.T) {
	m := NewGameModel(testOptions(nil, 3))
	m, _ = update(t, m, spaceKey)
	epoch := m.epoch

	m, _ = update(t, m, escKey)
	if !m.BackToMenu() {
		t.Fatal("esc should request the menu")
	}
	if m.Snapshot().Running {
		t.Error("leaving the game should stop the session")
	}
	if _, cmd := update(t, m, FrameMsg{Epoch: epoch}); cmd != nil {
		t.Error("frames of the stopped run should be dropped")
	}
}

func TestQuitKey(t *testing.T) {
	m := NewGameModel(testOptions(nil, 1))
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestViewRendersGame(t *testing.T) {
	m := NewGameModel(testOptions(nil, 3))
	if m.View() == "" {
		t.Error("expected a rendered screen")
	}
	m.render()
	if m.screen.Get(0, m.screen.Height()-1) != flappy.GroundChar {
		t.Error("expected the ground on the last row")
	}
}

func TestAppNavigation(t *testing.T) {
	store := &fakeStore{}
	app := NewAppModel(store, testOptions(nil, 1))

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := app.Update(msg)
		var ok bool
		if app, ok = next.(AppModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}

	step(enterKey)
	if app.current != screenGame {
		t.Fatalf("Play should open the game, screen = %v", app.current)
	}

	step(escKey)
	if app.current != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %v", app.current)
	}

	step(downKey)
	step(enterKey)
	if app.current != screenScores {
		t.Fatalf("High Scores should open the leaderboard, screen = %v", app.current)
	}

	step(escKey)
	if app.current != screenMenu {
		t.Fatalf("esc should leave the leaderboard, screen = %v", app.current)
	}

	step(runeKey('q'))
	if !app.quitting {
		t.Error("q on the menu should quit")
	}
}

func TestAppGameSavesToStore(t *testing.T) {
	store := &fakeStore{}
	app := NewAppModel(store, testOptions(nil, 1))

	next, _ := app.Update(enterKey)
	app = next.(AppModel)
	next, _ = app.Update(spaceKey)
	app = next.(AppModel)

	for i := 0; i < 500 && !app.game.Snapshot().GameOver(); i++ {
		next, _ = app.Update(FrameMsg{Epoch: app.game.epoch})
		app = next.(AppModel)
	}
	if len(store.saved) != 1 {
		t.Errorf("app game should save through the shared store, saved = %+v", store.saved)
	}
}

func TestScoreboardView(t *testing.T) {
	store := &fakeStore{saved: []savedScore{{"alice", 12}, {"bob", 7}}}
	m := NewScoreboardModel(store, 80, 24)
	if len(m.scores) != 2 {
		t.Fatalf("loaded %d scores", len(m.scores))
	}
	if m.View() == "" {
		t.Error("expected a rendered leaderboard")
	}

	empty := NewScoreboardModel(nil, 80, 24)
	if empty.renderTableContent() == "" {
		t.Error("expected a placeholder without a store")
	}
}
