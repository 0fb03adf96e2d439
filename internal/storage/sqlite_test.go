package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		player string
		score  int
	}{
		{"0xcafe", 100},
		{"alice", 50},
		{"0xcafe", 200},
		{"bob", 100},
	}
	for _, s := range saves {
		if _, err := store.SaveScore(s.player, s.score); err != nil {
			t.Fatalf("SaveScore(%q, %d) failed: %v", s.player, s.score, err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	expected := []struct {
		player string
		score  int
	}{
		{"0xcafe", 200},
		{"0xcafe", 100},
		{"bob", 100},
		{"alice", 50},
	}
	for i, e := range expected {
		if scores[i].Player != e.player || scores[i].Score != e.score {
			t.Errorf("entry %d = %s/%d, expected %s/%d", i, scores[i].Player, scores[i].Score, e.player, e.score)
		}
	}
}

func TestStoreSaveRejectsInvalid(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore("   ", 10); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("blank player error = %v, expected ErrNoPlayer", err)
	}
	if _, err := store.SaveScore("alice", -1); !errors.Is(err, ErrNegativeScore) {
		t.Errorf("negative score error = %v, expected ErrNegativeScore", err)
	}

	scores, err := store.TopScores(0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("invalid saves should not be stored, got %d entries", len(scores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore("alice", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	tests := []struct {
		limit    int
		expected int
	}{
		{5, 5},
		{0, DefaultTopLimit},
		{-3, DefaultTopLimit},
		{50, 20},
	}
	for _, tc := range tests {
		scores, err := store.TopScores(tc.limit)
		if err != nil {
			t.Fatalf("TopScores(%d) failed: %v", tc.limit, err)
		}
		if len(scores) != tc.expected {
			t.Errorf("TopScores(%d) returned %d entries, expected %d", tc.limit, len(scores), tc.expected)
		}
	}

	top, _ := store.TopScores(1)
	if top[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", top[0].Score)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score 0 for empty board, got %d", high)
	}

	store.SaveScore("alice", 100)
	store.SaveScore("bob", 300)
	store.SaveScore("alice", 200)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStorePlayerBest(t *testing.T) {
	store := openTestStore(t)

	if _, played, err := store.PlayerBest("alice"); err != nil || played {
		t.Fatalf("PlayerBest on empty board = played %v, err %v", played, err)
	}

	store.SaveScore("alice", 7)
	store.SaveScore("alice", 0)
	store.SaveScore("bob", 40)

	best, played, err := store.PlayerBest("alice")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if !played || best != 7 {
		t.Errorf("PlayerBest(alice) = %d, %v, expected 7, true", best, played)
	}

	scores, err := store.PlayerScores("alice")
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 7 || scores[1].Score != 0 {
		t.Errorf("PlayerScores(alice) = %+v", scores)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty board stats = %+v", stats)
	}

	store.SaveScore("alice", 10)
	store.SaveScore("bob", 20)
	store.SaveScore("alice", 30)

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.PlayersCount != 2 {
		t.Errorf("counts = %d games, %d players", stats.GamesCount, stats.PlayersCount)
	}
	if stats.HighScore != 30 || stats.TotalScore != 60 || stats.AvgScore != 20 {
		t.Errorf("aggregates = %+v", stats)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("alice", 100)
	store.SaveScore("bob", 200)

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := expandHome("~/.meowdy/scores.db")
	if err != nil {
		t.Fatalf("expandHome failed: %v", err)
	}
	if got != filepath.Join(home, ".meowdy", "scores.db") {
		t.Errorf("expandHome = %q", got)
	}

	if got, _ := expandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}
