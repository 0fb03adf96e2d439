package core

// RuntimeConfig contains platform settings passed to a game at start.
// The engine's own tunables live in the config package; this only carries
// what the terminal and the launcher decide.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for obstacle placement, 0 = time based
	Lives    int    // Life count from the inventory lookup, <= 0 means 1
	Player   string // Leaderboard name, empty disables score saving
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Lives:    1,
	}
}
