// Package tui provides the Bubble Tea front end: the game screen, the title
// menu, the leaderboard and the SSH server that serves them remotely.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PekerRian/meowdy/internal/inventory"
)

// epochs hands out run tokens that are unique across all game screens of the
// process, so a message scheduled by a closed screen never matches a new one.
var epochs atomic.Uint64

func nextEpoch() uint64 {
	return epochs.Add(1)
}

// FrameMsg triggers one simulation tick. Epoch identifies the run that
// scheduled it; messages from an older run are dropped.
type FrameMsg struct {
	Epoch uint64
}

// SpawnMsg triggers one obstacle spawn for the run identified by Epoch.
type SpawnMsg struct {
	Epoch uint64
}

// LivesMsg carries a freshly read life count from the inventory file.
type LivesMsg struct {
	Token uint64
	Count int
	Err   error
}

// frameCmd schedules the next frame at the given tick rate.
func frameCmd(epoch uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return FrameMsg{Epoch: epoch}
	})
}

// spawnCmd schedules the next spawn after interval.
func spawnCmd(epoch uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return SpawnMsg{Epoch: epoch}
	})
}

// livesCmd reads the inventory after delay.
func livesCmd(token uint64, path, keyword string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		n, err := inventory.LifeCount(path, keyword)
		return LivesMsg{Token: token, Count: n, Err: err}
	})
}
