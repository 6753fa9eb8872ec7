package navigator

import (
	"fmt"

	"github.com/phanxgames/gamefw"
)

// Model is the navigator's view state: whether the game runs, single
// stepping, and exit requests. It is owned by the dispatcher goroutine.
type Model struct {
	playing bool
	steps   int
	exit    bool

	frames    uint64
	lastTotal float64
}

// NewModel returns a model in the playing state.
func NewModel() *Model {
	return &Model{playing: true}
}

// Play resumes the game.
func (m *Model) Play() {
	m.playing = true
	m.steps = 0
}

// Pause stops game updates.
func (m *Model) Pause() { m.playing = false }

// TogglePlay switches between Play and Pause.
func (m *Model) TogglePlay() {
	if m.playing {
		m.Pause()
		return
	}
	m.Play()
}

// Step lets exactly one more update run while paused.
func (m *Model) Step() {
	if !m.playing {
		m.steps++
	}
}

// Exit asks the game to quit.
func (m *Model) Exit() { m.exit = true }

// Playing reports whether the game runs freely.
func (m *Model) Playing() bool { return m.playing }

// Frames returns the number of updates the model allowed.
func (m *Model) Frames() uint64 { return m.frames }

// Update decides whether the coming game update may run.
func (m *Model) Update(timing gamefw.GameTiming) gamefw.NavigatorMessage {
	m.lastTotal = timing.TotalSeconds()
	play := m.playing
	if !play && m.steps > 0 {
		m.steps--
		play = true
	}
	if play {
		m.frames++
	}
	return gamefw.NavigatorMessage{ShouldPlay: play, ShouldExit: m.exit}
}

// Title is the navigator window title.
func (m *Model) Title() string {
	if m.playing {
		return "Navigator"
	}
	return "Navigator - Pause"
}

func (m *Model) String() string {
	return fmt.Sprintf("%s frames=%d t=%.2fs", m.Title(), m.frames, m.lastTotal)
}
