package gamefw

import (
	"fmt"
	"time"
)

// GameTiming is the read-only frame timing handed to every input callback.
type GameTiming interface {
	// Elapsed is the time since the previous update.
	Elapsed() time.Duration
	// Total is the time since the game started.
	Total() time.Duration
	// ElapsedSeconds is Elapsed in seconds.
	ElapsedSeconds() float64
	// TotalSeconds is Total in seconds.
	TotalSeconds() float64
	// UpdateFPS is the number of updates counted during the last full second.
	UpdateFPS() int
	// DrawFPS is the number of draws counted during the last full second.
	DrawFPS() int
}

// fpsCounter counts events per wall-clock second of game time.
type fpsCounter struct {
	count     int
	value     int
	windowEnd time.Duration
}

func (f *fpsCounter) tick(total time.Duration) {
	if f.windowEnd == 0 {
		f.windowEnd = total.Truncate(time.Second) + time.Second
	}
	for total >= f.windowEnd {
		f.value = f.count
		f.count = 0
		f.windowEnd += time.Second
	}
	f.count++
}

// GameTimer implements GameTiming. The host calls Update once per update
// tick and DrawFrame once per rendered frame.
type GameTimer struct {
	elapsed time.Duration
	total   time.Duration
	updates fpsCounter
	draws   fpsCounter
}

// NewGameTimer returns a timer at time zero.
func NewGameTimer() *GameTimer {
	return &GameTimer{}
}

// Update records an update tick.
func (t *GameTimer) Update(elapsed, total time.Duration) {
	t.elapsed = elapsed
	t.total = total
	t.updates.tick(total)
}

// Advance is Update with total derived from the previous total.
func (t *GameTimer) Advance(elapsed time.Duration) {
	t.Update(elapsed, t.total+elapsed)
}

// DrawFrame records a rendered frame.
func (t *GameTimer) DrawFrame(elapsed, total time.Duration) {
	t.draws.tick(total)
}

func (t *GameTimer) Elapsed() time.Duration { return t.elapsed }
func (t *GameTimer) Total() time.Duration { return t.total }
func (t *GameTimer) ElapsedSeconds() float64 { return t.elapsed.Seconds() }
func (t *GameTimer) TotalSeconds() float64 { return t.total.Seconds() }
func (t *GameTimer) UpdateFPS() int { return t.updates.value }
func (t *GameTimer) DrawFPS() int { return t.draws.value }

func (t *GameTimer) String() string {
	return fmt.Sprintf("total=%v elapsed=%v ups=%d fps=%d", t.total, t.elapsed, t.UpdateFPS(), t.DrawFPS())
}
