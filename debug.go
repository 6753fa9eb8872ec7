package gamefw

import (
	"fmt"
	"os"
	"time"
)

// inputStats holds per-frame callback counts and timing.
// Only populated when InputConfiguration.debug is true.
type inputStats struct {
	frame     uint64
	duration  time.Duration
	trackings int
	buttons   int
	visuals   int
	events    int
}

func (s inputStats) callbacks() int {
	return s.trackings + s.buttons + s.visuals + s.events
}

// debugLogInput prints input stats to stderr. Frames where no callback ran
// are skipped.
func debugLogInput(stats inputStats) {
	if stats.callbacks() == 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[gamefw] frame %d | update: %v | trackings: %d | buttons: %d | visuals: %d | events: %d\n",
		stats.frame, stats.duration, stats.trackings, stats.buttons, stats.visuals, stats.events)
}

// debugLogf prints a prefixed line to stderr.
func debugLogf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[gamefw] "+format+"\n", args...)
}

// debugWarnZoom warns when a zoom factor is outside the range most scenes
// render sensibly at.
const (
	debugMinZoom = 0.01
	debugMaxZoom = 100
)

func debugWarnZoom(z float64) {
	if z < debugMinZoom || z > debugMaxZoom {
		debugLogf("warning: camera zoom %g outside [%g, %g]", z, debugMinZoom, debugMaxZoom)
	}
}
