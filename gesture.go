package gamefw

import (
	"math"
	"slices"
	"time"
)

// Gesture recognition thresholds. Distances are screen pixels.
const (
	defaultDragDeadZone    = 10.0
	defaultTapMaxDuration  = 300 * time.Millisecond
	defaultDoubleTapWindow = 300 * time.Millisecond
	defaultDoubleTapRadius = 40.0
	defaultHoldDuration    = time.Second
	defaultFlickVelocity   = 1000.0 // pixels per second
)

// --- Per-touch state ---

type touchTrack struct {
	start     Vec2
	startTime time.Duration
	last      Vec2
	lastTime  time.Duration
	prev      Vec2
	prevTime  time.Duration
	dragging  bool
	holdFired bool
	pinched   bool
}

// --- Pinch state ---

type gesturePinch struct {
	active   bool
	id0, id1 int
	prev0    Vec2
	prev1    Vec2
}

// GestureRecognizer classifies per-frame touch points into gestures.
// Feed it every frame, including frames with no touches, so releases are seen.
// Positions are taken from TouchPoint.AbsolutePosition and gestures are
// reported in screen space.
type GestureRecognizer struct {
	// DragDeadZone is the movement in pixels before a touch becomes a drag.
	DragDeadZone float64
	// TapMaxDuration is the longest press that still counts as a tap.
	TapMaxDuration time.Duration
	// DoubleTapWindow is the maximum time between two taps of a double tap.
	DoubleTapWindow time.Duration
	// DoubleTapRadius is the maximum distance between two taps of a double tap.
	DoubleTapRadius float64
	// HoldDuration is how long a touch must stay in place to report Hold.
	HoldDuration time.Duration
	// FlickVelocity is the release speed in pixels per second that turns
	// the end of a drag into a flick.
	FlickVelocity float64

	tracks  map[int]*touchTrack
	pinch   gesturePinch
	lastTap struct {
		valid bool
		pos   Vec2
		at    time.Duration
	}
	idBuf []int
	out   []Gesture
}

// NewGestureRecognizer returns a recognizer with default thresholds.
func NewGestureRecognizer() *GestureRecognizer {
	return &GestureRecognizer{
		DragDeadZone:    defaultDragDeadZone,
		TapMaxDuration:  defaultTapMaxDuration,
		DoubleTapWindow: defaultDoubleTapWindow,
		DoubleTapRadius: defaultDoubleTapRadius,
		HoldDuration:    defaultHoldDuration,
		FlickVelocity:   defaultFlickVelocity,
		tracks:          make(map[int]*touchTrack),
	}
}

// Update consumes the touches down at time now and returns the gestures
// recognized this frame. The returned slice is reused by the next call.
func (r *GestureRecognizer) Update(touches []TouchPoint, now time.Duration) []Gesture {
	r.out = r.out[:0]

	current := make(map[int]Vec2, len(touches))
	for _, tp := range touches {
		current[tp.ID] = tp.AbsolutePosition
	}

	// Releases, in ID order for determinism.
	for _, id := range r.sortedIDs() {
		if _, down := current[id]; !down {
			r.release(id, now)
		}
	}

	// Presses and moves.
	for _, tp := range touches {
		pos := tp.AbsolutePosition
		tr, ok := r.tracks[tp.ID]
		if !ok {
			r.tracks[tp.ID] = &touchTrack{
				start: pos, startTime: now,
				last: pos, lastTime: now,
				prev: pos, prevTime: now,
			}
			continue
		}
		r.move(tr, pos, now)
	}

	r.detectPinch()
	return r.out
}

func (r *GestureRecognizer) sortedIDs() []int {
	r.idBuf = r.idBuf[:0]
	for id := range r.tracks {
		r.idBuf = append(r.idBuf, id)
	}
	slices.Sort(r.idBuf)
	return r.idBuf
}

func (r *GestureRecognizer) emit(g Gesture) {
	r.out = append(r.out, g)
}

// move runs the per-touch state machine for a touch that is still down.
func (r *GestureRecognizer) move(tr *touchTrack, pos Vec2, now time.Duration) {
	tr.prev, tr.prevTime = tr.last, tr.lastTime
	delta := pos.Sub(tr.last)
	tr.last, tr.lastTime = pos, now

	if tr.pinched {
		return
	}

	if !tr.dragging && pos.Sub(tr.start).Len() > r.DragDeadZone {
		tr.dragging = true
	}

	if tr.dragging {
		if delta != (Vec2{}) {
			r.emit(Gesture{Type: GestureFreeDrag, Position: pos, Delta: delta})
			if math.Abs(delta.X) >= math.Abs(delta.Y) {
				r.emit(Gesture{Type: GestureHorizontalDrag, Position: pos, Delta: Vec2{X: delta.X}})
			} else {
				r.emit(Gesture{Type: GestureVerticalDrag, Position: pos, Delta: Vec2{Y: delta.Y}})
			}
		}
		return
	}

	if !tr.holdFired && now-tr.startTime >= r.HoldDuration {
		tr.holdFired = true
		r.emit(Gesture{Type: GestureHold, Position: pos})
	}
}

// release finishes a touch that is no longer down.
func (r *GestureRecognizer) release(id int, now time.Duration) {
	tr := r.tracks[id]
	delete(r.tracks, id)

	switch {
	case tr.pinched:
		// The pinch itself reports completion.
	case tr.dragging:
		if dt := (tr.lastTime - tr.prevTime).Seconds(); dt > 0 {
			velocity := tr.last.Sub(tr.prev).Scale(1 / dt)
			if velocity.Len() >= r.FlickVelocity {
				r.emit(Gesture{Type: GestureFlick, Position: tr.last, Delta: velocity})
			}
		}
		r.emit(Gesture{Type: GestureDragComplete, Position: tr.last})
	case tr.holdFired:
		// Hold already reported; a long press is not a tap.
	case now-tr.startTime <= r.TapMaxDuration:
		if r.lastTap.valid && now-r.lastTap.at <= r.DoubleTapWindow &&
			tr.last.Sub(r.lastTap.pos).Len() <= r.DoubleTapRadius {
			r.lastTap.valid = false
			r.emit(Gesture{Type: GestureDoubleTap, Position: tr.last})
			return
		}
		r.lastTap.valid = true
		r.lastTap.pos = tr.last
		r.lastTap.at = now
		r.emit(Gesture{Type: GestureTap, Position: tr.last})
	}
}

// detectPinch reports Pinch while exactly two touches are down and moving,
// and PinchComplete when that stops being true.
func (r *GestureRecognizer) detectPinch() {
	if len(r.tracks) != 2 {
		if r.pinch.active {
			r.pinch.active = false
			r.emit(Gesture{Type: GesturePinchComplete, Position: r.pinch.prev0, Position2: r.pinch.prev1})
		}
		return
	}

	ids := r.sortedIDs()
	t0, t1 := r.tracks[ids[0]], r.tracks[ids[1]]

	if !r.pinch.active || r.pinch.id0 != ids[0] || r.pinch.id1 != ids[1] {
		r.pinch = gesturePinch{active: true, id0: ids[0], id1: ids[1], prev0: t0.last, prev1: t1.last}
		// Both fingers belong to the pinch now; suppress their drag/tap reporting.
		t0.pinched, t0.dragging = true, false
		t1.pinched, t1.dragging = true, false
		return
	}

	d0 := t0.last.Sub(r.pinch.prev0)
	d1 := t1.last.Sub(r.pinch.prev1)
	if d0 != (Vec2{}) || d1 != (Vec2{}) {
		r.emit(Gesture{
			Type:     GesturePinch,
			Position: t0.last, Position2: t1.last,
			Delta: d0, Delta2: d1,
		})
	}
	r.pinch.prev0 = t0.last
	r.pinch.prev1 = t1.last
}
