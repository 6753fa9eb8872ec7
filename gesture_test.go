package gamefw

import (
	"slices"
	"testing"
	"time"
)

func touchAt(id int, x, y float64) TouchPoint {
	p := Vec2{x, y}
	return TouchPoint{ID: id, Position: p, AbsolutePosition: p}
}

func gestureTypes(gs []Gesture) []GestureType {
	out := make([]GestureType, len(gs))
	for i, g := range gs {
		out[i] = g.Type
	}
	return out
}

func msec(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// gestureStep is one recognizer frame and the gesture types it must report.
type gestureStep struct {
	at      time.Duration
	touches []TouchPoint
	want    []GestureType
}

func runSteps(t *testing.T, r *GestureRecognizer, steps []gestureStep) []Gesture {
	t.Helper()
	var last []Gesture
	for i, s := range steps {
		got := r.Update(s.touches, s.at)
		if !slices.Equal(gestureTypes(got), s.want) {
			t.Fatalf("step %d at %v: got %v, want %v", i, s.at, gestureTypes(got), s.want)
		}
		last = slices.Clone(got)
	}
	return last
}

func TestGestureTap(t *testing.T) {
	r := NewGestureRecognizer()
	last := runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(100), nil, []GestureType{GestureTap}},
	})
	if last[0].Position != (Vec2{10, 10}) {
		t.Errorf("tap position = %v, want (10, 10)", last[0].Position)
	}
}

func TestGestureMoveInsideDeadZoneIsTap(t *testing.T) {
	r := NewGestureRecognizer()
	runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(50), []TouchPoint{touchAt(1, 15, 13)}, []GestureType{}},
		{msec(100), nil, []GestureType{GestureTap}},
	})
}

func TestGestureDoubleTap(t *testing.T) {
	r := NewGestureRecognizer()
	runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(50), nil, []GestureType{GestureTap}},
		{msec(150), []TouchPoint{touchAt(2, 20, 15)}, []GestureType{}},
		{msec(200), nil, []GestureType{GestureDoubleTap}},
		// A third tap starts a new sequence.
		{msec(250), []TouchPoint{touchAt(3, 20, 15)}, []GestureType{}},
		{msec(300), nil, []GestureType{GestureTap}},
	})
}

func TestGestureDoubleTapTooFar(t *testing.T) {
	r := NewGestureRecognizer()
	runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(50), nil, []GestureType{GestureTap}},
		{msec(100), []TouchPoint{touchAt(2, 200, 10)}, []GestureType{}},
		{msec(150), nil, []GestureType{GestureTap}},
	})
}

func TestGestureDoubleTapTooLate(t *testing.T) {
	r := NewGestureRecognizer()
	runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(50), nil, []GestureType{GestureTap}},
		{msec(500), []TouchPoint{touchAt(2, 10, 10)}, []GestureType{}},
		{msec(550), nil, []GestureType{GestureTap}},
	})
}

func TestGestureLongPressIsNotTap(t *testing.T) {
	r := NewGestureRecognizer()
	runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(500), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(600), nil, []GestureType{}},
	})
}

func TestGestureHold(t *testing.T) {
	r := NewGestureRecognizer()
	runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(999), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(1000), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{GestureHold}},
		// Hold fires once per press.
		{msec(1500), []TouchPoint{touchAt(1, 10, 10)}, []GestureType{}},
		{msec(1600), nil, []GestureType{}},
	})
}

func TestGestureDragAndFlick(t *testing.T) {
	r := NewGestureRecognizer()
	runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 0, 0)}, []GestureType{}},
		{msec(16), []TouchPoint{touchAt(1, 20, 5)}, []GestureType{GestureFreeDrag, GestureHorizontalDrag}},
		{msec(32), []TouchPoint{touchAt(1, 20, 30)}, []GestureType{GestureFreeDrag, GestureVerticalDrag}},
		// 25px in 16ms is well above the flick velocity.
		{msec(48), nil, []GestureType{GestureFlick, GestureDragComplete}},
	})
}

func TestGestureDragDeltas(t *testing.T) {
	r := NewGestureRecognizer()
	r.Update([]TouchPoint{touchAt(1, 0, 0)}, 0)
	got := r.Update([]TouchPoint{touchAt(1, 20, 5)}, msec(16))
	if len(got) != 2 {
		t.Fatalf("got %v", gestureTypes(got))
	}
	if got[0].Delta != (Vec2{20, 5}) {
		t.Errorf("free drag delta = %v, want (20, 5)", got[0].Delta)
	}
	if got[1].Delta != (Vec2{20, 0}) {
		t.Errorf("horizontal drag delta = %v, want (20, 0)", got[1].Delta)
	}
}

func TestGestureSlowDragNoFlick(t *testing.T) {
	r := NewGestureRecognizer()
	runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 0, 0)}, []GestureType{}},
		{msec(100), []TouchPoint{touchAt(1, 50, 0)}, []GestureType{GestureFreeDrag, GestureHorizontalDrag}},
		{msec(200), []TouchPoint{touchAt(1, 52, 0)}, []GestureType{GestureFreeDrag, GestureHorizontalDrag}},
		// Stationary frame: no drag gestures.
		{msec(300), []TouchPoint{touchAt(1, 52, 0)}, []GestureType{}},
		{msec(400), nil, []GestureType{GestureDragComplete}},
	})
}

func TestGesturePinch(t *testing.T) {
	r := NewGestureRecognizer()
	steps := []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 0, 0), touchAt(2, 100, 0)}, []GestureType{}},
		{msec(16), []TouchPoint{touchAt(1, -10, 0), touchAt(2, 110, 0)}, []GestureType{GesturePinch}},
	}
	last := runSteps(t, r, steps)
	p := last[0]
	if p.Delta != (Vec2{-10, 0}) || p.Delta2 != (Vec2{10, 0}) {
		t.Errorf("pinch deltas = %v %v", p.Delta, p.Delta2)
	}
	if p.Position != (Vec2{-10, 0}) || p.Position2 != (Vec2{110, 0}) {
		t.Errorf("pinch positions = %v %v", p.Position, p.Position2)
	}

	runSteps(t, r, []gestureStep{
		// Fingers held still: no pinch.
		{msec(32), []TouchPoint{touchAt(1, -10, 0), touchAt(2, 110, 0)}, []GestureType{}},
		// Lifting one finger completes the pinch; no tap or drag.
		{msec(48), []TouchPoint{touchAt(1, -10, 0)}, []GestureType{GesturePinchComplete}},
		{msec(64), nil, []GestureType{}},
	})
}

func TestGestureRecognizerCustomThresholds(t *testing.T) {
	r := NewGestureRecognizer()
	r.DragDeadZone = 2
	r.HoldDuration = 100 * time.Millisecond
	runSteps(t, r, []gestureStep{
		{msec(0), []TouchPoint{touchAt(1, 0, 0)}, []GestureType{}},
		{msec(100), []TouchPoint{touchAt(1, 0, 0)}, []GestureType{GestureHold}},
		{msec(116), []TouchPoint{touchAt(1, 0, 3)}, []GestureType{GestureFreeDrag, GestureVerticalDrag}},
	})
}
