package gamefw

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestScriptedInputDefaults(t *testing.T) {
	in := NewScriptedInput()
	ts := in.TouchState()
	if !ts.IsConnected || !ts.IsGestureAvailable || ts.MaximumTouchCount != maxTouches {
		t.Errorf("capabilities = %+v", ts.TouchCapabilities)
	}
	if len(in.KeyboardState().Keys()) != 0 {
		t.Error("keys down before any frame")
	}
	if in.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", in.Pending())
	}
}

func TestScriptedInputAdvance(t *testing.T) {
	in := NewScriptedInput()
	in.Push(
		InputFrame{Keys: []ebiten.Key{ebiten.KeyA}, Mouse: Vec2{1, 2}},
		InputFrame{MouseButtons: []MouseButton{MouseButtonRight}, Wheel: Vec2{0, -1}},
	)
	if in.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", in.Pending())
	}

	if !in.Advance() {
		t.Fatal("Advance returned false with frames queued")
	}
	if !in.KeyboardState().IsKeyDown(ebiten.KeyA) {
		t.Error("KeyA not down")
	}
	if ms := in.MouseState(); ms.Position != (Vec2{1, 2}) || ms.AbsolutePosition != (Vec2{1, 2}) {
		t.Errorf("mouse = %v", ms)
	}

	in.Advance()
	ms := in.MouseState()
	if !ms.IsButtonDown(MouseButtonRight) || ms.Wheel != (Vec2{0, -1}) {
		t.Errorf("mouse = %v wheel %v", ms, ms.Wheel)
	}
	if in.KeyboardState().IsKeyDown(ebiten.KeyA) {
		t.Error("KeyA still down")
	}
}

func TestScriptedInputRepeatsLastFrame(t *testing.T) {
	in := NewScriptedInput()
	in.Push(InputFrame{
		Keys:     []ebiten.Key{ebiten.KeySpace},
		Gestures: []Gesture{{Type: GestureTap}},
	})
	in.Advance()
	if len(in.TouchState().Gestures) != 1 {
		t.Fatal("gesture missing on its frame")
	}

	if in.Advance() {
		t.Error("Advance returned true on an empty queue")
	}
	if !in.KeyboardState().IsKeyDown(ebiten.KeySpace) {
		t.Error("held key not repeated")
	}
	if len(in.TouchState().Gestures) != 0 {
		t.Error("gesture repeated")
	}
}

func TestScriptedInputTouchAbsolutePosition(t *testing.T) {
	in := NewScriptedInput()
	in.Push(InputFrame{Touches: []TouchPoint{{ID: 3, Position: Vec2{7, 8}}}})
	in.Advance()
	tp := in.TouchState().Touches[0]
	if tp.AbsolutePosition != (Vec2{7, 8}) {
		t.Errorf("AbsolutePosition = %v, want (7, 8)", tp.AbsolutePosition)
	}
}

func TestScriptedInputSetCapabilities(t *testing.T) {
	in := NewScriptedInput()
	in.SetCapabilities(TouchCapabilities{HasPressure: true})
	if ts := in.TouchState(); ts.IsConnected || !ts.HasPressure {
		t.Errorf("capabilities = %+v", ts.TouchCapabilities)
	}
	in.PushIdle(1)
	in.Advance()
	if !in.TouchState().HasPressure {
		t.Error("capabilities lost on Advance")
	}
}

func TestScriptedInputPushDrag(t *testing.T) {
	in := NewScriptedInput()
	in.PushDrag(Vec2{0, 0}, Vec2{30, 0}, 4)
	if in.Pending() != 4 {
		t.Fatalf("Pending = %d, want 4", in.Pending())
	}

	wantX := []float64{0, 10, 20, 30}
	wantDown := []bool{true, true, true, false}
	for i := range wantX {
		in.Advance()
		ms := in.MouseState()
		if !approxEqual(ms.Position.X, wantX[i], epsilon) {
			t.Errorf("frame %d: x = %v, want %v", i, ms.Position.X, wantX[i])
		}
		if ms.IsButtonDown(MouseButtonLeft) != wantDown[i] {
			t.Errorf("frame %d: left down = %v", i, !wantDown[i])
		}
	}
}

func TestScriptedInputPushDragMinimumFrames(t *testing.T) {
	in := NewScriptedInput()
	in.PushDrag(Vec2{}, Vec2{5, 5}, 0)
	if in.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", in.Pending())
	}
}

func TestScriptedInputPushClickDrivesVisualButton(t *testing.T) {
	cfg := NewInputConfiguration()
	v, _ := cfg.AddVisualButton("OK", Rect{X: 0, Y: 0, Width: 20, Height: 20})
	clicks := 0
	v.MapClickTo(func(GameTiming) { clicks++ })

	in := NewScriptedInput()
	in.PushClick(Vec2{10, 10})
	in.PushClick(Vec2{10, 10})
	runFrames(t, cfg, in, NewGameTimer())

	if clicks != 2 {
		t.Errorf("clicks = %d, want 2", clicks)
	}
}
