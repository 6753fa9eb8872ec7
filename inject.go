package gamefw

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// InputFrame is one frame of synthetic input. Positions are screen
// coordinates, as real devices report them.
type InputFrame struct {
	Keys         []ebiten.Key
	Mouse        Vec2
	MouseButtons []MouseButton
	Wheel        Vec2
	Touches      []TouchPoint
	Gestures     []Gesture
}

// ScriptedInput is an InputContext fed from a queue of synthetic frames
// instead of devices. Each Advance consumes one frame. When the queue runs
// dry the last frame repeats without its gestures, so held keys stay held
// and one-shot gestures do not refire.
type ScriptedInput struct {
	queue []InputFrame
	last  InputFrame
	caps  TouchCapabilities

	keyboard KeyboardState
	mouse    MouseState
	touch    TouchState
}

// NewScriptedInput returns an empty queue reporting a connected touch
// surface with gesture support.
func NewScriptedInput() *ScriptedInput {
	s := &ScriptedInput{
		caps: TouchCapabilities{
			IsConnected:        true,
			MaximumTouchCount:  maxTouches,
			IsGestureAvailable: true,
		},
	}
	s.apply(InputFrame{})
	return s
}

// SetCapabilities overrides the reported touch capabilities.
func (s *ScriptedInput) SetCapabilities(caps TouchCapabilities) {
	s.caps = caps
	s.touch.TouchCapabilities = caps
}

// Push queues frames.
func (s *ScriptedInput) Push(frames ...InputFrame) {
	s.queue = append(s.queue, frames...)
}

// Pending returns the number of queued frames.
func (s *ScriptedInput) Pending() int { return len(s.queue) }

// Advance makes the next queued frame current. It returns false when the
// queue was empty and the last frame was repeated.
func (s *ScriptedInput) Advance() bool {
	if len(s.queue) == 0 {
		repeat := s.last
		repeat.Gestures = nil
		s.apply(repeat)
		return false
	}
	f := s.queue[0]
	copy(s.queue, s.queue[1:])
	s.queue = s.queue[:len(s.queue)-1]
	s.apply(f)
	return true
}

func (s *ScriptedInput) apply(f InputFrame) {
	s.last = f
	s.keyboard = NewKeyboardState(f.Keys...)
	s.mouse = NewMouseState(f.Mouse, f.MouseButtons...)
	s.mouse.Wheel = f.Wheel
	touches := make([]TouchPoint, len(f.Touches))
	for i, tp := range f.Touches {
		if tp.AbsolutePosition == (Vec2{}) {
			tp.AbsolutePosition = tp.Position
		}
		touches[i] = tp
	}
	s.touch = TouchState{
		TouchCapabilities: s.caps,
		Touches:           touches,
		Gestures:          slices.Clone(f.Gestures),
	}
}

func (s *ScriptedInput) KeyboardState() KeyboardState { return s.keyboard }
func (s *ScriptedInput) MouseState() MouseState { return s.mouse }
func (s *ScriptedInput) TouchState() TouchState { return s.touch }

// PushKeys queues frames frames with keys held down.
func (s *ScriptedInput) PushKeys(frames int, keys ...ebiten.Key) {
	for range frames {
		s.Push(InputFrame{Keys: slices.Clone(keys)})
	}
}

// PushIdle queues frames frames with nothing pressed.
func (s *ScriptedInput) PushIdle(frames int) {
	for range frames {
		s.Push(InputFrame{})
	}
}

// PushClick queues a left-button press followed by a release at pos.
// Consumes two frames.
func (s *ScriptedInput) PushClick(pos Vec2) {
	s.Push(
		InputFrame{Mouse: pos, MouseButtons: []MouseButton{MouseButtonLeft}},
		InputFrame{Mouse: pos},
	)
}

// PushDrag queues a left-button drag: press at from, linearly interpolated
// moves, release at to. The sequence consumes frames frames (minimum 2).
func (s *ScriptedInput) PushDrag(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	left := []MouseButton{MouseButtonLeft}
	s.Push(InputFrame{Mouse: from, MouseButtons: left})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.Push(InputFrame{Mouse: from.Add(to.Sub(from).Scale(t)), MouseButtons: left})
	}
	s.Push(InputFrame{Mouse: to})
}

// PushGestures queues one frame reporting gestures.
func (s *ScriptedInput) PushGestures(gestures ...Gesture) {
	s.Push(InputFrame{Gestures: slices.Clone(gestures)})
}
