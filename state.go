package gamefw

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Keyboard ---

// KeyboardState is an immutable snapshot of the keys held down in one frame.
type KeyboardState struct {
	keys []ebiten.Key // sorted, unique
}

// NewKeyboardState builds a snapshot with the given keys down.
func NewKeyboardState(down ...ebiten.Key) KeyboardState {
	keys := slices.Clone(down)
	slices.Sort(keys)
	return KeyboardState{keys: slices.Compact(keys)}
}

// IsKeyDown reports whether k is held in this snapshot.
func (s KeyboardState) IsKeyDown(k ebiten.Key) bool {
	_, found := slices.BinarySearch(s.keys, k)
	return found
}

// IsKeyUp reports whether k is not held in this snapshot.
func (s KeyboardState) IsKeyUp(k ebiten.Key) bool {
	return !s.IsKeyDown(k)
}

// Keys returns a copy of the held keys in ascending order.
func (s KeyboardState) Keys() []ebiten.Key {
	return slices.Clone(s.keys)
}

func (s KeyboardState) String() string {
	names := make([]string, len(s.keys))
	for i, k := range s.keys {
		names[i] = k.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

// --- Mouse ---

// MouseState is an immutable snapshot of the mouse in one frame.
//
// AbsolutePosition is always in screen pixels. Position starts equal to it
// and becomes scene space once the state is adjusted to a camera.
type MouseState struct {
	Position         Vec2
	AbsolutePosition Vec2
	// Wheel is the scroll delta for this frame.
	Wheel Vec2

	buttons [mouseButtonCount]bool
}

// NewMouseState builds a snapshot at screen position pos with the given
// buttons down.
func NewMouseState(pos Vec2, down ...MouseButton) MouseState {
	m := MouseState{Position: pos, AbsolutePosition: pos}
	for _, b := range down {
		if b < mouseButtonCount {
			m.buttons[b] = true
		}
	}
	return m
}

// IsButtonDown reports whether b is held in this snapshot.
func (m MouseState) IsButtonDown(b MouseButton) bool {
	return b < mouseButtonCount && m.buttons[b]
}

// AdjustToCamera returns a copy whose Position is AbsolutePosition mapped to
// the camera's scene space. A nil camera leaves positions in screen space.
func (m MouseState) AdjustToCamera(cam *Camera) MouseState {
	m.Position = sceneMapper(cam)(m.AbsolutePosition)
	return m
}

func (m MouseState) String() string {
	var down []string
	for b := MouseButton(0); b < mouseButtonCount; b++ {
		if m.buttons[b] {
			down = append(down, b.String())
		}
	}
	return fmt.Sprintf("%s [%s]", m.Position, strings.Join(down, " "))
}

// --- Touch ---

// TouchPoint is one finger on the touch surface.
type TouchPoint struct {
	ID               int
	Position         Vec2
	AbsolutePosition Vec2
	Pressure         float64
}

func (p TouchPoint) String() string {
	return fmt.Sprintf("#%d%s", p.ID, p.Position)
}

// TouchCapabilities describes the touch device.
type TouchCapabilities struct {
	IsConnected        bool
	HasPressure        bool
	MaximumTouchCount  int
	IsGestureAvailable bool
}

// TouchState is an immutable snapshot of the touch surface in one frame,
// including every gesture classified during the frame.
type TouchState struct {
	TouchCapabilities
	Touches  []TouchPoint
	Gestures []Gesture
}

// CurrentGesture returns the most recent gesture of the frame, or a
// GestureNone gesture when there was none.
func (t TouchState) CurrentGesture() Gesture {
	if len(t.Gestures) == 0 {
		return Gesture{Type: GestureNone}
	}
	return t.Gestures[len(t.Gestures)-1]
}

// AdjustToCamera returns a copy with touch and gesture positions mapped to the
// camera's scene space. The receiver's slices are not modified.
func (t TouchState) AdjustToCamera(cam *Camera) TouchState {
	if cam == nil {
		return t
	}
	toScene := cam.ToScene

	touches := make([]TouchPoint, len(t.Touches))
	for i, p := range t.Touches {
		p.Position = toScene(p.AbsolutePosition)
		touches[i] = p
	}
	gestures := make([]Gesture, len(t.Gestures))
	for i, g := range t.Gestures {
		g.Position = toScene(g.Position)
		g.Position2 = toScene(g.Position2)
		g.Delta = cam.ToSceneDelta(g.Delta)
		g.Delta2 = cam.ToSceneDelta(g.Delta2)
		gestures[i] = g
	}
	t.Touches = touches
	t.Gestures = gestures
	return t
}
