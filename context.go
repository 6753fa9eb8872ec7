package gamefw

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxTouches is the touch count reported as the device capability.
const maxTouches = 10

// InputContext supplies the raw input snapshot for one frame. Every call
// within a frame must return the same values.
type InputContext interface {
	KeyboardState() KeyboardState
	MouseState() MouseState
	TouchState() TouchState
}

// EbitenInput is an InputContext that polls Ebitengine. Call Poll once at the
// start of each update tick; the getters return that frame's snapshot.
type EbitenInput struct {
	keyboard KeyboardState
	mouse    MouseState
	touch    TouchState

	gestures *GestureRecognizer
	keyBuf   []ebiten.Key
	touchIDs []ebiten.TouchID
}

// NewEbitenInput creates a poller with a default gesture recognizer.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{gestures: NewGestureRecognizer()}
}

// Gestures returns the recognizer so thresholds can be tuned.
func (in *EbitenInput) Gestures() *GestureRecognizer {
	return in.gestures
}

// Poll captures keyboard, mouse and touch state for the frame at game time
// timing.Total().
func (in *EbitenInput) Poll(timing GameTiming) {
	in.keyBuf = inpututil.AppendPressedKeys(in.keyBuf[:0])
	in.keyboard = NewKeyboardState(in.keyBuf...)

	mx, my := ebiten.CursorPosition()
	var down []MouseButton
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		down = append(down, MouseButtonLeft)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		down = append(down, MouseButtonRight)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		down = append(down, MouseButtonMiddle)
	}
	in.mouse = NewMouseState(Vec2{float64(mx), float64(my)}, down...)
	wx, wy := ebiten.Wheel()
	in.mouse.Wheel = Vec2{wx, wy}

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	touches := make([]TouchPoint, 0, len(in.touchIDs))
	for _, tid := range in.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		p := Vec2{float64(tx), float64(ty)}
		touches = append(touches, TouchPoint{ID: int(tid), Position: p, AbsolutePosition: p, Pressure: 1})
	}
	gestures := in.gestures.Update(touches, timing.Total())

	in.touch = TouchState{
		TouchCapabilities: TouchCapabilities{
			// Ebitengine has no device query; any touch seen means a
			// touch surface exists.
			IsConnected:        len(touches) > 0 || in.touch.IsConnected,
			MaximumTouchCount:  maxTouches,
			IsGestureAvailable: true,
		},
		Touches:  touches,
		Gestures: slices.Clone(gestures),
	}
}

func (in *EbitenInput) KeyboardState() KeyboardState { return in.keyboard }
func (in *EbitenInput) MouseState() MouseState { return in.mouse }
func (in *EbitenInput) TouchState() TouchState { return in.touch }
