package gamefw

import (
	"fmt"
	"math"
	"strings"
)

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by f on both axes.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Location returns the top-left corner of the rectangle.
func (r Rect) Location() Vec2 { return Vec2{r.X, r.Y} }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsVec is Contains for a Vec2.
func (r Rect) ContainsVec(p Vec2) bool {
	return r.Contains(p.X, p.Y)
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

func (r Rect) String() string {
	return fmt.Sprintf("{X:%.1f Y:%.1f W:%.1f H:%.1f}", r.X, r.Y, r.Width, r.Height)
}

// Viewport is the pixel size of the window area a camera renders into.
type Viewport struct {
	Width, Height int
}

// Size returns the viewport extents as a vector.
func (v Viewport) Size() Vec2 {
	return Vec2{float64(v.Width), float64(v.Height)}
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// CameraCenter selects which point of the viewport the camera position maps to.
type CameraCenter uint8

const (
	WindowTopLeft CameraCenter = iota // position is shown at the viewport's top-left corner
	WindowCenter                      // position is shown at the viewport's center
)

// CameraMode controls whether a layer is drawn through the camera or pinned
// to the screen.
type CameraMode uint8

const (
	CameraModeMove CameraMode = iota // positions are scene space, transformed by the camera
	CameraModeFix                    // positions are screen space, camera ignored
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	mouseButtonCount
)

var mouseButtonNames = [mouseButtonCount]string{"left", "right", "middle"}

func (b MouseButton) String() string {
	if b < mouseButtonCount {
		return mouseButtonNames[b]
	}
	return fmt.Sprintf("MouseButton(%d)", uint8(b))
}

// ButtonState is the per-frame lifecycle state of a DigitalButton.
type ButtonState uint8

const (
	ButtonUp       ButtonState = iota // not down this frame nor last
	ButtonPressed                     // newly down this frame
	ButtonHeld                        // down this frame and last
	ButtonReleased                    // newly up this frame
)

func (s ButtonState) String() string {
	switch s {
	case ButtonUp:
		return "Up"
	case ButtonPressed:
		return "Pressed"
	case ButtonHeld:
		return "Held"
	case ButtonReleased:
		return "Released"
	}
	return fmt.Sprintf("ButtonState(%d)", uint8(s))
}

// GestureType classifies a touch interaction.
type GestureType uint8

const (
	GestureNone           GestureType = iota
	GestureTap                        // short press and release without movement
	GestureDoubleTap                  // two taps in quick succession
	GestureHold                       // press held in place
	GestureHorizontalDrag             // drag dominated by the X axis
	GestureVerticalDrag               // drag dominated by the Y axis
	GestureFreeDrag                   // drag in any direction
	GesturePinch                      // two touches moving
	GestureFlick                      // fast release after a drag
	GestureDragComplete               // release that ends a drag
	GesturePinchComplete              // end of a pinch

	gestureTypeCount
)

var gestureNames = [gestureTypeCount]string{
	"None", "Tap", "DoubleTap", "Hold", "HorizontalDrag", "VerticalDrag",
	"FreeDrag", "Pinch", "Flick", "DragComplete", "PinchComplete",
}

func (g GestureType) String() string {
	if g < gestureTypeCount {
		return gestureNames[g]
	}
	return fmt.Sprintf("GestureType(%d)", uint8(g))
}

// ParseGestureType resolves a gesture type name such as "Tap" or "pinch".
func ParseGestureType(name string) (GestureType, error) {
	for i, n := range gestureNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return GestureType(i), nil
		}
	}
	return GestureNone, fmt.Errorf("gamefw: unknown gesture %q: %w", name, ErrInvalidArgument)
}

// Gesture is a classified touch interaction. Position2 and Delta2 are only
// meaningful for pinch gestures.
type Gesture struct {
	Type      GestureType
	Position  Vec2
	Position2 Vec2
	Delta     Vec2
	Delta2    Vec2
}

func (g Gesture) String() string {
	return fmt.Sprintf("%s@%s", g.Type, g.Position)
}
