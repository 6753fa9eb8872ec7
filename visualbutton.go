package gamefw

import "slices"

// VisualButton is an on-screen rectangle that reacts to the mouse and to
// touch gestures.
//
// Without a camera the rectangle and pointer positions are compared in
// screen space. WithCamera makes the rectangle scene space: pointer
// positions are adjusted through the camera before the hit test.
//
// Hover policy: the hover callback runs every frame with the current hover
// state, true or false.
type VisualButton struct {
	name     string
	rect     Rect
	camera   *Camera
	gestures []GestureType

	hovering bool
	prevLeft bool

	onHover func(hovering bool, timing GameTiming)
	onClick func(GameTiming)
}

// Assign adds gesture types that click the button when they occur inside
// its rectangle.
func (v *VisualButton) Assign(types ...GestureType) *VisualButton {
	for _, g := range types {
		if !slices.Contains(v.gestures, g) {
			v.gestures = append(v.gestures, g)
		}
	}
	return v
}

// WithCamera makes hit tests run in the camera's scene space.
func (v *VisualButton) WithCamera(cam *Camera) *VisualButton {
	v.camera = cam
	return v
}

// MapHoverTo sets the callback invoked every frame with the hover state.
func (v *VisualButton) MapHoverTo(fn func(hovering bool, timing GameTiming)) *VisualButton {
	v.onHover = fn
	return v
}

// MapClickTo sets the callback fired when the button is clicked: the left
// mouse button is newly pressed inside it, or an assigned gesture occurs
// inside it. Fires at most once per frame.
func (v *VisualButton) MapClickTo(fn func(GameTiming)) *VisualButton {
	v.onClick = fn
	return v
}

// Name returns the registry name.
func (v *VisualButton) Name() string { return v.name }

// Rectangle returns the button's hit rectangle.
func (v *VisualButton) Rectangle() Rect { return v.rect }

// SetRectangle moves or resizes the button.
func (v *VisualButton) SetRectangle(r Rect) { v.rect = r }

// IsHovering reports the hover state computed by the last update.
func (v *VisualButton) IsHovering() bool { return v.hovering }

// hit reports whether any pointer of the frame is inside the rectangle and
// whether the button was clicked.
func (v *VisualButton) hit(ts TouchState, ms MouseState) (hover, click bool) {
	hover = v.rect.ContainsVec(ms.Position)
	for _, tp := range ts.Touches {
		if v.rect.ContainsVec(tp.Position) {
			hover = true
			break
		}
	}

	left := ms.IsButtonDown(MouseButtonLeft)
	if left && !v.prevLeft && v.rect.ContainsVec(ms.Position) {
		click = true
	}
	v.prevLeft = left

	for _, g := range ts.Gestures {
		if slices.Contains(v.gestures, g.Type) && v.rect.ContainsVec(g.Position) {
			click = true
			break
		}
	}
	return hover, click
}

// update recomputes hover and click and runs callbacks, reporting which ran.
func (v *VisualButton) update(ts TouchState, ms MouseState, timing GameTiming) (hoverFired, clickFired bool) {
	ts = ts.AdjustToCamera(v.camera)
	ms = ms.AdjustToCamera(v.camera)

	var click bool
	v.hovering, click = v.hit(ts, ms)

	if v.onHover != nil {
		v.onHover(v.hovering, timing)
		hoverFired = true
	}
	if click && v.onClick != nil {
		v.onClick(timing)
		clickFired = true
	}
	return hoverFired, clickFired
}
