package gamefw

// KeyboardTracking forwards the keyboard snapshot to a callback every frame.
type KeyboardTracking struct {
	onKeys func(KeyboardState, GameTiming)
}

// OnKeys registers the callback, replacing any previous one.
func (k *KeyboardTracking) OnKeys(fn func(KeyboardState, GameTiming)) *KeyboardTracking {
	k.onKeys = fn
	return k
}

// Update invokes the callback with the frame's keyboard state. No-op when no
// callback is registered.
func (k *KeyboardTracking) Update(state KeyboardState, timing GameTiming) bool {
	if k.onKeys == nil {
		return false
	}
	k.onKeys(state, timing)
	return true
}

// MouseTracking forwards the mouse snapshot, adjusted into the camera's scene
// space, to a callback every frame.
type MouseTracking struct {
	camera *Camera
	onMove func(MouseState, GameTiming)
}

// OnMove registers the callback, replacing any previous one.
func (m *MouseTracking) OnMove(fn func(MouseState, GameTiming)) *MouseTracking {
	m.onMove = fn
	return m
}

// Camera returns the camera used for coordinate adjustment (may be nil).
func (m *MouseTracking) Camera() *Camera { return m.camera }

// Update adjusts state to the camera and invokes the callback. No-op when no
// callback is registered.
func (m *MouseTracking) Update(state MouseState, timing GameTiming) bool {
	if m.onMove == nil {
		return false
	}
	m.onMove(state.AdjustToCamera(m.camera), timing)
	return true
}

// TouchTracking forwards the touch snapshot, adjusted into the camera's scene
// space, to a callback every frame.
type TouchTracking struct {
	camera  *Camera
	onTouch func(TouchState, GameTiming)
}

// OnTouch registers the callback, replacing any previous one.
func (t *TouchTracking) OnTouch(fn func(TouchState, GameTiming)) *TouchTracking {
	t.onTouch = fn
	return t
}

// Camera returns the camera used for coordinate adjustment (may be nil).
func (t *TouchTracking) Camera() *Camera { return t.camera }

// Update adjusts state to the camera and invokes the callback. No-op when no
// callback is registered.
func (t *TouchTracking) Update(state TouchState, timing GameTiming) bool {
	if t.onTouch == nil {
		return false
	}
	t.onTouch(state.AdjustToCamera(t.camera), timing)
	return true
}
