package gamefw

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// DigitalButton is a named logical button bound to zero or more keys and
// mouse buttons. It is down when any binding is down. Its state is
// recomputed once per frame by InputConfiguration.Update:
//
//	Up       -> Pressed   binding newly down
//	Pressed  -> Held      still down
//	Held     -> Held      still down
//	Pressed  -> Released  newly up
//	Held     -> Released  newly up
//	Released -> Up        still up
//	Released -> Pressed   down again
type DigitalButton struct {
	name  string
	keys  []ebiten.Key
	mouse []MouseButton
	state ButtonState

	onClick   func(GameTiming)
	onHold    func(GameTiming)
	onRelease func(GameTiming)
}

// Assign binds additional keys.
func (b *DigitalButton) Assign(keys ...ebiten.Key) *DigitalButton {
	for _, k := range keys {
		if !slices.Contains(b.keys, k) {
			b.keys = append(b.keys, k)
		}
	}
	return b
}

// AssignMouse binds additional mouse buttons.
func (b *DigitalButton) AssignMouse(buttons ...MouseButton) *DigitalButton {
	for _, m := range buttons {
		if !slices.Contains(b.mouse, m) {
			b.mouse = append(b.mouse, m)
		}
	}
	return b
}

// MapClickTo sets the callback fired on the frame the button becomes Pressed.
func (b *DigitalButton) MapClickTo(fn func(GameTiming)) *DigitalButton {
	b.onClick = fn
	return b
}

// MapHoldTo sets the callback fired on every frame the button is Held.
func (b *DigitalButton) MapHoldTo(fn func(GameTiming)) *DigitalButton {
	b.onHold = fn
	return b
}

// MapReleaseTo sets the callback fired on the frame the button is Released.
func (b *DigitalButton) MapReleaseTo(fn func(GameTiming)) *DigitalButton {
	b.onRelease = fn
	return b
}

// Name returns the registry name.
func (b *DigitalButton) Name() string { return b.name }

// State returns the state computed by the last update.
func (b *DigitalButton) State() ButtonState { return b.state }

// IsDown reports whether the button is Pressed or Held.
func (b *DigitalButton) IsDown() bool {
	return b.state == ButtonPressed || b.state == ButtonHeld
}

// Keys returns a copy of the bound keys.
func (b *DigitalButton) Keys() []ebiten.Key { return slices.Clone(b.keys) }

// MouseButtons returns a copy of the bound mouse buttons.
func (b *DigitalButton) MouseButtons() []MouseButton { return slices.Clone(b.mouse) }

// rebind replaces all bindings.
func (b *DigitalButton) rebind(keys []ebiten.Key, mouse []MouseButton) {
	b.keys = b.keys[:0]
	b.mouse = b.mouse[:0]
	b.Assign(keys...)
	b.AssignMouse(mouse...)
}

func (b *DigitalButton) down(kb KeyboardState, ms MouseState) bool {
	for _, k := range b.keys {
		if kb.IsKeyDown(k) {
			return true
		}
	}
	for _, m := range b.mouse {
		if ms.IsButtonDown(m) {
			return true
		}
	}
	return false
}

// nextButtonState is the DigitalButton transition function.
func nextButtonState(cur ButtonState, down bool) ButtonState {
	switch {
	case down && (cur == ButtonUp || cur == ButtonReleased):
		return ButtonPressed
	case down:
		return ButtonHeld
	case cur == ButtonPressed || cur == ButtonHeld:
		return ButtonReleased
	default:
		return ButtonUp
	}
}

// update advances the state machine and fires the matching callback.
// Returns true if a callback ran.
func (b *DigitalButton) update(kb KeyboardState, ms MouseState, timing GameTiming) bool {
	b.state = nextButtonState(b.state, b.down(kb, ms))

	var fn func(GameTiming)
	switch b.state {
	case ButtonPressed:
		fn = b.onClick
	case ButtonHeld:
		fn = b.onHold
	case ButtonReleased:
		fn = b.onRelease
	}
	if fn == nil {
		return false
	}
	fn(timing)
	return true
}
