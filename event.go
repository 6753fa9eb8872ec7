package gamefw

import "slices"

// InputEvent is a named binding from gesture types to a callback. The
// callback runs once for every matching gesture of the frame.
type InputEvent struct {
	name     string
	gestures []GestureType
	onEvent  func(Gesture, GameTiming)
}

// Assign adds gesture types that trigger the event.
func (e *InputEvent) Assign(types ...GestureType) *InputEvent {
	for _, g := range types {
		if !slices.Contains(e.gestures, g) {
			e.gestures = append(e.gestures, g)
		}
	}
	return e
}

// MapTo sets the callback.
func (e *InputEvent) MapTo(fn func(Gesture, GameTiming)) *InputEvent {
	e.onEvent = fn
	return e
}

// Name returns the registry name.
func (e *InputEvent) Name() string { return e.name }

// Gestures returns a copy of the assigned gesture types.
func (e *InputEvent) Gestures() []GestureType { return slices.Clone(e.gestures) }

// update fires the callback for each matching gesture and returns the
// gestures it fired for.
func (e *InputEvent) update(ts TouchState, timing GameTiming, fired []Gesture) []Gesture {
	for _, g := range ts.Gestures {
		if !slices.Contains(e.gestures, g.Type) {
			continue
		}
		if e.onEvent != nil {
			e.onEvent(g, timing)
			fired = append(fired, g)
		}
	}
	return fired
}
