package gamefw

import (
	"fmt"
	"time"
)

// --- ECS / external bridge ---

// NotificationKind identifies which callback an InputNotification mirrors.
type NotificationKind uint8

const (
	NotifyButtonPressed  NotificationKind = iota // a DigitalButton click callback ran
	NotifyButtonHeld                             // a DigitalButton hold callback ran
	NotifyButtonReleased                         // a DigitalButton release callback ran
	NotifyVisualClick                            // a VisualButton click callback ran
	NotifyEvent                                  // an InputEvent callback ran
)

// InputNotification describes one callback that ran during Update.
type InputNotification struct {
	Kind         NotificationKind
	Name         string
	Gesture      Gesture // valid for NotifyEvent
	TotalSeconds float64
}

// EventSink is the interface for optional external integration (see the ecs
// package). When set on an InputConfiguration, every callback that runs is
// also reported to the sink.
type EventSink interface {
	EmitInput(n InputNotification)
}

// --- Named registry ---

// registry maps unique names to values and remembers registration order so
// updates run deterministically.
type registry[T any] struct {
	byName map[string]T
	order  []T
	names  []string
}

func (r *registry[T]) add(name string, v T) bool {
	if _, exists := r.byName[name]; exists {
		return false
	}
	if r.byName == nil {
		r.byName = make(map[string]T)
	}
	r.byName[name] = v
	r.order = append(r.order, v)
	r.names = append(r.names, name)
	return true
}

func (r *registry[T]) get(name string) (T, bool) {
	v, ok := r.byName[name]
	return v, ok
}

// --- InputConfiguration ---

// InputConfiguration owns every named digital button, visual button and
// input event of a screen, plus the device trackings, and updates them once
// per frame.
//
// Registration must be complete before the first Update: any Add* call
// after that fails with ErrInvalidState. Update is synchronous and
// non-reentrant; all callbacks run inside it, in this order:
//
//	keyboard trackings -> mouse trackings -> digital buttons ->
//	visual buttons -> touch trackings -> input events
//
// Within each group, objects update in registration order.
type InputConfiguration struct {
	digital registry[*DigitalButton]
	visual  registry[*VisualButton]
	events  registry[*InputEvent]

	keyboards []*KeyboardTracking
	mice      []*MouseTracking
	touches   []*TouchTracking

	sink     EventSink
	debug    bool
	sealed   bool
	updating bool
	frames   uint64
	firedBuf []Gesture
}

// NewInputConfiguration returns an empty configuration.
func NewInputConfiguration() *InputConfiguration {
	return &InputConfiguration{}
}

// checkMutable reports ErrInvalidState once updates have begun.
func (c *InputConfiguration) checkMutable(op string) error {
	if c.updating {
		return fmt.Errorf("gamefw: %s during Update: %w", op, ErrInvalidState)
	}
	if c.sealed {
		return fmt.Errorf("gamefw: %s after the first Update: %w", op, ErrInvalidState)
	}
	return nil
}

// AddDigitalButton registers a digital button under name.
func (c *InputConfiguration) AddDigitalButton(name string) (*DigitalButton, error) {
	if err := c.checkMutable("add digital button"); err != nil {
		return nil, err
	}
	b := &DigitalButton{name: name}
	if !c.digital.add(name, b) {
		return nil, fmt.Errorf("gamefw: add digital button %q: %w", name, ErrDuplicateKey)
	}
	return b, nil
}

// GetDigitalButton returns the digital button registered under name.
func (c *InputConfiguration) GetDigitalButton(name string) (*DigitalButton, error) {
	b, ok := c.digital.get(name)
	if !ok {
		return nil, fmt.Errorf("gamefw: digital button %q: %w", name, ErrNotFound)
	}
	return b, nil
}

// AddVisualButton registers a visual button covering rect.
func (c *InputConfiguration) AddVisualButton(name string, rect Rect) (*VisualButton, error) {
	if err := c.checkMutable("add visual button"); err != nil {
		return nil, err
	}
	v := &VisualButton{name: name, rect: rect}
	if !c.visual.add(name, v) {
		return nil, fmt.Errorf("gamefw: add visual button %q: %w", name, ErrDuplicateKey)
	}
	return v, nil
}

// GetVisualButton returns the visual button registered under name.
func (c *InputConfiguration) GetVisualButton(name string) (*VisualButton, error) {
	v, ok := c.visual.get(name)
	if !ok {
		return nil, fmt.Errorf("gamefw: visual button %q: %w", name, ErrNotFound)
	}
	return v, nil
}

// AddEvent registers an input event under name.
func (c *InputConfiguration) AddEvent(name string) (*InputEvent, error) {
	if err := c.checkMutable("add event"); err != nil {
		return nil, err
	}
	e := &InputEvent{name: name}
	if !c.events.add(name, e) {
		return nil, fmt.Errorf("gamefw: add event %q: %w", name, ErrDuplicateKey)
	}
	return e, nil
}

// GetEvent returns the input event registered under name.
func (c *InputConfiguration) GetEvent(name string) (*InputEvent, error) {
	e, ok := c.events.get(name)
	if !ok {
		return nil, fmt.Errorf("gamefw: event %q: %w", name, ErrNotFound)
	}
	return e, nil
}

// AddKeyboardTracking registers a keyboard tracking.
func (c *InputConfiguration) AddKeyboardTracking() (*KeyboardTracking, error) {
	if err := c.checkMutable("add keyboard tracking"); err != nil {
		return nil, err
	}
	k := &KeyboardTracking{}
	c.keyboards = append(c.keyboards, k)
	return k, nil
}

// AddMouseTracking registers a mouse tracking adjusting positions through
// cam. A nil camera reports screen coordinates.
func (c *InputConfiguration) AddMouseTracking(cam *Camera) (*MouseTracking, error) {
	if err := c.checkMutable("add mouse tracking"); err != nil {
		return nil, err
	}
	m := &MouseTracking{camera: cam}
	c.mice = append(c.mice, m)
	return m, nil
}

// AddTouchTracking registers a touch tracking adjusting positions through
// cam. A nil camera reports screen coordinates.
func (c *InputConfiguration) AddTouchTracking(cam *Camera) (*TouchTracking, error) {
	if err := c.checkMutable("add touch tracking"); err != nil {
		return nil, err
	}
	t := &TouchTracking{camera: cam}
	c.touches = append(c.touches, t)
	return t, nil
}

// DigitalButtonNames returns registered digital button names in
// registration order.
func (c *InputConfiguration) DigitalButtonNames() []string {
	return append([]string(nil), c.digital.names...)
}

// VisualButtonNames returns registered visual button names in registration order.
func (c *InputConfiguration) VisualButtonNames() []string {
	return append([]string(nil), c.visual.names...)
}

// EventNames returns registered event names in registration order.
func (c *InputConfiguration) EventNames() []string {
	return append([]string(nil), c.events.names...)
}

// SetEventSink sets the optional external bridge.
func (c *InputConfiguration) SetEventSink(sink EventSink) {
	c.sink = sink
}

// SetDebugMode enables per-frame input stats on stderr.
func (c *InputConfiguration) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// Sealed reports whether Update has run and registration is closed.
func (c *InputConfiguration) Sealed() bool {
	return c.sealed
}

func (c *InputConfiguration) notify(kind NotificationKind, name string, g Gesture, timing GameTiming) {
	if c.sink == nil {
		return
	}
	c.sink.EmitInput(InputNotification{Kind: kind, Name: name, Gesture: g, TotalSeconds: timing.TotalSeconds()})
}

// Update runs one frame of input processing against the snapshot supplied by
// input. With nothing registered it does nothing and returns nil. Calling
// Update from inside one of its callbacks fails with ErrInvalidState.
func (c *InputConfiguration) Update(input InputContext, timing GameTiming) error {
	if c.updating {
		return fmt.Errorf("gamefw: reentrant Update: %w", ErrInvalidState)
	}
	if input == nil || timing == nil {
		return fmt.Errorf("gamefw: Update with nil input or timing: %w", ErrInvalidArgument)
	}
	c.sealed = true
	c.updating = true
	defer func() { c.updating = false }()

	var stats inputStats
	var t0 time.Time
	if c.debug {
		t0 = time.Now()
	}

	keyState := input.KeyboardState()
	mouseState := input.MouseState()
	touchState := input.TouchState()

	for _, k := range c.keyboards {
		if k.Update(keyState, timing) {
			stats.trackings++
		}
	}

	for _, m := range c.mice {
		if m.Update(mouseState, timing) {
			stats.trackings++
		}
	}

	for _, b := range c.digital.order {
		if b.update(keyState, mouseState, timing) {
			stats.buttons++
			switch b.state {
			case ButtonPressed:
				c.notify(NotifyButtonPressed, b.name, Gesture{}, timing)
			case ButtonHeld:
				c.notify(NotifyButtonHeld, b.name, Gesture{}, timing)
			case ButtonReleased:
				c.notify(NotifyButtonReleased, b.name, Gesture{}, timing)
			}
		}
	}

	for _, v := range c.visual.order {
		hover, click := v.update(touchState, mouseState, timing)
		if hover {
			stats.visuals++
		}
		if click {
			stats.visuals++
			c.notify(NotifyVisualClick, v.name, Gesture{}, timing)
		}
	}

	for _, t := range c.touches {
		if t.Update(touchState, timing) {
			stats.trackings++
		}
	}

	for _, e := range c.events.order {
		c.firedBuf = e.update(touchState, timing, c.firedBuf[:0])
		for _, g := range c.firedBuf {
			stats.events++
			c.notify(NotifyEvent, e.name, g, timing)
		}
	}

	c.frames++
	if c.debug {
		stats.frame = c.frames
		stats.duration = time.Since(t0)
		debugLogInput(stats)
	}
	return nil
}
