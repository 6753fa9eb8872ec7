package gamefw

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/image/colornames"
)

// Diagnostic overlay layout, in screen pixels.
const (
	diagFirstLineY   = 10
	diagLineHeight   = 15
	diagLeftMargin   = 10
	diagRightMargin  = 350
	diagGestureHoldS = 1.0 // seconds a gesture stays listed
)

// DiagnosticLocation selects the screen side the overlay is drawn on.
type DiagnosticLocation uint8

const (
	DiagnosticRight DiagnosticLocation = iota
	DiagnosticLeft
)

// DiagnosticConfiguration selects which built-in lines are shown.
type DiagnosticConfiguration struct {
	Location      DiagnosticLocation
	DisplayFPS    bool
	DisplayCamera bool
	DisplayMouse  bool
	DisplayTouch  bool
	DisplayHits   bool
}

// DefaultDiagnosticConfiguration shows every line on the right.
func DefaultDiagnosticConfiguration() DiagnosticConfiguration {
	return DiagnosticConfiguration{
		Location:      DiagnosticRight,
		DisplayFPS:    true,
		DisplayCamera: true,
		DisplayMouse:  true,
		DisplayTouch:  true,
		DisplayHits:   true,
	}
}

// FPSOnlyDiagnosticConfiguration shows just the frame rate line.
func FPSOnlyDiagnosticConfiguration(loc DiagnosticLocation) DiagnosticConfiguration {
	return DiagnosticConfiguration{Location: loc, DisplayFPS: true}
}

// Built-in line ids.
const (
	diagFPS         = "fps"
	diagViewport    = "viewport"
	diagTranslation = "translation"
	diagPosition    = "position"
	diagZoom        = "zoom"
	diagMouse       = "mouse"
	diagMouseAbs    = "mouse_abs"
	diagTouchCaps   = "touch_caps"
	diagTouchCaps2  = "touch_caps2"
	diagTouches     = "touches"
	diagGestures    = "gestures"
	diagHits        = "hits"
)

type diagLine struct {
	id     string
	custom bool
	text   *TextElement
}

// DiagnosticLayer is a screen-fixed text overlay showing frame rate, camera,
// mouse, touch and hit-test state plus any custom lines. Feed it once per
// frame with the Update* methods and add it to a Scene as its top layer.
type DiagnosticLayer struct {
	cfg      DiagnosticConfiguration
	layer    *DrawingLayer
	lines    []diagLine
	gestures map[GestureType]float64
	total    float64
}

// NewDiagnosticLayer creates the overlay with the built-in lines cfg enables.
func NewDiagnosticLayer(cfg DiagnosticConfiguration) *DiagnosticLayer {
	layer := NewDrawingLayer("Diagnostic")
	layer.CameraMode = CameraModeFix
	d := &DiagnosticLayer{
		cfg:      cfg,
		layer:    layer,
		gestures: make(map[GestureType]float64),
	}

	if cfg.DisplayFPS {
		d.newLine(diagFPS, "FPS %d - Update Per Second %d", false)
	}
	if cfg.DisplayCamera {
		d.newLine(diagViewport, "ViewPort: %v", false)
		d.newLine(diagTranslation, "Translation: %v", false)
		d.newLine(diagPosition, "Position: %v", false)
		d.newLine(diagZoom, "Zooming: %.1f", false)
	}
	if cfg.DisplayMouse {
		d.newLine(diagMouse, "Mouse: %v", false)
		d.newLine(diagMouseAbs, "MouseAbs: %v", false)
	}
	if cfg.DisplayTouch {
		d.newLine(diagTouchCaps, "TouchCap: Connected?: %t, Pressure?: %t", false)
		d.newLine(diagTouchCaps2, "TouchCap: MaxTouchCount: %d, Gesture?: %t", false)
		d.newLine(diagTouches, "Touches: %s", false)
		d.newLine(diagGestures, "Gestures: %s", false)
	}
	if cfg.DisplayHits {
		d.newLine(diagHits, "Hits: %s", false)
	}
	return d
}

func (d *DiagnosticLayer) newLine(id, format string, custom bool) *TextElement {
	t := d.layer.AddText(format, Vec2{}, colornames.White)
	d.lines = append(d.lines, diagLine{id: id, custom: custom, text: t})
	return t
}

func (d *DiagnosticLayer) line(id string, custom bool) *TextElement {
	for _, l := range d.lines {
		if l.id == id && l.custom == custom {
			return l.text
		}
	}
	return nil
}

func (d *DiagnosticLayer) set(id string, params ...any) {
	if t := d.line(id, false); t != nil {
		t.SetParameters(params...)
	}
}

// AddLine appends a custom line whose text is built from format.
func (d *DiagnosticLayer) AddLine(id, format string) error {
	if d.line(id, true) != nil {
		return fmt.Errorf("gamefw: diagnostic line %q: %w", id, ErrDuplicateKey)
	}
	d.newLine(id, format, true)
	return nil
}

// UpdateLine sets the format arguments of a custom line.
func (d *DiagnosticLayer) UpdateLine(id string, params ...any) error {
	t := d.line(id, true)
	if t == nil {
		return fmt.Errorf("gamefw: diagnostic line %q: %w", id, ErrNotFound)
	}
	t.SetParameters(params...)
	return nil
}

// UpdateTiming refreshes the frame rate and camera lines and lays the lines
// out against the camera viewport. Call it once per frame before the other
// Update methods.
func (d *DiagnosticLayer) UpdateTiming(timing GameTiming, cam *Camera) {
	d.total = timing.TotalSeconds()
	d.layout(cam)

	if d.cfg.DisplayFPS {
		d.set(diagFPS, timing.DrawFPS(), timing.UpdateFPS())
	}
	if d.cfg.DisplayCamera && cam != nil {
		d.set(diagViewport, cam.SceneViewport())
		d.set(diagTranslation, cam.SceneTranslationVector())
		d.set(diagPosition, cam.Position())
		d.set(diagZoom, cam.Zoom())
	}
}

// UpdateMouse refreshes the mouse lines.
func (d *DiagnosticLayer) UpdateMouse(ms MouseState) {
	if !d.cfg.DisplayMouse {
		return
	}
	d.set(diagMouse, ms)
	d.set(diagMouseAbs, ms.AbsolutePosition)
}

// UpdateTouch refreshes the touch lines. Gestures stay listed for one second
// after they were last seen.
func (d *DiagnosticLayer) UpdateTouch(ts TouchState) {
	if !d.cfg.DisplayTouch {
		return
	}
	d.set(diagTouchCaps, ts.IsConnected, ts.HasPressure)
	d.set(diagTouchCaps2, ts.MaximumTouchCount, ts.IsGestureAvailable)

	touches := make([]string, len(ts.Touches))
	for i, tp := range ts.Touches {
		touches[i] = tp.String()
	}
	d.set(diagTouches, strings.Join(touches, "; "))
	d.set(diagGestures, d.recentGestures(ts.Gestures))
}

// UpdateHits refreshes the hit-test line.
func (d *DiagnosticLayer) UpdateHits(hits []Hit) {
	if !d.cfg.DisplayHits {
		return
	}
	s := make([]string, len(hits))
	for i, h := range hits {
		s[i] = h.String()
	}
	d.set(diagHits, strings.Join(s, "; "))
}

func (d *DiagnosticLayer) recentGestures(current []Gesture) string {
	for _, g := range current {
		if g.Type != GestureNone {
			d.gestures[g.Type] = d.total
		}
	}
	var recent []GestureType
	for gt, seen := range d.gestures {
		if seen+diagGestureHoldS > d.total {
			recent = append(recent, gt)
		}
	}
	slices.Sort(recent)
	names := make([]string, len(recent))
	for i, gt := range recent {
		names[i] = gt.String()
	}
	return strings.Join(names, ", ")
}

func (d *DiagnosticLayer) layout(cam *Camera) {
	x := float64(diagLeftMargin)
	if d.cfg.Location == DiagnosticRight && cam != nil {
		x = float64(cam.Viewport().Width - diagRightMargin)
	}
	y := float64(diagFirstLineY)
	for _, l := range d.lines {
		l.text.Position = Vec2{x, y}
		y += diagLineHeight
	}
}

// Lines returns the current text of every line, top to bottom.
func (d *DiagnosticLayer) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.text.Text()
	}
	return out
}

// String returns all lines joined by newlines.
func (d *DiagnosticLayer) String() string {
	return strings.Join(d.Lines(), "\n")
}

func (d *DiagnosticLayer) Name() string { return "Diagnostic" }

func (d *DiagnosticLayer) Draw(dc DrawContext, cam *Camera) {
	d.layer.Draw(dc, cam)
}

// Hit never reports a hit; the overlay is not interactive.
func (d *DiagnosticLayer) Hit(Vec2, *Camera) (Hit, bool) { return Hit{}, false }
