package gamefw

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Hit is the result of a hit test against one layer.
type Hit struct {
	Layer    string
	Element  string
	Position Vec2 // layer-space position of the test point
}

func (h Hit) String() string {
	return fmt.Sprintf("%s/%s@%s", h.Layer, h.Element, h.Position)
}

// Layer is one drawable plane of a Scene.
type Layer interface {
	Name() string
	// Draw renders the layer through cam (which may be nil).
	Draw(dc DrawContext, cam *Camera)
	// Hit tests a screen-space point.
	Hit(screen Vec2, cam *Camera) (Hit, bool)
}

// Scene is a named, ordered stack of layers. Layers draw first to last.
type Scene struct {
	name   string
	layers []Layer
}

// NewScene creates an empty scene.
func NewScene(name string) *Scene {
	return &Scene{name: name}
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// AddLayer appends l on top of the existing layers.
func (s *Scene) AddLayer(l Layer) {
	s.layers = append(s.layers, l)
}

// Layers returns the layers in draw order. The slice must not be modified.
func (s *Scene) Layers() []Layer { return s.layers }

// Layer returns the first layer named name.
func (s *Scene) Layer(name string) (Layer, error) {
	for _, l := range s.layers {
		if l.Name() == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("gamefw: scene %q layer %q: %w", s.name, name, ErrNotFound)
}

// Draw renders every layer.
func (s *Scene) Draw(dc DrawContext, cam *Camera) {
	for _, l := range s.layers {
		l.Draw(dc, cam)
	}
}

// Hits returns one hit per layer under the screen-space point, topmost
// layer first.
func (s *Scene) Hits(screen Vec2, cam *Camera) []Hit {
	var hits []Hit
	for i := len(s.layers) - 1; i >= 0; i-- {
		if h, ok := s.layers[i].Hit(screen, cam); ok {
			hits = append(hits, h)
		}
	}
	return hits
}

// --- Drawing layer ---

// Element is a primitive held by a DrawingLayer. Positions are layer space.
type Element interface {
	// Bounds returns the layer-space area covered, if the element is
	// hit-testable.
	Bounds() (Rect, bool)
	draw(dc DrawContext, p layerProjection)
}

// RectangleElement is a filled or outlined rectangle.
type RectangleElement struct {
	Name   string
	Rect   Rect
	Color  color.Color
	Filled bool
	Width  float32 // outline width
}

func (e *RectangleElement) Bounds() (Rect, bool) { return e.Rect, true }

func (e *RectangleElement) draw(dc DrawContext, p layerProjection) {
	r := p.rect(e.Rect)
	if e.Filled {
		dc.FillColor(r, e.Color)
		return
	}
	w := e.Width * float32(p.zoom)
	tl, tr := Vec2{r.X, r.Y}, Vec2{r.X + r.Width, r.Y}
	bl, br := Vec2{r.X, r.Y + r.Height}, Vec2{r.X + r.Width, r.Y + r.Height}
	dc.DrawLine(tl, tr, w, e.Color)
	dc.DrawLine(tr, br, w, e.Color)
	dc.DrawLine(br, bl, w, e.Color)
	dc.DrawLine(bl, tl, w, e.Color)
}

// LineElement is a straight line segment.
type LineElement struct {
	From, To Vec2
	Width    float32
	Color    color.Color
}

func (e *LineElement) Bounds() (Rect, bool) { return Rect{}, false }

func (e *LineElement) draw(dc DrawContext, p layerProjection) {
	dc.DrawLine(p.point(e.From), p.point(e.To), e.Width*float32(p.zoom), e.Color)
}

// ImageElement draws an image stretched over Rect.
type ImageElement struct {
	Name  string
	Image *ebiten.Image
	Rect  Rect
}

func (e *ImageElement) Bounds() (Rect, bool) { return e.Rect, true }

func (e *ImageElement) draw(dc DrawContext, p layerProjection) {
	if e.Image == nil {
		return
	}
	dc.DrawImage(e.Image, p.rect(e.Rect))
}

// TextElement is a line of text built from a fmt format and parameters.
// Text size does not follow the camera zoom.
type TextElement struct {
	Format   string
	Position Vec2
	Color    color.Color
	params   []any
}

// SetParameters replaces the format arguments.
func (e *TextElement) SetParameters(params ...any) {
	e.params = append(e.params[:0], params...)
}

// Text returns the formatted text. Without parameters the format is
// returned as is.
func (e *TextElement) Text() string {
	if len(e.params) == 0 {
		return e.Format
	}
	return fmt.Sprintf(e.Format, e.params...)
}

func (e *TextElement) Bounds() (Rect, bool) { return Rect{}, false }

func (e *TextElement) draw(dc DrawContext, p layerProjection) {
	dc.DrawString(e.Text(), p.point(e.Position), e.Color)
}

// layerProjection maps layer space to screen space for one draw.
type layerProjection struct {
	cam   *Camera
	shift Vec2
	zoom  float64
}

func (p layerProjection) point(v Vec2) Vec2 {
	v = v.Add(p.shift)
	if p.cam == nil {
		return v
	}
	return p.cam.ToScreen(v)
}

func (p layerProjection) rect(r Rect) Rect {
	tl := p.point(Vec2{r.X, r.Y})
	return Rect{X: tl.X, Y: tl.Y, Width: r.Width * p.zoom, Height: r.Height * p.zoom}
}

// layerBase is the camera plumbing shared by every built-in layer.
//
// In CameraModeMove positions are scene space. Offset shifts the whole
// layer; Parallax scales how far the layer scrolls with the camera
// (1 = with the scene, 0 = pinned). In CameraModeFix positions are screen
// space and the camera is ignored.
type layerBase struct {
	name       string
	CameraMode CameraMode
	Offset     Vec2
	Parallax   Vec2
	Visible    bool

	drawn int
}

func newLayerBase(name string) layerBase {
	return layerBase{name: name, Parallax: Vec2{1, 1}, Visible: true}
}

func (l *layerBase) Name() string { return l.name }

// DrawnElementsLastFrame returns how many elements survived culling in the
// last Draw.
func (l *layerBase) DrawnElementsLastFrame() int { return l.drawn }

func (l *layerBase) projection(cam *Camera) layerProjection {
	if l.CameraMode == CameraModeFix || cam == nil {
		return layerProjection{zoom: 1}
	}
	pos := cam.Position()
	shift := l.Offset.Add(Vec2{pos.X * (1 - l.Parallax.X), pos.Y * (1 - l.Parallax.Y)})
	return layerProjection{cam: cam, shift: shift, zoom: cam.Zoom()}
}

// visibleArea returns the layer-space area the camera shows, or false when
// nothing is culled.
func (l *layerBase) visibleArea(p layerProjection) (Rect, bool) {
	if p.cam == nil {
		return Rect{}, false
	}
	view := p.cam.SceneViewport()
	view.X -= p.shift.X
	view.Y -= p.shift.Y
	return view, true
}

// layerPoint maps a screen-space point to layer space.
func (l *layerBase) layerPoint(screen Vec2, p layerProjection) Vec2 {
	if p.cam != nil {
		screen = p.cam.ToScene(screen)
	}
	return screen.Sub(p.shift)
}

// drawElements draws the elements of a layer that intersect the visible area.
func drawElements[E Element](l *layerBase, dc DrawContext, cam *Camera, elems []E) {
	l.drawn = 0
	if !l.Visible {
		return
	}
	p := l.projection(cam)
	view, cull := l.visibleArea(p)
	for _, e := range elems {
		if b, ok := e.Bounds(); ok && cull && !b.Intersects(view) {
			continue
		}
		e.draw(dc, p)
		l.drawn++
	}
}

// hitElements returns the topmost hit-testable element under screen.
func hitElements[E Element](l *layerBase, screen Vec2, cam *Camera, elems []E) (Hit, bool) {
	if !l.Visible {
		return Hit{}, false
	}
	pos := l.layerPoint(screen, l.projection(cam))
	for i := len(elems) - 1; i >= 0; i-- {
		b, ok := elems[i].Bounds()
		if !ok || !b.ContainsVec(pos) {
			continue
		}
		return Hit{Layer: l.name, Element: elementName(elems[i]), Position: pos}, true
	}
	return Hit{}, false
}

// DrawingLayer holds loose drawing primitives.
type DrawingLayer struct {
	layerBase
	elements []Element
}

// NewDrawingLayer returns a visible, camera-following layer.
func NewDrawingLayer(name string) *DrawingLayer {
	return &DrawingLayer{layerBase: newLayerBase(name)}
}

// Add appends an element.
func (l *DrawingLayer) Add(e Element) {
	l.elements = append(l.elements, e)
}

// AddRectangle appends a filled rectangle.
func (l *DrawingLayer) AddRectangle(name string, r Rect, clr color.Color) *RectangleElement {
	e := &RectangleElement{Name: name, Rect: r, Color: clr, Filled: true}
	l.Add(e)
	return e
}

// AddLine appends a line.
func (l *DrawingLayer) AddLine(from, to Vec2, width float32, clr color.Color) *LineElement {
	e := &LineElement{From: from, To: to, Width: width, Color: clr}
	l.Add(e)
	return e
}

// AddText appends a text element.
func (l *DrawingLayer) AddText(format string, pos Vec2, clr color.Color) *TextElement {
	e := &TextElement{Format: format, Position: pos, Color: clr}
	l.Add(e)
	return e
}

// Remove deletes e. Returns false if e is not on the layer.
func (l *DrawingLayer) Remove(e Element) bool {
	for i, cur := range l.elements {
		if cur == e {
			l.elements = append(l.elements[:i], l.elements[i+1:]...)
			return true
		}
	}
	return false
}

// Elements returns the elements in draw order. The slice must not be modified.
func (l *DrawingLayer) Elements() []Element { return l.elements }

// TotalElements returns the element count.
func (l *DrawingLayer) TotalElements() int { return len(l.elements) }

func (l *DrawingLayer) Draw(dc DrawContext, cam *Camera) {
	drawElements(&l.layerBase, dc, cam, l.elements)
}

func (l *DrawingLayer) Hit(screen Vec2, cam *Camera) (Hit, bool) {
	return hitElements(&l.layerBase, screen, cam, l.elements)
}

func elementName(e Element) string {
	switch e := e.(type) {
	case *RectangleElement:
		return e.Name
	case *ImageElement:
		return e.Name
	case *Sprite:
		return e.Name
	}
	return ""
}
