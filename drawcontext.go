package gamefw

import (
	"bytes"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// DrawContext is the drawing capability a rendering back end provides to
// layers. All coordinates are screen space; layers convert through the
// camera before calling it.
type DrawContext interface {
	DrawString(s string, pos Vec2, clr color.Color)
	DrawLine(from, to Vec2, width float32, clr color.Color)
	DrawImage(img *ebiten.Image, dst Rect)
	// DrawImageRegion draws the src rectangle of img (image pixels)
	// stretched over dst.
	DrawImageRegion(img *ebiten.Image, src, dst Rect)
	FillColor(r Rect, clr color.Color)
}

// DefaultFontSize is the size of the built-in text face.
const DefaultFontSize = 13

var (
	defaultFaceOnce   sync.Once
	defaultFaceSource *text.GoTextFaceSource
	defaultFaceErr    error
)

// defaultFace returns a Go Regular face at DefaultFontSize.
func defaultFace() (*text.GoTextFace, error) {
	defaultFaceOnce.Do(func() {
		defaultFaceSource, defaultFaceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if defaultFaceErr != nil {
		return nil, defaultFaceErr
	}
	return &text.GoTextFace{Source: defaultFaceSource, Size: DefaultFontSize}, nil
}

// EbitenDrawContext draws onto an Ebitengine image.
type EbitenDrawContext struct {
	target *ebiten.Image
	face   text.Face
}

// NewEbitenDrawContext returns a context drawing onto target with the
// default Go Regular face.
func NewEbitenDrawContext(target *ebiten.Image) (*EbitenDrawContext, error) {
	face, err := defaultFace()
	if err != nil {
		return nil, err
	}
	return &EbitenDrawContext{target: target, face: face}, nil
}

// SetTarget changes the image drawn onto; Ebitengine hands a screen image to
// every Draw call.
func (d *EbitenDrawContext) SetTarget(target *ebiten.Image) { d.target = target }

// SetFace replaces the text face.
func (d *EbitenDrawContext) SetFace(face text.Face) { d.face = face }

func (d *EbitenDrawContext) DrawString(s string, pos Vec2, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(d.target, s, d.face, op)
}

func (d *EbitenDrawContext) DrawLine(from, to Vec2, width float32, clr color.Color) {
	vector.StrokeLine(d.target, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), width, clr, true)
}

func (d *EbitenDrawContext) DrawImage(img *ebiten.Image, dst Rect) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width/float64(b.Dx()), dst.Height/float64(b.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	d.target.DrawImage(img, op)
}

func (d *EbitenDrawContext) DrawImageRegion(img *ebiten.Image, src, dst Rect) {
	if img == nil {
		return
	}
	r := image.Rect(int(src.X), int(src.Y), int(src.X+src.Width), int(src.Y+src.Height))
	sub, ok := img.SubImage(r).(*ebiten.Image)
	if !ok {
		return
	}
	d.DrawImage(sub, dst)
}

func (d *EbitenDrawContext) FillColor(r Rect, clr color.Color) {
	vector.FillRect(d.target, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}
