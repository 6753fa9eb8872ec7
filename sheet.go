package gamefw

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// SheetDefinition is a named source rectangle on a sheet's texture.
type SheetDefinition struct {
	Name   string
	Source Rect
	sheet  *Sheet
}

// SheetName returns the name of the sheet the definition belongs to.
func (d *SheetDefinition) SheetName() string { return d.sheet.name }

// Texture returns the sheet texture.
func (d *SheetDefinition) Texture() *ebiten.Image { return d.sheet.texture }

// Draw draws the definition stretched over the screen-space rectangle dst.
func (d *SheetDefinition) Draw(dc DrawContext, dst Rect) {
	dc.DrawImageRegion(d.sheet.texture, d.Source, dst)
}

// Sheet is a texture with named source rectangles. Cell-sized definitions
// are created with Define; free-form ones with DefineRect.
type Sheet struct {
	name    string
	texture *ebiten.Image
	cell    Vec2
	defs    map[string]*SheetDefinition
	order   []string
}

func newSheet(name string, texture *ebiten.Image, cell Vec2) (*Sheet, error) {
	if cell.X < 0 || cell.Y < 0 {
		return nil, fmt.Errorf("gamefw: sheet %q cell size %v: %w", name, cell, ErrInvalidArgument)
	}
	return &Sheet{
		name:    name,
		texture: texture,
		cell:    cell,
		defs:    make(map[string]*SheetDefinition),
	}, nil
}

func (s *Sheet) Name() string { return s.name }

func (s *Sheet) Texture() *ebiten.Image { return s.texture }

// CellSize returns the size of definitions created by Define.
func (s *Sheet) CellSize() Vec2 { return s.cell }

// Len returns the number of definitions.
func (s *Sheet) Len() int { return len(s.order) }

// Names returns the definition names in the order they were added.
func (s *Sheet) Names() []string { return slices.Clone(s.order) }

// Define adds a cell-sized definition whose top-left texture pixel is at.
func (s *Sheet) Define(name string, at Vec2) (*SheetDefinition, error) {
	if s.cell.X == 0 || s.cell.Y == 0 {
		return nil, fmt.Errorf("gamefw: sheet %q define %q: no cell size: %w", s.name, name, ErrInvalidState)
	}
	return s.DefineRect(name, Rect{X: at.X, Y: at.Y, Width: s.cell.X, Height: s.cell.Y})
}

// DefineRect adds a definition for an arbitrary source rectangle. The
// rectangle must be non-empty and lie within the texture.
func (s *Sheet) DefineRect(name string, src Rect) (*SheetDefinition, error) {
	if _, ok := s.defs[name]; ok {
		return nil, fmt.Errorf("gamefw: sheet %q define %q: %w", s.name, name, ErrDuplicateKey)
	}
	if src.Width <= 0 || src.Height <= 0 || src.X < 0 || src.Y < 0 {
		return nil, fmt.Errorf("gamefw: sheet %q define %q at %v: %w", s.name, name, src, ErrInvalidArgument)
	}
	if s.texture != nil {
		b := s.texture.Bounds()
		if src.X+src.Width > float64(b.Dx()) || src.Y+src.Height > float64(b.Dy()) {
			return nil, fmt.Errorf("gamefw: sheet %q define %q: %v outside %dx%d texture: %w",
				s.name, name, src, b.Dx(), b.Dy(), ErrInvalidArgument)
		}
	}
	d := &SheetDefinition{Name: name, Source: src, sheet: s}
	s.defs[name] = d
	s.order = append(s.order, name)
	return d, nil
}

// Definition returns the definition called name.
func (s *Sheet) Definition(name string) (*SheetDefinition, error) {
	d, ok := s.defs[name]
	if !ok {
		return nil, fmt.Errorf("gamefw: sheet %q definition %q: %w", s.name, name, ErrNotFound)
	}
	return d, nil
}

// Draw draws the named definition over dst.
func (s *Sheet) Draw(dc DrawContext, name string, dst Rect) error {
	d, err := s.Definition(name)
	if err != nil {
		return err
	}
	d.Draw(dc, dst)
	return nil
}

// TileSheet is a sheet of equally sized square-grid tiles.
type TileSheet struct {
	*Sheet
}

// NewTileSheet creates an empty tile sheet. A zero tileSize allows only
// DefineRect.
func NewTileSheet(name string, texture *ebiten.Image, tileSize Vec2) (*TileSheet, error) {
	s, err := newSheet(name, texture, tileSize)
	if err != nil {
		return nil, err
	}
	return &TileSheet{s}, nil
}

// TileSize returns the tile size in texture pixels.
func (t *TileSheet) TileSize() Vec2 { return t.cell }

// HexSheet is a sheet of equally sized hex tiles. Source rectangles are the
// hex's bounding box.
type HexSheet struct {
	*Sheet
}

// NewHexSheet creates an empty hex sheet.
func NewHexSheet(name string, texture *ebiten.Image, hexSize Vec2) (*HexSheet, error) {
	s, err := newSheet(name, texture, hexSize)
	if err != nil {
		return nil, err
	}
	return &HexSheet{s}, nil
}

// HexSize returns the hex bounding box in texture pixels.
func (h *HexSheet) HexSize() Vec2 { return h.cell }

// --- TexturePacker JSON ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename string   `json:"filename"`
	Frame    jsonRect `json:"frame"`
	Rotated  bool     `json:"rotated"`
}

// LoadTileSheet builds a tile sheet from TexturePacker JSON, in either the
// hash ("frames": {name: frame}) or array ("frames": [{filename, frame}])
// layout. Hash entries are added in name order. Rotated frames are
// rejected.
func LoadTileSheet(name string, data []byte, texture *ebiten.Image, tileSize Vec2) (*TileSheet, error) {
	var doc struct {
		Frames json.RawMessage `json:"frames"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("gamefw: parse sheet %q: %w", name, err)
	}
	if doc.Frames == nil {
		return nil, fmt.Errorf("gamefw: parse sheet %q: no \"frames\" key: %w", name, ErrInvalidArgument)
	}

	var frames []jsonFrame
	var hash map[string]jsonFrame
	if err := json.Unmarshal(doc.Frames, &hash); err == nil {
		for _, k := range slices.Sorted(maps.Keys(hash)) {
			f := hash[k]
			f.Filename = k
			frames = append(frames, f)
		}
	} else if err := json.Unmarshal(doc.Frames, &frames); err != nil {
		return nil, fmt.Errorf("gamefw: parse sheet %q frames: %w", name, err)
	}

	sheet, err := NewTileSheet(name, texture, tileSize)
	if err != nil {
		return nil, err
	}
	for _, f := range frames {
		if f.Rotated {
			return nil, fmt.Errorf("gamefw: sheet %q frame %q is rotated: %w", name, f.Filename, ErrInvalidArgument)
		}
		src := Rect{X: float64(f.Frame.X), Y: float64(f.Frame.Y), Width: float64(f.Frame.W), Height: float64(f.Frame.H)}
		if _, err := sheet.DefineRect(f.Filename, src); err != nil {
			return nil, err
		}
	}
	return sheet, nil
}
