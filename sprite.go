package gamefw

import (
	"fmt"
	"math"
)

// Sprite draws a sheet definition stretched over a layer-space rectangle.
type Sprite struct {
	Name       string
	Definition *SheetDefinition
	Rect       Rect
}

func (s *Sprite) Bounds() (Rect, bool) { return s.Rect, true }

func (s *Sprite) draw(dc DrawContext, p layerProjection) {
	if s.Definition == nil {
		return
	}
	s.Definition.Draw(dc, p.rect(s.Rect))
}

// SpriteLayer is a layer of sprites. Later sprites draw on top and win hit
// tests.
type SpriteLayer struct {
	layerBase
	sprites []*Sprite
}

// NewSpriteLayer returns a visible, camera-following sprite layer.
func NewSpriteLayer(name string) *SpriteLayer {
	return &SpriteLayer{layerBase: newLayerBase(name)}
}

// AddSprite appends a sprite on top of the others.
func (l *SpriteLayer) AddSprite(s *Sprite) {
	l.sprites = append(l.sprites, s)
}

// RemoveSprite deletes s. Returns false if s is not on the layer.
func (l *SpriteLayer) RemoveSprite(s *Sprite) bool {
	for i, cur := range l.sprites {
		if cur == s {
			l.sprites = append(l.sprites[:i], l.sprites[i+1:]...)
			return true
		}
	}
	return false
}

// Sprites returns the sprites in draw order. The slice must not be modified.
func (l *SpriteLayer) Sprites() []*Sprite { return l.sprites }

// TotalElements returns the sprite count.
func (l *SpriteLayer) TotalElements() int { return len(l.sprites) }

func (l *SpriteLayer) Draw(dc DrawContext, cam *Camera) {
	drawElements(&l.layerBase, dc, cam, l.sprites)
}

func (l *SpriteLayer) Hit(screen Vec2, cam *Camera) (Hit, bool) {
	return hitElements(&l.layerBase, screen, cam, l.sprites)
}

// TileMapLayer is a grid of tiles from one TileSheet. Cell (col, row)
// covers layer space [col*w, (col+1)*w) x [row*h, (row+1)*h) where w, h is
// the sheet's tile size. Only cells inside the camera's visible area are
// drawn.
type TileMapLayer struct {
	layerBase
	sheet      *TileSheet
	cols, rows int
	tiles      []*SheetDefinition
}

// NewTileMapLayer creates an empty cols x rows map. The sheet must have a
// tile size.
func NewTileMapLayer(name string, sheet *TileSheet, cols, rows int) (*TileMapLayer, error) {
	if sheet == nil || cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("gamefw: tile map %q %dx%d: %w", name, cols, rows, ErrInvalidArgument)
	}
	if ts := sheet.TileSize(); ts.X <= 0 || ts.Y <= 0 {
		return nil, fmt.Errorf("gamefw: tile map %q: sheet %q has no tile size: %w", name, sheet.Name(), ErrInvalidArgument)
	}
	return &TileMapLayer{
		layerBase: newLayerBase(name),
		sheet:     sheet,
		cols:      cols,
		rows:      rows,
		tiles:     make([]*SheetDefinition, cols*rows),
	}, nil
}

// Size returns the map size in cells.
func (l *TileMapLayer) Size() (cols, rows int) { return l.cols, l.rows }

// Sheet returns the tile sheet.
func (l *TileMapLayer) Sheet() *TileSheet { return l.sheet }

func (l *TileMapLayer) index(col, row int) (int, error) {
	if col < 0 || col >= l.cols || row < 0 || row >= l.rows {
		return 0, fmt.Errorf("gamefw: tile map %q cell (%d, %d) outside %dx%d: %w",
			l.name, col, row, l.cols, l.rows, ErrInvalidArgument)
	}
	return row*l.cols + col, nil
}

// SetTile puts the named tile in a cell. An empty name clears it.
func (l *TileMapLayer) SetTile(col, row int, name string) error {
	i, err := l.index(col, row)
	if err != nil {
		return err
	}
	if name == "" {
		l.tiles[i] = nil
		return nil
	}
	d, err := l.sheet.Definition(name)
	if err != nil {
		return err
	}
	l.tiles[i] = d
	return nil
}

// SetData replaces every cell from row-major tile names ("" is empty).
// Nothing changes unless every name resolves.
func (l *TileMapLayer) SetData(names []string) error {
	if len(names) != len(l.tiles) {
		return fmt.Errorf("gamefw: tile map %q data has %d cells, want %d: %w",
			l.name, len(names), len(l.tiles), ErrInvalidArgument)
	}
	tiles := make([]*SheetDefinition, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		d, err := l.sheet.Definition(name)
		if err != nil {
			return err
		}
		tiles[i] = d
	}
	l.tiles = tiles
	return nil
}

// Tile returns the definition in a cell, or nil for an empty or
// out-of-range cell.
func (l *TileMapLayer) Tile(col, row int) *SheetDefinition {
	i, err := l.index(col, row)
	if err != nil {
		return nil
	}
	return l.tiles[i]
}

// TotalElements returns the number of non-empty cells.
func (l *TileMapLayer) TotalElements() int {
	n := 0
	for _, t := range l.tiles {
		if t != nil {
			n++
		}
	}
	return n
}

// cellRange returns the half-open cell range overlapping area.
func (l *TileMapLayer) cellRange(area Rect) (c0, r0, c1, r1 int) {
	ts := l.sheet.TileSize()
	c0 = max(0, int(math.Floor(area.X/ts.X)))
	r0 = max(0, int(math.Floor(area.Y/ts.Y)))
	c1 = min(l.cols, int(math.Ceil((area.X+area.Width)/ts.X)))
	r1 = min(l.rows, int(math.Ceil((area.Y+area.Height)/ts.Y)))
	return c0, r0, c1, r1
}

func (l *TileMapLayer) Draw(dc DrawContext, cam *Camera) {
	l.drawn = 0
	if !l.Visible {
		return
	}
	p := l.projection(cam)
	c0, r0, c1, r1 := 0, 0, l.cols, l.rows
	if view, ok := l.visibleArea(p); ok {
		c0, r0, c1, r1 = l.cellRange(view)
	}
	ts := l.sheet.TileSize()
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			d := l.tiles[row*l.cols+col]
			if d == nil {
				continue
			}
			cell := Rect{X: float64(col) * ts.X, Y: float64(row) * ts.Y, Width: ts.X, Height: ts.Y}
			d.Draw(dc, p.rect(cell))
			l.drawn++
		}
	}
}

// Hit reports the tile under screen. The hit's element is the tile name.
func (l *TileMapLayer) Hit(screen Vec2, cam *Camera) (Hit, bool) {
	if !l.Visible {
		return Hit{}, false
	}
	pos := l.layerPoint(screen, l.projection(cam))
	ts := l.sheet.TileSize()
	col := int(math.Floor(pos.X / ts.X))
	row := int(math.Floor(pos.Y / ts.Y))
	d := l.Tile(col, row)
	if d == nil {
		return Hit{}, false
	}
	return Hit{Layer: l.name, Element: d.Name, Position: pos}, true
}
