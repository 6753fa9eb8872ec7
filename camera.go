package gamefw

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Positioner is anything with a scene-space position a camera can follow.
type Positioner interface {
	Position() Vec2
}

// Camera controls the view into the scene: position, zoom, anchor and
// viewport. It converts between screen space (viewport pixels) and scene
// space (world units).
//
// Trackings and buttons hold a *Camera for coordinate adjustment only; they
// never mutate it.
type Camera struct {
	position Vec2
	zoom     float64
	viewport Viewport
	center   CameraCenter

	followTarget Positioner
	followOffset Vec2
	followLerp   float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the scene-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	// Debug logs a warning on stderr for extreme zoom factors.
	Debug bool

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
}

// NewCamera creates a camera at the scene origin with zoom 1, centered on
// the viewport.
func NewCamera(viewport Viewport) *Camera {
	return &Camera{
		zoom:     1.0,
		viewport: viewport,
		center:   WindowCenter,
		dirty:    true,
	}
}

// Position returns the scene-space point the camera anchor is on.
func (c *Camera) Position() Vec2 { return c.position }

// SetPosition moves the camera anchor to p.
func (c *Camera) SetPosition(p Vec2) {
	c.position = p
	c.dirty = true
}

// Move translates the camera by delta scene units.
func (c *Camera) Move(delta Vec2) {
	c.SetPosition(c.position.Add(delta))
}

// Zoom returns the current zoom factor (1.0 = no zoom, >1 = zoom in).
func (c *Camera) Zoom() float64 { return c.zoom }

// Zoom factors outside [MinZoom, MaxZoom] lose the screen/scene round trip
// to float64 rounding and are rejected by SetZoom.
const (
	MinZoom = 1e-6
	MaxZoom = 1e6
)

// SetZoom sets the zoom factor. Factors that are not finite or fall outside
// [MinZoom, MaxZoom] are rejected with ErrInvalidArgument and leave the
// camera unchanged.
func (c *Camera) SetZoom(factor float64) error {
	if !(factor >= MinZoom && factor <= MaxZoom) {
		return fmt.Errorf("gamefw: set zoom %v: %w", factor, ErrInvalidArgument)
	}
	if c.Debug {
		debugWarnZoom(factor)
	}
	c.zoom = factor
	c.dirty = true
	return nil
}

// ZoomBy multiplies the zoom factor by factor.
func (c *Camera) ZoomBy(factor float64) error {
	return c.SetZoom(c.zoom * factor)
}

// Viewport returns the screen-space viewport size.
func (c *Camera) Viewport() Viewport { return c.viewport }

// SetViewport changes the viewport, e.g. after a window resize.
func (c *Camera) SetViewport(v Viewport) {
	c.viewport = v
	c.dirty = true
}

// Center returns the anchor mode.
func (c *Camera) Center() CameraCenter { return c.center }

// SetCenter changes which viewport point the camera position maps to.
func (c *Camera) SetCenter(center CameraCenter) {
	c.center = center
	c.dirty = true
}

// Follow makes the camera track a target with the given offset and lerp factor.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(target Positioner, offset Vec2, lerp float64) {
	c.followTarget = target
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given scene position over duration seconds.
func (c *Camera) ScrollTo(target Vec2, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.position.X), float32(target.X), duration, easeFn),
		tweenY: gween.New(float32(c.position.Y), float32(target.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow, scroll and bounds clamping by dt seconds. Call it
// once per frame before input is processed, so hit tests see the camera
// that is drawn. Run does this.
func (c *Camera) Update(dt float32) {
	prev := c.position

	if c.followTarget != nil {
		target := c.followTarget.Position().Add(c.followOffset)
		c.position.X += (target.X - c.position.X) * c.followLerp
		c.position.Y += (target.Y - c.position.Y) * c.followLerp
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.position.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.position.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	if c.position != prev {
		c.dirty = true
	}
}

// anchorOffset is the scene-space distance from the visible area's top-left
// corner to the camera position.
func (c *Camera) anchorOffset() Vec2 {
	if c.center == WindowCenter {
		return c.viewport.Size().Scale(0.5 / c.zoom)
	}
	return Vec2{}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	view := c.viewport.Size().Scale(1 / c.zoom)
	off := c.anchorOffset()

	minX := c.Bounds.X + off.X
	maxX := c.Bounds.X + c.Bounds.Width - view.X + off.X
	minY := c.Bounds.Y + off.Y
	maxY := c.Bounds.Y + c.Bounds.Height - view.Y + off.Y

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.position.X = c.Bounds.X + (c.Bounds.Width-view.X)/2 + off.X
	} else {
		c.position.X = math.Max(minX, math.Min(c.position.X, maxX))
	}
	if minY > maxY {
		c.position.Y = c.Bounds.Y + (c.Bounds.Height-view.Y)/2 + off.Y
	} else {
		c.position.Y = math.Max(minY, math.Min(c.position.Y, maxY))
	}
	c.dirty = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
//	viewMatrix = Translate(anchor) * Scale(zoom) * Translate(-position)
//
// where anchor is the viewport origin or its center.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	var anchor Vec2
	if c.center == WindowCenter {
		anchor = c.viewport.Size().Scale(0.5)
	}
	z := c.zoom
	p := c.position

	c.viewMatrix = multiplyAffine(translateAffine(anchor.X, anchor.Y),
		multiplyAffine(scaleAffine(z), translateAffine(-p.X, -p.Y)))
	// Built in reverse order rather than inverted, so no determinant is
	// taken at extreme zooms.
	c.invViewMatrix = multiplyAffine(translateAffine(p.X, p.Y),
		multiplyAffine(scaleAffine(1/z), translateAffine(-anchor.X, -anchor.Y)))
	return c.viewMatrix
}

// ToScreen converts a scene-space point to screen space.
func (c *Camera) ToScreen(scene Vec2) Vec2 {
	c.computeViewMatrix()
	return transformVec(c.viewMatrix, scene)
}

// ToScene converts a screen-space point to scene space.
func (c *Camera) ToScene(screen Vec2) Vec2 {
	c.computeViewMatrix()
	return transformVec(c.invViewMatrix, screen)
}

// ToSceneDelta converts a screen-space displacement (e.g. a drag delta) to
// scene units. Translation does not apply to displacements.
func (c *Camera) ToSceneDelta(delta Vec2) Vec2 {
	c.computeViewMatrix()
	return transformDelta(c.invViewMatrix, delta)
}

// SceneTranslationVector returns the screen-space translation applied to
// scene coordinates after zooming.
func (c *Camera) SceneTranslationVector() Vec2 {
	m := c.computeViewMatrix()
	return Vec2{m[4], m[5]}
}

// SceneViewport returns the visible scene area: the viewport extents scaled
// by 1/zoom. With the WindowTopLeft anchor its corner is the camera
// position. With WindowCenter it is not positioned at the camera position:
// the position is the rectangle's center, so the corner is position minus
// half the scaled extents.
func (c *Camera) SceneViewport() Rect {
	size := c.viewport.Size().Scale(1 / c.zoom)
	topLeft := c.position.Sub(c.anchorOffset())
	return Rect{X: topLeft.X, Y: topLeft.Y, Width: size.X, Height: size.Y}
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// sceneMapper returns a function mapping screen points to scene space
// through cam, or the identity when cam is nil.
func sceneMapper(cam *Camera) func(Vec2) Vec2 {
	if cam == nil {
		return func(v Vec2) Vec2 { return v }
	}
	return cam.ToScene
}
