// Package gamefw is the camera and input mapping layer of a 2D game
// framework for [Ebitengine].
//
// Gamefw turns raw device state into named, camera-aware input callbacks:
// digital buttons bound to keys and mouse buttons, on-screen visual buttons,
// touch gesture events, and per-device trackings. Everything is updated once
// per frame from an immutable input snapshot.
//
// # Quick start
//
// Implement [Screen] and hand it to [Run], which creates a window and game
// loop for you:
//
//	gamefw.Run(screen, gamefw.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, poll an [EbitenInput] yourself and call
// [InputConfiguration.Update] from your own ebiten.Game:
//
//	func (g *Game) Update() error {
//		g.timer.Advance(time.Second / 60)
//		g.input.Poll(g.timer)
//		return g.config.Update(g.input, g.timer)
//	}
//
// # Camera
//
// A [Camera] maps between screen space (viewport pixels) and scene space
// (world units) with [Camera.ToScene] and [Camera.ToScreen]. The camera
// position maps to the viewport center or its top-left corner, see
// [CameraCenter]. Cameras also follow targets, scroll with tweens (via
// [gween]) and clamp to world bounds.
//
// # Input configuration
//
// All input objects are registered by unique name on an
// [InputConfiguration] before the first Update:
//
//	cfg := gamefw.NewInputConfiguration()
//	fire, _ := cfg.AddDigitalButton("Fire")
//	fire.Assign(ebiten.KeySpace).AssignMouse(gamefw.MouseButtonLeft).
//		MapClickTo(func(t gamefw.GameTiming) { shoot() })
//
//	mouse, _ := cfg.AddMouseTracking(cam)
//	mouse.OnMove(func(m gamefw.MouseState, t gamefw.GameTiming) {
//		aim(m.Position) // scene space
//	})
//
// Update runs keyboard trackings, mouse trackings, digital buttons, visual
// buttons, touch trackings and input events, in that order. Callbacks run
// synchronously inside Update.
//
// # Bindings, scripts and testing
//
// Key maps load from YAML with [LoadBindings] and reload on change with
// [WatchBindings]. Callbacks can be tengo scripts ([CompileScript]).
// [ScriptedInput] and [LoadInputScript] replay synthetic input without a
// window. Fired callbacks can be forwarded to an ECS through [EventSink]
// (see gamefw/ecs for the [Donburi] adapter).
//
// # Drawing
//
// A [Scene] is an ordered stack of layers drawn through a [DrawContext].
// [DrawingLayer] holds loose shapes and text, [SpriteLayer] holds sprites
// cut from a [TileSheet] or [HexSheet], and [TileMapLayer] draws a grid of
// named tiles, culled to what the camera shows. [Scene.Hits] reports what
// lies under a screen point, topmost layer first.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package gamefw
