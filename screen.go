package gamefw

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screen is one game screen: its camera, scene and input configuration,
// driven by Run.
type Screen interface {
	// Initialize is called once, before the first update, with the window
	// viewport.
	Initialize(viewport Viewport) error
	// Input returns the screen's input configuration (may be nil).
	Input() *InputConfiguration
	// Camera returns the camera used for input adjustment and drawing.
	Camera() *Camera
	// Scene returns the scene to draw (may be nil).
	Scene() *Scene
	// Update runs game logic after input callbacks for the frame ran.
	Update(timing GameTiming) error
	// ShouldExit reports whether the game should quit.
	ShouldExit() bool
}

// NavigatorMessage is the navigator's verdict for one frame.
type NavigatorMessage struct {
	ShouldPlay bool
	ShouldExit bool
}

// Navigator is an external play/pause/step controller (see the navigator
// package). Run shows it on F12, toggles play on F11 and steps on F10.
type Navigator interface {
	IsOpen() bool
	Show() error
	Update(timing GameTiming) (NavigatorMessage, error)
	TogglePlay() error
	Step() error
	Close() error
}

// RunConfig configures Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS adds a frame rate overlay.
	ShowFPS bool
	// Debug logs input stats and camera warnings to stderr.
	Debug bool
	// BindingsPath is a YAML key map applied at start and reloaded when
	// the file changes. Empty disables it.
	BindingsPath string
	// Navigator is an optional navigator. Run closes it on exit.
	Navigator Navigator
}

// Run opens a window and drives screen until it exits or the window is
// closed.
func Run(screen Screen, cfg RunConfig) error {
	g, err := NewGame(screen, cfg)
	if err != nil {
		return err
	}
	defer g.Close()

	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	return ebiten.RunGame(g)
}

// Game adapts a Screen to ebiten.Game. Run uses it; hosts that drive
// Ebitengine themselves can embed it.
type Game struct {
	screen Screen
	cfg    RunConfig

	input    *EbitenInput
	timer    *GameTimer
	total    time.Duration
	lastDraw time.Duration
	dc       *EbitenDrawContext
	fps      *DiagnosticLayer
	watcher  *BindingsWatcher

	navInput *InputConfiguration
	navErr   error
	playing  bool

	initialized bool
}

// NewGame prepares the adapter. The screen is initialized lazily on the
// first Update, once the window size is known.
func NewGame(screen Screen, cfg RunConfig) (*Game, error) {
	if screen == nil {
		return nil, fmt.Errorf("gamefw: run nil screen: %w", ErrInvalidArgument)
	}
	dc, err := NewEbitenDrawContext(nil)
	if err != nil {
		return nil, fmt.Errorf("gamefw: load default font: %w", err)
	}
	g := &Game{
		screen:  screen,
		cfg:     cfg,
		input:   NewEbitenInput(),
		timer:   NewGameTimer(),
		dc:      dc,
		playing: true,
	}
	if cfg.ShowFPS {
		g.fps = NewDiagnosticLayer(FPSOnlyDiagnosticConfiguration(DiagnosticLeft))
	}
	if cfg.Navigator != nil {
		if err := g.setupNavigatorKeys(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) setupNavigatorKeys() error {
	nav := g.cfg.Navigator
	g.navInput = NewInputConfiguration()

	show, err := g.navInput.AddDigitalButton("NavigatorShow")
	if err != nil {
		return err
	}
	show.Assign(ebiten.KeyF12).MapClickTo(func(GameTiming) {
		if !nav.IsOpen() {
			g.navErr = errors.Join(g.navErr, nav.Show())
		}
	})

	toggle, err := g.navInput.AddDigitalButton("NavigatorTogglePlay")
	if err != nil {
		return err
	}
	toggle.Assign(ebiten.KeyF11).MapClickTo(func(GameTiming) {
		g.navErr = errors.Join(g.navErr, nav.TogglePlay())
	})

	step, err := g.navInput.AddDigitalButton("NavigatorStep")
	if err != nil {
		return err
	}
	step.Assign(ebiten.KeyF10).MapClickTo(func(GameTiming) {
		g.navErr = errors.Join(g.navErr, nav.Step())
	})
	return nil
}

func (g *Game) initialize() error {
	w, h := g.cfg.Width, g.cfg.Height
	if w <= 0 || h <= 0 {
		w, h = ebiten.WindowSize()
	}
	if err := g.screen.Initialize(Viewport{Width: w, Height: h}); err != nil {
		return err
	}
	input := g.screen.Input()
	if input != nil {
		input.SetDebugMode(g.cfg.Debug)
	}
	if cam := g.screen.Camera(); cam != nil {
		cam.Debug = g.cfg.Debug
	}

	if g.cfg.BindingsPath != "" && input != nil {
		b, err := LoadBindings(g.cfg.BindingsPath)
		if err != nil {
			return err
		}
		if err := input.ApplyBindings(b); err != nil {
			return err
		}
		g.watcher, err = WatchBindings(g.cfg.BindingsPath)
		if err != nil {
			return fmt.Errorf("gamefw: watch bindings: %w", err)
		}
	}
	g.initialized = true
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if !g.initialized {
		if err := g.initialize(); err != nil {
			return err
		}
	}

	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	elapsed := time.Second / time.Duration(tps)
	g.total += elapsed
	g.timer.Update(elapsed, g.total)
	g.input.Poll(g.timer)

	if err := g.updateNavigator(); err != nil {
		return err
	}

	input := g.screen.Input()
	if g.watcher != nil && input != nil {
		if err := g.watcher.Poll(input); err != nil {
			debugLogf("bindings reload: %v", err)
		}
	}

	if g.playing {
		if err := g.play(g.input); err != nil {
			return err
		}
	}

	if g.fps != nil {
		g.fps.UpdateTiming(g.timer, g.screen.Camera())
	}

	if g.screen.ShouldExit() {
		return ebiten.Termination
	}
	return nil
}

// play runs one unpaused frame: camera first, then input callbacks against
// the moved camera, then the screen's logic.
func (g *Game) play(in InputContext) error {
	if cam := g.screen.Camera(); cam != nil {
		cam.Update(float32(g.timer.ElapsedSeconds()))
	}
	if input := g.screen.Input(); input != nil {
		if err := input.Update(in, g.timer); err != nil {
			return err
		}
	}
	return g.screen.Update(g.timer)
}

func (g *Game) updateNavigator() error {
	nav := g.cfg.Navigator
	if nav == nil {
		return nil
	}
	if err := g.navInput.Update(g.input, g.timer); err != nil {
		return err
	}
	if g.navErr != nil {
		debugLogf("navigator: %v", g.navErr)
		g.navErr = nil
	}

	msg, err := nav.Update(g.timer)
	if err != nil {
		debugLogf("navigator: %v", err)
		return nil
	}
	if msg.ShouldExit {
		return ebiten.Termination
	}
	g.playing = msg.ShouldPlay
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(target *ebiten.Image) {
	g.timer.DrawFrame(g.total-g.lastDraw, g.total)
	g.lastDraw = g.total

	g.dc.SetTarget(target)
	if scene := g.screen.Scene(); scene != nil {
		scene.Draw(g.dc, g.screen.Camera())
	}
	if g.fps != nil {
		g.fps.Draw(g.dc, nil)
	}
}

// Layout implements ebiten.Game. A configured size is a fixed logical
// resolution; otherwise the window size is used.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Width > 0 && g.cfg.Height > 0 {
		return g.cfg.Width, g.cfg.Height
	}
	return outsideWidth, outsideHeight
}

// Timing returns the game timer.
func (g *Game) Timing() GameTiming { return g.timer }

// Close stops the bindings watcher and the navigator.
func (g *Game) Close() error {
	var errs []error
	if g.watcher != nil {
		errs = append(errs, g.watcher.Close())
	}
	if g.cfg.Navigator != nil {
		errs = append(errs, g.cfg.Navigator.Close())
	}
	return errors.Join(errs...)
}
