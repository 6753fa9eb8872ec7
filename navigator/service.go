// Package navigator runs the game navigator: a play/pause/step controller
// living on its own goroutine, reached from the game loop through
// synchronous dispatched calls, with window placements persisted as YAML.
package navigator

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/phanxgames/gamefw"
)

// Options configures Launch.
type Options struct {
	// SettingsPath is the YAML settings file. Empty means
	// DefaultSettingsPath; "-" disables persistence.
	SettingsPath string
	// MoveGameWindow restores the game window position, if set.
	MoveGameWindow func(x, y int)
}

// Service is the navigator. Its model lives on the dispatcher goroutine;
// all methods are safe to call from the game loop.
type Service struct {
	disp  *Dispatcher
	model *Model // dispatcher goroutine only

	visible  atomic.Bool
	title    atomic.Value
	path     string
	settings *Settings // dispatcher goroutine only
}

var _ gamefw.Navigator = (*Service)(nil)

// Launch starts the navigator goroutine, hidden, and restores the game
// window position from the saved settings. Settings that cannot be read are
// logged and ignored.
func Launch(opts Options) (*Service, error) {
	path := opts.SettingsPath
	if path == "" {
		p, err := DefaultSettingsPath()
		if err != nil {
			logf("%v", err)
			p = "-"
		}
		path = p
	}

	settings := &Settings{}
	if path != "-" {
		s, err := LoadSettings(path)
		if err != nil {
			logf("%v", err)
		} else {
			settings = s
		}
	}
	if opts.MoveGameWindow != nil && settings.GameWindow != nil {
		opts.MoveGameWindow(settings.GameWindow.X, settings.GameWindow.Y)
	}

	s := &Service{disp: NewDispatcher(), path: path}
	s.title.Store("")
	err := s.disp.Invoke(context.Background(), func() error {
		s.model = NewModel()
		s.settings = settings
		s.title.Store(s.model.Title())
		return nil
	})
	if err != nil {
		s.disp.Close()
		return nil, err
	}
	return s, nil
}

func (s *Service) invoke(fn func() error) error {
	return s.disp.Invoke(context.Background(), fn)
}

// IsOpen reports whether the navigator window is shown.
func (s *Service) IsOpen() bool { return s.visible.Load() }

// Title returns the current window title.
func (s *Service) Title() string { return s.title.Load().(string) }

// Show opens the navigator window.
func (s *Service) Show() error {
	return s.invoke(func() error {
		s.visible.Store(true)
		return nil
	})
}

// Hide closes the navigator window without stopping the service.
func (s *Service) Hide() error {
	return s.invoke(func() error {
		s.visible.Store(false)
		return nil
	})
}

// Update asks the model whether the coming game update may run.
func (s *Service) Update(timing gamefw.GameTiming) (gamefw.NavigatorMessage, error) {
	var msg gamefw.NavigatorMessage
	err := s.invoke(func() error {
		msg = s.model.Update(timing)
		s.title.Store(s.model.Title())
		return nil
	})
	return msg, err
}

// TogglePlay pauses or resumes the game.
func (s *Service) TogglePlay() error {
	return s.invoke(func() error {
		s.model.TogglePlay()
		s.title.Store(s.model.Title())
		return nil
	})
}

// Step lets one update run while paused.
func (s *Service) Step() error {
	return s.invoke(func() error {
		s.model.Step()
		return nil
	})
}

// Exit makes the next Update report ShouldExit.
func (s *Service) Exit() error {
	return s.invoke(func() error {
		s.model.Exit()
		return nil
	})
}

// Playing reports whether the game runs freely.
func (s *Service) Playing() (bool, error) {
	var playing bool
	err := s.invoke(func() error {
		playing = s.model.Playing()
		return nil
	})
	return playing, err
}

// PersistGameWindowPosition saves the game window position.
func (s *Service) PersistGameWindowPosition(x, y int) error {
	return s.invoke(func() error {
		s.settings.GameWindow = &Point{X: x, Y: y}
		return s.save()
	})
}

// PersistNavigatorBounds saves the navigator window placement.
func (s *Service) PersistNavigatorBounds(b Bounds) error {
	return s.invoke(func() error {
		s.settings.Navigator = &b
		return s.save()
	})
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() (Settings, error) {
	var out Settings
	err := s.invoke(func() error {
		out = s.settings.Clone()
		return nil
	})
	return out, err
}

func (s *Service) save() error {
	if s.path == "-" {
		return nil
	}
	return s.settings.Save(s.path)
}

// Close stops the navigator goroutine.
func (s *Service) Close() error {
	s.disp.Close()
	s.visible.Store(false)
	return nil
}

func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[gamefw/navigator] "+format+"\n", args...)
}
