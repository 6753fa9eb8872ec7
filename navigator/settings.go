package navigator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Point is a window position in desktop pixels.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Bounds is a window position and size in desktop pixels.
type Bounds struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Settings are the persisted window placements.
type Settings struct {
	GameWindow *Point  `yaml:"game_window,omitempty"`
	Navigator  *Bounds `yaml:"navigator,omitempty"`
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() Settings {
	var out Settings
	if s.GameWindow != nil {
		p := *s.GameWindow
		out.GameWindow = &p
	}
	if s.Navigator != nil {
		b := *s.Navigator
		out.Navigator = &b
	}
	return out
}

// DefaultSettingsPath returns <user config dir>/gamefw/navigator.yaml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("navigator: settings path: %w", err)
	}
	return filepath.Join(dir, "gamefw", "navigator.yaml"), nil
}

// LoadSettings reads settings from path. A missing file yields empty
// settings.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("navigator: load settings %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("navigator: unmarshal settings %s: %w", path, err)
	}
	return &s, nil
}

// Save writes settings to path, creating the directory if needed.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("navigator: marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("navigator: save settings %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("navigator: save settings %s: %w", path, err)
	}
	return nil
}
