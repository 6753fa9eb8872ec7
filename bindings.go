package gamefw

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// ButtonBinding lists the keys and mouse buttons bound to one digital button.
type ButtonBinding struct {
	Keys  []string `yaml:"keys,omitempty"`
	Mouse []string `yaml:"mouse,omitempty"`
}

// Bindings is a key map loaded from YAML:
//
//	buttons:
//	  Exit:
//	    keys: [Escape]
//	  Fire:
//	    keys: [Space, Enter]
//	    mouse: [left]
//
// Key names are ebiten key names and are matched case-insensitively.
type Bindings struct {
	Buttons map[string]ButtonBinding `yaml:"buttons"`
}

// ParseBindings decodes and validates a YAML key map.
func ParseBindings(data []byte) (*Bindings, error) {
	var b Bindings
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("gamefw: unmarshal bindings: %w", err)
	}
	for _, name := range b.names() {
		if _, _, err := b.Buttons[name].resolve(); err != nil {
			return nil, fmt.Errorf("gamefw: bindings for %q: %w", name, err)
		}
	}
	return &b, nil
}

// LoadBindings reads and parses a YAML key map file.
func LoadBindings(path string) (*Bindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gamefw: load bindings %s: %w", path, err)
	}
	b, err := ParseBindings(data)
	if err != nil {
		return nil, fmt.Errorf("gamefw: %s: %w", path, err)
	}
	return b, nil
}

// Marshal encodes the key map as YAML.
func (b *Bindings) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("gamefw: marshal bindings: %w", err)
	}
	return data, nil
}

// names returns button names sorted for deterministic processing.
func (b *Bindings) names() []string {
	names := make([]string, 0, len(b.Buttons))
	for name := range b.Buttons {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (bb ButtonBinding) resolve() ([]ebiten.Key, []MouseButton, error) {
	keys := make([]ebiten.Key, 0, len(bb.Keys))
	for _, s := range bb.Keys {
		k, err := ParseKey(s)
		if err != nil {
			return nil, nil, err
		}
		keys = append(keys, k)
	}
	mouse := make([]MouseButton, 0, len(bb.Mouse))
	for _, s := range bb.Mouse {
		m, err := ParseMouseButton(s)
		if err != nil {
			return nil, nil, err
		}
		mouse = append(mouse, m)
	}
	return keys, mouse, nil
}

var (
	keyNamesOnce sync.Once
	keyNames     map[string]ebiten.Key
)

// ParseKey resolves an ebiten key name such as "Space", "escape" or
// "ArrowUp".
func ParseKey(name string) (ebiten.Key, error) {
	keyNamesOnce.Do(func() {
		keyNames = make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
		for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
			keyNames[strings.ToLower(k.String())] = k
		}
	})
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("gamefw: unknown key %q: %w", name, ErrInvalidArgument)
	}
	return k, nil
}

// ParseMouseButton resolves "left", "right" or "middle".
func ParseMouseButton(name string) (MouseButton, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range mouseButtonNames {
		if s == n {
			return MouseButton(i), nil
		}
	}
	return 0, fmt.Errorf("gamefw: unknown mouse button %q: %w", name, ErrInvalidArgument)
}

// Bindings returns the current key map of every digital button.
func (c *InputConfiguration) Bindings() *Bindings {
	b := &Bindings{Buttons: make(map[string]ButtonBinding, len(c.digital.order))}
	for _, btn := range c.digital.order {
		var bb ButtonBinding
		for _, k := range btn.keys {
			bb.Keys = append(bb.Keys, k.String())
		}
		for _, m := range btn.mouse {
			bb.Mouse = append(bb.Mouse, m.String())
		}
		b.Buttons[btn.name] = bb
	}
	return b
}

// ApplyBindings replaces the keys and mouse buttons of the named digital
// buttons. Buttons not listed keep their bindings. The whole map is
// validated first: an unknown button name (ErrNotFound) or key name leaves
// every binding unchanged. Button states are preserved, so a rebind takes
// effect on the next Update. Calling it from inside Update fails with
// ErrInvalidState.
func (c *InputConfiguration) ApplyBindings(b *Bindings) error {
	if c.updating {
		return fmt.Errorf("gamefw: apply bindings during Update: %w", ErrInvalidState)
	}
	if b == nil {
		return fmt.Errorf("gamefw: apply nil bindings: %w", ErrInvalidArgument)
	}

	type rebind struct {
		btn   *DigitalButton
		keys  []ebiten.Key
		mouse []MouseButton
	}
	names := b.names()
	pending := make([]rebind, 0, len(names))
	for _, name := range names {
		btn, err := c.GetDigitalButton(name)
		if err != nil {
			return err
		}
		keys, mouse, err := b.Buttons[name].resolve()
		if err != nil {
			return fmt.Errorf("gamefw: bindings for %q: %w", name, err)
		}
		pending = append(pending, rebind{btn, keys, mouse})
	}

	for _, p := range pending {
		p.btn.rebind(p.keys, p.mouse)
	}
	if c.debug {
		debugLogf("applied bindings for %d buttons", len(pending))
	}
	return nil
}
