package gamefw

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const testBindingsYAML = `
buttons:
  Fire:
    keys: [Space, enter]
    mouse: [Left]
  Exit:
    keys: [ESCAPE]
`

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
	}{
		{"Space", ebiten.KeySpace},
		{"space", ebiten.KeySpace},
		{" ESCAPE ", ebiten.KeyEscape},
		{"ArrowUp", ebiten.KeyArrowUp},
		{"a", ebiten.KeyA},
		{"F12", ebiten.KeyF12},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.name)
		if err != nil {
			t.Errorf("ParseKey(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseKeyUnknown(t *testing.T) {
	if _, err := ParseKey("NoSuchKey"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestParseMouseButton(t *testing.T) {
	for name, want := range map[string]MouseButton{
		"left": MouseButtonLeft, "Right": MouseButtonRight, "MIDDLE": MouseButtonMiddle,
	} {
		got, err := ParseMouseButton(name)
		if err != nil || got != want {
			t.Errorf("ParseMouseButton(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseMouseButton("back"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown button err = %v, want ErrInvalidArgument", err)
	}
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings([]byte(testBindingsYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Buttons) != 2 {
		t.Fatalf("got %d buttons, want 2", len(b.Buttons))
	}
	fire := b.Buttons["Fire"]
	if !slices.Equal(fire.Keys, []string{"Space", "enter"}) {
		t.Errorf("Fire keys = %v", fire.Keys)
	}
	if !slices.Equal(fire.Mouse, []string{"Left"}) {
		t.Errorf("Fire mouse = %v", fire.Mouse)
	}
}

func TestParseBindingsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "buttons:\n  Fire:\n    keys: [Nope]\n"},
		{"unknown mouse", "buttons:\n  Fire:\n    mouse: [back]\n"},
		{"not yaml", "buttons: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBindings([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	if err := os.WriteFile(path, []byte(testBindingsYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := LoadBindings(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Buttons["Exit"]; !ok {
		t.Error("Exit missing")
	}

	if _, err := LoadBindings(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want os.ErrNotExist", err)
	}
}

func TestApplyBindings(t *testing.T) {
	cfg := NewInputConfiguration()
	fire, _ := cfg.AddDigitalButton("Fire")
	fire.Assign(ebiten.KeyF)
	exit, _ := cfg.AddDigitalButton("Exit")
	exit.Assign(ebiten.KeyQ)
	other, _ := cfg.AddDigitalButton("Other")
	other.Assign(ebiten.KeyO)

	b, err := ParseBindings([]byte(testBindingsYAML))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.ApplyBindings(b); err != nil {
		t.Fatal(err)
	}

	if got := fire.Keys(); !slices.Equal(got, []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter}) {
		t.Errorf("Fire keys = %v", got)
	}
	if got := fire.MouseButtons(); !slices.Equal(got, []MouseButton{MouseButtonLeft}) {
		t.Errorf("Fire mouse = %v", got)
	}
	if got := exit.Keys(); !slices.Equal(got, []ebiten.Key{ebiten.KeyEscape}) {
		t.Errorf("Exit keys = %v", got)
	}
	if got := other.Keys(); !slices.Equal(got, []ebiten.Key{ebiten.KeyO}) {
		t.Errorf("unlisted button was rebound: %v", got)
	}
}

func TestApplyBindingsAllOrNothing(t *testing.T) {
	cfg := NewInputConfiguration()
	fire, _ := cfg.AddDigitalButton("Fire")
	fire.Assign(ebiten.KeyF)

	b := &Bindings{Buttons: map[string]ButtonBinding{
		"Fire":    {Keys: []string{"Space"}},
		"Missing": {Keys: []string{"A"}},
	}}
	if err := cfg.ApplyBindings(b); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if got := fire.Keys(); !slices.Equal(got, []ebiten.Key{ebiten.KeyF}) {
		t.Errorf("Fire keys changed to %v after a failed apply", got)
	}

	bad := &Bindings{Buttons: map[string]ButtonBinding{"Fire": {Keys: []string{"Nope"}}}}
	if err := cfg.ApplyBindings(bad); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if err := cfg.ApplyBindings(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil bindings err = %v, want ErrInvalidArgument", err)
	}
}

func TestApplyBindingsAfterUpdate(t *testing.T) {
	cfg := NewInputConfiguration()
	fire, _ := cfg.AddDigitalButton("Fire")
	fire.Assign(ebiten.KeyF)

	in := NewScriptedInput()
	in.PushKeys(1, ebiten.KeySpace)
	in.PushKeys(1, ebiten.KeySpace)
	timer := NewGameTimer()

	in.Advance()
	if err := cfg.Update(in, timer); err != nil {
		t.Fatal(err)
	}
	if fire.State() != ButtonUp {
		t.Fatalf("state = %v before rebind", fire.State())
	}

	// Rebinding is allowed between frames even though the registry is sealed.
	b := &Bindings{Buttons: map[string]ButtonBinding{"Fire": {Keys: []string{"Space"}}}}
	if err := cfg.ApplyBindings(b); err != nil {
		t.Fatal(err)
	}
	in.Advance()
	if err := cfg.Update(in, timer); err != nil {
		t.Fatal(err)
	}
	if fire.State() != ButtonPressed {
		t.Errorf("state = %v after rebind, want Pressed", fire.State())
	}
}

func TestApplyBindingsDuringUpdate(t *testing.T) {
	cfg := NewInputConfiguration()
	fire, _ := cfg.AddDigitalButton("Fire")

	var applyErr error
	fire.Assign(ebiten.KeySpace).MapClickTo(func(GameTiming) {
		applyErr = cfg.ApplyBindings(&Bindings{})
	})

	in := NewScriptedInput()
	in.PushKeys(1, ebiten.KeySpace)
	in.Advance()
	if err := cfg.Update(in, NewGameTimer()); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(applyErr, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", applyErr)
	}
}

func TestBindingsRoundTrip(t *testing.T) {
	cfg := NewInputConfiguration()
	fire, _ := cfg.AddDigitalButton("Fire")
	fire.Assign(ebiten.KeySpace, ebiten.KeyArrowUp).AssignMouse(MouseButtonRight)
	if _, err := cfg.AddDigitalButton("Unbound"); err != nil {
		t.Fatal(err)
	}

	data, err := cfg.Bindings().Marshal()
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseBindings(data)
	if err != nil {
		t.Fatalf("ParseBindings(%s): %v", data, err)
	}

	fresh := NewInputConfiguration()
	fire2, _ := fresh.AddDigitalButton("Fire")
	if _, err := fresh.AddDigitalButton("Unbound"); err != nil {
		t.Fatal(err)
	}
	if err := fresh.ApplyBindings(b); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(fire2.Keys(), fire.Keys()) {
		t.Errorf("keys = %v, want %v", fire2.Keys(), fire.Keys())
	}
	if !slices.Equal(fire2.MouseButtons(), fire.MouseButtons()) {
		t.Errorf("mouse = %v, want %v", fire2.MouseButtons(), fire.MouseButtons())
	}
}
