package gamefw

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchBindingsReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")
	if err := os.WriteFile(path, []byte("buttons: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := WatchBindings(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(testBindingsYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case b := <-w.Bindings:
		if _, ok := b.Buttons["Fire"]; !ok {
			t.Errorf("reloaded bindings = %+v, want Fire", b.Buttons)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatchBindingsParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")
	if err := os.WriteFile(path, []byte("buttons: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := WatchBindings(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("buttons:\n  Fire:\n    keys: [Nope]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Bindings:
		t.Fatal("received bindings for an invalid file")
	case err := <-w.Errors:
		if err == nil {
			t.Error("nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatchBindingsIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")
	if err := os.WriteFile(path, []byte("buttons: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := WatchBindings(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case b := <-w.Bindings:
		t.Fatalf("unexpected reload: %+v", b)
	case err := <-w.Errors:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(3 * bindingsDebounce):
	}
}

func TestBindingsWatcherPoll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.yaml")
	if err := os.WriteFile(path, []byte("buttons: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := WatchBindings(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	cfg := NewInputConfiguration()
	fire, _ := cfg.AddDigitalButton("Fire")
	if _, err := cfg.AddDigitalButton("Exit"); err != nil {
		t.Fatal(err)
	}

	// Nothing pending: Poll returns immediately.
	if err := w.Poll(cfg); err != nil {
		t.Fatal(err)
	}

	// Hand the watcher a key map directly, as the watch goroutine would.
	b, err := ParseBindings([]byte(testBindingsYAML))
	if err != nil {
		t.Fatal(err)
	}
	w.Bindings <- b
	if err := w.Poll(cfg); err != nil {
		t.Fatal(err)
	}
	if len(fire.Keys()) != 2 {
		t.Errorf("Fire keys = %v after Poll", fire.Keys())
	}
}

func TestBindingsWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	w, err := WatchBindings(path)
	if err != nil {
		t.Fatal(err)
	}
	if w.Path() != path {
		t.Errorf("Path = %q, want %q", w.Path(), path)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Bindings; ok {
		t.Error("Bindings channel still open after Close")
	}
}
