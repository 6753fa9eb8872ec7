package gamefw

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptAction is a compiled tengo script usable as an input callback.
// Each run sees these globals:
//
//	name      the action name
//	elapsed   seconds since the previous frame
//	total     seconds since start
//	hovering  hover state (hover callbacks only)
//	gesture   {type, x, y, dx, dy} (gesture callbacks only)
//	state     a map that persists across runs
//
// Any global the script assigns can be read back with Get. The standard
// tengo modules are importable.
type ScriptAction struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	runs     int
	err      error
}

// CompileScript compiles src as the script for the action called name.
func CompileScript(name string, src []byte) (*ScriptAction, error) {
	return CompileScriptWithGlobals(name, src, nil)
}

// CompileScriptWithGlobals is CompileScript with extra constant globals,
// such as tuning values loaded alongside the script. Values must be
// convertible to tengo objects.
func CompileScriptWithGlobals(name string, src []byte, globals map[string]any) (*ScriptAction, error) {
	script := tengo.NewScript(src)
	type global struct {
		name  string
		value any
	}
	vars := []global{
		{"name", name},
		{"elapsed", 0.0},
		{"total", 0.0},
		{"hovering", false},
		{"gesture", map[string]any{}},
		{"state", map[string]any{}},
	}
	for _, k := range slices.Sorted(maps.Keys(globals)) {
		vars = append(vars, global{k, globals[k]})
	}
	var errs []error
	for _, v := range vars {
		if err := script.Add(v.name, v.value); err != nil {
			errs = append(errs, fmt.Errorf("global %s: %w", v.name, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("gamefw: compile script %q: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("gamefw: compile script %q: %w", name, err)
	}
	return &ScriptAction{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// LoadScript reads and compiles a script file. The action is named after
// the path.
func LoadScript(path string) (*ScriptAction, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gamefw: load script %s: %w", path, err)
	}
	return CompileScript(path, src)
}

// Name returns the action name.
func (a *ScriptAction) Name() string { return a.name }

// Runs returns how many times the script has run.
func (a *ScriptAction) Runs() int { return a.runs }

// Err returns the error of the most recent callback run, if any.
func (a *ScriptAction) Err() error { return a.err }

// Get returns the value of a script global, or nil if it is not defined.
func (a *ScriptAction) Get(name string) any {
	if !a.compiled.IsDefined(name) {
		return nil
	}
	return a.compiled.Get(name).Value()
}

// Run executes the script once with the timing globals set.
func (a *ScriptAction) Run(timing GameTiming) error {
	return a.run(timing, nil)
}

func (a *ScriptAction) run(timing GameTiming, set func(c *tengo.Compiled) error) error {
	var elapsed, total float64
	if timing != nil {
		elapsed, total = timing.ElapsedSeconds(), timing.TotalSeconds()
	}
	if err := a.compiled.Set("elapsed", elapsed); err != nil {
		return err
	}
	if err := a.compiled.Set("total", total); err != nil {
		return err
	}
	if err := a.compiled.Set("state", a.state); err != nil {
		return err
	}
	if set != nil {
		if err := set(a.compiled); err != nil {
			return err
		}
	}
	a.runs++
	if err := a.compiled.Run(); err != nil {
		return fmt.Errorf("gamefw: run script %q: %w", a.name, err)
	}
	return nil
}

// Callback adapts the script to a DigitalButton or VisualButton click
// callback. Run errors are kept in Err.
func (a *ScriptAction) Callback() func(GameTiming) {
	return func(t GameTiming) {
		a.err = a.Run(t)
	}
}

// HoverCallback adapts the script to a VisualButton hover callback.
func (a *ScriptAction) HoverCallback() func(bool, GameTiming) {
	return func(hovering bool, t GameTiming) {
		a.err = a.run(t, func(c *tengo.Compiled) error {
			return c.Set("hovering", hovering)
		})
	}
}

// GestureCallback adapts the script to an InputEvent callback.
func (a *ScriptAction) GestureCallback() func(Gesture, GameTiming) {
	return func(g Gesture, t GameTiming) {
		a.err = a.run(t, func(c *tengo.Compiled) error {
			return c.Set("gesture", map[string]any{
				"type": g.Type.String(),
				"x":    g.Position.X,
				"y":    g.Position.Y,
				"dx":   g.Delta.X,
				"dy":   g.Delta.Y,
			})
		})
	}
}
