package gamefw

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// scriptFrameTime is the simulated duration of one scripted frame.
const scriptFrameTime = time.Second / 60

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action  string  `json:"action"`
	Key     string  `json:"key,omitempty"`
	Button  string  `json:"button,omitempty"`
	Gesture string  `json:"gesture,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// inputScriptFile is the top-level JSON structure for an input script.
type inputScriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// InputScript is a parsed JSON input script:
//
//	{"steps": [
//	  {"action": "key_down", "key": "Space"},
//	  {"action": "wait", "frames": 3},
//	  {"action": "key_up", "key": "Space"},
//	  {"action": "mouse_move", "x": 100, "y": 40},
//	  {"action": "mouse_down", "button": "left"},
//	  {"action": "mouse_up", "button": "left"},
//	  {"action": "click", "x": 10, "y": 10},
//	  {"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 5},
//	  {"action": "gesture", "gesture": "Tap", "x": 10, "y": 10}
//	]}
//
// Every step except wait, click and drag consumes one frame. wait repeats
// the current device state for frames frames; click consumes two and drag
// consumes frames (minimum 2).
type InputScript struct {
	frames []InputFrame
}

// LoadInputScript parses and validates a JSON input script.
func LoadInputScript(jsonData []byte) (*InputScript, error) {
	var file inputScriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("gamefw: parse input script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("gamefw: parse input script: no steps: %w", ErrInvalidArgument)
	}

	var (
		cur    InputFrame
		frames []InputFrame
	)
	emit := func(f InputFrame) {
		f.Keys = slices.Clone(f.Keys)
		f.MouseButtons = slices.Clone(f.MouseButtons)
		frames = append(frames, f)
	}

	for i, st := range file.Steps {
		switch st.Action {
		case "key_down", "key_up":
			k, err := ParseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("gamefw: input script step %d: %w", i, err)
			}
			cur.Keys = setMember(cur.Keys, k, st.Action == "key_down")
			emit(cur)
		case "mouse_move":
			cur.Mouse = Vec2{st.X, st.Y}
			emit(cur)
		case "mouse_down", "mouse_up":
			name := st.Button
			if name == "" {
				name = MouseButtonLeft.String()
			}
			b, err := ParseMouseButton(name)
			if err != nil {
				return nil, fmt.Errorf("gamefw: input script step %d: %w", i, err)
			}
			cur.MouseButtons = setMember(cur.MouseButtons, b, st.Action == "mouse_down")
			emit(cur)
		case "click":
			pos := Vec2{st.X, st.Y}
			cur.Mouse = pos
			press := cur
			press.MouseButtons = setMember(slices.Clone(cur.MouseButtons), MouseButtonLeft, true)
			emit(press)
			cur.MouseButtons = setMember(cur.MouseButtons, MouseButtonLeft, false)
			emit(cur)
		case "drag":
			n := max(st.Frames, 2)
			from, to := Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}
			held := setMember(slices.Clone(cur.MouseButtons), MouseButtonLeft, true)
			for j := range n - 1 {
				f := cur
				f.Mouse = from.Add(to.Sub(from).Scale(float64(j) / float64(n-1)))
				f.MouseButtons = held
				emit(f)
			}
			cur.Mouse = to
			cur.MouseButtons = setMember(cur.MouseButtons, MouseButtonLeft, false)
			emit(cur)
		case "gesture":
			gt, err := ParseGestureType(st.Gesture)
			if err != nil {
				return nil, fmt.Errorf("gamefw: input script step %d: %w", i, err)
			}
			f := cur
			f.Gestures = []Gesture{{Type: gt, Position: Vec2{st.X, st.Y}, Delta: Vec2{st.DX, st.DY}}}
			emit(f)
		case "wait":
			for range st.Frames {
				emit(cur)
			}
		default:
			return nil, fmt.Errorf("gamefw: input script step %d: unknown action %q: %w", i, st.Action, ErrInvalidArgument)
		}
	}
	return &InputScript{frames: frames}, nil
}

func setMember[T comparable](set []T, v T, on bool) []T {
	i := slices.Index(set, v)
	switch {
	case on && i < 0:
		return append(set, v)
	case !on && i >= 0:
		return slices.Delete(set, i, i+1)
	}
	return set
}

// Len returns the number of frames the script plays.
func (s *InputScript) Len() int { return len(s.frames) }

// Frames returns a copy of the compiled frames.
func (s *InputScript) Frames() []InputFrame { return slices.Clone(s.frames) }

// Push queues the script's frames on in.
func (s *InputScript) Push(in *ScriptedInput) {
	in.Push(s.frames...)
}

// Run plays the script through cfg, one Update per frame, advancing timer
// by a 60 Hz frame each time. A nil timer starts from zero. It stops at the
// first Update error.
func (s *InputScript) Run(cfg *InputConfiguration, timer *GameTimer) error {
	if timer == nil {
		timer = NewGameTimer()
	}
	in := NewScriptedInput()
	s.Push(in)
	for in.Advance() {
		timer.Advance(scriptFrameTime)
		if err := cfg.Update(in, timer); err != nil {
			return err
		}
	}
	return nil
}
