package tendril

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a replay script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Code   int     `json:"code,omitempty"`
}

// script is the top-level JSON structure for a replay script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a recorded input script against a scene one frame at
// a time, for automated interaction testing without a display. Call
// [ScriptRunner.Step] once per frame until [ScriptRunner.Done] reports true.
//
// Supported actions: "click", "press", "release", "move", "drag" (press at
// from, interpolate over frames, release at to), "keydown", "keyup", "wait".
type ScriptRunner struct {
	steps  []scriptStep
	cursor int
	done   bool

	waitCount int

	// In-flight drag interpolation state.
	dragging  bool
	dragStep  scriptStep
	dragFrame int
}

// LoadScript parses a JSON replay script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse replay script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse replay script: no steps")
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, injecting at most one event (or one
// drag interpolation frame) into the scene.
func (r *ScriptRunner) Step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.dragging {
		r.stepDrag(s)
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		s.PointerPressed(st.X, st.Y, ButtonPrimary, 0)
		s.PointerReleased(st.X, st.Y, 0, 0)
	case "press":
		s.PointerPressed(st.X, st.Y, ButtonPrimary, 0)
	case "release":
		s.PointerReleased(st.X, st.Y, 0, 0)
	case "move":
		s.PointerMoved(st.X, st.Y, 0)
	case "drag":
		if st.Frames < 2 {
			st.Frames = 2
		}
		r.dragging = true
		r.dragStep = st
		r.dragFrame = 0
		s.PointerPressed(st.FromX, st.FromY, ButtonPrimary, 0)
	case "keydown":
		s.KeyDown(KeyCode(st.Code), 0)
	case "keyup":
		s.KeyUp(KeyCode(st.Code), 0)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		debugf("replay: unknown action %q, skipped", st.Action)
	}

	if r.cursor >= len(r.steps) && !r.dragging && r.waitCount == 0 {
		r.done = true
	}
}

// stepDrag emits one interpolated drag frame, releasing on the last.
func (r *ScriptRunner) stepDrag(s *Scene) {
	st := r.dragStep
	r.dragFrame++
	t := float64(r.dragFrame) / float64(st.Frames-1)
	x := st.FromX + (st.ToX-st.FromX)*t
	y := st.FromY + (st.ToY-st.FromY)*t
	if r.dragFrame >= st.Frames-1 {
		s.PointerDragged(st.ToX, st.ToY, ButtonPrimary, 0)
		s.PointerReleased(st.ToX, st.ToY, 0, 0)
		r.dragging = false
		if r.cursor >= len(r.steps) && r.waitCount == 0 {
			r.done = true
		}
		return
	}
	s.PointerDragged(x, y, ButtonPrimary, 0)
}
