package tendril

import "testing"

func TestLoadScriptErrors(t *testing.T) {
	if _, err := LoadScript([]byte("{not json")); err == nil {
		t.Error("malformed JSON accepted")
	}
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("empty script accepted")
	}
}

func TestScriptedDragGesture(t *testing.T) {
	f := newGestureFixture(t)
	drag := &dragRecorder{}
	f.attachDrag(t, f.card, drag)

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 10, "fromY": 10, "toX": 50, "toY": 50, "frames": 5},
		{"action": "wait", "frames": 2},
		{"action": "click", "x": 20, "y": 20}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100 && !runner.Done(); i++ {
		runner.Step(f.scene)
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}

	starts, ends := 0, 0
	for _, c := range drag.calls {
		if c == "start" {
			starts++
		}
		if c == "end" {
			ends++
		}
	}
	// One start/end for the drag step, one for the press/release of click.
	if starts != 2 || ends != 2 {
		t.Errorf("starts/ends = %d/%d, want 2/2", starts, ends)
	}
	if last := drag.deltas[len(drag.deltas)-1]; last != (Vec2{0, 0}) {
		t.Errorf("click final delta = %v, want {0 0}", last)
	}
	// Two gestures, two transactions.
	if f.tx.opened != 2 || f.tx.closed != 2 {
		t.Errorf("transactions = %d/%d, want 2/2", f.tx.opened, f.tx.closed)
	}
}

func TestScriptDragInterpolates(t *testing.T) {
	f := newGestureFixture(t)
	drag := &dragRecorder{}
	f.attachDrag(t, f.card, drag)

	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 10, "fromY": 10, "toX": 50, "toY": 10, "frames": 5}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	for !runner.Done() {
		runner.Step(f.scene)
	}

	want := []Vec2{{10, 0}, {20, 0}, {30, 0}, {40, 0}, {40, 0}}
	if len(drag.deltas) != len(want) {
		t.Fatalf("deltas = %v, want %v", drag.deltas, want)
	}
	for i := range want {
		if drag.deltas[i] != want[i] {
			t.Errorf("delta %d = %v, want %v", i, drag.deltas[i], want[i])
		}
	}
}

func TestScriptUnknownActionSkipped(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "frobnicate"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	scene := NewScene()
	runner.Step(scene)
	if !runner.Done() {
		t.Error("runner stuck on unknown action")
	}
}
