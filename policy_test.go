package tendril

import (
	"errors"
	"testing"
)

// clickRecorder records Click dispatches and optionally runs a side effect,
// which is how tests model click policies that mutate the hierarchy.
type clickRecorder struct {
	clicks  int
	onClick func(ev PointerEvent)
}

func (r *clickRecorder) Click(ev PointerEvent) {
	r.clicks++
	if r.onClick != nil {
		r.onClick(ev)
	}
}

// dragRecorder records every DragPolicy dispatch in order.
type dragRecorder struct {
	calls        []string
	deltas       []Vec2
	acceptCursor bool
	acceptKey    bool
}

func (r *dragRecorder) StartDrag(ev PointerEvent) { r.calls = append(r.calls, "start") }

func (r *dragRecorder) Drag(ev PointerEvent, delta Vec2) {
	r.calls = append(r.calls, "drag")
	r.deltas = append(r.deltas, delta)
}

func (r *dragRecorder) EndDrag(ev PointerEvent, delta Vec2) {
	r.calls = append(r.calls, "end")
	r.deltas = append(r.deltas, delta)
}

func (r *dragRecorder) AbortDrag() { r.calls = append(r.calls, "abort") }

func (r *dragRecorder) ShowIndicationCursor(PointerEvent) bool {
	r.calls = append(r.calls, "show")
	return r.acceptCursor
}

func (r *dragRecorder) ShowIndicationCursorForKey(KeyEvent) bool {
	r.calls = append(r.calls, "showKey")
	return r.acceptKey
}

func (r *dragRecorder) HideIndicationCursor() { r.calls = append(r.calls, "hide") }

func TestAttachDetachClick(t *testing.T) {
	reg := NewPolicyRegistry()
	n := NewNode("n")
	p := &clickRecorder{}

	if err := reg.AttachClick(n, p); err != nil {
		t.Fatalf("AttachClick: %v", err)
	}
	if err := reg.AttachClick(n, p); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("double attach error = %v, want ErrAlreadyAttached", err)
	}
	if err := reg.DetachClick(n, p); err != nil {
		t.Fatalf("DetachClick: %v", err)
	}
	if err := reg.DetachClick(n, p); !errors.Is(err, ErrNotAttached) {
		t.Errorf("double detach error = %v, want ErrNotAttached", err)
	}
}

func TestAttachDetachDrag(t *testing.T) {
	reg := NewPolicyRegistry()
	n := NewNode("n")
	p := &dragRecorder{}

	if err := reg.AttachDrag(n, p); err != nil {
		t.Fatalf("AttachDrag: %v", err)
	}
	if err := reg.AttachDrag(n, p); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("double attach error = %v, want ErrAlreadyAttached", err)
	}
	if err := reg.DetachDrag(n, p); err != nil {
		t.Fatalf("DetachDrag: %v", err)
	}
	if err := reg.DetachDrag(n, p); !errors.Is(err, ErrNotAttached) {
		t.Errorf("double detach error = %v, want ErrNotAttached", err)
	}
}

func TestResolveOrderRootToTarget(t *testing.T) {
	scene := NewScene()
	viewer := NewViewer(scene, "main")
	mid := NewNode("mid")
	leaf := NewNode("leaf")
	viewer.Root().AddChild(mid)
	mid.AddChild(leaf)

	reg := NewPolicyRegistry()
	rootP := &dragRecorder{}
	midP := &dragRecorder{}
	leafP := &dragRecorder{}
	mustAttachDrag(t, reg, viewer.Root(), rootP)
	mustAttachDrag(t, reg, leaf, leafP)
	mustAttachDrag(t, reg, mid, midP)

	got := reg.ResolveDrag(nil, leaf, viewer)

	want := []DragPolicy{rootP, midP, leafP}
	if len(got) != len(want) {
		t.Fatalf("resolved %d policies, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("policy %d out of order", i)
		}
	}
}

func TestResolveOutsideViewerSubtree(t *testing.T) {
	scene := NewScene()
	viewer := NewViewer(scene, "main")
	stranger := NewNode("stranger")
	scene.Root().AddChild(stranger)

	reg := NewPolicyRegistry()
	mustAttachDrag(t, reg, stranger, &dragRecorder{})

	if got := reg.ResolveDrag(nil, stranger, viewer); len(got) != 0 {
		t.Errorf("resolved %d policies for node outside the viewer", len(got))
	}
}

func TestResolveMultiplePoliciesPerNode(t *testing.T) {
	scene := NewScene()
	viewer := NewViewer(scene, "main")
	n := NewNode("n")
	viewer.Root().AddChild(n)

	reg := NewPolicyRegistry()
	first := &clickRecorder{}
	second := &clickRecorder{}
	if err := reg.AttachClick(n, first); err != nil {
		t.Fatal(err)
	}
	if err := reg.AttachClick(n, second); err != nil {
		t.Fatal(err)
	}

	got := reg.ResolveClick(nil, n, viewer)
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Errorf("policies on one node not returned in attach order")
	}
}

func mustAttachDrag(t *testing.T, reg *PolicyRegistry, n *Node, p DragPolicy) {
	t.Helper()
	if err := reg.AttachDrag(n, p); err != nil {
		t.Fatal(err)
	}
}
