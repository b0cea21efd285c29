package tendril

import "testing"

func TestAddChildSetsParent(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Errorf("child.Parent = %v, want %v", child.Parent, parent)
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Errorf("parent children = %d, want 1 with child at 0", parent.NumChildren())
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent still has %d children", a.NumChildren())
	}
	if child.Parent != b {
		t.Errorf("child.Parent = %v, want %v", child.Parent, b)
	}
}

func TestAddChildPanics(t *testing.T) {
	t.Run("nil child", func(t *testing.T) {
		defer expectPanic(t)
		NewNode("n").AddChild(nil)
	})
	t.Run("cycle", func(t *testing.T) {
		defer expectPanic(t)
		parent := NewNode("parent")
		child := NewNode("child")
		parent.AddChild(child)
		child.AddChild(parent)
	})
	t.Run("self", func(t *testing.T) {
		defer expectPanic(t)
		n := NewNode("n")
		n.AddChild(n)
	})
}

func TestAddChildAt(t *testing.T) {
	parent := NewNode("parent")
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	parent.AddChild(a)
	parent.AddChild(c)

	parent.AddChildAt(b, 1)

	got := []*Node{parent.ChildAt(0), parent.ChildAt(1), parent.ChildAt(2)}
	want := []*Node{a, b, c}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %q, want %q", i, got[i].Name, want[i].Name)
		}
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.RemoveChild(child)

	if child.Parent != nil {
		t.Errorf("child.Parent = %v, want nil", child.Parent)
	}
	if parent.NumChildren() != 0 {
		t.Errorf("parent has %d children, want 0", parent.NumChildren())
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	defer expectPanic(t)
	parent := NewNode("parent")
	stranger := NewNode("stranger")
	parent.RemoveChild(stranger)
}

func TestRemoveChildAt(t *testing.T) {
	parent := NewNode("parent")
	a := NewNode("a")
	b := NewNode("b")
	parent.AddChild(a)
	parent.AddChild(b)

	removed := parent.RemoveChildAt(0)

	if removed != a {
		t.Errorf("removed = %q, want %q", removed.Name, a.Name)
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != b {
		t.Errorf("remaining children wrong")
	}
}

func TestWorldPosition(t *testing.T) {
	root := NewNode("root")
	mid := NewNode("mid")
	leaf := NewNode("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	root.X, root.Y = 10, 20
	mid.X, mid.Y = 5, 5
	leaf.X, leaf.Y = 1, 2

	x, y := leaf.WorldPosition()
	if x != 16 || y != 27 {
		t.Errorf("WorldPosition = (%v, %v), want (16, 27)", x, y)
	}
}

func TestContainsLocal(t *testing.T) {
	tests := []struct {
		name string
		node func() *Node
		x, y float64
		want bool
	}{
		{"inside aabb", sizedNode(50, 30), 25, 15, true},
		{"edge aabb", sizedNode(50, 30), 50, 30, true},
		{"outside aabb", sizedNode(50, 30), 51, 15, false},
		{"zero size never hit", sizedNode(0, 0), 0, 0, false},
		{"hit circle inside", circleNode(10, 10, 5), 12, 12, true},
		{"hit circle outside", circleNode(10, 10, 5), 16, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node().containsLocal(tt.x, tt.y); got != tt.want {
				t.Errorf("containsLocal(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitShapeOverridesBounds(t *testing.T) {
	n := NewNode("n")
	n.Width, n.Height = 100, 100
	n.HitShape = HitRect{X: 0, Y: 0, Width: 10, Height: 10}

	if n.containsLocal(50, 50) {
		t.Error("point outside HitShape reported as contained")
	}
	if !n.containsLocal(5, 5) {
		t.Error("point inside HitShape reported as not contained")
	}
}

func TestDispose(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()

	if parent.NumChildren() != 0 {
		t.Errorf("parent still has %d children", parent.NumChildren())
	}
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("subtree not fully disposed")
	}
	if grandchild.Parent != nil {
		t.Error("disposed grandchild retains parent pointer")
	}
}

func expectPanic(t *testing.T) {
	t.Helper()
	if recover() == nil {
		t.Error("expected panic, got none")
	}
}

func sizedNode(w, h float64) func() *Node {
	return func() *Node {
		n := NewNode("n")
		n.Width, n.Height = w, h
		return n
	}
}

func circleNode(cx, cy, r float64) func() *Node {
	return func() *Node {
		n := NewNode("n")
		n.HitShape = HitCircle{CenterX: cx, CenterY: cy, Radius: r}
		return n
	}
}
