package tendril

// FocusListener is notified when a viewer's focused flag changes.
type FocusListener func(focused bool)

type focusListenerEntry struct {
	id uint32
	fn FocusListener
}

// ListenerHandle allows removing a registered viewer focus listener.
// Removing a handle twice is a no-op.
type ListenerHandle struct {
	id     uint32
	viewer *Viewer
}

// Remove unregisters this listener so it no longer fires.
func (h ListenerHandle) Remove() {
	if h.viewer == nil {
		return
	}
	s := h.viewer.focusListeners
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = focusListenerEntry{}
			h.viewer.focusListeners = s[:len(s)-1]
			return
		}
	}
}

// Canvas is the pannable surface a viewer can render into. Its scrollbar
// nodes live inside the scene graph so they take part in hit testing;
// interaction tools use them to keep scrollbar presses from starting
// gestures.
type Canvas struct {
	node *Node
	hbar *Node
	vbar *Node
}

// Node returns the canvas container node.
func (c *Canvas) Node() *Node {
	return c.node
}

// HorizontalScrollBar returns the horizontal scrollbar node.
func (c *Canvas) HorizontalScrollBar() *Node {
	return c.hbar
}

// VerticalScrollBar returns the vertical scrollbar node.
func (c *Canvas) VerticalScrollBar() *Node {
	return c.vbar
}

// Viewer owns a rendered visual root inside a scene and a focus flag. It is
// the unit against which interaction policies are resolved. A viewer never
// owns the scene; several viewers may share one.
type Viewer struct {
	name   string
	scene  *Scene
	root   *Node
	canvas *Canvas

	focused        bool
	focusListeners []focusListenerEntry
	nextListenerID uint32
}

// NewViewer creates a viewer whose root node is attached to the scene root.
func NewViewer(scene *Scene, name string) *Viewer {
	root := NewNode(name)
	scene.Root().AddChild(root)
	return &Viewer{name: name, scene: scene, root: root}
}

// NewPannableViewer creates a viewer that renders inside a pannable canvas.
// The canvas node holds the viewer root plus horizontal and vertical
// scrollbar nodes; the scrollbars are added last so they sit on top of the
// content for hit testing. Scrollbar nodes start with zero extent — hosts
// position and size them.
func NewPannableViewer(scene *Scene, name string) *Viewer {
	canvasNode := NewNode(name + "-canvas")
	root := NewNode(name)
	hbar := NewNode(name + "-hscrollbar")
	vbar := NewNode(name + "-vscrollbar")
	canvasNode.AddChild(root)
	canvasNode.AddChild(hbar)
	canvasNode.AddChild(vbar)
	scene.Root().AddChild(canvasNode)
	return &Viewer{
		name:   name,
		scene:  scene,
		root:   root,
		canvas: &Canvas{node: canvasNode, hbar: hbar, vbar: vbar},
	}
}

// Name returns the viewer's name.
func (v *Viewer) Name() string {
	return v.name
}

// Scene returns the scene the viewer renders into.
func (v *Viewer) Scene() *Scene {
	return v.scene
}

// Root returns the viewer's root visual node.
func (v *Viewer) Root() *Node {
	return v.root
}

// Canvas returns the viewer's pannable canvas, or nil for plain viewers.
func (v *Viewer) Canvas() *Canvas {
	return v.canvas
}

// Focused reports whether the viewer currently has focus.
func (v *Viewer) Focused() bool {
	return v.focused
}

// SetFocused updates the focus flag and notifies listeners on change.
func (v *Viewer) SetFocused(focused bool) {
	if v.focused == focused {
		return
	}
	v.focused = focused
	// Iterate a snapshot: listeners may unregister themselves.
	listeners := append([]focusListenerEntry(nil), v.focusListeners...)
	for _, l := range listeners {
		l.fn(focused)
	}
}

// OnFocusChanged registers a focus change listener.
func (v *Viewer) OnFocusChanged(fn FocusListener) ListenerHandle {
	v.nextListenerID++
	id := v.nextListenerID
	v.focusListeners = append(v.focusListeners, focusListenerEntry{id: id, fn: fn})
	return ListenerHandle{id: id, viewer: v}
}
