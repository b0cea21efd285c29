package tendril

// PointerFilter is a scene-level handler that sees raw pointer events before
// any target-specific handling.
type PointerFilter func(PointerEvent)

// KeyFilter is a scene-level handler that sees raw key events before any
// target-specific handling.
type KeyFilter func(KeyEvent)

type pointerFilterEntry struct {
	id uint32
	fn PointerFilter
}

type keyFilterEntry struct {
	id uint32
	fn KeyFilter
}

type filterKind uint8

const (
	filterPointer filterKind = iota
	filterPointerMove
	filterKey
)

// FilterHandle allows removing a registered scene filter. Removing a handle
// that was already removed is a no-op, so acquisition and release stay
// symmetric even on early-return paths.
type FilterHandle struct {
	id    uint32
	scene *Scene
	kind  filterKind
}

// Remove unregisters this filter so it no longer fires.
func (h FilterHandle) Remove() {
	if h.scene == nil {
		return
	}
	switch h.kind {
	case filterPointer:
		h.scene.pointerFilters = removePointerFilter(h.scene.pointerFilters, h.id)
	case filterPointerMove:
		h.scene.moveFilters = removePointerFilter(h.scene.moveFilters, h.id)
	case filterKey:
		h.scene.keyFilters = removeKeyFilter(h.scene.keyFilters, h.id)
	}
}

func removePointerFilter(s []pointerFilterEntry, id uint32) []pointerFilterEntry {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerFilterEntry{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeKeyFilter(s []keyFilterEntry, id uint32) []keyFilterEntry {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = keyFilterEntry{}
			return s[:len(s)-1]
		}
	}
	return s
}

// Scene is the raw event bus for one visual scene. It owns the node tree,
// performs hit testing, and routes every raw event through scene filters
// before any per-target handling the host may add on top.
//
// Several viewers may render into the same scene; filter registration is
// therefore the natural place to deduplicate interaction machinery.
type Scene struct {
	root *Node

	pointerFilters []pointerFilterEntry
	moveFilters    []pointerFilterEntry
	keyFilters     []keyFilterEntry
	nextFilterID   uint32

	// hoverTarget is the node that most recently contained the pointer,
	// used to synthesize enter/exit-target events.
	hoverTarget *Node
}

// NewScene creates a scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{root: NewNode("root")}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// --- Filter registration ---

// AddPointerFilter registers a filter for ALL raw pointer events, including
// enter/exit-target pseudo-events.
func (s *Scene) AddPointerFilter(fn PointerFilter) FilterHandle {
	s.nextFilterID++
	id := s.nextFilterID
	s.pointerFilters = append(s.pointerFilters, pointerFilterEntry{id: id, fn: fn})
	return FilterHandle{id: id, scene: s, kind: filterPointer}
}

// AddPointerMoveFilter registers a filter that fires only for
// EventPointerMoved events.
func (s *Scene) AddPointerMoveFilter(fn PointerFilter) FilterHandle {
	s.nextFilterID++
	id := s.nextFilterID
	s.moveFilters = append(s.moveFilters, pointerFilterEntry{id: id, fn: fn})
	return FilterHandle{id: id, scene: s, kind: filterPointerMove}
}

// AddKeyFilter registers a filter for all raw key events.
func (s *Scene) AddKeyFilter(fn KeyFilter) FilterHandle {
	s.nextFilterID++
	id := s.nextFilterID
	s.keyFilters = append(s.keyFilters, keyFilterEntry{id: id, fn: fn})
	return FilterHandle{id: id, scene: s, kind: filterKey}
}

// --- Dispatch ---

// DispatchPointer routes a raw pointer event through the scene's pointer
// filters, then through the move filters when the event is a pointer move.
func (s *Scene) DispatchPointer(ev PointerEvent) {
	for _, f := range s.pointerFilters {
		f.fn(ev)
	}
	if ev.Type == EventPointerMoved {
		for _, f := range s.moveFilters {
			f.fn(ev)
		}
	}
}

// DispatchKey routes a raw key event through the scene's key filters.
func (s *Scene) DispatchKey(ev KeyEvent) {
	for _, f := range s.keyFilters {
		f.fn(ev)
	}
}

// --- Hit testing ---

// hitTest finds the topmost interactable node at (x, y) in scene
// coordinates. Later siblings are considered on top of earlier ones.
// Returns nil if nothing is hit.
func (s *Scene) hitTest(x, y float64) *Node {
	return hitTestNode(s.root, x, y, 0, 0)
}

// hitTestNode walks the subtree rooted at n. originX/originY is the world
// position of n's parent. Children are tested in reverse order so the
// topmost visual node wins; a node with no hit geometry of its own still
// exposes its children.
func hitTestNode(n *Node, x, y, originX, originY float64) *Node {
	if !n.Visible || !n.Interactable {
		return nil
	}
	wx := originX + n.X
	wy := originY + n.Y
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := hitTestNode(n.children[i], x, y, wx, wy); hit != nil {
			return hit
		}
	}
	if n.containsLocal(x-wx, y-wy) {
		return n
	}
	return nil
}

// --- Input injection ---
//
// The injection methods are the single entry point for raw input: the ebiten
// runner, scripted replays, and tests all feed the scene through them. Each
// hit-tests, synthesizes enter/exit-target events when the target changed,
// and dispatches the event to the filters.

// PointerPressed injects a pointer press at scene coordinates (x, y).
// buttons is the button state after the press.
func (s *Scene) PointerPressed(x, y float64, buttons MouseButtons, mods KeyModifiers) {
	target := s.hitTest(x, y)
	s.syncHoverTarget(target, x, y, buttons, mods)
	s.DispatchPointer(PointerEvent{
		Type: EventPointerPressed, Target: target,
		SceneX: x, SceneY: y, Buttons: buttons, Modifiers: mods,
	})
}

// PointerDragged injects a pointer move with buttons held down.
func (s *Scene) PointerDragged(x, y float64, buttons MouseButtons, mods KeyModifiers) {
	target := s.hitTest(x, y)
	s.syncHoverTarget(target, x, y, buttons, mods)
	s.DispatchPointer(PointerEvent{
		Type: EventPointerDragged, Target: target,
		SceneX: x, SceneY: y, Buttons: buttons, Modifiers: mods,
	})
}

// PointerReleased injects a pointer release. buttons is the button state
// after the release; 0 when the last button came up.
func (s *Scene) PointerReleased(x, y float64, buttons MouseButtons, mods KeyModifiers) {
	target := s.hitTest(x, y)
	s.syncHoverTarget(target, x, y, buttons, mods)
	s.DispatchPointer(PointerEvent{
		Type: EventPointerReleased, Target: target,
		SceneX: x, SceneY: y, Buttons: buttons, Modifiers: mods,
	})
}

// PointerMoved injects a pointer move with no buttons held.
func (s *Scene) PointerMoved(x, y float64, mods KeyModifiers) {
	target := s.hitTest(x, y)
	s.syncHoverTarget(target, x, y, 0, mods)
	s.DispatchPointer(PointerEvent{
		Type: EventPointerMoved, Target: target,
		SceneX: x, SceneY: y, Modifiers: mods,
	})
}

// KeyDown injects a key press.
func (s *Scene) KeyDown(code KeyCode, mods KeyModifiers) {
	s.DispatchKey(KeyEvent{Type: EventKeyDown, Code: code, Modifiers: mods})
}

// KeyUp injects a key release.
func (s *Scene) KeyUp(code KeyCode, mods KeyModifiers) {
	s.DispatchKey(KeyEvent{Type: EventKeyUp, Code: code, Modifiers: mods})
}

// syncHoverTarget dispatches exit/enter-target pseudo-events when the
// hit-test target changes between pointer events. These can also result
// from visual changes caused by an in-flight gesture, which is why gesture
// recognizers must ignore them.
func (s *Scene) syncHoverTarget(target *Node, x, y float64, buttons MouseButtons, mods KeyModifiers) {
	if target == s.hoverTarget {
		return
	}
	if s.hoverTarget != nil {
		s.DispatchPointer(PointerEvent{
			Type: EventPointerExitTarget, Target: s.hoverTarget,
			SceneX: x, SceneY: y, Buttons: buttons, Modifiers: mods,
		})
	}
	s.hoverTarget = target
	if target != nil {
		s.DispatchPointer(PointerEvent{
			Type: EventPointerEnterTarget, Target: target,
			SceneX: x, SceneY: y, Buttons: buttons, Modifiers: mods,
		})
	}
}
