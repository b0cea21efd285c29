package tendril

import "fmt"

// ClickDragTool converts raw pointer and key events into click/drag
// interaction gestures dispatched to resolved policies.
//
// Click and drag are overlapping gestures: every drag begins with a click,
// and a click policy may mutate the visual hierarchy before the drag targets
// can be resolved. The tool therefore re-resolves the viewer for the pressed
// node after the click phase and treats an unresolvable viewer like "no drag
// policies found".
//
// The tool opens and closes a single execution transaction on its domain per
// complete gesture (click plus any number of drags plus release or abort),
// so everything a gesture did can be undone in one step. The transaction is
// open exactly while a gesture session with dispatched policies exists; the
// tool never double-opens or double-closes by construction.
//
// While no gesture is in flight, a preview sub-loop resolves the drag
// policies under the pointer on every move (and key) event and lets the one
// nearest the hit target show an indication cursor. The preview filters are
// suspended for the duration of a gesture and resumed on release.
type ClickDragTool struct {
	domain *Domain
	active bool

	// Scene registration: one filter set per distinct scene, keyed by
	// identity so viewers sharing a scene register only once.
	scenes         map[*Scene]*sceneFilters
	focusListeners []ListenerHandle

	// Gesture session. pressed is non-nil from press to release;
	// activePolicies is non-empty exactly while drag policies are notified,
	// which is also exactly while the session's transaction is open.
	pressed        *Node
	startPos       Vec2
	activeViewer   *Viewer
	activePolicies []DragPolicy

	// suspendedScene is the scene whose indication filters the in-flight
	// gesture removed, or nil. Tracking it keeps suspend/resume symmetric:
	// a gesture that never suspended (scrollbar press) resumes nothing.
	suspendedScene *Scene

	// Indication preview state.
	indicationPolicy     DragPolicy
	possibleDragPolicies []DragPolicy
}

type sceneFilters struct {
	pointer FilterHandle
	move    FilterHandle
	key     FilterHandle
}

// NewClickDragTool creates an inactive click/drag tool.
func NewClickDragTool() *ClickDragTool {
	return &ClickDragTool{scenes: make(map[*Scene]*sceneFilters)}
}

// Activate wires the tool into the domain: a focus listener per viewer, and
// one set of scene filters (pointer, pointer-move, key) per distinct scene.
func (t *ClickDragTool) Activate(d *Domain) error {
	if t.active {
		return fmt.Errorf("tendril: click/drag tool already active")
	}
	t.domain = d
	t.active = true
	for _, viewer := range d.Viewers() {
		t.focusListeners = append(t.focusListeners,
			viewer.OnFocusChanged(t.viewerFocusChanged))

		scene := viewer.Scene()
		if _, ok := t.scenes[scene]; ok {
			// already registered for this scene
			continue
		}
		t.scenes[scene] = &sceneFilters{
			move:    scene.AddPointerMoveFilter(t.indicationMoveFilter),
			key:     scene.AddKeyFilter(t.indicationKeyFilter),
			pointer: scene.AddPointerFilter(t.pointerFilter),
		}
	}
	return nil
}

// Deactivate aborts any in-flight gesture and releases every filter and
// listener acquired by Activate. Gesture state does not survive
// deactivation.
func (t *ClickDragTool) Deactivate() {
	if !t.active {
		return
	}
	if t.activeViewer != nil {
		t.abortGesture()
	}
	for _, sf := range t.scenes {
		sf.pointer.Remove()
		sf.move.Remove()
		sf.key.Remove()
	}
	clear(t.scenes)
	for _, h := range t.focusListeners {
		h.Remove()
	}
	t.focusListeners = nil
	t.suspendedScene = nil
	t.pressed = nil
	if t.indicationPolicy != nil {
		t.indicationPolicy.HideIndicationCursor()
		t.indicationPolicy = nil
	}
	t.possibleDragPolicies = nil
	t.domain = nil
	t.active = false
}

// InGesture reports whether a gesture session with active drag policies is
// in flight.
func (t *ClickDragTool) InGesture() bool {
	return len(t.activePolicies) > 0
}

// pointerFilter is registered as a scene pointer filter and classifies raw
// pointer events into press, drag, and release.
func (t *ClickDragTool) pointerFilter(ev PointerEvent) {
	if t.pressed == nil {
		if ev.Type != EventPointerPressed || ev.Target == nil {
			// not initialized yet
			return
		}
		t.pressed = ev.Target
		t.startPos = ev.Position()
		t.press(t.pressed, ev)
		return
	}
	if ev.Type == EventPointerEnterTarget || ev.Type == EventPointerExitTarget {
		// Ignore enter/exit-target events: they may result from visual
		// changes caused by a preceding press and must not be mistaken
		// for drag or release.
		return
	}
	released := ev.Type == EventPointerReleased || ev.Buttons == 0
	dx := ev.SceneX - t.startPos.X
	dy := ev.SceneY - t.startPos.Y
	if released {
		t.release(t.pressed, ev, dx, dy)
		t.pressed = nil
		return
	}
	// Any non-release event with a button still down continues the drag.
	t.drag(t.pressed, ev, dx, dy)
}

// press runs the click phase and starts the drag phase of a gesture.
func (t *ClickDragTool) press(target *Node, ev PointerEvent) {
	viewer := t.domain.ViewerOf(target)
	if viewer == nil {
		debugf("press on %q outside any viewer, ignored", target.Name)
		return
	}
	// Presses inside a pannable canvas's scrollbars never start a gesture.
	if canvas := viewer.Canvas(); canvas != nil {
		for n := target; n != nil; n = n.Parent {
			if n == canvas.HorizontalScrollBar() || n == canvas.VerticalScrollBar() {
				debugf("press on scrollbar of %q, ignored", viewer.Name())
				return
			}
		}
	}

	// Recompute the indication cursor synchronously so it is shown even
	// when no move event preceded the press.
	t.indicationMoveFilter(ev)

	// The indication filters must not run concurrently with the gesture.
	t.suspendIndicationFilters(viewer.Scene())

	// Re-resolve the viewer that contains the target.
	viewer = t.domain.ViewerOf(target)

	// Click phase. The transaction opens lazily with the first dispatch.
	opened := false
	clickPolicies := t.domain.Resolver().ResolveClick(t, target, viewer)
	if len(clickPolicies) > 0 {
		opened = true
		t.domain.OpenTransaction(t)
		for _, p := range clickPolicies {
			p.Click(ev)
		}
	}

	// Re-resolve the viewer again now that the click policies have run: a
	// click policy may have changed the hierarchy so that the viewer can no
	// longer be determined for the target. In that case no drag policies
	// are notified.
	t.activeViewer = t.domain.ViewerOf(target)

	var dragPolicies []DragPolicy
	if t.activeViewer != nil {
		dragPolicies = t.domain.Resolver().ResolveDrag(t, target, t.activeViewer)
	}

	if len(dragPolicies) == 0 {
		// Click-only gesture: settle the transaction now and leave no
		// active session behind, so a later focus loss cannot abort (and
		// double-close) anything.
		if opened {
			t.domain.CloseTransaction(t)
		}
		t.activeViewer = nil
		return
	}

	if !opened {
		t.domain.OpenTransaction(t)
	}
	t.activePolicies = dragPolicies
	for _, p := range t.activePolicies {
		p.StartDrag(ev)
	}
	debugf("gesture started on %q with %d drag policies", target.Name, len(t.activePolicies))
}

// drag dispatches a drag event with the cumulative displacement from the
// press position to every active policy.
func (t *ClickDragTool) drag(target *Node, ev PointerEvent, dx, dy float64) {
	if len(t.activePolicies) == 0 {
		return
	}
	delta := Vec2{dx, dy}
	for _, p := range t.activePolicies {
		p.Drag(ev, delta)
	}
}

// release finishes a gesture: indication filters come back first, then the
// active policies get their end-of-drag, the transaction closes, and any
// leftover preview cursor is hidden.
func (t *ClickDragTool) release(target *Node, ev PointerEvent, dx, dy float64) {
	t.resumeIndicationFilters()

	if len(t.activePolicies) == 0 {
		// Nothing to finalize: the gesture never activated drag policies,
		// or a focus-loss abort already settled it.
		t.activeViewer = nil
		return
	}

	delta := Vec2{dx, dy}
	for _, p := range t.activePolicies {
		p.EndDrag(ev, delta)
	}
	t.activePolicies = nil
	t.activeViewer = nil
	t.domain.CloseTransaction(t)
	debugf("gesture released at (%v, %v)", ev.SceneX, ev.SceneY)

	if t.indicationPolicy != nil {
		t.indicationPolicy.HideIndicationCursor()
		t.indicationPolicy = nil
	}
}

// viewerFocusChanged aborts the in-flight gesture when no viewer of the
// domain retains focus. Focus merely moving between cooperating viewers is
// not an abort.
func (t *ClickDragTool) viewerFocusChanged(bool) {
	if t.activeViewer == nil {
		// cannot abort without an active session
		return
	}
	for _, v := range t.domain.Viewers() {
		if v.Focused() {
			return
		}
	}
	t.abortGesture()
}

// abortGesture cancels the active policies without a normal end-of-drag and
// closes the transaction. Safe to call only while a session exists.
func (t *ClickDragTool) abortGesture() {
	debugf("gesture aborted with %d drag policies", len(t.activePolicies))
	for _, p := range t.activePolicies {
		p.AbortDrag()
	}
	t.activePolicies = nil
	t.activeViewer = nil
	t.domain.CloseTransaction(t)
}

// suspendIndicationFilters removes the pointer-move and key filters from the
// gesture's scene and remembers the scene for the matching resume.
func (t *ClickDragTool) suspendIndicationFilters(scene *Scene) {
	sf := t.scenes[scene]
	if sf == nil {
		return
	}
	sf.move.Remove()
	sf.key.Remove()
	t.suspendedScene = scene
}

// resumeIndicationFilters re-registers the filters removed by the matching
// suspend. No-op when nothing was suspended.
func (t *ClickDragTool) resumeIndicationFilters() {
	scene := t.suspendedScene
	if scene == nil {
		return
	}
	t.suspendedScene = nil
	sf := t.scenes[scene]
	if sf == nil {
		return
	}
	sf.move = scene.AddPointerMoveFilter(t.indicationMoveFilter)
	sf.key = scene.AddKeyFilter(t.indicationKeyFilter)
}

// indicationMoveFilter recomputes the indication preview for a pointer
// event: hide any shown cursor first, resolve the drag policy candidates
// for the node under the pointer, then offer the cursor to the candidates
// from the one nearest the hit target outwards until one accepts.
func (t *ClickDragTool) indicationMoveFilter(ev PointerEvent) {
	if t.indicationPolicy != nil {
		t.indicationPolicy.HideIndicationCursor()
		t.indicationPolicy = nil
	}

	target := ev.Target
	if target == nil {
		return
	}
	if viewer := t.domain.ViewerOf(target); viewer != nil {
		t.possibleDragPolicies = t.domain.Resolver().ResolveDrag(t, target, viewer)
	} else {
		t.possibleDragPolicies = nil
	}

	// Candidates are ordered root-to-target; walk them backwards so the
	// policy closest to the hit target is the first to offer a cursor.
	for i := len(t.possibleDragPolicies) - 1; i >= 0; i-- {
		if t.possibleDragPolicies[i].ShowIndicationCursor(ev) {
			t.indicationPolicy = t.possibleDragPolicies[i]
			break
		}
	}
}

// indicationKeyFilter re-offers the indication cursor on key events, which
// can change which cursor applies (modifier keys). The pointer's hit target
// is unaffected by keyboard state, so the most recently resolved candidate
// list is reused rather than re-resolved.
func (t *ClickDragTool) indicationKeyFilter(ev KeyEvent) {
	if t.indicationPolicy != nil {
		t.indicationPolicy.HideIndicationCursor()
		t.indicationPolicy = nil
	}
	for i := len(t.possibleDragPolicies) - 1; i >= 0; i-- {
		if t.possibleDragPolicies[i].ShowIndicationCursorForKey(ev) {
			t.indicationPolicy = t.possibleDragPolicies[i]
			break
		}
	}
}
