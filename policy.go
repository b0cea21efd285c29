package tendril

import (
	"errors"
	"fmt"
)

// ClickPolicy handles the click part of a click/drag interaction gesture.
type ClickPolicy interface {
	// Click is called once per gesture, on pointer press, before any drag
	// policy is resolved. It may mutate the scene hierarchy; the tool
	// re-resolves the viewer afterwards.
	Click(ev PointerEvent)
}

// DragPolicy handles the drag part of a click/drag interaction gesture and
// the indication cursor preview shown outside of gestures.
type DragPolicy interface {
	// StartDrag is called once on pointer press, after the click phase.
	StartDrag(ev PointerEvent)
	// Drag is called for every drag event with the cumulative displacement
	// from the press position.
	Drag(ev PointerEvent, delta Vec2)
	// EndDrag is called once on release with the final displacement.
	EndDrag(ev PointerEvent, delta Vec2)
	// AbortDrag signals a non-committal rollback: the gesture ended without
	// success (e.g. every viewer lost focus) and no EndDrag will follow.
	AbortDrag()

	// ShowIndicationCursor asks the policy to preview its drag cursor for a
	// prospective gesture at the given pointer event. Returning true claims
	// the cursor until HideIndicationCursor.
	ShowIndicationCursor(ev PointerEvent) bool
	// ShowIndicationCursorForKey is the key-event variant, fired when
	// modifier state may have changed which cursor applies.
	ShowIndicationCursorForKey(ev KeyEvent) bool
	// HideIndicationCursor withdraws a previously shown cursor.
	HideIndicationCursor()
}

// NopDragPolicy is a DragPolicy with no-op defaults, meant for embedding so
// policies only implement the methods they care about.
type NopDragPolicy struct{}

func (NopDragPolicy) StartDrag(PointerEvent)                   {}
func (NopDragPolicy) Drag(PointerEvent, Vec2)                  {}
func (NopDragPolicy) EndDrag(PointerEvent, Vec2)               {}
func (NopDragPolicy) AbortDrag()                               {}
func (NopDragPolicy) ShowIndicationCursor(PointerEvent) bool   { return false }
func (NopDragPolicy) ShowIndicationCursorForKey(KeyEvent) bool { return false }
func (NopDragPolicy) HideIndicationCursor()                    {}

// PolicyResolver resolves the policies willing to handle a capability for a
// hit target under a viewer.
//
// Order contract: returned lists run from the policy nearest the viewer root
// to the policy nearest the hit target. Callers that want target-first
// priority (the indication cursor) iterate in reverse. Resolvers must be
// cheap to call repeatedly — the tool resolves up to three times per press —
// and return an empty list, never a failure, when nothing applies.
type PolicyResolver interface {
	ResolveClick(requester Tool, target *Node, viewer *Viewer) []ClickPolicy
	ResolveDrag(requester Tool, target *Node, viewer *Viewer) []DragPolicy
}

// Attachment misuse errors.
var (
	ErrAlreadyAttached = errors.New("policy already attached")
	ErrNotAttached     = errors.New("policy not attached")
)

// PolicyRegistry is the default PolicyResolver: policies are attached
// directly to nodes, and resolution walks the hierarchy from the hit target
// up to the viewer root, collecting attached policies root-to-target.
// Nodes outside the viewer's subtree resolve to nothing.
type PolicyRegistry struct {
	click map[*Node][]ClickPolicy
	drag  map[*Node][]DragPolicy
}

// NewPolicyRegistry creates an empty registry.
func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{
		click: make(map[*Node][]ClickPolicy),
		drag:  make(map[*Node][]DragPolicy),
	}
}

// AttachClick attaches a click policy to a node. Attaching the same policy
// twice is a misuse and returns ErrAlreadyAttached.
func (r *PolicyRegistry) AttachClick(n *Node, p ClickPolicy) error {
	if n == nil || p == nil {
		return fmt.Errorf("tendril: attach click policy: nil node or policy")
	}
	for _, q := range r.click[n] {
		if q == p {
			return fmt.Errorf("tendril: attach click policy to %q: %w", n.Name, ErrAlreadyAttached)
		}
	}
	r.click[n] = append(r.click[n], p)
	return nil
}

// DetachClick detaches a click policy from a node. Detaching a policy that
// was never attached returns ErrNotAttached.
func (r *PolicyRegistry) DetachClick(n *Node, p ClickPolicy) error {
	if n == nil || p == nil {
		return fmt.Errorf("tendril: detach click policy: nil node or policy")
	}
	s := r.click[n]
	for i, q := range s {
		if q == p {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			r.click[n] = s[:len(s)-1]
			if len(r.click[n]) == 0 {
				delete(r.click, n)
			}
			return nil
		}
	}
	return fmt.Errorf("tendril: detach click policy from %q: %w", n.Name, ErrNotAttached)
}

// AttachDrag attaches a drag policy to a node. Attaching the same policy
// twice is a misuse and returns ErrAlreadyAttached.
func (r *PolicyRegistry) AttachDrag(n *Node, p DragPolicy) error {
	if n == nil || p == nil {
		return fmt.Errorf("tendril: attach drag policy: nil node or policy")
	}
	for _, q := range r.drag[n] {
		if q == p {
			return fmt.Errorf("tendril: attach drag policy to %q: %w", n.Name, ErrAlreadyAttached)
		}
	}
	r.drag[n] = append(r.drag[n], p)
	return nil
}

// DetachDrag detaches a drag policy from a node. Detaching a policy that
// was never attached returns ErrNotAttached.
func (r *PolicyRegistry) DetachDrag(n *Node, p DragPolicy) error {
	if n == nil || p == nil {
		return fmt.Errorf("tendril: detach drag policy: nil node or policy")
	}
	s := r.drag[n]
	for i, q := range s {
		if q == p {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			r.drag[n] = s[:len(s)-1]
			if len(r.drag[n]) == 0 {
				delete(r.drag, n)
			}
			return nil
		}
	}
	return fmt.Errorf("tendril: detach drag policy from %q: %w", n.Name, ErrNotAttached)
}

// chainToRoot collects target and its ancestors up to (and including) the
// viewer root, target first. Returns nil when target is not under the root.
func chainToRoot(target *Node, viewer *Viewer) []*Node {
	if target == nil || viewer == nil {
		return nil
	}
	var chain []*Node
	for n := target; n != nil; n = n.Parent {
		chain = append(chain, n)
		if n == viewer.root {
			return chain
		}
	}
	return nil
}

// ResolveClick returns the click policies for target under viewer, ordered
// root-to-target.
func (r *PolicyRegistry) ResolveClick(requester Tool, target *Node, viewer *Viewer) []ClickPolicy {
	chain := chainToRoot(target, viewer)
	var out []ClickPolicy
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, r.click[chain[i]]...)
	}
	return out
}

// ResolveDrag returns the drag policies for target under viewer, ordered
// root-to-target.
func (r *PolicyRegistry) ResolveDrag(requester Tool, target *Node, viewer *Viewer) []DragPolicy {
	chain := chainToRoot(target, viewer)
	var out []DragPolicy
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, r.drag[chain[i]]...)
	}
	return out
}
