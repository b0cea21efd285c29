package tendril

// PointerEvent is a raw pointer event as delivered to scene filters.
// Events are plain values; filters must not retain pointers into them across
// dispatches.
type PointerEvent struct {
	Type   EventType
	Target *Node // hit-test target at event time; nil over empty space

	// SceneX and SceneY are absolute scene coordinates.
	SceneX, SceneY float64

	// Buttons holds the buttons down after this event was processed. A
	// release event that ends the interaction carries Buttons == 0.
	Buttons   MouseButtons
	Modifiers KeyModifiers
}

// Position returns the event's absolute scene position.
func (e PointerEvent) Position() Vec2 {
	return Vec2{e.SceneX, e.SceneY}
}

// KeyEvent is a raw keyboard event as delivered to scene key filters.
type KeyEvent struct {
	Type      EventType // EventKeyDown or EventKeyUp
	Code      KeyCode
	Modifiers KeyModifiers
}
