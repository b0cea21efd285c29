package tendril

// Vec2 is a 2D vector used for positions, displacements, and sizes
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// EventType identifies a kind of raw interaction event.
type EventType uint8

const (
	EventPointerPressed     EventType = iota // a pointer button went down
	EventPointerDragged                      // the pointer moved with a button held
	EventPointerReleased                     // a pointer button came up
	EventPointerMoved                        // the pointer moved with no button held
	EventPointerEnterTarget                  // the hit-test target gained the pointer
	EventPointerExitTarget                   // the hit-test target lost the pointer
	EventKeyDown                             // a key went down
	EventKeyUp                               // a key came up
)

// MouseButtons is a bitmask of pointer buttons currently held down.
// Values can be combined with bitwise OR (e.g. ButtonPrimary | ButtonMiddle).
type MouseButtons uint8

const (
	ButtonPrimary   MouseButtons = 1 << iota // primary (left) button
	ButtonSecondary                          // secondary (right) button
	ButtonMiddle                             // middle button
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// KeyCode identifies a key in a layout-independent way. When the ebiten
// runner is used, values correspond to ebiten.Key.
type KeyCode int
