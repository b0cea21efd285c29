package tendril

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window and game loop created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// Update, if set, is called once per frame after input injection.
	Update func() error
	// Draw, if set, is called once per frame to render the scene. Tendril
	// itself draws nothing.
	Draw func(screen *ebiten.Image)

	// FocusViewer, if set, mirrors the OS window focus into this viewer so
	// gestures abort when the window loses focus.
	FocusViewer *Viewer

	// Script, if set, replaces real mouse and keyboard input with a scripted
	// replay. The loop exits once the script is done.
	Script *ScriptRunner
}

// Run creates a window and game loop that polls mouse and keyboard state and
// feeds it into the scene's injection methods. It blocks until the window is
// closed (or the replay script finishes) and returns any error from the loop.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&runner{scene: scene, cfg: cfg})
}

// errScriptDone terminates the game loop when a replay script finishes.
type errScriptDone struct{}

func (errScriptDone) Error() string { return "tendril: replay script done" }

// ScriptDone reports whether err is the normal termination of a scripted Run.
func ScriptDone(err error) bool {
	_, ok := err.(errScriptDone)
	return ok
}

// runner implements ebiten.Game on top of a scene's injection API, with edge
// detection against the previous frame's pointer state.
type runner struct {
	scene *Scene
	cfg   RunConfig

	prevButtons MouseButtons
	prevX       float64
	prevY       float64
	prevFocused bool
	started     bool

	keyBuf []ebiten.Key
}

func (r *runner) Update() error {
	if r.cfg.FocusViewer != nil {
		focused := ebiten.IsFocused()
		if !r.started || focused != r.prevFocused {
			r.cfg.FocusViewer.SetFocused(focused)
			r.prevFocused = focused
		}
	}

	if r.cfg.Script != nil {
		r.cfg.Script.Step(r.scene)
		if r.cfg.Script.Done() {
			return errScriptDone{}
		}
	} else {
		r.pollPointer()
		r.pollKeys()
	}
	r.started = true

	if r.cfg.Update != nil {
		return r.cfg.Update()
	}
	return nil
}

func (r *runner) Draw(screen *ebiten.Image) {
	if r.cfg.Draw != nil {
		r.cfg.Draw(screen)
	}
}

func (r *runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.cfg.Width, r.cfg.Height
}

// pollPointer reads the mouse and injects at most one pointer event per
// frame: press and release on button edges, drag while a button is held,
// move otherwise.
func (r *runner) pollPointer() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	buttons := readButtons()
	mods := readModifiers()

	switch {
	case !r.started:
		// First frame establishes the baseline without injecting.
	case buttons&^r.prevButtons != 0:
		r.scene.PointerPressed(x, y, buttons, mods)
	case r.prevButtons&^buttons != 0:
		r.scene.PointerReleased(x, y, buttons, mods)
	case x != r.prevX || y != r.prevY:
		if buttons != 0 {
			r.scene.PointerDragged(x, y, buttons, mods)
		} else {
			r.scene.PointerMoved(x, y, mods)
		}
	}

	r.prevButtons = buttons
	r.prevX, r.prevY = x, y
}

// pollKeys injects key down/up events for every key edge this frame.
func (r *runner) pollKeys() {
	mods := readModifiers()
	r.keyBuf = inpututil.AppendJustPressedKeys(r.keyBuf[:0])
	for _, k := range r.keyBuf {
		r.scene.KeyDown(KeyCode(k), mods)
	}
	r.keyBuf = inpututil.AppendJustReleasedKeys(r.keyBuf[:0])
	for _, k := range r.keyBuf {
		r.scene.KeyUp(KeyCode(k), mods)
	}
}

// readButtons reads the current mouse button state as a bitmask.
func readButtons() MouseButtons {
	var buttons MouseButtons
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		buttons |= ButtonPrimary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		buttons |= ButtonSecondary
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		buttons |= ButtonMiddle
	}
	return buttons
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}
