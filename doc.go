// Package tendril turns raw pointer and key input into click/drag
// interaction gestures for a retained-mode scene graph on [Ebitengine].
//
// Tendril provides the node hierarchy, hit testing, scene-level event
// filters, viewers with focus tracking, a transactional interaction domain,
// and the [ClickDragTool] gesture recognizer that dispatches clicks and
// drags to pluggable policies.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop that feeds real mouse and keyboard input into a scene:
//
//	scene := tendril.NewScene()
//	domain := tendril.NewDomain()
//	viewer := tendril.NewViewer(scene, "board")
//	viewer.SetFocused(true)
//
//	card := tendril.NewNode("card")
//	card.Width, card.Height = 80, 40
//	viewer.Root().AddChild(card)
//	domain.Registry().AttachDrag(card, &MoveCard{node: card})
//
//	tool := tendril.NewClickDragTool()
//	tool.Activate(domain)
//	tendril.Run(scene, tendril.RunConfig{Title: "Board", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call the scene's
// injection methods ([Scene.PointerPressed], [Scene.PointerDragged],
// [Scene.PointerReleased], [Scene.PointerMoved], [Scene.KeyDown],
// [Scene.KeyUp]) from your own input polling. Tests and scripted replays
// (via [ScriptRunner]) use the same entry points, so gesture logic runs
// identically with and without a display.
//
// # Gestures and policies
//
// A gesture starts on pointer press, continues through any number of drag
// events, and ends on release. Click handling and drag handling are separate
// capabilities: a [ClickPolicy] runs once at press time and may freely
// rearrange the hierarchy, a [DragPolicy] receives start/drag/end (or abort)
// with cumulative displacement from the press position. Policies attach to
// nodes through the domain's [PolicyRegistry], or through a custom
// [PolicyResolver].
//
// Every complete gesture is wrapped in exactly one domain transaction, so a
// [TransactionListener] can map gestures one-to-one onto undoable steps.
//
// [Ebitengine]: https://ebitengine.org
package tendril
