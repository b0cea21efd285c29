// Dragboard demonstrates click/drag gestures on a small card board. Drag
// cards to move them; a click raises the card above its siblings before the
// drag targets are resolved. Unfocusing the window aborts the gesture in
// flight and the card tweens back to where it started.
package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/tendril"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	screenW = 640
	screenH = 480
	cardW   = 90.0
	cardH   = 120.0
)

var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// board owns the scene and the snap-back tweens of aborted drags.
type board struct {
	scene *tendril.Scene
	snaps []*snapBack
}

// snapBack animates a card from its abort position back to its drag origin.
type snapBack struct {
	card   *tendril.Node
	tx, ty *gween.Tween
}

// movePolicy drags a card by offsetting its press-time origin with the
// cumulative displacement, and snaps it back on abort.
type movePolicy struct {
	board   *board
	card    *tendril.Node
	originX float64
	originY float64
}

func (p *movePolicy) StartDrag(ev tendril.PointerEvent) {
	p.originX = p.card.X
	p.originY = p.card.Y
}

func (p *movePolicy) Drag(ev tendril.PointerEvent, delta tendril.Vec2) {
	p.card.X = p.originX + delta.X
	p.card.Y = p.originY + delta.Y
}

func (p *movePolicy) EndDrag(ev tendril.PointerEvent, delta tendril.Vec2) {
	p.card.X = p.originX + delta.X
	p.card.Y = p.originY + delta.Y
}

func (p *movePolicy) AbortDrag() {
	p.board.snaps = append(p.board.snaps, &snapBack{
		card: p.card,
		tx:   gween.New(float32(p.card.X), float32(p.originX), 0.3, ease.OutQuad),
		ty:   gween.New(float32(p.card.Y), float32(p.originY), 0.3, ease.OutQuad),
	})
}

func (p *movePolicy) ShowIndicationCursor(ev tendril.PointerEvent) bool {
	ebiten.SetCursorShape(ebiten.CursorShapeMove)
	return true
}

func (p *movePolicy) ShowIndicationCursorForKey(ev tendril.KeyEvent) bool {
	return false
}

func (p *movePolicy) HideIndicationCursor() {
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}

// raisePolicy raises the clicked card above its siblings. It runs in the
// click phase, so the reorder happens before drag policies are resolved.
type raisePolicy struct {
	card *tendril.Node
}

func (p *raisePolicy) Click(ev tendril.PointerEvent) {
	parent := p.card.Parent
	if parent == nil || parent.ChildAt(parent.NumChildren()-1) == p.card {
		return
	}
	parent.RemoveChild(p.card)
	parent.AddChild(p.card)
}

func main() {
	scene := tendril.NewScene()
	domain := tendril.NewDomain()
	viewer := tendril.NewViewer(scene, "board")
	domain.AddViewer(viewer)
	viewer.SetFocused(true)

	b := &board{scene: scene}

	cardColors := []color.RGBA{
		{R: 0x4e, G: 0x9a, B: 0xf5, A: 0xff},
		{R: 0xf5, G: 0x7a, B: 0x4e, A: 0xff},
		{R: 0x6e, G: 0xc9, B: 0x6e, A: 0xff},
	}
	for i, c := range cardColors {
		card := tendril.NewNode("card")
		card.X = 80 + float64(i)*160
		card.Y = 160
		card.Width, card.Height = cardW, cardH
		card.UserData = c
		viewer.Root().AddChild(card)

		if err := domain.Registry().AttachClick(card, &raisePolicy{card: card}); err != nil {
			log.Fatal(err)
		}
		if err := domain.Registry().AttachDrag(card, &movePolicy{board: b, card: card}); err != nil {
			log.Fatal(err)
		}
	}

	tool := tendril.NewClickDragTool()
	if err := tool.Activate(domain); err != nil {
		log.Fatal(err)
	}
	defer tool.Deactivate()

	err := tendril.Run(scene, tendril.RunConfig{
		Title:       "Tendril — Drag Board",
		Width:       screenW,
		Height:      screenH,
		FocusViewer: viewer,
		Update:      b.update,
		Draw:        b.draw,
	})
	if err != nil {
		log.Fatal(err)
	}
}

func (b *board) update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	alive := b.snaps[:0]
	for _, s := range b.snaps {
		x, doneX := s.tx.Update(dt)
		y, doneY := s.ty.Update(dt)
		s.card.X = float64(x)
		s.card.Y = float64(y)
		if !doneX || !doneY {
			alive = append(alive, s)
		}
	}
	b.snaps = alive
	return nil
}

func (b *board) draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x1a, G: 0x1a, B: 0x26, A: 0xff})
	drawNode(screen, b.scene.Root())
}

// drawNode renders every sized node as a solid rectangle, children after
// parents so sibling order matches hit-test order.
func drawNode(screen *ebiten.Image, n *tendril.Node) {
	if !n.Visible {
		return
	}
	if n.Width > 0 && n.Height > 0 {
		c, ok := n.UserData.(color.RGBA)
		if !ok {
			c = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
		}
		x, y := n.WorldPosition()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(n.Width, n.Height)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(c)
		screen.DrawImage(whitePixel, op)
	}
	for _, child := range n.Children() {
		drawNode(screen, child)
	}
}
