// Package ui draws the board with ebiten and feeds mouse input to the
// round controller.
package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/simon/internal/board"
	"github.com/iburimskiy/simon/internal/simon"
)

const charWidth = 6 // debug font glyph width

var (
	backgroundColor = color.RGBA{R: 155, G: 155, B: 155, A: 255}
	bannerColor     = color.RGBA{A: 255}
	textColor       = color.RGBA{R: 205, G: 175, B: 0, A: 255}
	hoverColor      = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// Meter reports the loudness of what is playing, in [0, 1].
type Meter interface {
	Level() float64
}

type Game struct {
	ctrl   *board.Controller
	layout board.Layout
	meter  Meter

	// input edge detection
	prevKey map[ebiten.Key]bool
	hovered simon.Color
	hover   bool

	level float64
}

// NewGame wraps ctrl. meter may be nil.
func NewGame(ctrl *board.Controller, layout board.Layout, meter Meter) *Game {
	return &Game{
		ctrl:    ctrl,
		layout:  layout,
		meter:   meter,
		prevKey: map[ebiten.Key]bool{},
	}
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.hovered, g.hover = g.layout.HitTest(float64(mouseX), float64(mouseY))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.ctrl.Mode() == board.ModeDemo {
			g.ctrl.Click()
		} else if g.hover {
			g.ctrl.Press(g.hovered)
		}
	}

	g.ctrl.Tick(time.Second / time.Duration(ebiten.TPS()))

	if g.meter != nil {
		g.level = smoothingFactor*g.level + (1-smoothingFactor)*clamp01(g.meter.Level())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.drawBanner(screen)
	g.drawPanels(screen)
}

func (g *Game) drawBanner(screen *ebiten.Image) {
	r := g.layout.Banner
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bannerColor, false)

	// level meter along the bottom edge of the banner
	if g.level > 0 {
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y+r.H-3), float32(r.W*g.level), 3, textColor, false)
	}

	b := g.ctrl.Banner()
	midY := int(r.Y + r.H/2 - 8)
	score := fmt.Sprintf("SCORE: %d", b.Score)
	hiscore := fmt.Sprintf("HI-SCORE: %d", b.HiScore)
	ebitenutil.DebugPrintAt(screen, score, int(r.X)+8, midY)
	ebitenutil.DebugPrintAt(screen, hiscore, int(r.X+r.W)-8-len(hiscore)*charWidth, midY)
	ebitenutil.DebugPrintAt(screen, b.Message, int(r.X+r.W/2)-len(b.Message)*charWidth/2, midY)
}

func (g *Game) drawPanels(screen *ebiten.Image) {
	lit, on := g.ctrl.Lit()
	for i, r := range g.layout.Panels {
		c := simon.Color(i)
		fill := c.RGB(on && lit == c)
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)

		if g.hover && g.hovered == c && g.ctrl.Mode() == board.ModeGame {
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, hoverColor, false)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout.Width, g.layout.Height
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.layout.Width, g.layout.Height)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(g)
}
