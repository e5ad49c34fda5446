package board

import "github.com/iburimskiy/simon/internal/simon"

const (
	Border       = 10
	BannerHeight = 50
)

// Rect is an axis aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Layout places the banner above a 2x2 grid of panels:
//
//	YELLOW BLUE
//	RED    GREEN
type Layout struct {
	Width, Height int
	Banner        Rect
	Panels        [simon.NumColors]Rect
}

func NewLayout(width, height int) Layout {
	w, h := float64(width), float64(height)
	bw := (w - Border*3) / 2
	bh := (h - BannerHeight - Border*2) / 2
	left, right := float64(Border), bw+Border*2
	top, bottom := float64(BannerHeight), BannerHeight+Border+bh

	l := Layout{
		Width:  width,
		Height: height,
		Banner: Rect{X: Border, Y: Border, W: w - Border*2, H: BannerHeight - Border*2},
	}
	l.Panels[simon.Yellow] = Rect{X: left, Y: top, W: bw, H: bh}
	l.Panels[simon.Blue] = Rect{X: right, Y: top, W: bw, H: bh}
	l.Panels[simon.Red] = Rect{X: left, Y: bottom, W: bw, H: bh}
	l.Panels[simon.Green] = Rect{X: right, Y: bottom, W: bw, H: bh}
	return l
}

// HitTest returns the panel under the point, if any.
func (l Layout) HitTest(x, y float64) (simon.Color, bool) {
	for i, r := range l.Panels {
		if r.Contains(x, y) {
			return simon.Color(i), true
		}
	}
	return 0, false
}
