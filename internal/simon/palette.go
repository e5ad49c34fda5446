package simon

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is an index into the fixed four-panel palette.
type Color int

const (
	Red Color = iota
	Green
	Blue
	Yellow
)

// NumColors is the size of the palette.
const NumColors = 4

// LoseTone is played while the missed panel flashes at the end of a session.
const LoseTone = 49.0

type panel struct {
	name string
	tone float64
	dim  color.RGBA
	lit  color.RGBA
}

var palette = [NumColors]panel{
	Red:    {"RED", 440, color.RGBA{R: 105, A: 255}, color.RGBA{R: 255, A: 255}},
	Green:  {"GREEN", 164.81, color.RGBA{G: 105, A: 255}, color.RGBA{G: 255, A: 255}},
	Blue:   {"BLUE", 329.63, color.RGBA{B: 105, A: 255}, color.RGBA{B: 255, A: 255}},
	Yellow: {"YELLOW", 277.18, color.RGBA{R: 105, G: 105, A: 255}, color.RGBA{R: 255, G: 255, A: 255}},
}

// Colors returns the palette in index order.
func Colors() []Color {
	return []Color{Red, Green, Blue, Yellow}
}

func (c Color) Valid() bool { return c >= 0 && c < NumColors }

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return palette[c].name
}

// Tone is the frequency in Hz of the panel's cue.
func (c Color) Tone() float64 {
	if !c.Valid() {
		return 0
	}
	return palette[c].tone
}

// RGB returns the panel fill, lit or unlit.
func (c Color) RGB(lit bool) color.RGBA {
	if !c.Valid() {
		return color.RGBA{A: 255}
	}
	if lit {
		return palette[c].lit
	}
	return palette[c].dim
}

// ParseColor accepts a palette name in any case.
func ParseColor(s string) (Color, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, p := range palette {
		if p.name == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}
