package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/simon/internal/simon"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout(700, 550)

	assert.Equal(t, Rect{X: 10, Y: 10, W: 680, H: 30}, l.Banner)
	assert.Equal(t, Rect{X: 10, Y: 50, W: 335, H: 240}, l.Panels[simon.Yellow])
	assert.Equal(t, Rect{X: 355, Y: 50, W: 335, H: 240}, l.Panels[simon.Blue])
	assert.Equal(t, Rect{X: 10, Y: 300, W: 335, H: 240}, l.Panels[simon.Red])
	assert.Equal(t, Rect{X: 355, Y: 300, W: 335, H: 240}, l.Panels[simon.Green])
}

func TestLayout_HitTest(t *testing.T) {
	l := NewLayout(700, 550)
	cases := []struct {
		x, y float64
		want simon.Color
		hit  bool
	}{
		{20, 60, simon.Yellow, true},
		{600, 60, simon.Blue, true},
		{20, 500, simon.Red, true},
		{600, 500, simon.Green, true},
		{350, 100, 0, false}, // gutter between columns
		{100, 20, 0, false},  // banner
	}
	for _, tc := range cases {
		got, ok := l.HitTest(tc.x, tc.y)
		assert.Equal(t, tc.hit, ok, "(%v,%v)", tc.x, tc.y)
		if tc.hit {
			assert.Equal(t, tc.want, got)
		}
	}
}

func TestTimeline(t *testing.T) {
	var tl Timeline
	var log []string
	tl.Then(func() { log = append(log, "a") }, 100*time.Millisecond)
	tl.Wait(50 * time.Millisecond)
	tl.Then(func() {
		log = append(log, "b")
		tl.Then(func() { log = append(log, "c") }, 0)
	}, 0)

	tl.Advance(0)
	require.Equal(t, []string{"a"}, log)
	tl.Advance(149 * time.Millisecond)
	require.Equal(t, []string{"a"}, log)
	tl.Advance(time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, log)
	assert.True(t, tl.Idle())
}

func TestTimeline_ClearFromAction(t *testing.T) {
	var tl Timeline
	ran := 0
	tl.Then(func() {
		tl.Clear()
		tl.Then(func() { ran++ }, time.Second)
	}, time.Second)
	tl.Then(func() { t.Fatal("cleared step ran") }, 0)

	tl.Advance(0)
	assert.Equal(t, 1, ran)
	assert.False(t, tl.Idle())
	tl.Advance(time.Second)
	assert.True(t, tl.Idle())
}
