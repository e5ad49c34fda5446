package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/simon/internal/audio"
	"github.com/iburimskiy/simon/internal/simon"
)

const frame = 10 * time.Millisecond

// cycle yields its values in a loop.
type cycle struct {
	vals []int
	i    int
}

func (s *cycle) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func newTestController(vals ...int) (*Controller, *audio.Recorder) {
	rec := &audio.Recorder{}
	c := NewController(DefaultTiming(), rec, func() simon.Source {
		return &cycle{vals: vals}
	})
	return c, rec
}

func tickUntil(t *testing.T, c *Controller, done func() bool) {
	t.Helper()
	for i := 0; i < 100000; i++ {
		if done() {
			return
		}
		c.Tick(frame)
	}
	t.Fatalf("condition not reached; mode=%v phase=%v", c.Mode(), c.Phase())
}

func awaitingInput(c *Controller) func() bool {
	return func() bool { return c.Mode() == ModeGame && c.Phase() == PhaseInput }
}

func playRound(t *testing.T, c *Controller) {
	t.Helper()
	for _, color := range c.Engine().Pending() {
		c.Press(color)
	}
	tickUntil(t, c, awaitingInput(c))
}

func TestController_DemoLoops(t *testing.T) {
	c, rec := newTestController(0)
	assert.Equal(t, ModeDemo, c.Mode())

	c.Tick(0)
	lit, on := c.Lit()
	require.True(t, on)
	assert.Equal(t, simon.Green, lit)

	// One full demo pass plus the first note of the next.
	for i := 0; i < 150+1; i++ {
		c.Tick(frame)
	}
	reqs := rec.Requests()
	require.Len(t, reqs, 7)
	assert.Equal(t, simon.Green.Tone(), reqs[6].Freq)
	assert.Equal(t, 200*time.Millisecond, reqs[0].MaxDuration)

	b := c.Banner()
	assert.Equal(t, IdleMessage, b.Message)
	assert.Zero(t, b.Score)
}

func TestController_StartAndFirstRound(t *testing.T) {
	c, rec := newTestController(2, 0, 3, 1)
	c.Click()
	assert.Equal(t, ModeGame, c.Mode())
	assert.Equal(t, StartMessage, c.Banner().Message)

	c.Press(simon.Blue)
	assert.Equal(t, PhasePlayback, c.Phase(), "press during playback is ignored")

	tickUntil(t, c, awaitingInput(c))
	assert.Equal(t, []simon.Color{simon.Blue}, c.Engine().Pending())
	assert.Equal(t, StartMessage, c.Banner().Message)
	assert.Equal(t, 0, c.Banner().Score)

	last := rec.Requests()[len(rec.Requests())-1]
	assert.Equal(t, simon.Blue.Tone(), last.Freq)
	assert.Equal(t, 350*time.Millisecond, last.MaxDuration)
	assert.Equal(t, 1, rec.Stops())
}

func TestController_RoundsAdvance(t *testing.T) {
	c, _ := newTestController(2, 0, 3, 1)
	c.Click()
	tickUntil(t, c, awaitingInput(c))

	for round := 1; round <= 3; round++ {
		playRound(t, c)
		assert.Equal(t, round, c.Banner().Score)
		assert.Equal(t, " ", c.Banner().Message)
	}
	assert.Equal(t, []simon.Color{simon.Blue, simon.Red, simon.Yellow, simon.Green}, c.Engine().Sequence())
}

func TestController_MilestoneFanfare(t *testing.T) {
	c, rec := newTestController(1)
	c.Click()
	tickUntil(t, c, awaitingInput(c))
	for i := 0; i < 4; i++ {
		playRound(t, c)
	}
	require.Equal(t, 4, c.Banner().Score)

	before := len(rec.Requests())
	playRound(t, c)
	require.Equal(t, 5, c.Banner().Score)
	assert.Equal(t, "NICE!", c.Banner().Message)

	// Five presses, then the fanfare, then the six-note sequence.
	reqs := rec.Requests()[before:]
	require.Len(t, reqs, 5+4+6)
	fanfare := reqs[5:9]
	want := []audio.Request{
		{Freq: simon.Green.Tone(), MaxDuration: 250 * time.Millisecond},
		{Freq: simon.Yellow.Tone(), MaxDuration: 250 * time.Millisecond},
		{Freq: simon.Blue.Tone(), MaxDuration: 250 * time.Millisecond},
		{Freq: simon.Red.Tone(), MaxDuration: 500 * time.Millisecond},
	}
	assert.Equal(t, want, fanfare)

	playRound(t, c)
	assert.Equal(t, " ", c.Banner().Message)
}

func TestController_MismatchEndsSession(t *testing.T) {
	c, rec := newTestController(0)
	c.Click()
	tickUntil(t, c, awaitingInput(c))
	playRound(t, c)
	playRound(t, c)
	require.Equal(t, 2, c.Banner().Score)

	c.Press(simon.Yellow)
	assert.Equal(t, PhaseOver, c.Phase())
	c.Press(simon.Red)
	assert.Len(t, c.Engine().Pending(), 2, "presses after a mismatch are ignored")

	// Pressed panel flash, then the lose tone.
	c.Tick(350*time.Millisecond + 150*time.Millisecond)
	reqs := rec.Requests()
	assert.Equal(t, audio.Request{Freq: simon.LoseTone, MaxDuration: time.Second}, reqs[len(reqs)-1])
	lit, on := c.Lit()
	require.True(t, on)
	assert.Equal(t, simon.Red, lit)

	tickUntil(t, c, func() bool { return c.Mode() == ModeDemo })
	assert.Equal(t, 2, c.HiScore())
	assert.Equal(t, Banner{HiScore: 2, Message: IdleMessage}, c.Banner())
}

func TestController_HiScoreKeepsBest(t *testing.T) {
	c, _ := newTestController(3)
	c.Click()
	tickUntil(t, c, awaitingInput(c))
	playRound(t, c)
	c.Press(simon.Red)
	tickUntil(t, c, func() bool { return c.Mode() == ModeDemo })
	require.Equal(t, 1, c.HiScore())

	c.Click()
	tickUntil(t, c, awaitingInput(c))
	c.Press(simon.Red)
	tickUntil(t, c, func() bool { return c.Mode() == ModeDemo })
	assert.Equal(t, 1, c.HiScore())
}

func TestController_NilPlayerAndSource(t *testing.T) {
	c := NewController(DefaultTiming(), nil, nil)
	c.Click()
	tickUntil(t, c, awaitingInput(c))
	assert.Len(t, c.Engine().Pending(), 1)
}
