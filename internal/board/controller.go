// Package board runs the game around a simon.Engine: the attract demo, the
// playback of each round, player input and the end of session flourish.
// It is driven by Tick, Click and Press so it can sit under any frame loop.
package board

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/simon/internal/audio"
	"github.com/iburimskiy/simon/internal/simon"
)

const (
	StartMessage = "LET'S GO!"
	IdleMessage  = "CLICK MOUSE TO START!"
)

var (
	demoNotes    = []simon.Color{simon.Green, simon.Yellow, simon.Blue, simon.Red, simon.Blue, simon.Yellow}
	fanfareNotes = []simon.Color{simon.Green, simon.Yellow, simon.Blue, simon.Red}
)

// Flash is how long a panel stays lit and then dark.
type Flash struct {
	On  time.Duration
	Off time.Duration
}

// Timing holds every delay of the game flow.
type Timing struct {
	Round      Flash
	Demo       Flash
	Rapid      Flash
	RapidCount int
	Fanfare    []time.Duration
	FanfareOff time.Duration
	LoseTone   time.Duration
	StartDelay time.Duration
	RoundDelay time.Duration
}

// DefaultTiming returns the delays the game was tuned with.
func DefaultTiming() Timing {
	return Timing{
		Round:      Flash{On: 350 * time.Millisecond, Off: 150 * time.Millisecond},
		Demo:       Flash{On: 200 * time.Millisecond, Off: 50 * time.Millisecond},
		Rapid:      Flash{On: 100 * time.Millisecond, Off: 100 * time.Millisecond},
		RapidCount: 10,
		Fanfare: []time.Duration{
			250 * time.Millisecond, 250 * time.Millisecond,
			250 * time.Millisecond, 500 * time.Millisecond,
		},
		FanfareOff: 50 * time.Millisecond,
		LoseTone:   time.Second,
		StartDelay: 400 * time.Millisecond,
		RoundDelay: 500 * time.Millisecond,
	}
}

// Mode is whether the demo is looping or a game is in progress.
type Mode int

const (
	ModeDemo Mode = iota
	ModeGame
)

func (m Mode) String() string {
	if m == ModeGame {
		return "game"
	}
	return "demo"
}

// Phase of a game in progress.
type Phase int

const (
	PhasePlayback Phase = iota
	PhaseInput
	PhaseOver
)

// Banner is what the strip above the panels shows.
type Banner struct {
	Score   int
	HiScore int
	Message string
}

// Controller owns the session flow. Not safe for concurrent use.
type Controller struct {
	timing    Timing
	player    audio.Player
	newSource func() simon.Source

	tl       Timeline
	mode     Mode
	phase    Phase
	engine   *simon.Engine
	hiScore  int
	roundMsg string
	banner   string
	lit      simon.Color
	litOn    bool
}

// NewController starts in demo mode. newSource is called once per session;
// nil draws a fresh time-seeded source each time.
func NewController(timing Timing, player audio.Player, newSource func() simon.Source) *Controller {
	if player == nil {
		player = audio.Nop{}
	}
	if newSource == nil {
		newSource = func() simon.Source { return nil }
	}
	c := &Controller{timing: timing, player: player, newSource: newSource}
	c.scheduleDemo()
	return c
}

func (c *Controller) Mode() Mode            { return c.mode }
func (c *Controller) Phase() Phase          { return c.phase }
func (c *Controller) HiScore() int          { return c.hiScore }
func (c *Controller) Engine() *simon.Engine { return c.engine }

// Lit returns the panel currently lit, if any.
func (c *Controller) Lit() (simon.Color, bool) { return c.lit, c.litOn }

func (c *Controller) Banner() Banner {
	if c.mode == ModeDemo || c.engine == nil {
		return Banner{HiScore: c.hiScore, Message: IdleMessage}
	}
	return Banner{Score: c.engine.Score(), HiScore: c.hiScore, Message: c.banner}
}

// Tick advances the flow by dt.
func (c *Controller) Tick(dt time.Duration) { c.tl.Advance(dt) }

// Click is a mouse press anywhere; in demo mode it starts a game.
func (c *Controller) Click() {
	if c.mode != ModeDemo {
		return
	}
	c.startGame()
}

// Press is the player choosing a panel. It is ignored unless the game is
// waiting for input.
func (c *Controller) Press(color simon.Color) {
	if c.mode != ModeGame || c.phase != PhaseInput {
		return
	}
	ok, err := c.engine.CheckInput(color)
	if err != nil {
		log.Error().Err(err).Stringer("color", color).Msg("unexpected press")
		return
	}
	c.flash(color, c.timing.Round)

	if !ok {
		c.phase = PhaseOver
		missed, _ := c.engine.LastExpected()
		log.Info().
			Int("score", c.engine.Score()).
			Stringer("pressed", color).
			Stringer("expected", missed).
			Msg("sequence broken")
		c.tl.Then(func() { c.tone(simon.LoseTone, c.timing.LoseTone) }, 0)
		for i := 0; i < c.timing.RapidCount; i++ {
			c.flashSilent(missed, c.timing.Rapid)
		}
		c.tl.Then(c.endGame, 0)
		return
	}
	if c.engine.IsRoundComplete() {
		c.phase = PhasePlayback
		c.roundMsg = " "
		c.tl.Then(c.nextRound, 0)
	}
}

func (c *Controller) startGame() {
	c.tl.Clear()
	c.player.Stop()
	c.litOn = false

	c.mode = ModeGame
	c.phase = PhasePlayback
	c.engine = simon.NewEngine(c.newSource())
	c.roundMsg = StartMessage
	c.banner = StartMessage
	log.Info().Int("hiscore", c.hiScore).Msg("session started")

	c.tl.Wait(c.timing.StartDelay)
	c.tl.Then(c.nextRound, 0)
}

func (c *Controller) nextRound() {
	if err := c.engine.StartNextRound(); err != nil {
		log.Error().Err(err).Msg("start round")
		return
	}
	if msg := c.engine.MilestoneText(); msg != "" {
		c.banner = msg
		for i, note := range fanfareNotes {
			on := c.timing.Round.On
			if len(c.timing.Fanfare) > 0 {
				on = c.timing.Fanfare[i%len(c.timing.Fanfare)]
			}
			c.flash(note, Flash{On: on, Off: c.timing.FanfareOff})
		}
	} else {
		c.banner = c.roundMsg
	}
	log.Debug().Int("score", c.engine.Score()).Int("length", len(c.engine.Sequence())).Msg("round")

	c.tl.Wait(c.timing.RoundDelay)
	for _, color := range c.engine.Pending() {
		c.flash(color, c.timing.Round)
	}
	c.tl.Then(func() { c.phase = PhaseInput }, 0)
}

func (c *Controller) endGame() {
	score := c.engine.Score()
	if score > c.hiScore {
		c.hiScore = score
		log.Info().Int("hiscore", score).Msg("new hi-score")
	}
	c.mode = ModeDemo
	c.scheduleDemo()
}

func (c *Controller) scheduleDemo() {
	for _, note := range demoNotes {
		c.flash(note, c.timing.Demo)
	}
	c.tl.Then(func() {
		if c.mode == ModeDemo {
			c.scheduleDemo()
		}
	}, 0)
}

func (c *Controller) flash(color simon.Color, f Flash) {
	c.tl.Then(func() {
		c.lit, c.litOn = color, true
		c.tone(color.Tone(), f.On)
	}, f.On)
	c.tl.Then(func() { c.litOn = false }, f.Off)
}

func (c *Controller) flashSilent(color simon.Color, f Flash) {
	c.tl.Then(func() { c.lit, c.litOn = color, true }, f.On)
	c.tl.Then(func() { c.litOn = false }, f.Off)
}

func (c *Controller) tone(freq float64, d time.Duration) {
	if err := c.player.PlayTone(freq, d); err != nil {
		log.Warn().Err(err).Float64("freq", freq).Msg("play tone")
	}
}
