// Package simon holds the round state of a memory game session: the growing
// color sequence, the queue of inputs still expected this round, and the score.
package simon

import (
	"errors"
	"math/rand/v2"
	"time"
)

var (
	// ErrNoPendingInput is returned by CheckInput when the round has no input left.
	ErrNoPendingInput = errors.New("no pending input for this round")
	// ErrSessionOver is returned once a mismatch has ended the session.
	ErrSessionOver    = errors.New("session is over")
)

// Source yields uniformly distributed ints in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// State of a session.
type State int

const (
	AwaitingStart State = iota
	RoundActive
	RoundComplete
	SessionOver
)

func (s State) String() string {
	switch s {
	case AwaitingStart:
		return "awaiting-start"
	case RoundActive:
		return "round-active"
	case RoundComplete:
		return "round-complete"
	case SessionOver:
		return "session-over"
	}
	return "unknown"
}

var milestones = map[int]string{
	5:  "NICE!",
	10: "AWESOME!",
	15: "EPIC!!!",
}

// Engine tracks one session. It is not safe for concurrent use.
type Engine struct {
	src      Source
	seq      []Color
	pending  []Color
	score    int
	last     Color
	hasLast  bool
	finished bool
}

// NewEngine creates a session drawing colors from src. A nil src is replaced
// by a time-seeded PCG source.
func NewEngine(src Source) *Engine {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Engine{src: src}
}

// NewSeededEngine is NewEngine with a deterministic PCG source.
func NewSeededEngine(seed uint64) *Engine {
	return NewEngine(rand.New(rand.NewPCG(seed, 0)))
}

// Extend appends one random color, refills the pending queue with the whole
// sequence and updates the score.
func (e *Engine) Extend() {
	e.seq = append(e.seq, Color(e.src.IntN(NumColors)))
	e.pending = append([]Color(nil), e.seq...)
	e.score = len(e.seq) - 1
}

// StartNextRound extends the sequence unless the session has ended.
func (e *Engine) StartNextRound() error {
	if e.finished {
		return ErrSessionOver
	}
	e.Extend()
	return nil
}

// IsRoundComplete reports whether every input of the current round has been
// consumed. It is also true before the first round.
func (e *Engine) IsRoundComplete() bool {
	return len(e.pending) == 0
}

// CheckInput consumes the next expected color and reports whether c matches
// it. The expected color is consumed on a mismatch too, and the session ends.
func (e *Engine) CheckInput(c Color) (bool, error) {
	if e.finished {
		return false, ErrSessionOver
	}
	if len(e.pending) == 0 {
		return false, ErrNoPendingInput
	}
	want := e.pending[0]
	e.pending = e.pending[1:]
	e.last, e.hasLast = want, true
	if want != c {
		e.finished = true
		return false, nil
	}
	return true, nil
}

// Milestone returns the banner text for score, or "" when there is none.
// Only the exact thresholds 5, 10 and 15 produce text.
func Milestone(score int) string {
	return milestones[score]
}

// MilestoneText is Milestone for the current score.
func (e *Engine) MilestoneText() string { return Milestone(e.score) }

// Score is the number of completed rounds.
func (e *Engine) Score() int { return e.score }

// Sequence returns a copy of the full sequence.
func (e *Engine) Sequence() []Color {
	return append([]Color(nil), e.seq...)
}

// Pending returns a copy of the colors still expected this round, in order.
func (e *Engine) Pending() []Color {
	return append([]Color(nil), e.pending...)
}

// LastExpected is the color most recently consumed by CheckInput.
func (e *Engine) LastExpected() (Color, bool) {
	return e.last, e.hasLast
}

// State reports where the session is in its lifecycle.
func (e *Engine) State() State {
	switch {
	case e.finished:
		return SessionOver
	case len(e.seq) == 0:
		return AwaitingStart
	case len(e.pending) == 0:
		return RoundComplete
	default:
		return RoundActive
	}
}
