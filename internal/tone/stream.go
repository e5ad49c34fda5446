package tone

import (
	"fmt"
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/wav"
)

// periodStreamer plays a Buffer once as mono audio on both channels.
type periodStreamer struct {
	buf Buffer
	pos int
}

// Streamer returns a seekable stream over one pass of the buffer.
func (b Buffer) Streamer() beep.StreamSeeker {
	return &periodStreamer{buf: b}
}

func (s *periodStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	n := 0
	for n < len(samples) && s.pos < len(s.buf) {
		v := float64(s.buf[s.pos]) / (WideAmplitude + 1)
		samples[n][0] = v
		samples[n][1] = v
		n++
		s.pos++
	}
	return n, true
}

func (s *periodStreamer) Err() error    { return nil }
func (s *periodStreamer) Len() int      { return len(s.buf) }
func (s *periodStreamer) Position() int { return s.pos }

func (s *periodStreamer) Seek(p int) error {
	if p < 0 || p > len(s.buf) {
		return fmt.Errorf("seek position %d out of range [0, %d]", p, len(s.buf))
	}
	s.pos = p
	return nil
}

// Options shape how a buffer is played back.
type Options struct {
	SampleRate beep.SampleRate
	// Volume is a linear gain in [0, 1].
	Volume float64
	// Loops is the number of extra repeats; -1 repeats until MaxDuration.
	Loops int
	// MaxDuration caps the cue. Zero means no cap.
	MaxDuration time.Duration
}

// Cue builds the stream a sink plays for buf. Loops of -1 without a
// MaxDuration would never end, so that combination is rejected.
func Cue(buf Buffer, opts Options) (beep.Streamer, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("empty tone buffer")
	}
	if opts.Loops < 0 && opts.MaxDuration <= 0 {
		return nil, fmt.Errorf("endless cue: loops=%d without max duration", opts.Loops)
	}

	count := opts.Loops + 1
	if opts.Loops < 0 {
		count = -1
	}
	var s beep.Streamer = beep.Loop(count, buf.Streamer())
	if opts.MaxDuration > 0 {
		if opts.SampleRate <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, opts.SampleRate)
		}
		s = beep.Take(opts.SampleRate.N(opts.MaxDuration), s)
	}
	return &effects.Gain{Streamer: s, Gain: opts.Volume - 1}, nil
}

// WriteWAV encodes s as 16-bit mono WAV.
func WriteWAV(w io.WriteSeeker, s beep.Streamer, rate beep.SampleRate) error {
	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: BitDepth / 8}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}
