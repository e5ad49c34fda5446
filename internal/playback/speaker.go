// Package playback plays panel cues on the system audio device.
package playback

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/simon/internal/audio"
	"github.com/iburimskiy/simon/internal/tone"
)

const tapRingSize = 8192

// Options configure the device and every cue.
type Options struct {
	SampleRate beep.SampleRate
	BufferSize int
	Format     tone.Format
	Volume     float64
}

// Speaker implements audio.Player on beep's speaker. The speaker is a process
// wide singleton, so only one Speaker should be created.
type Speaker struct {
	opts Options
	tap  *audio.Tap
	ctrl *beep.Ctrl
}

var _ audio.Player = (*Speaker)(nil)

func NewSpeaker(opts Options) (*Speaker, error) {
	if opts.BufferSize <= 0 {
		opts.BufferSize = opts.SampleRate.N(time.Second / 20)
	}
	if err := speaker.Init(opts.SampleRate, opts.BufferSize); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	log.Debug().
		Int("sample_rate", int(opts.SampleRate)).
		Int("buffer_size", opts.BufferSize).
		Stringer("format", opts.Format).
		Msg("speaker ready")

	return &Speaker{
		opts: opts,
		tap:  audio.NewTap(beep.Silence(0), tapRingSize),
	}, nil
}

// PlayTone regenerates the square wave for freq and loops it until
// maxDuration elapses, replacing whatever is playing.
func (s *Speaker) PlayTone(freq float64, maxDuration time.Duration) error {
	buf, err := tone.Generate(freq, s.opts.SampleRate, s.opts.Format)
	if err != nil {
		return err
	}
	cue, err := tone.Cue(buf, tone.Options{
		SampleRate:  s.opts.SampleRate,
		Volume:      s.opts.Volume,
		Loops:       -1,
		MaxDuration: maxDuration,
	})
	if err != nil {
		return err
	}

	// Prepare audio chain: cue -> tap -> ctrl
	speaker.Lock()
	speaker.Clear()
	s.tap.Source = cue
	s.ctrl = &beep.Ctrl{Streamer: s.tap}
	speaker.Unlock()

	speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		// On end: let the meter fall back to silence
		s.tap.Reset()
	})))
	log.Trace().Float64("freq", freq).Dur("max", maxDuration).Msg("cue")
	return nil
}

func (s *Speaker) Stop() {
	speaker.Lock()
	speaker.Clear()
	if s.ctrl != nil {
		s.ctrl.Paused = true
	}
	speaker.Unlock()
	s.tap.Reset()
}

// Level is the RMS of the most recently played samples relative to the
// configured volume, so a full-scale cue reads close to 1.
func (s *Speaker) Level() float64 {
	if s.opts.Volume <= 0 {
		return 0
	}
	return s.tap.Level(2048) / s.opts.Volume
}

// Close releases the audio device.
func (s *Speaker) Close() {
	s.Stop()
	speaker.Close()
}
