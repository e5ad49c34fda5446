// Package tone synthesizes the square-wave cues played for each panel.
package tone

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/faiface/beep"
)

var (
	ErrInvalidFrequency  = errors.New("frequency must be positive")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrFrequencyTooHigh  = errors.New("frequency too high for sample rate")
	ErrFrequencyTooLow   = errors.New("frequency too low for sample rate")
	ErrUnsupportedFormat = errors.New("sample format not supported")
)

// Format selects the amplitude range samples are synthesized at.
type Format int

const (
	// Narrow synthesizes signed 8-bit samples and rescales them to 16 bits.
	Narrow Format = iota + 1
	// Wide synthesizes at the full signed 16-bit range.
	Wide
)

const (
	// BitDepth of the samples handed to playback.
	BitDepth = 16

	// WideAmplitude is 2^(BitDepth-1) - 1.
	WideAmplitude = 1<<(BitDepth-1) - 1
	// NarrowAmplitude is WideAmplitude scaled down to a signed byte.
	NarrowAmplitude = WideAmplitude / 256
	// UpscaleFactor converts a narrow sample to the wide range.
	UpscaleFactor = WideAmplitude / 127
)

func (f Format) String() string {
	switch f {
	case Narrow:
		return "narrow"
	case Wide:
		return "wide"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts "narrow"/"wide" and the array codes "b"/"h".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "narrow", "b":
		return Narrow, nil
	case "wide", "h":
		return Wide, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Buffer holds one period of a square wave as signed 16-bit samples.
type Buffer []int16

// Period is the number of samples in the buffer.
func (b Buffer) Period() int { return len(b) }

// Amplitude is the peak absolute sample value.
func (b Buffer) Amplitude() int {
	if len(b) == 0 {
		return 0
	}
	return int(b[0])
}

// Generate builds one period of a 50% duty cycle square wave at freq Hz.
// Sample t is positive while t < period/2 and negative after. A period may
// not exceed one second of samples.
func Generate(freq float64, rate beep.SampleRate, f Format) (Buffer, error) {
	if math.IsNaN(freq) || freq <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, freq)
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, rate)
	}
	p := float64(rate) / freq
	if math.IsInf(p, 0) || p > float64(rate) {
		return nil, fmt.Errorf("%w: %v Hz at %d Hz", ErrFrequencyTooLow, freq, rate)
	}
	period := int(math.Round(p))
	if period < 1 {
		return nil, fmt.Errorf("%w: %v Hz at %d Hz", ErrFrequencyTooHigh, freq, rate)
	}

	switch f {
	case Narrow:
		return upscale(square8(period)), nil
	case Wide:
		return square16(period), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
}

func square8(period int) []int8 {
	out := make([]int8, period)
	for t := range out {
		if 2*t < period {
			out[t] = NarrowAmplitude
		} else {
			out[t] = -NarrowAmplitude
		}
	}
	return out
}

func square16(period int) Buffer {
	out := make(Buffer, period)
	for t := range out {
		if 2*t < period {
			out[t] = WideAmplitude
		} else {
			out[t] = -WideAmplitude
		}
	}
	return out
}

// upscale is a linear 8 to 16 bit conversion, 127 -> 32766.
func upscale(in []int8) Buffer {
	out := make(Buffer, len(in))
	for i, s := range in {
		out[i] = int16(s) * UpscaleFactor
	}
	return out
}
