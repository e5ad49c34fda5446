// Package audio defines the sink the game plays panel cues through.
package audio

import (
	"sync"
	"time"
)

// Player plays one cue at a time. Starting a cue replaces the current one.
type Player interface {
	PlayTone(freq float64, maxDuration time.Duration) error
	Stop()
}

// Nop discards every request.
type Nop struct{}

func (Nop) PlayTone(float64, time.Duration) error { return nil }
func (Nop) Stop()                                 {}

// Request is one PlayTone call seen by a Recorder.
type Request struct {
	Freq        float64
	MaxDuration time.Duration
}

// Recorder keeps the requests it receives.
type Recorder struct {
	mu       sync.Mutex
	requests []Request
	stops    int
}

func (r *Recorder) PlayTone(freq float64, maxDuration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, Request{Freq: freq, MaxDuration: maxDuration})
	return nil
}

func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
}

func (r *Recorder) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.requests...)
}

func (r *Recorder) Stops() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stops
}
