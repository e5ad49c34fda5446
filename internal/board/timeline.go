package board

import "time"

type step struct {
	do      func()
	hold    time.Duration
	started bool
}

// Timeline runs actions in order, holding each for a duration before the
// next one starts. It replaces the sleeps of a blocking game loop with
// frame-sized Advance calls.
type Timeline struct {
	steps   []*step
	elapsed time.Duration
	gen     int
}

// Then queues do and holds for hold after it runs. do may be nil.
func (tl *Timeline) Then(do func(), hold time.Duration) {
	tl.steps = append(tl.steps, &step{do: do, hold: hold})
}

func (tl *Timeline) Wait(d time.Duration) { tl.Then(nil, d) }

// Clear drops every queued step, including the one holding.
func (tl *Timeline) Clear() {
	tl.steps = nil
	tl.elapsed = 0
	tl.gen++
}

// Idle reports whether nothing is queued.
func (tl *Timeline) Idle() bool { return len(tl.steps) == 0 }

// Advance moves time forward by dt, running every action it reaches.
// Actions may queue more steps or Clear the timeline.
func (tl *Timeline) Advance(dt time.Duration) {
	for len(tl.steps) > 0 {
		head := tl.steps[0]
		if !head.started {
			head.started = true
			if head.do != nil {
				gen := tl.gen
				head.do()
				if gen != tl.gen {
					continue
				}
			}
		}
		left := head.hold - tl.elapsed
		if dt < left {
			tl.elapsed += dt
			return
		}
		dt -= left
		tl.elapsed = 0
		tl.steps = tl.steps[1:]
	}
}
