package classifier

import "time"

// MinInterval is the default spacing between classifications: at most
// one per sixtieth of a second of wall-clock time.
const MinInterval = time.Second / 60

// Throttle is a debounce gate in front of the classification worker.
// Frames arriving sooner than the interval after the last admitted
// frame are dropped. Not safe for concurrent use; the single
// classification worker owns it.
type Throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = MinInterval
	}
	return &Throttle{
		interval: interval,
		now:      time.Now,
	}
}

// Allow reports whether a frame arriving now should be classified and,
// if so, advances the gate.
func (t *Throttle) Allow() bool {
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
