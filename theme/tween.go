package theme

import (
	"math"
	"time"
)

// Card heights in layout units.
const (
	CollapsedHeight = 70
	ExpandedHeight  = 155

	// unitsPerRow maps layout units to terminal rows.
	unitsPerRow = 25.0
)

// Default transition lengths.
const (
	ThemeTransition = 500 * time.Millisecond
	CardTransition  = 300 * time.Millisecond
)

// Tween eases a value from From to To over Duration starting at Start.
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
	Start    time.Time
}

// NewTween starts a tween at now.
func NewTween(from, to float64, d time.Duration, now time.Time) Tween {
	return Tween{From: from, To: to, Duration: d, Start: now}
}

// Settled returns a tween already resting at v.
func Settled(v float64) Tween {
	return Tween{From: v, To: v}
}

// Progress returns the linear completion fraction at now.
func (tw Tween) Progress(now time.Time) float64 {
	if tw.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(tw.Start)
	if elapsed <= 0 {
		return 0
	}
	return clamp01(float64(elapsed) / float64(tw.Duration))
}

// Value returns the eased value at now.
func (tw Tween) Value(now time.Time) float64 {
	p := easeInOut(tw.Progress(now))
	return tw.From + (tw.To-tw.From)*p
}

// Done reports whether the tween has reached To.
func (tw Tween) Done(now time.Time) bool {
	return tw.From == tw.To || tw.Progress(now) >= 1
}

// Retarget starts a new tween toward to from wherever tw is at now.
func (tw Tween) Retarget(to float64, d time.Duration, now time.Time) Tween {
	return NewTween(tw.Value(now), to, d, now)
}

// Rows converts a height in layout units to terminal rows, at least 1.
func Rows(units float64) int {
	rows := int(math.Round(units / unitsPerRow))
	if rows < 1 {
		return 1
	}
	return rows
}

func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	f := -2*p + 2
	return 1 - f*f*f/2
}
