// Package gesture turns raw press events into press-and-hold gestures.
package gesture

import "time"

// DefaultThreshold is how long a press must last to count as a hold.
const DefaultThreshold = 500 * time.Millisecond

// DefaultMaxGap is the longest pause between key repeats that still counts
// as the key being held down. Terminals wait a while before auto-repeat
// starts, so this must exceed the usual initial repeat delay.
const DefaultMaxGap = 650 * time.Millisecond

// DefaultRepeatGap is the longest pause between auto-repeat events once
// repeating has started.
const DefaultRepeatGap = 150 * time.Millisecond

// Hold detects a press held on the same target for at least Threshold.
// Targets are opaque strings chosen by the caller (a card id, a key name).
// A hold fires once; the target must be released before it can fire again.
type Hold struct {
	Threshold time.Duration
	MaxGap    time.Duration
	RepeatGap time.Duration

	target  string
	started time.Time
	last    time.Time
	active  bool
	fired   bool
	seq     int
	repeats int
}

// NewHold returns a detector with the given threshold and default gap.
func NewHold(threshold time.Duration) *Hold {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Hold{Threshold: threshold, MaxGap: DefaultMaxGap, RepeatGap: DefaultRepeatGap}
}

// Press starts tracking a new press on target and returns its sequence
// number. Callers pass the number back to Check so stale timers are ignored.
func (h *Hold) Press(target string, now time.Time) int {
	h.seq++
	h.target = target
	h.started = now
	h.last = now
	h.active = true
	h.fired = false
	h.repeats = 0
	return h.seq
}

// Repeat records a repeated key event for target, as sent by keyboard
// auto-repeat while a key is held. Only the first repeat may arrive after
// the initial delay (MaxGap); later ones must be at most RepeatGap apart. It
// reports true the first time such a run has spanned Threshold.
func (h *Hold) Repeat(target string, now time.Time) bool {
	limit := h.repeatGap()
	if h.repeats == 0 {
		limit = h.maxGap()
	}
	if !h.active || h.target != target || now.Sub(h.last) > limit {
		h.Press(target, now)
		return false
	}
	h.last = now
	h.repeats++
	if h.repeats < 2 {
		return false
	}
	return h.fire(now)
}

// Check reports true when the press identified by seq on target is still
// down and has lasted Threshold. Used from a timer for pointer presses.
func (h *Hold) Check(target string, seq int, now time.Time) bool {
	if !h.active || h.target != target || h.seq != seq {
		return false
	}
	return h.fire(now)
}

// Release ends the current press. A press released before Threshold is a
// tap and never fires.
func (h *Hold) Release() {
	h.active = false
	h.fired = false
	h.target = ""
}

// Active reports whether a press is being tracked.
func (h *Hold) Active() bool {
	return h.active
}

// Seq returns the sequence number of the current press.
func (h *Hold) Seq() int {
	return h.seq
}

// Target returns the target of the current press.
func (h *Hold) Target() string {
	return h.target
}

func (h *Hold) fire(now time.Time) bool {
	if h.fired {
		return false
	}
	if now.Sub(h.started) < h.Threshold {
		return false
	}
	h.fired = true
	return true
}

func (h *Hold) maxGap() time.Duration {
	if h.MaxGap <= 0 {
		return DefaultMaxGap
	}
	return h.MaxGap
}

func (h *Hold) repeatGap() time.Duration {
	if h.RepeatGap <= 0 {
		return DefaultRepeatGap
	}
	return h.RepeatGap
}
