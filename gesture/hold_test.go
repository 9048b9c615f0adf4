package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestTapNeverFires(t *testing.T) {
	h := NewHold(500 * time.Millisecond)
	seq := h.Press("card-1", t0)
	h.Release()

	assert.False(t, h.Check("card-1", seq, t0.Add(time.Second)))
	assert.False(t, h.Active())
}

func TestPointerHoldFiresOnce(t *testing.T) {
	h := NewHold(500 * time.Millisecond)
	seq := h.Press("card-1", t0)

	assert.False(t, h.Check("card-1", seq, t0.Add(200*time.Millisecond)))
	assert.True(t, h.Check("card-1", seq, t0.Add(500*time.Millisecond)))
	assert.False(t, h.Check("card-1", seq, t0.Add(900*time.Millisecond)), "fires once per hold")
}

func TestStaleTimerIgnored(t *testing.T) {
	h := NewHold(500 * time.Millisecond)
	old := h.Press("card-1", t0)
	h.Release()
	h.Press("card-1", t0.Add(300*time.Millisecond))

	assert.False(t, h.Check("card-1", old, t0.Add(600*time.Millisecond)))
}

func TestOtherTargetIgnored(t *testing.T) {
	h := NewHold(500 * time.Millisecond)
	seq := h.Press("card-1", t0)
	assert.False(t, h.Check("card-2", seq, t0.Add(time.Second)))
}

func TestKeyRepeatHold(t *testing.T) {
	h := NewHold(500 * time.Millisecond)

	assert.False(t, h.Repeat("e", t0), "first press only starts the hold")
	assert.False(t, h.Repeat("e", t0.Add(400*time.Millisecond)))
	assert.True(t, h.Repeat("e", t0.Add(530*time.Millisecond)))
	assert.False(t, h.Repeat("e", t0.Add(560*time.Millisecond)))
}

func TestKeyTapsWithGapsDoNotAccumulate(t *testing.T) {
	h := NewHold(500 * time.Millisecond)
	h.MaxGap = 100 * time.Millisecond

	assert.False(t, h.Repeat("e", t0))
	assert.False(t, h.Repeat("e", t0.Add(300*time.Millisecond)))
	assert.False(t, h.Repeat("e", t0.Add(600*time.Millisecond)))
	assert.False(t, h.Repeat("e", t0.Add(900*time.Millisecond)))
}

func TestKeyRepeatSwitchingTargetRestarts(t *testing.T) {
	h := NewHold(500 * time.Millisecond)
	h.Repeat("e", t0)
	assert.False(t, h.Repeat("x", t0.Add(600*time.Millisecond)))
	assert.Equal(t, "x", h.Target())
}

func TestTwoTapsWithinInitialDelayDoNotFire(t *testing.T) {
	h := NewHold(500 * time.Millisecond)

	assert.False(t, h.Repeat("e", t0))
	assert.False(t, h.Repeat("e", t0.Add(600*time.Millisecond)), "second tap is not a held key")
	assert.False(t, h.Repeat("e", t0.Add(1200*time.Millisecond)), "slow third tap restarts the hold")
}

func TestSlowRepeatsAfterInitialDelayRestart(t *testing.T) {
	h := NewHold(500 * time.Millisecond)

	h.Repeat("e", t0)
	h.Repeat("e", t0.Add(450*time.Millisecond))
	assert.False(t, h.Repeat("e", t0.Add(700*time.Millisecond)), "gap past the repeat rate")
	assert.False(t, h.Repeat("e", t0.Add(740*time.Millisecond)))
}

func TestSeqTracksPresses(t *testing.T) {
	h := NewHold(500 * time.Millisecond)
	first := h.Press("card-1", t0)
	assert.Equal(t, first, h.Seq())
	second := h.Press("card-1", t0.Add(time.Second))
	assert.Equal(t, second, h.Seq())
	assert.NotEqual(t, first, second)
}
