package vantage

import (
	"testing"
	"time"
)

func TestTimingDurationNanos(t *testing.T) {
	start := time.Now()
	end := start.Add(250 * time.Millisecond)

	s := Timing("op", start, end, 1)
	if got, want := s.durationNanos(), uint64(250*time.Millisecond); got != want {
		t.Errorf("durationNanos = %d, want %d", got, want)
	}
}

func TestTimingDurationNanosSaturatesNonPositive(t *testing.T) {
	now := time.Now()

	zero := Timing("op", now, now, 0)
	if got := zero.durationNanos(); got != 0 {
		t.Errorf("zero-duration sample = %d, want 0", got)
	}

	backwards := Timing("op", now, now.Add(-time.Second), 0)
	if got := backwards.durationNanos(); got != 0 {
		t.Errorf("backwards-clock sample = %d, want 0 (saturated, not wrapped)", got)
	}
}

func TestCountSampleAndValueSampleFields(t *testing.T) {
	c := CountSample("requests", -3)
	if c.Kind != SampleCount || c.Delta != -3 {
		t.Errorf("CountSample = %+v", c)
	}

	v := ValueSample("connections", 17)
	if v.Kind != SampleValue || v.Value != 17 {
		t.Errorf("ValueSample = %+v", v)
	}
}
