package vantage

import (
	"testing"
	"time"
)

func TestHistogramViewRecordsAndSnapshots(t *testing.T) {
	now := time.Now()
	h := newHistogramView[string](10*time.Second, time.Second, 100_000)
	h.register("latency_ns", now)

	for _, v := range []uint64{10, 20, 30, 40, 50} {
		h.update(ValueSample("latency_ns", v))
	}

	hist, ok := h.snapshot("latency_ns")
	if !ok {
		t.Fatal("snapshot: key should be registered")
	}
	if got := hist.ValueAtQuantile(100); got < 50 {
		t.Errorf("max value = %d, want >= 50", got)
	}
}

func TestHistogramViewUnregisteredSnapshot(t *testing.T) {
	h := newHistogramView[string](10*time.Second, time.Second, 100_000)
	if _, ok := h.snapshot("never-registered"); ok {
		t.Error("snapshot should report false for an unregistered key")
	}
}

func TestHistogramViewUpdateIgnoredWhenUnregistered(t *testing.T) {
	h := newHistogramView[string](10*time.Second, time.Second, 100_000)
	h.update(ValueSample("latency_ns", 10))

	if _, ok := h.snapshot("latency_ns"); ok {
		t.Error("update before register should not create an entry")
	}
}

func TestHistogramViewCountSampleIgnored(t *testing.T) {
	now := time.Now()
	h := newHistogramView[string](10*time.Second, time.Second, 100_000)
	h.register("requests", now)

	h.update(CountSample("requests", 5))

	hist, ok := h.snapshot("requests")
	if !ok {
		t.Fatal("expected entry to exist after register")
	}
	if hist.TotalCount() != 0 {
		t.Errorf("TotalCount = %d, want 0 (count samples must not record)", hist.TotalCount())
	}
}

func TestHistogramViewClampSaturates(t *testing.T) {
	now := time.Now()
	h := newHistogramView[string](10*time.Second, time.Second, 1000)
	h.register("bounded", now)

	h.update(ValueSample("bounded", 0))
	h.update(ValueSample("bounded", 1_000_000))

	hist, ok := h.snapshot("bounded")
	if !ok {
		t.Fatal("expected entry")
	}
	if got := hist.ValueAtQuantile(0); got != histogramMinValue {
		t.Errorf("min clamped value = %d, want %d", got, histogramMinValue)
	}
	if got := hist.ValueAtQuantile(100); got != 1000 {
		t.Errorf("max clamped value = %d, want 1000", got)
	}
}

func TestHistogramViewDeregisterPreservesRing(t *testing.T) {
	now := time.Now()
	h := newHistogramView[string](10*time.Second, time.Second, 100_000)
	h.register("latency_ns", now)
	h.update(ValueSample("latency_ns", 25))

	h.deregister("latency_ns")

	// Update while deregistered must not apply.
	h.update(ValueSample("latency_ns", 999))

	hist, ok := h.snapshot("latency_ns")
	if !ok {
		t.Fatal("ring should survive deregister")
	}
	if got := hist.TotalCount(); got != 1 {
		t.Errorf("TotalCount after deregistered update = %d, want 1", got)
	}
}

func TestHistogramViewUpkeepRotatesOnElapsedWindow(t *testing.T) {
	start := time.Now()
	h := newHistogramView[string](4*time.Second, time.Second, 100_000)
	h.register("latency_ns", start)
	h.update(ValueSample("latency_ns", 50))

	// Advance well past the full window; the ring should be entirely
	// rotated out, leaving no recorded samples.
	h.upkeep(start.Add(10 * time.Second))

	hist, ok := h.snapshot("latency_ns")
	if !ok {
		t.Fatal("expected entry to survive upkeep")
	}
	if got := hist.TotalCount(); got != 0 {
		t.Errorf("TotalCount after full-window upkeep = %d, want 0", got)
	}
}

func TestHistogramViewUpkeepNoopBeforeInterval(t *testing.T) {
	start := time.Now()
	h := newHistogramView[string](4*time.Second, time.Second, 100_000)
	h.register("latency_ns", start)
	h.update(ValueSample("latency_ns", 50))

	h.upkeep(start.Add(100 * time.Millisecond))

	hist, ok := h.snapshot("latency_ns")
	if !ok {
		t.Fatal("expected entry")
	}
	if got := hist.TotalCount(); got != 1 {
		t.Errorf("TotalCount = %d, want 1 (no rotation yet)", got)
	}
}
