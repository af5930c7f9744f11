package vantage

import "testing"

func TestSnapshotCountRoundTrip(t *testing.T) {
	s := newSnapshot[string](func(k string) string { return k })
	s.setCount("requests", 42)

	v, ok := s.Count("requests")
	if !ok || v != 42 {
		t.Errorf("Count = (%d, %v), want (42, true)", v, ok)
	}

	if _, ok := s.Count("missing"); ok {
		t.Error("Count should report false for a key never set")
	}
}

func TestSnapshotValueRoundTrip(t *testing.T) {
	s := newSnapshot[string](func(k string) string { return k })
	s.setValue("connections", 7)

	v, ok := s.Value("connections")
	if !ok || v != 7 {
		t.Errorf("Value = (%d, %v), want (7, true)", v, ok)
	}
}

func TestSnapshotPercentileLabelsDoNotCollide(t *testing.T) {
	s := newSnapshot[string](func(k string) string { return k })
	p50 := Percentile{Label: "p50", Q: 50}

	s.setTimingPercentile("latency", p50, 100)
	s.setValuePercentile("latency", p50, 200)

	timing, ok := s.TimingPercentile("latency", p50)
	if !ok || timing != 100 {
		t.Errorf("TimingPercentile = (%d, %v), want (100, true)", timing, ok)
	}

	value, ok := s.ValuePercentile("latency", p50)
	if !ok || value != 200 {
		t.Errorf("ValuePercentile = (%d, %v), want (200, true)", value, ok)
	}
}

func TestSnapshotAsMapsIsACopy(t *testing.T) {
	s := newSnapshot[string](func(k string) string { return k })
	s.setCount("requests", 1)

	signed, _ := s.AsMaps()
	signed["requests_count"] = 999

	v, _ := s.Count("requests")
	if v != 1 {
		t.Errorf("AsMaps mutation leaked into snapshot: Count = %d, want 1", v)
	}
}

func TestSnapshotUsesCustomLabel(t *testing.T) {
	type key struct{ name string }
	label := func(k key) string { return "metric_" + k.name }

	s := newSnapshot[key](label)
	s.setCount(key{name: "hits"}, 3)

	v, ok := s.Count(key{name: "hits"})
	if !ok || v != 3 {
		t.Errorf("Count = (%d, %v), want (3, true)", v, ok)
	}
}
