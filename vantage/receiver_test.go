package vantage

import (
	"testing"
	"time"
)

func TestReceiverApplyBatchUpdatesAllViews(t *testing.T) {
	recv := newTestReceiver(t)
	ctrl := recv.GetController()

	_ = ctrl.AddFacet(Facet[string]{Kind: FacetCount, Key: "k"})
	_ = ctrl.AddFacet(Facet[string]{Kind: FacetGauge, Key: "k"})
	_ = ctrl.AddFacet(Facet[string]{Kind: FacetTimingPercentile, Key: "k"})
	// Each turn applies at most one control message.
	for i := 0; i < 3; i++ {
		recv.turn(time.Now())
	}

	b := newBatchBuffer[string](2)
	b.samples = append(b.samples,
		CountSample("k", 2),
		ValueSample("k", 9),
	)
	recv.applyBatch(b)

	if got := recv.counters.value("k"); got != 2 {
		t.Errorf("counter = %d, want 2", got)
	}
	if got := recv.gauges.value("k"); got != 9 {
		t.Errorf("gauge = %d, want 9", got)
	}
}

func TestReceiverAddFacetIdempotent(t *testing.T) {
	recv := newTestReceiver(t)
	f := Facet[string]{Kind: FacetCount, Key: "k"}

	recv.addFacet(f)
	recv.addFacet(f)

	if len(recv.facets) != 1 {
		t.Errorf("facets len = %d, want 1", len(recv.facets))
	}
}

func TestReceiverSharesHistogramAcrossFacetKinds(t *testing.T) {
	recv := newTestReceiver(t)
	recv.addFacet(Facet[string]{Kind: FacetTimingPercentile, Key: "k"})
	recv.addFacet(Facet[string]{Kind: FacetValuePercentile, Key: "k"})

	recv.histograms.update(ValueSample("k", 77))

	hist, ok := recv.histograms.snapshot("k")
	if !ok {
		t.Fatal("expected a single shared ring for key k")
	}
	if hist.TotalCount() != 1 {
		t.Errorf("TotalCount = %d, want 1 (one ring shared by both facet kinds)", hist.TotalCount())
	}
}

func TestReceiverBuildSnapshotOnlyEmitsRegisteredFacets(t *testing.T) {
	recv := newTestReceiver(t)
	recv.addFacet(Facet[string]{Kind: FacetCount, Key: "a"})

	recv.counters.update(CountSample("a", 1))
	recv.counters.register("b") // registered on the view, but no facet
	recv.counters.update(CountSample("b", 5))

	snap := recv.buildSnapshot()

	if _, ok := snap.Count("a"); !ok {
		t.Error("a should be emitted: it has a registered facet")
	}
	if _, ok := snap.Count("b"); ok {
		t.Error("b should not be emitted: no facet registered for it")
	}
}

func TestReceiverRemoveFacetUnknownIsNoop(t *testing.T) {
	recv := newTestReceiver(t)
	recv.removeFacet(Facet[string]{Kind: FacetCount, Key: "never-added"})

	if len(recv.facets) != 0 {
		t.Errorf("facets len = %d, want 0", len(recv.facets))
	}
}
