package vantage

import (
	"context"
	"time"
)

// upkeepInterval is the fixed cadence at which the aggregator rotates
// histogram rings forward even with no traffic arriving, so a window
// never holds data older than its configured width (invariant 3).
// Callers configuring a histogram interval shorter than this value
// are responsible for choosing one not so short that 250ms upkeep
// granularity under-rotates it (documented in Configuration.WithHistogramInterval).
const upkeepInterval = 250 * time.Millisecond

// Receiver is the single aggregator goroutine's handle: it owns every
// view (counters, gauges, histograms) exclusively, so none of them
// need internal locking (spec §5). Samples and control requests reach
// it only through Sink and Controller, never by direct field access.
type Receiver[K comparable] struct {
	data    dataChannel[K]
	control controlChannel[K]
	pool    *bufferPool[K]

	label       func(K) string
	percentiles []Percentile

	counters   *counterView[K]
	gauges     *gaugeView[K]
	histograms *histogramView[K]

	facets map[Facet[K]]struct{}
}

func newReceiver[K comparable](cfg *Configuration[K]) *Receiver[K] {
	return &Receiver[K]{
		data:        make(dataChannel[K], cfg.capacity),
		control:     make(controlChannel[K], cfg.capacity),
		pool:        newBufferPool[K](cfg.capacity, cfg.batchSize),
		label:       cfg.label,
		percentiles: cfg.percentiles,
		counters:    newCounterView[K](),
		gauges:      newGaugeView[K](),
		histograms:  newHistogramView[K](cfg.histogramWindow, cfg.histogramInterval, cfg.histogramMaxValue),
		facets:      make(map[Facet[K]]struct{}),
	}
}

// GetSink returns a new Sink bound to this Receiver's data channel.
func (r *Receiver[K]) GetSink() *Sink[K] {
	return newSink[K](r.data, r.control, r.pool)
}

// GetController returns a new Controller bound to this Receiver's
// control channel. Controllers are cheap; callers may create as many
// as convenient.
func (r *Receiver[K]) GetController() *Controller[K] {
	return newController[K](r.control)
}

// Run drives the aggregator loop until ctx is cancelled. It is the
// only goroutine that ever touches the view state, so it must not be
// called concurrently with itself.
//
// On each pass it performs histogram upkeep first, then services at
// most one batch or one control message — this mirrors a
// level-triggered poller visiting a DATA token and a CONTROL token
// once per wakeup rather than draining either exhaustively, so a
// burst on one channel cannot starve the other. Upkeep always runs
// ahead of whatever the wakeup was for, so a snapshot served in the
// same pass that woke the aggregator never observes a stale,
// not-yet-rotated window (spec §5: "upkeep precedes poll handling
// within a turn").
func (r *Receiver[K]) Run(ctx context.Context) error {
	ticker := time.NewTicker(upkeepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.drainControlOnShutdown()
			return ctx.Err()
		case now := <-ticker.C:
			r.histograms.upkeep(now)
		case b := <-r.data:
			r.histograms.upkeep(time.Now())
			r.applyBatch(b)
			r.pool.recycle(b)
		case msg := <-r.control:
			r.histograms.upkeep(time.Now())
			r.applyControl(msg)
		}
	}
}

// turn processes at most one pending batch and then at most one
// pending control message, without blocking.
// It exists alongside Run so tests can step the aggregator
// deterministically instead of racing a background goroutine. Upkeep
// runs first, ahead of draining either channel, matching Run's
// ordering guarantee.
func (r *Receiver[K]) turn(now time.Time) {
	r.histograms.upkeep(now)

	select {
	case b := <-r.data:
		r.applyBatch(b)
		r.pool.recycle(b)
	default:
	}
	select {
	case msg := <-r.control:
		r.applyControl(msg)
	default:
	}
}

func (r *Receiver[K]) applyBatch(b *batch[K]) {
	for _, s := range b.samples {
		r.counters.update(s)
		r.gauges.update(s)
		r.histograms.update(s)
	}
}

func (r *Receiver[K]) applyControl(msg controlMessage[K]) {
	switch msg.kind {
	case controlAddFacet:
		r.addFacet(msg.facet)
	case controlRemoveFacet:
		r.removeFacet(msg.facet)
	case controlSnapshot:
		msg.reply <- r.buildSnapshot()
		close(msg.reply)
	}
}

func (r *Receiver[K]) addFacet(f Facet[K]) {
	if _, ok := r.facets[f]; ok {
		return
	}
	r.facets[f] = struct{}{}
	switch f.Kind {
	case FacetCount:
		r.counters.register(f.Key)
	case FacetGauge:
		r.gauges.register(f.Key)
	case FacetTimingPercentile, FacetValuePercentile:
		r.histograms.register(f.Key, time.Now())
	}
}

func (r *Receiver[K]) removeFacet(f Facet[K]) {
	if _, ok := r.facets[f]; !ok {
		return
	}
	delete(r.facets, f)
	switch f.Kind {
	case FacetCount:
		r.counters.deregister(f.Key)
	case FacetGauge:
		r.gauges.deregister(f.Key)
	case FacetTimingPercentile, FacetValuePercentile:
		r.histograms.deregister(f.Key)
	}
}

// buildSnapshot composes a flat Snapshot from every currently-
// registered facet. Only facets present in r.facets at this instant
// are emitted, even though the underlying views keep accumulating
// state for deregistered keys (spec's resolution of the facet-gating
// Open Question: view state updates unconditionally once registered,
// snapshot emission is gated by facet membership at build time).
func (r *Receiver[K]) buildSnapshot() *Snapshot[K] {
	snap := newSnapshot[K](r.label)
	for f := range r.facets {
		switch f.Kind {
		case FacetCount:
			snap.setCount(f.Key, r.counters.value(f.Key))
		case FacetGauge:
			snap.setValue(f.Key, r.gauges.value(f.Key))
		case FacetTimingPercentile:
			r.emitPercentiles(snap, f.Key, true)
		case FacetValuePercentile:
			r.emitPercentiles(snap, f.Key, false)
		}
	}
	return snap
}

func (r *Receiver[K]) emitPercentiles(snap *Snapshot[K], key K, timing bool) {
	hist, ok := r.histograms.snapshot(key)
	if !ok || hist.TotalCount() == 0 {
		return
	}
	for _, p := range r.percentiles {
		v := uint64(hist.ValueAtQuantile(p.Q))
		if timing {
			snap.setTimingPercentile(key, p, v)
		} else {
			snap.setValuePercentile(key, p, v)
		}
	}
}

// drainControlOnShutdown answers every control message still
// buffered in the channel at shutdown so no GetSnapshot caller blocks
// forever: add/remove requests are simply discarded (there is no one
// left to observe their effect), and pending snapshot replies are
// closed unanswered so Controller.GetSnapshot returns errReplyDropped.
func (r *Receiver[K]) drainControlOnShutdown() {
	for {
		select {
		case msg := <-r.control:
			if msg.kind == controlSnapshot {
				close(msg.reply)
			}
		default:
			return
		}
	}
}
