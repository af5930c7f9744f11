package vantage

// counterView maintains a signed running total per key.
//
// It is touched only from the Receiver's single aggregator goroutine,
// so it carries no internal synchronization (see spec §5: "view state
// is owned exclusively by the aggregator").
type counterView[K comparable] struct {
	registered map[K]struct{}
	totals     map[K]int64
}

func newCounterView[K comparable]() *counterView[K] {
	return &counterView[K]{
		registered: make(map[K]struct{}),
		totals:     make(map[K]int64),
	}
}

// register marks key as registered. A key's accumulated total is
// preserved across register/deregister/register cycles.
func (c *counterView[K]) register(key K) {
	c.registered[key] = struct{}{}
	if _, ok := c.totals[key]; !ok {
		c.totals[key] = 0
	}
}

// deregister stops further updates for key without erasing its
// current total.
func (c *counterView[K]) deregister(key K) {
	delete(c.registered, key)
}

// update applies a sample to the counter if its key is registered.
// A Timing sample counts as one event; a Count sample adds its
// signed delta; a Value sample is ignored.
func (c *counterView[K]) update(s Sample[K]) {
	if _, ok := c.registered[s.Key]; !ok {
		return
	}
	switch s.Kind {
	case SampleTiming:
		c.totals[s.Key]++
	case SampleCount:
		c.totals[s.Key] += s.Delta
	case SampleValue:
		// gauges never affect counters.
	}
}

// value returns the current total for key, or 0 if key has never
// been registered.
func (c *counterView[K]) value(key K) int64 {
	return c.totals[key]
}
