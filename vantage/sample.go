package vantage

import "time"

// SampleKind discriminates the shape of a Sample.
type SampleKind uint8

const (
	// SampleTiming is one timed event: a start/end instant pair plus
	// an auxiliary count (e.g. bytes processed during the event).
	SampleTiming SampleKind = iota
	// SampleCount is a signed additive delta applied to a counter.
	SampleCount
	// SampleValue is a last-write-wins gauge write.
	SampleValue
)

// Sample is a single measurement submitted by a producer, tagged by
// key. Exactly one of the fields below is meaningful, selected by Kind.
type Sample[K comparable] struct {
	Kind  SampleKind
	Key   K
	Start time.Time // SampleTiming
	End   time.Time // SampleTiming
	Count uint64    // SampleTiming: auxiliary integer (e.g. bytes)
	Delta int64     // SampleCount: signed additive delta
	Value uint64    // SampleValue: raw gauge value
}

// Timing builds a timed-event sample. The histogram view records
// (End-Start) as nanoseconds, saturating-clamped to the histogram's bounds.
func Timing[K comparable](key K, start, end time.Time, count uint64) Sample[K] {
	return Sample[K]{Kind: SampleTiming, Key: key, Start: start, End: end, Count: count}
}

// CountSample builds a signed counter delta sample.
func CountSample[K comparable](key K, delta int64) Sample[K] {
	return Sample[K]{Kind: SampleCount, Key: key, Delta: delta}
}

// ValueSample builds a last-write-wins gauge sample.
func ValueSample[K comparable](key K, value uint64) Sample[K] {
	return Sample[K]{Kind: SampleValue, Key: key, Value: value}
}

// durationNanos returns (End-Start) in nanoseconds, saturating at zero
// for a non-positive duration rather than wrapping.
func (s Sample[K]) durationNanos() uint64 {
	d := s.End.Sub(s.Start)
	if d <= 0 {
		return 0
	}
	return uint64(d.Nanoseconds())
}
