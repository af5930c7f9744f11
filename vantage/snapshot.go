package vantage

import "fmt"

// Snapshot is an immutable, point-in-time flat view of aggregated
// metrics. It is built once by the Receiver and never mutated after
// construction; submitting new samples after a Snapshot is served
// never alters fields the caller already read.
type Snapshot[K comparable] struct {
	label        func(K) string
	signedData   map[string]int64
	unsignedData map[string]uint64
}

func newSnapshot[K comparable](label func(K) string) *Snapshot[K] {
	return &Snapshot[K]{
		label:        label,
		signedData:   make(map[string]int64),
		unsignedData: make(map[string]uint64),
	}
}

func countLabel(key string) string { return fmt.Sprintf("%s_count", key) }
func valueLabel(key string) string { return fmt.Sprintf("%s_value", key) }
func timingPercentileLabel(key, p string) string { return fmt.Sprintf("%s_ns_%s", key, p) }
func valuePercentileLabel(key, p string) string { return fmt.Sprintf("%s_value_%s", key, p) }

func (s *Snapshot[K]) setCount(key K, value int64) {
	s.signedData[countLabel(s.label(key))] = value
}

func (s *Snapshot[K]) setValue(key K, value uint64) {
	s.unsignedData[valueLabel(s.label(key))] = value
}

func (s *Snapshot[K]) setTimingPercentile(key K, p Percentile, value uint64) {
	s.unsignedData[timingPercentileLabel(s.label(key), p.Label)] = value
}

func (s *Snapshot[K]) setValuePercentile(key K, p Percentile, value uint64) {
	s.unsignedData[valuePercentileLabel(s.label(key), p.Label)] = value
}

// Count returns the counter value recorded for key in this snapshot.
// The second return value is false if no Count facet for key was
// registered at the time the snapshot was served.
func (s *Snapshot[K]) Count(key K) (int64, bool) {
	v, ok := s.signedData[countLabel(s.label(key))]
	return v, ok
}

// Value returns the gauge value recorded for key in this snapshot.
// The second return value is false if no Gauge facet for key was
// registered at the time the snapshot was served.
func (s *Snapshot[K]) Value(key K) (uint64, bool) {
	v, ok := s.unsignedData[valueLabel(s.label(key))]
	return v, ok
}

// TimingPercentile returns the timing percentile value (nanoseconds)
// for key at p. The second return value is false if no
// TimingPercentile facet for key was registered, or p is not one of
// the percentiles the Receiver was configured with.
func (s *Snapshot[K]) TimingPercentile(key K, p Percentile) (uint64, bool) {
	v, ok := s.unsignedData[timingPercentileLabel(s.label(key), p.Label)]
	return v, ok
}

// ValuePercentile returns the value percentile for key at p. The
// second return value is false if no ValuePercentile facet for key
// was registered, or p is not one of the percentiles the Receiver was
// configured with.
func (s *Snapshot[K]) ValuePercentile(key K, p Percentile) (uint64, bool) {
	v, ok := s.unsignedData[valuePercentileLabel(s.label(key), p.Label)]
	return v, ok
}

// AsMaps returns copies of the snapshot's signed and unsigned label
// maps, for callers that want to export or print the full flat view
// without knowing every key up front.
func (s *Snapshot[K]) AsMaps() (signed map[string]int64, unsigned map[string]uint64) {
	signed = make(map[string]int64, len(s.signedData))
	for k, v := range s.signedData {
		signed[k] = v
	}
	unsigned = make(map[string]uint64, len(s.unsignedData))
	for k, v := range s.unsignedData {
		unsigned[k] = v
	}
	return signed, unsigned
}
