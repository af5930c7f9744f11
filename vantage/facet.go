package vantage

// FacetKind identifies which derived view a Facet registers.
type FacetKind uint8

const (
	// FacetCount maintains a running total for the key.
	FacetCount FacetKind = iota
	// FacetGauge maintains a last-write-wins value for the key.
	FacetGauge
	// FacetTimingPercentile maintains a windowed histogram of timing
	// samples (nanoseconds) for the key.
	FacetTimingPercentile
	// FacetValuePercentile maintains a windowed histogram of raw
	// gauge values for the key.
	FacetValuePercentile
)

// Facet is a registration telling the Receiver which derived view to
// maintain for a key. Facets are comparable so they can live in a set;
// adding the same facet twice is idempotent.
type Facet[K comparable] struct {
	Kind FacetKind
	Key  K
}

// Percentile is a labeled quantile in [0, 100].
type Percentile struct {
	Label string
	Q     float64
}

// DefaultPercentiles returns the reference set: min, p50, p90, p99,
// p999, and max.
func DefaultPercentiles() []Percentile {
	return []Percentile{
		{Label: "min", Q: 0.0},
		{Label: "p50", Q: 50.0},
		{Label: "p90", Q: 90.0},
		{Label: "p99", Q: 99.0},
		{Label: "p999", Q: 99.9},
		{Label: "max", Q: 100.0},
	}
}
