package vantage

import (
	"time"

	vantageerrors "github.com/greynewell/vantage/errors"
)

// Default configuration values (spec §6, Open Question OQ2).
const (
	DefaultCapacity          = 1024
	DefaultBatchSize         = 512
	DefaultHistogramWindow   = 10 * time.Second
	DefaultHistogramInterval = 1 * time.Second
	defaultHistogramMaxValue = int64(time.Hour.Nanoseconds())
)

// Configuration builds a Receiver. Construct one with NewConfiguration,
// adjust it with the With* methods, then call Build.
type Configuration[K comparable] struct {
	label func(K) string

	capacity  int
	batchSize int

	histogramWindow   time.Duration
	histogramInterval time.Duration
	histogramMaxValue int64

	percentiles []Percentile
}

// NewConfiguration starts a Configuration with the reference defaults:
// capacity 1024, batch size 512, a 10-second histogram window rotated
// every second, and the default percentile set (spec OQ2). label
// converts a key into the string used in Snapshot's flat label space
// — Go cannot express "comparable with a canonical string form" as a
// single constraint with a useful zero value, so callers supply it
// explicitly rather than requiring K to implement fmt.Stringer.
func NewConfiguration[K comparable](label func(K) string) *Configuration[K] {
	return &Configuration[K]{
		label:             label,
		capacity:          DefaultCapacity,
		batchSize:         DefaultBatchSize,
		histogramWindow:   DefaultHistogramWindow,
		histogramInterval: DefaultHistogramInterval,
		histogramMaxValue: defaultHistogramMaxValue,
		percentiles:       DefaultPercentiles(),
	}
}

// WithCapacity sets the data and control channel depth, and the
// number of pre-allocated buffers in the batch pool.
func (c *Configuration[K]) WithCapacity(capacity int) *Configuration[K] {
	c.capacity = capacity
	return c
}

// WithBatchSize sets how many samples a Sink accumulates locally
// before flushing to the data channel.
func (c *Configuration[K]) WithBatchSize(batchSize int) *Configuration[K] {
	c.batchSize = batchSize
	return c
}

// WithHistogramWindow sets the total span of time a windowed
// histogram retains. Must be >= the configured interval.
func (c *Configuration[K]) WithHistogramWindow(window time.Duration) *Configuration[K] {
	c.histogramWindow = window
	return c
}

// WithHistogramInterval sets how often a windowed histogram rotates
// in a new sub-histogram. Values shorter than the aggregator's fixed
// 250ms upkeep cadence still work, since each upkeep pass rotates once
// per whole interval elapsed, but under idle traffic those passes run
// only about four times a second, so rotation can lag by up to 250ms.
// Keep the interval at 250ms or above for predictable window
// staleness (spec OQ3).
func (c *Configuration[K]) WithHistogramInterval(interval time.Duration) *Configuration[K] {
	c.histogramInterval = interval
	return c
}

// WithHistogramMaxValue sets the largest value a histogram records
// before saturating-clamping. Default is one hour in nanoseconds,
// sized for timing samples; callers recording raw gauge values in a
// different range should set this explicitly.
func (c *Configuration[K]) WithHistogramMaxValue(max int64) *Configuration[K] {
	c.histogramMaxValue = max
	return c
}

// WithPercentiles overrides the percentile set computed for
// TimingPercentile and ValuePercentile facets.
func (c *Configuration[K]) WithPercentiles(percentiles []Percentile) *Configuration[K] {
	c.percentiles = percentiles
	return c
}

// Build validates the configuration and constructs a Receiver. The
// returned Receiver has no facets registered and is not yet running —
// call Run to start its aggregator loop.
func (c *Configuration[K]) Build() (*Receiver[K], error) {
	if c.capacity <= 0 {
		return nil, vantageerrors.New(vantageerrors.CodeInvalidConfig, "capacity must be positive")
	}
	if c.batchSize <= 0 {
		return nil, vantageerrors.New(vantageerrors.CodeInvalidConfig, "batch size must be positive")
	}
	if c.histogramWindow <= 0 {
		return nil, vantageerrors.New(vantageerrors.CodeInvalidConfig, "histogram window must be positive")
	}
	if c.histogramInterval <= 0 {
		return nil, vantageerrors.New(vantageerrors.CodeInvalidConfig, "histogram interval must be positive")
	}
	if c.histogramInterval > c.histogramWindow {
		return nil, vantageerrors.New(vantageerrors.CodeInvalidConfig, "histogram interval cannot exceed window")
	}
	if c.label == nil {
		return nil, vantageerrors.New(vantageerrors.CodeInvalidConfig, "label function is required")
	}
	return newReceiver[K](c), nil
}
