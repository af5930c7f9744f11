// Package loadgen drives a configurable number of producer goroutines
// against a vantage.Sink, each rate-limited independently, for the
// demo binary and for exercising the engine under concurrent load in
// tests. It supersedes a hand-rolled worker-pool/semaphore pattern
// with golang.org/x/sync/errgroup for fan-out and cancellation, and
// golang.org/x/time/rate for per-producer pacing.
package loadgen

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/greynewell/vantage/vantage"
)

// Config controls a Run invocation.
type Config struct {
	// Producers is the number of concurrent goroutines submitting
	// samples. Each gets its own Sink via sink.Clone().
	Producers int
	// RatePerSecond caps each producer's submission rate. Zero means
	// unlimited (bound only by CPU and the Sink's batch flush cost).
	RatePerSecond float64
	// Key is the metric key every producer submits under.
	Key string
}

// Run spawns Config.Producers goroutines, each cloning sink and
// emitting a Timing sample (spanning the interval since its previous
// tick, to mirror a request-latency generator) plus a monotonically
// increasing Value sample, until ctx is cancelled. It returns the
// first error encountered, or nil if ctx was simply cancelled.
func Run(ctx context.Context, sink *vantage.Sink[string], cfg Config) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < cfg.Producers; i++ {
		producerSink := sink.Clone()
		g.Go(func() error {
			return produce(ctx, producerSink, cfg)
		})
	}

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}

func produce(ctx context.Context, sink *vantage.Sink[string], cfg Config) error {
	defer sink.Flush()

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	var gauge uint64
	prev := time.Now()

	for {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				if err == context.Canceled {
					return nil
				}
				return err
			}
		} else {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
		}

		now := time.Now()
		gauge++

		if err := sink.Send(vantage.Timing(cfg.Key, prev, now, 1)); err != nil {
			return err
		}
		if err := sink.Send(vantage.ValueSample(cfg.Key, gauge)); err != nil {
			return err
		}

		prev = now
	}
}
