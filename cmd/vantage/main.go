// Command vantage runs a demo aggregator: a configurable number of
// producer goroutines feed samples into a Receiver, and once a
// second the current snapshot's throughput and latency percentiles
// are logged. It mirrors the benchmark harness any metrics engine in
// this lineage ships, wired onto this repo's ambient stack instead of
// a one-off logger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/greynewell/vantage/config"
	"github.com/greynewell/vantage/errors"
	"github.com/greynewell/vantage/internal/loadgen"
	"github.com/greynewell/vantage/lifecycle"
	"github.com/greynewell/vantage/logging"
	"github.com/greynewell/vantage/vantage"
)

const metricKey = "ok"

// settings starts from the flags; when -config is given, config.Load
// overrides it from the TOML file and then from VANTAGE_-prefixed
// environment variables.
type settings struct {
	Duration  int `toml:"duration"`
	Producers int `toml:"producers"`
	Capacity  int `toml:"capacity"`
	Batch     int `toml:"batch"`
}

func main() {
	durationFlag := flag.Int("duration", 60, "number of seconds to run the benchmark")
	producersFlag := flag.Int("producers", 1, "number of concurrent producers")
	capacityFlag := flag.Int("capacity", vantage.DefaultCapacity, "data/control channel capacity")
	batchFlag := flag.Int("batch", vantage.DefaultBatchSize, "samples per producer batch")
	configPath := flag.String("config", "", "optional TOML config file overriding the flags above")
	flag.Parse()

	s := settings{
		Duration:  *durationFlag,
		Producers: *producersFlag,
		Capacity:  *capacityFlag,
		Batch:     *batchFlag,
	}
	if *configPath != "" {
		if err := config.Load(*configPath, "VANTAGE", &s); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}

	log := logging.New("vantage", logging.LevelInfo)

	if err := lifecycle.Run(func(ctx context.Context) error {
		return runBenchmark(ctx, log, s)
	}); err != nil {
		log.Error(context.Background(), "run failed", "error", err)
		os.Exit(1)
	}
}

func runBenchmark(ctx context.Context, log *logging.Logger, s settings) error {
	recv, err := vantage.NewConfiguration[string](func(k string) string { return k }).
		WithCapacity(s.Capacity).
		WithBatchSize(s.Batch).
		Build()
	if err != nil {
		return fmt.Errorf("build receiver: %w", err)
	}

	ctrl := recv.GetController()
	for _, f := range []vantage.Facet[string]{
		{Kind: vantage.FacetCount, Key: metricKey},
		{Kind: vantage.FacetTimingPercentile, Key: metricKey},
		{Kind: vantage.FacetGauge, Key: metricKey},
	} {
		if err := ctrl.AddFacet(f); err != nil {
			return fmt.Errorf("add facet: %w", err)
		}
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	dg := lifecycle.DrainGroup(ctx)
	dg.Add(1)
	go func() {
		defer dg.Done()
		if err := recv.Run(runCtx); err != nil && err != context.Canceled {
			log.Error(ctx, "aggregator stopped with error", "error", err)
		}
	}()

	sink := recv.GetSink()
	dg.Add(1)
	go func() {
		defer dg.Done()
		if err := loadgen.Run(runCtx, sink, loadgen.Config{
			Producers: s.Producers,
			Key:       metricKey,
		}); err != nil {
			log.Error(ctx, "producer stopped with error", "error", err)
		}
	}()

	log.Info(ctx, "benchmark started",
		"producers", s.Producers, "capacity", s.Capacity, "batch", s.Batch, "duration_s", s.Duration)

	return pollAndLog(ctx, ctrl, log, time.Duration(s.Duration)*time.Second)
}

func pollAndLog(ctx context.Context, ctrl *vantage.Controller[string], log *logging.Logger, duration time.Duration) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	deadline := time.Now().Add(duration)
	var total int64

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			snap, err := ctrl.GetSnapshot()
			if err != nil {
				if errors.Code(err) == errors.CodeReplyDropped {
					return nil
				}
				log.Warn(ctx, "snapshot failed", "error", err)
				continue
			}

			turnTotal, _ := snap.Count(metricKey)
			rate := float64(turnTotal-total) / 1.0
			total = turnTotal

			p50, _ := snap.TimingPercentile(metricKey, vantage.Percentile{Label: "p50", Q: 50})
			p90, _ := snap.TimingPercentile(metricKey, vantage.Percentile{Label: "p90", Q: 90})
			p99, _ := snap.TimingPercentile(metricKey, vantage.Percentile{Label: "p99", Q: 99})

			log.Info(ctx, "snapshot",
				"rate_per_sec", rate, "p50_ns", p50, "p90_ns", p90, "p99_ns", p99, "total", total)

			if now.After(deadline) {
				log.Info(ctx, "benchmark complete", "total", total)
				return nil
			}
		}
	}
}
