// Package vantage is an in-process metrics aggregation engine.
//
// Application goroutines ("producers") hold a Sink and submit Samples
// tagged by a caller-chosen key type. A single Receiver goroutine
// consumes those samples, maintains derived views (counters, gauges,
// and windowed timing/value percentiles), and returns point-in-time
// Snapshots on demand through a Controller.
//
//	cfg := vantage.NewConfiguration[string](func(k string) string { return k })
//	recv, err := cfg.WithCapacity(1024).WithBatchSize(512).Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	go recv.Run(ctx)
//
//	ctrl := recv.GetController()
//	ctrl.AddFacet(vantage.Facet[string]{Kind: vantage.FacetCount, Key: "requests"})
//
//	sink := recv.GetSink()
//	_ = sink.Send(vantage.CountSample("requests", 1))
//
//	snap, err := ctrl.GetSnapshot()
//
// The engine is generic over any comparable key type; display names
// are produced by a caller-supplied label function rather than a
// Stringer constraint, since Go generics cannot express "comparable
// and Stringer" as a single constraint with useful zero-cost
// defaults.
package vantage
