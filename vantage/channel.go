package vantage

import (
	vantageerrors "github.com/greynewell/vantage/errors"
)

// controlKind discriminates the shape of a controlMessage.
type controlKind uint8

const (
	controlAddFacet controlKind = iota
	controlRemoveFacet
	controlSnapshot
)

// controlMessage is the single envelope carried on the control
// channel. Exactly one of facet/reply is meaningful,
// selected by kind (mirrors Sample's single-envelope-multiple-kinds
// shape on the data channel).
type controlMessage[K comparable] struct {
	kind  controlKind
	facet Facet[K]
	reply chan *Snapshot[K]
}

// dataChannel carries batches of samples from Sinks to the Receiver.
// It is deliberately a thin alias over a Go channel: the aggregator
// polls it with select alongside the control channel, which is this
// engine's readiness-based analogue of a poller registering a data
// token and a control token on the same event loop.
type dataChannel[K comparable] chan *batch[K]

// controlChannel carries facet registration requests and snapshot
// requests from Controllers to the Receiver.
type controlChannel[K comparable] chan controlMessage[K]

// sendBatch delivers a full (or flushed-partial) batch to the data
// channel without blocking the caller. A full data channel means the
// aggregator is falling behind; the caller gets CodeChannelFull back
// rather than stalling a producer thread.
func sendBatch[K comparable](ch dataChannel[K], b *batch[K]) error {
	select {
	case ch <- b:
		return nil
	default:
		return vantageerrors.New(vantageerrors.CodeChannelFull, "data channel full")
	}
}

// sendControl delivers a control message without blocking. Control
// traffic is low-volume and latency-sensitive (facet changes, snapshot
// polls), so a full control channel is treated the same way as a full
// data channel: report it, don't wait for it.
func sendControl[K comparable](ch controlChannel[K], msg controlMessage[K]) error {
	select {
	case ch <- msg:
		return nil
	default:
		return vantageerrors.New(vantageerrors.CodeChannelFull, "control channel full")
	}
}
