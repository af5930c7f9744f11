package vantage

import (
	"github.com/google/uuid"

	vantageerrors "github.com/greynewell/vantage/errors"
)

// Sink is a cheaply-cloneable producer handle. Each Sink owns its own
// batch buffer, so concurrent Sinks never contend on a shared slice —
// they only ever contend on the bounded data channel itself, exactly
// once per flush (spec §4: "producers batch locally").
type Sink[K comparable] struct {
	id      uuid.UUID
	data    dataChannel[K]
	control controlChannel[K]
	pool    *bufferPool[K]
	held    *batch[K]
}

func newSink[K comparable](data dataChannel[K], control controlChannel[K], pool *bufferPool[K]) *Sink[K] {
	return &Sink[K]{
		id:      uuid.New(),
		data:    data,
		control: control,
		pool:    pool,
		held:    pool.checkout(),
	}
}

// ID returns a value uniquely identifying this Sink instance, useful
// for attributing dropped-batch log lines to a specific producer.
func (s *Sink[K]) ID() string {
	return s.id.String()
}

// Clone returns an independent Sink sharing the same channels and
// pool but owning its own held batch, so the clone can be handed to a
// second producer goroutine without the two contending on a buffer.
func (s *Sink[K]) Clone() *Sink[K] {
	return newSink[K](s.data, s.control, s.pool)
}

// Send appends sample to this Sink's held batch, flushing to the data
// channel when the batch reaches its configured capacity. A flush
// that finds the data channel full returns CodeChannelFull and drops
// the whole batch, including the sample that triggered the flush; the
// Sink continues with a freshly checked-out, empty batch. The loss is
// reported through the error, never swallowed.
func (s *Sink[K]) Send(sample Sample[K]) error {
	s.held.samples = append(s.held.samples, sample)
	if len(s.held.samples) < cap(s.held.samples) {
		return nil
	}
	return s.flush()
}

// Flush forces the current held batch to the data channel even if it
// is not yet full. Useful before a Sink goes idle so its samples
// don't wait indefinitely for more traffic to fill the batch.
func (s *Sink[K]) Flush() error {
	if len(s.held.samples) == 0 {
		return nil
	}
	return s.flush()
}

func (s *Sink[K]) flush() error {
	full := s.held
	s.held = s.pool.checkout()
	if err := sendBatch(s.data, full); err != nil {
		s.pool.recycle(full)
		return err
	}
	return nil
}

// AddFacet asks the Receiver to begin maintaining the given facet.
// The request is asynchronous: AddFacet returns as soon as the
// control channel accepts the message, not once the Receiver has
// processed it.
func (s *Sink[K]) AddFacet(f Facet[K]) error {
	return sendControl(s.control, controlMessage[K]{kind: controlAddFacet, facet: f})
}

// RemoveFacet asks the Receiver to stop maintaining the given facet.
// Accumulated state for the facet's key is preserved, not erased —
// only emission into future snapshots stops (spec invariant 2).
func (s *Sink[K]) RemoveFacet(f Facet[K]) error {
	return sendControl(s.control, controlMessage[K]{kind: controlRemoveFacet, facet: f})
}

// Snapshot requests a point-in-time view of every registered facet's
// current state, mirroring Controller.GetSnapshot so a producer does
// not need a separate Controller handle just to read back what it has
// been sending (spec §4.8, §6). Like GetSnapshot, the initial request
// is non-blocking — it fails fast with CodeChannelFull if the control
// channel has no room — but once accepted, Snapshot blocks on a
// one-shot reply channel until the Receiver answers or stops
// mid-service, in which case it returns errReplyDropped.
func (s *Sink[K]) Snapshot() (*Snapshot[K], error) {
	reply := make(chan *Snapshot[K], 1)
	msg := controlMessage[K]{kind: controlSnapshot, reply: reply}
	if err := sendControl(s.control, msg); err != nil {
		return nil, err
	}
	snap, ok := <-reply
	if !ok {
		return nil, errReplyDropped
	}
	return snap, nil
}

// errReplyDropped is returned by sink/controller snapshot requests
// whose reply channel was closed without a value, meaning the
// Receiver stopped before it could service the request.
var errReplyDropped = vantageerrors.New(vantageerrors.CodeReplyDropped, "receiver stopped before replying")
