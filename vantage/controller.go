package vantage

// Controller is the administrative handle for a running Receiver: it
// can register or remove facets and pull point-in-time snapshots. A
// program typically holds one Controller and many Sinks.
type Controller[K comparable] struct {
	control controlChannel[K]
}

func newController[K comparable](control controlChannel[K]) *Controller[K] {
	return &Controller[K]{control: control}
}

// AddFacet asks the Receiver to begin maintaining the given facet.
func (c *Controller[K]) AddFacet(f Facet[K]) error {
	return sendControl(c.control, controlMessage[K]{kind: controlAddFacet, facet: f})
}

// RemoveFacet asks the Receiver to stop maintaining the given facet.
// Accumulated state for the facet's key is preserved (spec invariant 2).
func (c *Controller[K]) RemoveFacet(f Facet[K]) error {
	return sendControl(c.control, controlMessage[K]{kind: controlRemoveFacet, facet: f})
}

// GetSnapshot requests a point-in-time view of every registered
// facet's current state. It blocks until the Receiver replies or the
// reply channel is closed unanswered (the Receiver stopped mid-service),
// in which case it returns errReplyDropped.
//
// The initial request itself is non-blocking — it fails fast with
// CodeChannelFull if the control channel has no room — but once
// accepted, GetSnapshot waits for the Receiver's answer, since a
// caller asking for a snapshot has nothing useful to do without one.
func (c *Controller[K]) GetSnapshot() (*Snapshot[K], error) {
	reply := make(chan *Snapshot[K], 1)
	msg := controlMessage[K]{kind: controlSnapshot, reply: reply}
	if err := sendControl(c.control, msg); err != nil {
		return nil, err
	}
	snap, ok := <-reply
	if !ok {
		return nil, errReplyDropped
	}
	return snap, nil
}
