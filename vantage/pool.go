package vantage

// batch is a reusable, uniquely-owned slice of samples. It moves
// between exactly one of: the free pool, a producer's held-out slot,
// the data channel, or the Receiver during drain (spec invariant 4).
type batch[K comparable] struct {
	samples []Sample[K]
}

func newBatchBuffer[K comparable](batchSize int) *batch[K] {
	return &batch[K]{samples: make([]Sample[K], 0, batchSize)}
}

func (b *batch[K]) reset() {
	b.samples = b.samples[:0]
}

// bufferPool is a bounded free-list of reusable batch buffers. It is
// a fast-path optimization, not a hard cap: checkout never blocks,
// falling back to a transient allocation on exhaustion, and recycle
// never blocks the Receiver — a pool that is momentarily full simply
// lets the returned buffer be garbage collected (spec §4.5).
type bufferPool[K comparable] struct {
	free      chan *batch[K]
	batchSize int
}

func newBufferPool[K comparable](capacity, batchSize int) *bufferPool[K] {
	p := &bufferPool[K]{
		free:      make(chan *batch[K], capacity),
		batchSize: batchSize,
	}
	for i := 0; i < capacity; i++ {
		p.free <- newBatchBuffer[K](batchSize)
	}
	return p
}

// checkout claims a batch from the free list without blocking. On
// exhaustion it allocates a transient batch rather than waiting.
func (p *bufferPool[K]) checkout() *batch[K] {
	select {
	case b := <-p.free:
		return b
	default:
		return newBatchBuffer[K](p.batchSize)
	}
}

// recycle clears b and returns it to the free list. If the free list
// is momentarily full (more buffers in flight than capacity, e.g.
// after a burst of transient allocations) b is dropped instead of
// blocking the caller — this method is only ever called from the
// Receiver's aggregator goroutine, which must never stall on pool
// bookkeeping.
func (p *bufferPool[K]) recycle(b *batch[K]) {
	b.reset()
	select {
	case p.free <- b:
	default:
	}
}
