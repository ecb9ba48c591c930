package containers

import (
	"sync"
	"sync/atomic"

	"github.com/rawbytedev/containers/internal/common"
	"github.com/sirupsen/logrus"
)

// Allocator hands out and takes back the blocks owned by arrays.
//
// Alloc(0) returns a nil block and no error. Free is called exactly once
// per non-nil block returned by Alloc, and never with a nil block.
// Implementations must be safe for concurrent use.
type Allocator[T any] interface {
	Alloc(n int) ([]T, error)
	Free(block []T)
}

// Stats is a snapshot of allocator counters.
type Stats struct {
	Allocs    int64
	Frees     int64
	Failures  int64
	Recycled  int64
	LiveBytes int64
}

type counters struct {
	allocs    atomic.Int64
	frees     atomic.Int64
	failures  atomic.Int64
	recycled  atomic.Int64
	liveBytes atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Allocs:    c.allocs.Load(),
		Frees:     c.frees.Load(),
		Failures:  c.failures.Load(),
		Recycled:  c.recycled.Load(),
		LiveBytes: c.liveBytes.Load(),
	}
}

// checkLen validates a request before anything is allocated.
func checkLen[T any](n int, limit int64) (int64, error) {
	fail := func(err error) error {
		return &AllocationError{Requested: n, ElemSize: common.ElemSize[T](), Limit: limit, Err: err}
	}
	if n < 0 {
		return 0, fail(ErrNegativeLen)
	}
	// past MaxLen make would panic instead of failing
	size, ok := common.ByteLen[T](n)
	if !ok || n > common.MaxLen[T]() {
		return 0, fail(ErrOverflow)
	}
	if limit > 0 && size > limit {
		return 0, fail(ErrLimitExceeded)
	}
	return size, nil
}

// Heap allocates every block with make, so fresh blocks are always zeroed.
type Heap[T any] struct {
	opts Options
	log  *logrus.Logger
	c    counters
}

// NewHeap returns a make-backed allocator.
func NewHeap[T any](opts Options) *Heap[T] {
	return &Heap[T]{opts: opts, log: opts.logger()}
}

func (h *Heap[T]) Alloc(n int) ([]T, error) {
	size, err := checkLen[T](n, h.opts.MaxBytes)
	if err != nil {
		h.c.failures.Add(1)
		h.log.WithFields(logrus.Fields{"allocator": "heap", "elems": n}).Warnf("alloc failed: %v", err)
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	block := make([]T, n)
	h.c.allocs.Add(1)
	h.c.liveBytes.Add(size)
	trace(h.log, "heap", "alloc", n, size)
	return block, nil
}

func (h *Heap[T]) Free(block []T) {
	if block == nil {
		return
	}
	size, _ := common.ByteLen[T](len(block))
	h.c.frees.Add(1)
	h.c.liveBytes.Add(-size)
	trace(h.log, "heap", "free", len(block), size)
}

// Stats returns the current counters.
func (h *Heap[T]) Stats() Stats { return h.c.snapshot() }

// Pool parks freed blocks by length and hands them out again. A recycled
// block keeps whatever its previous owner wrote unless Options.ZeroFill is
// set, which is what "uninitialized" means for blocks from a Pool.
type Pool[T any] struct {
	opts   Options
	log    *logrus.Logger
	scrub  bool // element type holds pointers; clear on park
	mu     sync.Mutex
	parked map[int][][]T
	c      counters
}

// NewPool returns a recycling allocator.
func NewPool[T any](opts Options) *Pool[T] {
	return &Pool[T]{
		opts:   opts,
		log:    opts.logger(),
		scrub:  common.TypeHasPointers[T](),
		parked: make(map[int][][]T),
	}
}

func (p *Pool[T]) Alloc(n int) ([]T, error) {
	size, err := checkLen[T](n, p.opts.MaxBytes)
	if err != nil {
		p.c.failures.Add(1)
		p.log.WithFields(logrus.Fields{"allocator": "pool", "elems": n}).Warnf("alloc failed: %v", err)
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	p.c.allocs.Add(1)
	p.c.liveBytes.Add(size)
	if block := p.take(n); block != nil {
		p.c.recycled.Add(1)
		if p.opts.ZeroFill {
			clear(block)
		}
		trace(p.log, "pool", "alloc recycled", n, size)
		return block, nil
	}
	trace(p.log, "pool", "alloc", n, size)
	return make([]T, n), nil
}

func (p *Pool[T]) Free(block []T) {
	if block == nil {
		return
	}
	size, _ := common.ByteLen[T](len(block))
	p.c.frees.Add(1)
	p.c.liveBytes.Add(-size)
	if p.scrub {
		clear(block)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	stack := p.parked[len(block)]
	if len(stack) >= p.opts.maxCached() {
		return
	}
	p.parked[len(block)] = append(stack, common.Clip(block))
	trace(p.log, "pool", "free parked", len(block), size)
}

func (p *Pool[T]) take(n int) []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	stack := p.parked[n]
	if len(stack) == 0 {
		return nil
	}
	block := stack[len(stack)-1]
	stack[len(stack)-1] = nil
	p.parked[n] = stack[:len(stack)-1]
	return block
}

// Parked reports how many blocks are waiting for reuse.
func (p *Pool[T]) Parked() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, stack := range p.parked {
		total += len(stack)
	}
	return total
}

// Stats returns the current counters.
func (p *Pool[T]) Stats() Stats { return p.c.snapshot() }

func trace(log *logrus.Logger, allocator, msg string, elems int, size int64) {
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	log.WithFields(logrus.Fields{"allocator": allocator, "elems": elems, "bytes": size}).Debug(msg)
}

// defaultHeap backs arrays built without an explicit allocator.
func defaultHeap[T any]() Allocator[T] {
	return &Heap[T]{log: logrus.StandardLogger()}
}
