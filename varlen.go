package scalarval

import "sync"

// Varlen is an opaque handle to a pool-allocated byte run. It is the
// Go-side analogue of spec §4.B's Varlen handle: callers never see the
// allocator's internals, only this handle and Bytes().
//
// The zero Varlen (nil) is the "null handle" — Free is a no-op on it and
// a Value built from it is NULL, per §3.
type Varlen struct {
	payload []byte
}

// Bytes returns the handle's payload. Callers must not retain the slice
// beyond the handle's lifetime.
func (v *Varlen) Bytes() []byte {
	if v == nil {
		return nil
	}
	return v.payload
}

// Len returns the payload length, 0 for a nil handle.
func (v *Varlen) Len() int {
	if v == nil {
		return 0
	}
	return len(v.payload)
}

// Pool is the allocator interface the engine requires. Implementations
// are not required to be thread-safe; §5 states the engine serializes
// access per executor context.
type Pool interface {
	// Allocate returns a handle whose payload has at least minBytes
	// capacity and length.
	Allocate(minBytes int) *Varlen
	// Free releases handle. Freeing a nil handle is a no-op.
	Free(handle *Varlen)
	// Reset releases every handle the pool has allocated, invalidating
	// all outstanding handles from this pool.
	Reset()
}

// simplePool is a minimal heap-backed Pool: allocation is a plain make,
// free and reset are bookkeeping only (Go's GC reclaims the bytes once
// unreferenced). This satisfies the Pool contract ("allocations survive
// until the pool is reset or the handle destroyed") without needing a
// custom allocator, matching the fact that no example in the retrieval
// pack implements a manual allocator either.
type simplePool struct {
	mu    sync.Mutex
	alive map[*Varlen]struct{}
}

// NewPool creates an empty in-process Pool.
func NewPool() Pool {
	return &simplePool{alive: make(map[*Varlen]struct{})}
}

func (p *simplePool) Allocate(minBytes int) *Varlen {
	if minBytes < 0 {
		minBytes = 0
	}
	h := &Varlen{payload: make([]byte, minBytes)}
	p.mu.Lock()
	p.alive[h] = struct{}{}
	p.mu.Unlock()
	return h
}

func (p *simplePool) Free(handle *Varlen) {
	if handle == nil {
		return
	}
	p.mu.Lock()
	delete(p.alive, handle)
	p.mu.Unlock()
	handle.payload = nil
}

func (p *simplePool) Reset() {
	p.mu.Lock()
	for h := range p.alive {
		h.payload = nil
	}
	p.alive = make(map[*Varlen]struct{})
	p.mu.Unlock()
}

// TempPool is the process-wide scratch allocator described in §5: any
// Value built through TempString, TempBinary, or Cast to KindVarchar without
// an explicit ExecContext points into this pool and is invalidated by
// the next TempPool.Reset(). §9's Design Notes prefer an explicitly
// passed context; ExecContext (execcontext.go) wraps this for callers
// that want that discipline, while TempPool remains for convenience
// call sites, matching the source's own process-wide temp string pool.
var TempPool Pool = NewPool()

// handleRegistry maps the 8-byte opaque identifier a non-inlined
// Varchar/Varbinary tuple slot stores to the *Varlen it identifies.
//
// §6 specifies the tuple slot as "a handle-pointer-sized value" — in a
// memory-unsafe implementation that is a literal pointer. Reinterpreting
// an 8-byte tuple region as a Go pointer would require unsafe.Pointer
// and would not survive being read back from storage the way a real
// tuple page can be (§9: "memory-safe target"). This module instead
// stores a process-local handle ID, the same size and NULL convention
// (0 == null) as a pointer, looked up through this registry — the
// idiomatic Go substitute for the source's raw address.
var handleRegistry = struct {
	mu    sync.Mutex
	next  uint64
	byID  map[uint64]*Varlen
	byPtr map[*Varlen]uint64
}{next: 1, byID: make(map[uint64]*Varlen), byPtr: make(map[*Varlen]uint64)}

// registerHandle returns the stable ID for h, allocating one on first
// use so repeated serialization of the same handle is idempotent.
func registerHandle(h *Varlen) uint64 {
	if h == nil {
		return 0
	}
	handleRegistry.mu.Lock()
	defer handleRegistry.mu.Unlock()
	if id, ok := handleRegistry.byPtr[h]; ok {
		return id
	}
	id := handleRegistry.next
	handleRegistry.next++
	handleRegistry.byID[id] = h
	handleRegistry.byPtr[h] = id
	return id
}

// handleByID resolves a tuple-stored ID back to its Varlen, or nil for
// the NULL ID 0, an ID that was never registered, or an ID whose handle
// has since been freed or reset.
func handleByID(id uint64) *Varlen {
	if id == 0 {
		return nil
	}
	handleRegistry.mu.Lock()
	defer handleRegistry.mu.Unlock()
	h := handleRegistry.byID[id]
	if h.Bytes() == nil {
		return nil
	}
	return h
}
