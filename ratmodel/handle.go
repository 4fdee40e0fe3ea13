package ratmodel

import "sync/atomic"

// Handle is an externally-visible reference-counted handle on any entity
// in the arena. Acquiring a Handle increments the refcount of the entity
// and (transitively, via each level's ref()) every ancestor up to the
// Device, so a caller can hold e.g. a *Resolution without separately
// pinning its Device (spec §4.3). Release must be called exactly once;
// a second call is a no-op rather than a double-decrement.
type Handle[T refCounted] struct {
	entity   T
	released int32
}

// NewHandle wraps entity in a Handle, incrementing its refcount (and its
// ancestors', transitively).
func NewHandle[T refCounted](entity T) *Handle[T] {
	entity.ref()
	return &Handle[T]{entity: entity}
}

// Get returns the wrapped entity. Valid until Release is called.
func (h *Handle[T]) Get() T { return h.entity }

// Release drops this handle's reference. Safe to call more than once.
func (h *Handle[T]) Release() {
	if atomic.CompareAndSwapInt32(&h.released, 0, 1) {
		h.entity.unref()
	}
}
