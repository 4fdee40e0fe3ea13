package ratmodel

import "github.com/go-ratbag/ratbag/action"

// Button is one physical or logical button (spec §3).
type Button struct {
	profile *Profile

	Index int
	// ActionTypeMask enumerates which action.Kind values this button
	// slot can hold on this device; drivers consult it before accepting
	// a SetAction call.
	ActionTypeMask uint8
	Action         action.Action

	refcount int32
	dirty    bool
}

func newButton(p *Profile, index int) *Button {
	return &Button{profile: p, Index: index, Action: action.None()}
}

func (b *Button) ref()   { b.refcount++; b.profile.ref() }
func (b *Button) unref() { b.refcount--; b.profile.unref() }

// Profile returns the owning Profile (back-pointer, no refcount).
func (b *Button) Profile() *Profile { return b.profile }

// Dirty reports whether this Button has been mutated since the last
// clear.
func (b *Button) Dirty() bool { return b.dirty }

// SetAction replaces this Button's action and marks it (and its owning
// Profile) dirty.
func (b *Button) SetAction(a action.Action) {
	b.Action = a
	b.dirty = true
	b.profile.markDirty()
}
