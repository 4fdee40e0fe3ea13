// Package ratmodel implements spec §3/§4.3: the uniform Device → Profile →
// {Resolution, Button, Led} object model every driver reads hardware state
// into and writes mutations back out of, with dirty-bit tracking and
// reference-counted external handles.
package ratmodel

import (
	"sync"
	"sync/atomic"

	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
)

// Ident identifies a device by USB/Bluetooth bus, vendor, product and
// firmware/revision version (spec §3's Device attributes).
type Ident struct {
	Bus     uint32
	Vendor  uint32
	Product uint32
	Version uint32
}

// DeviceCapability is a bag of capability bits a Device carries.
type DeviceCapability uint32

const (
	CapProfileNames DeviceCapability = 1 << iota
	CapDefaultProfile
	CapDisableProfile
	CapWirelessBattery
)

func (c DeviceCapability) Has(bit DeviceCapability) bool { return c&bit != 0 }

// ResolutionCapability is a bag of per-resolution capability bits.
type ResolutionCapability uint32

const (
	CapSeparateXY ResolutionCapability = 1 << iota
	CapDisable
	CapIndividualReportRate
)

func (c ResolutionCapability) Has(bit ResolutionCapability) bool { return c&bit != 0 }

// DPIRange describes the DPI values a Resolution may take: either an
// explicit List, or a Min/Max/Step range. Exactly one form is populated.
type DPIRange struct {
	List       []uint16
	Min, Max   uint16
	Step       uint16
}

// Allowed reports whether v is a value this range/list permits. A
// zero-valued DPIRange (no list, no min/max/step set) is treated as
// unconstrained — the state before a driver has populated it from the
// device-data file.
func (r DPIRange) Allowed(v uint16) bool {
	if len(r.List) > 0 {
		for _, x := range r.List {
			if x == v {
				return true
			}
		}
		return false
	}
	if r.Min == 0 && r.Max == 0 && r.Step == 0 {
		return true
	}
	if r.Step == 0 {
		return v >= r.Min && v <= r.Max
	}
	if v < r.Min || v > r.Max {
		return false
	}
	return (v-r.Min)%r.Step == 0
}

// LedType tags what a Led illuminates.
type LedType int

const (
	LedLogo LedType = iota
	LedSide
	LedBattery
	LedDPI
	LedWheel
	LedSwitches
)

// LedMode is the effect a Led runs.
type LedMode int

const (
	LedModeOff LedMode = iota
	LedModeOn
	LedModeCycle
	LedModeBreathing
)

// LedColorDepth is the color precision a Led's hardware supports.
type LedColorDepth int

const (
	LedColorMono LedColorDepth = iota
	LedColorOneBitPerChannel
	LedColorEightBitPerChannel
)

// RGBColor is an 8-bit-per-channel color value; drivers with a coarser
// LedColorDepth quantize on encode.
type RGBColor struct{ R, G, B uint8 }

// refCounted is implemented by every entity in the arena so Handle can
// walk the ownership chain on Ref/Unref without type-specific glue.
type refCounted interface {
	ref()
	unref()
}

// --- Device ---------------------------------------------------------------

// RemoveFunc is invoked exactly once, when the last external handle on a
// Device is released, so the owning driver can release transport handles
// (spec §3's "destroyed when the last handle drops, runs `remove` exactly
// once").
type RemoveFunc func(*Device) error

// Device is the top-level object spec §3 describes.
type Device struct {
	mu sync.Mutex

	Name            string
	FirmwareVersion string
	Ident           Ident
	Capabilities    DeviceCapability

	profiles []*Profile

	// DriverState is opaque per-driver scratch state (spec §3: "opaque
	// per-driver state"); ratmodel never inspects it.
	DriverState any

	refcount   int32
	removed    bool
	removeFunc RemoveFunc
	removeErr  error
}

// NewDevice allocates a Device with numProfiles Profiles, each with
// resolutionsPerProfile/buttonsPerProfile/ledsPerProfile children — the
// fixed-size allocation spec §4.3 calls out. Counts are validated by
// CheckSanity, not here, so a driver can build up a Device across several
// calls during probe before running the post-probe check.
func NewDevice(ident Ident, numProfiles, resolutionsPerProfile, buttonsPerProfile, ledsPerProfile int) *Device {
	d := &Device{Ident: ident}
	d.profiles = make([]*Profile, numProfiles)
	for i := range d.profiles {
		d.profiles[i] = newProfile(d, i, resolutionsPerProfile, buttonsPerProfile, ledsPerProfile)
	}
	return d
}

// SetRemoveFunc registers the hook run when the Device's refcount reaches
// zero. A driver calls this once, during probe.
func (d *Device) SetRemoveFunc(fn RemoveFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeFunc = fn
}

func (d *Device) ref() { atomic.AddInt32(&d.refcount, 1) }

func (d *Device) unref() {
	if atomic.AddInt32(&d.refcount, -1) > 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.removed {
		return
	}
	d.removed = true
	if d.removeFunc != nil {
		d.removeErr = d.removeFunc(d)
	}
}

// Removed reports whether the last handle has dropped and the remove hook
// has run.
func (d *Device) Removed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removed
}

// RemoveErr returns the error the remove hook returned, if any.
func (d *Device) RemoveErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removeErr
}

// Profiles returns a stable-ordered read view of this Device's Profiles
// (spec SUPPLEMENTED FEATURES: iteration API spec §3 implies but doesn't
// name).
func (d *Device) Profiles() []*Profile {
	out := make([]*Profile, len(d.profiles))
	copy(out, d.profiles)
	return out
}

// Profile returns the Profile at index, or InvalidArgument if out of
// range.
func (d *Device) Profile(index int) (*Profile, error) {
	if index < 0 || index >= len(d.profiles) {
		return nil, ratbagerr.ErrInvalidArgument("profile index out of range")
	}
	return d.profiles[index], nil
}

// ActiveProfile returns the Profile with IsActive set, or InvalidState if
// none or more than one is (CheckSanity should have caught this earlier).
func (d *Device) ActiveProfile() (*Profile, error) {
	var found *Profile
	for _, p := range d.profiles {
		if p.IsActive {
			if found != nil {
				return nil, ratbagerr.ErrInvalidState("more than one active profile")
			}
			found = p
		}
	}
	if found == nil {
		return nil, ratbagerr.ErrInvalidState("no active profile")
	}
	return found, nil
}

// SetActiveProfile marks the Profile at index active and every other
// Profile inactive, per the driver's `set_active_profile` vtable entry
// (spec §4.4). Marks both the newly and previously active profiles dirty.
func (d *Device) SetActiveProfile(index int) error {
	if index < 0 || index >= len(d.profiles) {
		return ratbagerr.ErrInvalidArgument("profile index out of range")
	}
	for i, p := range d.profiles {
		want := i == index
		if p.IsActive != want {
			p.IsActive = want
			p.markDirty()
		}
	}
	return nil
}

// CheckSanity runs the post-probe invariant check spec §4.3 names:
// 1 ≤ num_profiles ≤ 16; per profile 1 ≤ num_resolutions ≤ 16; exactly
// one active profile; at most one default.
func CheckSanity(d *Device) error {
	if len(d.profiles) < 1 || len(d.profiles) > 16 {
		return ratbagerr.ErrInvalidState("device has an out-of-range profile count")
	}
	activeCount, defaultCount := 0, 0
	for _, p := range d.profiles {
		if len(p.resolutions) < 1 || len(p.resolutions) > 16 {
			return ratbagerr.ErrInvalidState("profile has an out-of-range resolution count")
		}
		if p.IsActive {
			activeCount++
		}
		if p.IsDefault {
			defaultCount++
		}
	}
	if activeCount != 1 {
		return ratbagerr.ErrInvalidState("device must have exactly one active profile")
	}
	if defaultCount > 1 {
		return ratbagerr.ErrInvalidState("device must have at most one default profile")
	}
	return nil
}
