package ratmodel

// Profile is one on-device configuration slot (spec §3).
type Profile struct {
	device *Device

	Index      int
	Name       string
	IsActive   bool
	IsDefault  bool
	IsEnabled  bool
	ReportRate int // Hz

	resolutions []*Resolution
	buttons     []*Button
	leds        []*Led

	refcount  int32
	dirty     bool
	rateDirty bool
}

func newProfile(dev *Device, index, numResolutions, numButtons, numLeds int) *Profile {
	p := &Profile{device: dev, Index: index, IsEnabled: true}
	p.resolutions = make([]*Resolution, numResolutions)
	for i := range p.resolutions {
		p.resolutions[i] = newResolution(p, i)
	}
	p.buttons = make([]*Button, numButtons)
	for i := range p.buttons {
		p.buttons[i] = newButton(p, i)
	}
	p.leds = make([]*Led, numLeds)
	for i := range p.leds {
		p.leds[i] = newLed(p, i)
	}
	return p
}

func (p *Profile) ref()   { p.refcount++; p.device.ref() }
func (p *Profile) unref() { p.refcount--; p.device.unref() }

// Device returns the owning Device (a back-pointer; does not increment
// any refcount, per spec §4.3's "internal sibling references never form
// cycles").
func (p *Profile) Device() *Device { return p.device }

// Resolutions returns a stable-ordered read view of this Profile's
// Resolutions.
func (p *Profile) Resolutions() []*Resolution {
	out := make([]*Resolution, len(p.resolutions))
	copy(out, p.resolutions)
	return out
}

// Buttons returns a stable-ordered read view of this Profile's Buttons.
func (p *Profile) Buttons() []*Button {
	out := make([]*Button, len(p.buttons))
	copy(out, p.buttons)
	return out
}

// Leds returns a stable-ordered read view of this Profile's Leds.
func (p *Profile) Leds() []*Led {
	out := make([]*Led, len(p.leds))
	copy(out, p.leds)
	return out
}

// SetReportRate sets the profile-wide report rate and marks the per-rate
// dirty flag spec §4.3 names separately from the general dirty flag, so a
// driver committing can tell a plain rate change from a wider mutation.
func (p *Profile) SetReportRate(hz int) {
	p.ReportRate = hz
	p.rateDirty = true
	p.markDirty()
}

// markDirty marks this Profile dirty. Per spec §4.3, marking a Profile
// dirty does NOT mark its children dirty — this is the one-way leaf→
// Profile propagation direction, never the reverse.
func (p *Profile) markDirty() { p.dirty = true }

// Dirty reports whether this Profile (or any of its leaves) has been
// mutated since the last ClearDirty.
func (p *Profile) Dirty() bool { return p.dirty }

// RateDirty reports whether SetReportRate has been called since the last
// ClearDirty.
func (p *Profile) RateDirty() bool { return p.rateDirty }

// ClearDirty resets this Profile's dirty and per-rate-dirty flags and
// every leaf's dirty flag; called by a driver after a successful commit.
func (p *Profile) ClearDirty() {
	p.dirty = false
	p.rateDirty = false
	for _, r := range p.resolutions {
		r.dirty = false
	}
	for _, b := range p.buttons {
		b.dirty = false
	}
	for _, l := range p.leds {
		l.dirty = false
	}
}
