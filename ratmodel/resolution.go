package ratmodel

import "github.com/go-ratbag/ratbag/ratbagerr"

// Resolution is one DPI step in a Profile (spec §3).
type Resolution struct {
	profile *Profile

	Index        int
	DPIX, DPIY   uint16
	ReportRate   int // Hz; mirrors the Profile rate on devices without CapIndividualReportRate
	IsActive     bool
	IsDefault    bool
	IsDisabled   bool
	Capabilities ResolutionCapability
	Allowed      DPIRange

	refcount int32
	dirty    bool
}

func newResolution(p *Profile, index int) *Resolution {
	return &Resolution{profile: p, Index: index}
}

func (r *Resolution) ref()   { r.refcount++; r.profile.ref() }
func (r *Resolution) unref() { r.refcount--; r.profile.unref() }

// Profile returns the owning Profile (back-pointer, no refcount).
func (r *Resolution) Profile() *Profile { return r.profile }

func (r *Resolution) markDirty() {
	r.dirty = true
	r.profile.markDirty()
}

// Dirty reports whether this Resolution has been mutated since the last
// clear.
func (r *Resolution) Dirty() bool { return r.dirty }

// SetDPI sets dpiX/dpiY, validating against Allowed (spec §3's Resolution
// invariants): dpiX must be an allowed value, and so must dpiY when
// CapSeparateXY is set. Without CapSeparateXY, dpiY is ignored and set to
// dpiX.
func (r *Resolution) SetDPI(dpiX, dpiY uint16) error {
	if !r.Capabilities.Has(CapSeparateXY) {
		dpiY = dpiX
	}
	if !r.Allowed.Allowed(dpiX) {
		return ratbagerr.ErrInvalidArgument("dpi_x not in allowed set")
	}
	if r.Capabilities.Has(CapSeparateXY) && !r.Allowed.Allowed(dpiY) {
		return ratbagerr.ErrInvalidArgument("dpi_y not in allowed set")
	}
	r.DPIX, r.DPIY = dpiX, dpiY
	r.markDirty()
	return nil
}

// SetReportRate sets this Resolution's individual report rate; callers
// must check CapIndividualReportRate first (drivers without that
// capability mirror the Profile rate instead).
func (r *Resolution) SetReportRate(hz int) error {
	if !r.Capabilities.Has(CapIndividualReportRate) {
		return ratbagerr.ErrUnsupported("resolution does not support an individual report rate")
	}
	r.ReportRate = hz
	r.markDirty()
	return nil
}

// SetDisabled toggles IsDisabled; callers must check CapDisable first.
func (r *Resolution) SetDisabled(disabled bool) error {
	if !r.Capabilities.Has(CapDisable) {
		return ratbagerr.ErrUnsupported("resolution does not support disabling")
	}
	r.IsDisabled = disabled
	r.markDirty()
	return nil
}
