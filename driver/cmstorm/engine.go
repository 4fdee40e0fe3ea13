// Package cmstorm implements spec §4.7's CM Storm protocol engine: one of
// the fixed-size-per-profile-report family sharing the driver/internal/
// fixedrecord codec. CM Storm's device-data files additionally carry a
// Driver/cmstorm.DpiList parameter (spec §4.2), which a Driver/<name>
// section populates; this engine reads it the same way every other driver
// in this family reads its layout parameters.
package cmstorm

import (
	"strconv"

	"github.com/go-ratbag/ratbag/driver"
	"github.com/go-ratbag/ratbag/driver/internal/fixedrecord"
	"github.com/go-ratbag/ratbag/hidtransport"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
	"github.com/go-ratbag/ratbag/ratmodel"
)

var _ fixedrecord.Transport = (*hidtransport.Transport)(nil)

func init() {
	driver.Register("cmstorm", &Engine{})
}

// Engine implements driver.Driver for the CM Storm fixed-record protocol.
type Engine struct{}

type engineState struct {
	transport fixedrecord.Transport
	layout    fixedrecord.Layout
	dpiList   []uint16
}

const (
	reportID             = 0x05
	defaultProfileCount  = 4
	defaultResolutions   = 1
	defaultButtons       = 12
	defaultMaxMacroEvent = 50
)

func stringParam(t *driver.Target, key, fallback string) string {
	sec, ok := t.File.DriverSection()
	if !ok {
		return fallback
	}
	v, ok := sec.Get(key)
	if !ok {
		return fallback
	}
	return v
}

func intParam(t *driver.Target, key string, fallback int) int {
	v := stringParam(t, key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// dpiListParam parses the Driver/cmstorm.DpiList device-data parameter,
// a comma-separated list of DPI values this sensor's firmware restricts
// resolutions to (spec §4.2). An unparsable entry is skipped; the entries
// after it are still parsed.
func dpiListParam(t *driver.Target, key string) []uint16 {
	sec, ok := t.File.DriverSection()
	if !ok {
		return nil
	}
	var out []uint16
	for _, part := range sec.List(key) {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		out = append(out, uint16(n))
	}
	return out
}

func layoutFromParams(t *driver.Target) fixedrecord.Layout {
	return fixedrecord.Layout{
		ReportID:       reportID,
		NumResolutions: intParam(t, "Resolutions", defaultResolutions),
		NumButtons:     intParam(t, "Buttons", defaultButtons),
		MaxMacroEvents: intParam(t, "MaxMacroEvents", defaultMaxMacroEvent),
	}
}

// Probe implements driver.Driver.
func (e *Engine) Probe(t *driver.Target) (*ratmodel.Device, error) {
	log := ratlog.Discard()

	candidates, err := t.Siblings.Siblings(t.InputPath)
	if err != nil {
		return nil, err
	}

	var transport *hidtransport.Transport
	for _, path := range candidates {
		tr, err := hidtransport.Open(path, t.Open, log)
		if err != nil {
			continue
		}
		if tr.Probe(func(reports []hidtransport.ReportInfo) bool {
			return hidtransport.HasReport(reports, reportID)
		}) {
			transport = tr
			break
		}
		_ = tr.Close()
	}
	if transport == nil {
		return nil, ratbagerr.ErrNoDevice("no hidraw sibling exposes the cmstorm profile report")
	}

	layout := layoutFromParams(t)
	st := &engineState{transport: transport, layout: layout, dpiList: dpiListParam(t, "DpiList")}

	numProfiles := intParam(t, "Profiles", defaultProfileCount)
	dev := ratmodel.NewDevice(ratmodel.Ident{
		Bus:     t.Ident.Bus,
		Vendor:  t.Ident.Vendor,
		Product: t.Ident.Product,
	}, numProfiles, layout.NumResolutions, layout.NumButtons, 0)
	dev.DriverState = st

	dpiRange := ratmodel.DPIRange{List: st.dpiList}
	for _, p := range dev.Profiles() {
		blob, err := fixedrecord.ReadProfile(transport, layout, uint8(p.Index))
		if err != nil {
			_ = transport.Close()
			return nil, err
		}
		if err := fixedrecord.DecodeResolutions(blob, layout, p.Resolutions()); err != nil {
			_ = transport.Close()
			return nil, err
		}
		if len(st.dpiList) > 0 {
			for _, r := range p.Resolutions() {
				r.Allowed = dpiRange
			}
		}
		if err := fixedrecord.DecodeButtons(blob, layout, p.Buttons()); err != nil {
			_ = transport.Close()
			return nil, err
		}
	}

	return dev, nil
}

// Remove implements driver.Driver.
func (e *Engine) Remove(dev *ratmodel.Device) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok || st.transport == nil {
		return nil
	}
	return st.transport.Close()
}

// Commit implements driver.Driver.
func (e *Engine) Commit(dev *ratmodel.Device) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok {
		return ratbagerr.ErrInvalidState("device has no cmstorm engine state")
	}

	for _, p := range dev.Profiles() {
		if !p.Dirty() {
			continue
		}
		blob := make([]byte, st.layout.ProfileSize())
		blob[0] = reportID
		if err := fixedrecord.EncodeResolutions(blob, st.layout, p.Resolutions()); err != nil {
			return err
		}
		if err := fixedrecord.EncodeButtons(blob, st.layout, p.Buttons()); err != nil {
			return err
		}
		if err := fixedrecord.WriteProfile(st.transport, st.layout, uint8(p.Index), blob); err != nil {
			return err
		}
		p.ClearDirty()
	}
	return nil
}

// SetActiveProfile implements driver.Driver.
func (e *Engine) SetActiveProfile(dev *ratmodel.Device, index int) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok {
		return ratbagerr.ErrInvalidState("device has no cmstorm engine state")
	}
	_, err := fixedrecord.ReadProfile(st.transport, st.layout, uint8(index))
	return err
}

// Capabilities implements driver.CapabilityProvider.
func (e *Engine) Capabilities() driver.Capabilities {
	return driver.Capabilities{Macros: true}
}
