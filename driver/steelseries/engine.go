package steelseries

import (
	"strconv"
	"strings"

	"github.com/go-ratbag/ratbag/driver"
	"github.com/go-ratbag/ratbag/driver/internal/fixedrecord"
	"github.com/go-ratbag/ratbag/hidtransport"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
	"github.com/go-ratbag/ratbag/ratmodel"
)

var _ ctrlTransport = (*hidtransport.Transport)(nil)
var _ fixedrecord.Transport = (*hidtransport.Transport)(nil)

func init() {
	driver.Register("steelseries", &Engine{})
}

// Engine implements driver.Driver for the Steelseries protocol.
type Engine struct{}

type engineState struct {
	transport     ctrlTransport
	layout        fixedrecord.Layout
	numLeds       int
	monoLed       bool
	deviceVersion int
	dpiList       []uint16
	dpiRange      ratmodel.DPIRange
}

const (
	defaultProfileCount  = 1
	defaultResolutions   = 1
	defaultButtons       = 8
	defaultLeds          = 1
	defaultMacroLength   = 32
	defaultDeviceVersion = 2
)

func (st *engineState) totalSize() int {
	return st.layout.ProfileSize() + st.numLeds*ledEntryLen(st.monoLed)
}

func (st *engineState) ledsOffset() int {
	return st.layout.ProfileSize()
}

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

func boolParam(t *driver.Target, key string, fallback bool) bool {
	v := stringParam(t, key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

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

// dpiRangeParam parses a "min:max:step" Driver/steelseries.DpiRange
// parameter (spec §4.2 lists DpiRange|DpiList as alternative forms the
// same way Driver/hidpp10 does).
func dpiRangeParam(t *driver.Target, key string) (ratmodel.DPIRange, bool) {
	raw := stringParam(t, key, "")
	if raw == "" {
		return ratmodel.DPIRange{}, false
	}
	parts := strings.Split(raw, ":")
	nums := make([]uint16, 0, 3)
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return ratmodel.DPIRange{}, false
		}
		nums = append(nums, uint16(n))
	}
	switch len(nums) {
	case 2:
		return ratmodel.DPIRange{Min: nums[0], Max: nums[1]}, true
	case 3:
		return ratmodel.DPIRange{Min: nums[0], Max: nums[1], Step: nums[2]}, true
	default:
		return ratmodel.DPIRange{}, false
	}
}

func stateFromParams(t *driver.Target) *engineState {
	numButtons := intParam(t, "Buttons", defaultButtons)
	macroLength := intParam(t, "MacroLength", defaultMacroLength)
	// ShortButton devices have no room for a macro slot at all (spec
	// §4.2 names ShortButton as a distinct per-device flag from
	// MacroLength); forcing MaxMacroEvents to 0 makes
	// fixedrecord.EncodeButtons reject any Macro action as Unsupported
	// for these devices without a second code path.
	if boolParam(t, "ShortButton", false) {
		macroLength = 0
	}

	layout := fixedrecord.Layout{
		ReportID:       reportID,
		NumResolutions: intParam(t, "Resolutions", defaultResolutions),
		NumButtons:     numButtons,
		MaxMacroEvents: macroLength,
	}

	st := &engineState{
		layout:        layout,
		numLeds:       intParam(t, "Leds", defaultLeds),
		monoLed:       boolParam(t, "MonoLed", false),
		deviceVersion: intParam(t, "DeviceVersion", defaultDeviceVersion),
		dpiList:       dpiListParam(t, "DpiList"),
	}
	if r, ok := dpiRangeParam(t, "DpiRange"); ok {
		st.dpiRange = r
	}
	return st
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
		return nil, ratbagerr.ErrNoDevice("no hidraw sibling exposes the steelseries profile report")
	}

	st := stateFromParams(t)
	st.transport = transport

	numProfiles := intParam(t, "Profiles", defaultProfileCount)
	dev := ratmodel.NewDevice(ratmodel.Ident{
		Bus:     t.Ident.Bus,
		Vendor:  t.Ident.Vendor,
		Product: t.Ident.Product,
	}, numProfiles, st.layout.NumResolutions, st.layout.NumButtons, st.numLeds)
	dev.DriverState = st

	dpiRange := st.dpiRange
	if len(st.dpiList) > 0 {
		dpiRange = ratmodel.DPIRange{List: st.dpiList}
	}

	for _, p := range dev.Profiles() {
		blob, err := readProfile(transport, uint8(p.Index), st.totalSize())
		if err != nil {
			_ = transport.Close()
			return nil, err
		}
		if err := fixedrecord.DecodeResolutions(blob, st.layout, p.Resolutions()); err != nil {
			_ = transport.Close()
			return nil, err
		}
		for _, r := range p.Resolutions() {
			r.Allowed = dpiRange
		}
		if err := fixedrecord.DecodeButtons(blob, st.layout, p.Buttons()); err != nil {
			_ = transport.Close()
			return nil, err
		}
		decodeLeds(blob, st.ledsOffset(), st.monoLed, p.Leds())
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
		return ratbagerr.ErrInvalidState("device has no steelseries engine state")
	}

	for _, p := range dev.Profiles() {
		if !p.Dirty() {
			continue
		}
		blob := make([]byte, st.totalSize())
		blob[0] = reportID
		if err := fixedrecord.EncodeResolutions(blob, st.layout, p.Resolutions()); err != nil {
			return err
		}
		if err := fixedrecord.EncodeButtons(blob, st.layout, p.Buttons()); err != nil {
			return err
		}
		encodeLeds(blob, st.ledsOffset(), st.monoLed, p.Leds())
		if err := writeProfile(st.transport, uint8(p.Index), blob); err != nil {
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
		return ratbagerr.ErrInvalidState("device has no steelseries engine state")
	}
	_, err := readProfile(st.transport, uint8(index), st.totalSize())
	return err
}

// Capabilities implements driver.CapabilityProvider.
func (e *Engine) Capabilities() driver.Capabilities {
	return driver.Capabilities{Macros: true}
}
