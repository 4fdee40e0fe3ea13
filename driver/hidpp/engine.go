package hidpp

import (
	"strconv"

	"github.com/go-ratbag/ratbag/driver"
	"github.com/go-ratbag/ratbag/hidtransport"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
	"github.com/go-ratbag/ratbag/ratmodel"
)

func init() {
	driver.Register("hidpp20", &Engine{})
}

// Engine implements driver.Driver for HID++ 2.0 devices driven entirely
// through ONBOARD_PROFILES (spec §4.5's onboard-profile workflow). HID++
// 1.0 register-protocol devices are out of scope here (an explicit Open
// Question decision, see DESIGN.md): Probe returns Unsupported for them
// rather than guessing at undocumented register layouts.
type Engine struct{}

// engineState is the opaque per-device scratch Engine keeps in
// ratmodel.Device.DriverState.
type engineState struct {
	transport *hidtransport.Transport
	conn      *Conn
	features  *FeatureTable
	sensor    uint8
}

const defaultProfileCount = 4
const defaultResolutionCount = 1
const defaultButtonCount = 8
const defaultLedCount = 1

func intParam(t *driver.Target, key string, fallback int) int {
	sec, ok := t.File.DriverSection()
	if !ok {
		return fallback
	}
	v, ok := sec.Get(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Probe implements driver.Driver.
func (e *Engine) Probe(t *driver.Target) (*ratmodel.Device, error) {
	log := ratlog.Discard()

	candidates, err := t.Siblings.Siblings(t.InputPath)
	if err != nil {
		return nil, err
	}

	deviceIndex := uint8(intParam(t, "DeviceIndex", int(DeviceIndexWired)))

	var transport *hidtransport.Transport
	for _, path := range candidates {
		tr, err := hidtransport.Open(path, t.Open, log)
		if err != nil {
			continue
		}
		if tr.Probe(func(reports []hidtransport.ReportInfo) bool {
			return hidtransport.HasReport(reports, ReportIDShort) || hidtransport.HasReport(reports, ReportIDLong)
		}) {
			transport = tr
			break
		}
		_ = tr.Close()
	}
	if transport == nil {
		return nil, ratbagerr.ErrNoDevice("no hidraw sibling exposes a HID++ report")
	}

	conn := NewConn(transport, deviceIndex, log)
	features, err := BuildFeatureTable(conn)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}
	if !features.Has(FeatureOnboardProfiles) {
		_ = transport.Close()
		return nil, ratbagerr.ErrUnsupported("device has no ONBOARD_PROFILES feature")
	}

	info, err := ReadDeviceInfo(conn, features)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}

	numProfiles := intParam(t, "Profiles", defaultProfileCount)
	numResolutions := intParam(t, "Resolutions", defaultResolutionCount)
	numButtons := intParam(t, "Buttons", defaultButtonCount)
	numLeds := intParam(t, "Leds", defaultLedCount)

	dev := ratmodel.NewDevice(ratmodel.Ident{
		Bus:     t.Ident.Bus,
		Vendor:  t.Ident.Vendor,
		Product: t.Ident.Product,
	}, numProfiles, numResolutions, numButtons, numLeds)
	dev.Name = info.Name
	dev.FirmwareVersion = info.FirmwareVersion
	dev.DriverState = &engineState{transport: transport, conn: conn, features: features}

	activeIndex, err := CurrentProfileIndex(conn, features)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}

	blobSize := ProfileBlobSize(numResolutions, numButtons, numLeds)
	for _, p := range dev.Profiles() {
		blob, err := ReadProfileBlob(conn, features, p.Index, blobSize)
		if err != nil {
			_ = transport.Close()
			return nil, err
		}
		if err := DecodeProfile(blob, p); err != nil {
			_ = transport.Close()
			return nil, err
		}
		p.IsActive = p.Index == activeIndex
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

// Commit implements driver.Driver: re-encodes and writes back every
// dirty profile, then switches the active profile if it changed (spec
// §4.5's onboard-profile commit workflow).
func (e *Engine) Commit(dev *ratmodel.Device) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok {
		return ratbagerr.ErrInvalidState("device has no hidpp engine state")
	}

	var activeIndex = -1
	for _, p := range dev.Profiles() {
		if p.IsActive {
			activeIndex = p.Index
		}
		if !p.Dirty() {
			continue
		}
		blob, err := EncodeProfile(p)
		if err != nil {
			return err
		}
		if err := WriteProfileBlob(st.conn, st.features, p.Index, blob); err != nil {
			return err
		}
		p.ClearDirty()
	}

	if activeIndex >= 0 {
		current, err := CurrentProfileIndex(st.conn, st.features)
		if err != nil {
			return err
		}
		if current != activeIndex {
			if err := SetCurrentProfileIndex(st.conn, st.features, activeIndex); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetActiveProfile implements driver.Driver.
func (e *Engine) SetActiveProfile(dev *ratmodel.Device, index int) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok {
		return ratbagerr.ErrInvalidState("device has no hidpp engine state")
	}
	return SetCurrentProfileIndex(st.conn, st.features, index)
}

// Capabilities implements driver.CapabilityProvider.
func (e *Engine) Capabilities() driver.Capabilities {
	return driver.Capabilities{
		IndividualReportRate: false,
		SeparateXYDPI:        true,
		DisableResolution:    false,
		NamedProfiles:        true,
		DefaultProfile:       false,
		RGBEffects:           true,
		Macros:               false,
	}
}
