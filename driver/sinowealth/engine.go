package sinowealth

import (
	"strconv"

	"github.com/go-ratbag/ratbag/driver"
	"github.com/go-ratbag/ratbag/hidtransport"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
	"github.com/go-ratbag/ratbag/ratmodel"
)

var _ configTransport = (*hidtransport.Transport)(nil)

func init() {
	driver.Register("sinowealth", &Engine{})
}

// Engine implements driver.Driver for the SinoWealth variable-length
// config-blob protocol (spec §4.7).
type Engine struct{}

type engineState struct {
	transport      configTransport
	reportID       uint8
	model          SensorModel
	blobLen        int
	numResolutions int
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

const (
	defaultProfileCount = 1 // SinoWealth mice commonly expose a single on-device profile
	defaultResolutions  = 1
	defaultButtons      = 6
)

// Probe implements driver.Driver.
func (e *Engine) Probe(t *driver.Target) (*ratmodel.Device, error) {
	log := ratlog.Discard()

	candidates, err := t.Siblings.Siblings(t.InputPath)
	if err != nil {
		return nil, err
	}

	var transport *hidtransport.Transport
	var reportID uint8
	for _, path := range candidates {
		tr, err := hidtransport.Open(path, t.Open, log)
		if err != nil {
			continue
		}
		if tr.Probe(func(reports []hidtransport.ReportInfo) bool {
			return hidtransport.HasReport(reports, ConfigReportPrimary) || hidtransport.HasReport(reports, ConfigReportAlternate)
		}) {
			transport = tr
			if tr.Probe(func(reports []hidtransport.ReportInfo) bool {
				return hidtransport.HasReport(reports, ConfigReportPrimary)
			}) {
				reportID = ConfigReportPrimary
			} else {
				reportID = ConfigReportAlternate
			}
			break
		}
		_ = tr.Close()
	}
	if transport == nil {
		return nil, ratbagerr.ErrNoDevice("no hidraw sibling exposes a sinowealth config report")
	}

	blob, err := ReadConfigBlob(transport, reportID)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}

	firmware := stringParam(t, "Firmware", "")
	model := SensorForFirmware(firmware)

	numProfiles := intParam(t, "Profiles", defaultProfileCount)
	numResolutions := intParam(t, "Resolutions", defaultResolutions)
	numButtons := intParam(t, "Buttons", defaultButtons)

	st := &engineState{
		transport:      transport,
		reportID:       reportID,
		model:          model,
		blobLen:        len(blob),
		numResolutions: numResolutions,
	}

	dev := ratmodel.NewDevice(ratmodel.Ident{
		Bus:     t.Ident.Bus,
		Vendor:  t.Ident.Vendor,
		Product: t.Ident.Product,
	}, numProfiles, numResolutions, numButtons, 0)
	dev.DriverState = st

	rate, err := DecodeReportRate(blob)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}
	if err := decodeResolutions(blob, model, dev.Profiles()[0].Resolutions()); err != nil {
		_ = transport.Close()
		return nil, err
	}
	if err := decodeButtons(blob, numResolutions, dev.Profiles()[0].Buttons()); err != nil {
		_ = transport.Close()
		return nil, err
	}
	for _, p := range dev.Profiles() {
		p.ReportRate = rate
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

// Commit implements driver.Driver: re-reads the current blob (to avoid
// clobbering device state this engine doesn't model), patches in dirty
// fields, and writes it back at its original length (spec §4.7: "writes
// it back unchanged").
func (e *Engine) Commit(dev *ratmodel.Device) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok {
		return ratbagerr.ErrInvalidState("device has no sinowealth engine state")
	}

	anyDirty := false
	for _, p := range dev.Profiles() {
		if p.Dirty() {
			anyDirty = true
			break
		}
	}
	if !anyDirty {
		return nil
	}

	blob, err := ReadConfigBlob(st.transport, st.reportID)
	if err != nil {
		return err
	}

	p := dev.Profiles()[0]
	if err := EncodeReportRate(blob, p.ReportRate); err != nil {
		return err
	}
	if err := encodeResolutions(blob, st.model, p.Resolutions()); err != nil {
		return err
	}
	if err := encodeButtons(blob, st.numResolutions, p.Buttons()); err != nil {
		return err
	}

	if err := WriteConfigBlob(st.transport, blob); err != nil {
		return err
	}
	for _, pr := range dev.Profiles() {
		pr.ClearDirty()
	}
	return nil
}

// SetActiveProfile implements driver.Driver. SinoWealth devices this
// engine targets expose a single on-device profile (spec §4.7 names no
// profile-select operation for this vendor), so switching is a uniform
// model no-op beyond what ratmodel.Device.SetActiveProfile already does.
func (e *Engine) SetActiveProfile(dev *ratmodel.Device, index int) error {
	if index != 0 {
		return ratbagerr.ErrUnsupported("sinowealth: device exposes only a single on-device profile")
	}
	return nil
}

// Capabilities implements driver.CapabilityProvider.
func (e *Engine) Capabilities() driver.Capabilities {
	return driver.Capabilities{
		NamedProfiles: false,
		Macros:        false,
	}
}
