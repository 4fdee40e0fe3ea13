package roccat

import (
	"strconv"

	"github.com/go-ratbag/ratbag/driver"
	"github.com/go-ratbag/ratbag/hidtransport"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
	"github.com/go-ratbag/ratbag/ratmodel"
)

var _ ctrlTransport = (*hidtransport.Transport)(nil)

func init() {
	driver.Register("roccat", &Engine{})
}

// Engine implements driver.Driver for the Roccat command-register protocol
// (spec §4.7).
type Engine struct{}

type engineState struct {
	transport      ctrlTransport
	numResolutions int
	numButtons     int
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
	defaultProfileCount = 5
	defaultResolutions  = 1
	defaultButtons      = 8
)

// profileBlobSize computes the fixed profile report size for a given
// resolution/button count: header + DPI entries + button entries +
// trailing checksum word.
func profileBlobSize(numResolutions, numButtons int) int {
	return profileHeaderLen + numResolutions*dpiEntryLen + numButtons*buttonEntryLen + 2
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
			return hidtransport.HasReport(reports, commandReportID)
		}) {
			transport = tr
			break
		}
		_ = tr.Close()
	}
	if transport == nil {
		return nil, ratbagerr.ErrNoDevice("no hidraw sibling exposes the roccat command register")
	}

	numProfiles := intParam(t, "Profiles", defaultProfileCount)
	numResolutions := intParam(t, "Resolutions", defaultResolutions)
	numButtons := intParam(t, "Buttons", defaultButtons)

	st := &engineState{
		transport:      transport,
		numResolutions: numResolutions,
		numButtons:     numButtons,
	}

	dev := ratmodel.NewDevice(ratmodel.Ident{
		Bus:     t.Ident.Bus,
		Vendor:  t.Ident.Vendor,
		Product: t.Ident.Product,
	}, numProfiles, numResolutions, numButtons, 0)
	dev.DriverState = st

	blobSize := profileBlobSize(numResolutions, numButtons)
	for _, p := range dev.Profiles() {
		blob, err := ReadProfileBlob(transport, uint8(p.Index), blobSize)
		if err != nil {
			_ = transport.Close()
			return nil, err
		}
		body := blob[profileHeaderLen : len(blob)-2]
		dpiBody := body[:numResolutions*dpiEntryLen]
		btnBody := body[numResolutions*dpiEntryLen:]
		if err := decodeResolutions(dpiBody, p.Resolutions()); err != nil {
			_ = transport.Close()
			return nil, err
		}
		if err := decodeButtons(btnBody, p.Buttons()); err != nil {
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

// Commit implements driver.Driver: re-encodes each dirty profile's
// resolution/button block into a fresh profile blob and writes it back.
func (e *Engine) Commit(dev *ratmodel.Device) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok {
		return ratbagerr.ErrInvalidState("device has no roccat engine state")
	}

	blobSize := profileBlobSize(st.numResolutions, st.numButtons)
	for _, p := range dev.Profiles() {
		if !p.Dirty() {
			continue
		}
		blob := make([]byte, blobSize)
		blob[0] = profileReportID
		blob[1] = byte(p.Index)
		dpiBody := encodeResolutions(p.Resolutions())
		btnBody, err := encodeButtons(p.Buttons())
		if err != nil {
			return err
		}
		copy(blob[profileHeaderLen:], dpiBody)
		copy(blob[profileHeaderLen+len(dpiBody):], btnBody)
		if err := WriteProfileBlob(st.transport, uint8(p.Index), blob); err != nil {
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
		return ratbagerr.ErrInvalidState("device has no roccat engine state")
	}
	return sendCommand(st.transport, uint8(index), whatSelectActive)
}

// Capabilities implements driver.CapabilityProvider.
func (e *Engine) Capabilities() driver.Capabilities {
	return driver.Capabilities{
		NamedProfiles: false,
		Macros:        true,
	}
}
