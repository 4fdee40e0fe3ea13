package rapoo

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
	driver.Register("rapoo", &Engine{})
}

// Engine implements driver.Driver for the Rapoo protocol.
type Engine struct{}

type engineState struct {
	transport  ctrlTransport
	numButtons int
	dpiList    []uint16
}

const (
	defaultProfileCount = 1
	defaultButtons      = 6
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

// dpiListParam parses the Driver/rapoo.DpiList device-data parameter
// (spec §4.2) into the ladder decodeResolution/encodeResolution index
// into.
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

func readProfileBlob(t ctrlTransport, profile uint8) ([]byte, error) {
	req := make([]byte, blobSize)
	req[offReportID] = reportID
	req[offProfile] = profile
	return sendAndAwait(t, req)
}

func writeProfileBlob(t ctrlTransport, blob []byte) error {
	_, err := sendAndAwait(t, blob)
	return err
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
		return nil, ratbagerr.ErrNoDevice("no hidraw sibling exposes the rapoo status report")
	}

	numButtons := intParam(t, "Buttons", defaultButtons)
	if cap := buttonsCapacity(); numButtons > cap {
		numButtons = cap
	}
	dpiList := dpiListParam(t, "DpiList")
	st := &engineState{transport: transport, numButtons: numButtons, dpiList: dpiList}

	numProfiles := intParam(t, "Profiles", defaultProfileCount)
	dev := ratmodel.NewDevice(ratmodel.Ident{
		Bus:     t.Ident.Bus,
		Vendor:  t.Ident.Vendor,
		Product: t.Ident.Product,
	}, numProfiles, 1, numButtons, 0)
	dev.DriverState = st

	for _, p := range dev.Profiles() {
		blob, err := readProfileBlob(transport, uint8(p.Index))
		if err != nil {
			_ = transport.Close()
			return nil, err
		}
		decodeResolution(blob, dpiList, p.Resolutions()[0])
		if err := decodeButtons(blob, p.Buttons()); err != nil {
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
		return ratbagerr.ErrInvalidState("device has no rapoo engine state")
	}

	for _, p := range dev.Profiles() {
		if !p.Dirty() {
			continue
		}
		blob := make([]byte, blobSize)
		blob[offReportID] = reportID
		blob[offProfile] = byte(p.Index)
		if err := encodeResolution(blob, st.dpiList, p.Resolutions()[0]); err != nil {
			return err
		}
		if err := encodeButtons(blob, p.Buttons()); err != nil {
			return err
		}
		if err := writeProfileBlob(st.transport, blob); err != nil {
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
		return ratbagerr.ErrInvalidState("device has no rapoo engine state")
	}
	_, err := readProfileBlob(st.transport, uint8(index))
	return err
}

// Capabilities implements driver.CapabilityProvider.
func (e *Engine) Capabilities() driver.Capabilities {
	return driver.Capabilities{NamedProfiles: false, Macros: false}
}
