package openinput

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
	driver.Register("openinput", &Engine{})
}

// Engine implements driver.Driver for the Openinput protocol.
type Engine struct{}

type engineState struct {
	transport  ctrlTransport
	numButtons int
}

const (
	defaultProfileCount = 2
	defaultButtons      = 8
)

func maxButtons() int {
	return (longLen - buttonsOffset()) / buttonEntryLen
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

func readProfileFrame(t ctrlTransport, profile uint8) ([]byte, error) {
	frame := make([]byte, longLen)
	frame[offID] = longReportID
	frame[offPage] = pageProfile
	frame[offFunc] = funcRead
	frame[offProfileIndex] = profile
	return sendLongFrame(t, frame)
}

func writeProfileFrame(t ctrlTransport, frame []byte) error {
	frame[offID] = longReportID
	frame[offPage] = pageProfile
	frame[offFunc] = funcWrite
	_, err := sendLongFrame(t, frame)
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
			return hidtransport.HasReport(reports, longReportID)
		}) {
			transport = tr
			break
		}
		_ = tr.Close()
	}
	if transport == nil {
		return nil, ratbagerr.ErrNoDevice("no hidraw sibling exposes the openinput long report")
	}

	numButtons := intParam(t, "Buttons", defaultButtons)
	if cap := maxButtons(); numButtons > cap {
		numButtons = cap
	}
	st := &engineState{transport: transport, numButtons: numButtons}

	numProfiles := intParam(t, "Profiles", defaultProfileCount)
	dev := ratmodel.NewDevice(ratmodel.Ident{
		Bus:     t.Ident.Bus,
		Vendor:  t.Ident.Vendor,
		Product: t.Ident.Product,
	}, numProfiles, 1, numButtons, 0)
	dev.DriverState = st

	for _, p := range dev.Profiles() {
		frame, err := readProfileFrame(transport, uint8(p.Index))
		if err != nil {
			_ = transport.Close()
			return nil, err
		}
		decodeResolution(frame, p.Resolutions()[0])
		if err := decodeButtons(frame, p.Buttons()); err != nil {
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
		return ratbagerr.ErrInvalidState("device has no openinput engine state")
	}

	for _, p := range dev.Profiles() {
		if !p.Dirty() {
			continue
		}
		frame := make([]byte, longLen)
		frame[offProfileIndex] = byte(p.Index)
		encodeResolution(frame, p.Resolutions()[0])
		if err := encodeButtons(frame, p.Buttons()); err != nil {
			return err
		}
		if err := writeProfileFrame(st.transport, frame); err != nil {
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
		return ratbagerr.ErrInvalidState("device has no openinput engine state")
	}
	_, err := readProfileFrame(st.transport, uint8(index))
	return err
}

// Capabilities implements driver.CapabilityProvider.
func (e *Engine) Capabilities() driver.Capabilities {
	return driver.Capabilities{NamedProfiles: false, Macros: false}
}
