package holtek8

import (
	"encoding/hex"
	"strconv"

	"github.com/go-ratbag/ratbag/driver"
	"github.com/go-ratbag/ratbag/hidtransport"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
	"github.com/go-ratbag/ratbag/ratmodel"
)

var _ frameTransport = (*hidtransport.Transport)(nil)

func init() {
	driver.Register("holtek8", &Engine{})
}

// Engine implements driver.Driver for the Holtek8 control-frame protocol
// (spec §4.6).
type Engine struct{}

type engineState struct {
	transport     frameTransport
	chunkSize     int
	pageSize      int
	maxMacroIndex int
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
	defaultChunkSize     = 64
	defaultPageSize      = 64
	defaultMaxMacroIndex = 7
	defaultProfileCount  = 5
	defaultResolutions   = 1
	defaultButtons       = 8
)

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
			return hidtransport.HasReport(reports, controlReportID)
		}) {
			transport = tr
			break
		}
		_ = tr.Close()
	}
	if transport == nil {
		return nil, ratbagerr.ErrNoDevice("no hidraw sibling exposes the holtek8 control report")
	}

	st := &engineState{
		transport:     transport,
		chunkSize:     intParam(t, "ChunkSize", defaultChunkSize),
		pageSize:      intParam(t, "PageSize", defaultPageSize),
		maxMacroIndex: intParam(t, "MaxMacroIndex", defaultMaxMacroIndex),
	}

	if pw := stringParam(t, "Password", ""); pw != "" {
		raw, err := hex.DecodeString(pw)
		if err != nil || len(raw) != 4 {
			_ = transport.Close()
			return nil, ratbagerr.ErrInvalidState("holtek8: malformed Password= parameter")
		}
		var password [4]byte
		copy(password[:], raw)
		if err := Authenticate(transport, password); err != nil {
			_ = transport.Close()
			return nil, err
		}
	}

	numProfiles := intParam(t, "Profiles", defaultProfileCount)
	numResolutions := intParam(t, "Resolutions", defaultResolutions)
	numButtons := intParam(t, "Buttons", defaultButtons)

	dev := ratmodel.NewDevice(ratmodel.Ident{
		Bus:     t.Ident.Bus,
		Vendor:  t.Ident.Vendor,
		Product: t.Ident.Product,
	}, numProfiles, numResolutions, numButtons, 0)
	dev.DriverState = st

	activeRaw, err := ReadChunked(transport, CmdReadActiveProfile, 1, st.chunkSize)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}
	activeIndex := int(activeRaw[0])

	rateRaw, err := ReadChunked(transport, CmdReadRate, 1, st.chunkSize)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}
	rateHz := int(rateRaw[0]) * 125

	for _, p := range dev.Profiles() {
		resData, err := ReadChunked(transport, CmdReadResolution, numResolutions*resolutionEntryLen, st.chunkSize)
		if err != nil {
			_ = transport.Close()
			return nil, err
		}
		if err := decodeResolutions(resData, p.Resolutions()); err != nil {
			_ = transport.Close()
			return nil, err
		}

		btnData, err := ReadChunked(transport, CmdReadButtonConfig, numButtons*buttonEntryLen, st.chunkSize)
		if err != nil {
			_ = transport.Close()
			return nil, err
		}
		if err := decodeButtons(btnData, p.Buttons()); err != nil {
			_ = transport.Close()
			return nil, err
		}

		p.ReportRate = rateHz
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

// Commit implements driver.Driver: writes back dirty resolution/button
// blocks for each dirty profile.
func (e *Engine) Commit(dev *ratmodel.Device) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok {
		return ratbagerr.ErrInvalidState("device has no holtek8 engine state")
	}

	for _, p := range dev.Profiles() {
		if !p.Dirty() {
			continue
		}
		if err := WriteChunked(st.transport, CmdReadResolution, encodeResolutions(p.Resolutions()), st.chunkSize); err != nil {
			return err
		}
		btnData, err := encodeButtons(p.Buttons())
		if err != nil {
			return err
		}
		if err := WriteChunked(st.transport, CmdReadButtonConfig, btnData, st.chunkSize); err != nil {
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
		return ratbagerr.ErrInvalidState("device has no holtek8 engine state")
	}
	return WriteChunked(st.transport, CmdReadActiveProfile, []byte{byte(index)}, st.chunkSize)
}

// Capabilities implements driver.CapabilityProvider.
func (e *Engine) Capabilities() driver.Capabilities {
	return driver.Capabilities{
		IndividualReportRate: false,
		SeparateXYDPI:        false,
		DisableResolution:    false,
		NamedProfiles:        false,
		DefaultProfile:       false,
		RGBEffects:           false,
		Macros:               true,
	}
}
