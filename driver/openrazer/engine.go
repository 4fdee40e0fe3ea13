package openrazer

import (
	"strconv"

	"github.com/go-ratbag/ratbag/driver"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

func init() {
	driver.Register("openrazer", &Engine{})
}

// Engine implements driver.Driver for the Openrazer broker-delegate
// protocol.
type Engine struct{}

type engineState struct {
	broker     broker
	objectPath string
}

const defaultProfileCount = 1

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

// Probe implements driver.Driver. Unlike every other engine in this
// repo, Openrazer never opens a hidraw node: the daemon owns the
// physical transport, so the "device" this engine exposes is whatever
// object path the device-data file names.
func (e *Engine) Probe(t *driver.Target) (*ratmodel.Device, error) {
	objectPath := stringParam(t, "ObjectPath", daemonPath)
	br, err := connectBroker(objectPath)
	if err != nil {
		return nil, err
	}

	st := &engineState{broker: br, objectPath: objectPath}

	numProfiles := intParam(t, "Profiles", defaultProfileCount)
	numResolutions := intParam(t, "Resolutions", 1)
	numButtons := intParam(t, "Buttons", 0)
	numLeds := intParam(t, "Leds", 2)

	dev := ratmodel.NewDevice(ratmodel.Ident{
		Bus:     t.Ident.Bus,
		Vendor:  t.Ident.Vendor,
		Product: t.Ident.Product,
	}, numProfiles, numResolutions, numButtons, numLeds)
	dev.DriverState = st

	for i, l := range dev.Profiles()[0].Leds() {
		if i == 0 {
			l.Type = ratmodel.LedLogo
		} else {
			l.Type = ratmodel.LedWheel
		}
	}

	return dev, nil
}

// Remove implements driver.Driver.
func (e *Engine) Remove(dev *ratmodel.Device) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok || st.broker == nil {
		return nil
	}
	return st.broker.Close()
}

// Commit implements driver.Driver. Every mutation is pushed straight to
// the daemon as a named method call; there is no on-device profile store
// to flush, so a dirty Profile's children are translated one at a time.
func (e *Engine) Commit(dev *ratmodel.Device) error {
	st, ok := dev.DriverState.(*engineState)
	if !ok {
		return ratbagerr.ErrInvalidState("device has no openrazer engine state")
	}

	for _, p := range dev.Profiles() {
		if !p.Dirty() {
			continue
		}
		for _, r := range p.Resolutions() {
			if !r.Dirty() {
				continue
			}
			if err := st.broker.Call("setDPI", int32(r.DPIX), int32(r.DPIY)); err != nil {
				return wrapBrokerErr(err)
			}
		}
		if p.RateDirty() {
			if err := st.broker.Call("setPollRate", int32(p.ReportRate)); err != nil {
				return wrapBrokerErr(err)
			}
		}
		for _, l := range p.Leds() {
			if !l.Dirty() {
				continue
			}
			if err := commitLed(st.broker, l); err != nil {
				return err
			}
		}
		p.ClearDirty()
	}
	return nil
}

// ledPrefix names the method-name prefix for the two LED groups
// Openrazer's daemon exposes (spec §4.7: "set<Logo|Scroll>{...}").
// Any other LedType has nothing to delegate to and is left alone.
func ledPrefix(t ratmodel.LedType) (string, bool) {
	switch t {
	case ratmodel.LedLogo:
		return "Logo", true
	case ratmodel.LedWheel:
		return "Scroll", true
	default:
		return "", false
	}
}

func commitLed(b broker, l *ratmodel.Led) error {
	prefix, ok := ledPrefix(l.Type)
	if !ok {
		return nil
	}
	switch l.Mode {
	case ratmodel.LedModeOff:
		return wrapBrokerErr(b.Call("set" + prefix + "Brightness", uint8(0)))
	case ratmodel.LedModeOn:
		return wrapBrokerErr(b.Call("set"+prefix+"Static", l.Color.R, l.Color.G, l.Color.B))
	case ratmodel.LedModeBreathing:
		return wrapBrokerErr(b.Call("set"+prefix+"Pulsate", l.Color.R, l.Color.G, l.Color.B))
	case ratmodel.LedModeCycle:
		return wrapBrokerErr(b.Call("set" + prefix + "Spectrum"))
	default:
		return ratbagerr.ErrUnsupported("openrazer: unrecognized led mode")
	}
}

func wrapBrokerErr(err error) error {
	if err == nil {
		return nil
	}
	return ratbagerr.ErrIO("openrazer: broker call failed: " + err.Error())
}

// SetActiveProfile implements driver.Driver. Openrazer has no on-device
// profile store — every commit already applies live — so switching the
// "active profile" is a no-op at the transport layer, per the device's
// own real-world behavior.
func (e *Engine) SetActiveProfile(dev *ratmodel.Device, index int) error {
	_, ok := dev.DriverState.(*engineState)
	if !ok {
		return ratbagerr.ErrInvalidState("device has no openrazer engine state")
	}
	return nil
}

// Capabilities implements driver.CapabilityProvider.
func (e *Engine) Capabilities() driver.Capabilities {
	return driver.Capabilities{NamedProfiles: false, Macros: false}
}
