package openrazer

import (
	"testing"

	"github.com/go-ratbag/ratbag/devicedata"
	"github.com/go-ratbag/ratbag/driver"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDevice(fb *fakeBroker) *ratmodel.Device {
	dev := ratmodel.NewDevice(ratmodel.Ident{}, 1, 1, 0, 2)
	dev.Profiles()[0].Leds()[0].Type = ratmodel.LedLogo
	dev.Profiles()[0].Leds()[1].Type = ratmodel.LedWheel
	dev.DriverState = &engineState{broker: fb, objectPath: daemonPath}
	return dev
}

func TestProbeWithoutSessionBusReturnsNoDevice(t *testing.T) {
	f := &devicedata.File{Driver: "openrazer"}
	_, err := (&Engine{}).Probe(&driver.Target{File: f})
	require.Error(t, err)
	assert.Equal(t, ratbagerr.NoDevice, ratbagerr.CodeOf(err))
}

func TestCommitCallsSetDPIForDirtyResolution(t *testing.T) {
	fb := &fakeBroker{}
	dev := newTestDevice(fb)
	require.NoError(t, dev.Profiles()[0].Resolutions()[0].SetDPI(1600, 800))

	require.NoError(t, (&Engine{}).Commit(dev))

	require.Len(t, fb.calls, 1)
	assert.Equal(t, "setDPI", fb.calls[0].method)
	assert.Equal(t, []any{int32(1600), int32(800)}, fb.calls[0].args)
	assert.False(t, dev.Profiles()[0].Dirty())
}

func TestCommitCallsSetPollRateWhenRateDirty(t *testing.T) {
	fb := &fakeBroker{}
	dev := newTestDevice(fb)
	dev.Profiles()[0].SetReportRate(1000)

	require.NoError(t, (&Engine{}).Commit(dev))

	require.Len(t, fb.calls, 1)
	assert.Equal(t, "setPollRate", fb.calls[0].method)
	assert.Equal(t, []any{int32(1000)}, fb.calls[0].args)
}

func TestCommitLedOffCallsBrightnessZero(t *testing.T) {
	fb := &fakeBroker{}
	dev := newTestDevice(fb)
	logo := dev.Profiles()[0].Leds()[0]
	logo.SetMode(ratmodel.LedModeOff)

	require.NoError(t, (&Engine{}).Commit(dev))

	require.Len(t, fb.calls, 1)
	assert.Equal(t, "setLogoBrightness", fb.calls[0].method)
	assert.Equal(t, []any{uint8(0)}, fb.calls[0].args)
}

func TestCommitLedOnCallsStaticWithColor(t *testing.T) {
	fb := &fakeBroker{}
	dev := newTestDevice(fb)
	wheel := dev.Profiles()[0].Leds()[1]
	wheel.SetMode(ratmodel.LedModeOn)
	wheel.SetColor(ratmodel.RGBColor{R: 1, G: 2, B: 3})

	require.NoError(t, (&Engine{}).Commit(dev))

	require.Len(t, fb.calls, 1)
	assert.Equal(t, "setScrollStatic", fb.calls[0].method)
	assert.Equal(t, []any{uint8(1), uint8(2), uint8(3)}, fb.calls[0].args)
}

func TestCommitLedCycleCallsSpectrumWithNoArgs(t *testing.T) {
	fb := &fakeBroker{}
	dev := newTestDevice(fb)
	logo := dev.Profiles()[0].Leds()[0]
	logo.SetMode(ratmodel.LedModeCycle)

	require.NoError(t, (&Engine{}).Commit(dev))

	require.Len(t, fb.calls, 1)
	assert.Equal(t, "setLogoSpectrum", fb.calls[0].method)
	assert.Empty(t, fb.calls[0].args)
}

func TestSetActiveProfileIsNoOp(t *testing.T) {
	fb := &fakeBroker{}
	dev := newTestDevice(fb)

	require.NoError(t, (&Engine{}).SetActiveProfile(dev, 0))
	assert.Empty(t, fb.calls)
}

func TestRemoveClosesBroker(t *testing.T) {
	fb := &fakeBroker{}
	dev := newTestDevice(fb)

	require.NoError(t, (&Engine{}).Remove(dev))
	assert.True(t, fb.closed)
}

func TestCapabilities(t *testing.T) {
	caps := (&Engine{}).Capabilities()
	assert.False(t, caps.Macros)
	assert.False(t, caps.NamedProfiles)
}
