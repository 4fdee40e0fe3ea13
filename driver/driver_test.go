package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ratbag/ratbag/devicedata"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

type fakeDriver struct {
	probeErr    error
	removeCalls int
	commitCalls int
	caps        Capabilities
}

func (f *fakeDriver) Probe(t *Target) (*ratmodel.Device, error) {
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	ident := ratmodel.Ident{Bus: t.Ident.Bus, Vendor: t.Ident.Vendor, Product: t.Ident.Product}
	dev := ratmodel.NewDevice(ident, 1, 1, 1, 1)
	_ = dev.SetActiveProfile(0)
	return dev, nil
}

func (f *fakeDriver) Remove(dev *ratmodel.Device) error { f.removeCalls++; return nil }
func (f *fakeDriver) Commit(dev *ratmodel.Device) error { f.commitCalls++; return nil }
func (f *fakeDriver) SetActiveProfile(dev *ratmodel.Device, index int) error {
	return dev.SetActiveProfile(index)
}
func (f *fakeDriver) Capabilities() Capabilities { return f.caps }

func TestRegisterAndGet(t *testing.T) {
	d := &fakeDriver{}
	Register("faketest1", d)

	got, ok := Get("faketest1")
	require.True(t, ok)
	assert.Same(t, d, got)
}

func TestIDsIsSorted(t *testing.T) {
	Register("zzzfaketest", &fakeDriver{})
	Register("aaafaketest", &fakeDriver{})

	ids := IDs()
	var az, zz int = -1, -1
	for i, id := range ids {
		if id == "aaafaketest" {
			az = i
		}
		if id == "zzzfaketest" {
			zz = i
		}
	}
	require.NotEqual(t, -1, az)
	require.NotEqual(t, -1, zz)
	assert.Less(t, az, zz)
}

func TestQueryCapabilities(t *testing.T) {
	d := &fakeDriver{caps: Capabilities{Macros: true}}
	Register("capstest", d)

	caps, ok := QueryCapabilities("capstest")
	require.True(t, ok)
	assert.True(t, caps.Macros)
}

func TestQueryCapabilitiesUnknownDriver(t *testing.T) {
	_, ok := QueryCapabilities("nonexistent-driver-xyz")
	assert.False(t, ok)
}

func TestProbeWiresRemoveFuncAndRunsSanityCheck(t *testing.T) {
	d := &fakeDriver{}
	Register("probetest", d)

	target := &Target{
		File:  &devicedata.File{Driver: "probetest"},
		Ident: devicedata.Ident{Bus: 3, Vendor: 1, Product: 2},
	}
	dev, err := Probe(target)
	require.NoError(t, err)
	require.NotNil(t, dev)

	h := ratmodel.NewHandle[*ratmodel.Device](dev)
	h.Release()
	assert.Equal(t, 1, d.removeCalls)
}

func TestProbePropagatesDriverError(t *testing.T) {
	d := &fakeDriver{probeErr: ratbagerr.ErrNoDevice("not mine")}
	Register("errtest", d)

	target := &Target{File: &devicedata.File{Driver: "errtest"}}
	_, err := Probe(target)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.NoDevice, ratbagerr.CodeOf(err))
}

func TestProbeUnknownDriverIsNoDevice(t *testing.T) {
	target := &Target{File: &devicedata.File{Driver: "totally-unregistered"}}
	_, err := Probe(target)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.NoDevice, ratbagerr.CodeOf(err))
}

func TestProbeRunsSanityCheckAndCallsRemoveOnFailure(t *testing.T) {
	badDriver := &fakeDriverNoActiveProfile{}
	Register("insane-driver", badDriver)

	target := &Target{File: &devicedata.File{Driver: "insane-driver"}}
	_, err := Probe(target)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.InvalidState, ratbagerr.CodeOf(err))
	assert.Equal(t, 1, badDriver.removeCalls)
}

type fakeDriverNoActiveProfile struct {
	removeCalls int
}

func (f *fakeDriverNoActiveProfile) Probe(t *Target) (*ratmodel.Device, error) {
	// No profile marked active: CheckSanity must reject this.
	return ratmodel.NewDevice(ratmodel.Ident{}, 1, 1, 1, 1), nil
}
func (f *fakeDriverNoActiveProfile) Remove(dev *ratmodel.Device) error { f.removeCalls++; return nil }
func (f *fakeDriverNoActiveProfile) Commit(dev *ratmodel.Device) error { return nil }
func (f *fakeDriverNoActiveProfile) SetActiveProfile(dev *ratmodel.Device, index int) error {
	return dev.SetActiveProfile(index)
}
