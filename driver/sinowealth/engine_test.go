package sinowealth

import (
	"testing"

	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDevice(numResolutions, numButtons int) *ratmodel.Device {
	return ratmodel.NewDevice(ratmodel.Ident{}, 1, numResolutions, numButtons, 0)
}

func TestCommitSkipsWhenNothingDirty(t *testing.T) {
	dev := newTestDevice(1, 1)
	fc := &fakeConfig{}
	dev.DriverState = &engineState{transport: fc, reportID: ConfigReportPrimary, model: SensorPMW3360, numResolutions: 1}

	e := &Engine{}
	require.NoError(t, e.Commit(dev))
	assert.Empty(t, fc.getResponses)
	assert.Empty(t, fc.setCalls)
}

func TestCommitReReadsPatchesAndWritesBack(t *testing.T) {
	dev := newTestDevice(1, 1)
	blob := testBlob(150, ConfigReportPrimary, 0x01)
	fc := &fakeConfig{getResponses: [][]byte{blob}}
	dev.DriverState = &engineState{transport: fc, reportID: ConfigReportPrimary, model: SensorPMW3360, numResolutions: 1}

	p := dev.Profiles()[0]
	p.SetReportRate(500)
	p.Buttons()[0].SetAction(action.Button(4))

	e := &Engine{}
	require.NoError(t, e.Commit(dev))

	require.Len(t, fc.setCalls, 1)
	written := fc.setCalls[0]
	assert.Equal(t, byte(0x03), written[offsetReportRate])
	assert.False(t, p.Dirty())
}

func TestSetActiveProfileRejectsNonZeroIndex(t *testing.T) {
	dev := newTestDevice(1, 1)
	e := &Engine{}
	err := e.SetActiveProfile(dev, 1)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.Unsupported, ratbagerr.CodeOf(err))
}

func TestSetActiveProfileAcceptsIndexZero(t *testing.T) {
	dev := newTestDevice(1, 1)
	e := &Engine{}
	assert.NoError(t, e.SetActiveProfile(dev, 0))
}

func TestRemoveClosesTransport(t *testing.T) {
	dev := newTestDevice(1, 1)
	fc := &fakeConfig{}
	dev.DriverState = &engineState{transport: fc}

	e := &Engine{}
	require.NoError(t, e.Remove(dev))
	assert.True(t, fc.closed)
}
