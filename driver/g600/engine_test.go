package g600

import (
	"testing"

	"github.com/go-ratbag/ratbag/driver/internal/fixedrecord"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	setCalls     [][]byte
	getResponses [][]byte
	closed       bool
}

func (f *fakeTransport) SetFeature(buf []byte) error {
	cp := append([]byte(nil), buf...)
	f.setCalls = append(f.setCalls, cp)
	return nil
}

func (f *fakeTransport) GetFeature(buf []byte) (int, error) {
	if len(f.getResponses) == 0 {
		return 0, ratbagerr.ErrIO("fakeTransport: no queued GetFeature response")
	}
	resp := f.getResponses[0]
	f.getResponses = f.getResponses[1:]
	n := copy(buf, resp)
	return n, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func testLayout() fixedrecord.Layout {
	return fixedrecord.Layout{ReportID: reportID, NumResolutions: 1, NumButtons: 2, MaxMacroEvents: 4}
}

func TestCommitWritesDirtyProfilesOnly(t *testing.T) {
	l := testLayout()
	dev := ratmodel.NewDevice(ratmodel.Ident{}, 1, l.NumResolutions, l.NumButtons, 0)
	ft := &fakeTransport{}
	dev.DriverState = &engineState{transport: ft, layout: l}

	require.NoError(t, dev.Profiles()[0].Resolutions()[0].SetDPI(800, 800))

	e := &Engine{}
	require.NoError(t, e.Commit(dev))
	require.Len(t, ft.setCalls, 1)
	assert.False(t, dev.Profiles()[0].Dirty())
}

func TestCommitSkipsCleanProfiles(t *testing.T) {
	l := testLayout()
	dev := ratmodel.NewDevice(ratmodel.Ident{}, 1, l.NumResolutions, l.NumButtons, 0)
	ft := &fakeTransport{}
	dev.DriverState = &engineState{transport: ft, layout: l}

	e := &Engine{}
	require.NoError(t, e.Commit(dev))
	assert.Empty(t, ft.setCalls)
}

func TestSetActiveProfileSelectsViaRead(t *testing.T) {
	l := testLayout()
	dev := ratmodel.NewDevice(ratmodel.Ident{}, 1, l.NumResolutions, l.NumButtons, 0)
	blob := make([]byte, l.ProfileSize())
	blob[0] = reportID
	ft := &fakeTransport{getResponses: [][]byte{blob}}
	dev.DriverState = &engineState{transport: ft, layout: l}

	e := &Engine{}
	require.NoError(t, e.SetActiveProfile(dev, 1))
	require.Len(t, ft.setCalls, 1)
	assert.Equal(t, []byte{reportID, 1}, ft.setCalls[0])
}

func TestRemoveClosesTransport(t *testing.T) {
	dev := ratmodel.NewDevice(ratmodel.Ident{}, 1, 1, 1, 0)
	ft := &fakeTransport{}
	dev.DriverState = &engineState{transport: ft}

	e := &Engine{}
	require.NoError(t, e.Remove(dev))
	assert.True(t, ft.closed)
}
