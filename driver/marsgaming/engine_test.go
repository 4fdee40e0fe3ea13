package marsgaming

import (
	"testing"

	"github.com/go-ratbag/ratbag/action"
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
	return fixedrecord.Layout{ReportID: reportID, NumResolutions: 1, NumButtons: 2, MaxMacroEvents: defaultMaxMacroEvent}
}

func TestDecodeVendorButtonsReportsMediaAndFireAsUnknown(t *testing.T) {
	l := testLayout()
	blob := make([]byte, l.ProfileSize())
	boff := headerLen + l.NumResolutions*resolutionEntryLen
	blob[boff], blob[boff+1] = buttonKindMedia, 0x09
	blob[boff+buttonEntryLen], blob[boff+buttonEntryLen+1] = buttonKindFire, 0x01

	buttons := []*ratmodel.Button{{Index: 0}, {Index: 1}}
	require.NoError(t, decodeVendorButtons(blob, l, buttons))

	assert.Equal(t, action.KindUnknown, buttons[0].Action.Kind)
	assert.Equal(t, action.KindUnknown, buttons[1].Action.Kind)
}

func TestDecodeVendorButtonsLeavesOrdinaryButtonsAlone(t *testing.T) {
	l := testLayout()
	blob := make([]byte, l.ProfileSize())
	boff := headerLen + l.NumResolutions*resolutionEntryLen
	blob[boff], blob[boff+1] = 1, 5 // buttonKindButton in fixedrecord's scheme

	buttons := []*ratmodel.Button{{Index: 0}, {Index: 1}}
	require.NoError(t, decodeVendorButtons(blob, l, buttons))

	assert.Equal(t, action.KindButton, buttons[0].Action.Kind)
	assert.Equal(t, 5, buttons[0].Action.ButtonNumber)
}

func TestCommitWritesDirtyProfilesOnly(t *testing.T) {
	l := testLayout()
	dev := ratmodel.NewDevice(ratmodel.Ident{}, 1, l.NumResolutions, l.NumButtons, 0)
	ft := &fakeTransport{}
	dev.DriverState = &engineState{transport: ft, layout: l}

	require.NoError(t, dev.Profiles()[0].Resolutions()[0].SetDPI(1000, 1000))

	e := &Engine{}
	require.NoError(t, e.Commit(dev))
	require.Len(t, ft.setCalls, 1)
	assert.False(t, dev.Profiles()[0].Dirty())
}

func TestRemoveClosesTransport(t *testing.T) {
	dev := ratmodel.NewDevice(ratmodel.Ident{}, 1, 1, 1, 0)
	ft := &fakeTransport{}
	dev.DriverState = &engineState{transport: ft}

	e := &Engine{}
	require.NoError(t, e.Remove(dev))
	assert.True(t, ft.closed)
}
