package etekcity

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

func TestCommitRejectsOverLongMacroWithoutWriting(t *testing.T) {
	l := testLayout()
	dev := ratmodel.NewDevice(ratmodel.Ident{}, 1, l.NumResolutions, l.NumButtons, 0)
	ft := &fakeTransport{}
	dev.DriverState = &engineState{transport: ft, layout: l}

	events := make([]action.MacroEvent, 51)
	for i := range events {
		events[i] = action.MacroEvent{Type: action.KeyPressed, Keycode: 0x04}
	}
	macroAction, err := action.Macro(events)
	require.NoError(t, err)
	dev.Profiles()[0].Buttons()[0].SetAction(macroAction)

	e := &Engine{}
	err = e.Commit(dev)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.Unsupported, ratbagerr.CodeOf(err))
	assert.Empty(t, ft.setCalls)
}

func TestCommitWritesDirtyProfilesOnly(t *testing.T) {
	l := testLayout()
	dev := ratmodel.NewDevice(ratmodel.Ident{}, 1, l.NumResolutions, l.NumButtons, 0)
	ft := &fakeTransport{}
	dev.DriverState = &engineState{transport: ft, layout: l}

	require.NoError(t, dev.Profiles()[0].Resolutions()[0].SetDPI(1600, 1600))

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
