package holtek8

import (
	"testing"

	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolutions(n int) []*ratmodel.Resolution {
	out := make([]*ratmodel.Resolution, n)
	for i := range out {
		out[i] = &ratmodel.Resolution{Index: i}
	}
	return out
}

func newButtons(n int) []*ratmodel.Button {
	out := make([]*ratmodel.Button, n)
	for i := range out {
		out[i] = &ratmodel.Button{Index: i}
	}
	return out
}

func TestEncodeDecodeResolutionsRoundTrip(t *testing.T) {
	resolutions := newResolutions(2)
	resolutions[0].DPIX, resolutions[0].DPIY = 800, 800
	resolutions[1].DPIX, resolutions[1].DPIY = 1600, 3200

	encoded := encodeResolutions(resolutions)
	require.Len(t, encoded, 2*resolutionEntryLen)

	decoded := newResolutions(2)
	require.NoError(t, decodeResolutions(encoded, decoded))
	assert.Equal(t, uint16(800), decoded[0].DPIX)
	assert.Equal(t, uint16(800), decoded[0].DPIY)
	assert.Equal(t, uint16(1600), decoded[1].DPIX)
	assert.Equal(t, uint16(3200), decoded[1].DPIY)
}

func TestDecodeResolutionsRejectsShortBlock(t *testing.T) {
	err := decodeResolutions([]byte{1, 2, 3}, newResolutions(1))
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}

func TestEncodeDecodeButtonsRoundTrip(t *testing.T) {
	buttons := newButtons(3)
	buttons[0].Action = action.Button(2)
	buttons[1].Action = action.SpecialAction(action.SpecialDoubleClick)
	buttons[2].Action = action.None()

	encoded, err := encodeButtons(buttons)
	require.NoError(t, err)
	require.Len(t, encoded, 3*buttonEntryLen)

	decoded := newButtons(3)
	require.NoError(t, decodeButtons(encoded, decoded))
	assert.Equal(t, action.KindButton, decoded[0].Action.Kind)
	assert.Equal(t, 2, decoded[0].Action.ButtonNumber)
	assert.Equal(t, action.KindSpecial, decoded[1].Action.Kind)
	assert.Equal(t, action.SpecialDoubleClick, decoded[1].Action.SpecialTag)
	assert.Equal(t, action.KindNone, decoded[2].Action.Kind)
}

func TestEncodeButtonsRejectsMacroAction(t *testing.T) {
	buttons := newButtons(1)
	buttons[0].Action = action.Action{Kind: action.KindMacro}
	_, err := encodeButtons(buttons)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.Unsupported, ratbagerr.CodeOf(err))
}

func TestDecodeButtonEntryUnknownKindRoundTripsOpaquely(t *testing.T) {
	enc := [buttonEntryLen]byte{buttonKindUnknown, 0xAA, 0xBB, 0xCC}
	a := decodeButtonEntry(enc)
	assert.Equal(t, action.KindUnknown, a.Kind)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, a.RawVendorBytes)

	reenc, err := encodeButtonEntry(a)
	require.NoError(t, err)
	assert.Equal(t, enc, reenc)
}

func TestDecodeButtonsRejectsShortBlock(t *testing.T) {
	err := decodeButtons([]byte{1, 2, 3}, newButtons(1))
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}
