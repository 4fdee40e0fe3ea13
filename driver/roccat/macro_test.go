package roccat

import (
	"testing"

	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMacroBodyRoundTrip(t *testing.T) {
	events := []action.MacroEvent{
		{Type: action.KeyPressed, Keycode: 0x04},
		{Type: action.Wait, WaitMs: 12},
		{Type: action.KeyReleased, Keycode: 0x04},
	}
	body, err := encodeMacroBody(events)
	require.NoError(t, err)

	decoded, err := decodeMacroBody(body)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	assert.Equal(t, action.KeyPressed, decoded[0].Type)
	assert.Equal(t, action.Wait, decoded[1].Type)
	assert.Equal(t, 12, decoded[1].WaitMs)
	assert.Equal(t, action.KeyReleased, decoded[2].Type)
}

func TestEncodeMacroBodyRejectsOversizedMacro(t *testing.T) {
	events := make([]action.MacroEvent, macroBodyLen) // far more than fits when doubled + terminator
	for i := range events {
		events[i] = action.MacroEvent{Type: action.KeyPressed, Keycode: 0x04}
	}
	_, err := encodeMacroBody(events)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.OutOfSpace, ratbagerr.CodeOf(err))
}

func TestDecodeMacroBodyStopsAtTerminator(t *testing.T) {
	body := make([]byte, 8)
	body[0], body[1] = macroOpKeyDown, 0x04
	body[2], body[3] = macroOpEnd, 0x00
	body[4], body[5] = 0xFF, 0xFF // garbage past the terminator must be ignored
	decoded, err := decodeMacroBody(body)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
}

func TestDecodeMacroBodyRejectsUnknownOpcode(t *testing.T) {
	_, err := decodeMacroBody([]byte{0x7F, 0x00})
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}

func TestReadMacroBlobSelectsVerifiesAndDecodes(t *testing.T) {
	body := []byte{macroOpKeyDown, 0x04, macroOpEnd, 0x00}
	blob := make([]byte, MacroBlobSize)
	blob[0] = macroReportID
	copy(blob[macroHeaderLen:], body)
	stampChecksum(blob)

	fc := &fakeCtrl{getResponses: [][]byte{
		readyFrame(0, statusReady),
		blob,
	}}
	events, err := ReadMacroBlob(fc, 0, 2)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, action.KeyPressed, events[0].Type)
}

func TestWriteMacroBlobEncodesStampsAndSelects(t *testing.T) {
	fc := &fakeCtrl{getResponses: [][]byte{readyFrame(0, statusReady)}}
	events := []action.MacroEvent{{Type: action.KeyPressed, Keycode: 0x04}}
	require.NoError(t, WriteMacroBlob(fc, 0, 2, events))

	require.Len(t, fc.setCalls, 2)
	assert.Equal(t, []byte{commandReportID, 0, whatWriteMacro}, fc.setCalls[1])
	assert.Equal(t, byte(macroReportID), fc.setCalls[0][0])
	assert.Equal(t, byte(2), fc.setCalls[0][1])
}
