package holtek8

import (
	"testing"

	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumWrapsModulo256(t *testing.T) {
	arg := [6]byte{1, 2, 3, 4, 5, 6}
	got := checksum(0x84, arg)
	want := byte(0xFF - 0x84 - 1 - 2 - 3 - 4 - 5 - 6)
	assert.Equal(t, want, got)
}

func TestBuildFrameLayout(t *testing.T) {
	arg := [6]byte{9, 8, 7, 6, 5, 4}
	frame := buildFrame(0x82, arg)
	assert.Equal(t, byte(0x82), frame[0])
	assert.Equal(t, arg[:], frame[1:7])
	assert.Equal(t, checksum(0x82, arg), frame[7])
}

func TestWriteCommandClearsReadBit(t *testing.T) {
	assert.Equal(t, byte(0x04), writeCommand(CmdReadResolution))
	assert.Equal(t, byte(0x02), writeCommand(CmdReadActiveProfile))
}

func TestIsDangerousFlagsKnownCombinations(t *testing.T) {
	assert.True(t, isDangerous(0x0E, [6]byte{51}))
	assert.True(t, isDangerous(0x0F, [6]byte{200}))
	assert.False(t, isDangerous(0x0E, [6]byte{50}))
	assert.False(t, isDangerous(0x84, [6]byte{200}))
}

func TestSendControlRefusesDangerousCombination(t *testing.T) {
	fw := &fakeFrame{}
	err := sendControl(fw, 0x0E, [6]byte{99})
	require.Error(t, err)
	assert.Equal(t, ratbagerr.InvalidArgument, ratbagerr.CodeOf(err))
	assert.Empty(t, fw.setCalls)
}

func TestSendControlWritesReportIDAndFrame(t *testing.T) {
	fw := &fakeFrame{}
	arg := [6]byte{1, 0, 0, 0, 0, 0}
	require.NoError(t, sendControl(fw, CmdReadActiveProfile, arg))
	require.Len(t, fw.setCalls, 1)
	got := fw.setCalls[0]
	assert.Equal(t, byte(controlReportID), got[0])
	assert.Equal(t, byte(CmdReadActiveProfile), got[1])
}

func TestReadControlAckShortReadIsIOError(t *testing.T) {
	fw := &fakeFrame{getResponses: [][]byte{{0x00, 0x01}}}
	_, err := readControlAck(fw)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.IoError, ratbagerr.CodeOf(err))
}

func TestAuthenticateSucceedsOnMatchingEcho(t *testing.T) {
	password := [4]byte{0xDE, 0xAD, 0xBE, 0xEF}
	ack := controlFrameBytes(0x00, [6]byte{password[0], password[1], password[2], password[3], 0, 0})
	fw := &fakeFrame{getResponses: [][]byte{ack}}
	assert.NoError(t, Authenticate(fw, password))
}

func TestAuthenticateFailsOnMismatchedEcho(t *testing.T) {
	password := [4]byte{0xDE, 0xAD, 0xBE, 0xEF}
	ack := controlFrameBytes(0x00, [6]byte{0, 0, 0, 0, 0, 0})
	fw := &fakeFrame{getResponses: [][]byte{ack}}
	err := Authenticate(fw, password)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.AccessDenied, ratbagerr.CodeOf(err))
}

func TestDrainStaleInputStopsOnFirstError(t *testing.T) {
	fw := &fakeFrame{}
	drainStaleInput(fw, 8)
}

func TestDrainStaleInputConsumesQueuedReports(t *testing.T) {
	fw := &fakeFrame{readResponses: [][]byte{
		make([]byte, 8),
		make([]byte, 8),
	}}
	drainStaleInput(fw, 8)
	assert.Empty(t, fw.readResponses)
}
