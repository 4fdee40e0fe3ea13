package openinput

import (
	"testing"

	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendLongFrameReturnsResponseOnSuccess(t *testing.T) {
	ft := &fakeCtrl{getResponses: [][]byte{okLongFrame()}}
	frame := make([]byte, longLen)
	frame[offID] = longReportID

	resp, err := sendLongFrame(ft, frame)
	require.NoError(t, err)
	assert.Equal(t, byte(pageProfile), resp[offPage])
}

func TestSendLongFrameTranslatesErrorFrame(t *testing.T) {
	ft := &fakeCtrl{getResponses: [][]byte{errorLongFrame(0x05)}}
	frame := make([]byte, longLen)
	frame[offID] = longReportID

	_, err := sendLongFrame(ft, frame)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.AccessDenied, ratbagerr.CodeOf(err))
}

func TestSendLongFrameUnmappedErrorFuncIsProtocolError(t *testing.T) {
	ft := &fakeCtrl{getResponses: [][]byte{errorLongFrame(0xEE)}}
	frame := make([]byte, longLen)
	frame[offID] = longReportID

	_, err := sendLongFrame(ft, frame)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}

func TestSendLongFrameRejectsWrongLength(t *testing.T) {
	ft := &fakeCtrl{}
	_, err := sendLongFrame(ft, make([]byte, 10))
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}

func TestSendShortFrameRejectsWrongLength(t *testing.T) {
	ft := &fakeCtrl{}
	_, err := sendShortFrame(ft, make([]byte, 10))
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}
