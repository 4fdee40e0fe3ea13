package rapoo

import (
	"testing"

	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndAwaitSucceedsImmediately(t *testing.T) {
	ft := &fakeCtrl{getResponses: [][]byte{statusBlob(statusOK)}}
	req := make([]byte, blobSize)
	req[offReportID] = reportID

	resp, err := sendAndAwait(ft, req)
	require.NoError(t, err)
	assert.Equal(t, byte(statusOK), resp[statusOff])
	require.Len(t, ft.setCalls, 1)
}

func TestSendAndAwaitRetriesOnWaitThenSucceeds(t *testing.T) {
	ft := &fakeCtrl{getResponses: [][]byte{statusBlob(statusWait), statusBlob(statusWait), statusBlob(statusOK)}}
	req := make([]byte, blobSize)
	req[offReportID] = reportID

	_, err := sendAndAwait(ft, req)
	require.NoError(t, err)
}

func TestSendAndAwaitReturnsProtocolErrorOnUnknownStatus(t *testing.T) {
	ft := &fakeCtrl{getResponses: [][]byte{statusBlob(0xFF)}}
	req := make([]byte, blobSize)
	req[offReportID] = reportID

	_, err := sendAndAwait(ft, req)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}

func TestSendAndAwaitTimesOutWhenAlwaysWaiting(t *testing.T) {
	responses := make([][]byte, pollRetries)
	for i := range responses {
		responses[i] = statusBlob(statusWait)
	}
	ft := &fakeCtrl{getResponses: responses}
	req := make([]byte, blobSize)
	req[offReportID] = reportID

	_, err := sendAndAwait(ft, req)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.Timeout, ratbagerr.CodeOf(err))
}

func TestSendAndAwaitRejectsWrongLengthRequest(t *testing.T) {
	ft := &fakeCtrl{}
	_, err := sendAndAwait(ft, make([]byte, 10))
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}
