package roccat

import (
	"encoding/binary"
	"testing"

	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blobWithChecksum(body []byte) []byte {
	blob := make([]byte, len(body)+2)
	copy(blob, body)
	binary.LittleEndian.PutUint16(blob[len(body):], checksum(body))
	return blob
}

func TestReadProfileBlobVerifiesChecksum(t *testing.T) {
	body := []byte{profileReportID, 0, 0xAA, 0xBB}
	blob := blobWithChecksum(body)
	fc := &fakeCtrl{getResponses: [][]byte{
		readyFrame(0, statusReady), // sendCommand's poll
		blob,                       // the profile blob itself
	}}
	got, err := ReadProfileBlob(fc, 0, len(blob))
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestReadProfileBlobRejectsBadChecksum(t *testing.T) {
	blob := []byte{profileReportID, 0, 0xAA, 0xBB, 0x00, 0x00}
	fc := &fakeCtrl{getResponses: [][]byte{
		readyFrame(0, statusReady),
		blob,
	}}
	_, err := ReadProfileBlob(fc, 0, len(blob))
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}

func TestWriteProfileBlobStampsChecksumThenSelects(t *testing.T) {
	fc := &fakeCtrl{getResponses: [][]byte{readyFrame(1, statusReady)}}
	blob := []byte{profileReportID, 1, 0xAA, 0xBB, 0x00, 0x00}
	require.NoError(t, WriteProfileBlob(fc, 1, blob))

	require.Len(t, fc.setCalls, 2)
	// first SetFeature call is the blob itself with a freshly stamped checksum
	stamped := fc.setCalls[0]
	wantChecksum := checksum(blob[:len(blob)-2])
	assert.Equal(t, wantChecksum, binary.LittleEndian.Uint16(stamped[len(stamped)-2:]))
	// second is the command-register select
	assert.Equal(t, []byte{commandReportID, 1, whatWriteProfile}, fc.setCalls[1])
}
