package sinowealth

import (
	"testing"

	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigBlobAcceptsLengthWithinRange(t *testing.T) {
	fc := &fakeConfig{getResponses: [][]byte{testBlob(150, ConfigReportPrimary, 0x03)}}
	blob, err := ReadConfigBlob(fc, ConfigReportPrimary)
	require.NoError(t, err)
	assert.Len(t, blob, 150)
}

func TestReadConfigBlobRejectsLengthOutsideRange(t *testing.T) {
	fc := &fakeConfig{getResponses: [][]byte{testBlob(100, ConfigReportPrimary, 0x03)}}
	_, err := ReadConfigBlob(fc, ConfigReportPrimary)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}

func TestWriteConfigBlobStampsWriteLenToSizeMinusHeader(t *testing.T) {
	fc := &fakeConfig{}
	blob := make([]byte, 77)
	require.NoError(t, WriteConfigBlob(fc, blob))
	require.Len(t, fc.setCalls, 1)
	got := fc.setCalls[0]
	assert.Equal(t, byte(77-headerLen), got[offsetWriteLen])
	assert.Equal(t, byte(configCmd), got[offsetCmd])
}

func TestWriteConfigBlobRejectsBlobShorterThanHeader(t *testing.T) {
	fc := &fakeConfig{}
	err := WriteConfigBlob(fc, make([]byte, 4))
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}

func TestWriteConfigBlobLengthArithmeticFor77ByteBlob(t *testing.T) {
	blob := make([]byte, 77)
	require.NoError(t, WriteConfigBlob(&fakeConfig{}, blob))
	assert.Equal(t, byte(69), blob[offsetWriteLen])
}
