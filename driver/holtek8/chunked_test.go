package holtek8

import (
	"testing"

	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ackFor(bytesLeftVal uint16) []byte {
	arg := [6]byte{byte(bytesLeftVal >> 8), byte(bytesLeftVal)}
	return controlFrameBytes(0x00, arg)
}

func TestReadChunkedAssemblesFullReportsAndTrims(t *testing.T) {
	fw := &fakeFrame{
		getResponses: [][]byte{ackFor(0)},
		ackedReads: [][]byte{
			{1, 2, 3, 4},
			{5, 6, 0, 0},
		},
	}
	out, err := ReadChunked(fw, CmdReadResolution, 6, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, out)
}

func TestReadChunkedShortChunkIsIOError(t *testing.T) {
	fw := &fakeFrame{
		getResponses: [][]byte{ackFor(0)},
		ackedReads:   [][]byte{{1, 2}},
	}
	_, err := ReadChunked(fw, CmdReadResolution, 4, 4)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.IoError, ratbagerr.CodeOf(err))
}

func TestBytesLeftReadsBigEndianPair(t *testing.T) {
	ack := [controlFrameLen]byte{0, 0x01, 0x02, 0, 0, 0, 0, 0}
	assert.Equal(t, uint16(0x0102), bytesLeft(ack))
}

func TestPollBytesLeftSucceedsWhenValueMatches(t *testing.T) {
	fw := &fakeFrame{getResponses: [][]byte{ackFor(5)}}
	require.NoError(t, pollBytesLeft(fw, 5))
}

func TestPollBytesLeftTimesOutAfterRetries(t *testing.T) {
	responses := make([][]byte, pollRetries)
	for i := range responses {
		responses[i] = ackFor(999)
	}
	fw := &fakeFrame{getResponses: responses}
	err := pollBytesLeft(fw, 0)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.IoError, ratbagerr.CodeOf(err))
}

func TestWriteChunkedPollsWritesAndFinalizes(t *testing.T) {
	total := 6
	fw := &fakeFrame{
		getResponses: [][]byte{
			ackFor(uint16(total)), // poll before first chunk
			ackFor(2),             // poll before second chunk
			ackFor(0),             // final poll
		},
	}
	data := []byte{1, 2, 3, 4, 5, 6}
	require.NoError(t, WriteChunked(fw, CmdReadResolution, data, 4))

	// sendControl for the write-total frame, then two data writes.
	require.Len(t, fw.setCalls, 1)
	assert.Equal(t, writeCommand(CmdReadResolution), fw.setCalls[0][1])

	require.Len(t, fw.writeCalls, 2)
	assert.Equal(t, []byte{0, 1, 2, 3, 4}, fw.writeCalls[0])
	assert.Equal(t, []byte{0, 5, 6, 0, 0}, fw.writeCalls[1])
}
