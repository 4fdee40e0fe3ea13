package ratlog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-ratbag/ratbag/ratlog"
)

func TestHexDump(t *testing.T) {
	assert.Equal(t, "10 ff 00", ratlog.HexDump([]byte{0x10, 0xff, 0x00}))
	assert.Equal(t, "", ratlog.HexDump(nil))
}

func TestRawLoggerNoWriterIsNoop(t *testing.T) {
	raw := ratlog.NewRaw(nil)
	assert.NotPanics(t, func() { raw.Log(true, []byte{1, 2, 3}) })
}

func TestRawLoggerDumpsDirectionAndBytes(t *testing.T) {
	var buf bytes.Buffer
	raw := ratlog.NewRaw(&buf)
	raw.Log(true, []byte{0x10, 0xff})
	raw.Log(false, []byte{0x11})

	out := buf.String()
	assert.Contains(t, out, "IN 2 bytes: 10 ff")
	assert.Contains(t, out, "OUT 1 bytes: 11")
}

func TestRawLoggerEmptyBufferIgnored(t *testing.T) {
	var buf bytes.Buffer
	raw := ratlog.NewRaw(&buf)
	raw.Log(true, nil)
	assert.Empty(t, buf.String())
}

func TestSinkDiscardDoesNotPanic(t *testing.T) {
	sink := ratlog.Discard()
	assert.NotPanics(t, func() {
		sink.Debugf("x=%d", 1)
		sink.Infof("y")
		sink.Errorf("z: %v", assert.AnError)
		sink.RawIn([]byte{1})
		sink.RawOut([]byte{2})
	})
}
