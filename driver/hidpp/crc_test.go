package hidpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRCCCITTChangesOnOneByteFlip(t *testing.T) {
	a := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	b := []byte{0x01, 0x02, 0xFF, 0x04, 0x05}
	assert.NotEqual(t, crcCCITT(a), crcCCITT(b))
}

func TestCRCCCITTDeterministic(t *testing.T) {
	data := []byte("onboard profile blob contents")
	assert.Equal(t, crcCCITT(data), crcCCITT(data))
}

func TestCRCCCITTEmptyIsSeed(t *testing.T) {
	assert.Equal(t, uint16(0xFFFF), crcCCITT(nil))
}
