package hidpp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ftWith(id uint16, index uint8) *FeatureTable {
	return &FeatureTable{rows: []FeatureRow{{Index: index, ID: id}}}
}

func TestReadDPIListExplicitList(t *testing.T) {
	resp := make([]byte, 17)
	resp[0], resp[1] = 0x03, 0x20 // 800
	resp[2], resp[3] = 0x06, 0x40 // 1600
	resp[4], resp[5] = 0x09, 0x60 // 2400
	fw := &fakeWire{responses: [][]byte{append([]byte{ReportIDLong, 0x01, 3}, resp...)}}
	ft := ftWith(FeatureAdjustableDPI, 3)
	c := NewConn(fw, 0x01, nil)

	dr, err := ReadDPIList(c, ft, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint16{800, 1600, 2400}, dr.List)
}

func TestReadDPIListRange(t *testing.T) {
	resp := make([]byte, 17)
	step := uint16(50)
	marker := dpiRangeMarker | step
	resp[0], resp[1] = byte(marker>>8), byte(marker)
	resp[2], resp[3] = 0x00, 0x64 // min 100
	resp[4], resp[5] = 0x0F, 0xA0 // max 4000
	fw := &fakeWire{responses: [][]byte{append([]byte{ReportIDLong, 0x01, 3}, resp...)}}
	ft := ftWith(FeatureAdjustableDPI, 3)
	c := NewConn(fw, 0x01, nil)

	dr, err := ReadDPIList(c, ft, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(100), dr.Min)
	assert.Equal(t, uint16(4000), dr.Max)
	assert.Equal(t, uint16(50), dr.Step)
}

func TestReadAndWriteDPI(t *testing.T) {
	fw := &fakeWire{responses: [][]byte{
		{ReportIDShort, 0x01, 3, 0x03, 0x20, 0x03, 0x20},
	}}
	ft := ftWith(FeatureAdjustableDPI, 3)
	c := NewConn(fw, 0x01, nil)

	x, y, err := ReadDPI(c, ft, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(800), x)
	assert.Equal(t, uint16(800), y)

	fw.responses = [][]byte{append([]byte{ReportIDLong, 0x01, 3}, make([]byte, 17)...)}
	err = WriteDPI(c, ft, 0, 1600, 1600)
	require.NoError(t, err)
	assert.Equal(t, byte(0x06), fw.writes[1][5])
}

func TestDPIFeatureMissing(t *testing.T) {
	ft := &FeatureTable{}
	c := NewConn(&fakeWire{}, 0x01, nil)
	_, err := ReadFirmwareVersion(c, ft)
	require.Error(t, err)
	_, _, err = ReadDPI(c, ft, 0)
	require.Error(t, err)
	err = WriteDPI(c, ft, 0, 800, 800)
	require.Error(t, err)
}
