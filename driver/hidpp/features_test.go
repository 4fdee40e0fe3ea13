package hidpp

import (
	"testing"

	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallIDPacksFunctionAndSoftware(t *testing.T) {
	assert.Equal(t, byte(0x31), callID(3, 1))
	assert.Equal(t, byte(0xF0), callID(0xFF, 0)) // function id's high nibble shifts out of the byte
}

func TestGetFeatureIndexReturnsIndex(t *testing.T) {
	fw := &fakeWire{responses: [][]byte{
		{ReportIDShort, 0x01, rootFeatureIndex, 0, 0x07, 0, 0},
	}}
	c := NewConn(fw, 0x01, nil)

	idx, err := getFeatureIndex(c, FeatureAdjustableDPI)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x07), idx)

	require.Len(t, fw.writes, 1)
	assert.Equal(t, byte(rootFeatureIndex), fw.writes[0][2])
	assert.Equal(t, byte(FeatureAdjustableDPI>>8), fw.writes[0][4])
	assert.Equal(t, byte(FeatureAdjustableDPI), fw.writes[0][5])
}

func TestGetFeatureIndexUnsupportedWhenZero(t *testing.T) {
	fw := &fakeWire{responses: [][]byte{
		{ReportIDShort, 0x01, rootFeatureIndex, 0, 0, 0, 0},
	}}
	c := NewConn(fw, 0x01, nil)

	_, err := getFeatureIndex(c, FeatureRGBEffects)
	require.Error(t, err)
	assert.Equal(t, ratbagerr.Unsupported, ratbagerr.CodeOf(err))
}

func TestBuildFeatureTableEnumeratesAllRows(t *testing.T) {
	fw := &fakeWire{responses: [][]byte{
		// getFeatureIndex(FEATURE_SET) -> index 1
		{ReportIDShort, 0x01, rootFeatureIndex, 0, 1, 0, 0},
		// FEATURE_SET.getCount() -> 2 more features
		{ReportIDShort, 0x01, 1, 2, 0, 0, 0},
		// FEATURE_SET.getFeatureID(1) -> DEVICE_INFO, version 1
		{ReportIDShort, 0x01, 1, byte(FeatureDeviceInfo >> 8), byte(FeatureDeviceInfo), 0, 1},
		// FEATURE_SET.getFeatureID(2) -> ADJUSTABLE_DPI, version 2
		{ReportIDShort, 0x01, 1, byte(FeatureAdjustableDPI >> 8), byte(FeatureAdjustableDPI), 0, 2},
	}}
	c := NewConn(fw, 0x01, nil)

	ft, err := BuildFeatureTable(c)
	require.NoError(t, err)

	rows := ft.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, FeatureRoot, rows[0].ID)
	assert.Equal(t, uint8(rootFeatureIndex), rows[0].Index)
	assert.Equal(t, FeatureFeatureSet, rows[1].ID)
	assert.Equal(t, uint8(1), rows[1].Index)
	assert.Equal(t, FeatureDeviceInfo, rows[2].ID)
	assert.Equal(t, FeatureAdjustableDPI, rows[3].ID)
	assert.Equal(t, uint8(2), rows[3].Index)

	idx, ok := ft.Index(FeatureAdjustableDPI)
	assert.True(t, ok)
	assert.Equal(t, uint8(2), idx)
	assert.True(t, ft.Has(FeatureDeviceInfo))
	assert.False(t, ft.Has(FeatureReportRate))
}

func TestBuildFeatureTableSkipsZeroIDRows(t *testing.T) {
	fw := &fakeWire{responses: [][]byte{
		{ReportIDShort, 0x01, rootFeatureIndex, 0, 1, 0, 0},
		{ReportIDShort, 0x01, 1, 1, 0, 0, 0},
		{ReportIDShort, 0x01, 1, 0, 0, 0, 0}, // reserved/absent slot
	}}
	c := NewConn(fw, 0x01, nil)

	ft, err := BuildFeatureTable(c)
	require.NoError(t, err)
	assert.Len(t, ft.Rows(), 2)
}

func TestBuildFeatureTablePropagatesLookupFailure(t *testing.T) {
	fw := &fakeWire{}
	c := NewConn(fw, 0x01, nil)

	_, err := BuildFeatureTable(c)
	require.Error(t, err)
}
