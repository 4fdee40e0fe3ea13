package hidtransport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ratbag/ratbag/hidtransport"
)

// Minimal boot-mouse report descriptor: usage page generic desktop, usage
// mouse, application collection (implicit report 0), then a REPORT_ID 1
// inside to exercise the explicit-id path.
func buildDescriptor() []byte {
	return []byte{
		0x05, 0x01, // USAGE_PAGE (Generic Desktop) = 1
		0x09, 0x02, // USAGE (Mouse) = 2
		0xA1, 0x01, // COLLECTION (Application)
		0x85, 0x01, //   REPORT_ID (1)
		0x05, 0x09, //   USAGE_PAGE (Button) = 9
		0x09, 0x01, //   USAGE (Button 1)
		0xC0, // END_COLLECTION
	}
}

func TestParseReportDescriptorFindsImplicitAndExplicitReports(t *testing.T) {
	reports, err := hidtransport.ParseReportDescriptor(buildDescriptor())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, uint8(0), reports[0].ReportID)
	assert.Equal(t, uint16(1), reports[0].UsagePage)
	assert.Equal(t, uint16(2), reports[0].Usage)

	assert.Equal(t, uint8(1), reports[1].ReportID)
	// The row carries the usage page in effect when REPORT_ID is read, not
	// the Button page declared after it.
	assert.Equal(t, uint16(1), reports[1].UsagePage)
}

func TestHasReportAndMatchUsage(t *testing.T) {
	reports, err := hidtransport.ParseReportDescriptor(buildDescriptor())
	require.NoError(t, err)

	assert.True(t, hidtransport.HasReport(reports, 1))
	assert.False(t, hidtransport.HasReport(reports, 5))
	assert.True(t, hidtransport.MatchUsage(reports, 1, 2))
	assert.False(t, hidtransport.MatchUsage(reports, 1, 99))
}

func TestParseReportDescriptorRejectsTruncatedItem(t *testing.T) {
	// Trailing item header claims more payload bytes than remain.
	malformed := []byte{0x05, 0x01, 0x06}
	_, err := hidtransport.ParseReportDescriptor(malformed)
	assert.Error(t, err)
}
