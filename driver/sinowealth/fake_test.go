package sinowealth

import "github.com/go-ratbag/ratbag/ratbagerr"

// fakeConfig is a scripted configTransport for unit tests.
type fakeConfig struct {
	setCalls     [][]byte
	getResponses [][]byte
	closed       bool
}

func (f *fakeConfig) SetFeature(buf []byte) error {
	cp := append([]byte(nil), buf...)
	f.setCalls = append(f.setCalls, cp)
	return nil
}

func (f *fakeConfig) GetFeature(buf []byte) (int, error) {
	if len(f.getResponses) == 0 {
		return 0, ratbagerr.ErrIO("fakeConfig: no queued GetFeature response")
	}
	resp := f.getResponses[0]
	f.getResponses = f.getResponses[1:]
	n := copy(buf, resp)
	return n, nil
}

func (f *fakeConfig) Close() error {
	f.closed = true
	return nil
}

// testBlob builds a minimal-but-valid config blob of the given total
// length with report_rate raw byte set to rate.
func testBlob(length int, reportID uint8, rate byte) []byte {
	blob := make([]byte, length)
	blob[offsetReportID] = reportID
	blob[offsetCmd] = configCmd
	blob[offsetReportRate] = rate
	return blob
}
