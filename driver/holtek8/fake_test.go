package holtek8

import (
	"time"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

// fakeFrame is a scripted frameTransport for unit tests.
type fakeFrame struct {
	setCalls      [][]byte
	getResponses  [][]byte
	writeCalls    [][]byte
	readResponses [][]byte
	// ackedReads are input reports the fake device only sends once its
	// control report has been read back: each GetFeature call moves them
	// into readResponses, after any stale input has been drained.
	ackedReads [][]byte
	closed     bool
}

func (f *fakeFrame) SetFeature(buf []byte) error {
	cp := append([]byte(nil), buf...)
	f.setCalls = append(f.setCalls, cp)
	return nil
}

func (f *fakeFrame) GetFeature(buf []byte) (int, error) {
	if len(f.getResponses) == 0 {
		return 0, ratbagerr.ErrIO("fakeFrame: no queued GetFeature response")
	}
	resp := f.getResponses[0]
	f.getResponses = f.getResponses[1:]
	f.readResponses = append(f.readResponses, f.ackedReads...)
	f.ackedReads = nil
	n := copy(buf, resp)
	return n, nil
}

func (f *fakeFrame) Write(buf []byte) error {
	cp := append([]byte(nil), buf...)
	f.writeCalls = append(f.writeCalls, cp)
	return nil
}

func (f *fakeFrame) Read(buf []byte, timeout time.Duration) (int, error) {
	if len(f.readResponses) == 0 {
		return 0, ratbagerr.ErrTimeout("fakeFrame: no queued Read response")
	}
	resp := f.readResponses[0]
	f.readResponses = f.readResponses[1:]
	n := copy(buf, resp)
	return n, nil
}

func (f *fakeFrame) Close() error {
	f.closed = true
	return nil
}

// controlFrameBytes builds a fake control-report GetFeature response:
// [report_id, cmd, arg[6], checksum].
func controlFrameBytes(cmd byte, arg [6]byte) []byte {
	frame := buildFrame(cmd, arg)
	out := make([]byte, 1+controlFrameLen)
	out[0] = controlReportID
	copy(out[1:], frame[:])
	return out
}
