package rapoo

import "github.com/go-ratbag/ratbag/ratbagerr"

type fakeCtrl struct {
	setCalls     [][]byte
	getResponses [][]byte
	closed       bool
}

func (f *fakeCtrl) SetFeature(buf []byte) error {
	cp := append([]byte(nil), buf...)
	f.setCalls = append(f.setCalls, cp)
	return nil
}

func (f *fakeCtrl) GetFeature(buf []byte) (int, error) {
	if len(f.getResponses) == 0 {
		return 0, ratbagerr.ErrIO("fakeCtrl: no queued GetFeature response")
	}
	resp := f.getResponses[0]
	f.getResponses = f.getResponses[1:]
	n := copy(buf, resp)
	return n, nil
}

func (f *fakeCtrl) Close() error {
	f.closed = true
	return nil
}

func statusBlob(status byte) []byte {
	b := make([]byte, blobSize)
	b[offReportID] = reportID
	b[statusOff] = status
	return b
}
