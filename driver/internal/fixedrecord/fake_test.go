package fixedrecord

import "github.com/go-ratbag/ratbag/ratbagerr"

// fakeTransport is a scripted Transport for unit tests.
type fakeTransport struct {
	setCalls     [][]byte
	getResponses [][]byte
	closed       bool
}

func (f *fakeTransport) SetFeature(buf []byte) error {
	cp := append([]byte(nil), buf...)
	f.setCalls = append(f.setCalls, cp)
	return nil
}

func (f *fakeTransport) GetFeature(buf []byte) (int, error) {
	if len(f.getResponses) == 0 {
		return 0, ratbagerr.ErrIO("fakeTransport: no queued GetFeature response")
	}
	resp := f.getResponses[0]
	f.getResponses = f.getResponses[1:]
	n := copy(buf, resp)
	return n, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}
