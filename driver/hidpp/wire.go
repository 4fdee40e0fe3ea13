// Package hidpp implements spec §4.5: Logitech HID++ 1.0/2.0 framing and
// the 2.0 feature protocol this core covers in full.
package hidpp

import (
	"sync"
	"time"

	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
)

// wireTransport is the slice of *hidtransport.Transport the HID++ framing
// needs: one output write and one filtered, timeout-bounded read.
// Expressed as an interface (rather than depending on the concrete type
// directly) so tests can drive Conn without a real hidraw node.
type wireTransport interface {
	Write(buf []byte) error
	ReadFiltered(buf []byte, accept func([]byte) bool, timeout time.Duration) (int, error)
}

const (
	// ReportIDShort/ReportIDLong are the two HID++ report ids, each a
	// fixed-size feature report (spec §4.5/§6).
	ReportIDShort = 0x10
	ReportIDLong  = 0x11

	shortReportLen = 7
	longReportLen  = 20

	// DeviceIndexReceiver addresses the wireless receiver/dongle itself
	// rather than a paired device.
	DeviceIndexReceiver = 0xFF
	// DeviceIndexWired addresses a directly-wired device.
	DeviceIndexWired = 0x00

	// Timeout is the per-request deadline spec §4.5 names; two
	// consecutive timeouts declare the device unresponsive.
	Timeout = 1000 * time.Millisecond

	sub10Error = 0x8F
	featureIndexError = 0xFF
)

// Conn serializes HID++ request/response round-trips over one Transport,
// per spec §4.5's "the engine serializes requests per device: it holds a
// mutex for the transport, writes, then reads until it sees a matching
// echo or a timeout; unrelated input reports are discarded."
type Conn struct {
	mu          sync.Mutex
	t           wireTransport
	log         *ratlog.Sink
	deviceIndex uint8
	consecutiveTimeouts int
}

// NewConn wraps t for HID++ framing addressed at deviceIndex.
func NewConn(t wireTransport, deviceIndex uint8, log *ratlog.Sink) *Conn {
	if log == nil {
		log = ratlog.Discard()
	}
	return &Conn{t: t, deviceIndex: deviceIndex, log: log}
}

// Unresponsive reports whether the last two requests both timed out
// (spec §4.5: "devices not responding twice in sequence are declared
// DeviceUnresponsive").
func (c *Conn) Unresponsive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consecutiveTimeouts >= 2
}

// ShortRequest issues a short (7-byte) request [report_id, dev, sub,
// payload[4]] and waits for the matching echo (same sub_id), returning
// its 4-byte payload.
func (c *Conn) ShortRequest(sub uint8, payload [4]byte) ([4]byte, error) {
	req := make([]byte, shortReportLen)
	req[0] = ReportIDShort
	req[1] = c.deviceIndex
	req[2] = sub
	copy(req[3:], payload[:])

	resp, err := c.roundTrip(req, shortReportLen)
	var out [4]byte
	if err != nil {
		return out, err
	}
	if err := checkErrorShort(resp); err != nil {
		return out, err
	}
	copy(out[:], resp[3:])
	return out, nil
}

// LongRequest issues a long (20-byte) request [report_id, dev, sub,
// payload[17]] and waits for the matching echo, returning its 17-byte
// payload.
func (c *Conn) LongRequest(sub uint8, payload []byte) ([]byte, error) {
	req := make([]byte, longReportLen)
	req[0] = ReportIDLong
	req[1] = c.deviceIndex
	req[2] = sub
	copy(req[3:], payload)

	resp, err := c.roundTrip(req, longReportLen)
	if err != nil {
		return nil, err
	}
	if err := checkErrorLong(resp); err != nil {
		return nil, err
	}
	return resp[3:], nil
}

func (c *Conn) roundTrip(req []byte, wantLen int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.t.Write(req); err != nil {
		return nil, err
	}

	errMarker := byte(featureIndexError)
	if req[0] == ReportIDShort {
		errMarker = sub10Error
	}
	buf := make([]byte, wantLen)
	accept := func(b []byte) bool {
		if len(b) < 3 || len(req) < 3 {
			return false
		}
		if b[0] != req[0] {
			return false
		}
		return b[2] == req[2] || b[2] == errMarker
	}
	n, err := c.t.ReadFiltered(buf, accept, Timeout)
	if err != nil {
		if ratbagerr.CodeOf(err) == ratbagerr.Timeout {
			c.consecutiveTimeouts++
		}
		return nil, err
	}
	c.consecutiveTimeouts = 0
	return buf[:n], nil
}

// checkErrorShort recognizes a HID++ 1.0 error frame:
// [report_id, dev, 0x8F, sub_that_errored, error_code, pad, pad].
func checkErrorShort(resp []byte) error {
	if len(resp) < 3 {
		return ratbagerr.ErrProtocol("short response truncated")
	}
	if resp[2] == sub10Error {
		code := byte(0)
		if len(resp) > 4 {
			code = resp[4]
		}
		return hidpp10Error(code)
	}
	return nil
}

// checkErrorLong recognizes a HID++ 2.0 error frame:
// [report_id, dev, 0xFF, feature_index_that_errored, function_software_id,
// error_code, ...].
func checkErrorLong(resp []byte) error {
	if len(resp) < 3 {
		return ratbagerr.ErrProtocol("long response truncated")
	}
	if resp[2] == featureIndexError {
		code := byte(0)
		if len(resp) > 5 {
			code = resp[5]
		}
		return hidpp20Error(code)
	}
	return nil
}
