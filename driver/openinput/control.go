// Package openinput implements spec §4.7's Openinput protocol engine:
// bidirectional short (8B) and long (32B) reports sharing a page+function
// namespace, with an error frame using page 0xFF and the function byte
// naming the error kind.
package openinput

import "github.com/go-ratbag/ratbag/ratbagerr"

// ctrlTransport is the slice of *hidtransport.Transport this engine
// needs — the same interface-for-testability seam as the other vendor
// engines in this repo.
type ctrlTransport interface {
	GetFeature(buf []byte) (int, error)
	SetFeature(buf []byte) error
	Close() error
}

const (
	shortReportID = 0x20
	longReportID  = 0x21

	shortLen = 8
	longLen  = 32

	// Every frame is [id, page, func, data...] per spec §4.7.
	offID   = 0
	offPage = 1
	offFunc = 2
	offData = 3

	pageError = 0xFF
	pageProfile = 0x01

	funcRead  = 0x01
	funcWrite = 0x02
)

// errorFuncToCode maps an error frame's function byte (the "error kind")
// to this codebase's closed error taxonomy. The spec names the page/func
// framing for an error frame but not a concrete code table; this mapping
// is this engine's own invented-but-consistent scheme, documented here
// rather than guessed at silently.
var errorFuncToCode = map[byte]ratbagerr.Code{
	0x01: ratbagerr.NoDevice,
	0x02: ratbagerr.IoError,
	0x03: ratbagerr.Timeout,
	0x04: ratbagerr.BadMessage,
	0x05: ratbagerr.AccessDenied,
	0x06: ratbagerr.OutOfSpace,
	0x07: ratbagerr.Unsupported,
	0x08: ratbagerr.InvalidArgument,
}

// sendLongFrame writes a full 32-byte long frame (frame[0] must already
// be longReportID) and reads back the device's reply, translating a
// page-0xFF error frame into a *ratbagerr.Error.
func sendLongFrame(t ctrlTransport, frame []byte) ([]byte, error) {
	if len(frame) != longLen {
		return nil, ratbagerr.ErrProtocol("openinput: long frame has the wrong length")
	}
	if err := t.SetFeature(frame); err != nil {
		return nil, err
	}
	resp := make([]byte, longLen)
	resp[offID] = longReportID
	n, err := t.GetFeature(resp)
	if err != nil {
		return nil, err
	}
	if n < longLen {
		return nil, ratbagerr.ErrIO("openinput: short long-frame read")
	}
	return checkFrame(resp)
}

// sendShortFrame is sendLongFrame's 8-byte counterpart.
func sendShortFrame(t ctrlTransport, frame []byte) ([]byte, error) {
	if len(frame) != shortLen {
		return nil, ratbagerr.ErrProtocol("openinput: short frame has the wrong length")
	}
	if err := t.SetFeature(frame); err != nil {
		return nil, err
	}
	resp := make([]byte, shortLen)
	resp[offID] = shortReportID
	n, err := t.GetFeature(resp)
	if err != nil {
		return nil, err
	}
	if n < shortLen {
		return nil, ratbagerr.ErrIO("openinput: short short-frame read")
	}
	return checkFrame(resp)
}

func checkFrame(resp []byte) ([]byte, error) {
	if resp[offPage] == pageError {
		code, ok := errorFuncToCode[resp[offFunc]]
		if !ok {
			code = ratbagerr.ProtocolError
		}
		return nil, ratbagerr.New(code, "openinput: device returned an error frame")
	}
	return resp, nil
}
