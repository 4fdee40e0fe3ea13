// Package rapoo implements spec §4.7's Rapoo protocol engine: a two-step
// request/response discipline over a single fixed-size feature report,
// polled for a status byte within a 2-second window (20 tries at 100ms).
package rapoo

import (
	"time"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

// ctrlTransport is the slice of *hidtransport.Transport this engine
// needs — the same interface-for-testability seam as the other vendor
// engines in this repo.
type ctrlTransport interface {
	GetFeature(buf []byte) (int, error)
	SetFeature(buf []byte) error
	Close() error
}

const (
	reportID = 0xBA
	blobSize = 32
	// statusOff is the first payload byte after the leading report-id
	// byte every GetFeature response in this codebase reserves at
	// offset 0 (the same convention driver/roccat and driver/holtek8
	// use); spec §4.7's "first byte of response is status" names this
	// first payload byte, not the raw buffer's byte 0.
	statusOff = 1

	statusOK   = 0x01
	statusWait = 0x02

	pollRetries  = 20
	pollInterval = 100 * time.Millisecond
)

// sendAndAwait writes req (which must be blobSize bytes, req[0]==reportID)
// then polls GetFeature on the same report until the status byte reads
// ok, wait (retried), or anything else (a protocol error); exhausting
// pollRetries tries is a timeout. Spec §4.7: "Two-step request/response
// with a 2 s polling window (20 × 100 ms) on a status byte (0x01
// success, 0x02 wait)."
func sendAndAwait(t ctrlTransport, req []byte) ([]byte, error) {
	if len(req) != blobSize {
		return nil, ratbagerr.ErrProtocol("rapoo: request has the wrong length")
	}
	if err := t.SetFeature(req); err != nil {
		return nil, err
	}

	resp := make([]byte, blobSize)
	resp[0] = reportID
	for try := 0; try < pollRetries; try++ {
		n, err := t.GetFeature(resp)
		if err != nil {
			return nil, err
		}
		if n < blobSize {
			return nil, ratbagerr.ErrIO("rapoo: short status report read")
		}
		switch resp[statusOff] {
		case statusOK:
			return resp, nil
		case statusWait:
			time.Sleep(pollInterval)
			continue
		default:
			return nil, ratbagerr.ErrProtocol("rapoo: device reported an error status")
		}
	}
	return nil, ratbagerr.ErrTimeout("rapoo: status never reached ok within the polling window")
}
