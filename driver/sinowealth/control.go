// Package sinowealth implements spec §4.7's SinoWealth protocol engine:
// a variable-length config blob read through either of two alternative
// report ids, whose write-back must restate its own length minus the
// header, plus a firmware-version-selected sensor model that bounds DPI.
package sinowealth

import "github.com/go-ratbag/ratbag/ratbagerr"

// configTransport is the slice of *hidtransport.Transport this engine
// needs (same interface-for-testability seam as driver/hidpp's
// wireTransport, driver/holtek8's frameTransport, driver/roccat's
// ctrlTransport).
type configTransport interface {
	GetFeature(buf []byte) (int, error)
	SetFeature(buf []byte) error
	Close() error
}

// Config report ids: firmware exposes the same config blob under either
// of two alternative report numbers depending on revision (spec §4.7:
// "two alternative config report ids").
const (
	ConfigReportPrimary   = 0x04
	ConfigReportAlternate = 0x05
)

// configCmd is byte 1 of every config blob (spec §6: "cmd=0x11").
const configCmd = 0x11

// Header offsets (spec §6): report id, cmd, a zero byte, then the
// write-length byte a write-back must restate as actual_size-8.
const (
	offsetReportID = 0
	offsetCmd      = 1
	offsetZero     = 2
	offsetWriteLen = 3
)

// MinConfigSize and MaxConfigSize bound the blob length a single read can
// return (spec §4.7: "any length in [131, 167]").
const (
	MinConfigSize = 131
	MaxConfigSize = 167
)

// headerLen is the number of leading bytes a write-back's write_len field
// excludes (spec §6: "write-back length = actual_size - 8").
const headerLen = 8

// ReadConfigBlob issues a GET on reportID and returns exactly the number
// of bytes the device actually sent, validated against [MinConfigSize,
// MaxConfigSize].
func ReadConfigBlob(t configTransport, reportID uint8) ([]byte, error) {
	buf := make([]byte, MaxConfigSize)
	buf[0] = reportID
	n, err := t.GetFeature(buf)
	if err != nil {
		return nil, err
	}
	if n < MinConfigSize || n > MaxConfigSize {
		return nil, ratbagerr.ErrProtocol("sinowealth: config blob length outside [131, 167]")
	}
	return buf[:n], nil
}

// WriteConfigBlob stamps blob's write_len header byte to len(blob)-8 and
// writes it back unchanged otherwise (spec §4.7: "the engine records the
// length and writes it back unchanged").
func WriteConfigBlob(t configTransport, blob []byte) error {
	if len(blob) < headerLen {
		return ratbagerr.ErrProtocol("sinowealth: config blob shorter than its own header")
	}
	blob[offsetCmd] = configCmd
	blob[offsetZero] = 0
	blob[offsetWriteLen] = byte(len(blob) - headerLen)
	return t.SetFeature(blob)
}
