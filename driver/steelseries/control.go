// Package steelseries implements spec §4.7's Steelseries protocol engine.
// The spec names this vendor in the per-vendor engine list and its
// device-data parameters (Buttons, Leds, DeviceVersion, DpiRange|DpiList,
// MacroLength, MonoLed, ShortButton — spec §4.2) but gives no wire-format
// wording beyond that; this package's framing follows the same
// select-then-read/write fixed-report shape every other engine in this
// family uses, reusing driver/internal/fixedrecord for the resolution,
// button, and per-button-macro portion of the blob and appending a simple
// LED block this driver owns. See DESIGN.md for the explicit assumption
// this fills in.
package steelseries

import "github.com/go-ratbag/ratbag/ratbagerr"

// ctrlTransport is the slice of *hidtransport.Transport this engine
// needs — the same interface-for-testability seam as the other vendor
// engines in this repo.
type ctrlTransport interface {
	GetFeature(buf []byte) (int, error)
	SetFeature(buf []byte) error
	Close() error
}

const reportID = 0x02

func readProfile(t ctrlTransport, profile uint8, totalSize int) ([]byte, error) {
	if err := t.SetFeature([]byte{reportID, profile}); err != nil {
		return nil, err
	}
	buf := make([]byte, totalSize)
	buf[0] = reportID
	n, err := t.GetFeature(buf)
	if err != nil {
		return nil, err
	}
	if n < totalSize {
		return nil, ratbagerr.ErrIO("steelseries: short profile report read")
	}
	return buf, nil
}

func writeProfile(t ctrlTransport, profile uint8, blob []byte) error {
	blob[1] = profile
	return t.SetFeature(blob)
}
