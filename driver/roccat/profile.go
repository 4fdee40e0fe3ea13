package roccat

import (
	"encoding/binary"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

// ReadProfileBlob selects profile via the command register, waits for
// ready, then reads the fixed-size profile report and verifies its
// trailing sum-of-bytes checksum word.
func ReadProfileBlob(t ctrlTransport, profile uint8, blobSize int) ([]byte, error) {
	if err := sendCommand(t, profile, whatReadProfile); err != nil {
		return nil, err
	}
	buf := make([]byte, blobSize)
	buf[0] = profileReportID
	n, err := t.GetFeature(buf)
	if err != nil {
		return nil, err
	}
	if n < blobSize {
		return nil, ratbagerr.ErrIO("roccat: short profile blob read")
	}
	if err := verifyChecksum(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteProfileBlob recomputes blob's trailing checksum word, selects
// profile via the command register, and writes the blob back.
func WriteProfileBlob(t ctrlTransport, profile uint8, blob []byte) error {
	stampChecksum(blob)
	if err := t.SetFeature(blob); err != nil {
		return err
	}
	return sendCommand(t, profile, whatWriteProfile)
}

// verifyChecksum checks blob's trailing 2-byte little-endian checksum
// word against the sum of every preceding byte.
func verifyChecksum(blob []byte) error {
	if len(blob) < 2 {
		return ratbagerr.ErrProtocol("roccat: blob too short to carry a checksum")
	}
	body := blob[:len(blob)-2]
	want := binary.LittleEndian.Uint16(blob[len(blob)-2:])
	if checksum(body) != want {
		return ratbagerr.ErrProtocol("roccat: blob checksum mismatch")
	}
	return nil
}

// stampChecksum overwrites blob's trailing 2 bytes with the sum-of-bytes
// checksum of everything before them.
func stampChecksum(blob []byte) {
	body := blob[:len(blob)-2]
	binary.LittleEndian.PutUint16(blob[len(blob)-2:], checksum(body))
}
