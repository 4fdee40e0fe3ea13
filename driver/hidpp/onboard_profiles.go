package hidpp

import "github.com/go-ratbag/ratbag/ratbagerr"

// onboardChunkSize is the payload size ONBOARD_PROFILES moves per
// request; blobs are read/written in chunks of this size (spec §4.5's
// "fixed-size binary records").
const onboardChunkSize = 16

// ReadProfileBlob reads a profile's on-device blob (function 4,
// readSector, addressed by a running chunk offset) and verifies its
// trailing CRC-CCITT (spec §4.5/§6).
func ReadProfileBlob(c *Conn, ft *FeatureTable, profileIndex int, blobSize int) ([]byte, error) {
	idx, ok := ft.Index(FeatureOnboardProfiles)
	if !ok {
		return nil, errUnsupportedFeature(FeatureOnboardProfiles)
	}
	blob := make([]byte, 0, blobSize)
	for offset := 0; offset < blobSize; offset += onboardChunkSize {
		resp, err := c.LongRequest(idx, []byte{
			callID(4, defaultSoftwareID),
			byte(profileIndex),
			byte(offset >> 8), byte(offset),
		})
		if err != nil {
			return nil, err
		}
		remaining := blobSize - offset
		if remaining > onboardChunkSize {
			remaining = onboardChunkSize
		}
		if len(resp) < remaining {
			return nil, ratbagerr.ErrProtocol("onboard profile read returned a short chunk")
		}
		blob = append(blob, resp[:remaining]...)
	}
	if err := verifyProfileCRC(blob); err != nil {
		return nil, err
	}
	return blob, nil
}

// WriteProfileBlob recomputes blob's trailing CRC-CCITT and writes it
// back in onboardChunkSize pieces (function 5, writeSector), per spec
// §4.5's "re-encode the blob, validate checksum ..., write it back".
func WriteProfileBlob(c *Conn, ft *FeatureTable, profileIndex int, blob []byte) error {
	idx, ok := ft.Index(FeatureOnboardProfiles)
	if !ok {
		return errUnsupportedFeature(FeatureOnboardProfiles)
	}
	if len(blob) < 2 {
		return ratbagerr.ErrInvalidArgument("profile blob too small to carry a trailing crc")
	}
	crc := crcCCITT(blob[:len(blob)-2])
	blob[len(blob)-2] = byte(crc >> 8)
	blob[len(blob)-1] = byte(crc)

	for offset := 0; offset < len(blob); offset += onboardChunkSize {
		end := offset + onboardChunkSize
		if end > len(blob) {
			end = len(blob)
		}
		chunk := make([]byte, onboardChunkSize)
		copy(chunk, blob[offset:end])

		payload := append([]byte{
			callID(5, defaultSoftwareID),
			byte(profileIndex),
			byte(offset >> 8), byte(offset),
		}, chunk...)
		if _, err := c.LongRequest(idx, payload); err != nil {
			return err
		}
	}
	return nil
}

// verifyProfileCRC checks that a profile blob's trailing two bytes match
// the CRC-CCITT of everything before them.
func verifyProfileCRC(blob []byte) error {
	if len(blob) < 2 {
		return ratbagerr.ErrProtocol("onboard profile blob too small to carry a crc")
	}
	want := uint16(blob[len(blob)-2])<<8 | uint16(blob[len(blob)-1])
	got := crcCCITT(blob[:len(blob)-2])
	if want != got {
		return ratbagerr.ErrProtocol("onboard profile blob failed crc check")
	}
	return nil
}

// CurrentProfileIndex reads which profile slot is active on the device
// (function 1, getCurrentProfile).
func CurrentProfileIndex(c *Conn, ft *FeatureTable) (int, error) {
	idx, ok := ft.Index(FeatureOnboardProfiles)
	if !ok {
		return 0, errUnsupportedFeature(FeatureOnboardProfiles)
	}
	resp, err := c.ShortRequest(idx, [4]byte{callID(1, defaultSoftwareID), 0, 0, 0})
	if err != nil {
		return 0, err
	}
	return int(resp[0]), nil
}

// SetCurrentProfileIndex asks the device to switch its active profile
// (function 2, setCurrentProfile).
func SetCurrentProfileIndex(c *Conn, ft *FeatureTable, profileIndex int) error {
	idx, ok := ft.Index(FeatureOnboardProfiles)
	if !ok {
		return errUnsupportedFeature(FeatureOnboardProfiles)
	}
	_, err := c.ShortRequest(idx, [4]byte{callID(2, defaultSoftwareID), byte(profileIndex), 0, 0})
	return err
}
