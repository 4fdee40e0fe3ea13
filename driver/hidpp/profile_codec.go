package hidpp

import (
	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// Onboard profile blob layout (spec §4.5's "fixed-size binary records
// containing a DPI table, button table, LED state, name"):
//
//	[0:16]  name, NUL-padded
//	[16:..] one 4-byte {dpiX, dpiY} entry per resolution
//	[..]    one 4-byte {kind, arg0, arg1, arg2} entry per button
//	[..]    one 5-byte {mode, r, g, b, brightness} entry per led
//	[..]    1 byte report rate index (into reportRateBits)
//	[..]    2 byte trailing CRC-CCITT over everything before it
const (
	profileNameSize      = 16
	profileResolutionLen = 4
	profileButtonLen     = 4
	profileLedLen        = 5
	profileTrailerLen    = 1 + 2
)

// ProfileBlobSize computes the fixed blob size for a profile with the
// given child counts.
func ProfileBlobSize(numResolutions, numButtons, numLeds int) int {
	return profileNameSize +
		numResolutions*profileResolutionLen +
		numButtons*profileButtonLen +
		numLeds*profileLedLen +
		profileTrailerLen
}

const (
	buttonKindNone uint8 = iota
	buttonKindButton
	buttonKindSpecial
	buttonKindKey
	buttonKindUnknown
)

// EncodeProfile renders p's current (possibly dirty) state into a fresh
// onboard blob, ready for WriteProfileBlob.
func EncodeProfile(p *ratmodel.Profile) ([]byte, error) {
	resolutions := p.Resolutions()
	buttons := p.Buttons()
	leds := p.Leds()

	blob := make([]byte, ProfileBlobSize(len(resolutions), len(buttons), len(leds)))
	copy(blob[:profileNameSize], p.Name)

	off := profileNameSize
	for _, r := range resolutions {
		blob[off] = byte(r.DPIX >> 8)
		blob[off+1] = byte(r.DPIX)
		blob[off+2] = byte(r.DPIY >> 8)
		blob[off+3] = byte(r.DPIY)
		off += profileResolutionLen
	}

	for _, b := range buttons {
		enc, err := encodeButtonAction(b.Action)
		if err != nil {
			return nil, err
		}
		copy(blob[off:off+profileButtonLen], enc[:])
		off += profileButtonLen
	}

	for _, l := range leds {
		blob[off] = rgbModeWire(l.Mode)
		blob[off+1] = l.Color.R
		blob[off+2] = l.Color.G
		blob[off+3] = l.Color.B
		blob[off+4] = l.Brightness
		off += profileLedLen
	}

	rateBit := byte(0)
	for i, hz := range reportRateBits {
		if hz == p.ReportRate {
			rateBit = byte(i)
			break
		}
	}
	blob[off] = rateBit

	return blob, nil
}

// DecodeProfile parses blob (already CRC-verified by ReadProfileBlob)
// into p's leaves, bypassing the Set* mutators so the decode itself
// never marks anything dirty.
func DecodeProfile(blob []byte, p *ratmodel.Profile) error {
	resolutions := p.Resolutions()
	buttons := p.Buttons()
	leds := p.Leds()

	want := ProfileBlobSize(len(resolutions), len(buttons), len(leds))
	if len(blob) != want {
		return ratbagerr.Newf(ratbagerr.ProtocolError, "onboard profile blob is %d bytes, want %d", len(blob), want)
	}

	p.Name = trimNulString(blob[:profileNameSize])

	off := profileNameSize
	for _, r := range resolutions {
		r.DPIX = uint16(blob[off])<<8 | uint16(blob[off+1])
		r.DPIY = uint16(blob[off+2])<<8 | uint16(blob[off+3])
		off += profileResolutionLen
	}

	for _, b := range buttons {
		var enc [profileButtonLen]byte
		copy(enc[:], blob[off:off+profileButtonLen])
		b.Action = decodeButtonAction(enc)
		off += profileButtonLen
	}

	for _, l := range leds {
		l.Mode = rgbModeFromWire(blob[off])
		l.Color = ratmodel.RGBColor{R: blob[off+1], G: blob[off+2], B: blob[off+3]}
		l.Brightness = blob[off+4]
		off += profileLedLen
	}

	rateBit := int(blob[off])
	if rateBit >= 0 && rateBit < len(reportRateBits) {
		p.ReportRate = reportRateBits[rateBit]
	}
	return nil
}

func encodeButtonAction(a action.Action) ([profileButtonLen]byte, error) {
	var out [profileButtonLen]byte
	switch a.Kind {
	case action.KindNone:
		out[0] = buttonKindNone
	case action.KindButton:
		out[0] = buttonKindButton
		out[1] = byte(a.ButtonNumber)
	case action.KindSpecial:
		out[0] = buttonKindSpecial
		out[1] = byte(a.SpecialTag)
	case action.KindKey:
		out[0] = buttonKindKey
		out[1] = byte(a.Keycode >> 8)
		out[2] = byte(a.Keycode)
		out[3] = a.Modifiers
	case action.KindUnknown:
		out[0] = buttonKindUnknown
		copy(out[1:], a.RawVendorBytes)
	default:
		return out, ratbagerr.ErrUnsupported("onboard profile button slot cannot encode a macro action")
	}
	return out, nil
}

func decodeButtonAction(enc [profileButtonLen]byte) action.Action {
	switch enc[0] {
	case buttonKindButton:
		return action.Button(int(enc[1]))
	case buttonKindSpecial:
		return action.SpecialAction(action.Special(enc[1]))
	case buttonKindKey:
		code := action.Keycode(uint16(enc[1])<<8 | uint16(enc[2]))
		return action.Key(code, enc[3])
	case buttonKindNone:
		return action.None()
	default:
		return action.Unknown(enc[1:])
	}
}

func trimNulString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
