package holtek8

import (
	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// Per-profile byte layout this engine decodes CmdReadResolution/
// CmdReadButtonConfig into (spec §4.6 names the commands but not a wire
// layout; this is the engine's own private encoding, analogous to spec
// §4.7's "decode into the uniform model" for every other vendor).
const (
	resolutionEntryLen = 4 // dpiX(2 BE), dpiY(2 BE)
	buttonEntryLen     = 4 // kind, arg0, arg1, arg2
)

const (
	buttonKindNone uint8 = iota
	buttonKindButton
	buttonKindSpecial
	buttonKindKey
	buttonKindUnknown
)

func decodeResolutions(data []byte, resolutions []*ratmodel.Resolution) error {
	need := len(resolutions) * resolutionEntryLen
	if len(data) < need {
		return ratbagerr.ErrProtocol("holtek8: resolution block shorter than expected")
	}
	for i, r := range resolutions {
		off := i * resolutionEntryLen
		r.DPIX = uint16(data[off])<<8 | uint16(data[off+1])
		r.DPIY = uint16(data[off+2])<<8 | uint16(data[off+3])
	}
	return nil
}

func encodeResolutions(resolutions []*ratmodel.Resolution) []byte {
	out := make([]byte, len(resolutions)*resolutionEntryLen)
	for i, r := range resolutions {
		off := i * resolutionEntryLen
		out[off] = byte(r.DPIX >> 8)
		out[off+1] = byte(r.DPIX)
		out[off+2] = byte(r.DPIY >> 8)
		out[off+3] = byte(r.DPIY)
	}
	return out
}

func decodeButtons(data []byte, buttons []*ratmodel.Button) error {
	need := len(buttons) * buttonEntryLen
	if len(data) < need {
		return ratbagerr.ErrProtocol("holtek8: button block shorter than expected")
	}
	for i, b := range buttons {
		off := i * buttonEntryLen
		b.Action = decodeButtonEntry([buttonEntryLen]byte(data[off : off+buttonEntryLen]))
	}
	return nil
}

func encodeButtons(buttons []*ratmodel.Button) ([]byte, error) {
	out := make([]byte, len(buttons)*buttonEntryLen)
	for i, b := range buttons {
		enc, err := encodeButtonEntry(b.Action)
		if err != nil {
			return nil, err
		}
		copy(out[i*buttonEntryLen:], enc[:])
	}
	return out, nil
}

func encodeButtonEntry(a action.Action) ([buttonEntryLen]byte, error) {
	var out [buttonEntryLen]byte
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
		return out, ratbagerr.ErrUnsupported("holtek8: button slot cannot encode a macro action directly; use the macro store")
	}
	return out, nil
}

func decodeButtonEntry(enc [buttonEntryLen]byte) action.Action {
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
