package roccat

import (
	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// Profile blob field layout this engine decodes/encodes (spec §4.7 fixes
// the report id, command register, and checksum; a per-model byte table
// for DPI/button offsets is "documented in §6" but not reproduced
// byte-for-byte here, so this is the engine's own private layout,
// analogous to driver/holtek8's codec.go).
const (
	profileHeaderLen = 2 // report id + profile index
	dpiEntryLen      = 1 // a single DPI step byte, looked up in dpiSteps
	buttonEntryLen   = 2 // kind, arg
)

// dpiSteps is the fixed DPI ladder a raw DPI byte indexes into; Roccat
// firmwares commonly expose DPI as a small step table rather than a raw
// value (mirrored from the per-model tables spec §6 describes).
var dpiSteps = []uint16{
	400, 800, 1200, 1600, 2000, 2400, 3200, 4000, 4800, 5600, 6400, 8200,
}

func dpiStepToValue(step uint8) uint16 {
	if int(step) >= len(dpiSteps) {
		return dpiSteps[len(dpiSteps)-1]
	}
	return dpiSteps[step]
}

func dpiValueToStep(v uint16) uint8 {
	best := 0
	bestDiff := int(dpiSteps[0]) - int(v)
	if bestDiff < 0 {
		bestDiff = -bestDiff
	}
	for i, s := range dpiSteps {
		diff := int(s) - int(v)
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return uint8(best)
}

const (
	buttonKindNone uint8 = iota
	buttonKindButton
	buttonKindSpecial
	buttonKindKey
	buttonKindUnknown
)

func decodeResolutions(body []byte, resolutions []*ratmodel.Resolution) error {
	need := len(resolutions) * dpiEntryLen
	if len(body) < need {
		return ratbagerr.ErrProtocol("roccat: DPI block shorter than expected")
	}
	for i, r := range resolutions {
		v := dpiStepToValue(body[i])
		r.DPIX, r.DPIY = v, v
	}
	return nil
}

func encodeResolutions(resolutions []*ratmodel.Resolution) []byte {
	out := make([]byte, len(resolutions)*dpiEntryLen)
	for i, r := range resolutions {
		out[i] = dpiValueToStep(r.DPIX)
	}
	return out
}

func decodeButtons(body []byte, buttons []*ratmodel.Button) error {
	need := len(buttons) * buttonEntryLen
	if len(body) < need {
		return ratbagerr.ErrProtocol("roccat: button block shorter than expected")
	}
	for i, b := range buttons {
		off := i * buttonEntryLen
		b.Action = decodeButtonEntry([buttonEntryLen]byte(body[off : off+buttonEntryLen]))
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
	case action.KindUnknown:
		out[0] = buttonKindUnknown
		if len(a.RawVendorBytes) > 0 {
			out[1] = a.RawVendorBytes[0]
		}
	default:
		return out, ratbagerr.ErrUnsupported("roccat: button slot cannot encode this action kind directly; use the macro store")
	}
	return out, nil
}

func decodeButtonEntry(enc [buttonEntryLen]byte) action.Action {
	switch enc[0] {
	case buttonKindButton:
		return action.Button(int(enc[1]))
	case buttonKindSpecial:
		return action.SpecialAction(action.Special(enc[1]))
	case buttonKindNone:
		return action.None()
	default:
		return action.Unknown(enc[1:])
	}
}
