package rapoo

import (
	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// Layout of the 32-byte profile blob: report id, profile index, a single
// DPI-list-index byte (the device-data Driver/rapoo.DpiList parameter
// names the actual DPI values this index selects from, spec §4.2), then
// one 2-byte kind/arg entry per button.
const (
	offReportID = 0
	offProfile  = 1
	offDPIIndex = 2
	offButtons  = 3

	buttonEntryLen = 2
)

const (
	buttonKindNone uint8 = iota
	buttonKindButton
	buttonKindSpecial
	buttonKindUnknown
)

func buttonsCapacity() int {
	return (blobSize - offButtons) / buttonEntryLen
}

// decodeResolution maps the blob's DPI-list index to a DPI value via
// dpiList (as populated from Driver/rapoo.DpiList); an out-of-range
// index decodes to 0, the same "unset" reading an empty list would give.
func decodeResolution(blob []byte, dpiList []uint16, r *ratmodel.Resolution) {
	idx := int(blob[offDPIIndex])
	if idx >= 0 && idx < len(dpiList) {
		r.DPIX = dpiList[idx]
		r.DPIY = dpiList[idx]
	}
}

// encodeResolution writes the nearest dpiList entry's index for r's DPIX.
func encodeResolution(blob []byte, dpiList []uint16, r *ratmodel.Resolution) error {
	if len(dpiList) == 0 {
		return ratbagerr.ErrUnsupported("rapoo: device has no configured DPI list")
	}
	best, bestDiff := 0, absDiff(dpiList[0], r.DPIX)
	for i, v := range dpiList {
		if d := absDiff(v, r.DPIX); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	blob[offDPIIndex] = byte(best)
	return nil
}

func absDiff(a, b uint16) uint16 {
	if a > b {
		return a - b
	}
	return b - a
}

func decodeButtons(blob []byte, buttons []*ratmodel.Button) error {
	need := offButtons + len(buttons)*buttonEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("rapoo: blob too short for its button block")
	}
	for i, b := range buttons {
		o := offButtons + i*buttonEntryLen
		kind, arg := blob[o], blob[o+1]
		switch kind {
		case buttonKindButton:
			b.Action = action.Button(int(arg))
		case buttonKindSpecial:
			b.Action = action.SpecialAction(action.Special(arg))
		case buttonKindNone:
			b.Action = action.None()
		default:
			b.Action = action.Unknown([]byte{kind, arg})
		}
	}
	return nil
}

func encodeButtons(blob []byte, buttons []*ratmodel.Button) error {
	need := offButtons + len(buttons)*buttonEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("rapoo: blob too short for its button block")
	}
	for i, b := range buttons {
		o := offButtons + i*buttonEntryLen
		switch b.Action.Kind {
		case action.KindNone:
			blob[o], blob[o+1] = buttonKindNone, 0
		case action.KindButton:
			blob[o], blob[o+1] = buttonKindButton, byte(b.Action.ButtonNumber)
		case action.KindSpecial:
			blob[o], blob[o+1] = buttonKindSpecial, byte(b.Action.SpecialTag)
		case action.KindUnknown:
			blob[o] = buttonKindUnknown
			if n := len(b.Action.RawVendorBytes); n > 0 {
				blob[o+1] = b.Action.RawVendorBytes[n-1]
			}
		default:
			return ratbagerr.ErrUnsupported("rapoo: button slot cannot encode this action kind")
		}
	}
	return nil
}
