package openinput

import (
	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// A profile's data region (frame[offData:]) holds, in order: the profile
// index, one 4-byte (dpiX BE, dpiY BE) resolution entry, then one 2-byte
// (kind, arg) button entry per button — the same field shapes
// driver/internal/fixedrecord uses, packed into Openinput's page+function data
// area instead of a vendor-specific fixed report.
const (
	offProfileIndex = offData
	offResolution   = offData + 1
	resolutionLen   = 4
	buttonEntryLen  = 2
)

func buttonsOffset() int { return offResolution + resolutionLen }

const (
	buttonKindNone uint8 = iota
	buttonKindButton
	buttonKindSpecial
	buttonKindUnknown
)

func decodeResolution(frame []byte, r *ratmodel.Resolution) {
	o := offResolution
	r.DPIX = uint16(frame[o])<<8 | uint16(frame[o+1])
	r.DPIY = uint16(frame[o+2])<<8 | uint16(frame[o+3])
}

func encodeResolution(frame []byte, r *ratmodel.Resolution) {
	o := offResolution
	frame[o] = byte(r.DPIX >> 8)
	frame[o+1] = byte(r.DPIX)
	frame[o+2] = byte(r.DPIY >> 8)
	frame[o+3] = byte(r.DPIY)
}

func decodeButtons(frame []byte, buttons []*ratmodel.Button) error {
	boff := buttonsOffset()
	need := boff + len(buttons)*buttonEntryLen
	if len(frame) < need {
		return ratbagerr.ErrProtocol("openinput: frame too short for its button block")
	}
	for i, b := range buttons {
		o := boff + i*buttonEntryLen
		kind, arg := frame[o], frame[o+1]
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

func encodeButtons(frame []byte, buttons []*ratmodel.Button) error {
	boff := buttonsOffset()
	need := boff + len(buttons)*buttonEntryLen
	if len(frame) < need {
		return ratbagerr.ErrProtocol("openinput: frame too short for its button block")
	}
	for i, b := range buttons {
		o := boff + i*buttonEntryLen
		switch b.Action.Kind {
		case action.KindNone:
			frame[o], frame[o+1] = buttonKindNone, 0
		case action.KindButton:
			frame[o], frame[o+1] = buttonKindButton, byte(b.Action.ButtonNumber)
		case action.KindSpecial:
			frame[o], frame[o+1] = buttonKindSpecial, byte(b.Action.SpecialTag)
		case action.KindUnknown:
			frame[o] = buttonKindUnknown
			if len(b.Action.RawVendorBytes) > 0 {
				frame[o+1] = b.Action.RawVendorBytes[0]
			}
		default:
			return ratbagerr.ErrUnsupported("openinput: button slot cannot encode this action kind")
		}
	}
	return nil
}
