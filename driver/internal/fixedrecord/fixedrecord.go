// Package fixedrecord is the shared fixed-size per-profile report codec
// spec §4.7 describes for the G600/Etekcity/CMStorm/Marsgaming family:
// "fixed-size per-profile report structures; the engine maps bytes ↔
// uniform entities per a static table". Each vendor package in this
// family is a thin Layout plus a driver.Driver wrapper around these
// functions, the way the teacher's per-protocol files each wrap a shared
// wire discipline.
package fixedrecord

import (
	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// Transport is the slice of *hidtransport.Transport this family needs —
// the same interface-for-testability seam as driver/hidpp's
// wireTransport, driver/holtek8's frameTransport, driver/roccat's
// ctrlTransport, and driver/sinowealth's configTransport.
type Transport interface {
	GetFeature(buf []byte) (int, error)
	SetFeature(buf []byte) error
	Close() error
}

const (
	headerLen          = 2 // report id + profile index
	resolutionEntryLen = 4 // dpiX(2 BE), dpiY(2 BE)
	buttonEntryLen     = 2 // kind, arg
	macroEventLen      = 2 // op, val
	macroSlotHeaderLen = 1 // event count
)

const (
	buttonKindNone uint8 = iota
	buttonKindButton
	buttonKindSpecial
	buttonKindKey
	buttonKindMacro
	buttonKindUnknown
)

const (
	macroOpKeyDown = 0x01
	macroOpKeyUp   = 0x02
	macroOpWait    = 0x03
)

const macroWaitTickMs = 1

// Layout parameterizes one vendor's fixed-size profile report: its report
// id, per-profile resolution/button/macro-slot counts, and the per-button
// macro event ceiling spec §4.7's Non-goals name ("vendor engines may
// constrain further, e.g. max 50 events").
type Layout struct {
	ReportID       uint8
	NumResolutions int
	NumButtons     int
	MaxMacroEvents int
}

// ProfileSize computes the fixed report length this Layout's profile
// blob occupies: header + resolutions + buttons + one macro slot per
// button.
func (l Layout) ProfileSize() int {
	return headerLen +
		l.NumResolutions*resolutionEntryLen +
		l.NumButtons*buttonEntryLen +
		l.NumButtons*(macroSlotHeaderLen+l.MaxMacroEvents*macroEventLen)
}

func (l Layout) resolutionsOffset() int { return headerLen }
func (l Layout) buttonsOffset() int {
	return l.resolutionsOffset() + l.NumResolutions*resolutionEntryLen
}
func (l Layout) macroSlotsOffset() int {
	return l.buttonsOffset() + l.NumButtons*buttonEntryLen
}
func (l Layout) macroSlotSize() int {
	return macroSlotHeaderLen + l.MaxMacroEvents*macroEventLen
}
func (l Layout) macroSlotOffset(button int) int {
	return l.macroSlotsOffset() + button*l.macroSlotSize()
}

// ReadProfile selects profile by writing [reportID, profile] and reads
// back the fixed-size profile report.
func ReadProfile(t Transport, l Layout, profile uint8) ([]byte, error) {
	if err := t.SetFeature([]byte{l.ReportID, profile}); err != nil {
		return nil, err
	}
	buf := make([]byte, l.ProfileSize())
	buf[0] = l.ReportID
	n, err := t.GetFeature(buf)
	if err != nil {
		return nil, err
	}
	if n < len(buf) {
		return nil, ratbagerr.ErrIO("fixedrecord: short profile report read")
	}
	return buf, nil
}

// WriteProfile writes blob (whose length must equal l.ProfileSize()) back
// as profile's report.
func WriteProfile(t Transport, l Layout, profile uint8, blob []byte) error {
	if len(blob) != l.ProfileSize() {
		return ratbagerr.ErrProtocol("fixedrecord: profile blob has the wrong length for this layout")
	}
	blob[1] = profile
	return t.SetFeature(blob)
}

// DecodeResolutions reads blob's resolution block into resolutions.
func DecodeResolutions(blob []byte, l Layout, resolutions []*ratmodel.Resolution) error {
	off := l.resolutionsOffset()
	need := off + len(resolutions)*resolutionEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("fixedrecord: blob too short for its resolution block")
	}
	for i, r := range resolutions {
		o := off + i*resolutionEntryLen
		r.DPIX = uint16(blob[o])<<8 | uint16(blob[o+1])
		r.DPIY = uint16(blob[o+2])<<8 | uint16(blob[o+3])
	}
	return nil
}

// EncodeResolutions writes resolutions into blob's resolution block.
func EncodeResolutions(blob []byte, l Layout, resolutions []*ratmodel.Resolution) error {
	off := l.resolutionsOffset()
	need := off + len(resolutions)*resolutionEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("fixedrecord: blob too short for its resolution block")
	}
	for i, r := range resolutions {
		o := off + i*resolutionEntryLen
		blob[o] = byte(r.DPIX >> 8)
		blob[o+1] = byte(r.DPIX)
		blob[o+2] = byte(r.DPIY >> 8)
		blob[o+3] = byte(r.DPIY)
	}
	return nil
}

// DecodeButtons reads blob's button block and, for any button whose entry
// names a macro slot, decodes that slot's events into the Macro action.
func DecodeButtons(blob []byte, l Layout, buttons []*ratmodel.Button) error {
	boff := l.buttonsOffset()
	need := boff + len(buttons)*buttonEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("fixedrecord: blob too short for its button block")
	}
	for i, b := range buttons {
		o := boff + i*buttonEntryLen
		enc := [buttonEntryLen]byte(blob[o : o+buttonEntryLen])
		if enc[0] == buttonKindMacro {
			events, err := decodeMacroSlot(blob, l, i)
			if err != nil {
				return err
			}
			a, err := action.Macro(events)
			if err != nil {
				return err
			}
			b.Action = a
			continue
		}
		b.Action = decodeButtonEntry(enc)
	}
	return nil
}

// EncodeButtons validates every button's action against l.MaxMacroEvents
// first (so a single over-long macro leaves blob untouched), then encodes
// the button and macro-slot blocks into blob.
func EncodeButtons(blob []byte, l Layout, buttons []*ratmodel.Button) error {
	boff := l.buttonsOffset()
	need := boff + len(buttons)*buttonEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("fixedrecord: blob too short for its button block")
	}

	for _, b := range buttons {
		if b.Action.Kind == action.KindMacro && len(b.Action.Events) > l.MaxMacroEvents {
			return ratbagerr.ErrUnsupported("fixedrecord: macro exceeds this device's per-button event limit")
		}
	}

	for i, b := range buttons {
		o := boff + i*buttonEntryLen
		if b.Action.Kind == action.KindMacro {
			blob[o] = buttonKindMacro
			blob[o+1] = 0
			if err := encodeMacroSlot(blob, l, i, b.Action.Events); err != nil {
				return err
			}
			continue
		}
		enc, err := encodeButtonEntry(b.Action)
		if err != nil {
			return err
		}
		copy(blob[o:], enc[:])
	}
	return nil
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
		out[1] = byte(a.Keycode)
	case action.KindUnknown:
		out[0] = buttonKindUnknown
		if len(a.RawVendorBytes) > 0 {
			out[1] = a.RawVendorBytes[0]
		}
	default:
		return out, ratbagerr.ErrUnsupported("fixedrecord: button slot cannot encode this action kind")
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
		return action.Key(action.Keycode(enc[1]), 0)
	case buttonKindNone:
		return action.None()
	default:
		return action.Unknown(enc[1:])
	}
}

func encodeMacroSlot(blob []byte, l Layout, button int, events []action.MacroEvent) error {
	off := l.macroSlotOffset(button)
	slot := blob[off : off+l.macroSlotSize()]
	for i := range slot {
		slot[i] = 0
	}
	slot[0] = byte(len(events))
	for i, ev := range events {
		eoff := macroSlotHeaderLen + i*macroEventLen
		switch ev.Type {
		case action.KeyPressed:
			slot[eoff], slot[eoff+1] = macroOpKeyDown, byte(ev.Keycode)
		case action.KeyReleased:
			slot[eoff], slot[eoff+1] = macroOpKeyUp, byte(ev.Keycode)
		case action.Wait:
			ticks := ev.WaitMs / macroWaitTickMs
			if ticks > 255 {
				ticks = 255
			}
			slot[eoff], slot[eoff+1] = macroOpWait, byte(ticks)
		default:
			return ratbagerr.ErrUnsupported("fixedrecord: unknown macro event type")
		}
	}
	return nil
}

func decodeMacroSlot(blob []byte, l Layout, button int) ([]action.MacroEvent, error) {
	off := l.macroSlotOffset(button)
	slot := blob[off : off+l.macroSlotSize()]
	count := int(slot[0])
	if count > l.MaxMacroEvents {
		return nil, ratbagerr.ErrProtocol("fixedrecord: macro slot event count exceeds its own capacity")
	}
	events := make([]action.MacroEvent, 0, count)
	for i := 0; i < count; i++ {
		eoff := macroSlotHeaderLen + i*macroEventLen
		op, val := slot[eoff], slot[eoff+1]
		switch op {
		case macroOpKeyDown:
			events = append(events, action.MacroEvent{Type: action.KeyPressed, Keycode: action.Keycode(val)})
		case macroOpKeyUp:
			events = append(events, action.MacroEvent{Type: action.KeyReleased, Keycode: action.Keycode(val)})
		case macroOpWait:
			events = append(events, action.MacroEvent{Type: action.Wait, WaitMs: int(val) * macroWaitTickMs})
		default:
			return nil, ratbagerr.ErrProtocol("fixedrecord: unrecognized macro opcode")
		}
	}
	return events, nil
}
