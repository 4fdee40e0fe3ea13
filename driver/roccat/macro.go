package roccat

import (
	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
)

// MacroBlobSize is the fixed size of a Roccat macro report spec §4.7
// names: "2082-byte blobs with trailing CRC (sum-of-bytes)".
const MacroBlobSize = 2082

// macro event opcodes this engine's byte stream uses within the blob body
// (a driver-chosen encoding; the protocol fixes the blob size and trailing
// checksum, not an event byte format).
const (
	macroOpKeyDown = 0x01
	macroOpKeyUp   = 0x02
	macroOpWait    = 0x03
	macroOpEnd     = 0x00
)

const macroWaitTickMs = 1

// macroBodyLen bounds how many bytes of 2-byte events fit in the blob body
// (blob minus report id, button index header, and trailing checksum).
const macroHeaderLen = 2 // report id + button index
const macroBodyLen = MacroBlobSize - macroHeaderLen - 2

// ReadMacroBlob issues the read-macro command for profile via the command
// register, reads the fixed-size macro report, verifies its checksum, and
// decodes the event stream out of its body. The command carries no button
// index: button is not sent to the device.
func ReadMacroBlob(t ctrlTransport, profile, button uint8) ([]action.MacroEvent, error) {
	if err := sendCommand(t, profile, whatReadMacro); err != nil {
		return nil, err
	}
	buf := make([]byte, MacroBlobSize)
	buf[0] = macroReportID
	n, err := t.GetFeature(buf)
	if err != nil {
		return nil, err
	}
	if n < MacroBlobSize {
		return nil, ratbagerr.ErrIO("roccat: short macro blob read")
	}
	if err := verifyChecksum(buf); err != nil {
		return nil, err
	}
	return decodeMacroBody(buf[macroHeaderLen : macroHeaderLen+macroBodyLen])
}

// WriteMacroBlob encodes events into a fresh macro blob for button, stamps
// its checksum, and writes it back.
func WriteMacroBlob(t ctrlTransport, profile, button uint8, events []action.MacroEvent) error {
	body, err := encodeMacroBody(events)
	if err != nil {
		return err
	}
	blob := make([]byte, MacroBlobSize)
	blob[0] = macroReportID
	blob[1] = button
	copy(blob[macroHeaderLen:], body)
	if err := WriteProfileBlobRaw(t, blob); err != nil {
		return err
	}
	return sendCommand(t, profile, whatWriteMacro)
}

// WriteProfileBlobRaw stamps blob's checksum and writes it as a feature
// report, without issuing a command-register select. Exported so
// WriteMacroBlob (a different report id than profile.go's
// WriteProfileBlob) can reuse the checksum-and-send step.
func WriteProfileBlobRaw(t ctrlTransport, blob []byte) error {
	stampChecksum(blob)
	return t.SetFeature(blob)
}

func encodeMacroBody(events []action.MacroEvent) ([]byte, error) {
	out := make([]byte, 0, len(events)*2+1)
	for _, ev := range events {
		switch ev.Type {
		case action.KeyPressed:
			out = append(out, macroOpKeyDown, byte(ev.Keycode))
		case action.KeyReleased:
			out = append(out, macroOpKeyUp, byte(ev.Keycode))
		case action.Wait:
			ticks := ev.WaitMs / macroWaitTickMs
			for ticks > 0 {
				step := ticks
				if step > 255 {
					step = 255
				}
				out = append(out, macroOpWait, byte(step))
				ticks -= step
			}
		default:
			return nil, ratbagerr.ErrUnsupported("roccat: unknown macro event type")
		}
	}
	out = append(out, macroOpEnd, 0x00)
	if len(out) > macroBodyLen {
		return nil, ratbagerr.ErrOutOfSpace("roccat: macro does not fit in the 2082-byte blob")
	}
	return out, nil
}

func decodeMacroBody(body []byte) ([]action.MacroEvent, error) {
	var events []action.MacroEvent
	for i := 0; i+1 < len(body); i += 2 {
		op, val := body[i], body[i+1]
		switch op {
		case macroOpEnd:
			return events, nil
		case macroOpKeyDown:
			events = append(events, action.MacroEvent{Type: action.KeyPressed, Keycode: action.Keycode(val)})
		case macroOpKeyUp:
			events = append(events, action.MacroEvent{Type: action.KeyReleased, Keycode: action.Keycode(val)})
		case macroOpWait:
			events = append(events, action.MacroEvent{Type: action.Wait, WaitMs: int(val) * macroWaitTickMs})
		default:
			return nil, ratbagerr.ErrProtocol("roccat: unrecognized macro opcode")
		}
	}
	return events, nil
}
