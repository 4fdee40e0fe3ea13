package holtek8

import (
	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
)

// API distinguishes the two Holtek8 macro-store variants spec §4.6 names:
// API-B supports inter-page jumps (terminator 0xFE), API-A does not.
type API int

const (
	APIA API = iota
	APIB
)

const macroTerminatorJump = 0xFE

// macro event opcodes this engine's byte stream uses (a driver-chosen
// encoding; spec §4.6 only fixes the terminator/page-boundary rules).
const (
	opKeyDown = 0x01
	opKeyUp   = 0x02
	opWait    = 0x03
)

// waitTickMs is the resolution a single opWait byte encodes (0..255
// ticks of this many milliseconds each).
const waitTickMs = 10

// ReadMacroStream reads a macro's raw byte stream out of the chunked
// input-report transfer and truncates it at the terminator spec §4.6
// names: the {0,0} pair, or the end of a page that does not link to the
// next one (every page under API-A; under API-B, a page whose last pair
// does not start with the 0xFE jump marker).
func ReadMacroStream(t frameTransport, chunkSize, pageSize, maxPages int, api API) ([]byte, error) {
	raw, err := ReadChunked(t, CmdReadMacroData, pageSize*maxPages, chunkSize)
	if err != nil {
		return nil, err
	}
	return truncateAtTerminator(raw, pageSize, api), nil
}

func truncateAtTerminator(raw []byte, pageSize int, api API) []byte {
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			return raw[:i]
		}
		if (i+2)%pageSize == 0 {
			if api == APIB && raw[i] == macroTerminatorJump {
				continue // this page links to the next one; keep reading
			}
			return raw[:i+2]
		}
	}
	return raw
}

// WriteMacroStream writes a macro's encoded byte stream back, refusing
// one that would not fit within the pages available from currentIndex to
// maxMacroIndex (spec §4.6's "Write must fit within
// max_macro_index - current_index + 1 pages; overflow = OutOfSpace").
func WriteMacroStream(t frameTransport, data []byte, pageSize, chunkSize, currentIndex, maxMacroIndex int) error {
	maxBytes := (maxMacroIndex - currentIndex + 1) * pageSize
	if len(data) > maxBytes {
		return ratbagerr.ErrOutOfSpace("holtek8: macro does not fit in the remaining pages")
	}
	padded := make([]byte, len(data)+2) // trailing {0,0} terminator
	copy(padded, data)
	return WriteChunked(t, CmdReadMacroData, padded, chunkSize)
}

// EncodeMacro renders a uniform macro action's events into this engine's
// byte stream.
func EncodeMacro(events []action.MacroEvent) ([]byte, error) {
	out := make([]byte, 0, len(events)*2)
	for _, ev := range events {
		switch ev.Type {
		case action.KeyPressed:
			out = append(out, opKeyDown, byte(ev.Keycode))
		case action.KeyReleased:
			out = append(out, opKeyUp, byte(ev.Keycode))
		case action.Wait:
			ticks := ev.WaitMs / waitTickMs
			for ticks > 0 {
				step := ticks
				if step > 255 {
					step = 255
				}
				out = append(out, opWait, byte(step))
				ticks -= step
			}
		default:
			return nil, ratbagerr.ErrUnsupported("holtek8: unknown macro event type")
		}
	}
	return out, nil
}

// DecodeMacro parses this engine's byte stream back into a uniform
// macro's events.
func DecodeMacro(data []byte) ([]action.MacroEvent, error) {
	var events []action.MacroEvent
	for i := 0; i+1 < len(data); i += 2 {
		op, val := data[i], data[i+1]
		switch op {
		case opKeyDown:
			events = append(events, action.MacroEvent{Type: action.KeyPressed, Keycode: action.Keycode(val)})
		case opKeyUp:
			events = append(events, action.MacroEvent{Type: action.KeyReleased, Keycode: action.Keycode(val)})
		case opWait:
			events = append(events, action.MacroEvent{Type: action.Wait, WaitMs: int(val) * waitTickMs})
		default:
			return nil, ratbagerr.ErrProtocol("holtek8: unrecognized macro opcode")
		}
	}
	return events, nil
}
