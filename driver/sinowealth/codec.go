package sinowealth

import (
	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// Config blob field offsets beyond the header (spec §6 documents the
// report_rate byte's position via a worked example: "raw report_rate
// byte at offset 17 equals 0x03" for 500 Hz). Offsets for DPI/button
// entries beyond that single documented byte are this engine's own
// layout, in the same spirit as driver/holtek8's codec.go.
const (
	offsetReportRate = 17
	offsetFlags      = 18
	offsetDPIBase    = 20
	dpiEntryLen      = 1
	buttonEntryLen   = 2
)

// reportRateTable maps the raw report_rate byte to a rate in Hz; the
// worked example (0x03 -> 500 Hz) fixes one entry, the rest follow the
// same halving-per-step convention spec §4.5's HID++ report rate table
// uses.
var reportRateTable = []int{125, 250, 500, 1000}

func reportRateToRaw(hz int) (byte, error) {
	for i, v := range reportRateTable {
		if v == hz {
			return byte(i + 1), nil
		}
	}
	return 0, ratbagerr.ErrInvalidArgument("sinowealth: unsupported report rate")
}

func rawToReportRate(raw byte) (int, error) {
	idx := int(raw) - 1
	if idx < 0 || idx >= len(reportRateTable) {
		return 0, ratbagerr.ErrProtocol("sinowealth: report_rate byte out of range")
	}
	return reportRateTable[idx], nil
}

// DecodeReportRate reads the report_rate byte out of a full config blob.
func DecodeReportRate(blob []byte) (int, error) {
	if len(blob) <= offsetReportRate {
		return 0, ratbagerr.ErrProtocol("sinowealth: blob too short to carry report_rate")
	}
	return rawToReportRate(blob[offsetReportRate])
}

// EncodeReportRate writes hz's raw report_rate byte into blob.
func EncodeReportRate(blob []byte, hz int) error {
	if len(blob) <= offsetReportRate {
		return ratbagerr.ErrProtocol("sinowealth: blob too short to carry report_rate")
	}
	raw, err := reportRateToRaw(hz)
	if err != nil {
		return err
	}
	blob[offsetReportRate] = raw
	return nil
}

func decodeResolutions(blob []byte, model SensorModel, resolutions []*ratmodel.Resolution) error {
	need := offsetDPIBase + len(resolutions)*dpiEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("sinowealth: blob too short for its DPI block")
	}
	for i, r := range resolutions {
		raw := blob[offsetDPIBase+i*dpiEntryLen]
		v := RawDPIToValue(model, raw)
		r.DPIX, r.DPIY = v, v
	}
	return nil
}

func encodeResolutions(blob []byte, model SensorModel, resolutions []*ratmodel.Resolution) error {
	need := offsetDPIBase + len(resolutions)*dpiEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("sinowealth: blob too short for its DPI block")
	}
	for i, r := range resolutions {
		blob[offsetDPIBase+i*dpiEntryLen] = ValueToRawDPI(model, r.DPIX)
	}
	return nil
}

const (
	buttonKindNone uint8 = iota
	buttonKindButton
	buttonKindSpecial
	buttonKindUnknown
)

func buttonsOffset(numResolutions int) int {
	return offsetDPIBase + numResolutions*dpiEntryLen
}

func decodeButtons(blob []byte, numResolutions int, buttons []*ratmodel.Button) error {
	off := buttonsOffset(numResolutions)
	need := off + len(buttons)*buttonEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("sinowealth: blob too short for its button block")
	}
	for i, b := range buttons {
		o := off + i*buttonEntryLen
		b.Action = decodeButtonEntry([buttonEntryLen]byte(blob[o : o+buttonEntryLen]))
	}
	return nil
}

func encodeButtons(blob []byte, numResolutions int, buttons []*ratmodel.Button) error {
	off := buttonsOffset(numResolutions)
	need := off + len(buttons)*buttonEntryLen
	if len(blob) < need {
		return ratbagerr.ErrProtocol("sinowealth: blob too short for its button block")
	}
	for i, b := range buttons {
		enc, err := encodeButtonEntry(b.Action)
		if err != nil {
			return err
		}
		copy(blob[off+i*buttonEntryLen:], enc[:])
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
	case action.KindUnknown:
		out[0] = buttonKindUnknown
		if len(a.RawVendorBytes) > 0 {
			out[1] = a.RawVendorBytes[0]
		}
	default:
		return out, ratbagerr.ErrUnsupported("sinowealth: button slot cannot encode this action kind")
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
