package hidpp

import "github.com/go-ratbag/ratbag/action"

// Control-reporting flag bits for SPECIAL_KEYS_AND_MOUSE_BUTTONS (spec
// §4.5: "remap via diverted/persistent fields").
const (
	cidFlagDivert = 1 << iota
	cidFlagPersist
	cidFlagRawXY
)

// ControlInfo is one row of the device's physical-control table.
type ControlInfo struct {
	CID     uint16
	TaskID  uint16
	Flags   uint8
	Pos     uint8
	Group   uint8
	GMask   uint8
}

// specialTaskIDs maps a well-known HID++ task id to the uniform Special
// action it represents (spec §4.8's cid↔action catalogue, restricted to
// the fixed Special tags the uniform model defines).
var specialTaskIDs = map[uint16]action.Special{
	0x0001: action.SpecialWheelLeft,
	0x0002: action.SpecialWheelRight,
	0x0004: action.SpecialResolutionCycle,
	0x0005: action.SpecialResolutionUp,
	0x0006: action.SpecialResolutionDown,
	0x0009: action.SpecialProfileUp,
	0x000A: action.SpecialProfileDown,
	0x001F: action.SpecialDoubleClick,
	0x0056: action.SpecialBattery,
}

var specialTaskIDsReverse = reverseSpecialTaskIDs()

func reverseSpecialTaskIDs() map[action.Special]uint16 {
	out := make(map[action.Special]uint16, len(specialTaskIDs))
	for task, special := range specialTaskIDs {
		out[special] = task
	}
	return out
}

// ActionFromControl converts one device control row into a uniform
// action: a recognized task id becomes a Special action, an unrecognized
// one becomes Button(n) keyed by its table position so it still round
// trips distinctly per control.
func ActionFromControl(ci ControlInfo, position int) action.Action {
	if special, ok := specialTaskIDs[ci.TaskID]; ok {
		return action.SpecialAction(special)
	}
	return action.Button(position + 1)
}

// TaskIDFromAction is the inverse of ActionFromControl: it recovers the
// task id a Special action was decoded from, for re-encoding a remap
// request. Returns (0, false) for actions with no corresponding task id
// (Button/Key/Macro/Unknown/None all bypass the device's own task
// table).
func TaskIDFromAction(a action.Action) (uint16, bool) {
	if a.Kind != action.KindSpecial {
		return 0, false
	}
	task, ok := specialTaskIDsReverse[a.SpecialTag]
	return task, ok
}

// ReadControlTable enumerates every row of SPECIAL_KEYS_AND_MOUSE_BUTTONS
// (function 0 getCount, function 1 getControlIDInfo per index).
func ReadControlTable(c *Conn, ft *FeatureTable) ([]ControlInfo, error) {
	idx, ok := ft.Index(FeatureSpecialKeysAndMouseButtons)
	if !ok {
		return nil, errUnsupportedFeature(FeatureSpecialKeysAndMouseButtons)
	}
	countResp, err := c.ShortRequest(idx, [4]byte{callID(0, defaultSoftwareID), 0, 0, 0})
	if err != nil {
		return nil, err
	}
	count := int(countResp[0])

	rows := make([]ControlInfo, 0, count)
	for i := 0; i < count; i++ {
		resp, err := c.LongRequest(idx, []byte{callID(1, defaultSoftwareID), byte(i)})
		if err != nil {
			return nil, err
		}
		rows = append(rows, ControlInfo{
			CID:    uint16(resp[0])<<8 | uint16(resp[1]),
			TaskID: uint16(resp[2])<<8 | uint16(resp[3]),
			Flags:  resp[4],
			Pos:    resp[5],
			Group:  resp[6],
			GMask:  resp[7],
		})
	}
	return rows, nil
}

// SetControlReporting reconfigures one control's divert/persist flags
// (function 3, setCidReporting) so the device reports the raw press (or
// a remap) instead of its hardware default.
func SetControlReporting(c *Conn, ft *FeatureTable, cid uint16, divert, persist bool) error {
	idx, ok := ft.Index(FeatureSpecialKeysAndMouseButtons)
	if !ok {
		return errUnsupportedFeature(FeatureSpecialKeysAndMouseButtons)
	}
	var flags uint8
	if divert {
		flags |= cidFlagDivert
	}
	if persist {
		flags |= cidFlagPersist
	}
	payload := []byte{
		callID(3, defaultSoftwareID),
		byte(cid >> 8), byte(cid),
		flags,
	}
	_, err := c.LongRequest(idx, payload)
	return err
}
