// Package action implements spec §4.8: the uniform button-action/macro
// model every vendor driver normalizes into and out of, plus the HID
// usage ↔ OS key code conversion tables the uniform Key action and macro
// key events are expressed in.
package action

import "fmt"

// Kind tags which variant an Action holds.
type Kind int

const (
	// KindNone means the button produces nothing.
	KindNone Kind = iota
	// KindButton emits a numeric mouse button.
	KindButton
	// KindSpecial is one of the enumerated Special tags.
	KindSpecial
	// KindKey emits a single OS key code plus a modifier bitmask.
	KindKey
	// KindMacro replays a bounded sequence of MacroEvents.
	KindMacro
	// KindUnknown marks an action a driver could decode bytes for but has
	// no uniform representation for (spec §4.8's lossy decode edge); it
	// round-trips opaquely via RawVendorBytes.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindButton:
		return "Button"
	case KindSpecial:
		return "Special"
	case KindKey:
		return "Key"
	case KindMacro:
		return "Macro"
	case KindUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Special is the enumerated set of non-key, non-plain-button actions a
// vendor protocol commonly exposes (spec §3).
type Special int

const (
	SpecialDoubleClick Special = iota
	SpecialWheelUp
	SpecialWheelDown
	SpecialWheelLeft
	SpecialWheelRight
	SpecialResolutionUp
	SpecialResolutionDown
	SpecialResolutionCycle
	SpecialResolutionAlternate
	SpecialResolutionDefault
	SpecialProfileUp
	SpecialProfileDown
	SpecialProfileCycle
	SpecialSecondMode
	SpecialRatchetSwitch
	SpecialBattery
)

// MacroEvent is one step of a Macro action.
type MacroEvent struct {
	// Type selects which field below is meaningful.
	Type MacroEventType
	// Keycode is set for KeyPressed/KeyReleased.
	Keycode Keycode
	// WaitMs is set for Wait.
	WaitMs int
}

type MacroEventType int

const (
	KeyPressed MacroEventType = iota
	KeyReleased
	Wait
)

// MaxMacroEvents is the event-count ceiling spec §3 names for a Macro
// action; exceeding it is rejected at construction.
const MaxMacroEvents = 256

// Action is the tagged button-action variant spec §3 describes.
type Action struct {
	Kind         Kind
	ButtonNumber int
	SpecialTag   Special
	Keycode      Keycode
	Modifiers    uint8
	Events       []MacroEvent
	// RawVendorBytes preserves the undecodable wire payload for a
	// KindUnknown action so a no-op round trip does not silently mutate
	// device state (spec §4.8's decode-lossy-edge "(c)").
	RawVendorBytes []byte
}

// None constructs the no-op action.
func None() Action { return Action{Kind: KindNone} }

// Button constructs a numeric-mouse-button action.
func Button(n int) Action { return Action{Kind: KindButton, ButtonNumber: n} }

// SpecialAction constructs one of the enumerated Special actions.
func SpecialAction(tag Special) Action { return Action{Kind: KindSpecial, SpecialTag: tag} }

// Key constructs a single-keystroke action.
func Key(code Keycode, modifiers uint8) Action {
	return Action{Kind: KindKey, Keycode: code, Modifiers: modifiers}
}

// Macro constructs a macro action. Returns an error if events exceeds
// MaxMacroEvents (spec §3).
func Macro(events []MacroEvent) (Action, error) {
	if len(events) > MaxMacroEvents {
		return Action{}, fmt.Errorf("action: macro has %d events, max %d", len(events), MaxMacroEvents)
	}
	cp := make([]MacroEvent, len(events))
	copy(cp, events)
	return Action{Kind: KindMacro, Events: cp}, nil
}

// Unknown preserves raw bytes a driver could not decode into a uniform
// action (spec §4.8).
func Unknown(raw []byte) Action {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return Action{Kind: KindUnknown, RawVendorBytes: cp}
}

// waitCoalesceThresholdMs is the default tolerance Equal uses when
// comparing two Wait events; a driver encoding a macro may round wait
// durations to its own on-device tick, so exact-millisecond equality
// would make an unmodified round-tripped macro compare unequal to
// itself (spec §4.8, "modulo a driver-chosen threshold for Wait
// coalescing").
const waitCoalesceThresholdMs = 1

// Equal reports whether a and b represent the same action, per spec
// §4.8's matching rules: Button/Special/Key compare by value; Macro
// compares event lists with Wait durations compared within
// waitCoalesceThresholdMs of each other.
func (a Action) Equal(b Action) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNone:
		return true
	case KindButton:
		return a.ButtonNumber == b.ButtonNumber
	case KindSpecial:
		return a.SpecialTag == b.SpecialTag
	case KindKey:
		return a.Keycode == b.Keycode && a.Modifiers == b.Modifiers
	case KindMacro:
		return macroEventsEqual(a.Events, b.Events)
	case KindUnknown:
		return bytesEqual(a.RawVendorBytes, b.RawVendorBytes)
	default:
		return false
	}
}

func macroEventsEqual(a, b []MacroEvent) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type {
			return false
		}
		switch a[i].Type {
		case KeyPressed, KeyReleased:
			if a[i].Keycode != b[i].Keycode {
				return false
			}
		case Wait:
			diff := a[i].WaitMs - b[i].WaitMs
			if diff < 0 {
				diff = -diff
			}
			if diff > waitCoalesceThresholdMs {
				return false
			}
		}
	}
	return true
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
