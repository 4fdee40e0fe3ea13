package action

// Keycode is the uniform "OS key code" spec §4.8 asks the transport to
// convert HID usages to and from. This core targets Linux hosts, so the
// uniform space is the evdev KEY_* numbering from
// <linux/input-event-codes.h> — the numbering a host's input stack
// already speaks, so a caller building a Key action from a captured
// keypress needs no extra translation.
type Keycode uint16

// A representative subset of evdev KEY_* codes, named the way
// input-event-codes.h names them. Not exhaustive: drivers that need a key
// this table omits add it here rather than inventing a private numbering.
const (
	KeyEsc       Keycode = 1
	Key1         Keycode = 2
	Key2         Keycode = 3
	Key3         Keycode = 4
	Key4         Keycode = 5
	Key5         Keycode = 6
	Key6         Keycode = 7
	Key7         Keycode = 8
	Key8         Keycode = 9
	Key9         Keycode = 10
	Key0         Keycode = 11
	KeyMinus     Keycode = 12
	KeyEqual     Keycode = 13
	KeyBackspace Keycode = 14
	KeyTab       Keycode = 15
	KeyQ         Keycode = 16
	KeyW         Keycode = 17
	KeyE         Keycode = 18
	KeyR         Keycode = 19
	KeyT         Keycode = 20
	KeyY         Keycode = 21
	KeyU         Keycode = 22
	KeyI         Keycode = 23
	KeyO         Keycode = 24
	KeyP         Keycode = 25
	KeyLeftBrace Keycode = 26
	KeyRightBrace Keycode = 27
	KeyEnter      Keycode = 28
	KeyLeftCtrl   Keycode = 29
	KeyA          Keycode = 30
	KeyS          Keycode = 31
	KeyD          Keycode = 32
	KeyF          Keycode = 33
	KeyG          Keycode = 34
	KeyH          Keycode = 35
	KeyJ          Keycode = 36
	KeyK          Keycode = 37
	KeyL          Keycode = 38
	KeySemicolon  Keycode = 39
	KeyApostrophe Keycode = 40
	KeyGrave      Keycode = 41
	KeyLeftShift  Keycode = 42
	KeyBackslash  Keycode = 43
	KeyZ          Keycode = 44
	KeyX          Keycode = 45
	KeyC          Keycode = 46
	KeyV          Keycode = 47
	KeyB          Keycode = 48
	KeyN          Keycode = 49
	KeyM          Keycode = 50
	KeyComma      Keycode = 51
	KeyPeriod     Keycode = 52
	KeySlash      Keycode = 53
	KeyRightShift Keycode = 54
	KeyKPAsterisk Keycode = 55
	KeyLeftAlt    Keycode = 56
	KeySpace      Keycode = 57
	KeyCapsLock   Keycode = 58
	KeyF1         Keycode = 59
	KeyF2         Keycode = 60
	KeyF3         Keycode = 61
	KeyF4         Keycode = 62
	KeyF5         Keycode = 63
	KeyF6         Keycode = 64
	KeyF7         Keycode = 65
	KeyF8         Keycode = 66
	KeyF9         Keycode = 67
	KeyF10        Keycode = 68
	KeyNumLock    Keycode = 69
	KeyScrollLock Keycode = 70
	KeyKP7        Keycode = 71
	KeyKP8        Keycode = 72
	KeyKP9        Keycode = 73
	KeyKPMinus    Keycode = 74
	KeyKP4        Keycode = 75
	KeyKP5        Keycode = 76
	KeyKP6        Keycode = 77
	KeyKPPlus     Keycode = 78
	KeyKP1        Keycode = 79
	KeyKP2        Keycode = 80
	KeyKP3        Keycode = 81
	KeyKP0        Keycode = 82
	KeyKPDot      Keycode = 83
	KeyF11        Keycode = 87
	KeyF12        Keycode = 88
	KeyKPEnter    Keycode = 96
	KeyRightCtrl  Keycode = 97
	KeyKPSlash    Keycode = 98
	KeyRightAlt   Keycode = 100
	KeyHome       Keycode = 102
	KeyUp         Keycode = 103
	KeyPageUp     Keycode = 104
	KeyLeft       Keycode = 105
	KeyRight      Keycode = 106
	KeyEnd        Keycode = 107
	KeyDown       Keycode = 108
	KeyPageDown   Keycode = 109
	KeyInsert     Keycode = 110
	KeyDelete     Keycode = 111
	KeyLeftMeta   Keycode = 125
	KeyRightMeta  Keycode = 126
	KeyMenu       Keycode = 127

	// Consumer-page media keys (evdev numbering shared with the keyboard
	// space, unlike the HID usage tables below where they live on a
	// separate usage page).
	KeyMute       Keycode = 113
	KeyVolumeDown Keycode = 114
	KeyVolumeUp   Keycode = 115
	KeyPlayPause  Keycode = 164
	KeyStopCD     Keycode = 166
	KeyPrevious   Keycode = 165
	KeyNext       Keycode = 163
)

// hidKeyboardUsage is the USB HID Usage Page 0x07 (Keyboard/Keypad) code
// paired with each Keycode above.
var hidKeyboardUsage = map[Keycode]uint16{
	KeyEsc: 0x29, Key1: 0x1E, Key2: 0x1F, Key3: 0x20, Key4: 0x21, Key5: 0x22,
	Key6: 0x23, Key7: 0x24, Key8: 0x25, Key9: 0x26, Key0: 0x27,
	KeyMinus: 0x2D, KeyEqual: 0x2E, KeyBackspace: 0x2A, KeyTab: 0x2B,
	KeyQ: 0x14, KeyW: 0x1A, KeyE: 0x08, KeyR: 0x15, KeyT: 0x17, KeyY: 0x1C,
	KeyU: 0x18, KeyI: 0x0C, KeyO: 0x12, KeyP: 0x13,
	KeyLeftBrace: 0x2F, KeyRightBrace: 0x30, KeyEnter: 0x28, KeyLeftCtrl: 0xE0,
	KeyA: 0x04, KeyS: 0x16, KeyD: 0x07, KeyF: 0x09, KeyG: 0x0A, KeyH: 0x0B,
	KeyJ: 0x0D, KeyK: 0x0E, KeyL: 0x0F,
	KeySemicolon: 0x33, KeyApostrophe: 0x34, KeyGrave: 0x35, KeyLeftShift: 0xE1,
	KeyBackslash: 0x31,
	KeyZ:         0x1D, KeyX: 0x1B, KeyC: 0x06, KeyV: 0x19, KeyB: 0x05, KeyN: 0x11,
	KeyM:          0x10,
	KeyComma:      0x36, KeyPeriod: 0x37, KeySlash: 0x38, KeyRightShift: 0xE5,
	KeyKPAsterisk: 0x55, KeyLeftAlt: 0xE2, KeySpace: 0x2C, KeyCapsLock: 0x39,
	KeyF1: 0x3A, KeyF2: 0x3B, KeyF3: 0x3C, KeyF4: 0x3D, KeyF5: 0x3E, KeyF6: 0x3F,
	KeyF7: 0x40, KeyF8: 0x41, KeyF9: 0x42, KeyF10: 0x43,
	KeyNumLock: 0x53, KeyScrollLock: 0x47,
	KeyKP7: 0x5F, KeyKP8: 0x60, KeyKP9: 0x61, KeyKPMinus: 0x56,
	KeyKP4: 0x5C, KeyKP5: 0x5D, KeyKP6: 0x5E, KeyKPPlus: 0x57,
	KeyKP1: 0x59, KeyKP2: 0x5A, KeyKP3: 0x5B, KeyKP0: 0x62, KeyKPDot: 0x63,
	KeyF11: 0x44, KeyF12: 0x45,
	KeyKPEnter: 0x58, KeyRightCtrl: 0xE4, KeyKPSlash: 0x54, KeyRightAlt: 0xE6,
	KeyHome: 0x4A, KeyUp: 0x52, KeyPageUp: 0x4B, KeyLeft: 0x50, KeyRight: 0x4F,
	KeyEnd: 0x4D, KeyDown: 0x51, KeyPageDown: 0x4E, KeyInsert: 0x49, KeyDelete: 0x4C,
	KeyLeftMeta: 0xE3, KeyRightMeta: 0xE7, KeyMenu: 0x65,
}

// hidConsumerUsage is the USB HID Usage Page 0x0C (Consumer) code paired
// with each Keycode above, for keys the keyboard usage page has no
// representation for (media/volume keys).
var hidConsumerUsage = map[Keycode]uint16{
	KeyMute:       0xE2,
	KeyVolumeDown: 0xEA,
	KeyVolumeUp:   0xE9,
	KeyPlayPause:  0xCD,
	KeyStopCD:     0xB7,
	KeyPrevious:   0xB6,
	KeyNext:       0xB5,
}

var (
	keyboardUsageToKeycode map[uint16]Keycode
	consumerUsageToKeycode map[uint16]Keycode
)

func init() {
	keyboardUsageToKeycode = make(map[uint16]Keycode, len(hidKeyboardUsage))
	for kc, usage := range hidKeyboardUsage {
		keyboardUsageToKeycode[usage] = kc
	}
	consumerUsageToKeycode = make(map[uint16]Keycode, len(hidConsumerUsage))
	for kc, usage := range hidConsumerUsage {
		consumerUsageToKeycode[usage] = kc
	}
}

// KeycodeFromKeyboardUsage converts a HID keyboard-page usage to the
// uniform Keycode space. Returns (0, false) for an unmapped usage.
func KeycodeFromKeyboardUsage(usage uint16) (Keycode, bool) {
	kc, ok := keyboardUsageToKeycode[usage]
	return kc, ok
}

// KeyboardUsageFromKeycode converts a uniform Keycode to its HID
// keyboard-page usage. Returns (0, false) if this Keycode has no
// keyboard-page representation.
func KeyboardUsageFromKeycode(kc Keycode) (uint16, bool) {
	u, ok := hidKeyboardUsage[kc]
	return u, ok
}

// KeycodeFromConsumerUsage converts a HID consumer-page usage to the
// uniform Keycode space.
func KeycodeFromConsumerUsage(usage uint16) (Keycode, bool) {
	kc, ok := consumerUsageToKeycode[usage]
	return kc, ok
}

// ConsumerUsageFromKeycode converts a uniform Keycode to its HID
// consumer-page usage.
func ConsumerUsageFromKeycode(kc Keycode) (uint16, bool) {
	u, ok := hidConsumerUsage[kc]
	return u, ok
}

// KeycodeFromUsage tries the keyboard usage page first and falls back to
// the consumer page, per spec §4.8 ("consumer-usage fall-through is
// attempted only when the keyboard mapping yields 0").
func KeycodeFromUsage(keyboardUsage uint16) (Keycode, bool) {
	if kc, ok := KeycodeFromKeyboardUsage(keyboardUsage); ok {
		return kc, true
	}
	return KeycodeFromConsumerUsage(keyboardUsage)
}
