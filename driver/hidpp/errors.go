package hidpp

import "github.com/go-ratbag/ratbag/ratbagerr"

// hidpp10Error maps a HID++ 1.0 register-protocol error code (spec §4.5)
// to the core's closed taxonomy.
func hidpp10Error(code byte) error {
	switch code {
	case 0x01: // invalid sub-id
		return ratbagerr.ErrBadMessage("hidpp10: invalid sub-id")
	case 0x02: // invalid address
		return ratbagerr.ErrBadMessage("hidpp10: invalid address")
	case 0x03: // invalid value
		return ratbagerr.ErrInvalidArgument("hidpp10: invalid value")
	case 0x04: // connect fail
		return ratbagerr.ErrIO("hidpp10: connect fail")
	case 0x05: // too many devices
		return ratbagerr.ErrOutOfSpace("hidpp10: too many devices")
	case 0x06: // already exists
		return ratbagerr.ErrInvalidState("hidpp10: already exists")
	case 0x07: // busy
		return ratbagerr.ErrIO("hidpp10: busy")
	case 0x08: // unknown device
		return ratbagerr.ErrNoDevice("hidpp10: unknown device")
	case 0x09: // resource error
		return ratbagerr.ErrOutOfSpace("hidpp10: resource error")
	case 0x0A: // request unavailable
		return ratbagerr.ErrUnsupported("hidpp10: request unavailable")
	case 0x0B: // unsupported feature
		return ratbagerr.ErrUnsupported("hidpp10: unsupported feature")
	case 0x0C: // wrong pin code
		return ratbagerr.ErrAccessDenied("hidpp10: wrong pin code")
	default:
		return ratbagerr.ErrProtocol("hidpp10: unknown error code")
	}
}

// hidpp20Error maps a HID++ 2.0 feature-protocol error code (spec §4.5)
// to the core's closed taxonomy.
func hidpp20Error(code byte) error {
	switch code {
	case 0x01: // unknown
		return ratbagerr.ErrProtocol("hidpp20: unknown error")
	case 0x02: // invalid argument
		return ratbagerr.ErrInvalidArgument("hidpp20: invalid argument")
	case 0x03: // out of range
		return ratbagerr.ErrInvalidArgument("hidpp20: out of range")
	case 0x04: // hardware error
		return ratbagerr.ErrIO("hidpp20: hardware error")
	case 0x05: // logitech internal
		return ratbagerr.ErrProtocol("hidpp20: logitech internal error")
	case 0x06: // invalid feature index
		return ratbagerr.ErrBadMessage("hidpp20: invalid feature index")
	case 0x07: // invalid function id
		return ratbagerr.ErrBadMessage("hidpp20: invalid function id")
	case 0x08: // busy
		return ratbagerr.ErrIO("hidpp20: busy")
	case 0x09: // unsupported
		return ratbagerr.ErrUnsupported("hidpp20: unsupported")
	default:
		return ratbagerr.ErrProtocol("hidpp20: unknown error code")
	}
}
