package ratbagerr

// External is the outward status taxonomy exposed to host applications
// that don't want to depend on the internal Code values (spec §4.9).
type External int

const (
	ExtSuccess        External = 0
	ExtDevice         External = -1000
	ExtCapability     External = -1001
	ExtValue          External = -1002
	ExtSystem         External = -1003
	ExtImplementation External = -1004
)

// ToExternal maps a Code onto the external taxonomy a host application
// checks against, independent of the core's internal error model.
func ToExternal(code Code) External {
	switch code {
	case NoDevice:
		return ExtDevice
	case Unsupported:
		return ExtCapability
	case InvalidArgument:
		return ExtValue
	case IoError, Timeout, AccessDenied, OutOfSpace:
		return ExtSystem
	case ProtocolError, BadMessage, InvalidState:
		return ExtImplementation
	default:
		return ExtImplementation
	}
}

// ExternalCode returns the external status for err, or ExtSuccess if err
// is nil.
func ExternalCode(err error) External {
	if err == nil {
		return ExtSuccess
	}
	return ToExternal(CodeOf(err))
}
