//go:build !linux

package hidtransport

import (
	"time"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

// ErrUnsupportedPlatform is returned by every operation on platforms with
// no hidraw backend. hidraw is Linux-specific; other OSes have their own
// HID transports, out of scope for this core the way karalabe/hid keeps
// its platform backends behind build tags.
var ErrUnsupportedPlatform = ratbagerr.New(ratbagerr.IoError, "hidtransport: unsupported platform")

func defaultOpen(path string, flags int) (FileHandle, error) {
	return nil, ErrUnsupportedPlatform
}

func readReportDescriptor(h FileHandle) ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}

func getFeatureReport(h FileHandle, buf []byte) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func sendFeatureReport(h FileHandle, buf []byte) error {
	return ErrUnsupportedPlatform
}

func readWithTimeout(h FileHandle, buf []byte, timeout time.Duration) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func pollReadable(h FileHandle) (bool, error) {
	return false, ErrUnsupportedPlatform
}
