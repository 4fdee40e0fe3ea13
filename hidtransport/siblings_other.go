//go:build !linux

package hidtransport

// DefaultSiblingEnumerator returns a SiblingEnumerator that always reports
// ErrUnsupportedPlatform; sysfs enumeration is Linux-specific, like the rest
// of this package's platform backend.
func DefaultSiblingEnumerator() SiblingEnumerator {
	return unsupportedSiblingEnumerator{}
}

type unsupportedSiblingEnumerator struct{}

func (unsupportedSiblingEnumerator) Siblings(inputDevicePath string) ([]string, error) {
	return nil, ErrUnsupportedPlatform
}
