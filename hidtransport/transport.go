// Package hidtransport implements spec §4.1: opening and scanning hidraw
// nodes, parsing report descriptors, and issuing feature GET/SET, output
// writes and input reads with timeouts.
//
// Two collaborators are supplied by the host rather than implemented here
// (spec §1): RestrictedOpen (the host may sandbox which paths may be
// opened) and SiblingEnumerator (the host's udev/sysfs walk). The core
// only states the contract it needs from each; DefaultSiblingEnumerator
// below is a working default a host can use or replace.
package hidtransport

import (
	"os"
	"time"

	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
)

// DefaultReadTimeout is the read timeout spec §4.1 names when a caller
// doesn't specify one.
const DefaultReadTimeout = 1000 * time.Millisecond

// Platform backend, indirected through vars so package-internal tests can
// substitute a fake hidraw node without real hardware or ioctls.
var (
	platformOpen           = defaultOpen
	platformReadReportDesc = readReportDescriptor
	platformGetFeature     = getFeatureReport
	platformSetFeature     = sendFeatureReport
	platformReadTimeout    = readWithTimeout
	platformPollReadable   = pollReadable
)

// RestrictedOpenFunc opens path for read/write, honoring whatever
// sandboxing policy the host embeds the core with. flags mirrors the
// os.O_* flags a caller would normally pass to os.OpenFile.
type RestrictedOpenFunc func(path string, flags int) (FileHandle, error)

// FileHandle is the minimal file-descriptor surface the transport needs;
// *os.File satisfies it.
type FileHandle interface {
	Fd() uintptr
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Close() error
}

// SiblingEnumerator finds the hidraw device nodes that are siblings (same
// physical USB/Bluetooth device) of a given input event node, by walking
// up to the HID parent and back down to its hidraw children.
type SiblingEnumerator interface {
	Siblings(inputDevicePath string) ([]string, error)
}

// Predicate filters candidate hidraw nodes during Probe: `has_report(id)`
// or a usage/usage-page match (spec §4.1).
type Predicate func(reports []ReportInfo) bool

// Transport holds one open hidraw node: its file descriptor and parsed
// report table.
type Transport struct {
	handle  FileHandle
	path    string
	reports []ReportInfo
	log     *ratlog.Sink
}

// Open opens path via open and reads+parses its report descriptor.
func Open(path string, open RestrictedOpenFunc, log *ratlog.Sink) (*Transport, error) {
	if log == nil {
		log = ratlog.Discard()
	}
	h, err := open(path, os.O_RDWR)
	if err != nil {
		return nil, ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	t := &Transport{handle: h, path: path, log: log}

	desc, err := platformReadReportDesc(h)
	if err != nil {
		_ = h.Close()
		return nil, err
	}
	reports, err := ParseReportDescriptor(desc)
	if err != nil {
		_ = h.Close()
		return nil, err
	}
	t.reports = reports
	return t, nil
}

// Path returns the hidraw node path this transport was opened from.
func (t *Transport) Path() string { return t.path }

// Reports returns the parsed report table (spec §4.1 state).
func (t *Transport) Reports() []ReportInfo { return t.reports }

// Probe reports whether pred matches this transport's report table.
func (t *Transport) Probe(pred Predicate) bool {
	return pred(t.reports)
}

// Close releases the underlying handle.
func (t *Transport) Close() error {
	return t.handle.Close()
}

// GetFeature fills buf (whose first byte is the report id on entry and
// must stay so on return) via a feature GET. Short reads are accepted; the
// actual length read is returned (spec §4.1).
func (t *Transport) GetFeature(buf []byte) (int, error) {
	n, err := platformGetFeature(t.handle, buf)
	if err != nil {
		return 0, ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	t.log.RawIn(buf[:n])
	return n, nil
}

// SetFeature sends buf (first byte = report id) via a feature SET.
func (t *Transport) SetFeature(buf []byte) error {
	t.log.RawOut(buf)
	if err := platformSetFeature(t.handle, buf); err != nil {
		return ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	return nil
}

// Write transmits buf as an output report in full, or fails with IoError.
func (t *Transport) Write(buf []byte) error {
	t.log.RawOut(buf)
	n, err := t.handle.Write(buf)
	if err != nil {
		return ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	if n != len(buf) {
		return ratbagerr.ErrIO("short write")
	}
	return nil
}

// Read performs a single input-report read with the given timeout (0 means
// DefaultReadTimeout). Returns ratbagerr.Timeout if nothing arrives in
// time.
func (t *Transport) Read(buf []byte, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	n, err := platformReadTimeout(t.handle, buf, timeout)
	if err != nil {
		return 0, err
	}
	t.log.RawIn(buf[:n])
	return n, nil
}

// ReadFiltered reads input reports, discarding any the driver predicate
// rejects, until one is accepted or the overall timeout elapses (spec
// §4.1's filtered input read, and the stale-ack drains in §4.6/§4.7).
func (t *Transport) ReadFiltered(buf []byte, accept func([]byte) bool, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, ratbagerr.ErrTimeout("no matching input report")
		}
		n, err := t.Read(buf, remaining)
		if err != nil {
			return 0, err
		}
		if accept(buf[:n]) {
			return n, nil
		}
	}
}

// DefaultRestrictedOpen opens path with plain os.OpenFile semantics; a
// host wanting a sandboxed open (spec §1) supplies its own
// RestrictedOpenFunc instead.
func DefaultRestrictedOpen(path string, flags int) (FileHandle, error) {
	return defaultOpen(path, flags)
}
