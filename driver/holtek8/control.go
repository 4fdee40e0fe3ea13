// Package holtek8 implements spec §4.6: the Holtek8 protocol engine, a
// compact example of the non-HID++ per-vendor pattern built on a single
// 8-byte control frame and chunked input/output report transfers.
package holtek8

import (
	"time"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

// frameTransport is the slice of *hidtransport.Transport this engine
// needs, expressed as an interface so tests can drive it without a real
// hidraw node.
type frameTransport interface {
	GetFeature(buf []byte) (int, error)
	SetFeature(buf []byte) error
	Write(buf []byte) error
	Read(buf []byte, timeout time.Duration) (int, error)
	Close() error
}

// Control report ids and frame geometry (spec §4.6: "feature report 0
// with an 8-byte {cmd, arg[6], checksum} control frame").
const (
	controlReportID = 0x00
	controlFrameLen = 8 // cmd + arg[6] + checksum, not counting the report id byte
)

// Read commands (spec §4.6).
const (
	CmdReadActiveProfile = 0x82
	CmdReadRate          = 0x83
	CmdReadResolution    = 0x84
	CmdReadProfileData   = 0x8c
	CmdReadButtonConfig  = 0x8d
	CmdReadMacroData     = 0x8f
)

// writeCommand derives the write counterpart of a read command: the
// engine's read/write command pairs share every bit except the top one
// (spec §4.6 names only the read side; the write side is the same
// command with the read bit cleared).
func writeCommand(readCmd byte) byte {
	return readCmd &^ 0x80
}

const pollRetries = 10
const pollInterval = 1 * time.Millisecond

// checksum computes `0xFF - cmd - Σarg[i]` over the control frame (spec
// §4.6), relying on byte arithmetic to wrap mod 256.
func checksum(cmd byte, arg [6]byte) byte {
	sum := byte(0xFF) - cmd
	for _, a := range arg {
		sum -= a
	}
	return sum
}

// buildFrame assembles the 8-byte control frame for cmd/arg.
func buildFrame(cmd byte, arg [6]byte) [controlFrameLen]byte {
	var f [controlFrameLen]byte
	f[0] = cmd
	copy(f[1:7], arg[:])
	f[7] = checksum(cmd, arg)
	return f
}

// isDangerous reports whether cmd/arg is one of the known-dangerous
// command/argument combinations spec §4.6 names: "0xE, 0xF with arg > 50".
func isDangerous(cmd byte, arg [6]byte) bool {
	return (cmd == 0x0E || cmd == 0x0F) && arg[0] > 50
}

// sendControl writes cmd/arg as the control frame, refusing known-
// dangerous combinations (spec §4.6's danger guard).
func sendControl(t frameTransport, cmd byte, arg [6]byte) error {
	if isDangerous(cmd, arg) {
		return ratbagerr.ErrInvalidArgument("holtek8: refusing a known-dangerous command/argument combination")
	}
	frame := buildFrame(cmd, arg)
	buf := make([]byte, 1+controlFrameLen)
	buf[0] = controlReportID
	copy(buf[1:], frame[:])
	return t.SetFeature(buf)
}

// readControlAck reads back the control report as an acknowledgment,
// returning its 8-byte frame.
func readControlAck(t frameTransport) ([controlFrameLen]byte, error) {
	buf := make([]byte, 1+controlFrameLen)
	buf[0] = controlReportID
	n, err := t.GetFeature(buf)
	if err != nil {
		return [controlFrameLen]byte{}, err
	}
	if n < len(buf) {
		return [controlFrameLen]byte{}, ratbagerr.ErrIO("holtek8: short control report read")
	}
	var out [controlFrameLen]byte
	copy(out[:], buf[1:])
	return out, nil
}

// Authenticate performs the password ECHO round trip (spec §4.6:
// "cmd=0x00, arg=[R,A,T,B,0,0]"): the device must echo the same four
// bytes back, or AccessDenied.
func Authenticate(t frameTransport, password [4]byte) error {
	arg := [6]byte{password[0], password[1], password[2], password[3], 0, 0}
	if err := sendControl(t, 0x00, arg); err != nil {
		return err
	}
	ack, err := readControlAck(t)
	if err != nil {
		return err
	}
	if ack[1] != password[0] || ack[2] != password[1] || ack[3] != password[2] || ack[4] != password[3] {
		return ratbagerr.ErrAccessDenied("holtek8: password echo mismatch")
	}
	return nil
}

// drainStaleInput discards any input reports already queued before a
// chunked read begins, per spec §4.6's "clears any stale input reports
// with non-blocking poll/read".
func drainStaleInput(t frameTransport, reportLen int) {
	buf := make([]byte, reportLen)
	for {
		if _, err := t.Read(buf, time.Millisecond); err != nil {
			return
		}
	}
}
