// Package roccat implements spec §4.7's Roccat protocol engine: a
// command register that selects what a following profile/macro blob
// transfer refers to, gated by a ready-poll on that same register, plus
// sum-of-bytes checksums on every blob.
package roccat

import (
	"time"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

// ctrlTransport is the slice of *hidtransport.Transport this engine needs,
// expressed as an interface so tests can drive it without a real hidraw
// node (same seam as driver/hidpp's wireTransport and driver/holtek8's
// frameTransport).
type ctrlTransport interface {
	GetFeature(buf []byte) (int, error)
	SetFeature(buf []byte) error
	Close() error
}

// Report ids (spec §4.7: "report 4 = command").
const (
	commandReportID = 4
	profileReportID = 5
	macroReportID   = 6
)

// "what" selectors the command register's third byte names; the protocol
// fixes the register's shape ([4, profile, what]) but not a name for
// every operation it can select, so these are this engine's own naming
// for the operations it actually issues.
const (
	whatReadProfile  = 1
	whatWriteProfile = 2
	whatReadMacro    = 3
	whatWriteMacro   = 4
	whatSelectActive = 5
)

// Ready-poll status values (spec §6's wire table: 1 = ready, 2 = still
// busy (retry), 3 = also retry, >3 = error).
const (
	statusReady       = 1
	statusBusy        = 2
	statusAlsoRetry   = 3
	statusErrorThresh = 4
)

const (
	readyPollRetries  = 10
	readyPollInterval = 10 * time.Millisecond
)

// sendCommand writes the command register to select profile/what, then
// polls the same register until it reports ready, busy repeatedly until
// timeout, or an error code.
func sendCommand(t ctrlTransport, profile, what uint8) error {
	buf := []byte{commandReportID, profile, what}
	if err := t.SetFeature(buf); err != nil {
		return err
	}
	return pollReady(t)
}

// pollReady polls the command register up to readyPollRetries times,
// sleeping readyPollInterval between tries.
func pollReady(t ctrlTransport) error {
	buf := make([]byte, 3)
	buf[0] = commandReportID
	for i := 0; i < readyPollRetries; i++ {
		n, err := t.GetFeature(buf)
		if err != nil {
			return err
		}
		if n < 3 {
			return ratbagerr.ErrIO("roccat: short command register read")
		}
		switch status := buf[2]; {
		case status == statusReady:
			return nil
		case status == statusBusy || status == statusAlsoRetry:
			time.Sleep(readyPollInterval)
		case status >= statusErrorThresh:
			return ratbagerr.ErrProtocol("roccat: command register reported an error status")
		default:
			time.Sleep(readyPollInterval)
		}
	}
	return ratbagerr.ErrTimeout("roccat: command register never reported ready")
}

// checksum computes the trailing sum-of-bytes word spec §6 names: the sum
// of every byte preceding the checksum word, modulo 65536.
func checksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}
