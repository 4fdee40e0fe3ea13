package holtek8

import (
	"time"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

const defaultReadTimeout = 1000 * time.Millisecond

// ReadChunked performs the chunked-read sequence spec §4.6 describes:
// set the control report with cmd, drain stale input, ack the control
// report, then read length/chunkSize input reports of exactly chunkSize
// bytes each.
func ReadChunked(t frameTransport, cmd byte, length, chunkSize int) ([]byte, error) {
	if err := sendControl(t, cmd, [6]byte{}); err != nil {
		return nil, err
	}
	drainStaleInput(t, chunkSize)
	if _, err := readControlAck(t); err != nil {
		return nil, err
	}

	numChunks := length / chunkSize
	if length%chunkSize != 0 {
		numChunks++
	}
	out := make([]byte, 0, length)
	for i := 0; i < numChunks; i++ {
		buf := make([]byte, chunkSize)
		n, err := t.Read(buf, defaultReadTimeout)
		if err != nil {
			return nil, err
		}
		if n != chunkSize {
			return nil, ratbagerr.ErrIO("holtek8: short chunk read")
		}
		out = append(out, buf...)
	}
	if len(out) > length {
		out = out[:length]
	}
	return out, nil
}

// bytesLeft extracts the bytes-remaining counter a control-report ack
// carries in its first two argument bytes.
func bytesLeft(ack [controlFrameLen]byte) uint16 {
	return uint16(ack[1])<<8 | uint16(ack[2])
}

// pollBytesLeft polls the control report via GET until it reports `want`
// remaining, up to pollRetries tries at pollInterval spacing (spec §4.6).
func pollBytesLeft(t frameTransport, want uint16) error {
	for i := 0; i < pollRetries; i++ {
		ack, err := readControlAck(t)
		if err == nil && bytesLeft(ack) == want {
			return nil
		}
		time.Sleep(pollInterval)
	}
	return ratbagerr.ErrIO("holtek8: timed out waiting for bytes_left to settle")
}

// WriteChunked performs the chunked-write sequence spec §4.6 describes:
// before each chunk, poll until bytes_left matches the running counter;
// each chunk is a zeroed report-id byte followed by exactly chunkSize
// payload bytes; after the last chunk, one more poll expects bytes_left=0.
func WriteChunked(t frameTransport, cmd byte, data []byte, chunkSize int) error {
	wcmd := writeCommand(cmd)
	total := len(data)
	if err := sendControl(t, wcmd, [6]byte{byte(total >> 8), byte(total)}); err != nil {
		return err
	}

	remaining := uint16(total)
	for offset := 0; offset < total; offset += chunkSize {
		if err := pollBytesLeft(t, remaining); err != nil {
			return err
		}
		end := offset + chunkSize
		if end > total {
			end = total
		}
		chunk := make([]byte, 1+chunkSize)
		copy(chunk[1:], data[offset:end])
		if err := t.Write(chunk); err != nil {
			return err
		}
		remaining -= uint16(end - offset)
	}
	return pollBytesLeft(t, 0)
}
