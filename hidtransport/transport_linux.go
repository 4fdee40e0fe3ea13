//go:build linux

package hidtransport

import (
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

// hidraw ioctl request codes, computed the same way <linux/hidraw.h>'s
// _IOR/_IOC macros do. x/sys/unix doesn't predefine these (they're a
// driver-specific ioctl family, not a generic syscall), so the core
// computes them itself from the documented type/nr/size triples and
// issues the ioctl via unix.Syscall — x/sys/unix supplies the raw syscall
// primitive, the HID-specific encoding is ours to get right.
const (
	iocNone  = 0
	iocWrite = 1
	iocRead  = 2

	iocSizeBits = 14
	iocDirShift = 30
	iocTypeShift = 8
	iocNrShift   = 0
	iocSizeShift = 16

	hidIoctlType = 'H'
)

func iocEncode(dir, typ, nr, size uintptr) uintptr {
	return (dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNrShift) | (size << iocSizeShift)
}

const maxReportDescriptorSize = 4096

type hidrawReportDescriptor struct {
	Size  uint32
	Value [maxReportDescriptorSize]byte
}

var (
	hidiocGRDescSize = iocEncode(iocRead, hidIoctlType, 0x01, unsafe.Sizeof(int32(0)))
	hidiocGRDesc     = iocEncode(iocRead, hidIoctlType, 0x02, unsafe.Sizeof(hidrawReportDescriptor{}))
)

func hidiocSFeature(n int) uintptr {
	return iocEncode(iocWrite|iocRead, hidIoctlType, 0x06, uintptr(n))
}

func hidiocGFeature(n int) uintptr {
	return iocEncode(iocWrite|iocRead, hidIoctlType, 0x07, uintptr(n))
}

func defaultOpen(path string, flags int) (FileHandle, error) {
	return os.OpenFile(path, flags, 0)
}

func readReportDescriptor(h FileHandle) ([]byte, error) {
	fd := h.Fd()

	var size int32
	if err := ioctl(fd, hidiocGRDescSize, unsafe.Pointer(&size)); err != nil {
		return nil, ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	if size <= 0 || size > maxReportDescriptorSize {
		return nil, ratbagerr.ErrProtocol("implausible report descriptor size")
	}

	var rd hidrawReportDescriptor
	rd.Size = uint32(size)
	if err := ioctl(fd, hidiocGRDesc, unsafe.Pointer(&rd)); err != nil {
		return nil, ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	return rd.Value[:size], nil
}

func getFeatureReport(h FileHandle, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, ratbagerr.ErrInvalidArgument("empty feature buffer")
	}
	req := hidiocGFeature(len(buf))
	n, _, errno := unix.Syscall(unix.SYS_IOCTL, h.Fd(), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return 0, errno
	}
	return int(n), nil
}

func sendFeatureReport(h FileHandle, buf []byte) error {
	if len(buf) == 0 {
		return ratbagerr.ErrInvalidArgument("empty feature buffer")
	}
	req := hidiocSFeature(len(buf))
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, h.Fd(), req, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// readWithTimeout polls fd for readability before issuing a blocking Read,
// so a non-responding device surfaces ratbagerr.Timeout instead of
// hanging the caller's thread forever (spec §4.1, §5).
func readWithTimeout(h FileHandle, buf []byte, timeout time.Duration) (int, error) {
	pfd := []unix.PollFd{{Fd: int32(h.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(pfd, int(timeout.Milliseconds()))
	if err != nil {
		return 0, ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	if n == 0 {
		return 0, ratbagerr.ErrTimeout("no input report within deadline")
	}
	nn, err := h.Read(buf)
	if err != nil {
		return 0, ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	return nn, nil
}

// pollReadable reports whether fd has data available without blocking.
// It is installed as platformPollReadable; no Transport method or engine
// calls it.
func pollReadable(h FileHandle) (bool, error) {
	pfd := []unix.PollFd{{Fd: int32(h.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(pfd, 0)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
