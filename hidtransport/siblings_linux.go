//go:build linux

package hidtransport

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

// sysfsSiblingEnumerator is the default SiblingEnumerator: given an input
// event node (e.g. /dev/input/event3), it resolves the sysfs device symlink,
// walks up to the parent HID device directory, then back down through that
// parent's "hidraw" children to list their /dev nodes. Hosts embedding the
// core on Linux can use this as-is; any other host supplies its own
// SiblingEnumerator (spec §1/§4.1).
type sysfsSiblingEnumerator struct {
	sysClassInput string
	devDir        string
}

// DefaultSiblingEnumerator returns the sysfs-backed SiblingEnumerator a
// typical Linux host uses.
func DefaultSiblingEnumerator() SiblingEnumerator {
	return &sysfsSiblingEnumerator{sysClassInput: "/sys/class/input", devDir: "/dev"}
}

func (s *sysfsSiblingEnumerator) Siblings(inputDevicePath string) ([]string, error) {
	name := filepath.Base(inputDevicePath)
	linkPath := filepath.Join(s.sysClassInput, name, "device")

	devDir, err := filepath.EvalSymlinks(linkPath)
	if err != nil {
		return nil, ratbagerr.Wrap(ratbagerr.IoError, err)
	}

	hidParent, err := findHIDParent(devDir)
	if err != nil {
		return nil, err
	}

	var nodes []string
	entries, err := os.ReadDir(hidParent)
	if err != nil {
		return nil, ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "hidraw") {
			continue
		}
		hidrawDir := filepath.Join(hidParent, e.Name())
		children, err := os.ReadDir(hidrawDir)
		if err != nil {
			continue
		}
		for _, c := range children {
			if strings.HasPrefix(c.Name(), "hidraw") {
				nodes = append(nodes, filepath.Join(s.devDir, c.Name()))
			}
		}
	}
	if len(nodes) == 0 {
		return nil, ratbagerr.ErrNoDevice("no hidraw siblings found")
	}
	return nodes, nil
}

// findHIDParent walks up from devDir (an input device's sysfs directory)
// until it finds an ancestor whose name looks like a HID bus id
// ("bus:vendor:product.instance", e.g. "0003:046D:C52B.0001") — the
// directory that owns the hidraw children shared with every sibling input
// node of the same physical device.
func findHIDParent(devDir string) (string, error) {
	dir := devDir
	for i := 0; i < 8 && dir != "/" && dir != "."; i++ {
		if looksLikeHIDBusID(filepath.Base(dir)) {
			return dir, nil
		}
		dir = filepath.Dir(dir)
	}
	return "", ratbagerr.ErrNoDevice("no HID parent found in sysfs ancestry")
}

func looksLikeHIDBusID(name string) bool {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) != 2 {
		return false
	}
	fields := strings.Split(parts[0], ":")
	return len(fields) == 3
}
