package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ratbag/ratbag/devicedata"
	"github.com/go-ratbag/ratbag/driver"
	"github.com/go-ratbag/ratbag/hidtransport"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// openedDevice bundles a probed Device with the Driver that produced it,
// since SetActiveProfile/Commit are vtable entries on the Driver, not the
// uniform model itself (spec §4.4).
type openedDevice struct {
	dev *ratmodel.Device
	drv driver.Driver
}

// identOf resolves the (bus, vendor, product) triple for a hidraw node by
// walking its sysfs ancestry up to the HID parent directory, whose name is
// the kernel's own "bus:vendor:product.instance" encoding (same sysfs
// layout hidtransport.sysfsSiblingEnumerator walks from the input-device
// side; this walks it from the hidraw side instead).
func identOf(hidrawPath string) (devicedata.Ident, error) {
	name := filepath.Base(hidrawPath)
	linkPath := filepath.Join("/sys/class/hidraw", name, "device")
	devDir, err := filepath.EvalSymlinks(linkPath)
	if err != nil {
		return devicedata.Ident{}, ratbagerr.Wrap(ratbagerr.IoError, err)
	}

	dir := devDir
	for i := 0; i < 8 && dir != "/" && dir != "."; i++ {
		if ident, ok := parseHIDBusID(filepath.Base(dir)); ok {
			return ident, nil
		}
		dir = filepath.Dir(dir)
	}
	return devicedata.Ident{}, ratbagerr.ErrNoDevice("no HID parent found in sysfs ancestry for " + hidrawPath)
}

// parseHIDBusID parses a sysfs directory name of the form
// "bus:vendor:product.instance" (e.g. "0003:046D:C52B.0001").
func parseHIDBusID(name string) (devicedata.Ident, bool) {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) != 2 {
		return devicedata.Ident{}, false
	}
	fields := strings.Split(parts[0], ":")
	if len(fields) != 3 {
		return devicedata.Ident{}, false
	}
	bus, err1 := strconv.ParseUint(fields[0], 16, 32)
	vendor, err2 := strconv.ParseUint(fields[1], 16, 32)
	product, err3 := strconv.ParseUint(fields[2], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return devicedata.Ident{}, false
	}
	return devicedata.Ident{Bus: uint32(bus), Vendor: uint32(vendor), Product: uint32(product)}, true
}

// listHidraw enumerates /dev/hidraw* nodes.
func listHidraw() ([]string, error) {
	entries, err := os.ReadDir("/dev")
	if err != nil {
		return nil, ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	var out []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "hidraw") {
			out = append(out, filepath.Join("/dev", e.Name()))
		}
	}
	return out, nil
}

// probeHidraw matches a hidraw node against the device-data registry and
// runs the resulting driver's Probe.
func probeHidraw(reg *devicedata.Registry, hidrawPath string, log *ratlog.Sink) (*openedDevice, error) {
	ident, err := identOf(hidrawPath)
	if err != nil {
		return nil, err
	}
	file, err := reg.Match(ident)
	if err != nil {
		return nil, err
	}
	file, err = withHolteki8Password(file)
	if err != nil {
		return nil, err
	}

	drv, ok := driver.Get(file.Driver)
	if !ok {
		return nil, ratbagerr.ErrNoDevice("no driver registered for " + file.Driver)
	}
	log.Infof("probing %s as %s (driver %s)", hidrawPath, file.Name, file.Driver)

	openOne := func(path string, flags int) (hidtransport.FileHandle, error) {
		return hidtransport.DefaultRestrictedOpen(path, flags)
	}

	target := &driver.Target{
		File:      file,
		Ident:     ident,
		InputPath: hidrawPath,
		Open:      openOne,
		Siblings:  hidtransport.DefaultSiblingEnumerator(),
	}

	dev, err := driver.Probe(target)
	if err != nil {
		return nil, err
	}
	return &openedDevice{dev: dev, drv: drv}, nil
}
