// Package driver implements spec §4.4: registration of per-vendor
// protocol engines under a short id, and dispatch from a matched
// (bus, vendor, product) to the right one.
package driver

import (
	"sort"
	"sync"

	"github.com/go-ratbag/ratbag/devicedata"
	"github.com/go-ratbag/ratbag/hidtransport"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// Driver is the vtable every per-vendor protocol engine implements (spec
// §4.4).
type Driver interface {
	// Probe opens whatever hidraw siblings it needs, reads on-device
	// state, and returns a populated Device. Returns NoDevice to mean
	// "this isn't one of mine, try the next candidate"; any other error
	// aborts dispatch.
	Probe(t *Target) (*ratmodel.Device, error)
	// Remove releases transport handles; registered as the Device's
	// RemoveFunc by the dispatcher, not called directly by callers.
	Remove(dev *ratmodel.Device) error
	// Commit walks dirty nodes, serializes them to the wire, and clears
	// dirty bits on success.
	Commit(dev *ratmodel.Device) error
	// SetActiveProfile asks the hardware to switch its active profile,
	// in addition to the uniform model bookkeeping
	// ratmodel.Device.SetActiveProfile already does.
	SetActiveProfile(dev *ratmodel.Device, index int) error
}

// Target bundles what a driver's Probe needs: the matched device-data
// file (parameters, LED types) and a way to open its hidraw siblings.
type Target struct {
	File       *devicedata.File
	Ident      devicedata.Ident
	InputPath  string
	Open       hidtransport.RestrictedOpenFunc
	Siblings   hidtransport.SiblingEnumerator
}

// Capabilities is the small capability-query surface SPEC_FULL.md's
// supplemented features name: a caller can ask "does this driver support
// X" before attempting a mutation that would otherwise fail at commit
// time with Unsupported.
type Capabilities struct {
	IndividualReportRate bool
	SeparateXYDPI         bool
	DisableResolution      bool
	NamedProfiles          bool
	DefaultProfile         bool
	RGBEffects             bool
	Macros                 bool
}

// CapabilityProvider is optionally implemented by a Driver that wants to
// answer Capabilities queries without requiring a live Device.
type CapabilityProvider interface {
	Capabilities() Capabilities
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Driver)
)

// Register registers a Driver under a unique short id (spec §4.4). Called
// from each driver package's init().
func Register(id string, d Driver) {
	mu.Lock()
	defer mu.Unlock()
	registry[id] = d
}

// Get returns the Driver registered under id, or (nil, false).
func Get(id string) (Driver, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registry[id]
	return d, ok
}

// IDs returns every registered driver id, sorted.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// QueryCapabilities looks up the capability set a registered driver reports,
// if it implements CapabilityProvider.
func QueryCapabilities(id string) (Capabilities, bool) {
	d, ok := Get(id)
	if !ok {
		return Capabilities{}, false
	}
	cp, ok := d.(CapabilityProvider)
	if !ok {
		return Capabilities{}, false
	}
	return cp.Capabilities(), true
}

// Probe reads file.Driver to pick a registered driver and runs its Probe,
// then wires the Device's RemoveFunc to that same driver's Remove and
// runs the post-probe sanity check (spec §4.3/§4.4).
func Probe(t *Target) (*ratmodel.Device, error) {
	if t.File == nil {
		return nil, ratbagerr.ErrNoDevice("no device-data file matched")
	}
	d, ok := Get(t.File.Driver)
	if !ok {
		return nil, ratbagerr.ErrNoDevice("no driver registered for " + t.File.Driver)
	}

	dev, err := d.Probe(t)
	if err != nil {
		return nil, err
	}
	dev.SetRemoveFunc(d.Remove)

	if err := ratmodel.CheckSanity(dev); err != nil {
		_ = d.Remove(dev)
		return nil, err
	}
	return dev, nil
}
