// Package openrazer implements spec §4.7's Openrazer protocol engine: it
// does not speak HID at all. It delegates every mutation to an
// out-of-process daemon over the system message bus by issuing named
// methods (setDPI, setPollRate, set<Logo|Scroll>{Brightness,Static,
// Spectrum,Pulsate}) whose arguments come straight from the uniform
// model. Spec §4.7: "Treat this as an optional transport: if the broker
// is absent, NoDevice."
package openrazer

import (
	"github.com/godbus/dbus/v5"
	"github.com/go-ratbag/ratbag/ratbagerr"
)

// broker is the slice of a D-Bus object this engine needs — the same
// interface-for-testability seam the HID-backed engines give their
// transports.
type broker interface {
	Call(method string, args ...any) error
	Close() error
}

const (
	busName     = "org.razer"
	daemonPath  = "/org/razer"
	methodIface = "razer.device.misc"
)

// dbusBroker adapts a real *dbus.Conn/dbus.BusObject pair to broker.
type dbusBroker struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

func (d *dbusBroker) Call(method string, args ...any) error {
	call := d.obj.Call(methodIface+"."+method, 0, args...)
	return call.Err
}

func (d *dbusBroker) Close() error {
	return d.conn.Close()
}

// connectBroker dials the session bus and pings objectPath; a failure at
// either step means the daemon is not running, which Probe reports as
// NoDevice rather than any transport-level error (spec §4.7 names this
// explicitly as the one case in the whole driver set where "no broker"
// is a normal, expected probe outcome, not a fault).
func connectBroker(objectPath string) (broker, error) {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, ratbagerr.ErrNoDevice("openrazer: could not connect to the session bus")
	}
	if err := conn.Auth(nil); err != nil {
		_ = conn.Close()
		return nil, ratbagerr.ErrNoDevice("openrazer: session bus auth failed")
	}
	if err := conn.Hello(); err != nil {
		_ = conn.Close()
		return nil, ratbagerr.ErrNoDevice("openrazer: session bus hello failed")
	}
	obj := conn.Object(busName, dbus.ObjectPath(objectPath))
	if err := obj.Call("org.freedesktop.DBus.Peer.Ping", 0).Err; err != nil {
		_ = conn.Close()
		return nil, ratbagerr.ErrNoDevice("openrazer: daemon did not respond at " + objectPath)
	}
	return &dbusBroker{conn: conn, obj: obj}, nil
}
