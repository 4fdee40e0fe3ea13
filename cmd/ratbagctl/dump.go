package main

import "github.com/go-ratbag/ratbag/ratmodel"

// resolutionDump/buttonDump/ledDump/profileDump/deviceDump are plain DTOs
// for JSON/YAML/TOML rendering of a probed Device — kept separate from
// ratmodel's own types since those carry unexported bookkeeping
// (refcount, dirty bits) this CLI has no business serializing.
type resolutionDump struct {
	Index      int    `json:"index" yaml:"index"`
	DPIX       uint16 `json:"dpiX" yaml:"dpiX"`
	DPIY       uint16 `json:"dpiY" yaml:"dpiY"`
	ReportRate int    `json:"reportRate" yaml:"reportRate"`
	IsActive   bool   `json:"isActive" yaml:"isActive"`
	IsDefault  bool   `json:"isDefault" yaml:"isDefault"`
	IsDisabled bool   `json:"isDisabled" yaml:"isDisabled"`
}

type buttonDump struct {
	Index      int    `json:"index" yaml:"index"`
	ActionKind string `json:"actionKind" yaml:"actionKind"`
}

type ledDump struct {
	Index      int    `json:"index" yaml:"index"`
	Type       string `json:"type" yaml:"type"`
	Mode       string `json:"mode" yaml:"mode"`
	Color      string `json:"color" yaml:"color"`
	Brightness uint8  `json:"brightness" yaml:"brightness"`
}

type profileDump struct {
	Index       int              `json:"index" yaml:"index"`
	IsActive    bool             `json:"isActive" yaml:"isActive"`
	IsDefault   bool             `json:"isDefault" yaml:"isDefault"`
	ReportRate  int              `json:"reportRate" yaml:"reportRate"`
	Resolutions []resolutionDump `json:"resolutions" yaml:"resolutions"`
	Buttons     []buttonDump     `json:"buttons" yaml:"buttons"`
	Leds        []ledDump        `json:"leds" yaml:"leds"`
}

type deviceDump struct {
	Name            string        `json:"name" yaml:"name"`
	FirmwareVersion string        `json:"firmwareVersion" yaml:"firmwareVersion"`
	Bus             uint32        `json:"bus" yaml:"bus"`
	Vendor          uint32        `json:"vendor" yaml:"vendor"`
	Product         uint32        `json:"product" yaml:"product"`
	Profiles        []profileDump `json:"profiles" yaml:"profiles"`
}

func dumpDevice(dev *ratmodel.Device) deviceDump {
	out := deviceDump{
		Name:            dev.Name,
		FirmwareVersion: dev.FirmwareVersion,
		Bus:             dev.Ident.Bus,
		Vendor:          dev.Ident.Vendor,
		Product:         dev.Ident.Product,
	}
	for _, p := range dev.Profiles() {
		out.Profiles = append(out.Profiles, dumpProfile(p))
	}
	return out
}

func dumpProfile(p *ratmodel.Profile) profileDump {
	pd := profileDump{
		Index:      p.Index,
		IsActive:   p.IsActive,
		IsDefault:  p.IsDefault,
		ReportRate: p.ReportRate,
	}
	for _, r := range p.Resolutions() {
		pd.Resolutions = append(pd.Resolutions, resolutionDump{
			Index: r.Index, DPIX: r.DPIX, DPIY: r.DPIY, ReportRate: r.ReportRate,
			IsActive: r.IsActive, IsDefault: r.IsDefault, IsDisabled: r.IsDisabled,
		})
	}
	for _, b := range p.Buttons() {
		pd.Buttons = append(pd.Buttons, buttonDump{Index: b.Index, ActionKind: b.Action.Kind.String()})
	}
	for _, l := range p.Leds() {
		pd.Leds = append(pd.Leds, ledDump{
			Index: l.Index, Type: ledTypeName(l.Type), Mode: ledModeName(l.Mode),
			Color: colorHex(l.Color), Brightness: l.Brightness,
		})
	}
	return pd
}

func ledTypeName(t ratmodel.LedType) string {
	switch t {
	case ratmodel.LedLogo:
		return "logo"
	case ratmodel.LedWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

func ledModeName(m ratmodel.LedMode) string {
	switch m {
	case ratmodel.LedModeOff:
		return "off"
	case ratmodel.LedModeOn:
		return "on"
	case ratmodel.LedModeCycle:
		return "cycle"
	case ratmodel.LedModeBreathing:
		return "breathing"
	default:
		return "unknown"
	}
}

func colorHex(c ratmodel.RGBColor) string {
	const hexdigits = "0123456789abcdef"
	b := [6]byte{}
	put := func(off int, v uint8) {
		b[off] = hexdigits[v>>4]
		b[off+1] = hexdigits[v&0x0f]
	}
	put(0, c.R)
	put(2, c.G)
	put(4, c.B)
	return "#" + string(b[:])
}
