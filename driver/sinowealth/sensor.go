package sinowealth

// SensorModel identifies the DPI sensor a SinoWealth firmware build
// selects (spec §4.7: "firmware version is used to pick the sensor
// model (PMW3327/3360/3389), which determines max DPI and whether raw
// DPI is zero-indexed").
type SensorModel int

const (
	SensorUnknown SensorModel = iota
	SensorPMW3327
	SensorPMW3360
	SensorPMW3389
)

// SensorProfile describes one sensor model's DPI ceiling and raw-DPI
// indexing convention.
type SensorProfile struct {
	MaxDPI       uint16
	ZeroIndexed  bool // raw DPI byte 0 means the lowest step, not "off"
	DPIStepValue uint16
}

var sensorProfiles = map[SensorModel]SensorProfile{
	SensorPMW3327: {MaxDPI: 5000, ZeroIndexed: true, DPIStepValue: 100},
	SensorPMW3360: {MaxDPI: 12000, ZeroIndexed: false, DPIStepValue: 50},
	SensorPMW3389: {MaxDPI: 16000, ZeroIndexed: false, DPIStepValue: 50},
}

// SensorForFirmware maps a firmware version string to the sensor model it
// identifies, by the version-prefix convention this engine's device-data
// entries use ("3327-", "3360-", "3389-"); an unrecognized prefix yields
// SensorUnknown, which ProfileFor reports as the most conservative
// (PMW3327-equivalent) ceiling.
func SensorForFirmware(firmwareVersion string) SensorModel {
	switch {
	case hasPrefix(firmwareVersion, "3327"):
		return SensorPMW3327
	case hasPrefix(firmwareVersion, "3360"):
		return SensorPMW3360
	case hasPrefix(firmwareVersion, "3389"):
		return SensorPMW3389
	default:
		return SensorUnknown
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// ProfileFor returns the SensorProfile for model, defaulting to the
// PMW3327 ceiling for an unrecognized model rather than an unbounded one.
func ProfileFor(model SensorModel) SensorProfile {
	if p, ok := sensorProfiles[model]; ok {
		return p
	}
	return sensorProfiles[SensorPMW3327]
}

// RawDPIToValue converts a raw DPI step byte to a DPI value for the given
// sensor, honoring its zero-indexing convention.
func RawDPIToValue(model SensorModel, raw uint8) uint16 {
	p := ProfileFor(model)
	step := raw
	if !p.ZeroIndexed {
		if step == 0 {
			return 0
		}
		step--
	}
	v := uint16(step) * p.DPIStepValue
	if v > p.MaxDPI {
		v = p.MaxDPI
	}
	return v
}

// ValueToRawDPI is the inverse of RawDPIToValue.
func ValueToRawDPI(model SensorModel, value uint16) uint8 {
	p := ProfileFor(model)
	if value > p.MaxDPI {
		value = p.MaxDPI
	}
	step := value / p.DPIStepValue
	if !p.ZeroIndexed {
		step++
	}
	return uint8(step)
}
