package hidpp

import "github.com/go-ratbag/ratbag/ratmodel"

// dpiRangeMarker flags a value in a getSensorDpiList reply as the start
// of a min/step/max triple rather than a plain list entry (real devices
// use 0xE000 | step for this; spec §4.5 only requires that the driver
// recover "either an explicit list or a min/max/step range").
const dpiRangeMarker = 0xE000

// ReadDPIList reads ADJUSTABLE_DPI's sensor DPI list (function 1) for
// sensorIndex and returns it as a ratmodel.DPIRange.
func ReadDPIList(c *Conn, ft *FeatureTable, sensorIndex uint8) (ratmodel.DPIRange, error) {
	idx, ok := ft.Index(FeatureAdjustableDPI)
	if !ok {
		return ratmodel.DPIRange{}, errUnsupportedFeature(FeatureAdjustableDPI)
	}
	resp, err := c.LongRequest(idx, []byte{callID(1, defaultSoftwareID), sensorIndex})
	if err != nil {
		return ratmodel.DPIRange{}, err
	}

	var out ratmodel.DPIRange
	for i := 0; i+1 < len(resp); i += 2 {
		v := uint16(resp[i])<<8 | uint16(resp[i+1])
		if v == 0 {
			break
		}
		if v&dpiRangeMarker == dpiRangeMarker && i+5 < len(resp) {
			step := v &^ dpiRangeMarker
			min := uint16(resp[i+2])<<8 | uint16(resp[i+3])
			max := uint16(resp[i+4])<<8 | uint16(resp[i+5])
			out.Min, out.Max, out.Step = min, max, step
			return out, nil
		}
		out.List = append(out.List, v)
	}
	return out, nil
}

// ReadDPI reads a sensor's current DPI (function 2).
func ReadDPI(c *Conn, ft *FeatureTable, sensorIndex uint8) (dpiX, dpiY uint16, err error) {
	idx, ok := ft.Index(FeatureAdjustableDPI)
	if !ok {
		return 0, 0, errUnsupportedFeature(FeatureAdjustableDPI)
	}
	resp, err := c.ShortRequest(idx, [4]byte{callID(2, defaultSoftwareID), sensorIndex, 0, 0})
	if err != nil {
		return 0, 0, err
	}
	dpiX = uint16(resp[0])<<8 | uint16(resp[1])
	dpiY = uint16(resp[2])<<8 | uint16(resp[3])
	if dpiY == 0 {
		dpiY = dpiX
	}
	return dpiX, dpiY, nil
}

// WriteDPI sets a sensor's DPI (function 3).
func WriteDPI(c *Conn, ft *FeatureTable, sensorIndex uint8, dpiX, dpiY uint16) error {
	idx, ok := ft.Index(FeatureAdjustableDPI)
	if !ok {
		return errUnsupportedFeature(FeatureAdjustableDPI)
	}
	payload := []byte{
		callID(3, defaultSoftwareID), sensorIndex,
		byte(dpiX >> 8), byte(dpiX),
		byte(dpiY >> 8), byte(dpiY),
	}
	_, err := c.LongRequest(idx, payload)
	return err
}
