package hidpp

import "fmt"

// DeviceInfo is the identifying information DEVICE_INFO (0x0003) and
// DEVICE_NAME_TYPE (0x0005) together expose (spec §4.5).
type DeviceInfo struct {
	Name            string
	FirmwareVersion string
}

// ReadFirmwareVersion reads entity 0's firmware info from DEVICE_INFO
// (function 1, getFwInfo) and returns its three-character prefix (e.g.
// "PFX"); the version and build numbers are not included.
func ReadFirmwareVersion(c *Conn, ft *FeatureTable) (string, error) {
	idx, ok := ft.Index(FeatureDeviceInfo)
	if !ok {
		return "", errUnsupportedFeature(FeatureDeviceInfo)
	}
	resp, err := c.ShortRequest(idx, [4]byte{callID(1, defaultSoftwareID), 0, 0, 0})
	if err != nil {
		return "", err
	}
	// resp layout: [entity_type, prefix0, prefix1, prefix2]; the build
	// number would need a LongRequest to reach, but the short form
	// already covers what the uniform model needs.
	prefix := string(resp[1:4])
	return fmt.Sprintf("%s", prefix), nil
}

// ReadDeviceName reads the device's name string out of DEVICE_NAME_TYPE
// (0x0005): function 0 returns its length, function 1 returns 16-byte
// chunks starting at a given character index.
func ReadDeviceName(c *Conn, ft *FeatureTable) (string, error) {
	idx, ok := ft.Index(FeatureDeviceNameType)
	if !ok {
		return "", errUnsupportedFeature(FeatureDeviceNameType)
	}
	countResp, err := c.ShortRequest(idx, [4]byte{callID(0, defaultSoftwareID), 0, 0, 0})
	if err != nil {
		return "", err
	}
	length := int(countResp[0])
	if length == 0 {
		return "", nil
	}

	var name []byte
	for len(name) < length {
		resp, err := c.LongRequest(idx, []byte{callID(1, defaultSoftwareID), byte(len(name))})
		if err != nil {
			return "", err
		}
		remaining := length - len(name)
		if remaining > len(resp) {
			remaining = len(resp)
		}
		name = append(name, resp[:remaining]...)
	}
	return string(name), nil
}

// ReadDeviceInfo is the convenience entry point a driver's probe uses to
// fill in ratmodel.Device.Name/FirmwareVersion.
func ReadDeviceInfo(c *Conn, ft *FeatureTable) (DeviceInfo, error) {
	var info DeviceInfo
	if ft.Has(FeatureDeviceNameType) {
		name, err := ReadDeviceName(c, ft)
		if err != nil {
			return info, err
		}
		info.Name = name
	}
	if ft.Has(FeatureDeviceInfo) {
		fw, err := ReadFirmwareVersion(c, ft)
		if err != nil {
			return info, err
		}
		info.FirmwareVersion = fw
	}
	return info, nil
}
