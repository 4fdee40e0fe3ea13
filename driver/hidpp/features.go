package hidpp

import "github.com/go-ratbag/ratbag/ratbagerr"

// Feature ids this engine knows about (spec §4.5).
const (
	FeatureRoot                       uint16 = 0x0000
	FeatureFeatureSet                 uint16 = 0x0001
	FeatureDeviceInfo                 uint16 = 0x0003
	FeatureDeviceNameType             uint16 = 0x0005
	FeatureSpecialKeysAndMouseButtons uint16 = 0x1b04
	FeatureAdjustableDPI              uint16 = 0x2201
	FeatureReportRate                 uint16 = 0x8060
	FeatureRGBEffects                 uint16 = 0x8070
	FeatureRGBEffectsV2               uint16 = 0x8071
	FeatureOnboardProfiles            uint16 = 0x8100
)

// rootFeatureIndex is fixed by the protocol (spec §4.5: "Feature 0x0000
// (ROOT) is always at index 0").
const rootFeatureIndex = 0

const defaultSoftwareID = 0x01

// callID packs (function_id, software_id) into the byte a HID++ 2.0
// request's fourth byte carries (spec §4.5: "requests go to
// (device_index, feature_index, function_id<<4 | software_id)"). The
// feature_index itself is addressed separately, as the Conn.ShortRequest/
// LongRequest "sub" parameter.
func callID(function, software uint8) uint8 {
	return (function << 4) | (software & 0x0F)
}

// FeatureRow is one entry of a device's feature table.
type FeatureRow struct {
	Index   uint8
	ID      uint16
	Version uint8
	Flags   uint8
}

// FeatureTable is the feature-index cache built once at probe (spec
// §4.5: "the driver builds an index cache at probe").
type FeatureTable struct {
	rows []FeatureRow
}

// Index returns the feature index for id, or (0, false) if this device
// doesn't expose it.
func (ft *FeatureTable) Index(id uint16) (uint8, bool) {
	for _, r := range ft.rows {
		if r.ID == id {
			return r.Index, true
		}
	}
	return 0, false
}

// Has reports whether the device exposes feature id.
func (ft *FeatureTable) Has(id uint16) bool {
	_, ok := ft.Index(id)
	return ok
}

// Rows returns every row of the cached feature table.
func (ft *FeatureTable) Rows() []FeatureRow {
	out := make([]FeatureRow, len(ft.rows))
	copy(out, ft.rows)
	return out
}

func errUnsupportedFeature(id uint16) error {
	return ratbagerr.Newf(ratbagerr.Unsupported, "feature %#04x not present on this device", id)
}

// getFeatureIndex asks ROOT.getFeature(feature_id) -> index (function 0
// on ROOT, spec §4.5).
func getFeatureIndex(c *Conn, featureID uint16) (uint8, error) {
	payload := [4]byte{callID(0, defaultSoftwareID), byte(featureID >> 8), byte(featureID), 0}
	resp, err := c.ShortRequest(rootFeatureIndex, payload)
	if err != nil {
		return 0, err
	}
	index := resp[1]
	if index == 0 {
		return 0, ratbagerr.ErrUnsupported("feature not present on device")
	}
	return index, nil
}

// BuildFeatureTable enumerates every feature the device exposes: it asks
// ROOT for FEATURE_SET's index, reads FEATURE_SET's count (function 0),
// then reads each entry's id/type/version via getFeatureID (function 1),
// per spec §4.5.
func BuildFeatureTable(c *Conn) (*FeatureTable, error) {
	ft := &FeatureTable{rows: []FeatureRow{{Index: rootFeatureIndex, ID: FeatureRoot}}}

	fsIndex, err := getFeatureIndex(c, FeatureFeatureSet)
	if err != nil {
		return nil, err
	}
	ft.rows = append(ft.rows, FeatureRow{Index: fsIndex, ID: FeatureFeatureSet})

	countResp, err := c.ShortRequest(fsIndex, [4]byte{callID(0, defaultSoftwareID), 0, 0, 0})
	if err != nil {
		return nil, err
	}
	count := countResp[0]

	for i := uint8(1); i <= count; i++ {
		resp, err := c.ShortRequest(fsIndex, [4]byte{callID(1, defaultSoftwareID), i, 0, 0})
		if err != nil {
			return nil, err
		}
		id := uint16(resp[0])<<8 | uint16(resp[1])
		if id == 0 {
			continue
		}
		ft.rows = append(ft.rows, FeatureRow{Index: i, ID: id, Flags: resp[2], Version: resp[3]})
	}
	return ft, nil
}
