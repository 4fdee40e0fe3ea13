package hidpp

// reportRateBits maps a REPORT_RATE bitmask bit index to the Hz value it
// represents (spec §4.5: "rate list and setter").
var reportRateBits = []int{1000, 500, 250, 125}

// ReadReportRateList reads REPORT_RATE's supported-rate bitmask (function
// 0) and returns the Hz values it advertises.
func ReadReportRateList(c *Conn, ft *FeatureTable) ([]int, error) {
	idx, ok := ft.Index(FeatureReportRate)
	if !ok {
		return nil, errUnsupportedFeature(FeatureReportRate)
	}
	resp, err := c.ShortRequest(idx, [4]byte{callID(0, defaultSoftwareID), 0, 0, 0})
	if err != nil {
		return nil, err
	}
	mask := resp[0]
	var out []int
	for bit, hz := range reportRateBits {
		if mask&(1<<uint(bit)) != 0 {
			out = append(out, hz)
		}
	}
	return out, nil
}

// ReadReportRate reads the device's current rate (function 1).
func ReadReportRate(c *Conn, ft *FeatureTable) (int, error) {
	idx, ok := ft.Index(FeatureReportRate)
	if !ok {
		return 0, errUnsupportedFeature(FeatureReportRate)
	}
	resp, err := c.ShortRequest(idx, [4]byte{callID(1, defaultSoftwareID), 0, 0, 0})
	if err != nil {
		return 0, err
	}
	bit := int(resp[0])
	if bit < 0 || bit >= len(reportRateBits) {
		return 0, errUnsupportedFeature(FeatureReportRate)
	}
	return reportRateBits[bit], nil
}

// WriteReportRate sets the device's rate (function 2). hz must be one of
// the values reportRateBits names.
func WriteReportRate(c *Conn, ft *FeatureTable, hz int) error {
	idx, ok := ft.Index(FeatureReportRate)
	if !ok {
		return errUnsupportedFeature(FeatureReportRate)
	}
	bit := -1
	for i, v := range reportRateBits {
		if v == hz {
			bit = i
			break
		}
	}
	if bit < 0 {
		return errUnsupportedFeature(FeatureReportRate)
	}
	_, err := c.ShortRequest(idx, [4]byte{callID(2, defaultSoftwareID), byte(bit), 0, 0})
	return err
}
