package hidtransport

import "github.com/go-ratbag/ratbag/ratbagerr"

// ReportInfo is one row the report-descriptor parser emits: the report id
// found under a given usage page/usage context (spec §4.1/§2).
type ReportInfo struct {
	ReportID  uint8
	UsagePage uint16
	Usage     uint16
}

// Short-item type/tag values (HID 1.11 §6.2.2.2) this parser tracks. Only
// REPORT_ID, USAGE_PAGE, USAGE and the APPLICATION collection matter for
// spec §4.1/§2; everything else is consumed for sizing but ignored.
const (
	itemTypeMain   = 0
	itemTypeGlobal = 1
	itemTypeLocal  = 2
)

const collectionApplication = 0x01

// ParseReportDescriptor walks the short-item encoding of a HID report
// descriptor and returns one ReportInfo per REPORT_ID tag encountered,
// tagging an implicit report 0 on an APPLICATION collection with no prior
// REPORT_ID (spec §4.1).
func ParseReportDescriptor(desc []byte) ([]ReportInfo, error) {
	var (
		reports          []ReportInfo
		curPage          uint16
		curUsage         uint16
		curReportID      uint8
		sawReportID      bool
		sawAppCollection bool
	)

	i := 0
	for i < len(desc) {
		prefix := desc[i]
		size := prefix & 0x03
		if size == 3 {
			size = 4
		}
		tag := (prefix >> 4) & 0x0F
		itemType := (prefix >> 2) & 0x03
		i++

		if i+int(size) > len(desc) {
			return nil, ratbagerr.ErrProtocol("report descriptor item claims more bytes than remain")
		}
		data := desc[i : i+int(size)]
		i += int(size)

		value := littleEndianUint(data)

		switch itemType {
		case itemTypeGlobal:
			switch tag {
			case 0x0: // USAGE_PAGE
				curPage = uint16(value)
			case 0x8: // REPORT_ID
				curReportID = uint8(value)
				sawReportID = true
				reports = append(reports, ReportInfo{ReportID: curReportID, UsagePage: curPage, Usage: curUsage})
			}
		case itemTypeLocal:
			switch tag {
			case 0x0: // USAGE
				curUsage = uint16(value)
			}
		case itemTypeMain:
			switch tag {
			case 0xA: // COLLECTION
				if value == collectionApplication && !sawReportID && !sawAppCollection {
					sawAppCollection = true
					reports = append(reports, ReportInfo{ReportID: 0, UsagePage: curPage, Usage: curUsage})
				}
			}
		}
	}
	return reports, nil
}

func littleEndianUint(b []byte) uint32 {
	var v uint32
	for i, by := range b {
		v |= uint32(by) << (8 * i)
	}
	return v
}

// HasReport reports whether any parsed ReportInfo carries the given report
// id; used by drivers as the `has_report(id)` probe predicate (spec §4.1).
func HasReport(reports []ReportInfo, id uint8) bool {
	for _, r := range reports {
		if r.ReportID == id {
			return true
		}
	}
	return false
}

// MatchUsage reports whether any parsed ReportInfo matches the given
// usage page/usage pair; used by drivers as the usage-match probe
// predicate (spec §4.1).
func MatchUsage(reports []ReportInfo, usagePage, usage uint16) bool {
	for _, r := range reports {
		if r.UsagePage == usagePage && r.Usage == usage {
			return true
		}
	}
	return false
}
