package ratmodel

import "fmt"

// Change describes one field that differs between two Device snapshots.
type Change struct {
	ProfileIndex int
	Entity       string // "profile", "resolution", "button", "led"
	EntityIndex  int
	Field        string
	Before       string
	After        string
}

func (c Change) String() string {
	return fmt.Sprintf("profile %d %s %d: %s %s -> %s", c.ProfileIndex, c.Entity, c.EntityIndex, c.Field, c.Before, c.After)
}

// Snapshot is a value-only copy of a Device's state, taken before or after
// a round of caller mutations, with no refcounts or driver state attached.
// Used with Diff to show what a commit would flush before actually
// flushing it; the diagnostic CLI does not call either.
type Snapshot struct {
	ident    Ident
	profiles []profileSnapshot
}

type profileSnapshot struct {
	isActive, isDefault, isEnabled bool
	reportRate                     int
	resolutions                    []resolutionSnapshot
	buttons                        []buttonSnapshot
	leds                           []ledSnapshot
}

type resolutionSnapshot struct {
	dpiX, dpiY    uint16
	reportRate    int
	isActive      bool
	isDefault     bool
	isDisabled    bool
}

type buttonSnapshot struct {
	actionDescription string
}

type ledSnapshot struct {
	mode         LedMode
	color        RGBColor
	brightness   uint8
	effectRateMs int
}

// TakeSnapshot captures d's current value state.
func TakeSnapshot(d *Device) *Snapshot {
	s := &Snapshot{ident: d.Ident}
	s.profiles = make([]profileSnapshot, len(d.profiles))
	for i, p := range d.profiles {
		ps := profileSnapshot{
			isActive: p.IsActive, isDefault: p.IsDefault, isEnabled: p.IsEnabled,
			reportRate: p.ReportRate,
		}
		ps.resolutions = make([]resolutionSnapshot, len(p.resolutions))
		for j, r := range p.resolutions {
			ps.resolutions[j] = resolutionSnapshot{
				dpiX: r.DPIX, dpiY: r.DPIY, reportRate: r.ReportRate,
				isActive: r.IsActive, isDefault: r.IsDefault, isDisabled: r.IsDisabled,
			}
		}
		ps.buttons = make([]buttonSnapshot, len(p.buttons))
		for j, b := range p.buttons {
			ps.buttons[j] = buttonSnapshot{actionDescription: describeAction(b)}
		}
		ps.leds = make([]ledSnapshot, len(p.leds))
		for j, l := range p.leds {
			ps.leds[j] = ledSnapshot{mode: l.Mode, color: l.Color, brightness: l.Brightness, effectRateMs: l.EffectRateMs}
		}
		s.profiles[i] = ps
	}
	return s
}

func describeAction(b *Button) string {
	return fmt.Sprintf("%s(button=%d,special=%d,key=%d,mods=%d,events=%d)",
		b.Action.Kind, b.Action.ButtonNumber, b.Action.SpecialTag, b.Action.Keycode, b.Action.Modifiers, len(b.Action.Events))
}

// Diff compares two Snapshots of the same device shape and returns one
// Change per differing field, in profile/entity/index order. Mismatched
// shapes (different profile/resolution/button/led counts) are reported as
// a single Change rather than an error, since this is a reporting helper,
// not a validator.
func Diff(before, after *Snapshot) []Change {
	var changes []Change
	if len(before.profiles) != len(after.profiles) {
		changes = append(changes, Change{Entity: "device", Field: "profile_count",
			Before: fmt.Sprint(len(before.profiles)), After: fmt.Sprint(len(after.profiles))})
		return changes
	}
	for i := range before.profiles {
		bp, ap := before.profiles[i], after.profiles[i]
		changes = append(changes, diffProfile(i, bp, ap)...)
	}
	return changes
}

func diffProfile(i int, bp, ap profileSnapshot) []Change {
	var changes []Change
	add := func(field, before, after string) {
		if before != after {
			changes = append(changes, Change{ProfileIndex: i, Entity: "profile", Field: field, Before: before, After: after})
		}
	}
	add("is_active", fmt.Sprint(bp.isActive), fmt.Sprint(ap.isActive))
	add("is_default", fmt.Sprint(bp.isDefault), fmt.Sprint(ap.isDefault))
	add("is_enabled", fmt.Sprint(bp.isEnabled), fmt.Sprint(ap.isEnabled))
	add("report_rate", fmt.Sprint(bp.reportRate), fmt.Sprint(ap.reportRate))

	for j := 0; j < len(bp.resolutions) && j < len(ap.resolutions); j++ {
		br, ar := bp.resolutions[j], ap.resolutions[j]
		radd := func(field, before, after string) {
			if before != after {
				changes = append(changes, Change{ProfileIndex: i, Entity: "resolution", EntityIndex: j, Field: field, Before: before, After: after})
			}
		}
		radd("dpi_x", fmt.Sprint(br.dpiX), fmt.Sprint(ar.dpiX))
		radd("dpi_y", fmt.Sprint(br.dpiY), fmt.Sprint(ar.dpiY))
		radd("report_rate", fmt.Sprint(br.reportRate), fmt.Sprint(ar.reportRate))
		radd("is_active", fmt.Sprint(br.isActive), fmt.Sprint(ar.isActive))
		radd("is_default", fmt.Sprint(br.isDefault), fmt.Sprint(ar.isDefault))
		radd("is_disabled", fmt.Sprint(br.isDisabled), fmt.Sprint(ar.isDisabled))
	}

	for j := 0; j < len(bp.buttons) && j < len(ap.buttons); j++ {
		if bp.buttons[j].actionDescription != ap.buttons[j].actionDescription {
			changes = append(changes, Change{ProfileIndex: i, Entity: "button", EntityIndex: j, Field: "action",
				Before: bp.buttons[j].actionDescription, After: ap.buttons[j].actionDescription})
		}
	}

	for j := 0; j < len(bp.leds) && j < len(ap.leds); j++ {
		bl, al := bp.leds[j], ap.leds[j]
		ladd := func(field, before, after string) {
			if before != after {
				changes = append(changes, Change{ProfileIndex: i, Entity: "led", EntityIndex: j, Field: field, Before: before, After: after})
			}
		}
		ladd("mode", fmt.Sprint(bl.mode), fmt.Sprint(al.mode))
		ladd("color", fmt.Sprintf("#%02x%02x%02x", bl.color.R, bl.color.G, bl.color.B), fmt.Sprintf("#%02x%02x%02x", al.color.R, al.color.G, al.color.B))
		ladd("brightness", fmt.Sprint(bl.brightness), fmt.Sprint(al.brightness))
		ladd("effect_rate_ms", fmt.Sprint(bl.effectRateMs), fmt.Sprint(al.effectRateMs))
	}

	return changes
}
