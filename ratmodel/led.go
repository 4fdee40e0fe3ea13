package ratmodel

// Led is one illuminated element on the device (spec §3).
type Led struct {
	profile *Profile

	Index        int
	Type         LedType
	Mode         LedMode
	Color        RGBColor
	ColorDepth   LedColorDepth
	Brightness   uint8
	EffectRateMs int

	refcount int32
	dirty    bool
}

func newLed(p *Profile, index int) *Led {
	return &Led{profile: p, Index: index}
}

func (l *Led) ref()   { l.refcount++; l.profile.ref() }
func (l *Led) unref() { l.refcount--; l.profile.unref() }

// Profile returns the owning Profile (back-pointer, no refcount).
func (l *Led) Profile() *Profile { return l.profile }

// Dirty reports whether this Led has been mutated since the last clear.
func (l *Led) Dirty() bool { return l.dirty }

func (l *Led) markDirty() {
	l.dirty = true
	l.profile.markDirty()
}

// SetMode sets the effect mode.
func (l *Led) SetMode(m LedMode) {
	l.Mode = m
	l.markDirty()
}

// SetColor sets the RGB color, quantizing it to this Led's ColorDepth so
// the stored value matches what a round-trip read will later report.
func (l *Led) SetColor(c RGBColor) {
	l.Color = quantizeColor(c, l.ColorDepth)
	l.markDirty()
}

// SetBrightness sets the 0..255 brightness.
func (l *Led) SetBrightness(b uint8) {
	l.Brightness = b
	l.markDirty()
}

// SetEffectRate sets the effect rate in milliseconds.
func (l *Led) SetEffectRate(ms int) {
	l.EffectRateMs = ms
	l.markDirty()
}

func quantizeColor(c RGBColor, depth LedColorDepth) RGBColor {
	switch depth {
	case LedColorMono:
		if c.R == 0 && c.G == 0 && c.B == 0 {
			return RGBColor{}
		}
		return RGBColor{R: 255, G: 255, B: 255}
	case LedColorOneBitPerChannel:
		return RGBColor{R: quantizeBit(c.R), G: quantizeBit(c.G), B: quantizeBit(c.B)}
	default: // LedColorEightBitPerChannel
		return c
	}
}

func quantizeBit(v uint8) uint8 {
	if v >= 128 {
		return 255
	}
	return 0
}
