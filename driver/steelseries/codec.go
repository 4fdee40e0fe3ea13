package steelseries

import "github.com/go-ratbag/ratbag/ratmodel"

// ledEntryLen is 1 byte (brightness only) for a MonoLed device, or 4
// bytes (mode, R, G, B) for a full-color one.
func ledEntryLen(monoLed bool) int {
	if monoLed {
		return 1
	}
	return 4
}

func decodeLeds(blob []byte, ledsOffset int, monoLed bool, leds []*ratmodel.Led) {
	step := ledEntryLen(monoLed)
	for i, l := range leds {
		o := ledsOffset + i*step
		if monoLed {
			l.ColorDepth = ratmodel.LedColorMono
			l.Brightness = blob[o]
			if l.Brightness > 0 {
				l.Mode = ratmodel.LedModeOn
			} else {
				l.Mode = ratmodel.LedModeOff
			}
			continue
		}
		l.ColorDepth = ratmodel.LedColorEightBitPerChannel
		l.Mode = ratmodel.LedMode(blob[o])
		l.Color = ratmodel.RGBColor{R: blob[o+1], G: blob[o+2], B: blob[o+3]}
	}
}

func encodeLeds(blob []byte, ledsOffset int, monoLed bool, leds []*ratmodel.Led) {
	step := ledEntryLen(monoLed)
	for i, l := range leds {
		o := ledsOffset + i*step
		if monoLed {
			blob[o] = l.Brightness
			continue
		}
		blob[o] = byte(l.Mode)
		blob[o+1], blob[o+2], blob[o+3] = l.Color.R, l.Color.G, l.Color.B
	}
}
