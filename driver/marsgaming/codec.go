package marsgaming

import "github.com/go-ratbag/ratbag/action"

// Marsgaming's button block reuses the fixedrecord kind-byte scheme but
// additionally marks two vendor-specific slots — a media-control key and
// a "fire" (rapid-click) key — with raw kind bytes fixedrecord's generic
// decoder does not recognize. Decoding reports them as an opaque Unknown
// action the same way fixedrecord's own default case already would. There
// is no encoder for either one: a commit writes such a button through
// fixedrecord's generic Unknown entry (kind byte buttonKindUnknown, arg
// byte 0x10 or 0x11), not the original media/fire kind byte.
const (
	buttonKindMedia = 0x10
	buttonKindFire  = 0x11
)

// decodeMediaAction stub-decodes a media-key slot. It never round-trips
// back to the same wire bytes; see the package doc.
func decodeMediaAction(raw byte) action.Action {
	return action.Unknown([]byte{buttonKindMedia, raw})
}

// decodeFireAction stub-decodes a fire-key slot; see decodeMediaAction.
func decodeFireAction(raw byte) action.Action {
	return action.Unknown([]byte{buttonKindFire, raw})
}
