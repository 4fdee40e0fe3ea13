package openinput

import (
	"testing"

	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newButtons(n int) []*ratmodel.Button {
	out := make([]*ratmodel.Button, n)
	for i := range out {
		out[i] = &ratmodel.Button{Index: i}
	}
	return out
}

func TestEncodeDecodeResolutionRoundTrip(t *testing.T) {
	frame := make([]byte, longLen)
	r := &ratmodel.Resolution{}
	r.DPIX, r.DPIY = 1200, 2400
	encodeResolution(frame, r)

	decoded := &ratmodel.Resolution{}
	decodeResolution(frame, decoded)
	assert.Equal(t, uint16(1200), decoded.DPIX)
	assert.Equal(t, uint16(2400), decoded.DPIY)
}

func TestEncodeDecodeButtonsRoundTrip(t *testing.T) {
	frame := make([]byte, longLen)
	buttons := newButtons(2)
	buttons[0].Action = action.Button(3)
	buttons[1].Action = action.None()

	require.NoError(t, encodeButtons(frame, buttons))

	decoded := newButtons(2)
	require.NoError(t, decodeButtons(frame, decoded))
	assert.Equal(t, action.KindButton, decoded[0].Action.Kind)
	assert.Equal(t, 3, decoded[0].Action.ButtonNumber)
	assert.Equal(t, action.KindNone, decoded[1].Action.Kind)
}

func TestDecodeButtonsRejectsShortBlock(t *testing.T) {
	err := decodeButtons(make([]byte, 4), newButtons(2))
	require.Error(t, err)
	assert.Equal(t, ratbagerr.ProtocolError, ratbagerr.CodeOf(err))
}
