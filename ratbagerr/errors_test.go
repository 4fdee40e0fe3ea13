package ratbagerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

func TestWrapPreservesExistingError(t *testing.T) {
	orig := ratbagerr.ErrTimeout("no reply")
	wrapped := ratbagerr.Wrap(ratbagerr.IoError, orig)
	assert.Same(t, orig, wrapped)
	assert.Equal(t, ratbagerr.Timeout, wrapped.Code)
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, ratbagerr.Wrap(ratbagerr.IoError, nil))
}

func TestWrapOpaqueError(t *testing.T) {
	cause := errors.New("read: connection reset")
	wrapped := ratbagerr.Wrap(ratbagerr.IoError, cause)
	assert.Equal(t, ratbagerr.IoError, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)
}

func TestExternalCodeMapping(t *testing.T) {
	tests := []struct {
		code ratbagerr.Code
		want ratbagerr.External
	}{
		{ratbagerr.NoDevice, ratbagerr.ExtDevice},
		{ratbagerr.Unsupported, ratbagerr.ExtCapability},
		{ratbagerr.InvalidArgument, ratbagerr.ExtValue},
		{ratbagerr.Timeout, ratbagerr.ExtSystem},
		{ratbagerr.ProtocolError, ratbagerr.ExtImplementation},
	}
	for _, tt := range tests {
		got := ratbagerr.ToExternal(tt.code)
		assert.Equal(t, tt.want, got)
	}
}

func TestExternalCodeSuccessOnNil(t *testing.T) {
	assert.Equal(t, ratbagerr.ExtSuccess, ratbagerr.ExternalCode(nil))
}
