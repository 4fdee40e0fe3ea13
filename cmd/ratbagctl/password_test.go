package main

import (
	"testing"

	"github.com/go-ratbag/ratbag/devicedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHolteki8PasswordSkipsOtherDrivers(t *testing.T) {
	f := &devicedata.File{Driver: "roccat"}
	got, err := withHolteki8Password(f)
	require.NoError(t, err)
	assert.Same(t, f, got)
}

func TestWithHolteki8PasswordSkipsWhenAlreadySet(t *testing.T) {
	f := &devicedata.File{
		Driver: "holtek8",
		Sections: []devicedata.Section{
			{Name: "Driver/holtek8", Keys: []devicedata.KV{{Key: "Password", Value: "deadbeef"}}},
		},
	}
	got, err := withHolteki8Password(f)
	require.NoError(t, err)
	assert.Same(t, f, got)
}

func TestWithHolteki8PasswordSkipsWithoutTerminal(t *testing.T) {
	// The test runner's stdin is never a TTY, so this exercises the
	// IsTerminal(false) early-return path without faking a terminal.
	f := &devicedata.File{Driver: "holtek8"}
	got, err := withHolteki8Password(f)
	require.NoError(t, err)
	assert.Same(t, f, got)
}
