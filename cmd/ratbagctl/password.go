package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/go-ratbag/ratbag/devicedata"
	"github.com/go-ratbag/ratbag/ratbagerr"
)

// withHolteki8Password returns file unchanged unless it names the holtek8
// driver and has no Password= set in its device-data, in which case it
// prompts for one on the controlling terminal (masked, spec §4.6's
// password-gated probe) and returns a copy of file with that value filled
// in, hex-encoded the same way a Password= line in the device-data file
// itself would be (driver/holtek8's engine.go hex.DecodeStrings it).
// probeHidraw calls this before building the driver.Target so the prompt
// happens exactly once per probe, not once per retry.
func withHolteki8Password(file *devicedata.File) (*devicedata.File, error) {
	if file.Driver != "holtek8" {
		return file, nil
	}
	if sec, ok := file.DriverSection(); ok {
		if _, has := sec.Get("Password"); has {
			return file, nil
		}
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return file, nil
	}

	fmt.Fprintf(os.Stderr, "%s requires a password (spec §4.6): ", file.Name)
	entered, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(entered) != 4 {
		return nil, ratbagerr.ErrInvalidArgument("holtek8 password must be exactly 4 bytes")
	}
	raw := hex.EncodeToString(entered)

	clone := *file
	clone.Sections = append([]devicedata.Section(nil), file.Sections...)
	pwKey := devicedata.KV{Key: "Password", Value: raw}
	for i, s := range clone.Sections {
		if s.Name == "Driver/holtek8" {
			clone.Sections[i].Keys = append(append([]devicedata.KV(nil), s.Keys...), pwKey)
			return &clone, nil
		}
	}
	clone.Sections = append(clone.Sections, devicedata.Section{Name: "Driver/holtek8", Keys: []devicedata.KV{pwKey}})
	return &clone, nil
}
