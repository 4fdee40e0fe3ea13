package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-ratbag/ratbag/action"
	"github.com/go-ratbag/ratbag/devicedata"
	"github.com/go-ratbag/ratbag/ratbagconfig"
	"github.com/go-ratbag/ratbag/ratbagerr"
	"github.com/go-ratbag/ratbag/ratlog"
	"github.com/go-ratbag/ratbag/ratmodel"
)

// CLI is the root Kong command tree. Each leaf command's Run method takes
// the dependencies main.go binds via ctx.Bind (mirrors cmd/viiper's
// Run(logger, rawLogger) pattern, generalized to this tool's own bound
// values).
type CLI struct {
	DataDir []string `help:"Device-data directory to search (repeatable); defaults to the built-in list." name:"data-dir"`

	Log struct {
		Level string `help:"debug, info, or error." default:"info" enum:"debug,info,error"`
	} `embed:"" prefix:"log."`

	List          ListCmd          `cmd:"" help:"Enumerate /dev/hidraw* nodes and the driver each matches, if any."`
	Show          ShowCmd          `cmd:"" help:"Probe a hidraw node and dump its decoded profile state."`
	SetResolution SetResolutionCmd `cmd:"" name:"set-resolution" help:"Set a resolution's DPI and commit."`
	SetProfile    SetProfileCmd    `cmd:"" name:"set-profile" help:"Switch the active profile and commit."`
	SetLed        SetLedCmd        `cmd:"" name:"set-led" help:"Set a LED's mode/color and commit."`
	SetButton     SetButtonCmd     `cmd:"" name:"set-button" help:"Remap a button to a plain button number and commit."`
}

func (c *CLI) dataDirs() []string {
	if len(c.DataDir) > 0 {
		return c.DataDir
	}
	return ratbagconfig.Default().DataDirs
}

func loadRegistry(dirs []string) (*devicedata.Registry, error) {
	reg, warnings := devicedata.LoadAll(dirs)
	for _, w := range warnings {
		fmt.Println("warning:", w)
	}
	return reg, nil
}

// ListCmd enumerates hidraw nodes and reports which device-data file (if
// any) matches each one, without opening a transport.
type ListCmd struct{}

func (cmd *ListCmd) Run(root *CLI, log *ratlog.Sink) error {
	reg, err := loadRegistry(root.dataDirs())
	if err != nil {
		return err
	}
	nodes, err := listHidraw()
	if err != nil {
		return err
	}
	for _, node := range nodes {
		ident, err := identOf(node)
		if err != nil {
			fmt.Printf("%s\tunknown (%v)\n", node, err)
			continue
		}
		file, err := reg.Match(ident)
		if err != nil {
			fmt.Printf("%s\tbus=%#x vid=%#x pid=%#x\tno match\n", node, ident.Bus, ident.Vendor, ident.Product)
			continue
		}
		fmt.Printf("%s\tbus=%#x vid=%#x pid=%#x\t%s (%s)\n", node, ident.Bus, ident.Vendor, ident.Product, file.Name, file.Driver)
	}
	return nil
}

// ShowCmd probes one hidraw node and dumps the decoded model as JSON.
type ShowCmd struct {
	Path string `arg:"" help:"hidraw device node, e.g. /dev/hidraw3"`
}

func (cmd *ShowCmd) Run(root *CLI, log *ratlog.Sink) error {
	reg, err := loadRegistry(root.dataDirs())
	if err != nil {
		return err
	}
	opened, err := probeHidraw(reg, cmd.Path, log)
	if err != nil {
		return err
	}
	defer func() { _ = opened.drv.Remove(opened.dev) }()

	out, err := json.MarshalIndent(dumpDevice(opened.dev), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// SetResolutionCmd mutates one resolution's DPI and commits.
type SetResolutionCmd struct {
	Path       string `arg:"" help:"hidraw device node"`
	Profile    int    `help:"profile index" default:"0"`
	Resolution int    `help:"resolution index" default:"0"`
	DPIX       uint16 `name:"dpi-x" required:""`
	DPIY       uint16 `name:"dpi-y" required:""`
}

func (cmd *SetResolutionCmd) Run(root *CLI, log *ratlog.Sink) error {
	reg, err := loadRegistry(root.dataDirs())
	if err != nil {
		return err
	}
	opened, err := probeHidraw(reg, cmd.Path, log)
	if err != nil {
		return err
	}
	defer func() { _ = opened.drv.Remove(opened.dev) }()

	profile, err := opened.dev.Profile(cmd.Profile)
	if err != nil {
		return err
	}
	resolutions := profile.Resolutions()
	if cmd.Resolution < 0 || cmd.Resolution >= len(resolutions) {
		return ratbagerr.ErrInvalidArgument("resolution index out of range")
	}
	if err := resolutions[cmd.Resolution].SetDPI(cmd.DPIX, cmd.DPIY); err != nil {
		return err
	}
	return opened.drv.Commit(opened.dev)
}

// SetProfileCmd switches the active profile and commits.
type SetProfileCmd struct {
	Path    string `arg:"" help:"hidraw device node"`
	Profile int    `arg:"" help:"profile index to activate"`
}

func (cmd *SetProfileCmd) Run(root *CLI, log *ratlog.Sink) error {
	reg, err := loadRegistry(root.dataDirs())
	if err != nil {
		return err
	}
	opened, err := probeHidraw(reg, cmd.Path, log)
	if err != nil {
		return err
	}
	defer func() { _ = opened.drv.Remove(opened.dev) }()

	if err := opened.dev.SetActiveProfile(cmd.Profile); err != nil {
		return err
	}
	if err := opened.drv.SetActiveProfile(opened.dev, cmd.Profile); err != nil {
		return err
	}
	return opened.drv.Commit(opened.dev)
}

// SetLedCmd sets one LED's mode/color and commits.
type SetLedCmd struct {
	Path    string `arg:"" help:"hidraw device node"`
	Profile int    `help:"profile index" default:"0"`
	Led     int    `help:"led index" default:"0"`
	Mode    string `help:"off, on, cycle, or breathing" enum:"off,on,cycle,breathing" default:"on"`
	Color   string `help:"hex color, e.g. ff8800" default:"ffffff"`
}

func (cmd *SetLedCmd) Run(root *CLI, log *ratlog.Sink) error {
	reg, err := loadRegistry(root.dataDirs())
	if err != nil {
		return err
	}
	opened, err := probeHidraw(reg, cmd.Path, log)
	if err != nil {
		return err
	}
	defer func() { _ = opened.drv.Remove(opened.dev) }()

	profile, err := opened.dev.Profile(cmd.Profile)
	if err != nil {
		return err
	}
	leds := profile.Leds()
	if cmd.Led < 0 || cmd.Led >= len(leds) {
		return ratbagerr.ErrInvalidArgument("led index out of range")
	}
	color, err := parseHexColor(cmd.Color)
	if err != nil {
		return err
	}
	mode, err := parseLedMode(cmd.Mode)
	if err != nil {
		return err
	}
	led := leds[cmd.Led]
	led.SetMode(mode)
	led.SetColor(color)
	return opened.drv.Commit(opened.dev)
}

// SetButtonCmd remaps one button to emit a plain numeric mouse button and
// commits. Key/Special/Macro remaps are deliberately left to a future
// command — this one covers the most common case of swapping two buttons.
type SetButtonCmd struct {
	Path    string `arg:"" help:"hidraw device node"`
	Profile int    `help:"profile index" default:"0"`
	Button  int    `arg:"" help:"button index to remap"`
	Target  int    `arg:"" help:"numeric mouse button to emit"`
}

func (cmd *SetButtonCmd) Run(root *CLI, log *ratlog.Sink) error {
	reg, err := loadRegistry(root.dataDirs())
	if err != nil {
		return err
	}
	opened, err := probeHidraw(reg, cmd.Path, log)
	if err != nil {
		return err
	}
	defer func() { _ = opened.drv.Remove(opened.dev) }()

	profile, err := opened.dev.Profile(cmd.Profile)
	if err != nil {
		return err
	}
	buttons := profile.Buttons()
	if cmd.Button < 0 || cmd.Button >= len(buttons) {
		return ratbagerr.ErrInvalidArgument("button index out of range")
	}
	buttons[cmd.Button].SetAction(action.Button(cmd.Target))
	return opened.drv.Commit(opened.dev)
}

func parseLedMode(s string) (ratmodel.LedMode, error) {
	switch strings.ToLower(s) {
	case "off":
		return ratmodel.LedModeOff, nil
	case "on":
		return ratmodel.LedModeOn, nil
	case "cycle":
		return ratmodel.LedModeCycle, nil
	case "breathing":
		return ratmodel.LedModeBreathing, nil
	default:
		return 0, ratbagerr.ErrInvalidArgument("unrecognized led mode " + s)
	}
}

func parseHexColor(s string) (ratmodel.RGBColor, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return ratmodel.RGBColor{}, ratbagerr.ErrInvalidArgument("color must be 6 hex digits")
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ratmodel.RGBColor{}, ratbagerr.ErrInvalidArgument("invalid hex color " + s)
	}
	return ratmodel.RGBColor{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
