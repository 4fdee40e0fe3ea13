// Command ratbagctl is a thin diagnostic front end over this module: it
// enumerates hidraw nodes, probes one against the device-data registry,
// dumps the decoded profile state, and applies a single mutation plus
// commit. It is not part of the core library (spec §1's Non-goals name no
// CLI) — an embedding application is expected to build its own UI on top
// of ratmodel/driver/devicedata directly.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	_ "github.com/go-ratbag/ratbag/driver/cmstorm"
	_ "github.com/go-ratbag/ratbag/driver/etekcity"
	_ "github.com/go-ratbag/ratbag/driver/g600"
	_ "github.com/go-ratbag/ratbag/driver/hidpp"
	_ "github.com/go-ratbag/ratbag/driver/holtek8"
	_ "github.com/go-ratbag/ratbag/driver/marsgaming"
	_ "github.com/go-ratbag/ratbag/driver/openinput"
	_ "github.com/go-ratbag/ratbag/driver/openrazer"
	_ "github.com/go-ratbag/ratbag/driver/rapoo"
	_ "github.com/go-ratbag/ratbag/driver/roccat"
	_ "github.com/go-ratbag/ratbag/driver/sinowealth"
	_ "github.com/go-ratbag/ratbag/driver/steelseries"

	"github.com/go-ratbag/ratbag/internal/configpaths"
	"github.com/go-ratbag/ratbag/ratlog"
)

func main() {
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths("")

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ratbagctl"),
		kong.Description("Probe and reconfigure a gaming mouse over hidraw"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	level := slog.LevelInfo
	switch cli.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	sink := ratlog.New(logger, nil)
	ctx.Bind(sink)
	ctx.Bind(&cli)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
