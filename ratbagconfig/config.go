// Package ratbagconfig carries the core's own ambient tunables: transport
// timeouts, per-vendor retry budgets, log level, and the device-data search
// path. It is deliberately small — the core has no CLI of its own (spec
// §1's Non-goals), so this is the library-level equivalent of a config
// struct an embedding application loads once at startup.
package ratbagconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// DataDirEnvVar is the environment variable overriding the device-data
// search path (spec §6).
const DataDirEnvVar = "LIBRATBAG_DATA_DIR"

// Config holds every tunable the framework consults. Zero value is not
// valid; use Default.
type Config struct {
	// LogLevel is one of "debug", "info", "error".
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// DataDirs is the ordered list of directories searched for *.device
	// files. Populated from LIBRATBAG_DATA_DIR if set, else a built-in
	// default list.
	DataDirs []string `json:"data_dirs" yaml:"data_dirs" toml:"data_dirs"`

	// HIDReadTimeout bounds every blocking input-report read (spec §4.1,
	// default 1000ms).
	HIDReadTimeout time.Duration `json:"hid_read_timeout" yaml:"hid_read_timeout" toml:"hid_read_timeout"`

	// HIDPPTimeout bounds a HID++ request/response round-trip (spec §4.5).
	HIDPPTimeout time.Duration `json:"hidpp_timeout" yaml:"hidpp_timeout" toml:"hidpp_timeout"`

	// Holtek8WriteReadyRetries bounds the write-ready poll loop (spec §4.6,
	// default 10 at 1ms spacing).
	Holtek8WriteReadyRetries int `json:"holtek8_write_ready_retries" yaml:"holtek8_write_ready_retries" toml:"holtek8_write_ready_retries"`

	// RoccatReadyRetries bounds the Roccat command-ready poll (spec §4.7,
	// default 10 at 10ms spacing).
	RoccatReadyRetries int `json:"roccat_ready_retries" yaml:"roccat_ready_retries" toml:"roccat_ready_retries"`

	// RapooStatusRetries bounds the Rapoo status poll (spec §4.7, default
	// 20 at 100ms spacing).
	RapooStatusRetries int `json:"rapoo_status_retries" yaml:"rapoo_status_retries" toml:"rapoo_status_retries"`
}

// Default returns the built-in tunables, with DataDirs resolved from
// LIBRATBAG_DATA_DIR when set.
func Default() Config {
	cfg := Config{
		LogLevel:                 "info",
		DataDirs:                 defaultDataDirs(),
		HIDReadTimeout:           1000 * time.Millisecond,
		HIDPPTimeout:             1000 * time.Millisecond,
		Holtek8WriteReadyRetries: 10,
		RoccatReadyRetries:       10,
		RapooStatusRetries:       20,
	}
	return cfg
}

func defaultDataDirs() []string {
	if dir := os.Getenv(DataDirEnvVar); dir != "" {
		return strings.Split(dir, string(os.PathListSeparator))
	}
	return []string{"/usr/share/libratbag", "/etc/ratbag.d"}
}

// Load reads a Config from path, detecting format by extension
// (.json/.yaml/.yml/.toml). Unset fields keep Default()'s values: Load
// starts from Default() and overlays whatever the file sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := formatOf(path); ext {
	case "json":
		err = json.Unmarshal(data, &cfg)
	case "yaml":
		err = yaml.Unmarshal(data, &cfg)
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format: %s", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func formatOf(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return "json"
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return "yaml"
	case strings.HasSuffix(lower, ".toml"):
		return "toml"
	default:
		return ""
	}
}
