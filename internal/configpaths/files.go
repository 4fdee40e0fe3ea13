// Package configpaths locates ratbagctl's own config file across every
// format Kong can load it from, in the same working-directory /
// user-config-dir / system-wide priority order an embedding CLI
// conventionally searches.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigDir returns the platform-specific configuration directory for ratbagctl.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, "ratbagctl"), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "ratbagctl"), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "ratbagctl"), nil
		}
		return "", errors.New("HOME not set")
	}
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0o755)
}

// ConfigCandidatePaths builds candidate config paths per format. If
// userPath is provided (e.g. from a --config flag), it is prioritized and
// routed to the matching loader by extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch ext := filepath.Ext(userPath); ext {
		case ".json":
			add(&jsonPaths, userPath)
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	wd, _ := os.Getwd()
	add(&jsonPaths, filepath.Join(wd, "ratbagctl.json"))
	add(&yamlPaths, filepath.Join(wd, "ratbagctl.yaml"))
	add(&yamlPaths, filepath.Join(wd, "ratbagctl.yml"))
	add(&tomlPaths, filepath.Join(wd, "ratbagctl.toml"))

	if dir, err := DefaultConfigDir(); err == nil {
		add(&jsonPaths, filepath.Join(dir, "config.json"))
		add(&yamlPaths, filepath.Join(dir, "config.yaml"))
		add(&yamlPaths, filepath.Join(dir, "config.yml"))
		add(&tomlPaths, filepath.Join(dir, "config.toml"))
	}

	if runtime.GOOS != "windows" {
		add(&jsonPaths, "/etc/ratbagctl.json")
		add(&yamlPaths, "/etc/ratbagctl.yaml")
		add(&tomlPaths, "/etc/ratbagctl.toml")
	}

	return
}
