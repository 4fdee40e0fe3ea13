// Package devicedata implements the device-identification registry (spec
// §4.2): INI-style *.device files mapping (bus, vendor, product) triples to
// a driver name and driver-specific parameters.
package devicedata

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-ratbag/ratbag/ratbagerr"
)

// Ident is one (bus, vendor, product) triple a device-data file matches
// against.
type Ident struct {
	Bus, Vendor, Product uint32
}

// Section is one `[Name]` or `[Name/sub]` block's key/value pairs, in
// file order (DPI lists and similar ordered parameters rely on this).
type Section struct {
	Name string
	Keys []KV
}

// KV is a single "Key = value" line.
type KV struct {
	Key, Value string
}

// Get returns the first value for key in the section, or ("", false).
func (s Section) Get(key string) (string, bool) {
	for _, kv := range s.Keys {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// List splits a comma-separated value for key into trimmed elements.
func (s Section) List(key string) []string {
	v, ok := s.Get(key)
	if !ok || v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// File is one parsed *.device file.
type File struct {
	Path     string
	Name     string
	Driver   string
	LedTypes []string
	Match    []Ident
	// Sections holds every `[Driver/<name>]` block (and any other
	// non-Device section) in file order, keyed by section name.
	Sections []Section
}

// DriverSection returns the `[Driver/<name>]` section for File.Driver, if
// present.
func (f *File) DriverSection() (Section, bool) {
	want := "Driver/" + f.Driver
	for _, s := range f.Sections {
		if s.Name == want {
			return s, true
		}
	}
	return Section{}, false
}

// ParseFile reads and parses a single *.device file.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, ratbagerr.Wrap(ratbagerr.IoError, err)
	}
	defer fh.Close()

	f := &File{Path: path}
	var cur *Section
	var deviceKeys []KV

	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, ratbagerr.Newf(ratbagerr.ProtocolError, "%s:%d: unterminated section header", path, lineNo)
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			if strings.EqualFold(name, "Device") {
				cur = nil
				continue
			}
			f.Sections = append(f.Sections, Section{Name: name})
			cur = &f.Sections[len(f.Sections)-1]
			continue
		}
		eq := strings.Index(line, "=")
		if eq < 0 {
			return nil, ratbagerr.Newf(ratbagerr.ProtocolError, "%s:%d: expected 'Key = value'", path, lineNo)
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if cur == nil {
			deviceKeys = append(deviceKeys, KV{key, val})
		} else {
			cur.Keys = append(cur.Keys, KV{key, val})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, ratbagerr.Wrap(ratbagerr.IoError, err)
	}

	dev := Section{Name: "Device", Keys: deviceKeys}
	f.Name, _ = dev.Get("Name")
	f.Driver, _ = dev.Get("Driver")
	f.LedTypes = dev.List("LedTypes")
	if f.Driver == "" {
		return nil, ratbagerr.Newf(ratbagerr.ProtocolError, "%s: missing Driver=", path)
	}
	match, ok := dev.Get("DeviceMatch")
	if !ok {
		return nil, ratbagerr.Newf(ratbagerr.ProtocolError, "%s: missing DeviceMatch=", path)
	}
	idents, err := parseMatch(match)
	if err != nil {
		return nil, ratbagerr.Newf(ratbagerr.ProtocolError, "%s: %v", path, err)
	}
	f.Match = idents

	return f, nil
}

func parseMatch(v string) ([]Ident, error) {
	var out []Ident
	for _, entry := range strings.Split(v, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed DeviceMatch entry %q", entry)
		}
		bus, err := strconv.ParseUint(parts[0], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad bus in %q: %w", entry, err)
		}
		vid, err := strconv.ParseUint(parts[1], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad vendor in %q: %w", entry, err)
		}
		pid, err := strconv.ParseUint(parts[2], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("bad product in %q: %w", entry, err)
		}
		out = append(out, Ident{Bus: uint32(bus), Vendor: uint32(vid), Product: uint32(pid)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty DeviceMatch")
	}
	return out, nil
}

// Registry is a loaded set of device-data files, ready for matching.
type Registry struct {
	files []*File
}

// Load scans dir for *.device files in alphasorted order and parses each.
// A malformed file is skipped (ConfigError is non-fatal per spec §4.2); the
// caller can inspect the returned warnings.
func Load(dir string) (*Registry, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &Registry{}, []error{ratbagerr.Wrap(ratbagerr.IoError, err)}
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".device") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	reg := &Registry{}
	var warnings []error
	for _, name := range names {
		f, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		reg.files = append(reg.files, f)
	}
	return reg, warnings
}

// LoadAll scans every directory in dirs and merges the results, earlier
// directories taking priority on name collision (first-fit, spec §4.2).
func LoadAll(dirs []string) (*Registry, []error) {
	reg := &Registry{}
	var warnings []error
	for _, dir := range dirs {
		r, w := Load(dir)
		reg.files = append(reg.files, r.files...)
		warnings = append(warnings, w...)
	}
	return reg, warnings
}

// Match returns the first device-data file (in load order) whose
// DeviceMatch covers ident, or ratbagerr.NoDevice if none does.
func (r *Registry) Match(ident Ident) (*File, error) {
	for _, f := range r.files {
		for _, m := range f.Match {
			if m == ident {
				return f, nil
			}
		}
	}
	return nil, ratbagerr.ErrNoDevice(fmt.Sprintf("no device-data match for bus=%#x vid=%#x pid=%#x", ident.Bus, ident.Vendor, ident.Product))
}
