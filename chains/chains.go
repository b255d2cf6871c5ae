// Package chains holds the versioned table of pointer chains to the watched rod state.
package chains

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gofish/process"

	"github.com/pelletier/go-toml/v2"
)

//go:embed builtin.toml
var builtinTOML []byte

var (
	ErrUnknownVersion = errors.New("unknown game version")
	ErrInvalidEntry   = errors.New("invalid chain entry")
)

// Entry is one game build's chain as written in TOML.
type Entry struct {
	Module  string   `toml:"module"`
	Base    uint64   `toml:"base"`
	Offsets []uint64 `toml:"offsets"`
}

// Table maps game versions to chains.
type Table struct {
	Default  string           `toml:"default"`
	Versions map[string]Entry `toml:"versions"`
}

// Builtin returns a fresh copy of the table compiled into the binary.
func Builtin() *Table {
	t, err := Parse(builtinTOML)
	if err != nil {
		panic(fmt.Sprintf("builtin chain table: %v", err))
	}
	return t
}

// Parse decodes and validates a TOML table.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode chain table: %w", err)
	}
	for version, e := range t.Versions {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("version %q: %w", version, err)
		}
	}
	if t.Default != "" {
		if _, ok := t.Versions[t.Default]; !ok {
			return nil, fmt.Errorf("default %q: %w", t.Default, ErrUnknownVersion)
		}
	}
	return &t, nil
}

// Load reads a user table from path and layers it over the builtin one.
// An empty path returns the builtin table.
func Load(path string) (*Table, error) {
	t := Builtin()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	user, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Merge(user)
	return t, nil
}

// Merge adds or replaces entries from o. A non-empty o.Default wins.
func (t *Table) Merge(o *Table) {
	if t.Versions == nil {
		t.Versions = map[string]Entry{}
	}
	for version, e := range o.Versions {
		t.Versions[version] = e
	}
	if o.Default != "" {
		t.Default = o.Default
	}
}

// Lookup returns the chain for version, or for the default version when version is empty.
func (t *Table) Lookup(version string) (process.PointerChain, error) {
	if version == "" {
		version = t.Default
	}
	e, ok := t.Versions[version]
	if !ok {
		return process.PointerChain{}, fmt.Errorf("%w: %q", ErrUnknownVersion, version)
	}
	return e.chain(), nil
}

// Names lists known versions in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Versions))
	for version := range t.Versions {
		names = append(names, version)
	}
	sort.Strings(names)
	return names
}

func (e Entry) validate() error {
	if e.Module == "" {
		return fmt.Errorf("%w: module is empty", ErrInvalidEntry)
	}
	if len(e.Offsets) == 0 {
		return fmt.Errorf("%w: no offsets", ErrInvalidEntry)
	}
	return nil
}

func (e Entry) chain() process.PointerChain {
	offsets := make([]process.ProcessMemorySize, len(e.Offsets))
	for i, off := range e.Offsets {
		offsets[i] = process.ProcessMemorySize(off)
	}
	return process.NewPointerChain(e.Module, process.ProcessMemoryAddress(e.Base), offsets...)
}
