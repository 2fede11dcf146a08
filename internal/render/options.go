// Package render turns a finished analysis into human-readable artifacts: a
// standalone HTML document or bordered text tables for the terminal.
package render

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/elops/internal/elerrors"
)

// Options selects which sections of the report are emitted and how the
// document is titled.
type Options struct {
	// Title is the heading of the HTML document.
	Title string `toml:"title"`

	// ProductionTable includes the per-production set table when true.
	ProductionTable bool `toml:"production_table"`

	// LL1Table includes the LL(1) parsing table when true.
	LL1Table bool `toml:"ll1_table"`
}

// DefaultOptions returns the options used when no config file is given: both
// tables on.
func DefaultOptions() Options {
	return Options{
		Title:           "LL(1) Analysis",
		ProductionTable: true,
		LL1Table:        true,
	}
}

// LoadOptionsFile reads render options from a TOML file. Keys not present in
// the file keep their defaults.
func LoadOptionsFile(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, elerrors.New("read config file", err, elerrors.ErrIO)
	}

	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, elerrors.New("parse config file", err, elerrors.ErrBadArgument)
	}

	return opts, nil
}
