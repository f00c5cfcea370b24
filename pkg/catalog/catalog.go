// Package catalog holds named descriptions used as regression inputs and
// as examples in the CLI and the HTTP API.
//
// The catalogue is embedded TOML:
//
//	[[example]]
//	name = "Venn-3"
//	group = "venn"
//	description = "a b c abc ab ac bc"
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
)

//go:embed examples.toml
var embedded string

// Example is a named description.
type Example struct {
	Name        string `toml:"name" json:"name"`
	Group       string `toml:"group" json:"group"`
	Description string `toml:"description" json:"description"`
}

// Parse parses the example's description.
func (e Example) Parse() (euler.Description, error) {
	return euler.Parse(e.Description)
}

// Load reads a catalogue. Names must be unique ignoring case, and every
// description must parse.
func Load(r io.Reader) ([]Example, error) {
	var file struct {
		Example []Example `toml:"example"`
	}
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode catalogue")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown catalogue keys %v", keys)
	}

	seen := make(map[string]bool, len(file.Example))
	for i, e := range file.Example {
		if e.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "example %d has no name", i)
		}
		key := strings.ToLower(e.Name)
		if seen[key] {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate example %q", e.Name)
		}
		seen[key] = true
		if _, err := e.Parse(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "example %q", e.Name)
		}
	}
	return file.Example, nil
}

var all = sync.OnceValue(func() []Example {
	ex, err := Load(strings.NewReader(embedded))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded examples: %v", err))
	}
	return ex
})

// All returns every example in catalogue order. The slice is a copy.
func All() []Example {
	return append([]Example(nil), all()...)
}

// Names returns the example names in catalogue order.
func Names() []string {
	ex := all()
	names := make([]string, len(ex))
	for i, e := range ex {
		names[i] = e.Name
	}
	return names
}

// Group returns the examples of one group.
func Group(group string) []Example {
	var out []Example
	for _, e := range all() {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an example by name, ignoring case.
func Lookup(name string) (Example, error) {
	for _, e := range all() {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return Example{}, errors.New(errors.ErrCodeNotFound, "no example named %q", name)
}
