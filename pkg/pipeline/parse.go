package pipeline

import (
	"github.com/matzehuels/eulerdraw/pkg/catalog"
	"github.com/matzehuels/eulerdraw/pkg/euler"
)

// Resolve returns the description named by opts: the catalogue example
// when Example is set, otherwise the parsed Description.
func Resolve(opts Options) (euler.Description, error) {
	if opts.Example != "" {
		ex, err := catalog.Lookup(opts.Example)
		if err != nil {
			return euler.Empty, err
		}
		return ex.Parse()
	}
	return euler.Parse(opts.Description)
}
