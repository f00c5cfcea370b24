// Package pipeline runs the resolve → draw → render pipeline shared by the
// CLI and the HTTP API.
//
// # Stages
//
//  1. Resolve: parse an informal description, or look up a catalogue example
//  2. Draw: decompose, draw every component, embed them and place labels
//  3. Render: write the layout as SVG, PNG, PDF or JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Description: "a b ab ac",
//	    Formats:     []string{"svg"},
//	    Shading:     true,
//	    Labels:      true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Each stage also runs on its own through [Resolve], [Draw] and [Render],
// or with caching through the [Runner] methods.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/eulerdraw/pkg/cache"
	"github.com/matzehuels/eulerdraw/pkg/creator"
	"github.com/matzehuels/eulerdraw/pkg/decompose"
	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
	"github.com/matzehuels/eulerdraw/pkg/geometry"
	"github.com/matzehuels/eulerdraw/pkg/layout"
	"github.com/matzehuels/eulerdraw/pkg/render/svg"
)

const (
	// DefaultTimeout bounds a whole pipeline run. Dual cycle searches on
	// large descriptions are the slow part.
	DefaultTimeout = 2 * time.Minute

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultPadding surrounds rendered diagrams.
	DefaultPadding = svg.DefaultPadding
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options configures a pipeline run. It decodes from API request bodies.
type Options struct {
	// Exactly one of Description and Example is set.
	Description string `json:"description,omitempty"`
	Example     string `json:"example,omitempty"`
	Strategy    string `json:"strategy,omitempty"`
	Refresh     bool   `json:"refresh,omitempty"`

	Formats     []string `json:"formats,omitempty"`
	Shading     bool     `json:"shading,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	ZoneCenters bool     `json:"zone_centers,omitempty"`
	Padding     float64  `json:"padding,omitempty"` // 0 means DefaultPadding
	Scale       float64  `json:"scale,omitempty"`

	// Router limits for bent dual edges. Zero means the geometry defaults.
	RouteCells    int `json:"-"`
	RouteMaxNodes int `json:"-"`

	Timeout time.Duration `json:"-"`
	Logger  *log.Logger   `json:"-"`

	validated bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	RunID string

	Description     euler.Description
	DescriptionHash string

	Layout layout.Layout
	// Drawing is nil when the layout came from the cache.
	Drawing *creator.Drawing

	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds sizes and timings of a run. Components and Steps are zero on
// a layout cache hit.
type Stats struct {
	Components int
	Steps      int
	Curves     int
	Zones      int
	Shaded     int
	DrawTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from the cache
}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options of a full run and fills in
// defaults. Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateInput(); err != nil {
		return err
	}
	if err := o.ValidateForDraw(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	o.validated = true
	return nil
}

// ValidateInput checks that exactly one input is given.
func (o *Options) ValidateInput() error {
	switch {
	case o.Description == "" && o.Example == "":
		return errors.New(errors.ErrCodeInvalidInput, "description or example is required")
	case o.Description != "" && o.Example != "":
		return errors.New(errors.ErrCodeInvalidInput, "description and example are mutually exclusive")
	}
	if o.Description != "" {
		return errors.ValidateDescription(o.Description)
	}
	return nil
}

// SetDrawDefaults fills in the drawing defaults.
func (o *Options) SetDrawDefaults() {
	if o.Strategy == "" {
		o.Strategy = decompose.DefaultStrategy
	}
	if o.RouteCells == 0 {
		o.RouteCells = geometry.DefaultRouteCells
	}
	if o.RouteMaxNodes == 0 {
		o.RouteMaxNodes = geometry.DefaultRouteMaxNodes
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForDraw fills in drawing defaults and checks the strategy.
func (o *Options) ValidateForDraw() error {
	o.SetDrawDefaults()
	if o.RouteCells < 0 || o.RouteMaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "router limits must not be negative, got %d cells and %d nodes", o.RouteCells, o.RouteMaxNodes)
	}
	_, err := decompose.StrategyByName(o.Strategy)
	return err
}

// SetRenderDefaults fills in the rendering defaults.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender fills in rendering defaults and checks them.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must not be negative, got %v", o.Padding)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return nil
}

// LayoutKeyOpts returns the cache key options for drawing.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Strategy:      o.Strategy,
		Version:       layout.Version,
		RouteCells:    o.RouteCells,
		RouteMaxNodes: o.RouteMaxNodes,
	}
}

// ArtifactKeyOpts returns the cache key options for rendering format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatJSON {
		return opts
	}
	opts.Shading = o.Shading
	opts.Labels = o.Labels
	opts.ZoneCenters = o.ZoneCenters
	opts.Padding = o.Padding
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// SVGOptions returns the renderer options.
func (o *Options) SVGOptions() []svg.Option {
	opts := []svg.Option{svg.WithPadding(o.Padding)}
	if o.Shading {
		opts = append(opts, svg.WithShading())
	}
	if o.Labels {
		opts = append(opts, svg.WithLabels())
	}
	if o.ZoneCenters {
		opts = append(opts, svg.WithZoneCenters())
	}
	return opts
}
