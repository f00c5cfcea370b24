package pipeline

import (
	"context"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/layout"
	"github.com/matzehuels/eulerdraw/pkg/render/svg"
)

// Render writes l in every requested format.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	svgOpts := opts.SVGOptions()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg.Render(l, svgOpts...)
		case FormatPNG:
			data, err = svg.RenderPNG(ctx, l, opts.Scale, svgOpts...)
		case FormatPDF:
			data, err = svg.RenderPDF(ctx, l, svgOpts...)
		case FormatJSON:
			data, err = layout.MarshalLayout(l)
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported format: %s", format)
		}

		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
