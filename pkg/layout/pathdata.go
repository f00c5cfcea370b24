package layout

import (
	"strings"

	"github.com/tdewolff/canvas"
	"honnef.co/go/curve"

	"github.com/matzehuels/eulerdraw/pkg/errors"
)

// ParsePathData parses SVG path data into a BezPath. Relative commands and
// the shorthand forms are accepted; elliptical arcs are not, since no curve
// is ever written with them.
func ParsePathData(d string) (curve.BezPath, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty path data")
	}
	if d[0] != 'M' && d[0] != 'm' {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "path data must start with M, got %q", d[0])
	}

	p, err := canvas.ParseSVGPath(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "path data")
	}

	var out curve.BezPath
	for s := p.Scanner(); s.Scan(); {
		end := pt(s.End())
		switch s.Cmd() {
		case canvas.MoveToCmd:
			out.MoveTo(end)
		case canvas.LineToCmd:
			out.LineTo(end)
		case canvas.QuadToCmd:
			out.QuadTo(pt(s.CP1()), end)
		case canvas.CubeToCmd:
			out.CubicTo(pt(s.CP1()), pt(s.CP2()), end)
		case canvas.CloseCmd:
			out.ClosePath()
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported path command in %q", d)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty path data")
	}
	return out, nil
}

func pt(p canvas.Point) curve.Point {
	return curve.Pt(p.X, p.Y)
}
