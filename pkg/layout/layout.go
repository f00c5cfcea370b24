package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/euler"
)

// Version is the current layout format version.
const Version = 1

// Curve kinds.
const (
	KindCircle = "circle"
	KindPath   = "path"
)

// Layout is a drawn diagram.
type Layout struct {
	Version int    `json:"version" bson:"version"`
	ID      string `json:"id,omitempty" bson:"id,omitempty"`

	// Original is the informal description asked for and Actual the one
	// drawn. Zones of Actual missing from Original are shaded.
	Original string `json:"original" bson:"original"`
	Actual   string `json:"actual" bson:"actual"`

	MinX   float64 `json:"min_x" bson:"min_x"`
	MinY   float64 `json:"min_y" bson:"min_y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	Curves []Curve  `json:"curves" bson:"curves"`
	Zones  []Zone   `json:"zones" bson:"zones"`
	Labels []Anchor `json:"labels,omitempty" bson:"labels,omitempty"`
}

// Curve is one closed curve. Circles also carry their parameters; D is
// always the SVG path data of the outline.
type Curve struct {
	Label string  `json:"label" bson:"label"`
	Kind  string  `json:"kind" bson:"kind"`
	CX    float64 `json:"cx,omitempty" bson:"cx,omitempty"`
	CY    float64 `json:"cy,omitempty" bson:"cy,omitempty"`
	R     float64 `json:"r,omitempty" bson:"r,omitempty"`
	D     string  `json:"d" bson:"d"`
}

// Point is an x, y pair.
type Point [2]float64

// Zone is one drawn zone other than the outside.
type Zone struct {
	Zone   string    `json:"zone" bson:"zone"`
	Shaded bool      `json:"shaded,omitempty" bson:"shaded,omitempty"`
	Center Point     `json:"center" bson:"center"`
	Rings  [][]Point `json:"rings" bson:"rings"`
}

// Anchor positions the text of a curve label.
type Anchor struct {
	Label string  `json:"label" bson:"label"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
}

// ShadedCount returns the number of shaded zones.
func (l *Layout) ShadedCount() int {
	n := 0
	for _, z := range l.Zones {
		if z.Shaded {
			n++
		}
	}
	return n
}

// Validate checks that l is well formed.
func (l *Layout) Validate() error {
	if l.Version != Version {
		return errors.New(errors.ErrCodeUnsupported, "layout version %d, want %d", l.Version, Version)
	}
	if l.Width < 0 || l.Height < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "negative layout size %gx%g", l.Width, l.Height)
	}
	if _, err := parseDescription(l.Original); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "original")
	}
	if _, err := parseDescription(l.Actual); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "actual")
	}

	seen := make(map[string]bool, len(l.Curves))
	for _, c := range l.Curves {
		if utf8.RuneCountInString(c.Label) != 1 {
			return errors.New(errors.ErrCodeInvalidFormat, "curve label %q is not a single character", c.Label)
		}
		if seen[c.Label] {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate curve %q", c.Label)
		}
		seen[c.Label] = true

		switch c.Kind {
		case KindCircle:
			if c.R <= 0 {
				return errors.New(errors.ErrCodeInvalidFormat, "circle %q has radius %g", c.Label, c.R)
			}
		case KindPath:
			if c.D == "" {
				return errors.New(errors.ErrCodeInvalidFormat, "path %q has no data", c.Label)
			}
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "curve %q has unknown kind %q", c.Label, c.Kind)
		}
	}

	for _, z := range l.Zones {
		az, err := euler.ParseZone(z.Zone)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "zone")
		}
		for _, lbl := range az.Labels() {
			if !seen[string(lbl)] {
				return errors.New(errors.ErrCodeInvalidFormat, "zone %s names label %s without a curve", az, lbl)
			}
		}
	}
	for _, a := range l.Labels {
		if !seen[a.Label] {
			return errors.New(errors.ErrCodeInvalidFormat, "anchor for unknown curve %q", a.Label)
		}
	}
	return nil
}

// MarshalLayout returns l as indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout decodes and validates a layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayoutFile writes l to path as JSON.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadLayoutFile reads and validates a layout written by WriteLayoutFile.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
