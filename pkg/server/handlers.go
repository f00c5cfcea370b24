package server

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/eulerdraw/pkg/buildinfo"
	"github.com/matzehuels/eulerdraw/pkg/catalog"
	"github.com/matzehuels/eulerdraw/pkg/decompose"
	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/layout"
	"github.com/matzehuels/eulerdraw/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
	return nil
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) error {
	examples := catalog.All()
	if g := r.URL.Query().Get("group"); g != "" {
		examples = catalog.Group(g)
	}
	writeJSON(w, http.StatusOK, examples)
	return nil
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) error {
	ex, err := catalog.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, ex)
	return nil
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]any{
		"default":    decompose.DefaultStrategy,
		"strategies": decompose.StrategyNames(),
	})
	return nil
}

type drawResponse struct {
	RunID     string            `json:"run_id"`
	Layout    layout.Layout     `json:"layout"`
	Artifacts map[string][]byte `json:"artifacts"`
	Stats     statsBody         `json:"stats"`
	Cached    cachedBody        `json:"cached"`
}

type statsBody struct {
	Components int   `json:"components,omitempty"`
	Steps      int   `json:"steps,omitempty"`
	Curves     int   `json:"curves"`
	Zones      int   `json:"zones"`
	Shaded     int   `json:"shaded"`
	DrawMS     int64 `json:"draw_ms"`
	RenderMS   int64 `json:"render_ms"`
}

type cachedBody struct {
	Layout    bool `json:"layout"`
	Artifacts bool `json:"artifacts"`
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) error {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		return err
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, drawResponse{
		RunID:     res.RunID,
		Layout:    res.Layout,
		Artifacts: res.Artifacts,
		Stats: statsBody{
			Components: res.Stats.Components,
			Steps:      res.Stats.Steps,
			Curves:     res.Stats.Curves,
			Zones:      res.Stats.Zones,
			Shaded:     res.Stats.Shaded,
			DrawMS:     res.Stats.DrawTime.Milliseconds(),
			RenderMS:   res.Stats.RenderTime.Milliseconds(),
		},
		Cached: cachedBody{
			Layout:    res.CacheInfo.LayoutHit,
			Artifacts: res.CacheInfo.RenderHit,
		},
	})
	return nil
}

type stepBody struct {
	Label string   `json:"label"`
	From  string   `json:"from"`
	To    string   `json:"to"`
	Split []string `json:"split"`
}

type decomposeResponse struct {
	Description string       `json:"description"`
	Components  []string     `json:"components"`
	Steps       [][]stepBody `json:"steps"`
}

func (s *Server) handleDecompose(w http.ResponseWriter, r *http.Request) error {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		return err
	}
	if err := opts.ValidateInput(); err != nil {
		return err
	}
	if err := opts.ValidateForDraw(); err != nil {
		return err
	}
	d, err := pipeline.Resolve(opts)
	if err != nil {
		return err
	}

	ctx := r.Context()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	dr, err := pipeline.Plan(ctx, d, opts)
	if err != nil {
		return err
	}

	resp := decomposeResponse{
		Description: d.Informal(),
		Components:  make([]string, len(dr.Components)),
		Steps:       make([][]stepBody, len(dr.Steps)),
	}
	for i, c := range dr.Components {
		resp.Components[i] = c.Informal()
	}
	for i, steps := range dr.Steps {
		resp.Steps[i] = make([]stepBody, len(steps))
		for j, st := range steps {
			split := make([]string, len(st.Split))
			for k, z := range st.Split {
				split[k] = z.String()
			}
			resp.Steps[i][j] = stepBody{Label: string(st.Label), From: st.From.Informal(), To: st.To.Informal(), Split: split}
		}
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

// decodeOptions decodes the body over the server defaults.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = slices.Clone(s.defaults.Formats)

	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return opts, errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", ct)
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body")
	}
	return opts, nil
}
