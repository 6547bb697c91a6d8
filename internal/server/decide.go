package server

import (
	"fmt"
	"net/http"

	"github.com/vtgrid/tilefilter/pkg/filter"
)

// decideQuery is one predicate invocation against a compiled profile.
// Geometry defaults to the op's own category, so a plain point query does
// not need to repeat "point".
type decideQuery struct {
	Op       string         `json:"op"`
	Layer    string         `json:"layer"`
	Geometry string         `json:"geometry"`
	Level    int            `json:"level"`
	Kinds    []string       `json:"kinds"`
	Env      map[string]any `json:"env"`
}

type decideRequest struct {
	Profile string        `json:"profile"`
	Queries []decideQuery `json:"queries"`
}

func (q decideQuery) geometry(def filter.GeometryType) (filter.GeometryType, error) {
	if q.Geometry == "" {
		return def, nil
	}
	return filter.ParseGeometryType(q.Geometry)
}

func (s *AppServer) evalQuery(p *compiledProfile, q decideQuery) (bool, error) {
	switch q.Op {
	case "layer":
		return p.filter.WantsLayer(q.Layer, q.Level), nil
	case "point":
		g, err := q.geometry(filter.GeometryPoint)
		if err != nil {
			return false, err
		}
		return p.filter.WantsPointFeature(q.Layer, g, q.Level), nil
	case "line":
		g, err := q.geometry(filter.GeometryLine)
		if err != nil {
			return false, err
		}
		return p.filter.WantsLineFeature(q.Layer, g, q.Level), nil
	case "polygon":
		g, err := q.geometry(filter.GeometryPolygon)
		if err != nil {
			return false, err
		}
		return p.filter.WantsPolygonFeature(q.Layer, g, q.Level), nil
	case "kind":
		return p.filter.WantsKind(q.Kinds...), nil
	case "modify_point":
		return p.modifier.DoProcessPointFeature(q.Layer, filter.MapEnv(q.Env)), nil
	case "modify_line":
		return p.modifier.DoProcessLineFeature(q.Layer, filter.MapEnv(q.Env)), nil
	case "modify_polygon":
		return p.modifier.DoProcessPolygonFeature(q.Layer, filter.MapEnv(q.Env)), nil
	default:
		return false, fmt.Errorf("unknown op %q", q.Op)
	}
}

// handleDecide evaluates a batch of predicate queries against one profile.
func (s *AppServer) handleDecide(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req decideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	p, ok := s.profile(req.Profile)
	if !ok {
		writeErr(w, http.StatusNotFound, fmt.Errorf("unknown profile %q", req.Profile))
		return
	}

	results := make([]bool, 0, len(req.Queries))
	for i, q := range req.Queries {
		v, err := s.evalQuery(p, q)
		if err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("query %d: %w", i, err))
			return
		}
		results = append(results, v)
	}
	s.decisions.Add(int64(len(results)))
	writeJSON(w, http.StatusOK, map[string]any{
		"profile": req.Profile,
		"results": results,
	})
}

// handleCandidates runs the literal layer prefilter over a list of layer
// names and returns the ones that might match a process rule. Callers use
// it to skip whole layers before issuing per-feature queries.
func (s *AppServer) handleCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Profile string   `json:"profile"`
		Layers  []string `json:"layers"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	p, ok := s.profile(req.Profile)
	if !ok {
		writeErr(w, http.StatusNotFound, fmt.Errorf("unknown profile %q", req.Profile))
		return
	}

	candidates := make([]string, 0, len(req.Layers))
	for _, layer := range req.Layers {
		if p.prefilter.MightWantLayer(layer) {
			candidates = append(candidates, layer)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":    req.Profile,
		"candidates": candidates,
	})
}
