// Package server exposes filter profiles over HTTP and persists them in
// Postgres. Profiles are compiled once on upsert; the decide endpoint only
// reads the compiled snapshots, so request handling never recompiles rules.
package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vtgrid/tilefilter/pkg/filter"
	"github.com/vtgrid/tilefilter/pkg/profile"
)

type compiledProfile struct {
	source    string
	desc      *filter.Description
	filter    *filter.GenericFilter
	modifier  *filter.GenericModifier
	prefilter *filter.LayerPrefilter
}

func compileProfile(source string) (*compiledProfile, error) {
	desc, err := profile.Load([]byte(source))
	if err != nil {
		return nil, err
	}
	return &compiledProfile{
		source:    source,
		desc:      desc,
		filter:    filter.NewGenericFilter(desc),
		modifier:  filter.NewGenericModifier(desc),
		prefilter: filter.NewLayerPrefilter(desc),
	}, nil
}

type AppServer struct {
	db *sql.DB

	mu       sync.RWMutex // protects profiles map swap
	profiles map[string]*compiledProfile

	decisions atomic.Int64
}

func NewAppServer(db *sql.DB) *AppServer {
	return &AppServer{db: db, profiles: make(map[string]*compiledProfile)}
}

func (s *AppServer) profile(name string) (*compiledProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[name]
	return p, ok
}

func (s *AppServer) setProfile(name string, p *compiledProfile) {
	s.mu.Lock()
	s.profiles[name] = p
	s.mu.Unlock()
}

// UpsertProfile compiles the profile document, persists it and swaps the
// compiled snapshot in. A document that does not compile is rejected and the
// stored state stays untouched.
func (s *AppServer) UpsertProfile(ctx context.Context, name, source string) error {
	if name == "" {
		return errors.New("profile name must not be empty")
	}
	cp, err := compileProfile(source)
	if err != nil {
		return fmt.Errorf("compile profile %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO filter_profiles(name, config, updated_at)
        VALUES ($1,$2,$3)
        ON CONFLICT (name) DO UPDATE SET config=EXCLUDED.config, updated_at=EXCLUDED.updated_at`,
		name, source, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("store profile %s: %w", name, err)
	}
	s.setProfile(name, cp)
	log.Printf("profile upserted: name=%s rules=%d prefilter_patterns=%d",
		name, cp.desc.RuleCount(), cp.prefilter.Stats().PatternCount)
	return nil
}

// LoadStoredProfiles compiles every profile found in the database. Broken
// rows are skipped with a log line so one bad profile cannot block startup.
func (s *AppServer) LoadStoredProfiles(ctx context.Context) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, config FROM filter_profiles ORDER BY name`)
	if err != nil {
		return 0, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	loaded := 0
	for rows.Next() {
		var name, config string
		if err := rows.Scan(&name, &config); err != nil {
			return loaded, err
		}
		cp, err := compileProfile(config)
		if err != nil {
			log.Printf("skipping stored profile %s: %v", name, err)
			continue
		}
		s.setProfile(name, cp)
		loaded++
	}
	return loaded, rows.Err()
}

// RegisterRoutes wires HTTP handlers.
func (s *AppServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/stats", s.handleStats)
	mux.HandleFunc("/api/v1/profiles", s.handleProfiles)
	mux.HandleFunc("/api/v1/decide", s.handleDecide)
	mux.HandleFunc("/api/v1/candidates", s.handleCandidates)
}

func (s *AppServer) Router() *http.ServeMux {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

// ---- Handlers ----

func (s *AppServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *AppServer) handleStats(w http.ResponseWriter, r *http.Request) {
	type statsResp struct {
		Profiles  int   `json:"profiles"`
		Rules     int   `json:"rules"`
		Decisions int64 `json:"decisions"`
	}
	resp := statsResp{Decisions: s.decisions.Load()}
	s.mu.RLock()
	resp.Profiles = len(s.profiles)
	for _, p := range s.profiles {
		resp.Rules += p.desc.RuleCount()
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *AppServer) handleProfiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rows, err := s.db.QueryContext(r.Context(), `SELECT name, updated_at FROM filter_profiles ORDER BY name`)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		defer rows.Close()
		type rec struct {
			Name      string    `json:"name"`
			UpdatedAt time.Time `json:"updated_at"`
			Rules     int       `json:"rules"`
		}
		out := []rec{}
		for rows.Next() {
			var e rec
			if err := rows.Scan(&e.Name, &e.UpdatedAt); err != nil {
				writeErr(w, http.StatusInternalServerError, err)
				return
			}
			if p, ok := s.profile(e.Name); ok {
				e.Rules = p.desc.RuleCount()
			}
			out = append(out, e)
		}
		if err := rows.Err(); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		var req struct {
			Name   string `json:"name"`
			Config string `json:"config"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		if err := s.UpsertProfile(r.Context(), req.Name, req.Config); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "name": req.Name})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON error: %v", err)
	}
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]any{"error": err.Error()})
}
