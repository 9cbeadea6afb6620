package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/joenewbry/prospector/internal/pipeline"
	"github.com/joenewbry/prospector/internal/store"
	"github.com/joenewbry/prospector/pkg/analytics"
	"github.com/joenewbry/prospector/pkg/outreach"
	"github.com/joenewbry/prospector/pkg/scoring"
)

// Server provides the HTTP API.
type Server struct {
	store     store.Store
	pipeline  *pipeline.Pipeline
	generator *outreach.Generator
	port      int
}

// New creates a new HTTP server.
func New(s store.Store, pl *pipeline.Pipeline, gen *outreach.Generator, port int) *Server {
	if port == 0 {
		port = 8000
	}
	return &Server{
		store:     s,
		pipeline:  pl,
		generator: gen,
		port:      port,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/adapters", s.handleAdapters)
	mux.HandleFunc("GET /api/scoring/weights", s.handleWeights)
	mux.HandleFunc("GET /api/runs", s.handleListRuns)
	mux.HandleFunc("POST /api/runs", s.handleStartRun)
	mux.HandleFunc("GET /api/runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /api/runs/{id}/status", s.handleRunStatus)
	mux.HandleFunc("GET /api/prospects", s.handleProspects)
	mux.HandleFunc("POST /api/prospects/{id}/outreach", s.handleOutreach)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("prospector server listening on %s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAdapters(w http.ResponseWriter, r *http.Request) {
	type adapterInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var infos []adapterInfo
	for _, a := range s.pipeline.Adapters() {
		infos = append(infos, adapterInfo{
			Name:        string(a.Name()),
			Description: a.Description(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  infos,
		"count": len(infos),
	})
}

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"memex":      scoring.DefaultWeights(scoring.CampaignMemex),
		"openarcade": scoring.DefaultWeights(scoring.CampaignOpenArcade),
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  runs,
		"count": len(runs),
	})
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	// An empty body means a default run.
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	run, err := s.pipeline.Start(r.Context(), opts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// The fetch can take minutes, so it runs detached from the request.
	go func() {
		if _, err := s.pipeline.Execute(context.Background(), run, opts); err != nil {
			fmt.Fprintf(os.Stderr, "run %s failed: %v\n", run.ID, err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{
		"run_id": run.ID,
		"status": run.Status,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	prospects, err := s.store.RunProspects(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run":       run,
		"prospects": prospects,
		"count":     len(prospects),
	})
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	resp := map[string]any{
		"run_id":         run.ID,
		"status":         run.Status,
		"campaign":       run.Campaign,
		"prospect_count": run.ProspectCount,
		"log":            run.Log,
	}
	if run.FinishedAt != nil {
		resp["finished_at"] = run.FinishedAt
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProspects(w http.ResponseWriter, r *http.Request) {
	prospects, err := s.store.AllProspects(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	q := r.URL.Query()
	source := q.Get("source")
	category := q.Get("category")
	minScore := 0.0
	if v := q.Get("min_score"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			minScore = f
		}
	}
	limit := 0
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	filtered := prospects[:0:0]
	for _, p := range prospects {
		if source != "" && string(p.Source) != source {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if p.FinalScore < minScore {
			continue
		}
		filtered = append(filtered, p)
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  filtered,
		"count": len(filtered),
	})
}

func (s *Server) handleOutreach(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid prospect id"})
		return
	}

	p, err := s.store.GetProspect(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	campaign := s.pipeline.Campaign()
	if run, err := s.store.GetRun(r.Context(), p.RunID); err == nil {
		campaign = run.Campaign
	}

	message, profile, err := s.generator.Generate(r.Context(), p, campaign)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	profileMap := profile.Map()
	if err := s.store.UpdateOutreach(r.Context(), id, message, profileMap); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"prospect_id":  id,
		"message":      message,
		"deep_profile": profileMap,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	prospects, err := s.store.AllProspects(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	summary := analytics.Summarize(prospects)
	if n, err := s.store.CountRuns(ctx); err == nil {
		summary.TotalRuns = n
	}

	resp := map[string]any{"summary": summary}
	if counts, err := s.store.DailyProspectCounts(ctx, 30); err == nil {
		resp["prospect_metrics"] = analytics.ComputePVA(counts)
	}
	if counts, err := s.store.DailyRunCounts(ctx, 30); err == nil {
		resp["run_metrics"] = analytics.ComputePVA(counts)
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
