package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sightstack/stackstream/internal/db"
	"github.com/sightstack/stackstream/internal/models"
	"github.com/sightstack/stackstream/internal/rowkey"
)

const (
	DEFAULT_SEARCH_LIMIT = 10
	MAX_SEARCH_RESULTS   = 100
	MAX_SUGGESTIONS      = 10
	MIN_SUGGEST_PREFIX   = 2
)

// Server exposes the read-side query API over the repository.
type Server struct {
	repo   *db.Repository
	server *http.Server
}

func NewServer(port int, repo *db.Repository) *Server {
	s := &Server{repo: repo}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/questions", s.handleQuestionsByTag)
	mux.HandleFunc("/questions/", s.handleQuestionByID)
	mux.HandleFunc("/trends", s.handleTrends)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/search/suggest", s.handleSuggest)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	slog.Info("[Server] Listening...", slog.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleQuestionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/questions/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid question ID", http.StatusBadRequest)
		return
	}

	q, err := s.repo.GetQuestionByID(r.Context(), id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve question: %v", err), http.StatusInternalServerError)
		return
	}
	if q == nil {
		http.Error(w, "Question not found", http.StatusNotFound)
		return
	}

	writeJSON(w, q)
}

func (s *Server) handleQuestionsByTag(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tag := r.URL.Query().Get("tag")
	if tag == "" {
		http.Error(w, "Missing tag parameter", http.StatusBadRequest)
		return
	}

	limit := queryInt(r, "limit", DEFAULT_SEARCH_LIMIT)
	start := int64(queryInt(r, "start", 0))
	end := int64(queryInt(r, "end", 0))

	questions, err := s.repo.GetQuestionsByTag(r.Context(), tag, limit, start, end)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve questions: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
		"tag":       tag,
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tag := r.URL.Query().Get("tag")
	if tag == "" {
		http.Error(w, "Missing tag parameter", http.StatusBadRequest)
		return
	}
	period, err := rowkey.ParsePeriodType(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, "Invalid period type", http.StatusBadRequest)
		return
	}

	trends, err := s.repo.GetTagTrends(r.Context(), tag, period,
		r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve trends: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"tag":    tag,
		"period": period,
		"trends": trends,
	})
}

type searchResponse struct {
	Results      []models.Question `json:"results"`
	TotalResults int               `json:"total_results"`
	SearchTimeMs int64             `json:"search_time_ms"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	var tags []string
	if tagList := r.URL.Query().Get("tags"); tagList != "" {
		tags = strings.Split(tagList, ",")
	}
	limit := queryInt(r, "limit", DEFAULT_SEARCH_LIMIT)
	if limit > MAX_SEARCH_RESULTS {
		limit = MAX_SEARCH_RESULTS
	}

	started := time.Now()
	results, err := s.repo.SearchQuestions(r.Context(), query, tags, limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Search failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, searchResponse{
		Results:      results,
		TotalResults: len(results),
		SearchTimeMs: time.Since(started).Milliseconds(),
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	prefix := r.URL.Query().Get("prefix")
	if len(prefix) < MIN_SUGGEST_PREFIX {
		writeJSON(w, []string{})
		return
	}

	titles, err := s.repo.SuggestQuestionTitles(r.Context(), prefix, MAX_SUGGESTIONS)
	if err != nil {
		http.Error(w, fmt.Sprintf("Suggest failed: %v", err), http.StatusInternalServerError)
		return
	}
	if titles == nil {
		titles = []string{}
	}

	writeJSON(w, titles)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("[Server] Failed to encode response", slog.String("error", err.Error()))
	}
}

func queryInt(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}
