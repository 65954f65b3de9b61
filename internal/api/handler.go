// Package api exposes analysis and correction over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/paddock-picks/internal/health"
	"github.com/yourusername/paddock-picks/internal/models"
	"github.com/yourusername/paddock-picks/internal/service"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AnalyzeResponse is returned by POST /v1/analyze.
type AnalyzeResponse struct {
	*service.Report
	Worklist []models.PickCard `json:"worklist"`
}

// CorrectRequest is the body of POST /v1/correct.
type CorrectRequest struct {
	Track  string `json:"track"`
	RaceNo int    `json:"race_no"`
	Horse  string `json:"horse"`
	Text   string `json:"text"`
}

// CorrectResponse is returned by POST /v1/correct.
type CorrectResponse struct {
	Pick        *models.PickCard  `json:"pick"`
	Recommended []models.PickCard `json:"recommended"`
	Worklist    []models.PickCard `json:"worklist"`
}

// Handler serves the analysis API. Corrections apply to the session of the most
// recent successful analysis.
type Handler struct {
	analysis *service.AnalysisService
	maxBody  int64
	logger   *logrus.Entry

	mu      sync.RWMutex
	session *service.Session
}

// NewHandler creates a new API handler.
func NewHandler(analysis *service.AnalysisService, maxBody int64, log *logrus.Logger) *Handler {
	return &Handler{
		analysis: analysis,
		maxBody:  maxBody,
		logger:   log.WithField("component", "api"),
	}
}

// Register adds the /v1 routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/analyze", h.handleAnalyze)
	mux.HandleFunc("POST /v1/correct", h.handleCorrect)
}

func (h *Handler) currentSession() *service.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			health.WriteJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return
		}
		health.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	report, err := h.analysis.Analyze(r.Context(), string(body))
	switch {
	case errors.Is(err, models.ErrEmptyInput):
		health.WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		h.logger.WithError(err).Error("Analysis failed")
		health.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "analysis failed"})
		return
	}

	session := h.analysis.NewSession(report)
	h.mu.Lock()
	h.session = session
	h.mu.Unlock()

	health.WriteJSON(w, http.StatusOK, AnalyzeResponse{Report: report, Worklist: session.Worklist()})
}

func (h *Handler) handleCorrect(w http.ResponseWriter, r *http.Request) {
	var req CorrectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody)).Decode(&req); err != nil {
		health.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}
	// Horse may be empty: picks whose name could not be recovered are keyed by race.
	if req.RaceNo < models.MinRaceNo || req.RaceNo > models.MaxRaceNo || req.Text == "" {
		health.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "race_no (1-12) and text are required"})
		return
	}

	session := h.currentSession()
	if session == nil {
		health.WriteJSON(w, http.StatusConflict, ErrorResponse{Error: "no analysis session; POST /v1/analyze first"})
		return
	}

	pick, err := session.Correct(models.NewPickKey(req.Track, req.RaceNo, req.Horse), req.Text)
	switch {
	case errors.Is(err, models.ErrPickNotFound):
		health.WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, models.ErrRangeNotFound), errors.Is(err, models.ErrNoSelection):
		health.WriteJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		h.logger.WithError(err).Error("Correction failed")
		health.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "correction failed"})
		return
	}

	health.WriteJSON(w, http.StatusOK, CorrectResponse{
		Pick:        pick,
		Recommended: session.Recommended(),
		Worklist:    session.Worklist(),
	})
}
