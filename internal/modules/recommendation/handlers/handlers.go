// Package handlers provides HTTP handlers for allocation recommendations.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/allocator/internal/metrics"
	"github.com/aristath/allocator/internal/modules/recommendation"
	"github.com/aristath/allocator/internal/modules/riskprofile"
	"github.com/aristath/allocator/internal/utils"
	"github.com/rs/zerolog"
)

const (
	maxBodyBytes        = 1 << 20
	maxFrontierPoints   = 201
	maxSensitivityCount = 100
)

// Handler handles recommendation HTTP requests
type Handler struct {
	service *recommendation.Service
	metrics *metrics.Registry
	log     zerolog.Logger
}

// NewHandler creates a new recommendation handler
func NewHandler(service *recommendation.Service, m *metrics.Registry, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		metrics: m,
		log:     log.With().Str("handler", "recommendation").Logger(),
	}
}

// HandleRecommend handles POST /api/recommendation
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	answers, ok := h.readAnswers(w, r)
	if !ok {
		return
	}

	opts := h.service.DefaultOptions()
	if raw := r.URL.Query().Get("annualize"); raw != "" {
		annualize, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "Invalid annualize parameter", http.StatusBadRequest)
			return
		}
		opts.Annualize = annualize
	}

	rec, err := h.service.Recommend(answers, opts)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to produce recommendation")
		http.Error(w, "Failed to produce recommendation", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(rec))
}

// HandleScore handles POST /api/risk/score
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	answers, ok := h.readAnswers(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(h.service.Assess(answers)))
}

// HandleGetUniverse handles GET /api/universe
func (h *Handler) HandleGetUniverse(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Universe()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to summarize universe")
		http.Error(w, "Failed to summarize universe", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(summary))
}

// HandleGetFrontier handles GET /api/frontier
func (h *Handler) HandleGetFrontier(w http.ResponseWriter, r *http.Request) {
	points := 0
	if raw := r.URL.Query().Get("points"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 2 || n > maxFrontierPoints {
			http.Error(w, fmt.Sprintf("points must be an integer between 2 and %d", maxFrontierPoints), http.StatusBadRequest)
			return
		}
		points = n
	}

	frontier, err := h.service.Frontier(points)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to trace efficient frontier")
		http.Error(w, "Failed to trace efficient frontier", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(frontier))
}

// HandleGetSensitivity handles GET /api/sensitivity
func (h *Handler) HandleGetSensitivity(w http.ResponseWriter, r *http.Request) {
	aversions, err := utils.ParseFloatList(r.URL.Query()["aversion"])
	if err != nil {
		http.Error(w, "Invalid aversion parameter", http.StatusBadRequest)
		return
	}
	if len(aversions) > maxSensitivityCount {
		http.Error(w, fmt.Sprintf("At most %d aversion values allowed", maxSensitivityCount), http.StatusBadRequest)
		return
	}
	for _, a := range aversions {
		if a <= 0 || math.IsInf(a, 0) || math.IsNaN(a) {
			http.Error(w, "Aversion values must be positive", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.Sensitivity(r.Context(), aversions)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to run sensitivity sweep")
		http.Error(w, "Failed to run sensitivity sweep", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope(result))
}

// readAnswers decodes the questionnaire body, writing a 413 for oversized bodies and a
// 400 for anything unreadable or malformed.
func (h *Handler) readAnswers(w http.ResponseWriter, r *http.Request) (riskprofile.Answers, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}

	answers, err := riskprofile.ParseAnswers(body)
	if err != nil {
		if errors.Is(err, riskprofile.ErrMalformedAnswers) {
			h.metrics.RecordMalformedAnswers()
			h.log.Debug().Err(err).Msg("Rejected malformed answers")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		h.log.Error().Err(err).Msg("Failed to parse answers")
		http.Error(w, "Failed to parse answers", http.StatusInternalServerError)
		return nil, false
	}

	return answers, true
}

func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
