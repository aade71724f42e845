// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/reservation-engine/internal/history"
	"github.com/pdiddy/reservation-engine/internal/markup"
	"github.com/pdiddy/reservation-engine/pkg/logger"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	HTML string `json:"html"`
	Type string `json:"type"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: ServiceName})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	log := s.logger.WithRequestID(middleware.GetReqID(r.Context()))

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rt, ok := types.ParseReservationType(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported reservation type %q", req.Type))
		return
	}

	start := time.Now()
	candidates := markup.Parse(req.HTML)
	log.Info("extracting",
		logger.String("type", string(rt)),
		logger.Int("html_bytes", len(req.HTML)),
		logger.Int("json_ld", len(candidates.JSONLD)),
		logger.Int("microdata", len(candidates.Microdata)))

	res := s.normalizer.Normalize(candidates, rt)
	elapsed := time.Since(start)

	if !res.Success {
		log.Info("no structured data found", logger.String("type", string(rt)))
	}

	if s.recorder != nil {
		attempt := history.NewAttempt("http", rt, res, candidates.Len(), elapsed)
		if err := s.recorder.Record(r.Context(), attempt); err != nil {
			log.Warn("recording attempt failed", logger.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
