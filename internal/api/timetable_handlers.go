package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/campusworks/timetable-engine/internal/export"
	"github.com/campusworks/timetable-engine/internal/timetable"
)

// Timetable handlers — generation, latest snapshot, exports, run history

type generateRequest struct {
	ProgramIDs []string `json:"program_ids,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
	}

	requestedBy := ""
	if client := ClientFromContext(r.Context()); client != nil {
		requestedBy = client.Name
	}

	result, err := s.service.Generate(r.Context(), timetable.GenerateOptions{
		ProgramIDs:  req.ProgramIDs,
		RequestedBy: requestedBy,
	})
	if err != nil {
		slog.Error("failed to generate timetable", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to generate timetable")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Latest(r.Context())
	if err != nil {
		slog.Error("failed to load timetable snapshot", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load timetable")
		return
	}
	if result == nil {
		respondError(w, http.StatusNotFound, "not_found", "no timetable has been generated yet")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Latest(r.Context())
	if err != nil {
		slog.Error("failed to load timetable snapshot", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load timetable")
		return
	}
	if result == nil {
		respondError(w, http.StatusNotFound, "not_found", "no timetable has been generated yet")
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(export.Text(s.service.Grid(), result.Timetable)))
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="timetable.csv"`)
		w.WriteHeader(http.StatusOK)
		if err := export.CSV(w, result.Timetable); err != nil {
			slog.Error("failed to write csv export", "error", err)
		}
	default:
		respondError(w, http.StatusBadRequest, "validation_error", "unsupported format: use text or csv")
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	runs, err := s.service.Runs(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list generation runs", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"total": len(runs),
	})
}
