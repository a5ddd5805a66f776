package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusworks/timetable-engine/internal/models"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// isNotFound matches the repository's not-found update/delete errors
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", "service not ready")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Program handlers

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := s.repo.ListPrograms(r.Context())
	if err != nil {
		slog.Error("failed to list programs", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list programs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"programs": programs,
		"total":    len(programs),
	})
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var p models.Program
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if p.ID == "" || p.Name == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "id and name are required")
		return
	}

	if err := s.repo.CreateProgram(r.Context(), &p); err != nil {
		slog.Error("failed to create program", "error", err, "id", p.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create program")
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.repo.GetProgram(r.Context(), id)
	if err != nil {
		slog.Error("failed to get program", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get program")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "not_found", "program not found")
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	var p models.Program
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	p.ID = chi.URLParam(r, "id")

	if err := s.repo.UpdateProgram(r.Context(), &p); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "not_found", "program not found")
			return
		}
		slog.Error("failed to update program", "error", err, "id", p.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update program")
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.repo.DeleteProgram(r.Context(), id); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "not_found", "program not found")
			return
		}
		slog.Error("failed to delete program", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete program")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "program deleted"})
}

// Course handlers

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.repo.ListCourses(r.Context())
	if err != nil {
		slog.Error("failed to list courses", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list courses")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"courses": courses,
		"total":   len(courses),
	})
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var c models.Course
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if c.ID == "" || c.Code == "" || c.Name == "" || c.ProgramID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "id, code, name and program_id are required")
		return
	}

	program, err := s.repo.GetProgram(r.Context(), c.ProgramID)
	if err != nil {
		slog.Error("failed to check program", "error", err, "program_id", c.ProgramID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create course")
		return
	}
	if program == nil {
		respondError(w, http.StatusBadRequest, "validation_error", "program_id references an unknown program")
		return
	}

	if err := s.repo.CreateCourse(r.Context(), &c); err != nil {
		slog.Error("failed to create course", "error", err, "id", c.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create course")
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := s.repo.GetCourse(r.Context(), id)
	if err != nil {
		slog.Error("failed to get course", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get course")
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "not_found", "course not found")
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var c models.Course
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	c.ID = chi.URLParam(r, "id")

	if err := s.repo.UpdateCourse(r.Context(), &c); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "not_found", "course not found")
			return
		}
		slog.Error("failed to update course", "error", err, "id", c.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update course")
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.repo.DeleteCourse(r.Context(), id); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "not_found", "course not found")
			return
		}
		slog.Error("failed to delete course", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete course")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "course deleted"})
}

// Faculty handlers

func (s *Server) handleListFaculty(w http.ResponseWriter, r *http.Request) {
	faculty, err := s.repo.ListFaculty(r.Context())
	if err != nil {
		slog.Error("failed to list faculty", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list faculty")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"faculty": faculty,
		"total":   len(faculty),
	})
}

func (s *Server) handleCreateFaculty(w http.ResponseWriter, r *http.Request) {
	var f models.Faculty
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if f.ID == "" || f.Name == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "id and name are required")
		return
	}

	if err := s.repo.CreateFaculty(r.Context(), &f); err != nil {
		slog.Error("failed to create faculty", "error", err, "id", f.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create faculty")
		return
	}

	respondJSON(w, http.StatusCreated, f)
}

func (s *Server) handleGetFaculty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	f, err := s.repo.GetFaculty(r.Context(), id)
	if err != nil {
		slog.Error("failed to get faculty", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get faculty")
		return
	}
	if f == nil {
		respondError(w, http.StatusNotFound, "not_found", "faculty not found")
		return
	}

	respondJSON(w, http.StatusOK, f)
}

func (s *Server) handleUpdateFaculty(w http.ResponseWriter, r *http.Request) {
	var f models.Faculty
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	f.ID = chi.URLParam(r, "id")

	if err := s.repo.UpdateFaculty(r.Context(), &f); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "not_found", "faculty not found")
			return
		}
		slog.Error("failed to update faculty", "error", err, "id", f.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update faculty")
		return
	}

	respondJSON(w, http.StatusOK, f)
}

func (s *Server) handleDeleteFaculty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.repo.DeleteFaculty(r.Context(), id); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "not_found", "faculty not found")
			return
		}
		slog.Error("failed to delete faculty", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete faculty")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "faculty deleted"})
}

// Room handlers

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.repo.ListRooms(r.Context())
	if err != nil {
		slog.Error("failed to list rooms", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list rooms")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rooms": rooms,
		"total": len(rooms),
	})
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var room models.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if room.ID == "" || room.Name == "" || room.Category == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "id, name and category are required")
		return
	}

	if err := s.repo.CreateRoom(r.Context(), &room); err != nil {
		slog.Error("failed to create room", "error", err, "id", room.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create room")
		return
	}

	respondJSON(w, http.StatusCreated, room)
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	room, err := s.repo.GetRoom(r.Context(), id)
	if err != nil {
		slog.Error("failed to get room", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get room")
		return
	}
	if room == nil {
		respondError(w, http.StatusNotFound, "not_found", "room not found")
		return
	}

	respondJSON(w, http.StatusOK, room)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	var room models.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	room.ID = chi.URLParam(r, "id")

	if err := s.repo.UpdateRoom(r.Context(), &room); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "not_found", "room not found")
			return
		}
		slog.Error("failed to update room", "error", err, "id", room.ID)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update room")
		return
	}

	respondJSON(w, http.StatusOK, room)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.repo.DeleteRoom(r.Context(), id); err != nil {
		if isNotFound(err) {
			respondError(w, http.StatusNotFound, "not_found", "room not found")
			return
		}
		slog.Error("failed to delete room", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete room")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "room deleted"})
}
