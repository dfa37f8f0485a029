// Package api provides HTTP handlers for MedAssist endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CareBridge/MedAssist/internal/models"
)

// healthHandler reports service liveness.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.healthHandler: health check")
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}))
}

// chatHandler processes one consultation turn for a user.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.chatHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if req.UserID == "" || req.Message == "" {
		slog.Warn("Server.chatHandler: missing required fields", "userID_set", req.UserID != "", "message_set", req.Message != "")
		writeJSONResponse(w, http.StatusBadRequest, models.Error("user_id and message are required"))
		return
	}

	response, err := s.svc.HandleTurn(r.Context(), req.UserID, req.Message)
	if err != nil {
		slog.Error("Server.chatHandler: turn failed", "error", err, "userID", req.UserID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to process message"))
		return
	}

	slog.Info("Server.chatHandler: turn completed", "userID", req.UserID)
	writeJSONResponse(w, http.StatusOK, models.Success(models.ChatResponse{
		UserID:   req.UserID,
		Response: response,
	}))
}

// userSummaryHandler renders the health summary for a user.
func (s *Server) userSummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("user_id is required"))
		return
	}

	summary, err := s.svc.UserSummary(userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			slog.Warn("Server.userSummaryHandler: user not found", "userID", userID)
			writeJSONResponse(w, http.StatusNotFound, models.Error("User not found"))
			return
		}
		slog.Error("Server.userSummaryHandler: summary failed", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to render summary"))
		return
	}

	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{
		"user_id": userID,
		"summary": summary,
	}))
}

// updateBasicInfoHandler merges basic info fields into a user's record.
func (s *Server) updateBasicInfoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("user_id is required"))
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		slog.Warn("Server.updateBasicInfoHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	if err := s.svc.UpdateBasicInfo(userID, fields); err != nil {
		slog.Error("Server.updateBasicInfoHandler: update failed", "error", err, "userID", userID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to update basic info"))
		return
	}

	slog.Info("Server.updateBasicInfoHandler: basic info updated", "userID", userID)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Basic info updated", nil))
}
