package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/flowcoaching/site-server-go/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	authGate        func(http.Handler) http.Handler
}

func NewSettingsHandler(
	settingsService *service.SettingsService,
	authGate func(http.Handler) http.Handler,
) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		authGate:        authGate,
	}
}

func (h *SettingsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.authGate)
		r.Get("/notification-emails", h.GetNotificationEmails)
		r.Post("/notification-emails", h.SetNotificationEmails)
	})

	return r
}

func (h *SettingsHandler) GetNotificationEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.settingsService.NotificationEmails(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch settings")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch settings"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"emails": emails})
}

func (h *SettingsHandler) SetNotificationEmails(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Emails *string `json:"emails"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Emails == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid emails format"})
		return
	}

	if err := h.settingsService.SetNotificationEmails(r.Context(), *req.Emails); err != nil {
		log.Error().Err(err).Msg("failed to update settings")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update settings"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "emails": *req.Emails})
}
