package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/flowcoaching/site-server-go/internal/errors"
	"github.com/flowcoaching/site-server-go/internal/service"
)

type LeadHandler struct {
	leadService   *service.LeadService
	authGate      func(http.Handler) http.Handler
	publicLimiter func(http.Handler) http.Handler
}

func NewLeadHandler(
	leadService *service.LeadService,
	authGate func(http.Handler) http.Handler,
	publicLimiter func(http.Handler) http.Handler,
) *LeadHandler {
	return &LeadHandler{
		leadService:   leadService,
		authGate:      authGate,
		publicLimiter: publicLimiter,
	}
}

func (h *LeadHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.publicLimiter).Post("/", h.Submit)
	r.With(h.authGate).Get("/", h.List)

	return r
}

type leadRequest struct {
	service.LeadInput
	VerificationToken string `json:"verificationToken"`
}

// Submit accepts a public lead form submission. A 201 means the lead is
// stored; notification delivery happens after the response and cannot change
// the outcome.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Geçersiz istek"})
		return
	}

	lead, err := h.leadService.Submit(r.Context(), req.LeadInput, req.VerificationToken)
	if err != nil {
		if apperrors.IsAppError(err) {
			writeError(w, err)
			return
		}
		log.Error().Err(err).Msg("failed to create lead")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Form gönderilemedi"})
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadService.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list leads")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch leads"})
		return
	}

	writeJSON(w, http.StatusOK, leads)
}
