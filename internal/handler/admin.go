package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/flowcoaching/site-server-go/internal/errors"
	"github.com/flowcoaching/site-server-go/internal/middleware"
	"github.com/flowcoaching/site-server-go/internal/service"
)

// AdminHandler serves the back-office user management routes. Every route is
// behind the bearer-token gate.
type AdminHandler struct {
	authService *service.AuthService
	authGate    func(http.Handler) http.Handler
}

func NewAdminHandler(
	authService *service.AuthService,
	authGate func(http.Handler) http.Handler,
) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		authGate:    authGate,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.authGate)
		r.Get("/users", h.ListUsers)
		r.Post("/users", h.CreateUser)
		r.Delete("/users/{id}", h.DeleteUser)
	})

	return r
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	admins, err := h.authService.ListAdmins(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list admins")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch admins"})
		return
	}

	writeJSON(w, http.StatusOK, admins)
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Tüm alanlar gereklidir"})
		return
	}

	admin, err := h.authService.CreateAdmin(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if apperrors.IsAppError(err) {
			writeError(w, err)
			return
		}
		log.Error().Err(err).Msg("failed to create admin")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Admin oluşturulamadı"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
	})
}

// DeleteUser removes an admin. Deleting yourself is always rejected.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	caller := middleware.GetAdmin(r.Context())
	if caller != nil && caller.ID == id {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Kendinizi silemezsiniz"})
		return
	}

	if err := h.authService.DeleteAdmin(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete admin")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Admin silinemedi"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
