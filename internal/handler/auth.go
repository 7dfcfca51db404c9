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

type AuthHandler struct {
	authService  *service.AuthService
	authGate     func(http.Handler) http.Handler
	loginLimiter func(http.Handler) http.Handler
}

func NewAuthHandler(
	authService *service.AuthService,
	authGate func(http.Handler) http.Handler,
	loginLimiter func(http.Handler) http.Handler,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		authGate:     authGate,
		loginLimiter: loginLimiter,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/setup", h.Setup)
	r.Get("/setup-status", h.SetupStatus)
	r.With(h.loginLimiter).Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.authGate)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})

	return r
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Setup bootstraps the first admin. It fails once any admin exists.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email, şifre ve ad gereklidir"})
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email, şifre ve ad gereklidir"})
		return
	}

	admin, err := h.authService.Setup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if apperrors.IsAppError(err) {
			writeError(w, err)
			return
		}
		log.Error().Err(err).Msg("setup error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Kurulum yapılamadı"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
	})
}

func (h *AuthHandler) SetupStatus(w http.ResponseWriter, r *http.Request) {
	needsSetup, err := h.authService.NeedsSetup(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("setup status error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Durum kontrol edilemedi"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"needsSetup": needsSetup})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email ve şifre gereklidir"})
		return
	}

	admin, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Msg("login error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Giriş yapılamadı"})
		return
	}

	// Unknown email and wrong password collapse to one message.
	if admin == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Geçersiz email veya şifre"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
		"token": token,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractBearerToken(r)
	if token != "" {
		if err := h.authService.Logout(r.Context(), token); err != nil {
			log.Error().Err(err).Msg("logout error")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Çıkış yapılamadı"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin := middleware.GetAdmin(r.Context())
	if admin == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
	})
}
