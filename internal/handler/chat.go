package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/flowcoaching/site-server-go/internal/service"
)

type ChatHandler struct {
	chatService   *service.ChatService
	publicLimiter func(http.Handler) http.Handler
}

func NewChatHandler(
	chatService *service.ChatService,
	publicLimiter func(http.Handler) http.Handler,
) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		publicLimiter: publicLimiter,
	}
}

func (h *ChatHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.publicLimiter).Post("/", h.Chat)

	return r
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Messages json.RawMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid messages format"})
		return
	}

	var messages []service.ChatMessage
	if err := json.Unmarshal(req.Messages, &messages); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid messages format"})
		return
	}

	reply, err := h.chatService.Converse(r.Context(), messages)
	if err != nil {
		log.Error().Err(err).Msg("chat error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Sohbet hatası oluştu"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": reply})
}
