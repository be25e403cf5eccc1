/**
 * @description
 * HTTP surface of the chatbot-service: GET /chat?message= and POST /chat
 * with a JSON body. Replies always come back 200 with a conversation id;
 * degraded answers are ordinary replies.
 */
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

// Replier produces a chat reply; implemented by the agent.
type Replier interface {
	Reply(ctx context.Context, message string) string
}

// Handler serves the chat endpoints.
type Handler struct {
	agent Replier
}

// NewHandler creates a new Handler over the agent.
func NewHandler(agent Replier) *Handler {
	return &Handler{agent: agent}
}

// ChatRequest is the POST body.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply payload.
type ChatResponse struct {
	ConversationID string `json:"conversationId"`
	Response       string `json:"response"`
}

// NewRouter registers the chat routes.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Chatbot service is healthy"))
	})

	r.Get("/chat", h.handleChatQuery)
	r.Post("/chat", h.handleChatBody)

	return r
}

func (h *Handler) handleChatQuery(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		http.Error(w, "message query parameter is required", http.StatusBadRequest)
		return
	}
	h.respond(w, r, message)
}

func (h *Handler) handleChatBody(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	h.respond(w, r, req.Message)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, message string) {
	reply := h.agent.Reply(r.Context(), message)
	payload := ChatResponse{
		ConversationID: uuid.NewString(),
		Response:       reply,
	}
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(response)
}
