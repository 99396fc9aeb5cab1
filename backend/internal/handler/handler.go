package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cathome-dev/cathome/backend/internal/service"
	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/logger"
)

type Handler struct {
	auth     service.AuthService
	posts    service.PostService
	comments service.CommentService
	cfg      *config.Config
}

func New(auth service.AuthService, posts service.PostService, comments service.CommentService, cfg *config.Config) *Handler {
	return &Handler{auth, posts, comments, cfg}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
	}
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
	}
}
