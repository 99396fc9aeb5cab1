package handler

import (
	"html/template"
	"net/http"

	"github.com/cathome-dev/cathome/frontend/internal/apiclient"
	frontend_domain "github.com/cathome-dev/cathome/frontend/internal/domain"
	"github.com/cathome-dev/cathome/frontend/internal/textproc"
	"github.com/cathome-dev/cathome/shared/api"
	"github.com/cathome-dev/cathome/shared/config"
)

type Handler struct {
	Templates     map[string]*template.Template
	Public        config.Public
	TextProcessor *textproc.TextProcessor
	APIClient     *apiclient.APIClient
}

func New(templates map[string]*template.Template, publicCfg config.Public, textProcessor *textproc.TextProcessor, apiClient *apiclient.APIClient) *Handler {
	return &Handler{
		Templates:     templates,
		Public:        publicCfg,
		TextProcessor: textProcessor,
		APIClient:     apiClient,
	}
}

func (h *Handler) getTemplate(name string) (*template.Template, bool) {
	tmpl, ok := h.Templates[name]
	return tmpl, ok
}

func (h *Handler) validationData() frontend_domain.ValidationData {
	return frontend_domain.ValidationData{
		PasswordMinLen:    api.PasswordMinLen,
		TitleMaxLen:       h.Public.TitleMaxLen,
		ContentMaxLen:     h.Public.ContentMaxLen,
		CommentMaxLen:     h.Public.CommentMaxLen,
		MaxImageSizeBytes: h.Public.MaxImageSizeBytes,
		AllowedImageMimes: h.Public.AllowedImageMimeTypes,
	}
}

func FaviconHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "frontend/static/favicon.ico")
}
