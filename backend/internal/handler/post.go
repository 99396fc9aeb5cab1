package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cathome-dev/cathome/shared/api"
	mw "github.com/cathome-dev/cathome/shared/middleware"
	"github.com/cathome-dev/cathome/shared/utils"
)

const defaultPage = 1

// ListPosts serves one board page: GET /v1/posts?page=N&q=keyword.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page := defaultPage
	if pageQuery := r.URL.Query().Get("page"); pageQuery != "" {
		var err error
		if page, err = parseIntParam(pageQuery, "page"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	keyword := strings.TrimSpace(r.URL.Query().Get("q"))

	total, posts, err := h.posts.List(page, keyword)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.PostListResponse{TotalCount: total, Posts: posts})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(chi.URLParam(r, "post"), "post")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.PostResponse{Post: post})
}

// RecordView bumps the view counter and returns the new value:
// POST /v1/posts/{post}/views.
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(chi.URLParam(r, "post"), "post")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.posts.View(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ViewsResponse{Views: post.Views})
}

// CreatePost accepts a multipart form: a "json" field holding the request
// DTO plus an optional "image" file.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreatePostRequest
	if err := utils.DecodeValidate(strings.NewReader(r.FormValue("json")), &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	image, err := h.formImage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.posts.Create(r.Context(), *user, body.Title, body.Content, image)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.PostResponse{Post: post})
}

// UpdatePost takes the same multipart shape as CreatePost; omitting the
// image file keeps the stored one.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	id, err := parseInt64Param(chi.URLParam(r, "post"), "post")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdatePostRequest
	if err := utils.DecodeValidate(strings.NewReader(r.FormValue("json")), &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	image, err := h.formImage(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.posts.Update(r.Context(), *user, id, body.Title, body.Content, image); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.PostResponse{Post: post})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	id, err := parseInt64Param(chi.URLParam(r, "post"), "post")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.posts.Delete(r.Context(), *user, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
