package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cathome-dev/cathome/shared/domain"
)

func (h *Handler) CommentPostHandler(w http.ResponseWriter, r *http.Request) {
	postId, err := postIdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	targetURL := fmt.Sprintf("/posts/%d", postId)

	if err := h.APIClient.CreateComment(postId, r.FormValue("content"), sessionCookie(r)...); err != nil {
		redirectWithError(w, r, targetURL, err.Error())
		return
	}

	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}

func (h *Handler) CommentDeleteHandler(w http.ResponseWriter, r *http.Request) {
	postId, err := postIdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	targetURL := fmt.Sprintf("/posts/%d", postId)

	var commentId domain.CommentId
	if _, err := fmt.Sscanf(chi.URLParam(r, "comment"), "%d", &commentId); err != nil {
		http.Error(w, "parameter comment should be a number", http.StatusBadRequest)
		return
	}

	if err := h.APIClient.DeleteComment(postId, commentId, sessionCookie(r)...); err != nil {
		redirectWithError(w, r, targetURL, err.Error())
		return
	}

	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}
