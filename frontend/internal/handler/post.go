package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cathome-dev/cathome/frontend/internal/apiclient"
	frontend_domain "github.com/cathome-dev/cathome/frontend/internal/domain"
	"github.com/cathome-dev/cathome/shared/domain"
	"github.com/cathome-dev/cathome/shared/logger"
	mw "github.com/cathome-dev/cathome/shared/middleware"
	"github.com/cathome-dev/cathome/shared/utils"
)

func postIdParam(r *http.Request) (domain.PostId, error) {
	var id domain.PostId
	if _, err := fmt.Sscanf(chi.URLParam(r, "post"), "%d", &id); err != nil {
		return 0, fmt.Errorf("parameter post should be a number")
	}
	return id, nil
}

// PostGetHandler renders the detail screen and registers the visit.
func (h *Handler) PostGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	backState := frontend_domain.ParseBoardState(r.URL.Query())

	post, err := h.APIClient.GetPost(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// A rendered detail page is a view. The counter comes back already
	// bumped, so the visitor sees their own visit counted.
	if views, err := h.APIClient.RecordView(id); err == nil {
		post.Views = views
	} else {
		logger.Log.Warn("failed to record view", "post_id", id, "error", err)
	}

	comments, err := h.APIClient.ListComments(id)
	if err != nil {
		logger.Log.Error("failed to load comments", "post_id", id, "error", err)
		comments = nil
	}

	user := mw.GetUserFromContext(r)
	page := frontend_domain.PostPage{
		Post:      *post,
		Body:      h.TextProcessor.Render(post.Content),
		IsAuthor:  user != nil && user.Id == post.AuthorId,
		BackState: backState,
	}
	for _, c := range comments {
		page.Comments = append(page.Comments, frontend_domain.CommentView{
			Comment:   c,
			Body:      h.TextProcessor.Render(c.Content),
			CanDelete: user != nil && user.Id == c.AuthorId,
		})
	}

	h.renderTemplate(w, r, "post.html", page)
}

func (h *Handler) WriteGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "write.html", frontend_domain.WritePage{
		BackState: frontend_domain.ParseBoardState(r.URL.Query()),
	})
}

func (h *Handler) WritePostHandler(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	content := r.FormValue("content")

	upload, err := h.formUpload(r)
	if err != nil {
		h.renderTemplateWithError(w, r, "write.html",
			frontend_domain.WritePage{Title: title, Content: content}, err.Error())
		return
	}

	post, err := h.APIClient.CreatePost(title, content, upload, sessionCookie(r)...)
	if err != nil {
		h.renderTemplateWithError(w, r, "write.html",
			frontend_domain.WritePage{Title: title, Content: content}, err.Error())
		return
	}

	redirectWithSuccess(w, r, fmt.Sprintf("/posts/%d", post.Id), "Post published")
}

func (h *Handler) EditGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.APIClient.GetPost(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user := mw.GetUserFromContext(r)
	if user == nil || user.Id != post.AuthorId {
		redirectWithError(w, r, fmt.Sprintf("/posts/%d", id), "Only the author can edit this post")
		return
	}

	h.renderTemplate(w, r, "write.html", frontend_domain.WritePage{
		Editing:   true,
		PostId:    post.Id,
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		BackState: frontend_domain.ParseBoardState(r.URL.Query()),
	})
}

func (h *Handler) EditPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	title := r.FormValue("title")
	content := r.FormValue("content")

	editPage := frontend_domain.WritePage{Editing: true, PostId: id, Title: title, Content: content}

	upload, err := h.formUpload(r)
	if err != nil {
		h.renderTemplateWithError(w, r, "write.html", editPage, err.Error())
		return
	}

	if err := h.APIClient.UpdatePost(id, title, content, upload, sessionCookie(r)...); err != nil {
		h.renderTemplateWithError(w, r, "write.html", editPage, err.Error())
		return
	}

	redirectWithSuccess(w, r, fmt.Sprintf("/posts/%d", id), "Post updated")
}

func (h *Handler) PostDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.APIClient.DeletePost(id, sessionCookie(r)...); err != nil {
		redirectWithError(w, r, fmt.Sprintf("/posts/%d", id), err.Error())
		return
	}

	redirectWithSuccess(w, r, "/", "Post deleted")
}

// formUpload reads the optional image file out of the browser form.
func (h *Handler) formUpload(r *http.Request) (*apiclient.PostUpload, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid image upload")
	}

	if h.Public.MaxImageSizeBytes > 0 && header.Size > h.Public.MaxImageSizeBytes {
		file.Close()
		return nil, fmt.Errorf("image is larger than %d bytes", h.Public.MaxImageSizeBytes)
	}

	return &apiclient.PostUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	}, nil
}
