package handler

import (
	"net/http"

	frontend_domain "github.com/cathome-dev/cathome/frontend/internal/domain"
	"github.com/cathome-dev/cathome/shared/logger"
)

// BoardGetHandler renders the board list. The whole browsing state lives
// in the query string, so reload, bookmark and the back button all restore
// the same screen.
func (h *Handler) BoardGetHandler(w http.ResponseWriter, r *http.Request) {
	state := frontend_domain.ParseBoardState(r.URL.Query())

	list, err := h.APIClient.ListPosts(state.Page, state.Search)
	if err != nil {
		logger.Log.Error("failed to load board", "error", err)
		h.renderTemplateWithError(w, r, "board.html",
			frontend_domain.NewBoardPage(state, nil, 0, h.Public.PostsPerPage),
			"Could not load the board, please try again")
		return
	}

	page := frontend_domain.NewBoardPage(state, list.Posts, list.TotalCount, h.Public.PostsPerPage)
	h.renderTemplate(w, r, "board.html", page)
}

// SearchPostHandler turns the search form submission into canonical board
// URLs, so the state stays shareable.
func (h *Handler) SearchPostHandler(w http.ResponseWriter, r *http.Request) {
	state := frontend_domain.BoardState{Page: 1}.WithSearch(r.FormValue("q"))
	http.Redirect(w, r, state.URL(), http.StatusSeeOther)
}
