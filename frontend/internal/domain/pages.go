// Package frontend_domain holds the view models the page templates render.
package frontend_domain

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/cathome-dev/cathome/shared/domain"
)

// BoardState is the browsing position of the board: which page and which
// search keyword. It round-trips through the URL query string so every
// state is bookmarkable and the back button restores it exactly.
type BoardState struct {
	Page   int
	Search string
}

// ParseBoardState reads the state out of a request query. Absent or broken
// values fall back to the first page with no filter.
func ParseBoardState(query url.Values) BoardState {
	state := BoardState{Page: 1}
	if pageStr := query.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			state.Page = page
		}
	}
	state.Search = strings.TrimSpace(query.Get("q"))
	return state
}

// WithPage returns a copy positioned on another page; the search filter is
// carried along.
func (s BoardState) WithPage(page int) BoardState {
	s.Page = page
	return s
}

// WithSearch returns a copy filtered by a new keyword, reset to the first
// page.
func (s BoardState) WithSearch(keyword string) BoardState {
	s.Search = strings.TrimSpace(keyword)
	s.Page = 1
	return s
}

// Query encodes the state back into a query string, empty for the default
// state so plain "/" URLs stay clean.
func (s BoardState) Query() string {
	query := url.Values{}
	if s.Page > 1 {
		query.Set("page", strconv.Itoa(s.Page))
	}
	if s.Search != "" {
		query.Set("q", s.Search)
	}
	if len(query) == 0 {
		return ""
	}
	return "?" + query.Encode()
}

// URL renders the board path for this state.
func (s BoardState) URL() string {
	return "/" + s.Query()
}

// PostRow is one line of the board table.
type PostRow struct {
	domain.Post
	// RowNumber counts down from the total so the newest post carries the
	// highest number regardless of page.
	RowNumber int
	HasImage  bool
}

type Pager struct {
	Current int
	Total   int
	Pages   []int
	HasPrev bool
	HasNext bool
	PrevURL string
	NextURL string
}

// BoardPage is the list screen.
type BoardPage struct {
	State      BoardState
	Rows       []PostRow
	TotalCount int
	Pager      Pager
	// NoPosts: the board is empty. NoResults: a search matched nothing.
	// They render different placeholder messages.
	NoPosts   bool
	NoResults bool
}

// NewBoardPage numbers the rows and lays out the pager for one backend
// response.
func NewBoardPage(state BoardState, posts []domain.Post, totalCount, perPage int) BoardPage {
	page := BoardPage{State: state, TotalCount: totalCount}

	firstRowNumber := totalCount - (state.Page-1)*perPage
	for i, post := range posts {
		page.Rows = append(page.Rows, PostRow{
			Post:      post,
			RowNumber: firstRowNumber - i,
			HasImage:  post.ImageURL != nil,
		})
	}

	if totalCount == 0 {
		if state.Search == "" {
			page.NoPosts = true
		} else {
			page.NoResults = true
		}
	}

	totalPages := (totalCount + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	pager := Pager{
		Current: state.Page,
		Total:   totalPages,
		HasPrev: state.Page > 1,
		HasNext: state.Page < totalPages,
	}
	for p := 1; p <= totalPages; p++ {
		pager.Pages = append(pager.Pages, p)
	}
	if pager.HasPrev {
		pager.PrevURL = state.WithPage(state.Page - 1).URL()
	}
	if pager.HasNext {
		pager.NextURL = state.WithPage(state.Page + 1).URL()
	}
	page.Pager = pager

	return page
}

// PageURL renders the board URL for another page of the same state, for
// the numbered pager links.
func (p BoardPage) PageURL(page int) string {
	return p.State.WithPage(page).URL()
}

// CommentView is a comment plus what the current visitor may do with it.
type CommentView struct {
	domain.Comment
	Body      template.HTML
	CanDelete bool
}

// PostPage is the detail screen.
type PostPage struct {
	domain.Post
	Body     template.HTML
	Comments []CommentView
	IsAuthor bool
	// BackState preserves the list position the visitor came from.
	BackState BoardState
}

// WritePage backs both the new-post form and the edit form.
type WritePage struct {
	Editing   bool
	PostId    domain.PostId
	Title     string
	Content   string
	ImageURL  *string
	BackState BoardState
}

// CommonTemplateData holds fields common to all page templates, available
// as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	Error      string
	Success    string
	User       *domain.User
	Validation ValidationData
}

// ValidationData exposes form limits to the templates.
type ValidationData struct {
	PasswordMinLen    int
	TitleMaxLen       int
	ContentMaxLen     int
	CommentMaxLen     int
	MaxImageSizeBytes int64
	AllowedImageMimes []string
}
