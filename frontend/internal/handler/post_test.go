package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cathome-dev/cathome/frontend/internal/apiclient"
	"github.com/cathome-dev/cathome/frontend/internal/textproc"
	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/domain"
	mw "github.com/cathome-dev/cathome/shared/middleware"
)

// realTemplates parses the actual template files so tests see what the
// browser would.
func realTemplates(t *testing.T) map[string]*template.Template {
	t.Helper()
	dir := filepath.Join("..", "..", "templates")
	post := template.Must(template.New("base.html").ParseFiles(
		filepath.Join(dir, "base.html"),
		filepath.Join(dir, "post.html"),
		filepath.Join(dir, "partials.html"),
	))
	return map[string]*template.Template{"post.html": post}
}

func newRenderedHandler(t *testing.T, backendURL string) *Handler {
	t.Helper()
	cfg := config.Public{PostsPerPage: 2, TitleMaxLen: 100, ContentMaxLen: 2000, CommentMaxLen: 500}
	return New(realTemplates(t), cfg, textproc.New(), apiclient.New(backendURL))
}

func asUser(req *http.Request, user domain.User) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), mw.UserClaimsKey, &user))
}

func detailPost() []domain.Post {
	return []domain.Post{
		{Id: 3, Title: "newest", Content: "three", AuthorId: "author-1", AuthorNickname: "nabi", CreatedAt: time.Now(), Views: 5},
	}
}

func detailComments() []domain.Comment {
	return []domain.Comment{
		{Id: 1, PostId: 3, Content: "mine", AuthorId: "author-1", AuthorNickname: "nabi", CreatedAt: time.Now()},
		{Id: 2, PostId: 3, Content: "theirs", AuthorId: "someone-else", AuthorNickname: "mimi", CreatedAt: time.Now()},
	}
}

func renderDetail(t *testing.T, target string, user *domain.User) string {
	t.Helper()
	backend := stubBackend(t, detailPost(), detailComments())
	defer backend.Close()
	h := newRenderedHandler(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if user != nil {
		req = asUser(req, *user)
	}
	rr := httptest.NewRecorder()
	frontendRouter(h).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestPostPageAuthorControls(t *testing.T) {
	body := renderDetail(t, "/posts/3?page=2&q=tuna", &domain.User{Id: "author-1", Email: "cat@example.com", Nickname: "nabi"})

	// The edit link carries the list position the visitor came from.
	assert.Contains(t, body, `/posts/3/edit?page=2&amp;q=tuna`)
	assert.Contains(t, body, `action="/posts/3/delete"`)
	// Only the author's own comment gets a delete form.
	assert.Contains(t, body, "/posts/3/comments/1/delete")
	assert.NotContains(t, body, "/posts/3/comments/2/delete")
}

func TestPostPageNonAuthorControls(t *testing.T) {
	body := renderDetail(t, "/posts/3", &domain.User{Id: "someone-else", Email: "other@example.com", Nickname: "mimi"})

	assert.NotContains(t, body, "/posts/3/edit")
	assert.NotContains(t, body, `action="/posts/3/delete"`)
	assert.Contains(t, body, "/posts/3/comments/2/delete")
	assert.NotContains(t, body, "/posts/3/comments/1/delete")
}

func TestPostPageAnonymous(t *testing.T) {
	body := renderDetail(t, "/posts/3", nil)

	assert.NotContains(t, body, "/posts/3/edit")
	assert.NotContains(t, body, "/delete")
	assert.Contains(t, body, "Sign in", "anonymous visitors get a login prompt instead of a comment form")
}

func TestPostPageConfirmViaStaticScript(t *testing.T) {
	body := renderDetail(t, "/posts/3", &domain.User{Id: "author-1", Email: "cat@example.com"})

	// Confirmation prompts hang off data attributes handled by a script
	// the CSP allows; inline handlers would be silently blocked.
	assert.Contains(t, body, `data-confirm="Delete this post?"`)
	assert.Contains(t, body, `data-confirm="Delete this comment?"`)
	assert.Contains(t, body, "/static/confirm.js")
	assert.NotContains(t, body, "onsubmit")
}
