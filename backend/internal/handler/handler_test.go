package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/domain"
	mw "github.com/cathome-dev/cathome/shared/middleware"
)

// --- Service mocks ---

type MockAuthService struct {
	signUpFunc func(creds domain.Credentials) (string, domain.User, error)
	signInFunc func(creds domain.Credentials) (string, domain.User, error)
	userFunc   func(id domain.UserId) (domain.User, error)
}

func (m *MockAuthService) SignUp(creds domain.Credentials) (string, domain.User, error) {
	if m.signUpFunc != nil {
		return m.signUpFunc(creds)
	}
	return "token", domain.User{Id: "u1", Email: creds.Email}, nil
}

func (m *MockAuthService) SignIn(creds domain.Credentials) (string, domain.User, error) {
	if m.signInFunc != nil {
		return m.signInFunc(creds)
	}
	return "token", domain.User{Id: "u1", Email: creds.Email}, nil
}

func (m *MockAuthService) User(id domain.UserId) (domain.User, error) {
	if m.userFunc != nil {
		return m.userFunc(id)
	}
	return domain.User{Id: id}, nil
}

type MockPostService struct {
	listFunc   func(page int, keyword string) (int, []domain.Post, error)
	getFunc    func(id domain.PostId) (domain.Post, error)
	viewFunc   func(id domain.PostId) (domain.Post, error)
	createFunc func(ctx context.Context, author domain.User, title, content string, image *domain.PendingImage) (domain.PostId, error)
	updateFunc func(ctx context.Context, actor domain.User, id domain.PostId, title, content string, image *domain.PendingImage) error
	deleteFunc func(ctx context.Context, actor domain.User, id domain.PostId) error
}

func (m *MockPostService) List(page int, keyword string) (int, []domain.Post, error) {
	if m.listFunc != nil {
		return m.listFunc(page, keyword)
	}
	return 0, []domain.Post{}, nil
}

func (m *MockPostService) Get(id domain.PostId) (domain.Post, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return domain.Post{Id: id}, nil
}

func (m *MockPostService) View(id domain.PostId) (domain.Post, error) {
	if m.viewFunc != nil {
		return m.viewFunc(id)
	}
	return domain.Post{Id: id, Views: 1}, nil
}

func (m *MockPostService) Create(ctx context.Context, author domain.User, title, content string, image *domain.PendingImage) (domain.PostId, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, author, title, content, image)
	}
	return 1, nil
}

func (m *MockPostService) Update(ctx context.Context, actor domain.User, id domain.PostId, title, content string, image *domain.PendingImage) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, actor, id, title, content, image)
	}
	return nil
}

func (m *MockPostService) Delete(ctx context.Context, actor domain.User, id domain.PostId) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, actor, id)
	}
	return nil
}

type MockCommentService struct {
	listByPostFunc func(postId domain.PostId) ([]domain.Comment, error)
	createFunc     func(author domain.User, postId domain.PostId, content string) (domain.CommentId, error)
	deleteFunc     func(actor domain.User, id domain.CommentId) error
}

func (m *MockCommentService) ListByPost(postId domain.PostId) ([]domain.Comment, error) {
	if m.listByPostFunc != nil {
		return m.listByPostFunc(postId)
	}
	return []domain.Comment{}, nil
}

func (m *MockCommentService) Create(author domain.User, postId domain.PostId, content string) (domain.CommentId, error) {
	if m.createFunc != nil {
		return m.createFunc(author, postId, content)
	}
	return 1, nil
}

func (m *MockCommentService) Delete(actor domain.User, id domain.CommentId) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(actor, id)
	}
	return nil
}

// --- Test fixtures ---

func testConfig() *config.Config {
	return &config.Config{
		Public: config.Public{
			PostsPerPage:          6,
			JwtTTL:                time.Hour,
			MaxImageSizeBytes:     1 << 20,
			AllowedImageMimeTypes: []string{"image/jpeg", "image/png"},
		},
		Private: config.Private{JwtKey: "test-key"},
	}
}

func newTestHandler(auth *MockAuthService, posts *MockPostService, comments *MockCommentService) *Handler {
	if auth == nil {
		auth = &MockAuthService{}
	}
	if posts == nil {
		posts = &MockPostService{}
	}
	if comments == nil {
		comments = &MockCommentService{}
	}
	return New(auth, posts, comments, testConfig())
}

// testRouter mirrors the real route shapes without the middleware stack.
func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/v1/auth/signup", h.SignUp)
	r.Post("/v1/auth/signin", h.SignIn)
	r.Post("/v1/auth/signout", h.SignOut)
	r.Get("/v1/auth/me", h.Me)
	r.Get("/v1/posts", h.ListPosts)
	r.Get("/v1/posts/{post}", h.GetPost)
	r.Post("/v1/posts/{post}/views", h.RecordView)
	r.Post("/v1/posts", h.CreatePost)
	r.Put("/v1/posts/{post}", h.UpdatePost)
	r.Delete("/v1/posts/{post}", h.DeletePost)
	r.Get("/v1/posts/{post}/comments", h.ListComments)
	r.Post("/v1/posts/{post}/comments", h.CreateComment)
	r.Delete("/v1/posts/{post}/comments/{comment}", h.DeleteComment)
	return r
}

// asUser injects an authenticated identity the way the auth middleware
// would.
func asUser(req *http.Request, user domain.User) *http.Request {
	ctx := context.WithValue(req.Context(), mw.UserClaimsKey, &user)
	return req.WithContext(ctx)
}

// multipartBody builds the create/update payload: a "json" field plus an
// optional image file.
func multipartBody(t *testing.T, jsonPayload string, imageName, imageType string, imageData []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("json", jsonPayload))
	if imageName != "" {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="image"; filename="` + imageName + `"`}
		header["Content-Type"] = []string{imageType}
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(imageData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doRequest(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rr, req)
	return rr
}
