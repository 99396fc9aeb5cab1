package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cathome-dev/cathome/frontend/internal/handler"
	"github.com/cathome-dev/cathome/frontend/internal/setup"
	mw "github.com/cathome-dev/cathome/shared/middleware"
	"github.com/cathome-dev/cathome/shared/middleware/metrics"
)

func SetupRouter(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	frontendCSP := "default-src 'self'; img-src 'self' https:; style-src 'self'; script-src 'self'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Public.SecureCookies, frontendCSP))
	r.Use(metrics.Middleware)

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/favicon.ico", handler.FaviconHandler)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))

	r.Get("/login", h.LoginGetHandler)
	r.Post("/login", h.LoginPostHandler)
	r.Get("/register", h.RegisterGetHandler)
	r.Post("/register", h.RegisterPostHandler)
	r.Get("/logout", handler.LogoutHandler)
	r.Post("/logout", handler.LogoutHandler)

	// Reading is public; the identity only decorates the page when
	// present.
	r.Group(func(public chi.Router) {
		public.Use(authMw.OptionalAuth())
		public.Get("/", h.BoardGetHandler)
		public.Post("/search", h.SearchPostHandler)
		public.Get("/posts/{post}", h.PostGetHandler)
	})

	// Writing needs a session; failures bounce to the login screen.
	r.Group(func(loggedIn chi.Router) {
		loggedIn.Use(authMw.NeedAuth())
		loggedIn.Get("/write", h.WriteGetHandler)
		loggedIn.Post("/write", h.WritePostHandler)
		loggedIn.Get("/posts/{post}/edit", h.EditGetHandler)
		loggedIn.Post("/posts/{post}/edit", h.EditPostHandler)
		loggedIn.Post("/posts/{post}/delete", h.PostDeleteHandler)
		loggedIn.Post("/posts/{post}/comments", h.CommentPostHandler)
		loggedIn.Post("/posts/{post}/comments/{comment}/delete", h.CommentDeleteHandler)
	})

	return r
}
