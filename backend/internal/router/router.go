package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cathome-dev/cathome/backend/internal/handler"
	"github.com/cathome-dev/cathome/backend/internal/setup"
	mw "github.com/cathome-dev/cathome/shared/middleware"
	"github.com/cathome-dev/cathome/shared/middleware/metrics"
	rl "github.com/cathome-dev/cathome/shared/middleware/ratelimiter"
)

// New configures the API router. Rate limiters set with .Use apply to all
// endpoints of that subrouter combined.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// JSON API only, no scripts or styles needed
	backendCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, backendCSP))
	r.Use(metrics.Middleware)

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/healthz", handler.Healthz(deps.Storage))
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(auth chi.Router) {
			// Brute-force protection: per-IP limits on the
			// credential endpoints.
			auth.Group(func(g chi.Router) {
				g.Use(mw.RateLimit(rl.New(1.0/10, 3, 1*time.Hour), mw.GetIP))
				g.Post("/signup", h.SignUp)
			})
			auth.Group(func(g chi.Router) {
				g.Use(mw.RateLimit(rl.New(1, 5, 1*time.Hour), mw.GetIP))
				g.Post("/signin", h.SignIn)
			})
			auth.Post("/signout", h.SignOut)

			auth.Group(func(g chi.Router) {
				g.Use(authMw.OptionalAuth())
				g.Get("/me", h.Me)
			})
		})

		// Reading the board never requires a session.
		v1.Group(func(public chi.Router) {
			public.Get("/posts", h.ListPosts)
			public.Get("/posts/{post}", h.GetPost)
			public.Get("/posts/{post}/comments", h.ListComments)
			public.Post("/posts/{post}/views", h.RecordView)
		})

		v1.Group(func(loggedIn chi.Router) {
			loggedIn.Use(authMw.NeedAuth())

			loggedIn.Post("/posts", h.CreatePost)
			loggedIn.Put("/posts/{post}", h.UpdatePost)
			loggedIn.Delete("/posts/{post}", h.DeletePost)

			loggedIn.Post("/posts/{post}/comments", h.CreateComment)
			loggedIn.Delete("/posts/{post}/comments/{comment}", h.DeleteComment)
		})
	})

	// preflight requests must not 404
	r.MethodFunc("OPTIONS", "/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
