package setup

import (
	"github.com/cathome-dev/cathome/backend/internal/handler"
	"github.com/cathome-dev/cathome/backend/internal/service"
	"github.com/cathome-dev/cathome/backend/internal/storage/cos"
	"github.com/cathome-dev/cathome/backend/internal/storage/pg"
	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/jwt"
	mw "github.com/cathome-dev/cathome/shared/middleware"
)

// Dependencies holds everything the router needs, wired once at startup.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(&cfg.Private.Pg)
	if err != nil {
		return nil, err
	}

	images, err := cos.New(&cfg.Private.Cos)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService, &cfg.Public)
	posts := service.NewPost(storage, images, &cfg.Public)
	comments := service.NewComment(storage, &cfg.Public)

	h := handler.New(auth, posts, comments, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService, cfg.Public.SecureCookies),
	}, nil
}
