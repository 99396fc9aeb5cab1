package setup

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/cathome-dev/cathome/frontend/internal/apiclient"
	"github.com/cathome-dev/cathome/frontend/internal/handler"
	frontend_mw "github.com/cathome-dev/cathome/frontend/internal/middleware"
	"github.com/cathome-dev/cathome/frontend/internal/textproc"
	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/jwt"
	mw "github.com/cathome-dev/cathome/shared/middleware"
)

const (
	baseTemplate = "base.html"
	tmplPath     = "frontend/templates"
)

type Dependencies struct {
	Handler        *handler.Handler
	Public         config.Public
	AuthMiddleware *frontend_mw.Auth
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	templates := mustLoadTemplates(tmplPath)
	textProcessor := textproc.New()
	apiClient := apiclient.New(cfg.Public.APIBaseURL)

	h := handler.New(templates, cfg.Public, textProcessor, apiClient)

	jwtSvc := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	sharedAuth := mw.NewAuth(jwtSvc, cfg.Public.SecureCookies)

	return &Dependencies{
		Handler:        h,
		Public:         cfg.Public,
		AuthMiddleware: frontend_mw.NewAuth(sharedAuth, cfg.Public.SecureCookies),
	}, nil
}

func sub(a, b int) int { return a - b }
func add(a, b int) int { return a + b }

func bytesToMB(bytes int64) int64 {
	return bytes / (1024 * 1024)
}

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("invalid dict call: number of arguments must be even")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = values[i+1]
	}
	return m, nil
}

func mustLoadTemplates(tmplPath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) == ".html" && f.Name() != baseTemplate && f.Name() != "partials.html" {
			templates[f.Name()] = template.Must(template.New(baseTemplate).Funcs(
				template.FuncMap{
					"sub":       sub,
					"add":       add,
					"dict":      dict,
					"bytesToMB": bytesToMB,
				},
			).ParseFiles(
				path.Join(tmplPath, baseTemplate),
				path.Join(tmplPath, f.Name()),
				path.Join(tmplPath, "partials.html"),
			))
		}
	}
	return templates
}
