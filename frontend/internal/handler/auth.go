package handler

import (
	"io"
	"net/http"

	"github.com/cathome-dev/cathome/shared/logger"
	mw "github.com/cathome-dev/cathome/shared/middleware"
)

type authPageData struct {
	Email string
}

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", authPageData{Email: r.URL.Query().Get("email")})
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	resp, err := h.APIClient.SignIn(email, password)
	if err != nil {
		logger.Log.Error("signin request failed", "error", err)
		h.renderTemplateWithError(w, r, "login.html", authPageData{Email: email}, "Service is temporarily unavailable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		h.renderTemplateWithError(w, r, "login.html", authPageData{Email: email}, string(bodyBytes))
		return
	}

	if !forwardSessionCookie(w, resp) {
		h.renderTemplateWithError(w, r, "login.html", authPageData{Email: email}, "Sign in failed, please try again")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "register.html", authPageData{Email: r.URL.Query().Get("email")})
}

func (h *Handler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	nickname := r.FormValue("nickname")

	resp, err := h.APIClient.SignUp(email, password, nickname)
	if err != nil {
		logger.Log.Error("signup request failed", "error", err)
		h.renderTemplateWithError(w, r, "register.html", authPageData{Email: email}, "Service is temporarily unavailable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		h.renderTemplateWithError(w, r, "register.html", authPageData{Email: email}, string(bodyBytes))
		return
	}

	// Sign-up starts a session right away.
	if forwardSessionCookie(w, resp) {
		redirectWithSuccess(w, r, "/", "Welcome aboard")
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
