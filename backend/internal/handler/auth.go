package handler

import (
	"net/http"

	"github.com/cathome-dev/cathome/shared/api"
	"github.com/cathome-dev/cathome/shared/domain"
	mw "github.com/cathome-dev/cathome/shared/middleware"
	"github.com/cathome-dev/cathome/shared/utils"
)

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body api.SignUpRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, _, err := h.auth.SignUp(domain.Credentials{Email: body.Email, Password: body.Password, Nickname: body.Nickname})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAccessTokenCookie(w, token)
	writeJSONStatus(w, http.StatusCreated, api.SignUpResponse{Message: "Welcome aboard"})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body api.SignInRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, _, err := h.auth.SignIn(domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.setAccessTokenCookie(w, token)
	writeJSON(w, api.SignInResponse{Message: "You are signed in", AccessToken: token})
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, api.SignOutResponse{Message: "You are signed out"})
}

// Me reports the current identity; an anonymous caller gets a null user,
// not an error.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		writeJSON(w, api.MeResponse{})
		return
	}
	writeJSON(w, api.MeResponse{User: &api.UserResponse{Id: user.Id, Email: user.Email, Nickname: user.Nickname}})
}

func (h *Handler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    token,
		MaxAge:   int(h.cfg.JwtTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
