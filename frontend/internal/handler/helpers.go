package handler

import (
	"encoding/base64"
	"net/http"

	mw "github.com/cathome-dev/cathome/shared/middleware"
)

const (
	flashCookieError   = "flash_error"
	flashCookieSuccess = "flash_success"
)

// setFlash stores a one-shot message that survives a redirect. Base64 keeps
// arbitrary characters cookie-safe.
func setFlash(w http.ResponseWriter, name, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears a flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, targetURL, errMsg string) {
	setFlash(w, flashCookieError, errMsg)
	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}

func redirectWithSuccess(w http.ResponseWriter, r *http.Request, targetURL, msg string) {
	setFlash(w, flashCookieSuccess, msg)
	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}

// sessionCookie pulls the browser's access token so API calls act as the
// visitor.
func sessionCookie(r *http.Request) []*http.Cookie {
	cookie, err := r.Cookie(mw.AccessTokenCookie)
	if err != nil {
		return nil
	}
	return []*http.Cookie{cookie}
}

// forwardSessionCookie copies the backend's Set-Cookie for the access token
// on to the browser.
func forwardSessionCookie(w http.ResponseWriter, resp *http.Response) bool {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == mw.AccessTokenCookie {
			http.SetCookie(w, cookie)
			return true
		}
	}
	return false
}
