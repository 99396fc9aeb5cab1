package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cathome-dev/cathome/shared/api"
)

// SignUp sends a registration request. The raw response is returned so the
// handler can forward the session cookie it carries.
func (c *APIClient) SignUp(email, password, nickname string) (*http.Response, error) {
	body, err := json.Marshal(api.SignUpRequest{Email: email, Password: password, Nickname: nickname})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal signup data: %w", err)
	}
	return c.do("POST", "/v1/auth/signup", bytes.NewBuffer(body))
}

// SignIn sends credentials. The raw response is returned because the
// handler needs to extract the session cookie from it.
func (c *APIClient) SignIn(email, password string) (*http.Response, error) {
	body, err := json.Marshal(api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal signin data: %w", err)
	}
	return c.do("POST", "/v1/auth/signin", bytes.NewBuffer(body))
}
