// Package apiclient handles all communication with the backend API.
package apiclient

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
}

func New(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do is the single helper for making API requests. Cookies passed in are
// forwarded so the backend sees the browser's session.
func (c *APIClient) do(method, path string, body io.Reader, cookies ...*http.Cookie) (*http.Response, error) {
	return c.doWithContentType(method, path, "application/json", body, cookies...)
}

func (c *APIClient) doWithContentType(method, path, contentType string, body io.Reader, cookies ...*http.Cookie) (*http.Response, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// backendError turns a non-success backend response into an error carrying
// the backend's message where one was sent.
func backendError(resp *http.Response, fallback string) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	if len(bodyBytes) > 0 {
		return fmt.Errorf("%s", string(bodyBytes))
	}
	return fmt.Errorf("%s (status %d)", fallback, resp.StatusCode)
}
