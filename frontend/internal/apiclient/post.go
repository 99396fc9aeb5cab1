package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cathome-dev/cathome/shared/api"
	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
	"github.com/cathome-dev/cathome/shared/utils"
)

// PostUpload carries an image file picked in the browser form on to the
// backend.
type PostUpload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

func (c *APIClient) ListPosts(page int, keyword string) (*api.PostListResponse, error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	if keyword != "" {
		query.Set("q", keyword)
	}
	path := "/v1/posts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	resp, err := c.do("GET", path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backendError(resp, "failed to load posts")
	}

	var list api.PostListResponse
	if err := utils.Decode(resp.Body, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *APIClient) GetPost(id domain.PostId) (*domain.Post, error) {
	resp, err := c.do("GET", fmt.Sprintf("/v1/posts/%d", id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, internal_errors.NotFound("Post not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backendError(resp, "failed to load post")
	}

	var post domain.Post
	if err := utils.Decode(resp.Body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// RecordView registers one view and returns the updated counter.
func (c *APIClient) RecordView(id domain.PostId) (int64, error) {
	resp, err := c.do("POST", fmt.Sprintf("/v1/posts/%d/views", id), nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, backendError(resp, "failed to record view")
	}

	var views api.ViewsResponse
	if err := utils.Decode(resp.Body, &views); err != nil {
		return 0, err
	}
	return views.Views, nil
}

// CreatePost submits a new post as a multipart form: the DTO in a "json"
// field plus the optional image.
func (c *APIClient) CreatePost(title, content string, upload *PostUpload, cookies ...*http.Cookie) (*domain.Post, error) {
	body, contentType, err := postForm(api.CreatePostRequest{Title: title, Content: content}, upload)
	if err != nil {
		return nil, err
	}

	resp, err := c.doWithContentType("POST", "/v1/posts", contentType, body, cookies...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, backendError(resp, "failed to create post")
	}

	var post domain.Post
	if err := utils.Decode(resp.Body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *APIClient) UpdatePost(id domain.PostId, title, content string, upload *PostUpload, cookies ...*http.Cookie) error {
	body, contentType, err := postForm(api.UpdatePostRequest{Title: title, Content: content}, upload)
	if err != nil {
		return err
	}

	resp, err := c.doWithContentType("PUT", fmt.Sprintf("/v1/posts/%d", id), contentType, body, cookies...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return backendError(resp, "failed to update post")
	}
	return nil
}

func (c *APIClient) DeletePost(id domain.PostId, cookies ...*http.Cookie) error {
	resp, err := c.do("DELETE", fmt.Sprintf("/v1/posts/%d", id), nil, cookies...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return backendError(resp, "failed to delete post")
	}
	return nil
}

func postForm(dto any, upload *PostUpload) (io.Reader, string, error) {
	jsonBody, err := json.Marshal(dto)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal post data: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("json", string(jsonBody)); err != nil {
		return nil, "", fmt.Errorf("failed to write form field: %w", err)
	}
	if upload != nil {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="image"; filename="%s"`, upload.Filename)}
		header["Content-Type"] = []string{upload.ContentType}
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, upload.Data); err != nil {
			return nil, "", fmt.Errorf("failed to copy image data: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
