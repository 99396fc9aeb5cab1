package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cathome-dev/cathome/shared/api"
	"github.com/cathome-dev/cathome/shared/domain"
	"github.com/cathome-dev/cathome/shared/utils"
)

func (c *APIClient) ListComments(postId domain.PostId) ([]domain.Comment, error) {
	resp, err := c.do("GET", fmt.Sprintf("/v1/posts/%d/comments", postId), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, backendError(resp, "failed to load comments")
	}

	var list api.CommentListResponse
	if err := utils.Decode(resp.Body, &list); err != nil {
		return nil, err
	}
	return list.Comments, nil
}

func (c *APIClient) CreateComment(postId domain.PostId, content string, cookies ...*http.Cookie) error {
	body, err := json.Marshal(api.CreateCommentRequest{Content: content})
	if err != nil {
		return fmt.Errorf("failed to marshal comment data: %w", err)
	}

	resp, err := c.do("POST", fmt.Sprintf("/v1/posts/%d/comments", postId), bytes.NewBuffer(body), cookies...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return backendError(resp, "failed to create comment")
	}
	return nil
}

func (c *APIClient) DeleteComment(postId domain.PostId, commentId domain.CommentId, cookies ...*http.Cookie) error {
	resp, err := c.do("DELETE", fmt.Sprintf("/v1/posts/%d/comments/%d", postId, commentId), nil, cookies...)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return backendError(resp, "failed to delete comment")
	}
	return nil
}
