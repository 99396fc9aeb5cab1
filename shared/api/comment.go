package api

import "github.com/cathome-dev/cathome/shared/domain"

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type CommentListResponse struct {
	Comments []domain.Comment `json:"comments"`
}
