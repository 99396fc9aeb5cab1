package api

import "github.com/cathome-dev/cathome/shared/domain"

// Request DTOs. Create/update requests travel as the "json" field of a
// multipart form so an image file can ride along.

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type UpdatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Response DTOs

type PostListResponse struct {
	TotalCount int           `json:"total_count"`
	Posts      []domain.Post `json:"posts"`
}

type PostResponse struct {
	domain.Post
}

type ViewsResponse struct {
	Views int64 `json:"views"`
}
