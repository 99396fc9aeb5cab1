package service

import (
	"fmt"
	"strings"

	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
)

type CommentService interface {
	ListByPost(postId domain.PostId) ([]domain.Comment, error)
	Create(author domain.User, postId domain.PostId, content string) (domain.CommentId, error)
	Delete(actor domain.User, id domain.CommentId) error
}

type Comment struct {
	storage CommentStorage
	cfg     *config.Public
}

type CommentStorage interface {
	CommentsByPost(postId domain.PostId) ([]domain.Comment, error)
	CreateComment(data domain.CommentCreationData) (domain.CommentId, error)
	CommentById(id domain.CommentId) (domain.Comment, error)
	DeleteComment(id domain.CommentId) error
}

func NewComment(storage CommentStorage, cfg *config.Public) *Comment {
	return &Comment{storage: storage, cfg: cfg}
}

func (c *Comment) ListByPost(postId domain.PostId) ([]domain.Comment, error) {
	return c.storage.CommentsByPost(postId)
}

func (c *Comment) Create(author domain.User, postId domain.PostId, content string) (domain.CommentId, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return -1, internal_errors.Validation("Comment cannot be empty")
	}
	if c.cfg.CommentMaxLen > 0 && len([]rune(content)) > c.cfg.CommentMaxLen {
		return -1, internal_errors.Validation(fmt.Sprintf("Comment is longer than %d characters", c.cfg.CommentMaxLen))
	}

	return c.storage.CreateComment(domain.CommentCreationData{
		PostId:         postId,
		Content:        content,
		AuthorId:       author.Id,
		AuthorNickname: author.DisplayName(),
	})
}

// Delete removes a comment; only its author may do so.
func (c *Comment) Delete(actor domain.User, id domain.CommentId) error {
	comment, err := c.storage.CommentById(id)
	if err != nil {
		return err
	}
	if comment.AuthorId != actor.Id {
		return internal_errors.Forbidden("Only the author can delete this comment")
	}
	return c.storage.DeleteComment(id)
}
