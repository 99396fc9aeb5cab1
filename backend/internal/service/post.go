package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
	"github.com/cathome-dev/cathome/shared/logger"
)

type PostService interface {
	List(page int, keyword string) (int, []domain.Post, error)
	Get(id domain.PostId) (domain.Post, error)
	View(id domain.PostId) (domain.Post, error)
	Create(ctx context.Context, author domain.User, title, content string, image *domain.PendingImage) (domain.PostId, error)
	Update(ctx context.Context, actor domain.User, id domain.PostId, title, content string, image *domain.PendingImage) error
	Delete(ctx context.Context, actor domain.User, id domain.PostId) error
}

type Post struct {
	storage PostStorage
	images  ImageStorage
	cfg     *config.Public

	// stubbed in tests
	now func() time.Time
}

type PostStorage interface {
	ListPosts(page, perPage int, keyword string) (int, []domain.Post, error)
	PostById(id domain.PostId) (domain.Post, error)
	CreatePost(data domain.PostCreationData) (domain.PostId, error)
	UpdatePost(id domain.PostId, data domain.PostUpdateData) error
	DeletePost(id domain.PostId) error
	IncrementViews(id domain.PostId) (int64, error)
}

type ImageStorage interface {
	Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	DeleteByURL(ctx context.Context, publicURL string) error
}

func NewPost(storage PostStorage, images ImageStorage, cfg *config.Public) *Post {
	return &Post{storage: storage, images: images, cfg: cfg, now: time.Now}
}

// List returns one board page, newest posts first, plus the exact match
// count so the caller can render a pager. Pages are 1-based; out-of-range
// values are clamped to the first page.
func (p *Post) List(page int, keyword string) (int, []domain.Post, error) {
	if page < 1 {
		page = 1
	}
	return p.storage.ListPosts(page, p.cfg.PostsPerPage, keyword)
}

func (p *Post) Get(id domain.PostId) (domain.Post, error) {
	return p.storage.PostById(id)
}

// View returns the post with its view counter already bumped for this
// visit.
func (p *Post) View(id domain.PostId) (domain.Post, error) {
	post, err := p.storage.PostById(id)
	if err != nil {
		return domain.Post{}, err
	}
	views, err := p.storage.IncrementViews(id)
	if err != nil {
		return domain.Post{}, err
	}
	post.Views = views
	return post, nil
}

// Create validates the submission, uploads the image first and then writes
// the row. If the row write fails the uploaded object is deleted so no
// orphan is left behind.
func (p *Post) Create(ctx context.Context, author domain.User, title, content string, image *domain.PendingImage) (domain.PostId, error) {
	if err := p.validatePostFields(title, content); err != nil {
		return -1, err
	}

	var imageURL *string
	if image != nil {
		url, err := p.uploadImage(ctx, author.Id, image)
		if err != nil {
			return -1, err
		}
		imageURL = &url
	}

	id, err := p.storage.CreatePost(domain.PostCreationData{
		Title:          title,
		Content:        content,
		AuthorId:       author.Id,
		AuthorNickname: author.DisplayName(),
		ImageURL:       imageURL,
	})
	if err != nil {
		if imageURL != nil {
			if delErr := p.images.DeleteByURL(ctx, *imageURL); delErr != nil {
				logger.Log.Error("failed to clean up image after post insert failure", "image_url", *imageURL, "error", delErr)
			}
		}
		return -1, err
	}

	logger.Log.Info("post created", "post_id", id, "author_id", author.Id)
	return id, nil
}

// Update edits title and content, and optionally replaces the image.
// Authors can only edit their own posts.
func (p *Post) Update(ctx context.Context, actor domain.User, id domain.PostId, title, content string, image *domain.PendingImage) error {
	if err := p.validatePostFields(title, content); err != nil {
		return err
	}

	post, err := p.storage.PostById(id)
	if err != nil {
		return err
	}
	if post.AuthorId != actor.Id {
		return internal_errors.Forbidden("Only the author can edit this post")
	}

	var imageURL *string
	if image != nil {
		url, err := p.uploadImage(ctx, actor.Id, image)
		if err != nil {
			return err
		}
		imageURL = &url
	}

	if err := p.storage.UpdatePost(id, domain.PostUpdateData{Title: title, Content: content, ImageURL: imageURL}); err != nil {
		if imageURL != nil {
			if delErr := p.images.DeleteByURL(ctx, *imageURL); delErr != nil {
				logger.Log.Error("failed to clean up image after post update failure", "image_url", *imageURL, "error", delErr)
			}
		}
		return err
	}

	// The replaced image is deleted only after the row points at the new
	// one, so a failed update never leaves the post with a dead URL.
	if imageURL != nil && post.ImageURL != nil {
		if err := p.images.DeleteByURL(ctx, *post.ImageURL); err != nil {
			logger.Log.Error("failed to delete replaced image", "image_url", *post.ImageURL, "error", err)
		}
	}

	return nil
}

// Delete removes the post and its comments. The image delete is best
// effort: an unreachable object store must not keep the board entry alive.
func (p *Post) Delete(ctx context.Context, actor domain.User, id domain.PostId) error {
	post, err := p.storage.PostById(id)
	if err != nil {
		return err
	}
	if post.AuthorId != actor.Id {
		return internal_errors.Forbidden("Only the author can delete this post")
	}

	if post.ImageURL != nil {
		if err := p.images.DeleteByURL(ctx, *post.ImageURL); err != nil {
			logger.Log.Error("failed to delete post image", "post_id", id, "image_url", *post.ImageURL, "error", err)
		}
	}

	return p.storage.DeletePost(id)
}

func (p *Post) validatePostFields(title, content string) error {
	if title == "" {
		return internal_errors.Validation("Title is required")
	}
	if content == "" {
		return internal_errors.Validation("Content is required")
	}
	if p.cfg.TitleMaxLen > 0 && len([]rune(title)) > p.cfg.TitleMaxLen {
		return internal_errors.Validation(fmt.Sprintf("Title is longer than %d characters", p.cfg.TitleMaxLen))
	}
	if p.cfg.ContentMaxLen > 0 && len([]rune(content)) > p.cfg.ContentMaxLen {
		return internal_errors.Validation(fmt.Sprintf("Content is longer than %d characters", p.cfg.ContentMaxLen))
	}
	return nil
}

func (p *Post) uploadImage(ctx context.Context, ownerId domain.UserId, image *domain.PendingImage) (string, error) {
	// Keys are namespaced per owner; the millisecond stamp keeps repeated
	// uploads of the same filename from colliding.
	objectKey := fmt.Sprintf("%s/%d_%s", ownerId, p.now().UnixMilli(), image.Filename)
	return p.images.Upload(ctx, objectKey, image.Data, image.SizeBytes, image.MimeType)
}
