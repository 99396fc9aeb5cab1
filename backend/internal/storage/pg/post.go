package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
)

// ListPosts returns the exact match count plus one page of posts, newest
// first. A non-empty keyword filters titles by case-insensitive substring.
func (s *Storage) ListPosts(page, perPage int, keyword string) (int, []domain.Post, error) {
	var total int
	var rows *sql.Rows
	var err error

	offset := (page - 1) * perPage

	if keyword == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&total)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to count posts: %w", err)
		}
		rows, err = s.db.Query(`
		SELECT id, title, content, author_id, author_nickname, image_url, created_at, views
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, perPage, offset)
	} else {
		pattern := "%" + keyword + "%"
		err = s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE title ILIKE $1`, pattern).Scan(&total)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to count posts: %w", err)
		}
		rows, err = s.db.Query(`
		SELECT id, title, content, author_id, author_nickname, image_url, created_at, views
		FROM posts
		WHERE title ILIKE $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, pattern, perPage, offset)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.Id, &post.Title, &post.Content, &post.AuthorId, &post.AuthorNickname, &post.ImageURL, &post.CreatedAt, &post.Views); err != nil {
			return 0, nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return total, posts, nil
}

func (s *Storage) PostById(id domain.PostId) (domain.Post, error) {
	var post domain.Post
	err := s.db.QueryRow(`
	SELECT id, title, content, author_id, author_nickname, image_url, created_at, views
	FROM posts WHERE id = $1`, id).
		Scan(&post.Id, &post.Title, &post.Content, &post.AuthorId, &post.AuthorNickname, &post.ImageURL, &post.CreatedAt, &post.Views)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

func (s *Storage) CreatePost(data domain.PostCreationData) (domain.PostId, error) {
	var id domain.PostId
	err := s.db.QueryRow(`
	INSERT INTO posts(title, content, author_id, author_nickname, image_url)
	VALUES($1, $2, $3, $4, $5)
	RETURNING id`,
		data.Title, data.Content, data.AuthorId, data.AuthorNickname, data.ImageURL).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

// UpdatePost applies a partial update: a nil ImageURL keeps the stored one.
func (s *Storage) UpdatePost(id domain.PostId, data domain.PostUpdateData) error {
	result, err := s.db.Exec(`
	UPDATE posts SET
		title = $1,
		content = $2,
		image_url = COALESCE($3, image_url)
	WHERE id = $4`,
		data.Title, data.Content, data.ImageURL, id)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post update: %w", err)
	}
	if updated == 0 {
		return internal_errors.NotFound("Post not found")
	}
	return nil
}

// IncrementViews bumps the view counter atomically and returns the new
// value. Concurrent viewers each add exactly one.
func (s *Storage) IncrementViews(id domain.PostId) (int64, error) {
	var views int64
	err := s.db.QueryRow(`
	UPDATE posts SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.NotFound("Post not found")
		}
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}
	return views, nil
}

// DeletePost removes the row; comments go with it via ON DELETE CASCADE.
func (s *Storage) DeletePost(id domain.PostId) error {
	result, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post deletion: %w", err)
	}
	if deleted == 0 {
		return internal_errors.NotFound("Post not found")
	}
	return nil
}
