package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
)

// CommentsByPost returns every comment of a post, oldest first.
func (s *Storage) CommentsByPost(postId domain.PostId) ([]domain.Comment, error) {
	rows, err := s.db.Query(`
	SELECT id, post_id, content, author_id, author_nickname, created_at
	FROM comments
	WHERE post_id = $1
	ORDER BY created_at ASC, id ASC`, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.PostId, &c.Content, &c.AuthorId, &c.AuthorNickname, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

func (s *Storage) CreateComment(data domain.CommentCreationData) (domain.CommentId, error) {
	var id domain.CommentId
	err := s.db.QueryRow(`
	INSERT INTO comments(post_id, content, author_id, author_nickname)
	VALUES($1, $2, $3, $4)
	RETURNING id`,
		data.PostId, data.Content, data.AuthorId, data.AuthorNickname).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return -1, internal_errors.NotFound("Post not found")
		}
		return -1, fmt.Errorf("failed to insert comment: %w", err)
	}
	return id, nil
}

func (s *Storage) CommentById(id domain.CommentId) (domain.Comment, error) {
	var c domain.Comment
	err := s.db.QueryRow(`
	SELECT id, post_id, content, author_id, author_nickname, created_at
	FROM comments WHERE id = $1`, id).
		Scan(&c.Id, &c.PostId, &c.Content, &c.AuthorId, &c.AuthorNickname, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Comment{}, internal_errors.NotFound("Comment not found")
		}
		return domain.Comment{}, fmt.Errorf("failed to query comment: %w", err)
	}
	return c, nil
}

func (s *Storage) DeleteComment(id domain.CommentId) error {
	result, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for comment deletion: %w", err)
	}
	if deleted == 0 {
		return internal_errors.NotFound("Comment not found")
	}
	return nil
}
