package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
)

// SaveUser inserts a new user record. The id is generated by the caller
// (opaque uuid). Returns a 409 fault when the email is already registered.
func (s *Storage) SaveUser(user domain.User) error {
	_, err := s.db.Exec(`
	INSERT INTO users(id, email, nickname, password_hash)
	VALUES($1, $2, $3, $4)`,
		user.Id, user.Email, user.Nickname, user.PassHash)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("Email already registered")
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Storage) UserByEmail(email string) (domain.User, error) {
	return s.scanUser(s.db.QueryRow(`
	SELECT id, email, nickname, password_hash, created_at
	FROM users WHERE email = $1`, email))
}

func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	return s.scanUser(s.db.QueryRow(`
	SELECT id, email, nickname, password_hash, created_at
	FROM users WHERE id = $1`, id))
}

func (s *Storage) scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.Id, &user.Email, &user.Nickname, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
