package service

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cathome-dev/cathome/shared/config"
	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
	"github.com/cathome-dev/cathome/shared/logger"
)

type AuthService interface {
	SignUp(creds domain.Credentials) (string, domain.User, error)
	SignIn(creds domain.Credentials) (string, domain.User, error)
	User(id domain.UserId) (domain.User, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
	cfg     *config.Public
}

type AuthStorage interface {
	SaveUser(user domain.User) error
	UserByEmail(email string) (domain.User, error)
	UserById(id domain.UserId) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt, cfg *config.Public) *Auth {
	return &Auth{storage: storage, jwt: jwt, cfg: cfg}
}

// SignUp registers the account and signs the user in, returning the access
// token alongside the stored user.
func (a *Auth) SignUp(creds domain.Credentials) (string, domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return "", domain.User{}, err
	}

	user := domain.User{
		Id:       uuid.NewString(),
		Email:    email,
		Nickname: strings.TrimSpace(creds.Nickname),
		PassHash: string(passHash),
	}
	if err := a.storage.SaveUser(user); err != nil {
		return "", domain.User{}, err
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return "", domain.User{}, err
	}

	logger.Log.Info("user signed up", "user_id", user.Id)
	return token, user, nil
}

// SignIn checks credentials and returns a fresh access token. Wrong email
// and wrong password are deliberately indistinguishable to the caller.
func (a *Auth) SignIn(creds domain.Credentials) (string, domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	invalidCreds := &internal_errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", domain.User{}, invalidCreds
		}
		return "", domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", domain.User{}, invalidCreds
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return "", domain.User{}, err
	}

	return token, user, nil
}

// User returns the stored profile behind a session's user id.
func (a *Auth) User(id domain.UserId) (domain.User, error) {
	return a.storage.UserById(id)
}
