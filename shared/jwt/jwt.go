// Package jwt issues and verifies the signed session tokens both binaries
// share. The claims carry the identity shown in the UI so pages can greet
// the user without a storage round trip.
package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
	"github.com/cathome-dev/cathome/shared/logger"
)

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*jwt.Token, error)
}

type Jwt struct {
	secretKey []byte
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey: []byte(secretKey), ttl: ttl}
}

// NewToken signs an HS256 session token for the user, expiring after the
// configured ttl.
func (j *Jwt) NewToken(user domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":      user.Id,
		"email":    user.Email,
		"nickname": user.Nickname,
		"exp":      time.Now().Add(j.ttl).Unix(),
	})

	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		logger.Log.Error("signing token", "error", err)
		return "", errors.New("can't create token")
	}
	return signed, nil
}

// DecodeToken parses and verifies a token string. Any failure, expiry
// included, comes back as a 401 fault.
func (j *Jwt) DecodeToken(jwtStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(jwtStr, j.verificationKey)
	switch {
	case err != nil:
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid token signature", StatusCode: http.StatusUnauthorized}
	case !token.Valid:
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}
	return token, nil
}

// verificationKey hands the parser our secret, refusing tokens that claim
// any signing scheme other than HMAC.
func (j *Jwt) verificationKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
	}
	return j.secretKey, nil
}
