package jwt

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cathome-dev/cathome/shared/domain"
	internal_errors "github.com/cathome-dev/cathome/shared/errors"
)

var testUser = domain.User{Id: "c0ffee00-0000-0000-0000-000000000001", Email: "cat@example.com", Nickname: "nabi"}

func TestTokenRoundTrip(t *testing.T) {
	svc := New("secret", time.Hour)

	tokenString, err := svc.NewToken(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := svc.DecodeToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, testUser.Id, claims["uid"])
	assert.Equal(t, testUser.Email, claims["email"])
	assert.Equal(t, testUser.Nickname, claims["nickname"])
}

func TestDecodeExpiredToken(t *testing.T) {
	svc := New("secret", -time.Minute)

	tokenString, err := svc.NewToken(testUser)
	require.NoError(t, err)

	_, err = svc.DecodeToken(tokenString)
	require.Error(t, err)
	assertUnauthorized(t, err)
}

func TestDecodeWrongKey(t *testing.T) {
	tokenString, err := New("secret", time.Hour).NewToken(testUser)
	require.NoError(t, err)

	_, err = New("other", time.Hour).DecodeToken(tokenString)
	require.Error(t, err)
	assertUnauthorized(t, err)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := New("secret", time.Hour).DecodeToken("not.a.token")
	require.Error(t, err)
	assertUnauthorized(t, err)
}

func TestDecodeRejectsUnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"uid": testUser.Id})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New("secret", time.Hour).DecodeToken(tokenString)
	require.Error(t, err)
	assertUnauthorized(t, err)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "expected an ErrorWithStatusCode, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, e.StatusCode)
}
