package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghaniswara/medi-quest/internal/entity"
	authUseCase "github.com/ghaniswara/medi-quest/internal/usecase/auth"
	"github.com/ghaniswara/medi-quest/pkg/jwt"
	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	users map[string]*entity.User
}

func (s *stubAuth) SignupUser(ctx context.Context, request entity.CreateUserRequest) (*entity.User, error) {
	return nil, nil
}

func (s *stubAuth) SignIn(ctx context.Context, email, password string) (string, error) {
	return "", nil
}

func (s *stubAuth) GetUserFromToken(ctx context.Context, token string) (*entity.User, error) {
	switch token {
	case "stale":
		return nil, authUseCase.ErrInvalidCredentials
	case "unreachable":
		return nil, errors.New("db down")
	}
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, jwt.ErrInvalidToken
}

func serve(t *testing.T, header string) (*httptest.ResponseRecorder, *entity.User) {
	t.Helper()

	auth := &stubAuth{users: map[string]*entity.User{
		"good": {ID: 1, Name: "Ana", Email: "ana@clinic.org"},
	}}

	var seen *entity.User
	handler := JWTMiddleware(auth)(func(c echo.Context) error {
		u, ok := UserFromContext(c)
		require.True(t, ok)
		seen = u
		return c.NoContent(http.StatusNoContent)
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec, seen
}

func TestJWTMiddleware(t *testing.T) {
	rec, user := serve(t, "Bearer good")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, user)
	assert.Equal(t, "ana@clinic.org", user.Email)

	cases := map[string]string{
		"":             "missing token",
		"Token good":   "invalid token format",
		"Bearer":       "invalid token format",
		"Bearer wrong": "invalid token",
		"Bearer stale": "invalid token",
	}
	for header, message := range cases {
		rec, user := serve(t, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		assert.JSONEq(t, `{"message":"`+message+`"}`, rec.Body.String(), header)
		assert.Nil(t, user, header)
	}
}

func TestJWTMiddlewareStoreFailure(t *testing.T) {
	rec, user := serve(t, "Bearer unreachable")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to resolve user"}`, rec.Body.String())
	assert.Nil(t, user)
}
