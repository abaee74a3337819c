package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ghaniswara/medi-quest/internal/entity"
	authUseCase "github.com/ghaniswara/medi-quest/internal/usecase/auth"
	"github.com/ghaniswara/medi-quest/pkg/jwt"
	"github.com/labstack/echo"
)

const UserProfileKey = "userProfile"

func JWTMiddleware(authCase authUseCase.IAuthUseCase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "missing token"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token format"})
			}

			userProfile, err := authCase.GetUserFromToken(c.Request().Context(), parts[1])
			if errors.Is(err, jwt.ErrInvalidToken) || errors.Is(err, authUseCase.ErrInvalidCredentials) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			}
			if err != nil {
				c.Logger().Errorf("resolve token user: %v", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to resolve user"})
			}

			c.Set(UserProfileKey, userProfile)

			return next(c)
		}
	}
}

// UserFromContext returns the user stored by JWTMiddleware.
func UserFromContext(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(UserProfileKey).(*entity.User)
	return user, ok && user != nil
}
