package routesV1Auth

import (
	"errors"
	"net/http"

	"github.com/ghaniswara/medi-quest/internal/entity"
	"github.com/ghaniswara/medi-quest/internal/middleware"
	authUseCase "github.com/ghaniswara/medi-quest/internal/usecase/auth"
	"github.com/ghaniswara/medi-quest/pkg/http_util"
	"github.com/labstack/echo"
)

func SignUpHandler(c echo.Context, authCase authUseCase.IAuthUseCase) error {
	reqBody, err := http_util.Decode[entity.CreateUserRequest](c)

	if err != nil {
		return http_util.BadRequest(c)
	}

	if ok, err := http_util.ValidateRequest(c, &reqBody); !ok {
		return err
	}

	_, err = authCase.SignupUser(c.Request().Context(), reqBody)

	if errors.Is(err, authUseCase.ErrUserExists) {
		return http_util.Encode(c, http.StatusBadRequest, http_util.StatusResponse{
			Success: false,
			Message: "User already exists",
		})
	}

	if err != nil {
		c.Logger().Errorf("sign up: %v", err)
		return http_util.Encode(c, http.StatusInternalServerError, map[string]string{"error": "failed to register"})
	}

	return http_util.Encode(c, http.StatusCreated, http_util.StatusResponse{
		Success: true,
		Message: "User registered successfully",
	})
}

func SignInHandler(c echo.Context, authCase authUseCase.IAuthUseCase) error {
	reqBody, err := http_util.Decode[entity.SignInRequest](c)

	if err != nil {
		return http_util.BadRequest(c)
	}

	if ok, err := http_util.ValidateRequest(c, &reqBody); !ok {
		return err
	}

	jwtToken, err := authCase.SignIn(c.Request().Context(), reqBody.Email, reqBody.Password)

	if errors.Is(err, authUseCase.ErrInvalidCredentials) {
		return http_util.Encode(c, http.StatusUnauthorized, http_util.MessageResponse{Message: "Invalid email or password"})
	}

	if err != nil {
		c.Logger().Errorf("sign in: %v", err)
		return http_util.Encode(c, http.StatusInternalServerError, map[string]string{"error": "failed to sign in"})
	}

	return http_util.Encode(c, http.StatusOK, entity.SignInResponse{
		Success: true,
		Message: "Login successful",
		Token:   jwtToken,
	})
}

// ProfileHandler runs behind middleware.JWTMiddleware.
func ProfileHandler(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
	}

	return http_util.Encode(c, http.StatusOK, entity.ProfileResponse{
		Name:  user.Name,
		Email: user.Email,
	})
}
