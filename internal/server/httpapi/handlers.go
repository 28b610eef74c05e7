package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gatehouse-dev/gatehouse/internal/common"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerResponse never carries the password hash.
type registerResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// mapServiceError translates service sentinels into HTTP errors with fixed
// messages. Wrapped causes stay server-side.
func mapServiceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, common.ErrorEmailExists):
		return echo.NewHTTPError(http.StatusConflict, "email already registered")
	case errors.Is(err, common.ErrorInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrorStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "service unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := s.auth.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, registerResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, err := s.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
