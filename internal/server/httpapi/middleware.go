package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// requestLogMiddleware tags every request with an id and logs method, path,
// status and duration. Bodies are never logged; they carry plaintext
// passwords.
func (s *Server) requestLogMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := uuid.NewString()
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		s.logger.Info(c.Request().Context(), "request handled",
			"request_id", requestID,
			"method", c.Request().Method,
			"path", c.Path(),
			"status", c.Response().Status,
			"duration", time.Since(start),
		)

		return err
	}
}
