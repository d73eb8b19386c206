package middleware

import (
	"errors"
	"go-cookmate-backend/internal/delivery/http/response"
	"go-cookmate-backend/pkg/apperror"
	"go-cookmate-backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors appended to the gin context. AppErrors map to
// their status code; anything else is logged server-side and surfaces as a
// generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code == http.StatusInternalServerError {
					logger.Log.Error("internal error", "error", appErr.Err, "path", c.FullPath())
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("unexpected error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
