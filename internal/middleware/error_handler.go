package middleware

import (
	"net/http"

	"digital_market/pkg/errors"
	"digital_market/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler отдаёт последнюю ошибку из c.Errors; детали 5xx клиенту не показываются.
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем есть ли ошибки
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		statusCode := errors.HTTPStatusFromError(err.Err)

		message := err.Error()
		if statusCode >= http.StatusInternalServerError {
			log.Error("Request failed", "error", err.Err, "path", c.Request.URL.Path)
			message = errors.ErrInternalServer.Error()
		}

		c.JSON(statusCode, gin.H{
			"error": message,
		})
	}
}
