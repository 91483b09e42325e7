package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poslite/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID(
					"ERR_REQUEST_TOO_LARGE",
					"Request body exceeds maximum allowed size",
					c.GetString("request_id"),
				))
			return
		}

		// Limit streaming requests that don't declare a Content-Length
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
