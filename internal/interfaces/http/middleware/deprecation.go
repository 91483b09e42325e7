package middleware

import "github.com/gin-gonic/gin"

// Deprecated marks every response from a route group as deprecated, pointing
// clients at the successor path prefix. Used for the unversioned legacy
// surface that predates /api/v1.
func Deprecated(successor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Deprecation", "true")
		if successor != "" {
			c.Writer.Header().Set("Link", "<"+successor+c.Request.URL.Path+">; rel=\"successor-version\"")
		}
		c.Next()
	}
}
