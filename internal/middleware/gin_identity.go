package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireIdentity adapts the net/http IdentityMiddleware to Gin.
func GinRequireIdentity(m *IdentityMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		handler := m.RequireIdentity(next)
		handler.ServeHTTP(c.Writer, c.Request)

		// If the middleware already wrote the response, stop Gin chain
		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}
