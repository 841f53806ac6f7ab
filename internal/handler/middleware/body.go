package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LimitBody caps how much of the request body a handler may read.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
