package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/httperr"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler renders errors a handler recorded without writing a response
// and logs the causes hidden behind opaque 500 answers.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, ginErr := range c.Errors.ByType(gin.ErrorTypePrivate) {
			attrs := []any{"request_id", GetRequestID(c), "path", c.Request.URL.Path, "error", ginErr.Err}
			if kind, ok := errs.KindOf(ginErr.Err); ok {
				attrs = append(attrs, "kind", string(kind))
			}
			slog.Error("request failed", attrs...)
		}

		if c.Writer.Written() {
			return
		}
		// latest public error wins
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if len(c.Errors) > 0 {
			c.JSON(http.StatusInternalServerError, internalError())
		}
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					"error", rec,
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, internalError())
			}
		}()
		c.Next()
	}
}

func internalError() httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = internalErrorMessage
	return resp
}
