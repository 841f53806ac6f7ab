package httperr

import (
	"net/http"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Kind    string `json:"kind,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// Violation is one entry of Response.Detail when a request failed for a known reason.
type Violation struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

var kindStatus = map[errs.Kind]int{
	errs.KindInvertedInterval:        http.StatusBadRequest,
	errs.KindStartNotInFuture:        http.StatusBadRequest,
	errs.KindDurationExceeded:        http.StatusBadRequest,
	errs.KindInvalidIdentity:         http.StatusBadRequest,
	errs.KindUserQuotaExceeded:       http.StatusUnprocessableEntity,
	errs.KindPersistenceConflict:     http.StatusUnprocessableEntity,
	errs.KindUnsupportedResourceType: http.StatusUnprocessableEntity,
	errs.KindInvalidInventoryEntry:   http.StatusUnprocessableEntity,
	errs.KindAlreadyReserved:         http.StatusConflict,
	errs.KindReservationActive:       http.StatusConflict,
	errs.KindNotFound:                http.StatusNotFound,
	errs.KindInvalidToken:            http.StatusNotFound,
	errs.KindTokenCollision:          http.StatusInternalServerError,
	errs.KindConfigUnreadable:        http.StatusInternalServerError,
}

// StatusOf maps a failure to its HTTP status. When several violations are
// joined the most specific client error wins: 409 over 422 over 400.
func StatusOf(err error) int {
	status := 0
	for _, d := range errs.Details(err) {
		s, ok := kindStatus[d.Kind]
		if !ok {
			continue
		}
		if s == http.StatusInternalServerError {
			return s
		}
		if rank(s) > rank(status) {
			status = s
		}
	}
	if status == 0 {
		return http.StatusInternalServerError
	}
	return status
}

func rank(status int) int {
	switch status {
	case http.StatusConflict:
		return 4
	case http.StatusNotFound:
		return 3
	case http.StatusUnprocessableEntity:
		return 2
	case http.StatusBadRequest:
		return 1
	}
	return 0
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(err).SetType(gin.ErrorTypePublic).SetMeta(resp)
	c.AbortWithStatusJSON(status, resp)
}

// Abort answers with the status and message the error kinds call for. Errors
// without a kind become an opaque 500 carrying fallback as the message.
func Abort(c *gin.Context, err error, fallback string) {
	details := errs.Details(err)
	status := StatusOf(err)
	if len(details) == 0 || status == http.StatusInternalServerError {
		resp := Response{Status: http.StatusInternalServerError}
		resp.Error.Message = fallback
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		return
	}

	violations := make([]Violation, 0, len(details))
	for _, d := range details {
		violations = append(violations, Violation{Kind: string(d.Kind), Message: d.Error(), Context: d.Detail})
	}

	resp := Response{Status: status}
	resp.Error.Message = details[0].Error()
	resp.Error.Kind = string(details[0].Kind)
	resp.Detail = violations

	_ = c.Error(err).SetType(gin.ErrorTypePublic).SetMeta(resp)
	c.AbortWithStatusJSON(status, resp)
}
