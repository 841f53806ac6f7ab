//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, response: %s", w.Body.String()) {
		return
	}
	if targetStruct == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "failed to decode response JSON: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the top-level error message
// contains expectedErrorMsg. It returns the decoded body for further checks.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) httperr.Response {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, response: %s", w.Body.String())

	var resp httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to decode error JSON: %s", w.Body.String())

	if expectedErrorMsg != "" {
		assert.Contains(t, resp.Error.Message, expectedErrorMsg, "error message mismatch")
	}
	return resp
}

// AssertErrorKinds checks the kinds of every violation listed in the error detail.
func AssertErrorKinds(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, kinds ...string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, response: %s", w.Body.String())

	var body struct {
		Detail []httperr.Violation `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "failed to decode error JSON: %s", w.Body.String())

	got := make([]string, 0, len(body.Detail))
	for _, v := range body.Detail {
		got = append(got, v.Kind)
	}
	assert.ElementsMatch(t, kinds, got)
}
