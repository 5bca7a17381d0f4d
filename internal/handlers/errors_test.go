package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ideaforge/backend/internal/apperr"
)

func TestStatusFor(t *testing.T) {
	cases := map[apperr.Kind]int{
		apperr.NotFound:           http.StatusNotFound,
		apperr.Forbidden:          http.StatusForbidden,
		apperr.InvalidArgument:    http.StatusBadRequest,
		apperr.ServiceUnavailable: http.StatusServiceUnavailable,
		apperr.Internal:           http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := statusFor(kind); got != want {
			t.Errorf("statusFor(%d) = %d, want %d", kind, got, want)
		}
	}
}

func TestRespondErrorHidesWrappedCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	respondError(c, apperr.Wrap(apperr.ServiceUnavailable, "storage unavailable", cause))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "storage unavailable") {
		t.Errorf("body = %s, want public message", body)
	}
	if strings.Contains(body, "dial tcp") {
		t.Errorf("body = %s, internal detail leaked", body)
	}
}

func TestRespondErrorPlainErrorIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("boom"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
