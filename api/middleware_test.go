package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/municipal-services-api/api"
)

func TestRequestLogger(t *testing.T) {
	var seen string
	handler := api.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = api.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(api.RequestIDHeader))
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	var seen string
	handler := api.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = api.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(api.RequestIDHeader, "abc123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "abc123", seen)
	assert.Equal(t, "abc123", rr.Header().Get(api.RequestIDHeader))
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Equal(t, "", api.RequestIDFromContext(httptest.NewRequest("GET", "/", nil).Context()))
}

func TestTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	var ok bool
	handler := api.TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)

	handler = api.TimeoutMiddleware(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = r.Context().Deadline()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.False(t, ok)
}
