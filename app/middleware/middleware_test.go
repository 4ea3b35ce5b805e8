package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"blogcms/app/logs"

	"github.com/gorilla/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	logs.SetOutput(&buf)
	t.Cleanup(func() { logs.SetOutput(os.Stdout) })
	return &buf
}

func TestLogger(t *testing.T) {
	buf := captureLogs(t)

	handler := RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["severity"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/test", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, "abc-123", entry["request_id"])
	assert.Contains(t, entry, "duration_ms")
}

func TestRecoverer(t *testing.T) {
	buf := captureLogs(t)

	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error\n", w.Body.String())
	assert.Contains(t, buf.String(), "test panic")
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "upstream-id")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, "upstream-id", seen)
		assert.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
	})

	t.Run("oversized id replaced", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Len(t, seen, 36)
	})

	assert.Empty(t, RequestIDFromContext(httptest.NewRequest("GET", "/", nil).Context()))
}

func TestCSRF(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(csrf.TemplateField(r)))
	})

	t.Run("disabled without secret", func(t *testing.T) {
		mw, err := CSRF("", false)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		mw(ok).ServeHTTP(w, httptest.NewRequest("POST", "/new-post", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("rejects post without token", func(t *testing.T) {
		mw, err := CSRF("s3cret", false)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		mw(ok).ServeHTTP(w, httptest.NewRequest("POST", "/new-post", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("renders token field on get", func(t *testing.T) {
		mw, err := CSRF("s3cret", false)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		mw(ok).ServeHTTP(w, httptest.NewRequest("GET", "/new-post", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="`+CSRFFieldName+`"`)
		assert.NotEmpty(t, w.Result().Cookies())
	})
}

func TestDeriveKey(t *testing.T) {
	a, err := deriveKey("one")
	require.NoError(t, err)
	b, err := deriveKey("one")
	require.NoError(t, err)
	c, err := deriveKey("two")
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
