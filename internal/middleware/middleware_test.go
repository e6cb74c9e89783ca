package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RaymondMik/GetRideApp/internal/model"
	"github.com/RaymondMik/GetRideApp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator struct {
	user *model.User
	err  error
	seen string
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*model.User, error) {
	s.seen = token
	return s.user, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthRouter(auth Authenticator) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(auth, discardLogger()), func(c *gin.Context) {
		user, ok := GetAuthUser(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		token, _ := GetAuthToken(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "token": token})
	})
	return r
}

func TestAuthMiddleware_Success(t *testing.T) {
	auth := &stubAuthenticator{user: &model.User{ID: "u1", Email: "a@x.com"}}
	r := newAuthRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthHeader, "tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok", auth.seen)
	assert.JSONEq(t, `{"id":"u1","token":"tok"}`, w.Body.String())
}

func TestAuthMiddleware_Unauthorized(t *testing.T) {
	auth := &stubAuthenticator{err: service.ErrUnauthorized}
	r := newAuthRouter(auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
	assert.Equal(t, "", auth.seen)
}

func TestAuthMiddleware_WrappedUnauthorized(t *testing.T) {
	auth := &stubAuthenticator{err: errors.Join(service.ErrUnauthorized, errors.New("token is expired"))}
	r := newAuthRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthHeader, "expired")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	auth := &stubAuthenticator{err: errors.New("connection refused")}
	r := newAuthRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthHeader, "tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestGetAuthUser_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetAuthUser(c)
	assert.False(t, ok)
	_, ok = GetAuthToken(c)
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	dec := json.NewDecoder(&buf)
	levels := map[string]string{}
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		levels[entry["path"].(string)] = entry["level"].(string)
		assert.Equal(t, "GET", entry["method"])
	}
	assert.Equal(t, map[string]string{"/ok": "INFO", "/missing": "WARN", "/boom": "ERROR"}, levels)
}
