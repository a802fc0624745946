package util

import (
	"coursehub_backend/internal/model"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrConflict, http.StatusBadRequest},
		{ErrInvalidID, http.StatusBadRequest},
		{fmt.Errorf("%w: render: %w", ErrIssuanceFailed, errors.New("boom")), http.StatusInternalServerError},
		{fmt.Errorf("%w: %w", ErrStorage, errors.New("db down")), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), "%v", tt.err)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, s := range []string{"", "0", "-1", "abc", "4.2"} {
		_, err := ParseID(s)
		assert.ErrorIs(t, err, ErrInvalidID, s)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 7}, Email: "a@example.com", Role: model.Student}

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)

	anonymous, err := GenerateJWT(&model.User{}, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(anonymous, "secret")
	assert.ErrorIs(t, err, ErrInvalidClaims)

	// 偏差窗口内仍然有效
	skewed, err := GenerateJWT(user, "secret", -10*time.Second)
	require.NoError(t, err)
	_, err = ParseJWT(skewed, "secret")
	assert.NoError(t, err)

	expired, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRequestBaseURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(req *http.Request) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = req
		return c
	}

	req := httptest.NewRequest(http.MethodPost, "/api/progress/1/complete", nil)
	assert.Equal(t, "http://example.com", RequestBaseURL(newCtx(req), ""))
	assert.Equal(t, "https://cdn.example.com", RequestBaseURL(newCtx(req), "https://cdn.example.com/"))

	req = httptest.NewRequest(http.MethodPost, "/api/progress/1/complete", nil)
	req.Header.Set("X-Forwarded-Proto", "https, http")
	assert.Equal(t, "https://example.com", RequestBaseURL(newCtx(req), ""))

	req = httptest.NewRequest(http.MethodPost, "/api/progress/1/complete", nil)
	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://example.com", RequestBaseURL(newCtx(req), ""))
}
