package middleware

import (
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": util.GetUserFromContext(c).UserID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 3}, Role: model.Student}
	valid, err := util.GenerateJWT(user, secret, time.Hour)
	require.NoError(t, err)

	forged, err := util.GenerateJWT(user, "another-secret", time.Hour)
	require.NoError(t, err)

	anonymous, err := util.GenerateJWT(&model.User{}, secret, time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &util.Claims{UserID: 3}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized},
		{"zero user id", "Bearer " + anonymous, http.StatusUnauthorized},
		{"unsigned token", "Bearer " + none, http.StatusUnauthorized},
		{"malformed", "Bearer not.a.token", http.StatusUnauthorized},
		{"missing scheme", valid, http.StatusUnauthorized},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"userId":3}`, rec.Body.String())
			} else {
				assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
			}
		})
	}
}
