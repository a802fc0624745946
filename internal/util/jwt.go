package util

import (
	"coursehub_backend/internal/model"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserKey 认证中间件写入 gin 上下文的键
const ContextUserKey = "user"

// 身份服务与本服务之间允许的时钟偏差
const tokenLeeway = 30 * time.Second

var ErrInvalidClaims = errors.New("invalid token claims")

// Claims 由身份服务签发，本服务只做校验
type Claims struct {
	UserID uint           `json:"user_id"`
	Role   model.UserRole `json:"role"`
	Email  string         `json:"email"`
	jwt.RegisteredClaims
}

// GenerateJWT 签发 HS256 Token，供脚本和测试模拟身份服务
func GenerateJWT(user *model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(tokenLeeway),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// GetUserFromContext 未经过认证中间件时返回 nil
func GetUserFromContext(c *gin.Context) *Claims {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
