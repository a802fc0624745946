package util

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// RequestBaseURL 返回对外地址。配置了 public_base_url 时优先使用，
// 否则按请求的协议和 Host 拼接
func RequestBaseURL(c *gin.Context, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + c.Request.Host
}
