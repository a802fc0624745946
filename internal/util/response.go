package util

import (
	"coursehub_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageResponse 进度接口的响应结构
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse 查询进度接口的响应结构
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ResultResponse 评价接口的响应结构
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func Message(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}

func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// Fail 评价类接口的失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, ResultResponse{Success: false, Message: message})
}

func Unauthorized(c *gin.Context) {
	Message(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

// LogError 在接口边界记录错误，返回给调用方的只有通用提示
func LogError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	if StatusFor(err) >= http.StatusInternalServerError {
		logger.Log.Error(msg, fields...)
		return
	}
	logger.Log.Info(msg, fields...)
}
