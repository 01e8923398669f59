package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey gin context 里的请求ID键
const RequestIDKey = "requestId"

// RequestIDHeader 响应头名称
const RequestIDHeader = "X-Request-ID"

// RequestID 为每个请求分配唯一ID，客户端带入时沿用
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID 从 gin context 取请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
