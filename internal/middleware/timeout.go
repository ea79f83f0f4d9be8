package middleware

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// 请求超时中间件：给每个请求的context套上统一的deadline
// 下游的repository都用这个context访问MySQL/Redis，超时后还没跑完的SQL会被连带取消，
// service层把超时翻译成“存储暂时不可用”，调用方拿到503后可以重试
func RequestTimeout() gin.HandlerFunc {
	timeout := envDurationSeconds("REQUEST_TIMEOUT_SECONDS", 5)
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func envDurationSeconds(key string, fallback int) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
