package handler

import (
	"Nova_Tube/internal/middleware"
	"Nova_Tube/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定义了标准的API错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

// sendErrorResponse 是一个辅助函数，用于发送标准格式的错误响应
func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// respondServiceError 把service层的分类错误统一翻译成HTTP状态码
// 没归类的错误一律按500处理，并且不把内部错误文本漏给用户
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		sendErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrTokenReused):
		sendErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		sendErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		sendErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		sendErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnavailable):
		sendErrorResponse(c, http.StatusServiceUnavailable, err.Error())
	default:
		sendErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
	}
}

// 从已认证的context里取当前用户ID（由auth中间件放进去的uint64）
func currentUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint64)
	return userID, ok
}

// 可选认证的接口用这个：匿名时返回0
func optionalUserID(c *gin.Context) uint64 {
	userID, _ := currentUserID(c)
	return userID
}
