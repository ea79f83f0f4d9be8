package middleware

import (
	"Nova_Tube/internal/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// context里的键，handler层用这两个取已认证身份
	CtxUserID   = "userID"
	CtxUsername = "username"

	// 两个凭证cookie的名字，和登录接口写cookie时保持一致
	CookieAccessToken  = "accessToken"
	CookieRefreshToken = "refreshToken"
)

// 从请求里取访问令牌：Authorization头里的Bearer优先，其次才是cookie
// 浏览器走cookie，App和脚本走header，两个都带时以header为准
func extractAccessToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		// header格式不对就当没带，还有cookie这条路
	}
	token, err := c.Cookie(CookieAccessToken)
	if err != nil {
		return ""
	}
	return token
}

// 认证中间件：1、从header/cookie取访问令牌 2、交给TokenService验签并解析出用户
// 3、把用户身份放进context 4、任何一步失败都立刻401并阻断后续handler
func AuthMiddleware(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractAccessToken(c)
		if token == "" {
			// 立刻调用c.Abort()，阻止后续的任何处理器（包括其他中间件和最终的handler）被执行
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "请求未包含授权令牌"})
			return
		}

		user, err := tokens.VerifyAccess(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的授权令牌"})
			return
		}

		// 验证成功！将用户信息存入Context，以便后续使用
		// 这里放的是解析好的uint64，不是jwt claims里的float64
		c.Set(CtxUserID, user.ID)
		c.Set(CtxUsername, user.Username)

		// 放行，继续处理请求
		c.Next()
	}
}

// 可选认证：带了有效令牌就解析出身份，没带或无效也照样放行（作为匿名请求）
// 频道主页的IsSubscribed、看视频时记观看历史，都靠它区分“谁在看”
func OptionalAuthMiddleware(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractAccessToken(c)
		if token != "" {
			if user, err := tokens.VerifyAccess(c.Request.Context(), token); err == nil {
				c.Set(CtxUserID, user.ID)
				c.Set(CtxUsername, user.Username)
			}
		}
		c.Next()
	}
}
