package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/middleware"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Refresh(c *gin.Context)
	Logout(c *gin.Context)
	Me(c *gin.Context)
	ChangePassword(c *gin.Context)
	UpdateAccount(c *gin.Context)
	WatchHistory(c *gin.Context)
	LikedVideos(c *gin.Context)
}

// 对Service进行封装
type userHandler struct {
	UserService  service.UserService
	QueryService service.QueryService
}

// 封装函数
func NewUserHandler(userService service.UserService, queryService service.QueryService) UserHandler {
	return &userHandler{
		UserService:  userService,
		QueryService: queryService,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Avatar   string `json:"avatar"`
	CoverURL string `json:"cover_url"`
}

type LoginRequest struct {
	// 用户名或邮箱二选一
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// 两个凭证cookie统一在这里写，HttpOnly+Secure，不让前端JS碰到令牌
func setAuthCookies(c *gin.Context, pair *service.TokenPair) {
	c.SetCookie(middleware.CookieAccessToken, pair.AccessToken, 0, "/", "", true, true)
	c.SetCookie(middleware.CookieRefreshToken, pair.RefreshToken, 0, "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.CookieAccessToken, "", -1, "/", "", true, true)
	c.SetCookie(middleware.CookieRefreshToken, "", -1, "/", "", true, true)
}

// 注册：1、解析并校验请求体 2、service层完成查重和加密入库 3、返回安全的用户信息
func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	// c.ShouldBindJSON，绑定和校验，如果context中不包含req的“required”字段，则会返回错误
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("注册请求参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理用户注册请求")

	user, err := h.UserService.Register(c.Request.Context(), req.Username, req.Email, req.FullName, req.Password, req.Avatar, req.CoverURL)
	if err != nil {
		logCtx.WithError(err).Error("用户注册业务逻辑处理失败")
		respondServiceError(c, err)
		return
	}

	logCtx.WithField("user_id", user.ID).Info("用户注册成功")
	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"data":    dto.ToUserResponse(user),
	})
}

// 登录：1、解析请求体 2、service层验密并签发令牌对 3、令牌同时放进响应体和cookie
func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("登录请求参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("identifier", req.Identifier)
	logCtx.Info("开始处理用户登录请求")

	user, pair, err := h.UserService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		logCtx.WithError(err).Error("用户登录业务逻辑处理失败")
		// 模糊的错误提示，更安全
		sendErrorResponse(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	setAuthCookies(c, pair)
	logCtx.WithField("user_id", user.ID).Info("用户登录成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"data": gin.H{
			"user":          dto.ToUserResponse(user),
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		},
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// 令牌轮换：刷新令牌从cookie取，取不到再看请求体；成功后新令牌重置cookie
// 这个接口不要求访问令牌有效——访问令牌过期了才需要来刷新
func (h *userHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(middleware.CookieRefreshToken)
	if err != nil || refreshToken == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		sendErrorResponse(c, http.StatusUnauthorized, "请求未包含刷新令牌")
		return
	}

	pair, err := h.UserService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		logger.Log.WithError(err).Warn("令牌轮换失败")
		respondServiceError(c, err)
		return
	}

	setAuthCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{
		"message": "令牌已更新",
		"data": gin.H{
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
		},
	})
}

// 登出：吊销刷新令牌并清掉两个cookie
func (h *userHandler) Logout(c *gin.Context) {
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	if err := h.UserService.Logout(c.Request.Context(), userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("登出失败")
		respondServiceError(c, err)
		return
	}
	clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "已登出"})
}

func (h *userHandler) Me(c *gin.Context) {
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	user, err := h.UserService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToUserResponse(user)})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *userHandler) ChangePassword(c *gin.Context) {
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	if err := h.UserService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("修改密码失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "密码已更新"})
}

type UpdateAccountRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

func (h *userHandler) UpdateAccount(c *gin.Context) {
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	user, err := h.UserService.UpdateAccount(c.Request.Context(), userID, req.FullName, req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "资料已更新",
		"data":    dto.ToUserResponse(user),
	})
}

// 观看历史：只能看自己的
func (h *userHandler) WatchHistory(c *gin.Context) {
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	views, err := h.QueryService.WatchHistory(c.Request.Context(), userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("获取观看历史失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}

// 点过赞的视频：同样只能看自己的
func (h *userHandler) LikedVideos(c *gin.Context) {
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	views, err := h.QueryService.LikedVideos(c.Request.Context(), userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("获取点赞视频失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": views})
}
