package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TweetHandler interface {
	CreateTweet(c *gin.Context)
	UpdateTweet(c *gin.Context)
	DeleteTweet(c *gin.Context)
}

type tweetHandler struct {
	TweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) TweetHandler {
	return &tweetHandler{TweetService: tweetService}
}

type TweetBodyRequest struct {
	Content string `json:"content" binding:"required"`
}

// 发动态：动态没有标题没有附件，就一段文字
func (h *tweetHandler) CreateTweet(c *gin.Context) {
	var req TweetBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("动态参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	tweet, err := h.TweetService.CreateTweet(c.Request.Context(), userID, req.Content)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("创建动态失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "动态发布成功",
		"data":    dto.ToTweetResponse(tweet),
	})
}

func (h *tweetHandler) UpdateTweet(c *gin.Context) {
	tweetID, err := strconv.ParseUint(c.Param("tweet_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的动态ID")
		return
	}
	var req TweetBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	tweet, err := h.TweetService.UpdateTweet(c.Request.Context(), userID, tweetID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "动态已更新",
		"data":    dto.ToTweetResponse(tweet),
	})
}

func (h *tweetHandler) DeleteTweet(c *gin.Context) {
	tweetID, err := strconv.ParseUint(c.Param("tweet_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的动态ID")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	if err := h.TweetService.DeleteTweet(c.Request.Context(), userID, tweetID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "动态已删除"})
}
