package handler

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
}

type likeHandler struct {
	ToggleService service.ToggleService
}

func NewLikeHandler(toggleService service.ToggleService) LikeHandler {
	return &likeHandler{ToggleService: toggleService}
}

func (h *likeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "video_id", model.TargetVideo)
}

func (h *likeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "comment_id", model.TargetComment)
}

func (h *likeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweet_id", model.TargetTweet)
}

// 三种点赞开关共用的流程：1、解析URL参数里的目标ID 2、取认证身份 3、交给ToggleService翻转
// 同一次调用要么建立关系（201）要么删除关系（200），用created字段区分
func (h *likeHandler) toggle(c *gin.Context, paramName string, kind model.TargetKind) {
	targetID, err := strconv.ParseUint(c.Param(paramName), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的目标ID")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	logCtx := logger.Log.WithField("user_id", userID).
		WithField("target_kind", kind).WithField("target_id", targetID)

	created, err := h.ToggleService.ToggleLike(c.Request.Context(), userID, model.LikeTarget{Kind: kind, ID: targetID})
	if err != nil {
		logCtx.WithError(err).Error("点赞开关失败")
		respondServiceError(c, err)
		return
	}

	if created {
		logCtx.Info("点赞成功")
		c.JSON(http.StatusCreated, gin.H{"message": "点赞成功", "data": gin.H{"created": true}})
	} else {
		logCtx.Info("取消点赞成功")
		c.JSON(http.StatusOK, gin.H{"message": "取消点赞成功", "data": gin.H{"created": false}})
	}
}
