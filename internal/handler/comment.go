package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	GetComments(c *gin.Context)
	CreateComment(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
	QueryService   service.QueryService
}

func NewCommentHandler(commentService service.CommentService, queryService service.QueryService) CommentHandler {
	return &commentHandler{
		CommentService: commentService,
		QueryService:   queryService,
	}
}

type CommentBodyRequest struct {
	Content string `json:"content" binding:"required"`
}

// 获取一个视频的评论列表：1、解析videoID 2、从查询参数取分页信息并给默认值 3、查询服务拼好视图
func (h *commentHandler) GetComments(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}
	// 在URL的查询参数里（?后面的部分）找page这个键，没找到就返回默认值“1”
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	views, err := h.QueryService.VideoComments(c.Request.Context(), videoID, page, pageSize)
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Error("获取评论列表失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取评论列表成功",
		"data":    views,
	})
}

// 发评论：1、解析videoID和请求体 2、从认证后的context取userID 3、service层创建
func (h *commentHandler) CreateComment(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}
	var req CommentBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("评论参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	logCtx := logger.Log.WithField("user_id", userID).WithField("video_id", videoID)
	logCtx.Info("开始创建评论")
	comment, err := h.CommentService.CreateComment(c.Request.Context(), userID, videoID, req.Content)
	if err != nil {
		logCtx.WithError(err).Error("创建评论失败")
		respondServiceError(c, err)
		return
	}
	logCtx.WithField("comment_id", comment.ID).Info("评论创建成功")
	c.JSON(http.StatusCreated, gin.H{
		"message": "评论成功",
		"data":    dto.ToCommentView(comment, 0),
	})
}

// 改评论：归属检查在service层，改别人的评论会拿到403
func (h *commentHandler) UpdateComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的评论ID")
		return
	}
	var req CommentBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	comment, err := h.CommentService.UpdateComment(c.Request.Context(), userID, commentID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "评论已更新",
		"data":    dto.ToCommentView(comment, 0),
	})
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的评论ID")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	if err := h.CommentService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "评论已删除"})
}
