package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	CreateVideo(c *gin.Context)
	GetVideoByID(c *gin.Context)
	GetFeed(c *gin.Context)
	DeleteVideo(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) VideoHandler {
	return &videoHandler{VideoService: videoService}
}

type CreateVideoRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	VideoURL    string  `json:"video_url" binding:"required"`
	CoverURL    string  `json:"cover_url" binding:"required"`
	Duration    float64 `json:"duration"`
}

// 发布视频：1、解析请求体和context中的userID 2、service层落库 3、通过dto返回干净的响应
// 媒体文件本身的上传/转码在别的系统，这里只收URL
func (h *videoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("发布视频参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	authorID, exists := currentUserID(c)
	// 防御性编程，正常路由上一定先过了认证中间件，但就怕程序员误用
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	logCtx := logger.Log.WithField("author_id", authorID)
	logCtx.Info("开始处理发布视频请求")

	video, err := h.VideoService.CreateVideo(c.Request.Context(), authorID, req.Title, req.Description, req.VideoURL, req.CoverURL, req.Duration)
	if err != nil {
		logCtx.WithError(err).Error("发布视频业务处理失败")
		respondServiceError(c, err)
		return
	}
	logCtx.WithField("video_id", video.ID).Info("视频发布成功")

	c.JSON(http.StatusCreated, gin.H{ // 使用201 Created状态码，更符合RESTful规范
		"message": "视频发布成功",
		"data":    dto.ToVideoView(video),
	})
}

// 看视频：挂的是可选认证，登录用户会顺带记一次观看（播放量+观看历史走异步）
func (h *videoHandler) GetVideoByID(c *gin.Context) {
	// :video_id用来定位资源(Resource)，URL中取回的是str，统一转化为uint64
	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}
	viewerID := optionalUserID(c)

	logCtx := logger.Log.WithField("video_id", videoID)
	video, err := h.VideoService.GetVideoByID(c.Request.Context(), videoID, viewerID)
	if err != nil {
		logCtx.WithError(err).Warn("查找视频失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToVideoView(video)})
}

// 获取视频Feed流：1、将请求附上用户IP，便于问题溯源 2、service层取最新视频 3、dto转换后返回
func (h *videoHandler) GetFeed(c *gin.Context) {
	// 攻击溯源，用户分析，问题排查
	logCtx := logger.Log.WithField("ip", c.ClientIP())
	logCtx.Info("开始处理获取Feed流请求")

	videos, err := h.VideoService.GetFeed(c.Request.Context(), 20)
	if err != nil {
		logCtx.WithError(err).Error("获取Feed流业务处理失败")
		sendErrorResponse(c, http.StatusInternalServerError, "获取视频流失败")
		return
	}

	response := make([]dto.VideoView, 0, len(videos))
	for i := range videos {
		response = append(response, dto.ToVideoView(&videos[i]))
	}

	logCtx.WithField("count", len(response)).Info("成功获取Feed流")
	c.JSON(http.StatusOK, gin.H{
		"message": "成功获取视频流",
		"data":    response,
	})
}

// 删视频：归属检查在service层做，不是作者会拿到403
func (h *videoHandler) DeleteVideo(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	logCtx := logger.Log.WithField("user_id", userID).WithField("video_id", videoID)
	if err := h.VideoService.DeleteVideo(c.Request.Context(), userID, videoID); err != nil {
		logCtx.WithError(err).Warn("删除视频失败")
		respondServiceError(c, err)
		return
	}
	logCtx.Info("视频已删除")
	c.JSON(http.StatusOK, gin.H{"message": "视频已删除"})
}
