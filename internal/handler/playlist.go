package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler interface {
	CreatePlaylist(c *gin.Context)
	GetPlaylist(c *gin.Context)
	UpdatePlaylist(c *gin.Context)
	DeletePlaylist(c *gin.Context)
	AddVideo(c *gin.Context)
	RemoveVideo(c *gin.Context)
}

type playlistHandler struct {
	PlaylistService service.PlaylistService
	QueryService    service.QueryService
}

func NewPlaylistHandler(playlistService service.PlaylistService, queryService service.QueryService) PlaylistHandler {
	return &playlistHandler{
		PlaylistService: playlistService,
		QueryService:    queryService,
	}
}

type PlaylistBodyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *playlistHandler) CreatePlaylist(c *gin.Context) {
	var req PlaylistBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("收藏夹参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	playlist, err := h.PlaylistService.CreatePlaylist(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "收藏夹创建成功",
		"data":    dto.ToPlaylistResponse(playlist),
	})
}

// 收藏夹详情是公开视图，已删除的视频以占位条目形式保留
func (h *playlistHandler) GetPlaylist(c *gin.Context) {
	playlistID, err := strconv.ParseUint(c.Param("playlist_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的收藏夹ID")
		return
	}
	view, err := h.QueryService.PlaylistDetail(c.Request.Context(), playlistID)
	if err != nil {
		logger.Log.WithError(err).WithField("playlist_id", playlistID).Warn("获取收藏夹详情失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (h *playlistHandler) UpdatePlaylist(c *gin.Context) {
	playlistID, err := strconv.ParseUint(c.Param("playlist_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的收藏夹ID")
		return
	}
	var req PlaylistBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	playlist, err := h.PlaylistService.UpdatePlaylist(c.Request.Context(), userID, playlistID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "收藏夹已更新",
		"data":    dto.ToPlaylistResponse(playlist),
	})
}

func (h *playlistHandler) DeletePlaylist(c *gin.Context) {
	playlistID, err := strconv.ParseUint(c.Param("playlist_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的收藏夹ID")
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	if err := h.PlaylistService.DeletePlaylist(c.Request.Context(), userID, playlistID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "收藏夹已删除"})
}

// 收藏夹条目的增删共用的参数解析
func (h *playlistHandler) itemParams(c *gin.Context) (playlistID, videoID, userID uint64, ok bool) {
	playlistID, err := strconv.ParseUint(c.Param("playlist_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的收藏夹ID")
		return 0, 0, 0, false
	}
	videoID, err = strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return 0, 0, 0, false
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return 0, 0, 0, false
	}
	return playlistID, videoID, userID, true
}

func (h *playlistHandler) AddVideo(c *gin.Context) {
	playlistID, videoID, userID, ok := h.itemParams(c)
	if !ok {
		return
	}
	if err := h.PlaylistService.AddVideo(c.Request.Context(), userID, playlistID, videoID); err != nil {
		logger.Log.WithError(err).WithField("playlist_id", playlistID).
			WithField("video_id", videoID).Warn("收藏视频失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "视频已加入收藏夹"})
}

func (h *playlistHandler) RemoveVideo(c *gin.Context) {
	playlistID, videoID, userID, ok := h.itemParams(c)
	if !ok {
		return
	}
	if err := h.PlaylistService.RemoveVideo(c.Request.Context(), userID, playlistID, videoID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "视频已移出收藏夹"})
}
