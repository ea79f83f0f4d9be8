package handler

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 频道相关的读视图和订阅开关都从用户名出发，所以集中在一个handler里
type ChannelHandler interface {
	GetProfile(c *gin.Context)
	GetVideos(c *gin.Context)
	GetTweets(c *gin.Context)
	GetPlaylists(c *gin.Context)
	GetSubscribers(c *gin.Context)
	GetSubscriptions(c *gin.Context)
	ToggleSubscribe(c *gin.Context)
	GetStats(c *gin.Context)
}

type channelHandler struct {
	QueryService    service.QueryService
	ToggleService   service.ToggleService
	TweetService    service.TweetService
	PlaylistService service.PlaylistService
	UserRepo        repository.UserRepository
	VideoRepo       repository.VideoRepository
	SubRepo         repository.SubscriptionRepository
}

func NewChannelHandler(
	queryService service.QueryService,
	toggleService service.ToggleService,
	tweetService service.TweetService,
	playlistService service.PlaylistService,
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
	subRepo repository.SubscriptionRepository,
) ChannelHandler {
	return &channelHandler{
		QueryService:    queryService,
		ToggleService:   toggleService,
		TweetService:    tweetService,
		PlaylistService: playlistService,
		UserRepo:        userRepo,
		VideoRepo:       videoRepo,
		SubRepo:         subRepo,
	}
}

// URL里的用户名解析成User，查不到统一404
func (h *channelHandler) resolveChannel(c *gin.Context) (*model.User, bool) {
	username := strings.ToLower(strings.TrimSpace(c.Param("username")))
	if username == "" {
		sendErrorResponse(c, http.StatusBadRequest, "无效的用户名")
		return nil, false
	}
	user, err := h.UserRepo.FindByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(c, http.StatusNotFound, "频道不存在")
		} else {
			sendErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
		}
		return nil, false
	}
	return user, true
}

// 频道主页：可选认证，登录用户能看到自己是否已订阅该频道
func (h *channelHandler) GetProfile(c *gin.Context) {
	viewerID := optionalUserID(c)
	profile, err := h.QueryService.ChannelProfile(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		logger.Log.WithError(err).WithField("username", c.Param("username")).Warn("获取频道主页失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (h *channelHandler) GetVideos(c *gin.Context) {
	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}
	videos, err := h.VideoRepo.FindByAuthor(c.Request.Context(), channel.ID)
	if err != nil {
		logger.Log.WithError(err).WithField("channel_id", channel.ID).Error("获取频道视频失败")
		sendErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	response := make([]dto.VideoView, 0, len(videos))
	for i := range videos {
		response = append(response, dto.ToVideoView(&videos[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": response})
}

func (h *channelHandler) GetTweets(c *gin.Context) {
	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}
	tweets, err := h.TweetService.GetUserTweets(c.Request.Context(), channel.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToTweetResponses(tweets)})
}

func (h *channelHandler) GetPlaylists(c *gin.Context) {
	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}
	playlists, err := h.PlaylistService.GetUserPlaylists(c.Request.Context(), channel.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToPlaylistResponses(playlists)})
}

// 订阅者列表：订阅关系行预加载了订阅者，投影成OwnerInfo返回
func (h *channelHandler) GetSubscribers(c *gin.Context) {
	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}
	subs, err := h.SubRepo.ListSubscribers(c.Request.Context(), channel.ID)
	if err != nil {
		logger.Log.WithError(err).WithField("channel_id", channel.ID).Error("获取订阅者列表失败")
		sendErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	response := make([]dto.OwnerInfo, 0, len(subs))
	for i := range subs {
		if subs[i].Subscriber.ID != 0 {
			response = append(response, dto.ToOwnerInfo(&subs[i].Subscriber))
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": response})
}

// 该频道主订阅了哪些频道
func (h *channelHandler) GetSubscriptions(c *gin.Context) {
	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}
	subs, err := h.SubRepo.ListChannels(c.Request.Context(), channel.ID)
	if err != nil {
		logger.Log.WithError(err).WithField("subscriber_id", channel.ID).Error("获取订阅频道列表失败")
		sendErrorResponse(c, http.StatusInternalServerError, "服务器内部错误")
		return
	}
	response := make([]dto.OwnerInfo, 0, len(subs))
	for i := range subs {
		if subs[i].Channel.ID != 0 {
			response = append(response, dto.ToOwnerInfo(&subs[i].Channel))
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": response})
}

// 订阅开关：1、解析出目标频道 2、取认证身份 3、ToggleService翻转
func (h *channelHandler) ToggleSubscribe(c *gin.Context) {
	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	logCtx := logger.Log.WithField("subscriber_id", userID).WithField("channel_id", channel.ID)
	created, err := h.ToggleService.ToggleSubscription(c.Request.Context(), userID, channel.ID)
	if err != nil {
		logCtx.WithError(err).Error("订阅开关失败")
		respondServiceError(c, err)
		return
	}
	if created {
		logCtx.Info("订阅成功")
		c.JSON(http.StatusCreated, gin.H{"message": "订阅成功", "data": gin.H{"created": true}})
	} else {
		logCtx.Info("退订成功")
		c.JSON(http.StatusOK, gin.H{"message": "退订成功", "data": gin.H{"created": false}})
	}
}

// 创作中心统计面板：只能看自己的
func (h *channelHandler) GetStats(c *gin.Context) {
	userID, exists := currentUserID(c)
	if !exists {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}
	stats, err := h.QueryService.ChannelStats(c.Request.Context(), userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("获取频道统计失败")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
