package router

import (
	"Nova_Tube/internal/handler"
	"Nova_Tube/internal/middleware"
	"Nova_Tube/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	tokens service.TokenService,
	userHandler handler.UserHandler,
	videoHandler handler.VideoHandler,
	commentHandler handler.CommentHandler,
	likeHandler handler.LikeHandler,
	channelHandler handler.ChannelHandler,
	tweetHandler handler.TweetHandler,
	playlistHandler handler.PlaylistHandler,
) *gin.Engine {
	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pang",
		})
	})
	apiV1 := r.Group("/api/v1")
	// 业务接口统一套请求超时，存储层拿的都是这个带deadline的context
	apiV1.Use(middleware.RequestTimeout())
	{
		// 公开读接口，其中带OptionalAuth的登录后会有额外信息（是否已订阅/记录观看）
		apiV1.GET("/feed", videoHandler.GetFeed)
		apiV1.GET("/videos/:video_id", middleware.OptionalAuthMiddleware(tokens), videoHandler.GetVideoByID)
		apiV1.GET("/videos/:video_id/comments", commentHandler.GetComments)
		apiV1.GET("/playlists/:playlist_id", playlistHandler.GetPlaylist)

		// 频道的公开面：用户名是对外标识，ID不出现在URL里
		channelGroup := apiV1.Group("/channels/:username")
		{
			channelGroup.GET("", middleware.OptionalAuthMiddleware(tokens), channelHandler.GetProfile)
			channelGroup.GET("/videos", channelHandler.GetVideos)
			channelGroup.GET("/tweets", channelHandler.GetTweets)
			channelGroup.GET("/playlists", channelHandler.GetPlaylists)
			channelGroup.GET("/subscribers", channelHandler.GetSubscribers)
			channelGroup.GET("/subscriptions", channelHandler.GetSubscriptions)
		}

		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/register", userHandler.Register)
			userGroup.POST("/login", userHandler.Login)
			// 刷新不走认证中间件：访问令牌过期了才需要来这里
			userGroup.POST("/refresh", userHandler.Refresh)
		}

		authorized := apiV1.Group("/")
		authorized.Use(middleware.AuthMiddleware(tokens))
		{
			authorized.POST("/users/logout", userHandler.Logout)
			authorized.GET("/users/me", userHandler.Me)
			authorized.PATCH("/users/me", userHandler.UpdateAccount)
			authorized.POST("/users/change-password", userHandler.ChangePassword)
			authorized.GET("/users/history", userHandler.WatchHistory)
			authorized.GET("/users/liked-videos", userHandler.LikedVideos)

			authorized.POST("/videos", videoHandler.CreateVideo)
			authorized.DELETE("/videos/:video_id", videoHandler.DeleteVideo)
			authorized.POST("/videos/:video_id/comments", commentHandler.CreateComment)
			authorized.POST("/videos/:video_id/like", likeHandler.ToggleVideoLike)

			authorized.PATCH("/comments/:comment_id", commentHandler.UpdateComment)
			authorized.DELETE("/comments/:comment_id", commentHandler.DeleteComment)
			authorized.POST("/comments/:comment_id/like", likeHandler.ToggleCommentLike)

			authorized.POST("/tweets", tweetHandler.CreateTweet)
			authorized.PATCH("/tweets/:tweet_id", tweetHandler.UpdateTweet)
			authorized.DELETE("/tweets/:tweet_id", tweetHandler.DeleteTweet)
			authorized.POST("/tweets/:tweet_id/like", likeHandler.ToggleTweetLike)

			authorized.POST("/channels/:username/subscribe", channelHandler.ToggleSubscribe)

			authorized.POST("/playlists", playlistHandler.CreatePlaylist)
			authorized.PATCH("/playlists/:playlist_id", playlistHandler.UpdatePlaylist)
			authorized.DELETE("/playlists/:playlist_id", playlistHandler.DeletePlaylist)
			authorized.POST("/playlists/:playlist_id/videos/:video_id", playlistHandler.AddVideo)
			authorized.DELETE("/playlists/:playlist_id/videos/:video_id", playlistHandler.RemoveVideo)

			authorized.GET("/dashboard/stats", channelHandler.GetStats)
		}
	}

	return r
}
