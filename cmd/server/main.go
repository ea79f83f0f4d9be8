package main

import (
	"Nova_Tube/internal/handler"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"Nova_Tube/internal/router"
	"Nova_Tube/internal/service"
	"Nova_Tube/pkg/logger"
	"Nova_Tube/pkg/rabbitmq"
	"Nova_Tube/pkg/redis"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// 加载.env文件
	err := godotenv.Load()
	if err != nil {
		log.Fatalf(".env文件加载失败")
	}
	// 初始化logger
	logger.InitLogger()

	// 初始化Redis
	redisClient, err := redis.InitRedis()
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	logger.Log.Info("Redis连接成功")

	// 初始化RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close() // 确保程序退出时关闭连接
	logger.Log.Info("RabbitMQ连接成功")

	// 数据源名称，用户名:密码@网络协议(地址:端口号)/数据库名?charset=字符集&parseTime=是否解析时间&loc=时区
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/nova_tube?charset=utf8mb4&parseTime=True&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")
	// db.AutoMigrate(),没有这个表就创建,没有属性列则创建列,没有约束则增加约束;不会主动删除和修改
	err = db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Like{},
		&model.Subscription{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.WatchRecord{},
	)
	if err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	watchRepo := repository.NewWatchRepository(db)

	tokenService := service.NewTokenService(userRepo)
	userService := service.NewUserService(userRepo, tokenService)
	videoService := service.NewVideoService(videoRepo, rabbitMQConn)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	toggleService := service.NewToggleService(likeRepo, subRepo, userRepo, videoRepo, commentRepo, tweetRepo)
	queryService := service.NewQueryService(userRepo, videoRepo, commentRepo, likeRepo, subRepo, playlistRepo, watchRepo)

	userHandler := handler.NewUserHandler(userService, queryService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService, queryService)
	likeHandler := handler.NewLikeHandler(toggleService)
	channelHandler := handler.NewChannelHandler(queryService, toggleService, tweetService, playlistService, userRepo, videoRepo, subRepo)
	tweetHandler := handler.NewTweetHandler(tweetService)
	playlistHandler := handler.NewPlaylistHandler(playlistService, queryService)

	r := router.SetupRouter(tokenService, userHandler, videoHandler, commentHandler, likeHandler, channelHandler, tweetHandler, playlistHandler)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	logger.Log.Printf("服务器将在%s启动", addr)

	if err := r.Run(addr); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
