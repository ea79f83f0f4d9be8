package service

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"Nova_Tube/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/streadway/amqp"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueView = "nova.view.queue" // 观看事件队列名称
)

// ViewMessage 是一次“有身份的观看”事件：消费者进程负责播放量+1和追加观看历史
type ViewMessage struct {
	UserID  uint64 `json:"user_id"`
	VideoID uint64 `json:"video_id"`
}

type VideoService interface {
	CreateVideo(ctx context.Context, authorID uint64, title, description, videoURL, coverURL string, duration float64) (*model.Video, error)
	// viewerID为0表示匿名观看，匿名不计播放量也不记历史
	GetVideoByID(ctx context.Context, videoID, viewerID uint64) (*model.Video, error)
	GetFeed(ctx context.Context, limit uint64) ([]model.Video, error)
	// 只有视频主人能删自己的视频
	DeleteVideo(ctx context.Context, requesterID, videoID uint64) error
}

type videoService struct {
	sf singleflight.Group

	videoRepo    repository.VideoRepository
	rabbitMQConn *amqp.Connection
}

func NewVideoService(videoRepo repository.VideoRepository, rabbitMQConn *amqp.Connection) VideoService {
	if rabbitMQConn != nil {
		ch, err := rabbitMQConn.Channel()
		if err != nil {
			// 在实际项目中，这里应该有更健壮的错误处理和重试机制
			panic("无法打开RabbitMQ Channel")
		}
		// NewVideoService执行完毕后，这个临时的Channel就被关闭了
		defer ch.Close()
		// 创建观看事件队列，durable持久化，重复创建是幂等的
		if _, err := ch.QueueDeclare(QueueView, true, false, false, false, nil); err != nil {
			panic("无法声明观看事件队列")
		}
	}

	return &videoService{
		videoRepo:    videoRepo,
		rabbitMQConn: rabbitMQConn,
	}
}

func (s *videoService) CreateVideo(ctx context.Context, authorID uint64, title, description, videoURL, coverURL string, duration float64) (*model.Video, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidInput
	}
	newVideo := &model.Video{
		AuthorID:    authorID,
		Title:       title,
		Description: description,
		Duration:    duration,
		VideoURL:    videoURL,
		CoverURL:    coverURL,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(ctx, newVideo); err != nil {
		return nil, storeErr(err)
	}
	return newVideo, nil
}

// 根据videoID查找视频：1、查Redis缓存 2、未命中时通过SingleFlight收拢回源 3、登录用户顺手发观看事件
func (s *videoService) GetVideoByID(ctx context.Context, videoID, viewerID uint64) (*model.Video, error) {
	video, err := s.videoRepo.GetVideoCache(ctx, videoID)
	if err != nil {
		// 不是缓存未命中，而是Redis本身出错了，记日志后照常回源
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("读视频缓存失败")
	}
	if video == nil {
		// 缓存未命中，SingleFlight保证同一时刻同一个key只有一个goroutine去打数据库
		// 搭上顺风车的请求共享的是第一个请求的context，自己的超时在这段时间内不生效
		key := fmt.Sprintf("get_video_%d", videoID)
		result, ferr, _ := s.sf.Do(key, func() (interface{}, error) {
			dbVideo, dbErr := s.videoRepo.FindByID(ctx, videoID)
			if dbErr != nil {
				return nil, dbErr
			}
			// 查询成功后，将返回的dbVideo写回缓存
			_ = s.videoRepo.SetVideoCache(ctx, dbVideo)
			return dbVideo, nil
		})
		if ferr != nil {
			if errors.Is(ferr, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, storeErr(ferr)
		}
		// 返回值是interface{}结构，需要断言
		video = result.(*model.Video)
	}

	// 有身份的观看才计数：发异步消息，由消费者进程去写播放量和观看历史
	// 发失败只记日志不影响本次观看，计数丢一次可以接受
	if viewerID != 0 {
		if err := s.publishViewMessage(ViewMessage{UserID: viewerID, VideoID: videoID}); err != nil {
			logger.Log.WithError(err).
				WithField("user_id", viewerID).
				WithField("video_id", videoID).
				Error("观看事件投递失败")
		}
	}
	return video, nil
}

// 获取视频Feed流
func (s *videoService) GetFeed(ctx context.Context, limit uint64) ([]model.Video, error) {
	// 限制limit长度
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	videos, err := s.videoRepo.FindLatest(ctx, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	return videos, nil
}

// 删视频：1、确认存在 2、确认请求者就是作者 3、删库 4、删缓存（顺序不能反，先删库再删缓存）
func (s *videoService) DeleteVideo(ctx context.Context, requesterID, videoID uint64) error {
	video, err := s.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	if video.AuthorID != requesterID {
		return ErrForbidden
	}
	if err := s.videoRepo.Delete(ctx, videoID); err != nil {
		return storeErr(err)
	}
	if err := s.videoRepo.DeleteVideoCache(ctx, videoID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("删除视频缓存失败")
	}
	return nil
}

// 私有方法，发送消息到RabbitMQ：1、创建channel 2、序列化ViewMessage结构体 3、发布消息
func (s *videoService) publishViewMessage(msg ViewMessage) error {
	if s.rabbitMQConn == nil {
		return nil
	}
	// 为每一个消息建立一个单独的channel，消息之间互不影响
	ch, err := s.rabbitMQConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return ch.Publish(
		"",        // exchange默认交换机
		QueueView, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // 确保消息持久化
		})
}
