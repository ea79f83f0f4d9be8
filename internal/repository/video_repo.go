package repository

import (
	"Nova_Tube/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, videoID uint64) (*model.Video, error)
	// 批量查找，预加载作者，用于各种拼装视图的二跳查询
	FindByIDs(ctx context.Context, videoIDs []uint64) ([]model.Video, error)
	FindLatest(ctx context.Context, limit uint64) ([]model.Video, error)
	FindByAuthor(ctx context.Context, authorID uint64) ([]model.Video, error)
	Delete(ctx context.Context, videoID uint64) error

	IncrementViews(ctx context.Context, videoID uint64) error
	SumViewsByAuthor(ctx context.Context, authorID uint64) (uint64, error)
	CountByAuthor(ctx context.Context, authorID uint64) (uint64, error)

	GetVideoCache(ctx context.Context, videoID uint64) (*model.Video, error)
	SetVideoCache(ctx context.Context, video *model.Video) error
	DeleteVideoCache(ctx context.Context, videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 返回一个新的、使用事务的 videoRepository 实例
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{
		db:  tx,
		rdb: r.rdb,
	}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

// 利用videoID找视频，preload其中的Author结构；缓存由service层统一管理
func (r *videoRepository) FindByID(ctx context.Context, videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.WithContext(ctx).Preload("Author").First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// 一批ID一次查出来，软删除的视频自然会被gorm过滤掉，调用方按“没查到=目标已不存在”处理
func (r *videoRepository) FindByIDs(ctx context.Context, videoIDs []uint64) ([]model.Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.WithContext(ctx).Preload("Author").Where("id IN (?)", videoIDs).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// 按时间倒序查询最新的视频列表
func (r *videoRepository) FindLatest(ctx context.Context, limit uint64) ([]model.Video, error) {
	var videos []model.Video
	// Preload("Author")在查询视频的同时，预加载关联的作者信息,时间倒序,限制数量
	err := r.db.WithContext(ctx).Preload("Author").Where("is_published = ?", true).
		Order("created_at desc").Limit(int(limit)).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) FindByAuthor(ctx context.Context, authorID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.WithContext(ctx).Preload("Author").Where("author_id = ?", authorID).
		Order("created_at desc").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) Delete(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Video{}, videoID).Error
}

// 原子更新：UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?
func (r *videoRepository) IncrementViews(ctx context.Context, videoID uint64) error {
	return r.db.WithContext(ctx).Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// 汇总一个作者所有视频的播放量，COALESCE兜底空结果
func (r *videoRepository) SumViewsByAuthor(ctx context.Context, authorID uint64) (uint64, error) {
	var total uint64
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("author_id = ?", authorID).
		Select("COALESCE(SUM(views), 0)").Scan(&total).Error
	return total, err
}

func (r *videoRepository) CountByAuthor(ctx context.Context, authorID uint64) (uint64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("author_id = ?", authorID).Count(&count).Error
	return uint64(count), err
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// 从Redis缓存中获取单个Video信息：1、利用VideoID组装key 2、拿key去rdb中寻找videoJSON 3、利用json.Unmarshal将拿到的videoJSON反序列化
func (r *videoRepository) GetVideoCache(ctx context.Context, videoID uint64) (*model.Video, error) {
	key := r.keyVideoInfo(videoID)
	// 使用GET命令获取存储在rdb里的JSON字符串
	videoJSON, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // 如果缓存不存在，但是Redis正常工作
	} else if err != nil {
		return nil, err // Redis本身出错了
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err // JSON反序列化失败
	}
	return &video, nil
}

// 将单个视频信息存入Redis缓存：1、拼key 2、序列化 3、带随机抖动的过期时间防止缓存雪崩 4、SET
func (r *videoRepository) SetVideoCache(ctx context.Context, video *model.Video) error {
	key := r.keyVideoInfo(video.ID)
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err // JSON序列化失败
	}
	// 设置过期时间，再加上随机性防止缓存雪崩
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(ctx, key, videoJSON, expiration).Err()
}

// 删视频之后必须把缓存一并清掉，否则读路径还能读到“幽灵视频”
func (r *videoRepository) DeleteVideoCache(ctx context.Context, videoID uint64) error {
	return r.rdb.Del(ctx, r.keyVideoInfo(videoID)).Err()
}
