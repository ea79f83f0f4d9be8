package repository

import (
	"Nova_Tube/internal/model"
	"context"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	// 删除返回受影响行数，0行表示本来就没订阅
	Delete(ctx context.Context, subscriberID, channelID uint64) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID uint64) (bool, error)
	CountByChannel(ctx context.Context, channelID uint64) (uint64, error)
	CountBySubscriber(ctx context.Context, subscriberID uint64) (uint64, error)
	// 频道的订阅者列表（预加载订阅者信息）
	ListSubscribers(ctx context.Context, channelID uint64) ([]model.Subscription, error)
	// 某人订阅的频道列表（预加载频道信息）
	ListChannels(ctx context.Context, subscriberID uint64) ([]model.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// 和点赞一样，靠联合唯一索引查重，1062由service层翻译
func (r *subscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// 物理删除，理由同点赞：软删除的行会占着唯一索引
func (r *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Exec(
		"DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?",
		subscriberID, channelID,
	)
	return result.RowsAffected, result.Error
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) CountByChannel(ctx context.Context, channelID uint64) (uint64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return uint64(count), err
}

func (r *subscriptionRepository) CountBySubscriber(ctx context.Context, subscriberID uint64) (uint64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return uint64(count), err
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uint64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.WithContext(ctx).Preload("Subscriber").Where("channel_id = ?", channelID).
		Order("created_at desc").Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepository) ListChannels(ctx context.Context, subscriberID uint64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.WithContext(ctx).Preload("Channel").Where("subscriber_id = ?", subscriberID).
		Order("created_at desc").Find(&subs).Error
	return subs, err
}
