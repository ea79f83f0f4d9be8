package repository

import (
	"Nova_Tube/internal/model"
	"context"

	"gorm.io/gorm"
)

type WatchRepository interface {
	Append(ctx context.Context, record *model.WatchRecord) error
	// 某用户的观看历史，最近看的在前（按自增ID倒序）
	ListByUser(ctx context.Context, userID uint64) ([]model.WatchRecord, error)

	WithTx(tx *gorm.DB) WatchRepository
}

type watchRepository struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) WatchRepository {
	return &watchRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 watchRepository 实例
func (r *watchRepository) WithTx(tx *gorm.DB) WatchRepository {
	return &watchRepository{db: tx}
}

func (r *watchRepository) Append(ctx context.Context, record *model.WatchRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Preload("Video.Author")一次把视频和视频作者都带出来
// 视频如果已被删除，Video会保持零值，由service层负责剔除
func (r *watchRepository) ListByUser(ctx context.Context, userID uint64) ([]model.WatchRecord, error) {
	var records []model.WatchRecord
	err := r.db.WithContext(ctx).Preload("Video.Author").Where("user_id = ?", userID).
		Order("id desc").Find(&records).Error
	return records, err
}
