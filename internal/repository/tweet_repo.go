package repository

import (
	"Nova_Tube/internal/model"
	"context"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	FindByID(ctx context.Context, tweetID uint64) (*model.Tweet, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Tweet, error)
	UpdateContent(ctx context.Context, tweetID uint64, content string) error
	Delete(ctx context.Context, tweetID uint64) error
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	return r.db.WithContext(ctx).Create(tweet).Error
}

func (r *tweetRepository) FindByID(ctx context.Context, tweetID uint64) (*model.Tweet, error) {
	var result model.Tweet
	err := r.db.WithContext(ctx).Preload("User").First(&result, tweetID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// 一个用户的全部动态，新的在前
func (r *tweetRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).
		Order("created_at desc").Find(&tweets).Error
	return tweets, err
}

func (r *tweetRepository) UpdateContent(ctx context.Context, tweetID uint64, content string) error {
	return r.db.WithContext(ctx).Model(&model.Tweet{}).Where("id = ?", tweetID).Update("content", content).Error
}

func (r *tweetRepository) Delete(ctx context.Context, tweetID uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Tweet{}, tweetID).Error
}
