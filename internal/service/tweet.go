package service

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type TweetService interface {
	CreateTweet(ctx context.Context, userID uint64, content string) (*model.Tweet, error)
	GetUserTweets(ctx context.Context, userID uint64) ([]model.Tweet, error)
	UpdateTweet(ctx context.Context, requesterID, tweetID uint64, content string) (*model.Tweet, error)
	DeleteTweet(ctx context.Context, requesterID, tweetID uint64) error
}

type tweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) TweetService {
	return &tweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

func (s *tweetService) CreateTweet(ctx context.Context, userID uint64, content string) (*model.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}
	newTweet := &model.Tweet{UserID: userID, Content: content}
	if err := s.tweetRepo.Create(ctx, newTweet); err != nil {
		return nil, storeErr(err)
	}
	return s.tweetRepo.FindByID(ctx, newTweet.ID)
}

// 某用户的全部动态：先确认用户存在，再列动态，两步都查不到就是404
func (s *tweetService) GetUserTweets(ctx context.Context, userID uint64) ([]model.Tweet, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	tweets, err := s.tweetRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return tweets, nil
}

// 和评论一样：只有主人能改
func (s *tweetService) UpdateTweet(ctx context.Context, requesterID, tweetID uint64, content string) (*model.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	if tweet.UserID != requesterID {
		return nil, ErrForbidden
	}
	if err := s.tweetRepo.UpdateContent(ctx, tweetID, content); err != nil {
		return nil, storeErr(err)
	}
	return s.tweetRepo.FindByID(ctx, tweetID)
}

func (s *tweetService) DeleteTweet(ctx context.Context, requesterID, tweetID uint64) error {
	tweet, err := s.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	if tweet.UserID != requesterID {
		return ErrForbidden
	}
	return storeErr(s.tweetRepo.Delete(ctx, tweetID))
}
