package service

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"Nova_Tube/pkg/logger"
	"context"
	"errors"

	"gorm.io/gorm"
)

// 开关式关系服务：关系存在就删掉，不存在就建立，点赞和订阅都是这一个模式
// 返回值created=true表示这次调用建立了关系，false表示这次调用删除了关系
type ToggleService interface {
	ToggleLike(ctx context.Context, userID uint64, target model.LikeTarget) (created bool, err error)
	ToggleSubscription(ctx context.Context, subscriberID, channelID uint64) (created bool, err error)
}

type toggleService struct {
	likeRepo    repository.LikeRepository
	subRepo     repository.SubscriptionRepository
	userRepo    repository.UserRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewToggleService(
	likeRepo repository.LikeRepository,
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
) ToggleService {
	return &toggleService{
		likeRepo:    likeRepo,
		subRepo:     subRepo,
		userRepo:    userRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// 点赞开关：1、确认目标存在（三种目标统一都查，不搞特例）2、先删，删到了就是“取消赞”
// 3、没删到就插入，插入撞上1062说明并发的同伴刚建好这条关系，那本次调用就把它翻回去
// “先查存在再插入”在并发下会插出两条重复行，这里靠唯一索引+冲突处理，而不是靠应用层加锁
func (s *toggleService) ToggleLike(ctx context.Context, userID uint64, target model.LikeTarget) (bool, error) {
	if err := s.checkTargetExists(ctx, target); err != nil {
		return false, err
	}

	deleted, err := s.likeRepo.Delete(ctx, userID, target)
	if err != nil {
		return false, storeErr(err)
	}
	if deleted > 0 {
		return false, nil
	}

	like := &model.Like{UserID: userID, TargetKind: target.Kind, TargetID: target.ID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		if isDuplicateErr(err) {
			// 两个相同的toggle几乎同时到达：对方赢了“创建”，这一个就执行“删除”
			// 这样两次调用合起来仍然是一次完整的“点赞又取消”，且表里绝不会有重复行
			logger.Log.WithField("user_id", userID).WithField("target_id", target.ID).
				Warn("点赞并发冲突，本次调用转为取消")
			if _, derr := s.likeRepo.Delete(ctx, userID, target); derr != nil {
				return false, storeErr(derr)
			}
			return false, nil
		}
		return false, storeErr(err)
	}
	return true, nil
}

// 订阅开关：目标频道也是User，确认它存在后和点赞走一样的删/插/1062流程
// 自己订阅自己这里不拦，要不要禁止是产品层面的决定，不该由这个通用组件拍板
func (s *toggleService) ToggleSubscription(ctx context.Context, subscriberID, channelID uint64) (bool, error) {
	if _, err := s.userRepo.FindByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, storeErr(err)
	}

	deleted, err := s.subRepo.Delete(ctx, subscriberID, channelID)
	if err != nil {
		return false, storeErr(err)
	}
	if deleted > 0 {
		return false, nil
	}

	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		if isDuplicateErr(err) {
			logger.Log.WithField("subscriber_id", subscriberID).WithField("channel_id", channelID).
				Warn("订阅并发冲突，本次调用转为退订")
			if _, derr := s.subRepo.Delete(ctx, subscriberID, channelID); derr != nil {
				return false, storeErr(derr)
			}
			return false, nil
		}
		return false, storeErr(err)
	}
	return true, nil
}

// 三种点赞目标统一的存在性检查
// 原始逻辑里tweet是不查的，这里抹平这个不一致：查不到一律ErrNotFound
func (s *toggleService) checkTargetExists(ctx context.Context, target model.LikeTarget) error {
	var err error
	switch target.Kind {
	case model.TargetVideo:
		_, err = s.videoRepo.FindByID(ctx, target.ID)
	case model.TargetComment:
		_, err = s.commentRepo.FindByID(ctx, target.ID)
	case model.TargetTweet:
		_, err = s.tweetRepo.FindByID(ctx, target.ID)
	default:
		return ErrInvalidInput
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	return nil
}
