package service

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID, videoID uint64, content string) (*model.Comment, error)
	// 只有评论主人能改/删自己的评论，这条规则对所有归属实体统一执行
	UpdateComment(ctx context.Context, requesterID, commentID uint64, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, requesterID, commentID uint64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

// 创建评论：1、目标视频必须存在 2、内容去掉首尾空白后不能为空 3、入库后带User重查一遍返回
func (s *commentService) CreateComment(ctx context.Context, userID, videoID uint64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	newComment := &model.Comment{
		UserID:  userID,
		VideoID: videoID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, newComment); err != nil {
		return nil, storeErr(err)
	}
	// 创建成功后，立刻把它带着关联数据再查出来，FindByID能顺带Preload出作者
	return s.commentRepo.FindByID(ctx, newComment.ID)
}

// 改评论：1、找到评论 2、请求者必须是评论主人 3、新内容同样不能为空
func (s *commentService) UpdateComment(ctx context.Context, requesterID, commentID uint64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	if comment.UserID != requesterID {
		return nil, ErrForbidden
	}
	if err := s.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, storeErr(err)
	}
	return s.commentRepo.FindByID(ctx, commentID)
}

func (s *commentService) DeleteComment(ctx context.Context, requesterID, commentID uint64) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	if comment.UserID != requesterID {
		return ErrForbidden
	}
	return storeErr(s.commentRepo.Delete(ctx, commentID))
}
