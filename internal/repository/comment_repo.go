package repository

import (
	"Nova_Tube/internal/model"
	"context"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	// 分页获取视频的评论，按时间倒序
	ListByVideo(ctx context.Context, videoID uint64, offset, limit int) ([]model.Comment, error)
	UpdateContent(ctx context.Context, commentID uint64, content string) error
	Delete(ctx context.Context, commentID uint64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// 利用commentID找comment，并顺便把作者User给Preload进去
func (r *commentRepository) FindByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var result model.Comment
	err := r.db.WithContext(ctx).Preload("User").First(&result, commentID).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

// 分页获取一个视频下的评论
func (r *commentRepository) ListByVideo(ctx context.Context, videoID uint64, offset, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("User"). // 预加载评论的作者信息，一次性把作者查询出来
		Where("video_id = ?", videoID).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) UpdateContent(ctx context.Context, commentID uint64, content string) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", commentID).Update("content", content).Error
}

func (r *commentRepository) Delete(ctx context.Context, commentID uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error
}
