package repository

import (
	"Nova_Tube/internal/model"
	"context"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(ctx context.Context, like *model.Like) error
	// 删除返回受影响行数，0行表示本来就没有这条关系
	Delete(ctx context.Context, userID uint64, target model.LikeTarget) (int64, error)
	// 某用户对某一类目标的全部点赞，按点赞先后排序
	ListByUserAndKind(ctx context.Context, userID uint64, kind model.TargetKind) ([]model.Like, error)
	// 一批目标各自的被赞数，没被赞过的目标不会出现在map里
	CountByTargets(ctx context.Context, kind model.TargetKind, targetIDs []uint64) (map[uint64]uint64, error)
	// 某作者全部视频收到的点赞总数
	CountVideoLikesByAuthor(ctx context.Context, authorID uint64) (uint64, error)
	// 某作者全部视频下的评论收到的点赞总数
	CountCommentLikesByAuthor(ctx context.Context, authorID uint64) (uint64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// 靠联合唯一索引查重，并发下重复插入会返回MySQL的1062错误，由service层翻译
func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// 点赞关系必须物理删除，软删除的行还占着唯一索引，会让用户再也点不了赞
func (r *likeRepository) Delete(ctx context.Context, userID uint64, target model.LikeTarget) (int64, error) {
	result := r.db.WithContext(ctx).Exec(
		"DELETE FROM likes WHERE user_id = ? AND target_kind = ? AND target_id = ?",
		userID, target.Kind, target.ID,
	)
	return result.RowsAffected, result.Error
}

func (r *likeRepository) ListByUserAndKind(ctx context.Context, userID uint64, kind model.TargetKind) ([]model.Like, error) {
	var likes []model.Like
	err := r.db.WithContext(ctx).Where("user_id = ? AND target_kind = ?", userID, kind).
		Order("id asc").Find(&likes).Error
	return likes, err
}

// GROUP BY一次拿到一批目标的被赞数，避免循环里发N条COUNT
func (r *likeRepository) CountByTargets(ctx context.Context, kind model.TargetKind, targetIDs []uint64) (map[uint64]uint64, error) {
	counts := make(map[uint64]uint64)
	if len(targetIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		TargetID uint64
		Total    uint64
	}
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Select("target_id, COUNT(*) as total").
		Where("target_kind = ? AND target_id IN (?)", kind, targetIDs).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Total
	}
	return counts, nil
}

// 点赞表里只有目标ID，作者归属要JOIN视频表才知道
// JOIN不走gorm的默认作用域，软删除过滤要自己写进条件里，否则已删视频的赞还会被算进统计
func (r *likeRepository) CountVideoLikesByAuthor(ctx context.Context, authorID uint64) (uint64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id").
		Where("likes.target_kind = ? AND videos.author_id = ? AND videos.deleted_at IS NULL",
			model.TargetVideo, authorID).
		Count(&count).Error
	return uint64(count), err
}

// 两跳JOIN：点赞->评论->评论所在的视频，统计“我视频下的评论”收到的赞
// 两张被JOIN的表都要手工排掉软删除的行
func (r *likeRepository) CountCommentLikesByAuthor(ctx context.Context, authorID uint64) (uint64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Joins("JOIN comments ON comments.id = likes.target_id").
		Joins("JOIN videos ON videos.id = comments.video_id").
		Where("likes.target_kind = ? AND videos.author_id = ? AND comments.deleted_at IS NULL AND videos.deleted_at IS NULL",
			model.TargetComment, authorID).
		Count(&count).Error
	return uint64(count), err
}
