package repository

import (
	"Nova_Tube/internal/model"
	"context"

	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	FindByID(ctx context.Context, playlistID uint64) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Playlist, error)
	Update(ctx context.Context, playlistID uint64, name, description string) error
	Delete(ctx context.Context, playlistID uint64) error

	// 收藏夹内容，按Position升序
	ListItems(ctx context.Context, playlistID uint64) ([]model.PlaylistVideo, error)
	AddVideo(ctx context.Context, playlistID, videoID uint64) error
	// 移除该视频在收藏夹里的所有出现，返回受影响行数
	RemoveVideo(ctx context.Context, playlistID, videoID uint64) (int64, error)
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *playlistRepository) FindByID(ctx context.Context, playlistID uint64) (*model.Playlist, error) {
	var result model.Playlist
	err := r.db.WithContext(ctx).Preload("User").First(&result, playlistID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *playlistRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&playlists).Error
	return playlists, err
}

func (r *playlistRepository) Update(ctx context.Context, playlistID uint64, name, description string) error {
	return r.db.WithContext(ctx).Model(&model.Playlist{}).Where("id = ?", playlistID).
		Updates(map[string]interface{}{"name": name, "description": description}).Error
}

// 收藏夹和里面的条目一起删，条目物理删除
func (r *playlistRepository) Delete(ctx context.Context, playlistID uint64) error {
	if err := r.db.WithContext(ctx).Exec("DELETE FROM playlist_videos WHERE playlist_id = ?", playlistID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.Playlist{}, playlistID).Error
}

func (r *playlistRepository) ListItems(ctx context.Context, playlistID uint64) ([]model.PlaylistVideo, error) {
	var items []model.PlaylistVideo
	err := r.db.WithContext(ctx).Where("playlist_id = ?", playlistID).Order("position asc").Find(&items).Error
	return items, err
}

// 新条目排到队尾：position取当前最大值+1，一条INSERT ... SELECT搞定，避免读了再写的竞态
// (playlist_id, position)上没有唯一索引，两个并发的追加仍可能算出同一个position；
// ListItems按position排序时并列的条目相对顺序不定，但条目本身一条不丢
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uint64) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO playlist_videos (created_at, updated_at, playlist_id, position, video_id)
		 SELECT NOW(), NOW(), ?, COALESCE(MAX(position), 0) + 1, ?
		 FROM playlist_videos WHERE playlist_id = ?`,
		playlistID, videoID, playlistID,
	).Error
}

// 物理删除该视频的所有出现，剩余条目的相对顺序不变（Position允许有洞）
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uint64) (int64, error) {
	result := r.db.WithContext(ctx).Exec(
		"DELETE FROM playlist_videos WHERE playlist_id = ? AND video_id = ?",
		playlistID, videoID,
	)
	return result.RowsAffected, result.Error
}
