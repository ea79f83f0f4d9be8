package service

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, userID uint64, name, description string) (*model.Playlist, error)
	GetUserPlaylists(ctx context.Context, userID uint64) ([]model.Playlist, error)
	UpdatePlaylist(ctx context.Context, requesterID, playlistID uint64, name, description string) (*model.Playlist, error)
	DeletePlaylist(ctx context.Context, requesterID, playlistID uint64) error
	// 往收藏夹队尾追加一个视频，同一个视频可以加多次
	AddVideo(ctx context.Context, requesterID, playlistID, videoID uint64) error
	// 移除该视频在收藏夹里的所有出现
	RemoveVideo(ctx context.Context, requesterID, playlistID, videoID uint64) error
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) PlaylistService {
	return &playlistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
	}
}

func (s *playlistService) CreatePlaylist(ctx context.Context, userID uint64, name, description string) (*model.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}
	playlist := &model.Playlist{
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, storeErr(err)
	}
	return playlist, nil
}

func (s *playlistService) GetUserPlaylists(ctx context.Context, userID uint64) ([]model.Playlist, error) {
	playlists, err := s.playlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return playlists, nil
}

func (s *playlistService) UpdatePlaylist(ctx context.Context, requesterID, playlistID uint64, name, description string) (*model.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput
	}
	if err := s.ownedPlaylist(ctx, requesterID, playlistID); err != nil {
		return nil, err
	}
	if err := s.playlistRepo.Update(ctx, playlistID, name, description); err != nil {
		return nil, storeErr(err)
	}
	return s.playlistRepo.FindByID(ctx, playlistID)
}

func (s *playlistService) DeletePlaylist(ctx context.Context, requesterID, playlistID uint64) error {
	if err := s.ownedPlaylist(ctx, requesterID, playlistID); err != nil {
		return err
	}
	return storeErr(s.playlistRepo.Delete(ctx, playlistID))
}

// 加视频：1、收藏夹必须是自己的 2、视频必须存在 3、追加到队尾
func (s *playlistService) AddVideo(ctx context.Context, requesterID, playlistID, videoID uint64) error {
	if err := s.ownedPlaylist(ctx, requesterID, playlistID); err != nil {
		return err
	}
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	return storeErr(s.playlistRepo.AddVideo(ctx, playlistID, videoID))
}

// 移视频：不检查视频本身还在不在——就算视频已被删除，也应该能把悬空条目从收藏夹里清掉
func (s *playlistService) RemoveVideo(ctx context.Context, requesterID, playlistID, videoID uint64) error {
	if err := s.ownedPlaylist(ctx, requesterID, playlistID); err != nil {
		return err
	}
	removed, err := s.playlistRepo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return storeErr(err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// 收藏夹归属检查，所有写操作共用
func (s *playlistService) ownedPlaylist(ctx context.Context, requesterID, playlistID uint64) error {
	playlist, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	if playlist.UserID != requesterID {
		return ErrForbidden
	}
	return nil
}
