package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

// PlaylistItemView 是收藏夹里的一个位置
// 视频被删除后位置本身仍然有意义，所以用Available标记而不是直接剔除
type PlaylistItemView struct {
	Position  int        `json:"position"`
	Available bool       `json:"available"`
	Video     *VideoView `json:"video,omitempty"`
}

type PlaylistResponse struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToPlaylistResponse(playlist *model.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
	}
}

func ToPlaylistResponses(playlists []model.Playlist) []PlaylistResponse {
	responses := make([]PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		responses = append(responses, ToPlaylistResponse(&playlists[i]))
	}
	return responses
}

// PlaylistDetailView 是收藏夹详情视图：元信息+主人投影+按位置排好的视频列表
type PlaylistDetailView struct {
	ID          uint64             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
	Owner       OwnerInfo          `json:"owner"`
	Videos      []PlaylistItemView `json:"videos"`
}
