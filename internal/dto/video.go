package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

type VideoView struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	CoverURL    string    `json:"cover_url"`
	Duration    float64   `json:"duration"`
	Views       uint64    `json:"views"`
	Owner       OwnerInfo `json:"owner"`
}

// ToVideoView 把DB模型转换为API响应模型，并且正确利用preload返回的数据
func ToVideoView(video *model.Video) VideoView {
	view := VideoView{
		ID:          video.ID,
		CreatedAt:   video.CreatedAt,
		Title:       video.Title,
		Description: video.Description,
		VideoURL:    video.VideoURL,
		CoverURL:    video.CoverURL,
		Duration:    video.Duration,
		Views:       video.Views,
	}
	// 检查Author是否被成功preload
	if video.Author.ID != 0 {
		view.Owner = ToOwnerInfo(&video.Author)
	} else {
		// 如果没有preload，至少把作者ID带回去
		view.Owner.ID = video.AuthorID
	}
	return view
}
