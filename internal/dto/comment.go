package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

// CommentView 是评论列表里的一条：评论本体+作者投影+被赞数
type CommentView struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount uint64    `json:"like_count"`
	Owner     OwnerInfo `json:"owner"`
}

func ToCommentView(comment *model.Comment, likeCount uint64) CommentView {
	view := CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		LikeCount: likeCount,
	}
	// 安全地填充作者信息，没preload出来就只带ID
	if comment.User.ID != 0 {
		view.Owner = ToOwnerInfo(&comment.User)
	} else {
		view.Owner.ID = comment.UserID
	}
	return view
}
