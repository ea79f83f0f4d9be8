package dto

import (
	"Nova_Tube/internal/model"
)

// OwnerInfo 是各种视图里反复出现的、简化的用户投影
// 绝不放密码和刷新令牌相关字段
type OwnerInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

func ToOwnerInfo(user *model.User) OwnerInfo {
	return OwnerInfo{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Avatar:   user.Avatar,
	}
}

// UserResponse 是注册/登录/个人页返回的完整（但安全的）用户信息
type UserResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
	CoverURL string `json:"cover_url"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Avatar:   user.Avatar,
		CoverURL: user.CoverURL,
	}
}

// ChannelProfileView 是频道主页视图：基础资料+三个衍生数字
type ChannelProfileView struct {
	ID              uint64 `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Avatar          string `json:"avatar"`
	CoverURL        string `json:"cover_url"`
	SubscriberCount uint64 `json:"subscriber_count"`
	SubscribedCount uint64 `json:"subscribed_count"`
	IsSubscribed    bool   `json:"is_subscribed"`
}

// ChannelStatsView 是创作中心的统计面板
type ChannelStatsView struct {
	TotalViews      uint64 `json:"total_views"`
	TotalVideos     uint64 `json:"total_videos"`
	SubscriberCount uint64 `json:"subscriber_count"`
	TotalLikes      uint64 `json:"total_likes"`
}
