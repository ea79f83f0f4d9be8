package dto

import (
	"Nova_Tube/internal/model"
	"time"
)

type TweetResponse struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Owner     OwnerInfo `json:"owner"`
}

func ToTweetResponse(tweet *model.Tweet) TweetResponse {
	resp := TweetResponse{
		ID:        tweet.ID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
	}
	if tweet.User.ID != 0 {
		resp.Owner = ToOwnerInfo(&tweet.User)
	} else {
		resp.Owner.ID = tweet.UserID
	}
	return resp
}

func ToTweetResponses(tweets []model.Tweet) []TweetResponse {
	// 创建一个有预估容量的切片，性能稍好
	responses := make([]TweetResponse, 0, len(tweets))
	for i := range tweets {
		responses = append(responses, ToTweetResponse(&tweets[i]))
	}
	return responses
}
