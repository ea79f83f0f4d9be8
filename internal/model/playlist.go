package model

type Playlist struct {
	BaseModel
	UserID      uint64 `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string

	User User `gorm:"foreignKey:UserID"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo是收藏夹里的一个位置，Position显式记录顺序
// 同一个视频可以在一个收藏夹里出现多次，所以这里没有唯一索引
type PlaylistVideo struct {
	BaseModel
	PlaylistID uint64 `gorm:"not null;index"`
	Position   int    `gorm:"not null"`
	VideoID    uint64 `gorm:"not null"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
