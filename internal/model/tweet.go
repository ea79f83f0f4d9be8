package model

// Tweet是频道主发布的短文字动态，和Comment形状一样但不挂在任何视频下
type Tweet struct {
	BaseModel
	UserID  uint64 `gorm:"not null;index"`
	Content string `gorm:"type:text;not null"`

	User User `gorm:"foreignKey:UserID"`
}

func (Tweet) TableName() string {
	return "tweets"
}
