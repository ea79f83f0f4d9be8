package model

// WatchRecord是观看历史的一条记录，按自增ID倒序就是“最近看的在前”
// 同一个视频反复看会有多条记录，这是故意的
type WatchRecord struct {
	BaseModel
	UserID  uint64 `gorm:"not null;index"`
	VideoID uint64 `gorm:"not null"`

	Video Video `gorm:"foreignKey:VideoID"`
}

func (WatchRecord) TableName() string {
	return "watch_records"
}
