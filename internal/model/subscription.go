package model

// Subscription是“订阅者->频道”的关系行，频道也是User
// 联合唯一索引保证同一个人对同一个频道最多订阅一次
type Subscription struct {
	BaseModel
	SubscriberID uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel"`
	ChannelID    uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel;index"`

	Subscriber User `gorm:"foreignKey:SubscriberID"`
	Channel    User `gorm:"foreignKey:ChannelID"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
