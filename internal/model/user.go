package model

// User既是普通用户，也是别人可以订阅的“频道”，两种身份共用一张表
// Username入库前统一转小写，配合unique索引保证大小写不敏感的唯一性
type User struct {
	BaseModel
	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"` // bcrypt哈希，绝不存明文
	FullName string `gorm:"not null"`
	Avatar   string
	CoverURL string

	// 当前有效的刷新令牌的sha256哈希，一个用户同一时刻只有一个有效刷新令牌
	// 指针的零值是nil，用来区分“从未登录/已登出”和“空字符串”
	RefreshHash *string
}
