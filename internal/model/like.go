package model

// TargetKind 标记一条点赞指向的目标类型，一条Like有且只有一个目标
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
)

// LikeTarget 是“目标类型+目标ID”的组合，业务层统一用它来描述点赞目标，
// 避免搞出三个可空外键字段那种靠约定维持的结构
type LikeTarget struct {
	Kind TargetKind
	ID   uint64
}

// 用户与目标的点赞关系，uniqueIndex利用的是MySQL数据库的“自动查重”能力，而不是gorm的
// 联合唯一索引保证一个用户对同一个目标最多只有一条点赞记录，并发下由数据库兜底
type Like struct {
	BaseModel
	UserID     uint64     `gorm:"not null;uniqueIndex:idx_user_target"`
	TargetKind TargetKind `gorm:"size:16;not null;uniqueIndex:idx_user_target"`
	TargetID   uint64     `gorm:"not null;uniqueIndex:idx_user_target"`
}

// 想精确控制表名，或表名不符合GORM的复数规则，就必须实现TableName()方法规定表名
func (Like) TableName() string {
	return "likes"
}

// Target 把存储用的两列还原成业务层的组合值
func (l Like) Target() LikeTarget {
	return LikeTarget{Kind: l.TargetKind, ID: l.TargetID}
}
