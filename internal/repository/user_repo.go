package repository

import (
	"Nova_Tube/internal/model"
	"context"

	"gorm.io/gorm"
)

// 用户仓库接口：除了增查，还负责刷新令牌哈希的读写
// SwapRefreshHash是条件更新，是令牌轮换防重放的关键（见service/token.go）
// 所有方法都接收调用方的context，请求超时会让正在执行的SQL一起被取消
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID uint64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)

	UpdateRefreshHash(ctx context.Context, userID uint64, hash *string) error
	// 只有库里的哈希还等于oldHash时才写入newHash，返回是否真的写成功
	SwapRefreshHash(ctx context.Context, userID uint64, oldHash, newHash string) (bool, error)

	UpdatePassword(ctx context.Context, userID uint64, hashedPassword string) error
	UpdateAccount(ctx context.Context, userID uint64, fullName, email string) error
}

// 数据库接口封装
type userRepository struct {
	db *gorm.DB
}

// 封装函数
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// 用户插入表
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, userID uint64) (*model.User, error) {
	var result model.User
	err := r.db.WithContext(ctx).First(&result, userID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// 根据用户名找用户，调用方负责先把用户名转成小写
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var result model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

// 登录时允许用用户名或邮箱，两列都查一遍
func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	var result model.User
	err := r.db.WithContext(ctx).Where("username = ? OR email = ?", identifier, identifier).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// 无条件覆盖刷新令牌哈希，登录和登出都走这里（登出传nil）
func (r *userRepository) UpdateRefreshHash(ctx context.Context, userID uint64, hash *string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("refresh_hash", hash).Error
}

// 比较和覆盖必须是同一条SQL：UPDATE users SET refresh_hash = new WHERE id = ? AND refresh_hash = old
// 两个并发的轮换请求只会有一个命中行，另一个RowsAffected为0，正好用来判定令牌重放
func (r *userRepository) SwapRefreshHash(ctx context.Context, userID uint64, oldHash, newHash string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND refresh_hash = ?", userID, oldHash).
		Update("refresh_hash", newHash)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uint64, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepository) UpdateAccount(ctx context.Context, userID uint64, fullName, email string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"full_name": fullName, "email": email}).Error
}
