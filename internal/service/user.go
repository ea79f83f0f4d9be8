package service

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 用户服务接口：注册、登录、登出、改密码、改资料
// 登录/登出只负责业务判断，令牌的签发和吊销都委托给TokenService
type UserService interface {
	Register(ctx context.Context, username, email, fullName, password, avatar, coverURL string) (*model.User, error)
	// identifier可以是用户名或邮箱；成功返回用户和一对新令牌
	Login(ctx context.Context, identifier, password string) (*model.User, *TokenPair, error)
	Logout(ctx context.Context, userID uint64) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetProfile(ctx context.Context, userID uint64) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error
	UpdateAccount(ctx context.Context, userID uint64, fullName, email string) (*model.User, error)
}

// 用户服务包装
type userService struct {
	userRepo repository.UserRepository
	tokens   TokenService
}

// 包装函数
func NewUserService(userRepo repository.UserRepository, tokens TokenService) UserService {
	return &userService{userRepo: userRepo, tokens: tokens}
}

// 注册逻辑：1、必填字段检查 2、用户名和邮箱统一转小写 3、查重 4、密码bcrypt加密 5、入库
// 登录时identifier会被转成小写再比对，邮箱不在入库时归一就只能靠数据库collation兜底，这里不赌
// 数据库的unique索引是查重的最终防线，并发撞车时1062翻译成冲突错误
func (s *userService) Register(ctx context.Context, username, email, fullName, password, avatar, coverURL string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || strings.TrimSpace(fullName) == "" || password == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Username: username,
		Email:    email,
		FullName: fullName,
		Password: string(hashedPassword),
		Avatar:   avatar,
		CoverURL: coverURL,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if isDuplicateErr(err) {
			// 并发注册或者邮箱撞车，靠数据库兜底
			return nil, ErrConflict
		}
		return nil, storeErr(err)
	}
	return newUser, nil
}

// 登录逻辑：1、用户名/邮箱找用户 2、bcrypt比对密码 3、签发新令牌对（旧的刷新令牌随之作废）
func (s *userService) Login(ctx context.Context, identifier, password string) (*model.User, *TokenPair, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, nil, ErrInvalidInput
	}
	user, err := s.userRepo.FindByUsernameOrEmail(ctx, strings.ToLower(identifier))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 用户不存在和密码错误对外是同一个错，不给撞库的人提示
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, storeErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrUnauthorized
	}

	pair, err := s.tokens.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// 登出就是吊销：清掉刷新令牌哈希，已发出去的访问令牌到期自灭
func (s *userService) Logout(ctx context.Context, userID uint64) error {
	return s.tokens.Revoke(ctx, userID)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	return s.tokens.Rotate(ctx, refreshToken)
}

func (s *userService) GetProfile(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	return user, nil
}

// 改密码：旧密码验证通过才许改
func (s *userService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrUnauthorized
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return storeErr(s.userRepo.UpdatePassword(ctx, userID, string(hashed)))
}

func (s *userService) UpdateAccount(ctx context.Context, userID uint64, fullName, email string) (*model.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, ErrInvalidInput
	}
	if err := s.userRepo.UpdateAccount(ctx, userID, fullName, email); err != nil {
		if isDuplicateErr(err) {
			// 邮箱撞上别人的了
			return nil, ErrConflict
		}
		return nil, storeErr(err)
	}
	return s.userRepo.FindByID(ctx, userID)
}
