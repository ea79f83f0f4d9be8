package service

import (
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair 是一次签发的“短命访问令牌+长命刷新令牌”组合
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// 令牌服务接口：签发、校验、轮换、吊销
// 访问令牌是无状态的，过期前无法单独吊销（接受这个取舍）；
// 刷新令牌的sha256哈希存在User行上，一个用户同时只有一个有效刷新令牌
type TokenService interface {
	IssuePair(ctx context.Context, userID uint64) (*TokenPair, error)
	// 校验访问令牌并把里面的用户解析出来，用户已注销则同样算未授权
	VerifyAccess(ctx context.Context, tokenString string) (*model.User, error)
	// 用刷新令牌换新的一对令牌，旧刷新令牌立刻作废；重放旧令牌返回ErrTokenReused
	Rotate(ctx context.Context, refreshToken string) (*TokenPair, error)
	// 清掉库里的刷新令牌哈希，所有在外面的刷新令牌永久失效
	Revoke(ctx context.Context, userID uint64) error
}

type tokenService struct {
	userRepo repository.UserRepository

	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// 秘钥和有效期从环境变量读，和登录逻辑解耦；两类令牌用不同的秘钥，防止互相冒充
func NewTokenService(userRepo repository.UserRepository) TokenService {
	return &tokenService{
		userRepo:      userRepo,
		accessSecret:  []byte(os.Getenv("ACCESS_TOKEN_SECRET")),
		refreshSecret: []byte(os.Getenv("REFRESH_TOKEN_SECRET")),
		accessTTL:     envDurationMinutes("ACCESS_TOKEN_TTL_MINUTES", 15),
		refreshTTL:    envDurationHours("REFRESH_TOKEN_TTL_HOURS", 168),
	}
}

// 签发一对令牌：1、确认用户还存在 2、分别签访问/刷新令牌 3、把刷新令牌哈希覆盖写到User行
// 覆盖写意味着之前发出去的所有刷新令牌都立刻作废（单会话刷新策略）
func (s *tokenService) IssuePair(ctx context.Context, userID uint64) (*TokenPair, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	pair, refreshHash, err := s.signPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRefreshHash(ctx, user.ID, &refreshHash); err != nil {
		return nil, storeErr(err)
	}
	return pair, nil
}

// 校验访问令牌：1、验签+验过期 2、拒绝刷新令牌冒充 3、确认用户还在库里
func (s *tokenService) VerifyAccess(ctx context.Context, tokenString string) (*model.User, error) {
	if tokenString == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.parseToken(tokenString, s.accessSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}
	// 刷新令牌不能当访问令牌用，哪怕它验签通过
	if claims["token_type"] != tokenTypeAccess {
		return nil, ErrUnauthorized
	}
	// jwt.MapClaims里的数字会被解析成float64，先断言再转
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, uint64(userIDFloat))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 令牌没问题但用户已经不存在了
			return nil, ErrUnauthorized
		}
		return nil, storeErr(err)
	}
	return user, nil
}

// 令牌轮换：1、验签刷新令牌 2、生成新的一对 3、一条条件UPDATE完成“比较旧哈希+写入新哈希”
// 第3步必须原子，两个并发的轮换只能有一个赢，输的那个拿到ErrTokenReused
func (s *tokenService) Rotate(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims["token_type"] != tokenTypeRefresh {
		return nil, ErrUnauthorized
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, uint64(userIDFloat))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, storeErr(err)
	}

	pair, newHash, err := s.signPair(user)
	if err != nil {
		return nil, err
	}
	// 只有库里的哈希还等于“用户现在出示的这个”，覆盖才会发生
	presentedHash := hashToken(refreshToken)
	swapped, err := s.userRepo.SwapRefreshHash(ctx, user.ID, presentedHash, newHash)
	if err != nil {
		return nil, storeErr(err)
	}
	if !swapped {
		// 出示的是已被顶替的旧刷新令牌，典型的重放/并发轮换输家
		return nil, ErrTokenReused
	}
	return pair, nil
}

func (s *tokenService) Revoke(ctx context.Context, userID uint64) error {
	return storeErr(s.userRepo.UpdateRefreshHash(ctx, userID, nil))
}

// 同时签好访问和刷新令牌，顺便算出刷新令牌的存储哈希
func (s *tokenService) signPair(user *model.User) (*TokenPair, string, error) {
	accessToken, err := s.signToken(user, tokenTypeAccess, s.accessSecret, s.accessTTL)
	if err != nil {
		return nil, "", err
	}
	refreshToken, err := s.signToken(user, tokenTypeRefresh, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return nil, "", err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, hashToken(refreshToken), nil
}

// token对象的Payload，不能将密码放在其中，Payload不加密
func (s *tokenService) signToken(user *model.User, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"username":   user.Username,
		"token_type": tokenType,
		"exp":        time.Now().Add(ttl).Unix(), // 过期时间
		"iat":        time.Now().Unix(),          // 签发时间
	}
	// token加上Header，算法信息HS256，对称加密
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	// 对token对象中的Header和Payload进行签名，用于防伪（Header.Payload.Signature）
	return token.SignedString(secret)
}

// 解析Token，jwt库会顺带校验exp；返回Payload里的claims
func (s *tokenService) parseToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// 刷新令牌入库前先过一遍sha256，轮换比较时要做精确等值匹配，所以不能用bcrypt这种带盐哈希
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func envDurationMinutes(key string, fallback int) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	return time.Duration(fallback) * time.Minute
}

func envDurationHours(key string, fallback int) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return time.Duration(v) * time.Hour
	}
	return time.Duration(fallback) * time.Hour
}
