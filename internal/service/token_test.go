package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

// 直接构造tokenService，秘钥和有效期由测试自己掌控，不碰环境变量
func newTestTokenService(users *fakeUserRepo, accessTTL, refreshTTL time.Duration) *tokenService {
	return &tokenService{
		userRepo:      users,
		accessSecret:  []byte("test-access-secret"),
		refreshSecret: []byte("test-refresh-secret"),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func TestIssuePairAndVerifyAccess(t *testing.T) {
	repos := newFakeRepos()
	user := repos.addUser(t, "alice")
	tokens := newTestTokenService(repos.users, time.Minute, time.Hour)

	pair, err := tokens.IssuePair(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("令牌对里有空令牌")
	}

	verified, err := tokens.VerifyAccess(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("访问令牌校验失败: %v", err)
	}
	if verified.ID != user.ID || verified.Username != "alice" {
		t.Errorf("校验出的用户不对: got %d/%s", verified.ID, verified.Username)
	}

	// 签发后刷新令牌哈希必须已经落到User行上
	stored := repos.users.users[user.ID]
	if stored.RefreshHash == nil || *stored.RefreshHash != hashToken(pair.RefreshToken) {
		t.Error("刷新令牌哈希没有正确写入用户记录")
	}
}

func TestVerifyAccessRejectsRefreshToken(t *testing.T) {
	repos := newFakeRepos()
	user := repos.addUser(t, "alice")
	tokens := newTestTokenService(repos.users, time.Minute, time.Hour)

	pair, err := tokens.IssuePair(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}
	// 刷新令牌验签秘钥不同，哪怕混用也必须被拒
	if _, err := tokens.VerifyAccess(context.Background(), pair.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("刷新令牌冒充访问令牌应该被拒: got %v", err)
	}
}

func TestVerifyAccessExpired(t *testing.T) {
	repos := newFakeRepos()
	user := repos.addUser(t, "alice")
	// 负的有效期，签出来的访问令牌立刻就是过期的
	tokens := newTestTokenService(repos.users, -time.Minute, time.Hour)

	pair, err := tokens.IssuePair(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}
	if _, err := tokens.VerifyAccess(context.Background(), pair.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("过期访问令牌应该被拒: got %v", err)
	}
}

func TestVerifyAccessUserGone(t *testing.T) {
	repos := newFakeRepos()
	user := repos.addUser(t, "alice")
	tokens := newTestTokenService(repos.users, time.Minute, time.Hour)

	pair, err := tokens.IssuePair(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}
	// 令牌还在有效期内，但用户已经注销
	delete(repos.users.users, user.ID)
	if _, err := tokens.VerifyAccess(context.Background(), pair.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("已注销用户的令牌应该被拒: got %v", err)
	}
}

// 轮换的核心性质：旧刷新令牌在轮换成功的那一刻作废，重放必须拿到ErrTokenReused
func TestRotateInvalidatesOldRefreshToken(t *testing.T) {
	repos := newFakeRepos()
	user := repos.addUser(t, "alice")
	tokens := newTestTokenService(repos.users, time.Minute, time.Hour)

	first, err := tokens.IssuePair(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	second, err := tokens.Rotate(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("第一次轮换失败: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("轮换后刷新令牌没有变化")
	}

	// 重放已被顶替的旧令牌
	if _, err := tokens.Rotate(context.Background(), first.RefreshToken); !errors.Is(err, ErrTokenReused) {
		t.Errorf("重放旧刷新令牌应返回ErrTokenReused: got %v", err)
	}

	// 新令牌仍然可以继续轮换
	if _, err := tokens.Rotate(context.Background(), second.RefreshToken); err != nil {
		t.Errorf("当前有效的刷新令牌轮换失败: %v", err)
	}
}

func TestRotateGarbageToken(t *testing.T) {
	repos := newFakeRepos()
	tokens := newTestTokenService(repos.users, time.Minute, time.Hour)

	if _, err := tokens.Rotate(context.Background(), "这不是一个JWT"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("乱码令牌应返回ErrUnauthorized: got %v", err)
	}
	if _, err := tokens.Rotate(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("空令牌应返回ErrUnauthorized: got %v", err)
	}
}

func TestRevokeKillsRefreshToken(t *testing.T) {
	repos := newFakeRepos()
	user := repos.addUser(t, "alice")
	tokens := newTestTokenService(repos.users, time.Minute, time.Hour)

	pair, err := tokens.IssuePair(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}
	if err := tokens.Revoke(context.Background(), user.ID); err != nil {
		t.Fatalf("吊销失败: %v", err)
	}
	// 库里的哈希被清掉，条件更新注定对不上
	if _, err := tokens.Rotate(context.Background(), pair.RefreshToken); !errors.Is(err, ErrTokenReused) {
		t.Errorf("吊销后的刷新令牌应返回ErrTokenReused: got %v", err)
	}
}
