package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(repos *fakeRepos) UserService {
	tokens := newTestTokenService(repos.users, time.Minute, time.Hour)
	return NewUserService(repos.users, tokens)
}

func TestRegister(t *testing.T) {
	repos := newFakeRepos()
	users := newTestUserService(repos)

	// 用户名统一转小写入库
	user, err := users.Register(context.Background(), "  Alice ", "alice@test.com", "Alice Liddell", "secret", "", "")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("用户名应转为小写: got %q", user.Username)
	}
	// 密码绝不能明文入库
	if user.Password == "secret" {
		t.Fatal("密码被明文存储了")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")); err != nil {
		t.Errorf("存储的密码哈希比对失败: %v", err)
	}

	// 重名注册
	if _, err := users.Register(context.Background(), "ALICE", "other@test.com", "Another", "secret", "", ""); !errors.Is(err, ErrConflict) {
		t.Errorf("重名注册应返回ErrConflict: got %v", err)
	}

	// 缺必填字段
	if _, err := users.Register(context.Background(), "", "x@test.com", "X", "secret", "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("空用户名应返回ErrInvalidInput: got %v", err)
	}
	if _, err := users.Register(context.Background(), "bob", "bob@test.com", "Bob", "", "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("空密码应返回ErrInvalidInput: got %v", err)
	}
}

// 邮箱和用户名一样在注册时归一成小写，登录比对才不依赖数据库collation
func TestRegisterNormalizesEmailCase(t *testing.T) {
	repos := newFakeRepos()
	users := newTestUserService(repos)

	user, err := users.Register(context.Background(), "alice", " Alice@Test.COM ", "Alice", "secret", "", "")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.Email != "alice@test.com" {
		t.Errorf("邮箱应转为小写入库: got %q", user.Email)
	}

	// 随便什么大小写的邮箱都能登录
	if _, _, err := users.Login(context.Background(), "ALICE@TEST.com", "secret"); err != nil {
		t.Errorf("大写邮箱登录失败: %v", err)
	}

	// 改资料时同样归一
	updated, err := users.UpdateAccount(context.Background(), user.ID, "Alice", "NEW@Test.Com")
	if err != nil {
		t.Fatalf("改资料失败: %v", err)
	}
	if updated.Email != "new@test.com" {
		t.Errorf("改资料后的邮箱应为小写: got %q", updated.Email)
	}
}

// 存储超时要翻译成ErrUnavailable（对外503），不能裹成ErrInternal或把原始错误漏出去
func TestStoreTimeoutMapsToUnavailable(t *testing.T) {
	repos := newFakeRepos()
	users := newTestUserService(repos)
	user, err := users.Register(context.Background(), "alice", "alice@test.com", "Alice", "secret", "", "")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 从这里开始所有存储访问都超时
	repos.users.failErr = context.DeadlineExceeded

	if _, err := users.GetProfile(context.Background(), user.ID); !errors.Is(err, ErrUnavailable) {
		t.Errorf("查资料超时应返回ErrUnavailable: got %v", err)
	}
	if _, _, err := users.Login(context.Background(), "alice", "secret"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("登录超时应返回ErrUnavailable: got %v", err)
	}
	if err := users.ChangePassword(context.Background(), user.ID, "secret", "new"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("改密码超时应返回ErrUnavailable: got %v", err)
	}

	// 统计聚合对超时同样不能吞成ErrInternal
	queries := repos.newQueryService()
	if _, err := queries.ChannelStats(context.Background(), user.ID); !errors.Is(err, ErrUnavailable) {
		t.Errorf("统计超时应返回ErrUnavailable: got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repos := newFakeRepos()
	users := newTestUserService(repos)
	if _, err := users.Register(context.Background(), "alice", "alice@test.com", "Alice", "secret", "", ""); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 用户名登录
	user, pair, err := users.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("用户名登录失败: %v", err)
	}
	if user.Username != "alice" || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Errorf("登录返回不完整: user=%v", user.Username)
	}

	// 邮箱登录
	if _, _, err := users.Login(context.Background(), "alice@test.com", "secret"); err != nil {
		t.Errorf("邮箱登录失败: %v", err)
	}

	// 密码错误和用户不存在对外是同一个错
	if _, _, err := users.Login(context.Background(), "alice", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("密码错误应返回ErrUnauthorized: got %v", err)
	}
	if _, _, err := users.Login(context.Background(), "nobody", "secret"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("用户不存在应返回ErrUnauthorized: got %v", err)
	}
}

// 重新登录会覆盖刷新令牌哈希，上一次登录的刷新令牌随之作废
func TestLoginInvalidatesPreviousRefreshToken(t *testing.T) {
	repos := newFakeRepos()
	users := newTestUserService(repos)
	if _, err := users.Register(context.Background(), "alice", "alice@test.com", "Alice", "secret", "", ""); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	_, firstPair, err := users.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("第一次登录失败: %v", err)
	}
	if _, _, err := users.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("第二次登录失败: %v", err)
	}

	if _, err := users.Refresh(context.Background(), firstPair.RefreshToken); !errors.Is(err, ErrTokenReused) {
		t.Errorf("被顶掉的刷新令牌应返回ErrTokenReused: got %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	repos := newFakeRepos()
	users := newTestUserService(repos)
	user, err := users.Register(context.Background(), "alice", "alice@test.com", "Alice", "secret", "", "")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	_, pair, err := users.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	if err := users.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("登出失败: %v", err)
	}
	if _, err := users.Refresh(context.Background(), pair.RefreshToken); err == nil {
		t.Error("登出后刷新令牌还能用")
	}
}

func TestChangePassword(t *testing.T) {
	repos := newFakeRepos()
	users := newTestUserService(repos)
	user, err := users.Register(context.Background(), "alice", "alice@test.com", "Alice", "old-secret", "", "")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 旧密码不对不许改
	if err := users.ChangePassword(context.Background(), user.ID, "wrong", "new-secret"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("旧密码错误应返回ErrUnauthorized: got %v", err)
	}

	if err := users.ChangePassword(context.Background(), user.ID, "old-secret", "new-secret"); err != nil {
		t.Fatalf("改密码失败: %v", err)
	}
	if _, _, err := users.Login(context.Background(), "alice", "new-secret"); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
	if _, _, err := users.Login(context.Background(), "alice", "old-secret"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("旧密码应已失效: got %v", err)
	}
}
