package service

import (
	"context"
	"errors"
	"testing"
)

func TestGetVideoByIDCaches(t *testing.T) {
	repos := newFakeRepos()
	author := repos.addUser(t, "bob")
	video := repos.addVideo(t, author.ID, "测试视频")
	// MQ传nil：测试里不关心观看事件投递
	videos := NewVideoService(repos.videos, nil)

	got, err := videos.GetVideoByID(context.Background(), video.ID, 0)
	if err != nil {
		t.Fatalf("查视频失败: %v", err)
	}
	if got.Title != "测试视频" {
		t.Errorf("标题不对: %q", got.Title)
	}
	// 回源之后必须写了缓存
	if _, ok := repos.videos.cache[video.ID]; !ok {
		t.Error("回源后没有写缓存")
	}

	// 第二次直接命中缓存：就算库里的被删了也能读到
	repos.videos.Delete(context.Background(), video.ID)
	if _, err := videos.GetVideoByID(context.Background(), video.ID, 0); err != nil {
		t.Errorf("缓存命中路径失败: %v", err)
	}

	if _, err := videos.GetVideoByID(context.Background(), 999, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("不存在的视频应返回ErrNotFound: got %v", err)
	}
}

func TestDeleteVideoOwnership(t *testing.T) {
	repos := newFakeRepos()
	author := repos.addUser(t, "bob")
	stranger := repos.addUser(t, "alice")
	video := repos.addVideo(t, author.ID, "测试视频")
	videos := NewVideoService(repos.videos, nil)

	// 先读一次把缓存灌上
	if _, err := videos.GetVideoByID(context.Background(), video.ID, 0); err != nil {
		t.Fatalf("查视频失败: %v", err)
	}

	if err := videos.DeleteVideo(context.Background(), stranger.ID, video.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("非作者删视频应返回ErrForbidden: got %v", err)
	}
	if err := videos.DeleteVideo(context.Background(), author.ID, video.ID); err != nil {
		t.Fatalf("作者删视频失败: %v", err)
	}
	// 库和缓存都要清掉，不能留“幽灵视频”
	if !repos.videos.deleted[video.ID] {
		t.Error("视频没有被标记删除")
	}
	if _, ok := repos.videos.cache[video.ID]; ok {
		t.Error("视频缓存没有被清掉")
	}
	if err := videos.DeleteVideo(context.Background(), author.ID, video.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("重复删除应返回ErrNotFound: got %v", err)
	}
}

func TestCreateVideoAndFeed(t *testing.T) {
	repos := newFakeRepos()
	author := repos.addUser(t, "bob")
	videos := NewVideoService(repos.videos, nil)

	if _, err := videos.CreateVideo(context.Background(), author.ID, "  ", "", "https://t/v.mp4", "https://t/c.jpg", 10); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("空标题应返回ErrInvalidInput: got %v", err)
	}

	created, err := videos.CreateVideo(context.Background(), author.ID, "新视频", "描述", "https://t/v.mp4", "https://t/c.jpg", 10)
	if err != nil {
		t.Fatalf("发布视频失败: %v", err)
	}
	if !created.IsPublished {
		t.Error("新视频应默认是已发布状态")
	}

	feed, err := videos.GetFeed(context.Background(), 20)
	if err != nil {
		t.Fatalf("查Feed失败: %v", err)
	}
	if len(feed) != 1 || feed[0].ID != created.ID {
		t.Errorf("Feed内容不对: %+v", feed)
	}
}
