package service

import (
	"context"
	"errors"
	"testing"
)

func TestPlaylistLifecycle(t *testing.T) {
	repos := newFakeRepos()
	owner := repos.addUser(t, "bob")
	stranger := repos.addUser(t, "alice")
	video := repos.addVideo(t, owner.ID, "测试视频")
	playlists := NewPlaylistService(repos.playlists, repos.videos)

	playlist, err := playlists.CreatePlaylist(context.Background(), owner.ID, "我的收藏", "描述")
	if err != nil {
		t.Fatalf("建收藏夹失败: %v", err)
	}
	if _, err := playlists.CreatePlaylist(context.Background(), owner.ID, "  ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("空名字应返回ErrInvalidInput: got %v", err)
	}

	// 只有主人能写
	if err := playlists.AddVideo(context.Background(), stranger.ID, playlist.ID, video.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("非主人加视频应返回ErrForbidden: got %v", err)
	}
	if err := playlists.AddVideo(context.Background(), owner.ID, playlist.ID, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("加不存在的视频应返回ErrNotFound: got %v", err)
	}

	// 同一个视频允许加两次，位置递增
	if err := playlists.AddVideo(context.Background(), owner.ID, playlist.ID, video.ID); err != nil {
		t.Fatalf("加视频失败: %v", err)
	}
	if err := playlists.AddVideo(context.Background(), owner.ID, playlist.ID, video.ID); err != nil {
		t.Fatalf("重复加视频失败: %v", err)
	}
	items, _ := repos.playlists.ListItems(context.Background(), playlist.ID)
	if len(items) != 2 || items[0].Position != 1 || items[1].Position != 2 {
		t.Fatalf("位置编号不对: %+v", items)
	}

	// 移除会清掉该视频的所有出现
	if err := playlists.RemoveVideo(context.Background(), owner.ID, playlist.ID, video.ID); err != nil {
		t.Fatalf("移除视频失败: %v", err)
	}
	items, _ = repos.playlists.ListItems(context.Background(), playlist.ID)
	if len(items) != 0 {
		t.Errorf("移除后应为空: %+v", items)
	}
	// 已经没有了，再移除是404
	if err := playlists.RemoveVideo(context.Background(), owner.ID, playlist.ID, video.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("移除不在收藏夹里的视频应返回ErrNotFound: got %v", err)
	}

	if err := playlists.DeletePlaylist(context.Background(), stranger.ID, playlist.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("非主人删收藏夹应返回ErrForbidden: got %v", err)
	}
	if err := playlists.DeletePlaylist(context.Background(), owner.ID, playlist.ID); err != nil {
		t.Fatalf("删收藏夹失败: %v", err)
	}
}

// 视频已被删除时仍要能把悬空条目从收藏夹里清掉
func TestRemoveDanglingPlaylistEntry(t *testing.T) {
	repos := newFakeRepos()
	owner := repos.addUser(t, "bob")
	video := repos.addVideo(t, owner.ID, "测试视频")
	playlists := NewPlaylistService(repos.playlists, repos.videos)

	playlist, err := playlists.CreatePlaylist(context.Background(), owner.ID, "我的收藏", "")
	if err != nil {
		t.Fatalf("建收藏夹失败: %v", err)
	}
	if err := playlists.AddVideo(context.Background(), owner.ID, playlist.ID, video.ID); err != nil {
		t.Fatalf("加视频失败: %v", err)
	}

	repos.videos.Delete(context.Background(), video.ID)

	if err := playlists.RemoveVideo(context.Background(), owner.ID, playlist.ID, video.ID); err != nil {
		t.Errorf("清理悬空条目不应报错: %v", err)
	}
}
