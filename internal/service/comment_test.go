package service

import (
	"context"
	"errors"
	"testing"
)

func TestCreateComment(t *testing.T) {
	repos := newFakeRepos()
	author := repos.addUser(t, "bob")
	fan := repos.addUser(t, "alice")
	video := repos.addVideo(t, author.ID, "测试视频")
	comments := NewCommentService(repos.comments, repos.videos)

	comment, err := comments.CreateComment(context.Background(), fan.ID, video.ID, "好视频")
	if err != nil {
		t.Fatalf("发评论失败: %v", err)
	}
	// 返回的评论要带着作者投影
	if comment.User.Username != "alice" {
		t.Errorf("评论作者没被预加载: %+v", comment.User)
	}

	// 目标视频不存在
	if _, err := comments.CreateComment(context.Background(), fan.ID, 999, "好视频"); !errors.Is(err, ErrNotFound) {
		t.Errorf("对不存在的视频评论应返回ErrNotFound: got %v", err)
	}
	// 全空白内容
	if _, err := comments.CreateComment(context.Background(), fan.ID, video.ID, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("空白评论应返回ErrInvalidInput: got %v", err)
	}
}

// 归属规则：改/删只有评论主人可以，其他人一律403
func TestCommentOwnership(t *testing.T) {
	repos := newFakeRepos()
	author := repos.addUser(t, "bob")
	fan := repos.addUser(t, "alice")
	video := repos.addVideo(t, author.ID, "测试视频")
	comments := NewCommentService(repos.comments, repos.videos)

	comment, err := comments.CreateComment(context.Background(), fan.ID, video.ID, "好视频")
	if err != nil {
		t.Fatalf("发评论失败: %v", err)
	}

	// 视频作者也改不了别人的评论
	if _, err := comments.UpdateComment(context.Background(), author.ID, comment.ID, "篡改"); !errors.Is(err, ErrForbidden) {
		t.Errorf("非主人改评论应返回ErrForbidden: got %v", err)
	}
	if err := comments.DeleteComment(context.Background(), author.ID, comment.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("非主人删评论应返回ErrForbidden: got %v", err)
	}

	// 主人可以
	updated, err := comments.UpdateComment(context.Background(), fan.ID, comment.ID, "改过的评论")
	if err != nil {
		t.Fatalf("主人改评论失败: %v", err)
	}
	if updated.Content != "改过的评论" {
		t.Errorf("内容没改成功: %q", updated.Content)
	}
	if err := comments.DeleteComment(context.Background(), fan.ID, comment.ID); err != nil {
		t.Fatalf("主人删评论失败: %v", err)
	}
	if err := comments.DeleteComment(context.Background(), fan.ID, comment.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("重复删除应返回ErrNotFound: got %v", err)
	}
}
