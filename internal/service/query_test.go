package service

import (
	"Nova_Tube/internal/model"
	"context"
	"errors"
	"testing"
)

func TestChannelProfile(t *testing.T) {
	repos := newFakeRepos()
	channel := repos.addUser(t, "bob")
	fanA := repos.addUser(t, "alice")
	fanB := repos.addUser(t, "carol")
	queries := repos.newQueryService()

	// bob有两个粉丝，自己订了alice
	repos.subs.Create(context.Background(), &model.Subscription{SubscriberID: fanA.ID, ChannelID: channel.ID})
	repos.subs.Create(context.Background(), &model.Subscription{SubscriberID: fanB.ID, ChannelID: channel.ID})
	repos.subs.Create(context.Background(), &model.Subscription{SubscriberID: channel.ID, ChannelID: fanA.ID})

	// 匿名浏览
	profile, err := queries.ChannelProfile(context.Background(), "bob", 0)
	if err != nil {
		t.Fatalf("查频道主页失败: %v", err)
	}
	if profile.SubscriberCount != 2 || profile.SubscribedCount != 1 {
		t.Errorf("订阅统计不对: subscribers=%d subscribed=%d", profile.SubscriberCount, profile.SubscribedCount)
	}
	if profile.IsSubscribed {
		t.Error("匿名浏览者IsSubscribed应恒为false")
	}

	// 用户名大小写和首尾空白都要能容忍
	profile, err = queries.ChannelProfile(context.Background(), "  Bob ", fanA.ID)
	if err != nil {
		t.Fatalf("带空白/大写的用户名查询失败: %v", err)
	}
	if !profile.IsSubscribed {
		t.Error("fanA已订阅bob，IsSubscribed应为true")
	}

	if _, err := queries.ChannelProfile(context.Background(), "nobody", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("不存在的频道应返回ErrNotFound: got %v", err)
	}
}

// 观看历史：最近看的在前；已删除的视频整条剔除，不能留空洞
func TestWatchHistory(t *testing.T) {
	repos := newFakeRepos()
	user := repos.addUser(t, "alice")
	author := repos.addUser(t, "bob")
	v1 := repos.addVideo(t, author.ID, "第一个")
	v2 := repos.addVideo(t, author.ID, "第二个")
	v3 := repos.addVideo(t, author.ID, "第三个")
	queries := repos.newQueryService()
	watch := repos.watchRepo()

	watch.Append(context.Background(), &model.WatchRecord{UserID: user.ID, VideoID: v1.ID})
	watch.Append(context.Background(), &model.WatchRecord{UserID: user.ID, VideoID: v2.ID})
	watch.Append(context.Background(), &model.WatchRecord{UserID: user.ID, VideoID: v3.ID})

	// v2被删掉，历史里应只剩v3、v1
	repos.videos.Delete(context.Background(), v2.ID)

	views, err := queries.WatchHistory(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("查观看历史失败: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("历史应剩2条: got %d", len(views))
	}
	if views[0].ID != v3.ID || views[1].ID != v1.ID {
		t.Errorf("顺序应是最近在前且跳过已删: got [%d %d]", views[0].ID, views[1].ID)
	}
	if views[0].Owner.Username != "bob" {
		t.Errorf("作者投影没带出来: %+v", views[0].Owner)
	}
}

// 点过赞的视频：顺序跟着点赞先后走，悬空的安静剔除
func TestLikedVideos(t *testing.T) {
	repos := newFakeRepos()
	user := repos.addUser(t, "alice")
	author := repos.addUser(t, "bob")
	v1 := repos.addVideo(t, author.ID, "第一个")
	v2 := repos.addVideo(t, author.ID, "第二个")
	v3 := repos.addVideo(t, author.ID, "第三个")
	queries := repos.newQueryService()

	// 按v2、v1、v3的顺序点赞
	for _, id := range []uint64{v2.ID, v1.ID, v3.ID} {
		repos.likes.Create(context.Background(), &model.Like{UserID: user.ID, TargetKind: model.TargetVideo, TargetID: id})
	}
	// 给评论的赞不应该混进来
	comment := repos.addComment(t, v1.ID, author.ID, "评论")
	repos.likes.Create(context.Background(), &model.Like{UserID: user.ID, TargetKind: model.TargetComment, TargetID: comment.ID})

	repos.videos.Delete(context.Background(), v1.ID)

	views, err := queries.LikedVideos(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("查点赞视频失败: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("应剩2条: got %d", len(views))
	}
	if views[0].ID != v2.ID || views[1].ID != v3.ID {
		t.Errorf("顺序应按点赞先后且跳过已删: got [%d %d]", views[0].ID, views[1].ID)
	}
}

// 收藏夹：顺序和重复条目保真；已删视频用占位条目留住位置
func TestPlaylistDetail(t *testing.T) {
	repos := newFakeRepos()
	owner := repos.addUser(t, "bob")
	v1 := repos.addVideo(t, owner.ID, "第一个")
	v2 := repos.addVideo(t, owner.ID, "第二个")
	queries := repos.newQueryService()

	playlist := &model.Playlist{UserID: owner.ID, Name: "收藏"}
	repos.playlists.Create(context.Background(), playlist)
	// v1加两次，中间夹一个v2
	repos.playlists.AddVideo(context.Background(), playlist.ID, v1.ID)
	repos.playlists.AddVideo(context.Background(), playlist.ID, v2.ID)
	repos.playlists.AddVideo(context.Background(), playlist.ID, v1.ID)

	repos.videos.Delete(context.Background(), v2.ID)

	view, err := queries.PlaylistDetail(context.Background(), playlist.ID)
	if err != nil {
		t.Fatalf("查收藏夹详情失败: %v", err)
	}
	if view.Owner.Username != "bob" {
		t.Errorf("主人投影不对: %+v", view.Owner)
	}
	if len(view.Videos) != 3 {
		t.Fatalf("应有3个条目(含占位): got %d", len(view.Videos))
	}
	// 位置1和3都是v1，位置2是已删除的占位
	if !view.Videos[0].Available || view.Videos[0].Video.ID != v1.ID {
		t.Errorf("位置1应是可用的v1: %+v", view.Videos[0])
	}
	if view.Videos[1].Available || view.Videos[1].Video != nil {
		t.Errorf("位置2应是占位条目: %+v", view.Videos[1])
	}
	if !view.Videos[2].Available || view.Videos[2].Video.ID != v1.ID {
		t.Errorf("位置3应是可用的v1(重复条目要保留): %+v", view.Videos[2])
	}

	if _, err := queries.PlaylistDetail(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("不存在的收藏夹应返回ErrNotFound: got %v", err)
	}
}

func TestVideoComments(t *testing.T) {
	repos := newFakeRepos()
	author := repos.addUser(t, "bob")
	fan := repos.addUser(t, "alice")
	video := repos.addVideo(t, author.ID, "测试视频")
	queries := repos.newQueryService()

	var last *model.Comment
	for i := 0; i < 12; i++ {
		last = repos.addComment(t, video.ID, fan.ID, "评论")
	}
	// 只有最新的那条评论有两个赞
	repos.likes.Create(context.Background(), &model.Like{UserID: author.ID, TargetKind: model.TargetComment, TargetID: last.ID})
	repos.likes.Create(context.Background(), &model.Like{UserID: fan.ID, TargetKind: model.TargetComment, TargetID: last.ID})

	// 非法分页参数回落到1/10
	views, err := queries.VideoComments(context.Background(), video.ID, 0, -5)
	if err != nil {
		t.Fatalf("查评论失败: %v", err)
	}
	if len(views) != 10 {
		t.Fatalf("默认页大小应为10: got %d", len(views))
	}
	// 时间倒序，第一条就是最新的last
	if views[0].ID != last.ID {
		t.Errorf("第一条应是最新评论: got %d want %d", views[0].ID, last.ID)
	}
	if views[0].LikeCount != 2 {
		t.Errorf("最新评论的被赞数应为2: got %d", views[0].LikeCount)
	}
	if views[1].LikeCount != 0 {
		t.Errorf("没被赞过的评论被赞数应为0: got %d", views[1].LikeCount)
	}
	if views[0].Owner.Username != "alice" {
		t.Errorf("评论作者投影不对: %+v", views[0].Owner)
	}

	// 第二页剩2条
	views, err = queries.VideoComments(context.Background(), video.ID, 2, 10)
	if err != nil {
		t.Fatalf("查第二页失败: %v", err)
	}
	if len(views) != 2 {
		t.Errorf("第二页应有2条: got %d", len(views))
	}

	if _, err := queries.VideoComments(context.Background(), 999, 1, 10); !errors.Is(err, ErrNotFound) {
		t.Errorf("不存在的视频应返回ErrNotFound: got %v", err)
	}
}

func TestChannelStats(t *testing.T) {
	repos := newFakeRepos()
	author := repos.addUser(t, "bob")
	fan := repos.addUser(t, "alice")
	queries := repos.newQueryService()

	v1 := repos.addVideo(t, author.ID, "第一个")
	v2 := repos.addVideo(t, author.ID, "第二个")
	repos.videos.videos[v1.ID].Views = 100
	repos.videos.videos[v2.ID].Views = 50
	// 别人的视频不能算进bob的统计
	other := repos.addUser(t, "carol")
	repos.addVideo(t, other.ID, "无关视频")

	repos.subs.Create(context.Background(), &model.Subscription{SubscriberID: fan.ID, ChannelID: author.ID})

	comment := repos.addComment(t, v1.ID, fan.ID, "评论")
	repos.likes.Create(context.Background(), &model.Like{UserID: fan.ID, TargetKind: model.TargetVideo, TargetID: v1.ID})
	repos.likes.Create(context.Background(), &model.Like{UserID: other.ID, TargetKind: model.TargetVideo, TargetID: v2.ID})
	repos.likes.Create(context.Background(), &model.Like{UserID: author.ID, TargetKind: model.TargetComment, TargetID: comment.ID})

	stats, err := queries.ChannelStats(context.Background(), author.ID)
	if err != nil {
		t.Fatalf("查统计失败: %v", err)
	}
	if stats.TotalViews != 150 {
		t.Errorf("总播放量应为150: got %d", stats.TotalViews)
	}
	if stats.TotalVideos != 2 {
		t.Errorf("视频数应为2: got %d", stats.TotalVideos)
	}
	if stats.SubscriberCount != 1 {
		t.Errorf("订阅数应为1: got %d", stats.SubscriberCount)
	}
	// 视频赞2个+自己视频下评论的赞1个
	if stats.TotalLikes != 3 {
		t.Errorf("总获赞应为3: got %d", stats.TotalLikes)
	}

	if _, err := queries.ChannelStats(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("不存在的用户应返回ErrNotFound: got %v", err)
	}
}

// 软删除的视频/评论还躺在表里，但它们带来的赞必须和播放量/视频数一样同步退出统计
func TestChannelStatsExcludesDeletedTargets(t *testing.T) {
	repos := newFakeRepos()
	author := repos.addUser(t, "bob")
	fan := repos.addUser(t, "alice")
	queries := repos.newQueryService()

	kept := repos.addVideo(t, author.ID, "留下的")
	doomed := repos.addVideo(t, author.ID, "要删的")
	comment := repos.addComment(t, kept.ID, fan.ID, "评论")

	repos.likes.Create(context.Background(), &model.Like{UserID: fan.ID, TargetKind: model.TargetVideo, TargetID: kept.ID})
	repos.likes.Create(context.Background(), &model.Like{UserID: fan.ID, TargetKind: model.TargetVideo, TargetID: doomed.ID})
	repos.likes.Create(context.Background(), &model.Like{UserID: author.ID, TargetKind: model.TargetComment, TargetID: comment.ID})

	stats, err := queries.ChannelStats(context.Background(), author.ID)
	if err != nil {
		t.Fatalf("查统计失败: %v", err)
	}
	if stats.TotalLikes != 3 {
		t.Fatalf("删除前总获赞应为3: got %d", stats.TotalLikes)
	}

	// 软删一个视频和那条评论，点赞行原封不动留在表里
	repos.videos.Delete(context.Background(), doomed.ID)
	repos.comments.Delete(context.Background(), comment.ID)

	stats, err = queries.ChannelStats(context.Background(), author.ID)
	if err != nil {
		t.Fatalf("查统计失败: %v", err)
	}
	if stats.TotalLikes != 1 {
		t.Errorf("已删目标上的赞不应计入: got %d want 1", stats.TotalLikes)
	}
	if stats.TotalVideos != 1 {
		t.Errorf("视频数应同步变为1: got %d", stats.TotalVideos)
	}
}

// 从未发过视频、没人订阅的新用户，统计应全是零而不是报错
func TestChannelStatsEmptyChannel(t *testing.T) {
	repos := newFakeRepos()
	user := repos.addUser(t, "alice")
	queries := repos.newQueryService()

	stats, err := queries.ChannelStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("空频道统计失败: %v", err)
	}
	if stats.TotalViews != 0 || stats.TotalVideos != 0 || stats.SubscriberCount != 0 || stats.TotalLikes != 0 {
		t.Errorf("空频道统计应全零: %+v", stats)
	}
}
