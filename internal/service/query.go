package service

import (
	"Nova_Tube/internal/dto"
	"Nova_Tube/internal/model"
	"Nova_Tube/internal/repository"
	"Nova_Tube/pkg/logger"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// 视图查询服务：把归一化存储的各张表JOIN/聚合成展示用的反范式视图
// 全部只读、每次现算，不写任何东西，所以可以和开关/写入并发跑
// 悬空引用（比如点赞指向的已删视频）按视图各自的策略处理，不是错误
type QueryService interface {
	// 频道主页：资料+订阅数+订阅了多少人+“当前浏览者是否已订阅”（viewerID为0表示匿名）
	ChannelProfile(ctx context.Context, username string, viewerID uint64) (*dto.ChannelProfileView, error)
	// 观看历史：最近看的在前，已删除的视频直接剔除
	WatchHistory(ctx context.Context, userID uint64) ([]dto.VideoView, error)
	// 点过赞的视频：按点赞先后排序，已删除的视频直接剔除
	LikedVideos(ctx context.Context, userID uint64) ([]dto.VideoView, error)
	// 收藏夹详情：顺序和重复都要保真，已删除的视频用占位条目表示
	PlaylistDetail(ctx context.Context, playlistID uint64) (*dto.PlaylistDetailView, error)
	// 视频评论：分页，带作者投影和每条评论的被赞数
	VideoComments(ctx context.Context, videoID uint64, page, pageSize int) ([]dto.CommentView, error)
	// 创作中心统计：任何一项子聚合失败则整个失败，绝不返回残缺的数字
	ChannelStats(ctx context.Context, userID uint64) (*dto.ChannelStatsView, error)
}

type queryService struct {
	userRepo     repository.UserRepository
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	subRepo      repository.SubscriptionRepository
	playlistRepo repository.PlaylistRepository
	watchRepo    repository.WatchRepository
}

func NewQueryService(
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
	subRepo repository.SubscriptionRepository,
	playlistRepo repository.PlaylistRepository,
	watchRepo repository.WatchRepository,
) QueryService {
	return &queryService{
		userRepo:     userRepo,
		videoRepo:    videoRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		subRepo:      subRepo,
		playlistRepo: playlistRepo,
		watchRepo:    watchRepo,
	}
}

// 频道主页：1、用户名统一小写后查User 2、三个衍生量分别COUNT 3、匿名浏览者IsSubscribed恒为false
func (s *queryService) ChannelProfile(ctx context.Context, username string, viewerID uint64) (*dto.ChannelProfileView, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	subscriberCount, err := s.subRepo.CountByChannel(ctx, user.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	subscribedCount, err := s.subRepo.CountBySubscriber(ctx, user.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	isSubscribed := false
	if viewerID != 0 {
		isSubscribed, err = s.subRepo.Exists(ctx, viewerID, user.ID)
		if err != nil {
			return nil, storeErr(err)
		}
	}

	return &dto.ChannelProfileView{
		ID:              user.ID,
		Username:        user.Username,
		FullName:        user.FullName,
		Avatar:          user.Avatar,
		CoverURL:        user.CoverURL,
		SubscriberCount: subscriberCount,
		SubscribedCount: subscribedCount,
		IsSubscribed:    isSubscribed,
	}, nil
}

// 观看历史：记录本身按ID倒序就是“最近在前”，Preload出来Video是零值说明视频已删，跳过
func (s *queryService) WatchHistory(ctx context.Context, userID uint64) ([]dto.VideoView, error) {
	records, err := s.watchRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	views := make([]dto.VideoView, 0, len(records))
	for i := range records {
		if records[i].Video.ID == 0 {
			continue // 视频已删除，历史里直接不展示
		}
		views = append(views, dto.ToVideoView(&records[i].Video))
	}
	return views, nil
}

// 点过赞的视频：1、按点赞顺序取Like行 2、批量二跳查出视频+作者 3、按原顺序拼装，悬空的剔除
func (s *queryService) LikedVideos(ctx context.Context, userID uint64) ([]dto.VideoView, error) {
	likes, err := s.likeRepo.ListByUserAndKind(ctx, userID, model.TargetVideo)
	if err != nil {
		return nil, storeErr(err)
	}
	videoIDs := make([]uint64, 0, len(likes))
	for _, like := range likes {
		videoIDs = append(videoIDs, like.TargetID)
	}
	videos, err := s.videoRepo.FindByIDs(ctx, videoIDs)
	if err != nil {
		return nil, storeErr(err)
	}
	// 在内存中进行数据编排：先建索引，再按点赞顺序输出
	videoByID := make(map[uint64]*model.Video, len(videos))
	for i := range videos {
		videoByID[videos[i].ID] = &videos[i]
	}
	views := make([]dto.VideoView, 0, len(likes))
	for _, like := range likes {
		if video, ok := videoByID[like.TargetID]; ok {
			views = append(views, dto.ToVideoView(video))
		}
		// 查不到说明目标视频已删除，点赞行成了悬空引用，安静地跳过
	}
	return views, nil
}

// 收藏夹详情：位置在这里是有语义的，所以已删视频不能剔除，要用占位条目把位置留住
func (s *queryService) PlaylistDetail(ctx context.Context, playlistID uint64) (*dto.PlaylistDetailView, error) {
	playlist, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}
	items, err := s.playlistRepo.ListItems(ctx, playlistID)
	if err != nil {
		return nil, storeErr(err)
	}
	videoIDs := make([]uint64, 0, len(items))
	for _, item := range items {
		videoIDs = append(videoIDs, item.VideoID)
	}
	videos, err := s.videoRepo.FindByIDs(ctx, videoIDs)
	if err != nil {
		return nil, storeErr(err)
	}
	videoByID := make(map[uint64]*model.Video, len(videos))
	for i := range videos {
		videoByID[videos[i].ID] = &videos[i]
	}

	view := &dto.PlaylistDetailView{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
		Videos:      make([]dto.PlaylistItemView, 0, len(items)),
	}
	if playlist.User.ID != 0 {
		view.Owner = dto.ToOwnerInfo(&playlist.User)
	}
	// 同一个视频出现几次就输出几条，顺序严格跟着Position走
	for _, item := range items {
		itemView := dto.PlaylistItemView{Position: item.Position}
		if video, ok := videoByID[item.VideoID]; ok {
			videoView := dto.ToVideoView(video)
			itemView.Available = true
			itemView.Video = &videoView
		}
		view.Videos = append(view.Videos, itemView)
	}
	return view, nil
}

// 视频评论：1、分页参数兜底 2、确认视频存在 3、查一页评论 4、GROUP BY一次拿到这页评论各自的被赞数
func (s *queryService) VideoComments(ctx context.Context, videoID uint64, page, pageSize int) ([]dto.CommentView, error) {
	// pageSize：每页大小。page:当前页码。offset: “跳过”多少条记录，再开始取数据。
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if _, err := s.videoRepo.FindByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	offset := (page - 1) * pageSize
	comments, err := s.commentRepo.ListByVideo(ctx, videoID, offset, pageSize)
	if err != nil {
		return nil, storeErr(err)
	}
	commentIDs := make([]uint64, 0, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
	}
	likeCounts, err := s.likeRepo.CountByTargets(ctx, model.TargetComment, commentIDs)
	if err != nil {
		return nil, storeErr(err)
	}

	views := make([]dto.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, dto.ToCommentView(&comments[i], likeCounts[comments[i].ID]))
	}
	return views, nil
}

// 创作中心统计：四路子聚合任何一路失败都整体报ErrInternal，宁可不给也不给错的
func (s *queryService) ChannelStats(ctx context.Context, userID uint64) (*dto.ChannelStatsView, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr(err)
	}

	totalViews, err := s.videoRepo.SumViewsByAuthor(ctx, userID)
	if err != nil {
		return nil, s.statsFailed(userID, err)
	}
	totalVideos, err := s.videoRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, s.statsFailed(userID, err)
	}
	subscriberCount, err := s.subRepo.CountByChannel(ctx, userID)
	if err != nil {
		return nil, s.statsFailed(userID, err)
	}
	videoLikes, err := s.likeRepo.CountVideoLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, s.statsFailed(userID, err)
	}
	commentLikes, err := s.likeRepo.CountCommentLikesByAuthor(ctx, userID)
	if err != nil {
		return nil, s.statsFailed(userID, err)
	}

	return &dto.ChannelStatsView{
		TotalViews:      totalViews,
		TotalVideos:     totalVideos,
		SubscriberCount: subscriberCount,
		TotalLikes:      videoLikes + commentLikes,
	}, nil
}

// 统计失败只对外报统一的内部错误，具体原因进日志，不把存储错误文本漏给用户
// 超时例外：它不是数据问题，照常翻译成ErrUnavailable让调用方重试
func (s *queryService) statsFailed(userID uint64, err error) error {
	logger.Log.WithError(err).WithField("user_id", userID).Error("频道统计子聚合失败")
	if translated := storeErr(err); errors.Is(translated, ErrUnavailable) {
		return translated
	}
	return ErrInternal
}
