package history

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/engagement"
	"streamvibe.tv/read-gateway/app/domain/invalidation"
	"streamvibe.tv/read-gateway/app/domain/user"
	"streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

type stubVideoRepo struct {
	videos map[uint]*video.Video
}

func (s *stubVideoRepo) Create(ctx context.Context, v *video.Video) error { return nil }

func (s *stubVideoRepo) FindByID(ctx context.Context, id uint) (*video.Video, error) {
	v, ok := s.videos[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return v, nil
}

func (s *stubVideoRepo) QueryByChannels(ctx context.Context, channelIDs []uint, page, pageSize int) ([]*video.Video, bool, error) {
	return nil, false, nil
}

func (s *stubVideoRepo) QueryTrending(ctx context.Context, window time.Duration, limit int) ([]*video.TrendingEntry, error) {
	return nil, nil
}

func (s *stubVideoRepo) Search(ctx context.Context, q, category string, page, pageSize int) ([]*video.Video, bool, error) {
	return nil, false, nil
}

func (s *stubVideoRepo) ListRecent(ctx context.Context, limit int) ([]*video.Video, error) {
	return nil, nil
}

type stubUserRepo struct{}

func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return &user.User{ID: id, Username: "channel"}, nil
}

type stubEngagementRepo struct {
	mu           sync.Mutex
	watched      []*engagement.WatchedVideo
	watchedCalls int
}

func (s *stubEngagementRepo) CountViews(ctx context.Context, videoID uint) (int64, error) {
	return 0, nil
}
func (s *stubEngagementRepo) CountLikes(ctx context.Context, videoID uint) (int64, error) {
	return 0, nil
}
func (s *stubEngagementRepo) CountComments(ctx context.Context, videoID uint) (int64, error) {
	return 0, nil
}
func (s *stubEngagementRepo) RecordView(ctx context.Context, v *engagement.View) error { return nil }
func (s *stubEngagementRepo) AddLike(ctx context.Context, l *engagement.Like) error    { return nil }
func (s *stubEngagementRepo) AddComment(ctx context.Context, c *engagement.Comment) error {
	return nil
}
func (s *stubEngagementRepo) WatchedVideos(ctx context.Context, userID uint, limit int) ([]*engagement.WatchedVideo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchedCalls++
	if len(s.watched) > limit {
		return s.watched[:limit], nil
	}
	return s.watched, nil
}

type dropPublisher struct{}

func (dropPublisher) Publish(evt invalidation.Event) {}

func newTestHistoryService(videos map[uint]*video.Video, watched []*engagement.WatchedVideo) (*HistoryService, *stubEngagementRepo) {
	engagementRepo := &stubEngagementRepo{watched: watched}
	memCache := cache.NewMemoryCacheService()
	videoService := video.NewService(&stubVideoRepo{videos: videos}, &stubUserRepo{}, engagementRepo, memCache, dropPublisher{})
	return NewService(engagementRepo, videoService, memCache), engagementRepo
}

func TestGetWatchHistoryAttachesDetails(t *testing.T) {
	now := time.Now()
	svc, _ := newTestHistoryService(
		map[uint]*video.Video{
			1: {ID: 1, Title: "first", ChannelID: 10},
			2: {ID: 2, Title: "second", ChannelID: 11},
		},
		[]*engagement.WatchedVideo{
			{VideoID: 2, WatchSeconds: 90, LastWatched: now},
			{VideoID: 1, WatchSeconds: 30, LastWatched: now.Add(-time.Hour)},
		},
	)

	historyList, err := svc.GetWatchHistory(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, historyList.Items, 2)
	assert.Equal(t, uint(2), historyList.Items[0].Detail.Video.ID)
	assert.Equal(t, 90, historyList.Items[0].WatchSeconds)
	assert.Equal(t, uint(1), historyList.Items[1].Detail.Video.ID)
}

func TestGetWatchHistorySkipsDeletedVideos(t *testing.T) {
	svc, _ := newTestHistoryService(
		map[uint]*video.Video{1: {ID: 1, ChannelID: 10}},
		[]*engagement.WatchedVideo{
			{VideoID: 1, WatchSeconds: 30},
			{VideoID: 99, WatchSeconds: 60},
		},
	)

	historyList, err := svc.GetWatchHistory(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, historyList.Items, 1)
	assert.Equal(t, uint(1), historyList.Items[0].Detail.Video.ID)
}

func TestGetWatchHistoryIsCached(t *testing.T) {
	svc, engagementRepo := newTestHistoryService(
		map[uint]*video.Video{1: {ID: 1, ChannelID: 10}},
		[]*engagement.WatchedVideo{{VideoID: 1, WatchSeconds: 30}},
	)

	_, err := svc.GetWatchHistory(context.Background(), 7, 10)
	require.NoError(t, err)
	_, err = svc.GetWatchHistory(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, engagementRepo.watchedCalls)
}

func TestGetWatchHistoryRejectsBadLimit(t *testing.T) {
	svc, _ := newTestHistoryService(map[uint]*video.Video{}, nil)

	_, err := svc.GetWatchHistory(context.Background(), 7, 0)
	assert.True(t, common.IsInvalid(err))
}
