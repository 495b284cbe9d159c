package trending

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

type stubVideoRepo struct {
	mu            sync.Mutex
	entries       []*video.TrendingEntry
	trendingCalls int
	failWith      error
}

func (s *stubVideoRepo) Create(ctx context.Context, v *video.Video) error { return nil }

func (s *stubVideoRepo) FindByID(ctx context.Context, id uint) (*video.Video, error) {
	return nil, common.ErrNotFound
}

func (s *stubVideoRepo) QueryByChannels(ctx context.Context, channelIDs []uint, page, pageSize int) ([]*video.Video, bool, error) {
	return nil, false, nil
}

func (s *stubVideoRepo) QueryTrending(ctx context.Context, window time.Duration, limit int) ([]*video.TrendingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trendingCalls++
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.entries, nil
}

func (s *stubVideoRepo) Search(ctx context.Context, q, category string, page, pageSize int) ([]*video.Video, bool, error) {
	return nil, false, nil
}

func (s *stubVideoRepo) ListRecent(ctx context.Context, limit int) ([]*video.Video, error) {
	return nil, nil
}

func trendingEntries(ids ...uint) []*video.TrendingEntry {
	out := make([]*video.TrendingEntry, 0, len(ids))
	for i, id := range ids {
		out = append(out, &video.TrendingEntry{
			Video:       video.Video{ID: id, Title: "v"},
			WindowViews: int64(100 - i),
		})
	}
	return out
}

func TestNormalizeWindowSnapsToBuckets(t *testing.T) {
	assert.Equal(t, 3600, NormalizeWindow(1))
	assert.Equal(t, 3600, NormalizeWindow(3600))
	assert.Equal(t, 86400, NormalizeWindow(3601))
	assert.Equal(t, 604800, NormalizeWindow(100000))
	// Anything past the largest bucket clamps to it.
	assert.Equal(t, 604800, NormalizeWindow(10000000))
}

func TestGetTrendingRefreshesOnceThenServesFromCache(t *testing.T) {
	repo := &stubVideoRepo{entries: trendingEntries(1, 2, 3)}
	svc := NewService(repo, cache.NewMemoryCacheService())

	first, err := svc.GetTrending(context.Background(), 86400)
	require.NoError(t, err)
	require.Len(t, first.Entries, 3)
	assert.Equal(t, 86400, first.WindowSeconds)

	second, err := svc.GetTrending(context.Background(), 86400)
	require.NoError(t, err)
	assert.Equal(t, first.GeneratedAt.Unix(), second.GeneratedAt.Unix())
	assert.Equal(t, 1, repo.trendingCalls)
}

func TestGetTrendingBucketsAreIndependent(t *testing.T) {
	repo := &stubVideoRepo{entries: trendingEntries(1)}
	svc := NewService(repo, cache.NewMemoryCacheService())

	_, err := svc.GetTrending(context.Background(), 3600)
	require.NoError(t, err)
	_, err = svc.GetTrending(context.Background(), 86400)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.trendingCalls)
}

func TestGetTrendingServesStaleOnTransientFailure(t *testing.T) {
	repo := &stubVideoRepo{entries: trendingEntries(1, 2)}
	memCache := cache.NewMemoryCacheService()
	svc := NewService(repo, memCache)

	list, err := svc.GetTrending(context.Background(), 3600)
	require.NoError(t, err)

	// Age the cache entry past freshness but inside stale retention, then
	// break the store.
	require.NoError(t, memCache.Set(context.Background(), cache.TrendingKey(3600), list, 100*time.Millisecond))
	time.Sleep(120 * time.Millisecond)
	repo.mu.Lock()
	repo.failWith = common.ErrTransient
	repo.mu.Unlock()

	stale, err := svc.GetTrending(context.Background(), 3600)
	require.NoError(t, err)
	assert.Len(t, stale.Entries, 2)
}
