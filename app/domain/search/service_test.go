package search

import (
	"context"
	"strings"
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
	mu          sync.Mutex
	catalog     []*video.Video
	searchCalls int
	lastQuery   string
}

func (s *stubVideoRepo) Create(ctx context.Context, v *video.Video) error { return nil }

func (s *stubVideoRepo) FindByID(ctx context.Context, id uint) (*video.Video, error) {
	return nil, common.ErrNotFound
}

func (s *stubVideoRepo) QueryByChannels(ctx context.Context, channelIDs []uint, page, pageSize int) ([]*video.Video, bool, error) {
	return nil, false, nil
}

func (s *stubVideoRepo) QueryTrending(ctx context.Context, window time.Duration, limit int) ([]*video.TrendingEntry, error) {
	return nil, nil
}

func (s *stubVideoRepo) Search(ctx context.Context, q, category string, page, pageSize int) ([]*video.Video, bool, error) {
	s.mu.Lock()
	s.searchCalls++
	s.lastQuery = q
	s.mu.Unlock()

	var matched []*video.Video
	for _, v := range s.catalog {
		if !strings.Contains(strings.ToLower(v.Title), q) {
			continue
		}
		if category != "" && v.Category != category {
			continue
		}
		matched = append(matched, v)
	}
	if len(matched) > pageSize {
		return matched[:pageSize], true, nil
	}
	return matched, false, nil
}

func (s *stubVideoRepo) ListRecent(ctx context.Context, limit int) ([]*video.Video, error) {
	return nil, nil
}

func newTestSearchService(repo *stubVideoRepo) *SearchService {
	return NewService(repo, cache.NewMemoryCacheService())
}

func searchCatalog() []*video.Video {
	return []*video.Video{
		{ID: 1, Title: "Building a Synth", Category: "music"},
		{ID: 2, Title: "Synth Review", Category: "tech"},
		{ID: 3, Title: "Cooking Pasta", Category: "food"},
	}
}

func TestSearchRejectsShortQuery(t *testing.T) {
	svc := newTestSearchService(&stubVideoRepo{})

	_, err := svc.Search(context.Background(), "a", "", 1, 10)
	assert.True(t, common.IsInvalid(err))

	_, err = svc.Search(context.Background(), "   ", "", 1, 10)
	assert.True(t, common.IsInvalid(err))
}

func TestSearchRejectsBadPagination(t *testing.T) {
	svc := newTestSearchService(&stubVideoRepo{})

	_, err := svc.Search(context.Background(), "synth", "", 0, 10)
	assert.True(t, common.IsInvalid(err))

	_, err = svc.Search(context.Background(), "synth", "", 1, 0)
	assert.True(t, common.IsInvalid(err))
}

func TestSearchClampsOversizedPage(t *testing.T) {
	repo := &stubVideoRepo{catalog: searchCatalog()}
	svc := newTestSearchService(repo)

	result, err := svc.Search(context.Background(), "synth", "", 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, result.PageSize)
}

func TestSearchNormalizesQueryCase(t *testing.T) {
	repo := &stubVideoRepo{catalog: searchCatalog()}
	svc := newTestSearchService(repo)

	result, err := svc.Search(context.Background(), "  SYNTH ", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "synth", result.Query)
	assert.Equal(t, "synth", repo.lastQuery)
	assert.Len(t, result.Items, 2)
	assert.False(t, result.HasNext)
}

func TestSearchFiltersByCategory(t *testing.T) {
	repo := &stubVideoRepo{catalog: searchCatalog()}
	svc := newTestSearchService(repo)

	result, err := svc.Search(context.Background(), "synth", "tech", 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, uint(2), result.Items[0].ID)
}

func TestSearchCachesPerQueryPage(t *testing.T) {
	repo := &stubVideoRepo{catalog: searchCatalog()}
	svc := newTestSearchService(repo)

	_, err := svc.Search(context.Background(), "synth", "", 1, 10)
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "Synth", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.searchCalls, "case variants of the same query share a cache entry")

	_, err = svc.Search(context.Background(), "synth", "", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.searchCalls, "a different page is a different cache entry")
}
