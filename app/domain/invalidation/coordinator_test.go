package invalidation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

type stubSubscriberLister struct {
	subscribers map[uint][]uint
}

func (s *stubSubscriberLister) SubscriberIDsOf(ctx context.Context, channelID uint) ([]uint, error) {
	return s.subscribers[channelID], nil
}

type countingDriftSink struct {
	mu    sync.Mutex
	total int
}

func (c *countingDriftSink) NoteCatalogDrift(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total += n
}

func (c *countingDriftSink) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func seed(t *testing.T, memCache *cache.MemoryCacheService, keys ...string) {
	t.Helper()
	for _, key := range keys {
		require.NoError(t, memCache.Set(context.Background(), key, "x", time.Minute))
	}
}

func seedFeedPage(t *testing.T, memCache *cache.MemoryCacheService, userID uint, page int) {
	t.Helper()
	key := cache.FeedPageKey(userID, page, 20)
	require.NoError(t, memCache.SetIndexed(context.Background(), key, cache.FeedIndexKey(userID), "x", time.Minute))
}

func exists(t *testing.T, memCache *cache.MemoryCacheService, key string) bool {
	t.Helper()
	ok, err := memCache.Exists(context.Background(), key)
	require.NoError(t, err)
	return ok
}

// drain publishes the events and waits for the worker pool to finish them.
func drain(c *Coordinator, events ...Event) {
	c.Start(context.Background())
	for _, evt := range events {
		c.Publish(evt)
	}
	c.Stop()
}

func TestLikeInvalidatesOnlyTheVideoKey(t *testing.T) {
	memCache := cache.NewMemoryCacheService()
	seed(t, memCache,
		cache.VideoDetailKey(7),
		cache.VideoDetailKey(8),
		cache.WatchHistoryKey(3),
	)
	c := NewCoordinator(memCache, &stubSubscriberLister{}, &countingDriftSink{})

	drain(c, Event{Type: EventLikeAdded, VideoID: 7, UserID: 3})

	assert.False(t, exists(t, memCache, cache.VideoDetailKey(7)))
	assert.True(t, exists(t, memCache, cache.VideoDetailKey(8)))
	assert.True(t, exists(t, memCache, cache.WatchHistoryKey(3)))
}

func TestViewInvalidatesVideoHistoryAndRecommendations(t *testing.T) {
	memCache := cache.NewMemoryCacheService()
	seed(t, memCache,
		cache.VideoDetailKey(7),
		cache.WatchHistoryKey(3),
		cache.RecommendationKey(3),
		cache.RecommendationKey(4),
	)
	c := NewCoordinator(memCache, &stubSubscriberLister{}, &countingDriftSink{})

	drain(c, Event{Type: EventViewRecorded, VideoID: 7, UserID: 3})

	assert.False(t, exists(t, memCache, cache.VideoDetailKey(7)))
	assert.False(t, exists(t, memCache, cache.WatchHistoryKey(3)))
	assert.False(t, exists(t, memCache, cache.RecommendationKey(3)))
	// Another viewer's aggregates are untouched.
	assert.True(t, exists(t, memCache, cache.RecommendationKey(4)))
}

func TestAnonymousViewSkipsPerUserKeys(t *testing.T) {
	memCache := cache.NewMemoryCacheService()
	seed(t, memCache, cache.VideoDetailKey(7), cache.WatchHistoryKey(0))
	c := NewCoordinator(memCache, &stubSubscriberLister{}, &countingDriftSink{})

	drain(c, Event{Type: EventViewRecorded, VideoID: 7})

	assert.False(t, exists(t, memCache, cache.VideoDetailKey(7)))
	assert.True(t, exists(t, memCache, cache.WatchHistoryKey(0)))
}

func TestVideoCreatedInvalidatesSubscriberFeedsAndNotesDrift(t *testing.T) {
	memCache := cache.NewMemoryCacheService()
	seedFeedPage(t, memCache, 1, 1)
	seedFeedPage(t, memCache, 1, 2)
	seedFeedPage(t, memCache, 2, 1)
	seedFeedPage(t, memCache, 9, 1) // not a subscriber
	drift := &countingDriftSink{}
	c := NewCoordinator(memCache, &stubSubscriberLister{subscribers: map[uint][]uint{
		42: {1, 2},
	}}, drift)

	drain(c, Event{Type: EventVideoCreated, VideoID: 100, ChannelID: 42})

	assert.False(t, exists(t, memCache, cache.FeedPageKey(1, 1, 20)))
	assert.False(t, exists(t, memCache, cache.FeedPageKey(1, 2, 20)))
	assert.False(t, exists(t, memCache, cache.FeedPageKey(2, 1, 20)))
	assert.True(t, exists(t, memCache, cache.FeedPageKey(9, 1, 20)))
	assert.Equal(t, 1, drift.Total())
}

func TestSubscriptionChangeInvalidatesTheUsersFeed(t *testing.T) {
	memCache := cache.NewMemoryCacheService()
	seedFeedPage(t, memCache, 3, 1)
	seedFeedPage(t, memCache, 4, 1)
	c := NewCoordinator(memCache, &stubSubscriberLister{}, &countingDriftSink{})

	drain(c, Event{Type: EventSubscriptionChanged, UserID: 3, ChannelID: 42})

	assert.False(t, exists(t, memCache, cache.FeedPageKey(3, 1, 20)))
	assert.True(t, exists(t, memCache, cache.FeedPageKey(4, 1, 20)))
}

func TestPublishNeverBlocksOnFullQueue(t *testing.T) {
	prev := environment_variables.EnvironmentVariables.INVALIDATION_QUEUE_SIZE
	environment_variables.EnvironmentVariables.INVALIDATION_QUEUE_SIZE = 1
	defer func() {
		environment_variables.EnvironmentVariables.INVALIDATION_QUEUE_SIZE = prev
	}()

	c := NewCoordinator(cache.NewMemoryCacheService(), &stubSubscriberLister{}, &countingDriftSink{})
	// No workers running: the queue fills after one event, the rest drop.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			c.Publish(Event{Type: EventLikeAdded, VideoID: uint(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}

func TestPublishAfterStopDropsInsteadOfPanicking(t *testing.T) {
	c := NewCoordinator(cache.NewMemoryCacheService(), &stubSubscriberLister{}, &countingDriftSink{})
	c.Start(context.Background())
	c.Stop()

	c.Publish(Event{Type: EventLikeAdded, VideoID: 7})
}
