package invalidation

import (
	"context"
	"sync"

	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/app/utils/logger"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

// SubscriberLister resolves the audience of a VideoCreated event.
type SubscriberLister interface {
	SubscriberIDsOf(ctx context.Context, channelID uint) ([]uint, error)
}

// DriftSink receives catalog-drift notifications; the recommendation engine
// uses them to decide when a similarity rebuild is due.
type DriftSink interface {
	NoteCatalogDrift(n int)
}

// subscriberBatchSize bounds each feed invalidation fan-out burst.
const subscriberBatchSize = 100

// Coordinator turns write events into the minimal set of cache-key deletions.
// Events are queued and drained by background workers, so the write that
// produced an event is acknowledged before its fan-out completes; the cost of
// a dropped or failed invalidation is bounded staleness, since every affected
// key also carries a TTL.
type Coordinator struct {
	cache       cache.CacheService
	subscribers SubscriberLister
	drift       DriftSink

	queue chan Event
	wg    sync.WaitGroup

	// mu guards queue closure so a late Publish drops instead of panicking.
	mu     sync.RWMutex
	closed bool

	startOnce sync.Once
	stopOnce  sync.Once
}

func NewCoordinator(cacheService cache.CacheService, subscribers SubscriberLister, drift DriftSink) *Coordinator {
	return &Coordinator{
		cache:       cacheService,
		subscribers: subscribers,
		drift:       drift,
		queue:       make(chan Event, environment_variables.EnvironmentVariables.INVALIDATION_QUEUE_SIZE),
	}
}

// Start launches the worker pool draining the event queue.
func (c *Coordinator) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		workers := environment_variables.EnvironmentVariables.INVALIDATION_WORKERS
		for i := 0; i < workers; i++ {
			c.wg.Add(1)
			go func() {
				defer c.wg.Done()
				for evt := range c.queue {
					c.handle(ctx, evt)
				}
			}()
		}
	})
}

// Stop closes the queue and waits for in-flight invalidations to finish.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.queue)
		c.mu.Unlock()
		c.wg.Wait()
	})
}

// Publish enqueues an event without blocking the write path. When the queue is
// full, or the coordinator already stopped, the event is dropped and logged;
// the TTL backstop caps the staleness.
func (c *Coordinator) Publish(evt Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		logger.GetLogger().Warnf("invalidation coordinator stopped, dropping %s for video=%d user=%d channel=%d",
			evt.Type, evt.VideoID, evt.UserID, evt.ChannelID)
		return
	}
	select {
	case c.queue <- evt:
	default:
		logger.GetLogger().Warnf("invalidation queue full, dropping %s for video=%d user=%d channel=%d",
			evt.Type, evt.VideoID, evt.UserID, evt.ChannelID)
	}
}

func (c *Coordinator) handle(ctx context.Context, evt Event) {
	switch evt.Type {
	case EventLikeAdded, EventCommentAdded:
		c.unlink(ctx, cache.VideoDetailKey(evt.VideoID))

	case EventViewRecorded:
		c.unlink(ctx, cache.VideoDetailKey(evt.VideoID))
		if evt.UserID != 0 {
			// The viewer's watched-set changed, so their history and
			// recommendation aggregates are stale.
			c.unlink(ctx, cache.WatchHistoryKey(evt.UserID))
			c.unlink(ctx, cache.RecommendationKey(evt.UserID))
		}

	case EventVideoCreated:
		c.invalidateSubscriberFeeds(ctx, evt.ChannelID)
		if c.drift != nil {
			c.drift.NoteCatalogDrift(1)
		}

	case EventSubscriptionChanged:
		if err := c.cache.DeleteIndexed(ctx, cache.FeedIndexKey(evt.UserID)); err != nil {
			logger.GetLogger().Warnf("failed to invalidate feed pages for user %d: %v", evt.UserID, err)
		}

	default:
		logger.GetLogger().Warnf("unknown invalidation event type: %s", evt.Type)
	}
}

// invalidateSubscriberFeeds drops every cached feed page of every subscriber
// of the channel, in bounded batches rather than one synchronous call per
// subscriber. Each drop reads the subscriber's key index, so the cost is the
// number of cached pages, not the size of the keyspace.
func (c *Coordinator) invalidateSubscriberFeeds(ctx context.Context, channelID uint) {
	subscriberIDs, err := c.subscribers.SubscriberIDsOf(ctx, channelID)
	if err != nil {
		logger.GetLogger().Warnf("failed to list subscribers of channel %d: %v", channelID, err)
		return
	}

	for start := 0; start < len(subscriberIDs); start += subscriberBatchSize {
		end := start + subscriberBatchSize
		if end > len(subscriberIDs) {
			end = len(subscriberIDs)
		}
		var wg sync.WaitGroup
		for _, userID := range subscriberIDs[start:end] {
			wg.Add(1)
			go func(userID uint) {
				defer wg.Done()
				if err := c.cache.DeleteIndexed(ctx, cache.FeedIndexKey(userID)); err != nil {
					logger.GetLogger().Warnf("failed to invalidate feed pages for user %d: %v", userID, err)
				}
			}(userID)
		}
		wg.Wait()
	}
}

func (c *Coordinator) unlink(ctx context.Context, key string) {
	if err := c.cache.Unlink(ctx, key); err != nil {
		logger.GetLogger().Warnf("failed to invalidate cache key %s: %v", key, err)
	}
}
