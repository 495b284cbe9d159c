package trending

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"golang.org/x/sync/singleflight"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/app/utils/logger"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

const listLimit = 50

// Windows are the supported trending buckets, in seconds. Requests are
// normalized to the smallest bucket covering them.
var Windows = []int{3600, 86400, 604800}

// TrendingList is the cached rollup for one window bucket.
type TrendingList struct {
	WindowSeconds int                    `json:"window_seconds"`
	GeneratedAt   time.Time              `json:"generated_at"`
	Entries       []*video.TrendingEntry `json:"entries"`
}

// TrendingService serves the trending rollup. The rollup is one bounded
// aggregation query per window, recomputed on a schedule and cached; request
// traffic only reads the cache and never triggers a full scan.
type TrendingService struct {
	videoRepo video.VideoRepository
	cache     cache.CacheService

	group singleflight.Group
}

func NewService(videoRepo video.VideoRepository, cacheService cache.CacheService) *TrendingService {
	return &TrendingService{
		videoRepo: videoRepo,
		cache:     cacheService,
	}
}

// NormalizeWindow maps an arbitrary window request onto the smallest
// supported bucket covering it.
func NormalizeWindow(windowSeconds int) int {
	for _, w := range Windows {
		if windowSeconds <= w {
			return w
		}
	}
	return Windows[len(Windows)-1]
}

// GetTrending returns the trending list for the bucket covering
// windowSeconds.
func (s *TrendingService) GetTrending(ctx context.Context, windowSeconds int) (*TrendingList, error) {
	bucket := NormalizeWindow(windowSeconds)
	key := cache.TrendingKey(bucket)

	var cached TrendingList
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		return s.refreshWindow(ctx, bucket)
	})
	if err != nil {
		if common.IsTransient(err) {
			var stale TrendingList
			if staleErr := s.cache.GetStale(ctx, key, &stale); staleErr == nil {
				logger.GetLogger().Warnf("serving stale trending window %d: %v", bucket, err)
				return &stale, nil
			}
		}
		return nil, err
	}
	return result.(*TrendingList), nil
}

// refreshWindow recomputes one bucket and writes it back with the trending
// TTL.
func (s *TrendingService) refreshWindow(ctx context.Context, bucket int) (*TrendingList, error) {
	var entries []*video.TrendingEntry
	err := common.RetryTransient(ctx, func() error {
		storeCtx, cancel := context.WithTimeout(ctx, environment_variables.EnvironmentVariables.STORE_QUERY_TIMEOUT)
		defer cancel()
		var queryErr error
		entries, queryErr = s.videoRepo.QueryTrending(storeCtx, time.Duration(bucket)*time.Second, listLimit)
		return queryErr
	})
	if err != nil {
		return nil, err
	}

	list := &TrendingList{
		WindowSeconds: bucket,
		GeneratedAt:   time.Now(),
		Entries:       entries,
	}
	if setErr := s.cache.Set(ctx, cache.TrendingKey(bucket), list, environment_variables.EnvironmentVariables.TRENDING_TTL); setErr != nil {
		logger.GetLogger().Warnf("failed to cache trending window %d: %v", bucket, setErr)
	}
	return list, nil
}

// Start schedules the rollup refresh. The distributed lock keeps the refresh
// exclusive across gateway instances; without a cache backend the lock is nil
// and the refresh runs locally.
func (s *TrendingService) Start(ctx context.Context, ctab *crontab.Crontab) {
	s.refreshAll(ctx)

	ctab.AddJob("*/5 * * * *", func() {
		s.refreshAll(ctx)
	})
}

func (s *TrendingService) refreshAll(ctx context.Context) {
	if mutex := s.cache.NewMutex(cache.TrendingRefreshLockKey); mutex != nil {
		if err := mutex.LockContext(ctx); err != nil {
			// Another instance holds the refresh.
			return
		}
		defer func() {
			if _, err := mutex.UnlockContext(ctx); err != nil {
				logger.GetLogger().Warnf("failed to release trending refresh lock: %v", err)
			}
		}()
	}

	for _, bucket := range Windows {
		if _, err := s.refreshWindow(ctx, bucket); err != nil {
			logger.GetLogger().Warnf("trending refresh failed for window %d: %v", bucket, err)
		}
	}
}
