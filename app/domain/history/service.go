package history

import (
	"context"
	"fmt"
	"time"

	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/engagement"
	"streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/app/utils/logger"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

const (
	maxHistoryItems = 50
	historyTTL      = 5 * time.Minute
)

// HistoryItem is one watched video with the viewer's aggregate watch stats.
type HistoryItem struct {
	Detail       *video.VideoDetail `json:"detail"`
	WatchSeconds int                `json:"watch_seconds"`
	LastWatched  time.Time          `json:"last_watched"`
}

// WatchHistory is the cached per-user history aggregate.
type WatchHistory struct {
	UserID uint           `json:"user_id"`
	Items  []*HistoryItem `json:"items"`
}

// HistoryService serves a user's recent watch history. The history rows come
// from one grouped store query; video details are attached through the shared
// per-video aggregate cache, O(limit) lookups.
type HistoryService struct {
	engagementRepo engagement.EngagementRepository
	videoService   *video.VideoService
	cache          cache.CacheService
}

func NewService(
	engagementRepo engagement.EngagementRepository,
	videoService *video.VideoService,
	cacheService cache.CacheService,
) *HistoryService {
	return &HistoryService{
		engagementRepo: engagementRepo,
		videoService:   videoService,
		cache:          cacheService,
	}
}

// GetWatchHistory returns the user's most recently watched videos, newest
// first.
func (s *HistoryService) GetWatchHistory(ctx context.Context, userID uint, limit int) (*WatchHistory, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d", common.ErrInvalid, limit)
	}
	if limit > maxHistoryItems {
		limit = maxHistoryItems
	}

	key := cache.WatchHistoryKey(userID)

	var cached WatchHistory
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return trimmed(&cached, limit), nil
	}

	var watched []*engagement.WatchedVideo
	err := common.RetryTransient(ctx, func() error {
		storeCtx, cancel := context.WithTimeout(ctx, environment_variables.EnvironmentVariables.STORE_QUERY_TIMEOUT)
		defer cancel()
		var queryErr error
		watched, queryErr = s.engagementRepo.WatchedVideos(storeCtx, userID, maxHistoryItems)
		return queryErr
	})
	if err != nil {
		return nil, err
	}

	historyList := &WatchHistory{
		UserID: userID,
		Items:  []*HistoryItem{},
	}
	for _, w := range watched {
		detail, err := s.videoService.GetVideoDetail(ctx, w.VideoID)
		if err != nil {
			if common.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		historyList.Items = append(historyList.Items, &HistoryItem{
			Detail:       detail,
			WatchSeconds: w.WatchSeconds,
			LastWatched:  w.LastWatched,
		})
	}

	if setErr := s.cache.Set(ctx, key, historyList, historyTTL); setErr != nil {
		logger.GetLogger().Warnf("failed to cache watch history for user %d: %v", userID, setErr)
	}
	return trimmed(historyList, limit), nil
}

func trimmed(h *WatchHistory, limit int) *WatchHistory {
	if len(h.Items) <= limit {
		return h
	}
	out := *h
	out.Items = h.Items[:limit]
	return &out
}
