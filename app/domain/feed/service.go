package feed

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/subscription"
	"streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/app/utils/functional"
	"streamvibe.tv/read-gateway/app/utils/logger"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

const MaxPageSize = 100

// FeedPage is one cached page of a user's subscription feed.
type FeedPage struct {
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	HasNext  bool                 `json:"has_next"`
	Items    []*video.VideoDetail `json:"items"`
}

// FeedService composes subscription feeds. The candidate videos are ordered
// and paginated by the store; engagement counts are attached through the
// shared per-video aggregate cache, so a page costs O(pageSize) lookups
// regardless of how many videos the subscribed channels hold.
type FeedService struct {
	subscriptionRepo subscription.SubscriptionRepository
	videoRepo        video.VideoRepository
	videoService     *video.VideoService
	cache            cache.CacheService

	group singleflight.Group
}

func NewService(
	subscriptionRepo subscription.SubscriptionRepository,
	videoRepo video.VideoRepository,
	videoService *video.VideoService,
	cacheService cache.CacheService,
) *FeedService {
	return &FeedService{
		subscriptionRepo: subscriptionRepo,
		videoRepo:        videoRepo,
		videoService:     videoService,
		cache:            cacheService,
	}
}

// GetFeed returns one page of the user's feed, newest first.
func (s *FeedService) GetFeed(ctx context.Context, userID uint, page, pageSize int) (*FeedPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", common.ErrInvalid, page)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page size %d", common.ErrInvalid, pageSize)
	}

	key := cache.FeedPageKey(userID, page, pageSize)

	var cached FeedPage
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		var feedPage *FeedPage
		err := common.RetryTransient(ctx, func() error {
			var buildErr error
			feedPage, buildErr = s.buildPage(ctx, userID, page, pageSize)
			return buildErr
		})
		if err != nil {
			return nil, err
		}
		if setErr := s.cache.SetIndexed(ctx, key, cache.FeedIndexKey(userID), feedPage, environment_variables.EnvironmentVariables.FEED_TTL); setErr != nil {
			logger.GetLogger().Warnf("failed to cache feed page for user %d: %v", userID, setErr)
		}
		return feedPage, nil
	})
	if err != nil {
		if common.IsTransient(err) {
			var stale FeedPage
			if staleErr := s.cache.GetStale(ctx, key, &stale); staleErr == nil {
				logger.GetLogger().Warnf("serving stale feed page for user %d: %v", userID, err)
				return &stale, nil
			}
		}
		return nil, err
	}
	return result.(*FeedPage), nil
}

func (s *FeedService) buildPage(ctx context.Context, userID uint, page, pageSize int) (*FeedPage, error) {
	storeCtx, cancel := context.WithTimeout(ctx, environment_variables.EnvironmentVariables.STORE_QUERY_TIMEOUT)
	channelIDs, err := s.subscriptionRepo.ChannelIDsOf(storeCtx, userID)
	cancel()
	if err != nil {
		return nil, err
	}
	channelIDs = functional.Distinct(channelIDs)

	feedPage := &FeedPage{
		Page:     page,
		PageSize: pageSize,
		Items:    []*video.VideoDetail{},
	}
	if len(channelIDs) == 0 {
		return feedPage, nil
	}

	storeCtx, cancel = context.WithTimeout(ctx, environment_variables.EnvironmentVariables.STORE_QUERY_TIMEOUT)
	videos, hasNext, err := s.videoRepo.QueryByChannels(storeCtx, channelIDs, page, pageSize)
	cancel()
	if err != nil {
		return nil, err
	}
	feedPage.HasNext = hasNext

	for _, v := range videos {
		detail, err := s.videoService.GetVideoDetail(ctx, v.ID)
		if err != nil {
			if common.IsNotFound(err) {
				// Deleted between the page query and the detail fetch.
				continue
			}
			return nil, err
		}
		feedPage.Items = append(feedPage.Items, detail)
	}
	return feedPage, nil
}
