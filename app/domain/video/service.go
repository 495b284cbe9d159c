package video

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/engagement"
	"streamvibe.tv/read-gateway/app/domain/invalidation"
	"streamvibe.tv/read-gateway/app/domain/user"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/app/utils/logger"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

// InvalidationPublisher receives the write events this service produces.
type InvalidationPublisher interface {
	Publish(evt invalidation.Event)
}

// VideoService serves the per-video aggregate. The cache is the first stop on
// every read; recomputes are deduplicated per key so a popular cold video
// costs one backing-store fan-out no matter how many requests race on it.
type VideoService struct {
	videoRepo      VideoRepository
	userRepo       user.UserRepository
	engagementRepo engagement.EngagementRepository
	cache          cache.CacheService
	events         InvalidationPublisher

	group singleflight.Group
}

func NewService(
	videoRepo VideoRepository,
	userRepo user.UserRepository,
	engagementRepo engagement.EngagementRepository,
	cacheService cache.CacheService,
	events InvalidationPublisher,
) *VideoService {
	return &VideoService{
		videoRepo:      videoRepo,
		userRepo:       userRepo,
		engagementRepo: engagementRepo,
		cache:          cacheService,
		events:         events,
	}
}

// GetVideoDetail returns the video aggregate for id. Misses are rebuilt under
// single-flight and written back with the detail TTL; a transient store
// failure is answered from a stale cache entry when one survives.
func (s *VideoService) GetVideoDetail(ctx context.Context, id uint) (*VideoDetail, error) {
	key := cache.VideoDetailKey(id)

	var cached VideoDetail
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		var detail *VideoDetail
		err := common.RetryTransient(ctx, func() error {
			var buildErr error
			detail, buildErr = s.buildDetail(ctx, id)
			return buildErr
		})
		if err != nil {
			return nil, err
		}
		if setErr := s.cache.Set(ctx, key, detail, environment_variables.EnvironmentVariables.VIDEO_DETAIL_TTL); setErr != nil {
			logger.GetLogger().Warnf("failed to cache video detail %d: %v", id, setErr)
		}
		return detail, nil
	})
	if err != nil {
		if common.IsTransient(err) {
			var stale VideoDetail
			if staleErr := s.cache.GetStale(ctx, key, &stale); staleErr == nil {
				logger.GetLogger().Warnf("serving stale video detail %d: %v", id, err)
				return &stale, nil
			}
		}
		return nil, err
	}
	return result.(*VideoDetail), nil
}

// buildDetail fans out the independent sub-fetches concurrently; total latency
// is bounded by the slowest sub-fetch, not the sum.
func (s *VideoService) buildDetail(ctx context.Context, id uint) (*VideoDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, environment_variables.EnvironmentVariables.STORE_QUERY_TIMEOUT)
	defer cancel()

	var detail VideoDetail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := s.videoRepo.FindByID(gctx, id)
		if err != nil {
			return err
		}
		detail.Video = *v
		// The owner lookup depends on the video row, so it chains here
		// while the counts proceed in parallel.
		owner, err := s.userRepo.FindByID(gctx, v.ChannelID)
		if err != nil {
			if common.IsNotFound(err) {
				return fmt.Errorf("owner %d of video %d: %w", v.ChannelID, id, common.ErrTransient)
			}
			return err
		}
		detail.Owner = *owner
		return nil
	})
	g.Go(func() error {
		n, err := s.engagementRepo.CountViews(gctx, id)
		detail.ViewCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.engagementRepo.CountLikes(gctx, id)
		detail.LikeCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.engagementRepo.CountComments(gctx, id)
		detail.CommentCount = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateVideo persists a new video and notifies the invalidation coordinator
// so subscriber feeds converge.
func (s *VideoService) CreateVideo(ctx context.Context, v *Video) error {
	if v.Title == "" {
		return fmt.Errorf("%w: empty video title", common.ErrInvalid)
	}
	if err := s.videoRepo.Create(ctx, v); err != nil {
		return err
	}
	s.events.Publish(invalidation.Event{
		Type:      invalidation.EventVideoCreated,
		VideoID:   v.ID,
		ChannelID: v.ChannelID,
	})
	return nil
}
