package recommendation

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/mileusna/crontab"
	"golang.org/x/sync/singleflight"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/engagement"
	"streamvibe.tv/read-gateway/app/domain/trending"
	"streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/app/utils/logger"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

// BuildState is the lifecycle of the similarity snapshot.
type BuildState int32

const (
	StateStale BuildState = iota
	StateRebuilding
	StateReady
)

const (
	maxRecommendations = 50
	recentWatchLimit   = 20
	snapshotMaxAge     = time.Hour

	SourcePersonalized = "personalized"
	SourceTrending     = "trending"
)

// RecommendedVideo is one ranked recommendation.
type RecommendedVideo struct {
	Video video.Video `json:"video"`
	Score float64     `json:"score"`
}

// RecommendationList is the cached per-user recommendation aggregate.
type RecommendationList struct {
	UserID      uint               `json:"user_id"`
	Source      string             `json:"source"`
	GeneratedAt time.Time          `json:"generated_at"`
	Items       []RecommendedVideo `json:"items"`
}

// RecommendationService answers top-K unwatched videos per user from the
// precomputed similarity snapshot. Queries cost O(watch history × neighbor
// list) regardless of catalog size; the snapshot itself is rebuilt off the
// request path and swapped atomically, so readers never block on a rebuild
// and never observe a half-built index.
type RecommendationService struct {
	videoRepo       video.VideoRepository
	engagementRepo  engagement.EngagementRepository
	trendingService *trending.TrendingService
	cache           cache.CacheService

	group      singleflight.Group
	index      atomic.Pointer[SimilarityIndex]
	state      atomic.Int32
	drift      atomic.Int64
	rebuilding atomic.Bool
}

func NewService(
	videoRepo video.VideoRepository,
	engagementRepo engagement.EngagementRepository,
	trendingService *trending.TrendingService,
	cacheService cache.CacheService,
) *RecommendationService {
	return &RecommendationService{
		videoRepo:       videoRepo,
		engagementRepo:  engagementRepo,
		trendingService: trendingService,
		cache:           cacheService,
	}
}

// State reports the snapshot lifecycle state.
func (s *RecommendationService) State() BuildState {
	return BuildState(s.state.Load())
}

// NoteCatalogDrift counts new catalog entities since the last build; the
// scheduled rebuild fires early once the drift threshold is crossed.
func (s *RecommendationService) NoteCatalogDrift(n int) {
	s.drift.Add(int64(n))
}

// Recommend returns up to limit ranked, unwatched videos for the user. Users
// with no watch history get the trending list; so does everyone while the
// first snapshot is still building.
func (s *RecommendationService) Recommend(ctx context.Context, userID uint, limit int) (*RecommendationList, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit %d", common.ErrInvalid, limit)
	}
	if limit > maxRecommendations {
		limit = maxRecommendations
	}

	key := cache.RecommendationKey(userID)

	var cached RecommendationList
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return trimmed(&cached, limit), nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		var list *RecommendationList
		err := common.RetryTransient(ctx, func() error {
			var buildErr error
			list, buildErr = s.buildList(ctx, userID)
			return buildErr
		})
		if err != nil {
			return nil, err
		}
		if setErr := s.cache.SetIndexed(ctx, key, cache.RecommendationIndexKey, list, environment_variables.EnvironmentVariables.RECOMMENDATION_TTL); setErr != nil {
			logger.GetLogger().Warnf("failed to cache recommendations for user %d: %v", userID, setErr)
		}
		return list, nil
	})
	if err != nil {
		if common.IsTransient(err) {
			var stale RecommendationList
			if staleErr := s.cache.GetStale(ctx, key, &stale); staleErr == nil {
				logger.GetLogger().Warnf("serving stale recommendations for user %d: %v", userID, err)
				return trimmed(&stale, limit), nil
			}
		}
		return nil, err
	}
	return trimmed(result.(*RecommendationList), limit), nil
}

func (s *RecommendationService) buildList(ctx context.Context, userID uint) (*RecommendationList, error) {
	storeCtx, cancel := context.WithTimeout(ctx, environment_variables.EnvironmentVariables.STORE_QUERY_TIMEOUT)
	watched, err := s.engagementRepo.WatchedVideos(storeCtx, userID, recentWatchLimit)
	cancel()
	if err != nil {
		return nil, err
	}

	idx := s.index.Load()
	if len(watched) == 0 || idx == nil {
		return s.trendingFallback(ctx, userID)
	}

	watchedSet := make(map[uint]struct{}, len(watched))
	for _, w := range watched {
		watchedSet[w.VideoID] = struct{}{}
	}

	scores := make(map[uint]float64)
	for _, w := range watched {
		weight := float64(w.WatchSeconds) / 100
		if weight > 1 {
			weight = 1
		}
		for _, nb := range idx.NeighborsOf(w.VideoID) {
			if _, ok := watchedSet[nb.VideoID]; ok {
				continue
			}
			scores[nb.VideoID] += nb.Score * weight
		}
	}

	ranked := make([]RecommendedVideo, 0, len(scores))
	for id, score := range scores {
		v, ok := idx.VideoByID(id)
		if !ok {
			continue
		}
		ranked = append(ranked, RecommendedVideo{Video: *v, Score: score})
	}
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].Score != ranked[b].Score {
			return ranked[a].Score > ranked[b].Score
		}
		return ranked[a].Video.ID < ranked[b].Video.ID
	})
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}

	return &RecommendationList{
		UserID:      userID,
		Source:      SourcePersonalized,
		GeneratedAt: time.Now(),
		Items:       ranked,
	}, nil
}

func (s *RecommendationService) trendingFallback(ctx context.Context, userID uint) (*RecommendationList, error) {
	list, err := s.trendingService.GetTrending(ctx, 86400)
	if err != nil {
		return nil, err
	}
	items := make([]RecommendedVideo, 0, len(list.Entries))
	for _, entry := range list.Entries {
		items = append(items, RecommendedVideo{
			Video: entry.Video,
			Score: float64(entry.WindowViews),
		})
	}
	return &RecommendationList{
		UserID:      userID,
		Source:      SourceTrending,
		GeneratedAt: time.Now(),
		Items:       items,
	}, nil
}

// Rebuild computes a fresh similarity snapshot and swaps it in atomically.
// The previous snapshot stays queryable for the whole build, and a failed or
// cancelled build leaves it untouched.
func (s *RecommendationService) Rebuild(ctx context.Context) error {
	if !s.rebuilding.CompareAndSwap(false, true) {
		return nil
	}
	defer s.rebuilding.Store(false)

	s.state.Store(int32(StateRebuilding))

	catalog, err := s.videoRepo.ListRecent(ctx, environment_variables.EnvironmentVariables.SIMILARITY_CATALOG_CAP)
	if err != nil {
		s.restoreStateAfterFailedBuild()
		return err
	}

	idx, err := BuildIndex(ctx, catalog, environment_variables.EnvironmentVariables.SIMILARITY_NEIGHBORS)
	if err != nil {
		s.restoreStateAfterFailedBuild()
		return err
	}

	s.index.Store(idx)
	s.drift.Store(0)
	s.state.Store(int32(StateReady))
	logger.GetLogger().Infof("similarity index rebuilt: %d videos", idx.Size())

	// Lists computed against the previous snapshot expire early rather than
	// waiting out their TTL.
	if err := s.cache.DeleteIndexed(ctx, cache.RecommendationIndexKey); err != nil {
		logger.GetLogger().Warnf("failed to drop cached recommendation lists after rebuild: %v", err)
	}
	return nil
}

func (s *RecommendationService) restoreStateAfterFailedBuild() {
	if s.index.Load() != nil {
		s.state.Store(int32(StateReady))
	} else {
		s.state.Store(int32(StateStale))
	}
}

// Start schedules the snapshot lifecycle: an immediate background build, then
// periodic rebuilds when the snapshot aged out or drifted past the threshold.
func (s *RecommendationService) Start(ctx context.Context, ctab *crontab.Crontab) {
	go func() {
		if err := s.Rebuild(ctx); err != nil {
			logger.GetLogger().Warnf("initial similarity build failed: %v", err)
		}
	}()

	ctab.AddJob("*/15 * * * *", func() {
		if !s.rebuildDue() {
			return
		}
		if err := s.Rebuild(ctx); err != nil {
			logger.GetLogger().Warnf("similarity rebuild failed: %v", err)
		}
	})
}

func (s *RecommendationService) rebuildDue() bool {
	idx := s.index.Load()
	if idx == nil {
		return true
	}
	if s.drift.Load() >= int64(environment_variables.EnvironmentVariables.SIMILARITY_DRIFT_REBUILD) {
		return true
	}
	return time.Since(idx.BuiltAt) >= snapshotMaxAge
}

func trimmed(list *RecommendationList, limit int) *RecommendationList {
	if len(list.Items) <= limit {
		return list
	}
	out := *list
	out.Items = list.Items[:limit]
	return &out
}
