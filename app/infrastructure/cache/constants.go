package cache

import "fmt"

const (
	CacheVersion = "v1"

	videoDetailKeyPattern    = CacheVersion + ":video:%d"
	feedPageKeyPattern       = CacheVersion + ":feed:%d:%d:%d"
	feedIndexKeyPattern      = CacheVersion + ":feed:%d:keys"
	trendingKeyPattern       = CacheVersion + ":trending:%d"
	recommendationKeyPattern = CacheVersion + ":recs:%d"
	RecommendationIndexKey   = CacheVersion + ":recs:keys"
	searchKeyPattern         = CacheVersion + ":search:%s"
	watchHistoryKeyPattern   = CacheVersion + ":history:%d"

	TrendingRefreshLockKey = CacheVersion + ":trending:refresh:lock"
)

// VideoDetailKey is the per-video aggregate key; engagement writes on the video
// invalidate exactly this key.
func VideoDetailKey(videoID uint) string {
	return fmt.Sprintf(videoDetailKeyPattern, videoID)
}

// FeedPageKey caches one page of one user's feed.
func FeedPageKey(userID uint, page, pageSize int) string {
	return fmt.Sprintf(feedPageKeyPattern, userID, page, pageSize)
}

// FeedIndexKey is the secondary index holding every cached feed page key of
// one user; invalidating the feed reads this set instead of scanning.
func FeedIndexKey(userID uint) string {
	return fmt.Sprintf(feedIndexKeyPattern, userID)
}

// TrendingKey caches the trending list for one window bucket, in seconds.
func TrendingKey(windowSeconds int) string {
	return fmt.Sprintf(trendingKeyPattern, windowSeconds)
}

// RecommendationKey caches one user's recommendation list.
func RecommendationKey(userID uint) string {
	return fmt.Sprintf(recommendationKeyPattern, userID)
}

// SearchKey caches one normalized search query result page.
func SearchKey(queryHash string) string {
	return fmt.Sprintf(searchKeyPattern, queryHash)
}

// WatchHistoryKey caches one user's recent watch history.
func WatchHistoryKey(userID uint) string {
	return fmt.Sprintf(watchHistoryKeyPattern, userID)
}
