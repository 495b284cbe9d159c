package video

import (
	"context"
	"time"

	"streamvibe.tv/read-gateway/app/domain/user"
)

type Video struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ChannelID       uint      `json:"channel_id"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	DurationSeconds int       `json:"duration_seconds"`
	VideoURL        string    `json:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// VideoDetail is the cached per-video aggregate: the video, its owner and its
// engagement counts. It is derived state, reconstructible from the store at
// any time.
type VideoDetail struct {
	Video        Video     `json:"video"`
	Owner        user.User `json:"owner"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
}

// TrendingEntry is one row of a trending rollup: a video plus its view count
// inside the trending window.
type TrendingEntry struct {
	Video       Video `json:"video"`
	WindowViews int64 `json:"window_views"`
}

// VideoRepository is the video slice of the entity store. Every listing
// operation is ordered and bounded at the source; there is no "return
// everything" method.
type VideoRepository interface {
	Create(ctx context.Context, v *Video) error
	FindByID(ctx context.Context, id uint) (*Video, error)

	// QueryByChannels returns one page of videos from the given channels,
	// newest first, ordered and paginated by the store. The second return
	// reports whether another page exists.
	QueryByChannels(ctx context.Context, channelIDs []uint, page, pageSize int) ([]*Video, bool, error)

	// QueryTrending returns the most viewed videos inside the window as a
	// single aggregation query.
	QueryTrending(ctx context.Context, window time.Duration, limit int) ([]*TrendingEntry, error)

	// Search returns one page of videos matching q (and category when set),
	// matched and ordered by the store.
	Search(ctx context.Context, q, category string, page, pageSize int) ([]*Video, bool, error)

	// ListRecent returns up to limit of the newest videos. It bounds the
	// similarity-index candidate set.
	ListRecent(ctx context.Context, limit int) ([]*Video, error)
}
