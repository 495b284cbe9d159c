package engagement

import (
	"context"
	"time"
)

type View struct {
	ID           uint
	VideoID      uint
	UserID       uint
	WatchSeconds int
	CreatedAt    time.Time
}

type Like struct {
	ID        uint
	VideoID   uint
	UserID    uint
	CreatedAt time.Time
}

type Comment struct {
	ID        uint
	VideoID   uint
	UserID    uint
	Text      string
	CreatedAt time.Time
}

// WatchedVideo is one row of a user's aggregated watch history: total watch
// time per video with the most recent watch timestamp.
type WatchedVideo struct {
	VideoID      uint      `json:"video_id"`
	WatchSeconds int       `json:"watch_seconds"`
	LastWatched  time.Time `json:"last_watched"`
}

// EngagementRepository is the views/likes/comments slice of the entity store.
// Counts are store-side aggregations, never row fetches.
type EngagementRepository interface {
	CountViews(ctx context.Context, videoID uint) (int64, error)
	CountLikes(ctx context.Context, videoID uint) (int64, error)
	CountComments(ctx context.Context, videoID uint) (int64, error)

	RecordView(ctx context.Context, v *View) error
	AddLike(ctx context.Context, l *Like) error
	AddComment(ctx context.Context, c *Comment) error

	// WatchedVideos returns the user's watch history grouped per video,
	// most recently watched first, bounded by limit.
	WatchedVideos(ctx context.Context, userID uint, limit int) ([]*WatchedVideo, error)
}
