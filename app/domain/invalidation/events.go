package invalidation

// EventType enumerates the write events the coordinator translates into
// cache-key invalidations.
type EventType string

const (
	EventVideoCreated        EventType = "VideoCreated"
	EventLikeAdded           EventType = "LikeAdded"
	EventCommentAdded        EventType = "CommentAdded"
	EventViewRecorded        EventType = "ViewRecorded"
	EventSubscriptionChanged EventType = "SubscriptionChanged"
)

// Event describes one acknowledged write. Only the ids relevant to the event
// type are set: VideoID for engagement events, ChannelID for VideoCreated,
// UserID for the acting user where one exists. Delivery is at-least-once and
// handling is idempotent.
type Event struct {
	Type      EventType `json:"type"`
	VideoID   uint      `json:"video_id,omitempty"`
	UserID    uint      `json:"user_id,omitempty"`
	ChannelID uint      `json:"channel_id,omitempty"`
}
