package subscription

import (
	"context"
	"time"
)

type Subscription struct {
	ID        uint
	UserID    uint
	ChannelID uint
	CreatedAt time.Time
}

// SubscriptionRepository is the subscriptions slice of the entity store.
type SubscriptionRepository interface {
	// ChannelIDsOf returns the channels the user subscribes to.
	ChannelIDsOf(ctx context.Context, userID uint) ([]uint, error)

	// SubscriberIDsOf returns the users subscribed to the channel.
	SubscriberIDsOf(ctx context.Context, channelID uint) ([]uint, error)

	// Set subscribes or unsubscribes the user. Both directions are
	// idempotent.
	Set(ctx context.Context, userID, channelID uint, subscribed bool) error
}
