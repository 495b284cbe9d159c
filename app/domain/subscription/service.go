package subscription

import (
	"context"
	"fmt"

	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/invalidation"
)

// InvalidationPublisher receives the write events this service produces.
type InvalidationPublisher interface {
	Publish(evt invalidation.Event)
}

type SubscriptionService struct {
	repo   SubscriptionRepository
	events InvalidationPublisher
}

func NewService(repo SubscriptionRepository, events InvalidationPublisher) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		events: events,
	}
}

// Set subscribes or unsubscribes userID to channelID and invalidates the
// user's cached feed pages.
func (s *SubscriptionService) Set(ctx context.Context, userID, channelID uint, subscribed bool) error {
	if userID == channelID {
		return fmt.Errorf("%w: cannot subscribe to own channel", common.ErrInvalid)
	}
	if err := s.repo.Set(ctx, userID, channelID, subscribed); err != nil {
		return err
	}
	s.events.Publish(invalidation.Event{
		Type:      invalidation.EventSubscriptionChanged,
		UserID:    userID,
		ChannelID: channelID,
	})
	return nil
}
