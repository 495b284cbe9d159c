package subscription

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/invalidation"
)

type stubSubscriptionRepo struct {
	set map[[2]uint]bool
}

func (s *stubSubscriptionRepo) ChannelIDsOf(ctx context.Context, userID uint) ([]uint, error) {
	var out []uint
	for pair, subscribed := range s.set {
		if pair[0] == userID && subscribed {
			out = append(out, pair[1])
		}
	}
	return out, nil
}

func (s *stubSubscriptionRepo) SubscriberIDsOf(ctx context.Context, channelID uint) ([]uint, error) {
	var out []uint
	for pair, subscribed := range s.set {
		if pair[1] == channelID && subscribed {
			out = append(out, pair[0])
		}
	}
	return out, nil
}

func (s *stubSubscriptionRepo) Set(ctx context.Context, userID, channelID uint, subscribed bool) error {
	s.set[[2]uint{userID, channelID}] = subscribed
	return nil
}

type recordingPublisher struct {
	events []invalidation.Event
}

func (r *recordingPublisher) Publish(evt invalidation.Event) {
	r.events = append(r.events, evt)
}

func TestSetSubscribesAndPublishes(t *testing.T) {
	repo := &stubSubscriptionRepo{set: map[[2]uint]bool{}}
	publisher := &recordingPublisher{}
	svc := NewService(repo, publisher)

	require.NoError(t, svc.Set(context.Background(), 3, 42, true))

	channels, err := repo.ChannelIDsOf(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{42}, channels)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, invalidation.EventSubscriptionChanged, publisher.events[0].Type)
	assert.Equal(t, uint(3), publisher.events[0].UserID)
	assert.Equal(t, uint(42), publisher.events[0].ChannelID)
}

func TestSetUnsubscribePublishesToo(t *testing.T) {
	repo := &stubSubscriptionRepo{set: map[[2]uint]bool{{3, 42}: true}}
	publisher := &recordingPublisher{}
	svc := NewService(repo, publisher)

	require.NoError(t, svc.Set(context.Background(), 3, 42, false))
	assert.Len(t, publisher.events, 1)
}

func TestSetRejectsSelfSubscription(t *testing.T) {
	repo := &stubSubscriptionRepo{set: map[[2]uint]bool{}}
	publisher := &recordingPublisher{}
	svc := NewService(repo, publisher)

	err := svc.Set(context.Background(), 7, 7, true)
	assert.True(t, common.IsInvalid(err))
	assert.Empty(t, publisher.events)
	assert.Empty(t, repo.set)
}
