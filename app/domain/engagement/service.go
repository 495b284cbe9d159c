package engagement

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

// EngagementService is the write path for views, likes and comments. Each
// acknowledged write notifies the invalidation coordinator; the notification
// is fire-and-forget, the write does not wait for the fan-out.
type EngagementService struct {
	repo   EngagementRepository
	events InvalidationPublisher
}

func NewService(repo EngagementRepository, events InvalidationPublisher) *EngagementService {
	return &EngagementService{
		repo:   repo,
		events: events,
	}
}

func (s *EngagementService) RecordView(ctx context.Context, videoID, userID uint, watchSeconds int) error {
	if watchSeconds < 0 {
		return fmt.Errorf("%w: watch duration %d", common.ErrInvalid, watchSeconds)
	}
	view := &View{
		VideoID:      videoID,
		UserID:       userID,
		WatchSeconds: watchSeconds,
	}
	if err := s.repo.RecordView(ctx, view); err != nil {
		return err
	}
	s.events.Publish(invalidation.Event{
		Type:    invalidation.EventViewRecorded,
		VideoID: videoID,
		UserID:  userID,
	})
	return nil
}

func (s *EngagementService) AddLike(ctx context.Context, videoID, userID uint) error {
	like := &Like{
		VideoID: videoID,
		UserID:  userID,
	}
	if err := s.repo.AddLike(ctx, like); err != nil {
		return err
	}
	s.events.Publish(invalidation.Event{
		Type:    invalidation.EventLikeAdded,
		VideoID: videoID,
		UserID:  userID,
	})
	return nil
}

func (s *EngagementService) AddComment(ctx context.Context, videoID, userID uint, text string) error {
	if text == "" {
		return fmt.Errorf("%w: empty comment", common.ErrInvalid)
	}
	comment := &Comment{
		VideoID: videoID,
		UserID:  userID,
		Text:    text,
	}
	if err := s.repo.AddComment(ctx, comment); err != nil {
		return err
	}
	s.events.Publish(invalidation.Event{
		Type:    invalidation.EventCommentAdded,
		VideoID: videoID,
		UserID:  userID,
	})
	return nil
}
