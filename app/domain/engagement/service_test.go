package engagement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/invalidation"
)

type stubEngagementRepo struct {
	views    []*View
	likes    []*Like
	comments []*Comment
	failWith error
}

func (s *stubEngagementRepo) CountViews(ctx context.Context, videoID uint) (int64, error) {
	return 0, nil
}
func (s *stubEngagementRepo) CountLikes(ctx context.Context, videoID uint) (int64, error) {
	return 0, nil
}
func (s *stubEngagementRepo) CountComments(ctx context.Context, videoID uint) (int64, error) {
	return 0, nil
}

func (s *stubEngagementRepo) RecordView(ctx context.Context, v *View) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.views = append(s.views, v)
	return nil
}

func (s *stubEngagementRepo) AddLike(ctx context.Context, l *Like) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.likes = append(s.likes, l)
	return nil
}

func (s *stubEngagementRepo) AddComment(ctx context.Context, c *Comment) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.comments = append(s.comments, c)
	return nil
}

func (s *stubEngagementRepo) WatchedVideos(ctx context.Context, userID uint, limit int) ([]*WatchedVideo, error) {
	return nil, nil
}

type recordingPublisher struct {
	events []invalidation.Event
}

func (p *recordingPublisher) Publish(evt invalidation.Event) {
	p.events = append(p.events, evt)
}

func TestRecordViewPersistsAndPublishes(t *testing.T) {
	repo := &stubEngagementRepo{}
	events := &recordingPublisher{}
	svc := NewService(repo, events)

	require.NoError(t, svc.RecordView(context.Background(), 5, 7, 120))

	require.Len(t, repo.views, 1)
	assert.Equal(t, 120, repo.views[0].WatchSeconds)
	require.Len(t, events.events, 1)
	assert.Equal(t, invalidation.EventViewRecorded, events.events[0].Type)
	assert.Equal(t, uint(5), events.events[0].VideoID)
	assert.Equal(t, uint(7), events.events[0].UserID)
}

func TestRecordViewRejectsNegativeDuration(t *testing.T) {
	events := &recordingPublisher{}
	svc := NewService(&stubEngagementRepo{}, events)

	err := svc.RecordView(context.Background(), 5, 7, -1)
	assert.True(t, common.IsInvalid(err))
	assert.Empty(t, events.events)
}

func TestAddLikePublishes(t *testing.T) {
	repo := &stubEngagementRepo{}
	events := &recordingPublisher{}
	svc := NewService(repo, events)

	require.NoError(t, svc.AddLike(context.Background(), 5, 7))
	require.Len(t, events.events, 1)
	assert.Equal(t, invalidation.EventLikeAdded, events.events[0].Type)
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	events := &recordingPublisher{}
	svc := NewService(&stubEngagementRepo{}, events)

	err := svc.AddComment(context.Background(), 5, 7, "")
	assert.True(t, common.IsInvalid(err))
	assert.Empty(t, events.events)
}

func TestFailedWriteDoesNotPublish(t *testing.T) {
	repo := &stubEngagementRepo{failWith: common.ErrTransient}
	events := &recordingPublisher{}
	svc := NewService(repo, events)

	err := svc.AddComment(context.Background(), 5, 7, "nice")
	assert.True(t, errors.Is(err, common.ErrTransient))
	assert.Empty(t, events.events)
}
