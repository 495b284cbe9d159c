package engagementrepo

import (
	"context"

	"gorm.io/gorm"
	domain "streamvibe.tv/read-gateway/app/domain/engagement"
	"streamvibe.tv/read-gateway/app/infrastructure/database/dbschema"
	"streamvibe.tv/read-gateway/app/infrastructure/database/storeerr"
)

type EngagementGormRepository struct {
	db *gorm.DB
}

func NewEngagementGormRepository(db *gorm.DB) domain.EngagementRepository {
	return &EngagementGormRepository{
		db: db,
	}
}

func (r *EngagementGormRepository) CountViews(ctx context.Context, videoID uint) (int64, error) {
	return r.count(ctx, &dbschema.View{}, videoID)
}

func (r *EngagementGormRepository) CountLikes(ctx context.Context, videoID uint) (int64, error) {
	return r.count(ctx, &dbschema.Like{}, videoID)
}

func (r *EngagementGormRepository) CountComments(ctx context.Context, videoID uint) (int64, error) {
	return r.count(ctx, &dbschema.Comment{}, videoID)
}

func (r *EngagementGormRepository) count(ctx context.Context, model any, videoID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(model).
		Where("video_id = ?", videoID).
		Count(&n).Error
	if err != nil {
		return 0, storeerr.Map(err)
	}
	return n, nil
}

func (r *EngagementGormRepository) RecordView(ctx context.Context, v *domain.View) error {
	model := dbschema.NewSchemaView(v)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return storeerr.Map(err)
	}
	v.ID = model.ID
	v.CreatedAt = model.CreatedAt
	return nil
}

// AddLike is idempotent: a duplicate like is swallowed by the unique index.
func (r *EngagementGormRepository) AddLike(ctx context.Context, l *domain.Like) error {
	model := dbschema.NewSchemaLike(l)
	err := r.db.WithContext(ctx).
		Where(dbschema.Like{VideoID: l.VideoID, UserID: l.UserID}).
		FirstOrCreate(model).Error
	if err != nil {
		return storeerr.Map(err)
	}
	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	return nil
}

func (r *EngagementGormRepository) AddComment(ctx context.Context, c *domain.Comment) error {
	model := dbschema.NewSchemaComment(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return storeerr.Map(err)
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

// WatchedVideos groups the user's views per video in the store, most recent
// watch first.
func (r *EngagementGormRepository) WatchedVideos(ctx context.Context, userID uint, limit int) ([]*domain.WatchedVideo, error) {
	var rows []domain.WatchedVideo
	err := r.db.WithContext(ctx).
		Model(&dbschema.View{}).
		Select("video_id, SUM(watch_seconds) AS watch_seconds, MAX(created_at) AS last_watched").
		Where("user_id = ?", userID).
		Group("video_id").
		Order("last_watched DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, storeerr.Map(err)
	}

	watched := make([]*domain.WatchedVideo, len(rows))
	for i := range rows {
		watched[i] = &rows[i]
	}
	return watched, nil
}
