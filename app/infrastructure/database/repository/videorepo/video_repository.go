package videorepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	domain "streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/infrastructure/database/dbschema"
	"streamvibe.tv/read-gateway/app/infrastructure/database/storeerr"
	"streamvibe.tv/read-gateway/app/utils/functional"
)

type VideoGormRepository struct {
	db *gorm.DB
}

func NewVideoGormRepository(db *gorm.DB) domain.VideoRepository {
	return &VideoGormRepository{
		db: db,
	}
}

func (r *VideoGormRepository) Create(ctx context.Context, v *domain.Video) error {
	model := dbschema.NewSchemaVideo(v)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return storeerr.Map(err)
	}
	v.ID = model.ID
	v.CreatedAt = model.CreatedAt
	return nil
}

func (r *VideoGormRepository) FindByID(ctx context.Context, id uint) (*domain.Video, error) {
	var model dbschema.Video
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, storeerr.Map(err)
	}
	return model.EtoD(), nil
}

// QueryByChannels orders and paginates in the store. One extra row is fetched
// to compute hasNext without a count query.
func (r *VideoGormRepository) QueryByChannels(ctx context.Context, channelIDs []uint, page, pageSize int) ([]*domain.Video, bool, error) {
	var models []dbschema.Video
	err := r.db.WithContext(ctx).
		Where("channel_id IN ?", channelIDs).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize + 1).
		Find(&models).Error
	if err != nil {
		return nil, false, storeerr.Map(err)
	}
	return pageOf(models, pageSize)
}

// QueryTrending is a single aggregation over the view events inside the
// window, never a scan of the full views table.
func (r *VideoGormRepository) QueryTrending(ctx context.Context, window time.Duration, limit int) ([]*domain.TrendingEntry, error) {
	since := time.Now().Add(-window)

	type trendingRow struct {
		dbschema.Video
		WindowViews int64
	}
	var rows []trendingRow
	err := r.db.WithContext(ctx).
		Model(&dbschema.Video{}).
		Select("video.*, COUNT(view.id) AS window_views").
		Joins("JOIN view ON view.video_id = video.id AND view.created_at > ?", since).
		Group("video.id").
		Order("window_views DESC, video.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, storeerr.Map(err)
	}

	entries := make([]*domain.TrendingEntry, len(rows))
	for i, row := range rows {
		entries[i] = &domain.TrendingEntry{
			Video:       *row.Video.EtoD(),
			WindowViews: row.WindowViews,
		}
	}
	return entries, nil
}

func (r *VideoGormRepository) Search(ctx context.Context, q, category string, page, pageSize int) ([]*domain.Video, bool, error) {
	pattern := "%" + q + "%"
	query := r.db.WithContext(ctx).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var models []dbschema.Video
	err := query.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize + 1).
		Find(&models).Error
	if err != nil {
		return nil, false, storeerr.Map(err)
	}
	return pageOf(models, pageSize)
}

func (r *VideoGormRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Video, error) {
	var models []dbschema.Video
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, storeerr.Map(err)
	}

	return functional.Map(models, func(m dbschema.Video) *domain.Video {
		return m.EtoD()
	}), nil
}

func pageOf(models []dbschema.Video, pageSize int) ([]*domain.Video, bool, error) {
	hasNext := len(models) > pageSize
	if hasNext {
		models = models[:pageSize]
	}
	videos := functional.Map(models, func(m dbschema.Video) *domain.Video {
		return m.EtoD()
	})
	return videos, hasNext, nil
}
