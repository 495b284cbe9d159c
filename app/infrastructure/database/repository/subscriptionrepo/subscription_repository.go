package subscriptionrepo

import (
	"context"

	"gorm.io/gorm"
	domain "streamvibe.tv/read-gateway/app/domain/subscription"
	"streamvibe.tv/read-gateway/app/infrastructure/database/dbschema"
	"streamvibe.tv/read-gateway/app/infrastructure/database/storeerr"
)

type SubscriptionGormRepository struct {
	db *gorm.DB
}

func NewSubscriptionGormRepository(db *gorm.DB) domain.SubscriptionRepository {
	return &SubscriptionGormRepository{
		db: db,
	}
}

func (r *SubscriptionGormRepository) ChannelIDsOf(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&dbschema.Subscription{}).
		Where("user_id = ?", userID).
		Pluck("channel_id", &ids).Error
	if err != nil {
		return nil, storeerr.Map(err)
	}
	return ids, nil
}

func (r *SubscriptionGormRepository) SubscriberIDsOf(ctx context.Context, channelID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&dbschema.Subscription{}).
		Where("channel_id = ?", channelID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, storeerr.Map(err)
	}
	return ids, nil
}

// Set is idempotent in both directions: re-subscribing hits the unique index
// upsert, unsubscribing an absent row deletes nothing.
func (r *SubscriptionGormRepository) Set(ctx context.Context, userID, channelID uint, subscribed bool) error {
	if subscribed {
		model := dbschema.Subscription{UserID: userID, ChannelID: channelID}
		err := r.db.WithContext(ctx).
			Where(dbschema.Subscription{UserID: userID, ChannelID: channelID}).
			FirstOrCreate(&model).Error
		return storeerr.Map(err)
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		Delete(&dbschema.Subscription{}).Error
	return storeerr.Map(err)
}
