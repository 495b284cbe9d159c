package dbschema

import (
	"streamvibe.tv/read-gateway/app/domain/subscription"
	"streamvibe.tv/read-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Subscription{})
}

type Subscription struct {
	BaseModel
	UserID    uint `gorm:"uniqueIndex:idx_sub_once,priority:1"`
	ChannelID uint `gorm:"uniqueIndex:idx_sub_once,priority:2;index"`
}

func NewSchemaSubscription(s *subscription.Subscription) *Subscription {
	return &Subscription{
		BaseModel: BaseModel{
			ID: s.ID,
		},
		UserID:    s.UserID,
		ChannelID: s.ChannelID,
	}
}

func (s *Subscription) EtoD() *subscription.Subscription {
	return &subscription.Subscription{
		ID:        s.ID,
		UserID:    s.UserID,
		ChannelID: s.ChannelID,
		CreatedAt: s.CreatedAt,
	}
}
