package userrepo

import (
	"context"

	"gorm.io/gorm"
	domain "streamvibe.tv/read-gateway/app/domain/user"
	"streamvibe.tv/read-gateway/app/infrastructure/database/dbschema"
	"streamvibe.tv/read-gateway/app/infrastructure/database/storeerr"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) domain.UserRepository {
	return &UserGormRepository{
		db: db,
	}
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var model dbschema.User
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, storeerr.Map(err)
	}
	return model.EtoD(), nil
}
