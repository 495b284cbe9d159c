package repository

import (
	"github.com/google/wire"
	"streamvibe.tv/read-gateway/app/infrastructure/database/repository/engagementrepo"
	"streamvibe.tv/read-gateway/app/infrastructure/database/repository/subscriptionrepo"
	"streamvibe.tv/read-gateway/app/infrastructure/database/repository/userrepo"
	"streamvibe.tv/read-gateway/app/infrastructure/database/repository/videorepo"
)

var RepositoryProvider = wire.NewSet(
	videorepo.NewVideoGormRepository,
	userrepo.NewUserGormRepository,
	engagementrepo.NewEngagementGormRepository,
	subscriptionrepo.NewSubscriptionGormRepository,
)
