package infrastructure

import (
	"github.com/google/wire"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
)

var InfrastructureProvider = wire.NewSet(
	cache.NewCacheService,
)
