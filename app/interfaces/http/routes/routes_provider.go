package routes

import (
	"github.com/google/wire"
	v1 "streamvibe.tv/read-gateway/app/interfaces/http/routes/v1"
	"streamvibe.tv/read-gateway/app/interfaces/http/routes/v1/search"
	"streamvibe.tv/read-gateway/app/interfaces/http/routes/v1/trending"
	"streamvibe.tv/read-gateway/app/interfaces/http/routes/v1/users"
	"streamvibe.tv/read-gateway/app/interfaces/http/routes/v1/videos"
)

var RouteProvider = wire.NewSet(
	videos.NewVideosRoute,
	users.NewUsersRoute,
	trending.NewTrendingRoute,
	search.NewSearchRoute,
	v1.NewV1Route,
)
