package v1

import (
	"github.com/gin-gonic/gin"
	"streamvibe.tv/read-gateway/app/interfaces/http/routes/v1/search"
	"streamvibe.tv/read-gateway/app/interfaces/http/routes/v1/trending"
	"streamvibe.tv/read-gateway/app/interfaces/http/routes/v1/users"
	"streamvibe.tv/read-gateway/app/interfaces/http/routes/v1/videos"
)

type V1Route struct {
	videosRoute   *videos.VideosRoute
	usersRoute    *users.UsersRoute
	trendingRoute *trending.TrendingRoute
	searchRoute   *search.SearchRoute
}

func NewV1Route(
	videosRoute *videos.VideosRoute,
	usersRoute *users.UsersRoute,
	trendingRoute *trending.TrendingRoute,
	searchRoute *search.SearchRoute,
) *V1Route {
	return &V1Route{
		videosRoute,
		usersRoute,
		trendingRoute,
		searchRoute,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Route.videosRoute.RegisterRouter(v1Router)
	v1Route.usersRoute.RegisterRouter(v1Router)
	v1Route.trendingRoute.RegisterRouter(v1Router)
	v1Route.searchRoute.RegisterRouter(v1Router)
}
