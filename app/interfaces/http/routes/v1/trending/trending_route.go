package trending

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"streamvibe.tv/read-gateway/app/domain/common"
	trendingDomain "streamvibe.tv/read-gateway/app/domain/trending"
	"streamvibe.tv/read-gateway/app/interfaces/http/responses"
	"streamvibe.tv/read-gateway/app/utils/logger"
)

type TrendingRoute struct {
	trendingService *trendingDomain.TrendingService
}

func NewTrendingRoute(trendingService *trendingDomain.TrendingService) *TrendingRoute {
	return &TrendingRoute{
		trendingService: trendingService,
	}
}

func (route *TrendingRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/trending", route.GetTrending)
}

// GetTrending godoc
// @Summary     Get trending videos
// @Description Returns the most viewed videos inside the window bucket covering the requested window.
// @Tags        trending
// @Produce     json
// @Param       window query int false "Window in seconds, defaults to 24h"
// @Success     200 {object} trendingDomain.TrendingList
// @Router      /v1/trending [get]
func (route *TrendingRoute) GetTrending(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	raw := reqCtx.DefaultQuery("window", "86400")
	windowSeconds, err := strconv.Atoi(raw)
	if err != nil || windowSeconds < 1 {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("17e6b2a9-4c05-4d83-9f7e-a1b8d5c20e46", "invalid window"))
		return
	}

	list, err := route.trendingService.GetTrending(ctx, windowSeconds)
	if err != nil {
		if common.IsTransient(err) {
			reqCtx.Header("Retry-After", "1")
			responses.WriteError(reqCtx, http.StatusServiceUnavailable,
				common.NewError("85d2f7c1-3b69-4e0a-bc48-f90e6a1d2573", "store temporarily unavailable"))
			return
		}
		logger.GetLogger().Errorf("trending: failed to load window %d: %v", windowSeconds, err)
		responses.WriteError(reqCtx, http.StatusInternalServerError,
			common.NewError("bc30a8e5-71d4-4f29-86b3-0e5c9d7a2f18", "failed to load trending"))
		return
	}

	reqCtx.JSON(http.StatusOK, list)
}
