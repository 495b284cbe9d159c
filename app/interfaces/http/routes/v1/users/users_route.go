package users

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/feed"
	"streamvibe.tv/read-gateway/app/domain/history"
	"streamvibe.tv/read-gateway/app/domain/query"
	"streamvibe.tv/read-gateway/app/domain/recommendation"
	"streamvibe.tv/read-gateway/app/domain/subscription"
	"streamvibe.tv/read-gateway/app/interfaces/http/responses"
	"streamvibe.tv/read-gateway/app/utils/logger"
)

// UsersRoute exposes the per-user read aggregates (feed, recommendations,
// watch history) and the subscription write path.
type UsersRoute struct {
	feedService           *feed.FeedService
	recommendationService *recommendation.RecommendationService
	historyService        *history.HistoryService
	subscriptionService   *subscription.SubscriptionService
}

func NewUsersRoute(
	feedService *feed.FeedService,
	recommendationService *recommendation.RecommendationService,
	historyService *history.HistoryService,
	subscriptionService *subscription.SubscriptionService,
) *UsersRoute {
	return &UsersRoute{
		feedService:           feedService,
		recommendationService: recommendationService,
		historyService:        historyService,
		subscriptionService:   subscriptionService,
	}
}

func (route *UsersRoute) RegisterRouter(router gin.IRouter) {
	usersRouter := router.Group("/users")
	usersRouter.GET("/:user_id/feed", route.GetFeed)
	usersRouter.GET("/:user_id/recommendations", route.GetRecommendations)
	usersRouter.GET("/:user_id/history", route.GetWatchHistory)
	usersRouter.PUT("/:user_id/subscriptions/:channel_id", route.Subscribe)
	usersRouter.DELETE("/:user_id/subscriptions/:channel_id", route.Unsubscribe)
}

// GetFeed godoc
// @Summary     Get subscription feed
// @Description Returns one page of videos from the user's subscribed channels, newest first.
// @Tags        users
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} feed.FeedPage
// @Router      /v1/users/{user_id}/feed [get]
func (route *UsersRoute) GetFeed(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	userID, ok := pathID(reqCtx, "user_id")
	if !ok {
		return
	}
	pagination, err := query.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("a1c8e3f6-0b52-47d9-8e4a-9f3b6c2d1e70", err.Error()))
		return
	}

	page, err := route.feedService.GetFeed(ctx, userID, pagination.Page, pagination.PageSize)
	if err != nil {
		route.writeReadError(reqCtx, err, "load feed")
		return
	}

	reqCtx.JSON(http.StatusOK, page)
}

// GetRecommendations godoc
// @Summary     Get recommendations
// @Description Returns top unwatched videos ranked against the user's watch history.
// @Tags        users
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       limit query int false "Maximum items"
// @Success     200 {object} recommendation.RecommendationList
// @Router      /v1/users/{user_id}/recommendations [get]
func (route *UsersRoute) GetRecommendations(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	userID, ok := pathID(reqCtx, "user_id")
	if !ok {
		return
	}
	limit, ok := queryLimit(reqCtx, 10)
	if !ok {
		return
	}

	list, err := route.recommendationService.Recommend(ctx, userID, limit)
	if err != nil {
		route.writeReadError(reqCtx, err, "load recommendations")
		return
	}

	reqCtx.JSON(http.StatusOK, list)
}

// GetWatchHistory godoc
// @Summary     Get watch history
// @Tags        users
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       limit query int false "Maximum items"
// @Success     200 {object} history.WatchHistory
// @Router      /v1/users/{user_id}/history [get]
func (route *UsersRoute) GetWatchHistory(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	userID, ok := pathID(reqCtx, "user_id")
	if !ok {
		return
	}
	limit, ok := queryLimit(reqCtx, 20)
	if !ok {
		return
	}

	watchHistory, err := route.historyService.GetWatchHistory(ctx, userID, limit)
	if err != nil {
		route.writeReadError(reqCtx, err, "load watch history")
		return
	}

	reqCtx.JSON(http.StatusOK, watchHistory)
}

// Subscribe godoc
// @Summary     Subscribe to a channel
// @Tags        users
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       channel_id path int true "Channel ID"
// @Success     200 {object} responses.GeneralResponse[string]
// @Router      /v1/users/{user_id}/subscriptions/{channel_id} [put]
func (route *UsersRoute) Subscribe(reqCtx *gin.Context) {
	route.setSubscription(reqCtx, true)
}

// Unsubscribe godoc
// @Summary     Unsubscribe from a channel
// @Tags        users
// @Produce     json
// @Param       user_id path int true "User ID"
// @Param       channel_id path int true "Channel ID"
// @Success     200 {object} responses.GeneralResponse[string]
// @Router      /v1/users/{user_id}/subscriptions/{channel_id} [delete]
func (route *UsersRoute) Unsubscribe(reqCtx *gin.Context) {
	route.setSubscription(reqCtx, false)
}

func (route *UsersRoute) setSubscription(reqCtx *gin.Context, subscribed bool) {
	ctx := reqCtx.Request.Context()

	userID, ok := pathID(reqCtx, "user_id")
	if !ok {
		return
	}
	channelID, ok := pathID(reqCtx, "channel_id")
	if !ok {
		return
	}

	if err := route.subscriptionService.Set(ctx, userID, channelID, subscribed); err != nil {
		switch {
		case common.IsTransient(err):
			reqCtx.Header("Retry-After", "1")
			responses.WriteError(reqCtx, http.StatusServiceUnavailable,
				common.NewError("3e5d7b92-1c48-4f0a-96d3-b7e2a8c41f65", "store temporarily unavailable"))
		default:
			responses.WriteError(reqCtx, http.StatusBadRequest,
				common.NewError("c4b90d27-85e1-4fa3-b6c8-0d9e5a2f7134", err.Error()))
		}
		return
	}

	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[string]{
		Status: responses.ResponseCodeOk,
		Result: "subscription updated",
	})
}

func (route *UsersRoute) writeReadError(reqCtx *gin.Context, err error, action string) {
	switch {
	case common.IsInvalid(err):
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("45b9d2e7-8c03-4a61-bf5d-7e2c0a9f1384", err.Error()))
	case common.IsNotFound(err):
		responses.WriteError(reqCtx, http.StatusNotFound,
			common.NewError("6f1a3d85-27c9-4e0b-a4d6-e8b5c2970f41", "not found"))
	case common.IsTransient(err):
		reqCtx.Header("Retry-After", "1")
		responses.WriteError(reqCtx, http.StatusServiceUnavailable,
			common.NewError("2b8e6c40-93d7-4f1a-85b2-c6d0a9e37f58", "store temporarily unavailable"))
	default:
		logger.GetLogger().Errorf("users: failed to %s: %v", action, err)
		responses.WriteError(reqCtx, http.StatusInternalServerError,
			common.NewError("d07f4a19-5e83-42b6-9c1d-7a2e8f5b0c64", "failed to "+action))
	}
}

func pathID(reqCtx *gin.Context, name string) (uint, bool) {
	raw := reqCtx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("90c2e7d4-6b1f-48a5-bdc3-5f8a0e92d716", "invalid "+name))
		return 0, false
	}
	return uint(id), true
}

func queryLimit(reqCtx *gin.Context, fallback int) (int, bool) {
	raw := reqCtx.DefaultQuery("limit", strconv.Itoa(fallback))
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 50 {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("58f0b3a6-d92c-41e7-8a5f-c4d1e6b29073", "invalid limit"))
		return 0, false
	}
	return limit, true
}
