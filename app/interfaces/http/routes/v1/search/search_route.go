package search

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/query"
	searchDomain "streamvibe.tv/read-gateway/app/domain/search"
	"streamvibe.tv/read-gateway/app/interfaces/http/responses"
	"streamvibe.tv/read-gateway/app/utils/logger"
)

type SearchRoute struct {
	searchService *searchDomain.SearchService
}

func NewSearchRoute(searchService *searchDomain.SearchService) *SearchRoute {
	return &SearchRoute{
		searchService: searchService,
	}
}

func (route *SearchRoute) RegisterRouter(router gin.IRouter) {
	router.GET("/search", route.Search)
}

// Search godoc
// @Summary     Search videos
// @Description Full-text match on title and description, optionally narrowed to a category.
// @Tags        search
// @Produce     json
// @Param       q query string true "Search query"
// @Param       category query string false "Category filter"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} searchDomain.SearchResult
// @Router      /v1/search [get]
func (route *SearchRoute) Search(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	pagination, err := query.GetPaginationFromQuery(reqCtx)
	if err != nil {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("4f82c6d1-95a3-4e07-b8f2-6d1a0c5e9374", err.Error()))
		return
	}

	result, err := route.searchService.Search(ctx,
		reqCtx.Query("q"),
		reqCtx.Query("category"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		switch {
		case common.IsInvalid(err):
			responses.WriteError(reqCtx, http.StatusBadRequest,
				common.NewError("a9d05e73-2c81-4b64-9f0a-e5c7d2168b30", err.Error()))
		case common.IsTransient(err):
			reqCtx.Header("Retry-After", "1")
			responses.WriteError(reqCtx, http.StatusServiceUnavailable,
				common.NewError("e16b4d82-7a05-4c93-8d2f-09c6a3e5b174", "store temporarily unavailable"))
		default:
			logger.GetLogger().Errorf("search: query failed: %v", err)
			responses.WriteError(reqCtx, http.StatusInternalServerError,
				common.NewError("72c9e0a4-d58b-4f16-b3a7-1e8d5c2f6049", "search failed"))
		}
		return
	}

	reqCtx.JSON(http.StatusOK, result)
}
