package videos

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"streamvibe.tv/read-gateway/app/domain/common"
	"streamvibe.tv/read-gateway/app/domain/engagement"
	"streamvibe.tv/read-gateway/app/domain/video"
	"streamvibe.tv/read-gateway/app/interfaces/http/responses"
	"streamvibe.tv/read-gateway/app/utils/logger"
)

// VideosRoute exposes the per-video read aggregate and the engagement write
// path that feeds it.
type VideosRoute struct {
	videoService      *video.VideoService
	engagementService *engagement.EngagementService
}

func NewVideosRoute(videoService *video.VideoService, engagementService *engagement.EngagementService) *VideosRoute {
	return &VideosRoute{
		videoService:      videoService,
		engagementService: engagementService,
	}
}

func (route *VideosRoute) RegisterRouter(router gin.IRouter) {
	videosRouter := router.Group("/videos")
	videosRouter.GET("/:video_id", route.GetVideoDetail)
	videosRouter.POST("", route.CreateVideo)
	videosRouter.POST("/:video_id/views", route.RecordView)
	videosRouter.POST("/:video_id/likes", route.AddLike)
	videosRouter.POST("/:video_id/comments", route.AddComment)
}

// GetVideoDetail godoc
// @Summary     Get video detail
// @Description Returns the video with its owner and engagement counts.
// @Tags        videos
// @Produce     json
// @Param       video_id path int true "Video ID"
// @Success     200 {object} video.VideoDetail
// @Router      /v1/videos/{video_id} [get]
func (route *VideosRoute) GetVideoDetail(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	videoID, ok := pathID(reqCtx, "video_id")
	if !ok {
		return
	}

	detail, err := route.videoService.GetVideoDetail(ctx, videoID)
	if err != nil {
		switch {
		case common.IsNotFound(err):
			responses.WriteError(reqCtx, http.StatusNotFound,
				common.NewError("0d6477f0-7f83-4a6f-9b5e-1e3f6f5ad9a2", "video not found"))
		case common.IsTransient(err):
			reqCtx.Header("Retry-After", "1")
			responses.WriteError(reqCtx, http.StatusServiceUnavailable,
				common.NewError("8f3f0a44-95f7-4f8e-9d74-22d8d8f34f61", "store temporarily unavailable"))
		default:
			logger.GetLogger().Errorf("videos: failed to build detail for video %d: %v", videoID, err)
			responses.WriteError(reqCtx, http.StatusInternalServerError,
				common.NewError("6b1f2a0b-40c1-47c5-8f21-3b2f8b5a0b77", "failed to load video"))
		}
		return
	}

	reqCtx.JSON(http.StatusOK, detail)
}

type CreateVideoRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	ChannelID       uint     `json:"channel_id" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	Tags            []string `json:"tags"`
	DurationSeconds int      `json:"duration_seconds" binding:"required,gt=0"`
	VideoURL        string   `json:"video_url" binding:"required"`
	ThumbnailURL    string   `json:"thumbnail_url"`
}

// CreateVideo godoc
// @Summary     Publish a video
// @Tags        videos
// @Accept      json
// @Produce     json
// @Param       request body CreateVideoRequest true "video"
// @Success     201 {object} responses.GeneralResponse[video.Video]
// @Router      /v1/videos [post]
func (route *VideosRoute) CreateVideo(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var request CreateVideoRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("dd9c4f1a-6d5f-4f5d-b9ab-6a1f0d5c2b90", err.Error()))
		return
	}

	v := &video.Video{
		Title:           request.Title,
		Description:     request.Description,
		ChannelID:       request.ChannelID,
		Category:        request.Category,
		Tags:            request.Tags,
		DurationSeconds: request.DurationSeconds,
		VideoURL:        request.VideoURL,
		ThumbnailURL:    request.ThumbnailURL,
	}
	if err := route.videoService.CreateVideo(ctx, v); err != nil {
		if common.IsInvalid(err) {
			responses.WriteError(reqCtx, http.StatusBadRequest,
				common.NewError("31c7f5e0-9d28-4b6a-8f43-e2a0d6c91578", err.Error()))
			return
		}
		logger.GetLogger().Errorf("videos: failed to create video: %v", err)
		responses.WriteError(reqCtx, http.StatusInternalServerError,
			common.NewError("5a7a9a3e-41cb-49a2-8a3d-3fb9d7f6b1de", "failed to create video"))
		return
	}

	reqCtx.JSON(http.StatusCreated, responses.GeneralResponse[*video.Video]{
		Status: responses.ResponseCodeOk,
		Result: v,
	})
}

type RecordViewRequest struct {
	UserID       uint `json:"user_id" binding:"required"`
	WatchSeconds int  `json:"watch_seconds" binding:"gte=0"`
}

// RecordView godoc
// @Summary     Record a view
// @Tags        videos
// @Accept      json
// @Produce     json
// @Param       video_id path int true "Video ID"
// @Param       request body RecordViewRequest true "view"
// @Success     202 {object} responses.GeneralResponse[string]
// @Router      /v1/videos/{video_id}/views [post]
func (route *VideosRoute) RecordView(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	videoID, ok := pathID(reqCtx, "video_id")
	if !ok {
		return
	}
	var request RecordViewRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("e3f33a14-9d54-4a6f-8c3e-e2c1f35d8b02", err.Error()))
		return
	}

	if err := route.engagementService.RecordView(ctx, videoID, request.UserID, request.WatchSeconds); err != nil {
		route.writeEngagementError(reqCtx, err, "record view")
		return
	}

	reqCtx.JSON(http.StatusAccepted, responses.GeneralResponse[string]{
		Status: responses.ResponseCodeOk,
		Result: "view recorded",
	})
}

type AddLikeRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// AddLike godoc
// @Summary     Like a video
// @Tags        videos
// @Accept      json
// @Produce     json
// @Param       video_id path int true "Video ID"
// @Param       request body AddLikeRequest true "like"
// @Success     202 {object} responses.GeneralResponse[string]
// @Router      /v1/videos/{video_id}/likes [post]
func (route *VideosRoute) AddLike(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	videoID, ok := pathID(reqCtx, "video_id")
	if !ok {
		return
	}
	var request AddLikeRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("f7b53c7f-2f9b-4be1-a9fd-47bd6f24c70e", err.Error()))
		return
	}

	if err := route.engagementService.AddLike(ctx, videoID, request.UserID); err != nil {
		route.writeEngagementError(reqCtx, err, "add like")
		return
	}

	reqCtx.JSON(http.StatusAccepted, responses.GeneralResponse[string]{
		Status: responses.ResponseCodeOk,
		Result: "like recorded",
	})
}

type AddCommentRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// AddComment godoc
// @Summary     Comment on a video
// @Tags        videos
// @Accept      json
// @Produce     json
// @Param       video_id path int true "Video ID"
// @Param       request body AddCommentRequest true "comment"
// @Success     202 {object} responses.GeneralResponse[string]
// @Router      /v1/videos/{video_id}/comments [post]
func (route *VideosRoute) AddComment(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	videoID, ok := pathID(reqCtx, "video_id")
	if !ok {
		return
	}
	var request AddCommentRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("9a4f0a61-50e5-4d93-9c6e-5c128f9a7e13", err.Error()))
		return
	}

	if err := route.engagementService.AddComment(ctx, videoID, request.UserID, request.Text); err != nil {
		route.writeEngagementError(reqCtx, err, "add comment")
		return
	}

	reqCtx.JSON(http.StatusAccepted, responses.GeneralResponse[string]{
		Status: responses.ResponseCodeOk,
		Result: "comment recorded",
	})
}

func (route *VideosRoute) writeEngagementError(reqCtx *gin.Context, err error, action string) {
	switch {
	case common.IsInvalid(err):
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("0ab4e8d2-6f91-4c57-b3e0-8d5a2c7f1946", err.Error()))
	case common.IsNotFound(err):
		responses.WriteError(reqCtx, http.StatusNotFound,
			common.NewError("b2a8f5a3-0f3e-4d46-bd5e-3a2c84d0197c", "video not found"))
	case common.IsTransient(err):
		reqCtx.Header("Retry-After", "1")
		responses.WriteError(reqCtx, http.StatusServiceUnavailable,
			common.NewError("4c37d8c6-b8a9-4f70-90a7-6a9f2c1b8d54", "store temporarily unavailable"))
	default:
		logger.GetLogger().Errorf("videos: failed to %s: %v", action, err)
		responses.WriteError(reqCtx, http.StatusInternalServerError,
			common.NewError("1d2e9f07-6c3a-4b8e-a1f5-8e0c4d7b2a39", "failed to "+action))
	}
}

func pathID(reqCtx *gin.Context, name string) (uint, bool) {
	raw := reqCtx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		responses.WriteError(reqCtx, http.StatusBadRequest,
			common.NewError("7e8d2c5b-9f44-4a0e-bb1c-2f6a9d3e8c50", "invalid "+name))
		return 0, false
	}
	return uint(id), true
}
