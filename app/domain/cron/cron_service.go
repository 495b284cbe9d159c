package cron

import (
	"context"

	"github.com/mileusna/crontab"
	"streamvibe.tv/read-gateway/app/domain/recommendation"
	"streamvibe.tv/read-gateway/app/domain/trending"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

// CronService owns the background schedules: the trending rollup refresh, the
// similarity snapshot lifecycle and the periodic environment reload.
type CronService struct {
	TrendingService       *trending.TrendingService
	RecommendationService *recommendation.RecommendationService
}

func NewService(
	trendingService *trending.TrendingService,
	recommendationService *recommendation.RecommendationService,
) *CronService {
	return &CronService{
		TrendingService:       trendingService,
		RecommendationService: recommendationService,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	cs.TrendingService.Start(ctx, ctab)
	cs.RecommendationService.Start(ctx, ctab)

	ctab.AddJob("* * * * *", func() {
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}
