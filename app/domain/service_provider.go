package domain

import (
	"github.com/google/wire"
	"streamvibe.tv/read-gateway/app/domain/cron"
	"streamvibe.tv/read-gateway/app/domain/engagement"
	"streamvibe.tv/read-gateway/app/domain/feed"
	"streamvibe.tv/read-gateway/app/domain/history"
	"streamvibe.tv/read-gateway/app/domain/invalidation"
	"streamvibe.tv/read-gateway/app/domain/recommendation"
	"streamvibe.tv/read-gateway/app/domain/search"
	"streamvibe.tv/read-gateway/app/domain/subscription"
	"streamvibe.tv/read-gateway/app/domain/trending"
	"streamvibe.tv/read-gateway/app/domain/video"
)

var ServiceProvider = wire.NewSet(
	invalidation.NewCoordinator,
	wire.Bind(new(invalidation.SubscriberLister), new(subscription.SubscriptionRepository)),
	wire.Bind(new(video.InvalidationPublisher), new(*invalidation.Coordinator)),
	wire.Bind(new(engagement.InvalidationPublisher), new(*invalidation.Coordinator)),
	wire.Bind(new(subscription.InvalidationPublisher), new(*invalidation.Coordinator)),
	video.NewService,
	engagement.NewService,
	subscription.NewService,
	feed.NewService,
	trending.NewService,
	recommendation.NewService,
	wire.Bind(new(invalidation.DriftSink), new(*recommendation.RecommendationService)),
	search.NewService,
	history.NewService,
	cron.NewService,
)
