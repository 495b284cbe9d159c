//go:build wireinject

package main

import (
	"github.com/google/wire"
	"streamvibe.tv/read-gateway/app/domain"
	"streamvibe.tv/read-gateway/app/infrastructure"
	"streamvibe.tv/read-gateway/app/infrastructure/database"
	"streamvibe.tv/read-gateway/app/infrastructure/database/repository"
	"streamvibe.tv/read-gateway/app/interfaces/http"
	"streamvibe.tv/read-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		database.NewDB,
		infrastructure.InfrastructureProvider,
		repository.RepositoryProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
