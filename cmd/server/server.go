package main

import (
	"context"

	"github.com/mileusna/crontab"
	"streamvibe.tv/read-gateway/app/domain/cron"
	"streamvibe.tv/read-gateway/app/domain/invalidation"
	"streamvibe.tv/read-gateway/app/interfaces/http"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

type Application struct {
	HttpServer  *http.HttpServer
	Coordinator *invalidation.Coordinator
	CronService *cron.CronService
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}

	backgroundContext := context.Background()
	application.Coordinator.Start(backgroundContext)
	defer application.Coordinator.Stop()

	ctab := crontab.New()
	application.CronService.Start(backgroundContext, ctab)

	application.Start()
}
