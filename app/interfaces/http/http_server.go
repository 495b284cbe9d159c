package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"streamvibe.tv/read-gateway/app/infrastructure/cache"
	"streamvibe.tv/read-gateway/app/interfaces/http/middleware"
	v1 "streamvibe.tv/read-gateway/app/interfaces/http/routes/v1"
	"streamvibe.tv/read-gateway/app/utils/logger"
	"streamvibe.tv/read-gateway/config/environment_variables"
)

type HttpServer struct {
	engine       *gin.Engine
	v1Route      *v1.V1Route
	cacheService cache.CacheService
}

func NewHttpServer(v1Route *v1.V1Route, cacheService cache.CacheService) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:       gin.New(),
		v1Route:      v1Route,
		cacheService: cacheService,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.CORS())
	server.engine.Use(middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.GET("/health-check", server.healthCheck)
	return &server
}

func (httpServer *HttpServer) healthCheck(c *gin.Context) {
	if err := httpServer.cacheService.HealthCheck(c.Request.Context()); err != nil {
		// Degraded but serving: reads fall through to the store.
		c.JSON(http.StatusOK, gin.H{"status": "degraded", "cache": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (httpServer *HttpServer) Run() error {
	port := environment_variables.EnvironmentVariables.API_PORT
	httpServer.v1Route.RegisterRouter(httpServer.engine.Group("/"))
	if err := httpServer.engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		return err
	}
	return nil
}
