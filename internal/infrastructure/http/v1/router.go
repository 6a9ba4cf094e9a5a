// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"audiens/internal/domain/refdata"
	"audiens/internal/domain/targetgroup"
	"audiens/internal/infrastructure/http/v1/handlers"
	"audiens/internal/infrastructure/http/v1/middleware"
	"audiens/internal/infrastructure/storage/postgres"
	"audiens/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// TargetGroups is the target group service
	TargetGroups *targetgroup.Service

	// RefStore holds the cached reference values
	RefStore *refdata.Store
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// Contract routes: path shapes and response envelope are fixed by the
	// admin frontend already in the field.
	tgHandler := handlers.NewTargetGroupHandler(baseHandler, cfg.TargetGroups)
	tg := router.Group("/TargetGroup")
	{
		tg.POST("/CreateTargetGroup", tgHandler.Create)
		tg.GET("/GetTargetGroups", tgHandler.List)
		tg.GET("/GetTargetGroupById/:id", tgHandler.Get)
		tg.GET("/GetTargetGroupMembers/:id", tgHandler.Members)
		tg.DELETE("/DeleteTargetGroup/:id", tgHandler.Delete)
		tg.POST("/PreviewTargetGroup", tgHandler.Preview)
	}

	// API v1
	catalogHandler := handlers.NewCatalogHandler(baseHandler, cfg.RefStore)
	apiV1 := router.Group("/api/v1")
	{
		catalog := apiV1.Group("/catalog")
		catalog.GET("/attributes", catalogHandler.Attributes)
		catalog.GET("/attributes/:id/values", catalogHandler.Values)
	}

	return router
}
