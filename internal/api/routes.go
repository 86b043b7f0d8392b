// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/lagvtt/backend/internal/models"
	"github.com/lagvtt/backend/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Plans             storage.PlanStore
	Library           storage.UnitLibrary
	Templates         map[string]*models.BattlePlan
	Render            RenderOptions
	AllowPlanDeletion bool
	WSMaxMessageKB    int
	Version           string
}

// Handlers holds all handler instances
type Handlers struct {
	Health            HealthHandler
	Plan              PlanHandler
	Convert           ConvertHandler
	Library           LibraryHandler
	Preview           PreviewHandler
	allowPlanDeletion bool
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	h := &Handlers{
		Health:            NewHealthHandler(deps.Version),
		Plan:              NewPlanHandler(deps.Plans, deps.Templates, deps.Render),
		Convert:           NewConvertHandler(deps.Render),
		Preview:           NewWebSocketHandler(deps.Render, deps.WSMaxMessageKB),
		allowPlanDeletion: deps.AllowPlanDeletion,
	}
	if deps.Library != nil {
		h.Library = NewLibraryHandler(deps.Library)
	}
	return h
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// Stored plans
	planGroup := apiGroup.Group("/plans")
	planGroup.POST("", handlers.Plan.HandleCreatePlan)
	planGroup.GET("", handlers.Plan.HandleListPlans)
	planGroup.GET("/defaults", handlers.Plan.HandleGetDefaultPlans)
	planGroup.POST("/defaults/load", handlers.Plan.HandleLoadDefaultPlan)
	planGroup.GET("/:id", handlers.Plan.HandleGetPlan)
	planGroup.PUT("/:id", handlers.Plan.HandleUpdatePlan)
	planGroup.PUT("/:id/name", handlers.Plan.HandleRenamePlan)
	planGroup.GET("/:id/msgpack", handlers.Plan.HandleGetPlanMsgpack)
	planGroup.GET("/:id/export", handlers.Plan.HandleExportPlan)
	planGroup.GET("/:id/url", handlers.Plan.HandleGetPlanURL)

	// Conditional delete based on config
	if handlers.allowPlanDeletion {
		planGroup.DELETE("/:id", handlers.Plan.HandleDeletePlan)
	}

	// Conversions
	convertGroup := apiGroup.Group("/convert")
	convertGroup.POST("/script", handlers.Convert.HandleConvertScript)
	convertGroup.POST("/url", handlers.Convert.HandleConvertURL)
	convertGroup.POST("/import", handlers.Convert.HandleImportScript)

	// Unit and image library
	if handlers.Library != nil {
		libraryGroup := apiGroup.Group("/library")
		libraryGroup.GET("/units", handlers.Library.HandleListUnits)
		libraryGroup.POST("/units", handlers.Library.HandleSaveUnit)
		libraryGroup.GET("/units/:label", handlers.Library.HandleGetUnit)
		libraryGroup.DELETE("/units/:label", handlers.Library.HandleDeleteUnit)
		libraryGroup.GET("/images", handlers.Library.HandleListImages)
		libraryGroup.POST("/images", handlers.Library.HandleSaveImage)
		libraryGroup.DELETE("/images/:name", handlers.Library.HandleDeleteImage)
	}

	RegisterWebSocketRoutes(e, handlers)
}

// RegisterWebSocketRoutes registers WebSocket routes
func RegisterWebSocketRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/api/ws/preview", handlers.Preview.HandleWebSocket)
}

// SetupMiddleware configures the error handler and the logger level.
// Unexpected error details are only exposed at debug level.
func SetupMiddleware(e *echo.Echo, logLevel string) {
	e.HTTPErrorHandler = ErrorHandler

	lvl := ParseLogLevel(logLevel)
	e.Logger.SetLevel(lvl)
	showErrorDetails = lvl == log.DEBUG
}

// ParseLogLevel maps a config log level name to a gommon level. Unknown
// names fall back to INFO.
func ParseLogLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
