// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// PlanHandler handles stored battle plan operations
type PlanHandler interface {
	HandleCreatePlan(c echo.Context) error
	HandleListPlans(c echo.Context) error
	HandleGetPlan(c echo.Context) error
	HandleUpdatePlan(c echo.Context) error
	HandleDeletePlan(c echo.Context) error
	HandleRenamePlan(c echo.Context) error
	HandleGetPlanMsgpack(c echo.Context) error
	HandleExportPlan(c echo.Context) error
	HandleGetPlanURL(c echo.Context) error
	HandleGetDefaultPlans(c echo.Context) error
	HandleLoadDefaultPlan(c echo.Context) error
}

// ConvertHandler handles stateless plan/script/URL conversions
type ConvertHandler interface {
	HandleConvertScript(c echo.Context) error
	HandleConvertURL(c echo.Context) error
	HandleImportScript(c echo.Context) error
}

// LibraryHandler handles the saved unit and image library
type LibraryHandler interface {
	HandleListUnits(c echo.Context) error
	HandleGetUnit(c echo.Context) error
	HandleSaveUnit(c echo.Context) error
	HandleDeleteUnit(c echo.Context) error
	HandleListImages(c echo.Context) error
	HandleSaveImage(c echo.Context) error
	HandleDeleteImage(c echo.Context) error
}

// PreviewHandler handles live preview websocket connections
type PreviewHandler interface {
	HandleWebSocket(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// RenderOptions carries the settings shared by every handler that produces
// scripts or map URLs.
type RenderOptions struct {
	Scale          float64
	DefaultDialect string
}
