// handlers_convert.go - Stateless plan conversion handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lagvtt/backend/internal/bplan"
)

// ConvertHandlerImpl implements the ConvertHandler interface
type ConvertHandlerImpl struct {
	render   RenderOptions
	dialects *bplan.Registry
}

// NewConvertHandler creates a new conversion handler
func NewConvertHandler(render RenderOptions) ConvertHandler {
	return &ConvertHandlerImpl{
		render:   render,
		dialects: bplan.GetGlobalRegistry(),
	}
}

// HandleConvertScript encodes the posted plan in the requested dialect
func (h *ConvertHandlerImpl) HandleConvertScript(c echo.Context) error {
	plan, err := bindPlan(c)
	if err != nil {
		return err
	}

	name := c.QueryParam("dialect")
	if name == "" {
		name = h.render.DefaultDialect
	}

	resp, apiErr := encodeScript(h.dialects, name, plan)
	if apiErr != nil {
		return apiErr
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleConvertURL renders the posted plan as a map image URL
func (h *ConvertHandlerImpl) HandleConvertURL(c echo.Context) error {
	plan, err := bindPlan(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, urlResponse{URL: bplan.OTFBMURL(plan, bplan.URLOptions{Scale: h.render.Scale})})
}

// HandleImportScript decodes a pasted uvar or bplan script into a plan
func (h *ConvertHandlerImpl) HandleImportScript(c echo.Context) error {
	var req importScriptRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.Text == "" {
		return NewValidationError("text")
	}

	plan, err := bplan.Decode(req.Text)
	if err != nil {
		return scriptError(err)
	}

	return c.JSON(http.StatusOK, plan)
}

type importScriptRequest struct {
	Text string `json:"text"`
}
