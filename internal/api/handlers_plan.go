// handlers_plan.go - Stored battle plan handlers
package api

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lagvtt/backend/internal/bplan"
	"github.com/lagvtt/backend/internal/models"
	"github.com/lagvtt/backend/internal/storage"
	"github.com/vmihailenco/msgpack/v5"
)

// PlanHandlerImpl implements the PlanHandler interface
type PlanHandlerImpl struct {
	store     storage.PlanStore
	templates map[string]*models.BattlePlan
	render    RenderOptions
	dialects  *bplan.Registry
}

// NewPlanHandler creates a new plan handler instance
func NewPlanHandler(store storage.PlanStore, templates map[string]*models.BattlePlan, render RenderOptions) PlanHandler {
	if templates == nil {
		templates = map[string]*models.BattlePlan{}
	}
	return &PlanHandlerImpl{
		store:     store,
		templates: templates,
		render:    render,
		dialects:  bplan.GetGlobalRegistry(),
	}
}

// HandleCreatePlan stores a new plan
func (h *PlanHandlerImpl) HandleCreatePlan(c echo.Context) error {
	plan, err := bindPlan(c)
	if err != nil {
		return err
	}

	info, err := h.store.Save(plan)
	if err != nil {
		return NewInternalError("failed to save plan", err)
	}

	return c.JSON(http.StatusCreated, info)
}

// HandleListPlans returns the most recently saved plans
func (h *PlanHandlerImpl) HandleListPlans(c echo.Context) error {
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			return NewValidationError("limit")
		}
		limit = n
	}

	plans, err := h.store.List(limit)
	if err != nil {
		return NewInternalError("failed to list plans", err)
	}
	if plans == nil {
		plans = []*models.PlanInfo{}
	}

	return c.JSON(http.StatusOK, plans)
}

// HandleGetPlan returns a stored plan
func (h *PlanHandlerImpl) HandleGetPlan(c echo.Context) error {
	plan, err := h.loadPlan(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}

// HandleUpdatePlan replaces a stored plan
func (h *PlanHandlerImpl) HandleUpdatePlan(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	plan, err := bindPlan(c)
	if err != nil {
		return err
	}

	info, err := h.store.Update(id, plan)
	if err != nil {
		return storeError("plan", id, err)
	}

	return c.JSON(http.StatusOK, info)
}

// HandleDeletePlan removes a stored plan
func (h *PlanHandlerImpl) HandleDeletePlan(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.store.Delete(id); err != nil {
		return storeError("plan", id, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleRenamePlan changes a plan's name
func (h *PlanHandlerImpl) HandleRenamePlan(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	var req renamePlanRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return NewValidationError("name")
	}

	info, err := h.store.Rename(id, req.Name)
	if err != nil {
		return storeError("plan", id, err)
	}

	return c.JSON(http.StatusOK, info)
}

// HandleGetPlanMsgpack returns a stored plan encoded as MessagePack, using
// the same field names as the JSON form
func (h *PlanHandlerImpl) HandleGetPlanMsgpack(c echo.Context) error {
	plan, err := h.loadPlan(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(plan); err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}

	return c.Blob(http.StatusOK, "application/msgpack", buf.Bytes())
}

// HandleExportPlan renders a stored plan as a chat script
func (h *PlanHandlerImpl) HandleExportPlan(c echo.Context) error {
	plan, err := h.loadPlan(c)
	if err != nil {
		return err
	}

	resp, apiErr := encodeScript(h.dialects, h.dialectName(c), plan)
	if apiErr != nil {
		return apiErr
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleGetPlanURL renders a stored plan as a map image URL
func (h *PlanHandlerImpl) HandleGetPlanURL(c echo.Context) error {
	plan, err := h.loadPlan(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, urlResponse{URL: bplan.OTFBMURL(plan, bplan.URLOptions{Scale: h.render.Scale})})
}

// HandleGetDefaultPlans lists the bundled plan templates
func (h *PlanHandlerImpl) HandleGetDefaultPlans(c echo.Context) error {
	names := bplan.TemplateNames(h.templates)
	defaults := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		t := h.templates[name]
		defaults = append(defaults, map[string]interface{}{
			"id":     name,
			"name":   t.Name,
			"width":  t.Width,
			"height": t.Height,
		})
	}

	return c.JSON(http.StatusOK, defaults)
}

// HandleLoadDefaultPlan stores a copy of a template and returns its info
func (h *PlanHandlerImpl) HandleLoadDefaultPlan(c echo.Context) error {
	var req loadDefaultRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.Name == "" {
		return NewValidationError("name")
	}

	tpl, ok := h.templates[req.Name]
	if !ok {
		return NewNotFoundError("template", req.Name)
	}

	info, err := h.store.Save(bplan.Normalize(tpl))
	if err != nil {
		return NewInternalError("failed to save plan", err)
	}

	return c.JSON(http.StatusCreated, info)
}

// Helper methods

func (h *PlanHandlerImpl) loadPlan(c echo.Context) (*models.BattlePlan, error) {
	id := c.Param("id")
	if id == "" {
		return nil, NewValidationError("id")
	}

	plan, err := h.store.Load(id)
	if err != nil {
		return nil, storeError("plan", id, err)
	}
	return plan, nil
}

func (h *PlanHandlerImpl) dialectName(c echo.Context) string {
	if d := c.QueryParam("dialect"); d != "" {
		return d
	}
	return h.render.DefaultDialect
}

// bindPlan reads a plan from the request body and normalizes it. A plan
// must be named since the name keys its script.
func bindPlan(c echo.Context) (*models.BattlePlan, error) {
	var plan models.BattlePlan
	if err := c.Bind(&plan); err != nil {
		return nil, NewBadRequestError("invalid plan body", err)
	}
	if strings.TrimSpace(plan.Name) == "" {
		return nil, NewValidationError("name")
	}
	return bplan.Normalize(&plan), nil
}

func encodeScript(dialects *bplan.Registry, name string, plan *models.BattlePlan) (*scriptResponse, *APIError) {
	if name == "" {
		name = bplan.UvarDialect{}.Name()
	}
	d, err := dialects.GetDialectByName(name)
	if err != nil {
		return nil, NewBadRequestError("unknown dialect", err)
	}

	lines := d.Encode(plan)
	return &scriptResponse{
		Dialect: d.Name(),
		Lines:   lines,
		Text:    strings.Join(lines, "\n"),
	}, nil
}

// Request and response types

type renamePlanRequest struct {
	Name string `json:"name"`
}

type loadDefaultRequest struct {
	Name string `json:"name"`
}

type scriptResponse struct {
	Dialect string   `json:"dialect"`
	Lines   []string `json:"lines"`
	Text    string   `json:"text"`
}

type urlResponse struct {
	URL string `json:"url"`
}
