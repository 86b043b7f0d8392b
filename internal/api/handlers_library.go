// handlers_library.go - Saved unit and image library handlers
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lagvtt/backend/internal/models"
	"github.com/lagvtt/backend/internal/storage"
)

// LibraryHandlerImpl implements the LibraryHandler interface
type LibraryHandlerImpl struct {
	library storage.UnitLibrary
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(library storage.UnitLibrary) LibraryHandler {
	return &LibraryHandlerImpl{library: library}
}

// HandleListUnits returns every saved unit
func (h *LibraryHandlerImpl) HandleListUnits(c echo.Context) error {
	units, err := h.library.ListUnits(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list units", err)
	}
	return c.JSON(http.StatusOK, units)
}

// HandleGetUnit returns a saved unit by label
func (h *LibraryHandlerImpl) HandleGetUnit(c echo.Context) error {
	label := c.Param("label")
	if label == "" {
		return NewValidationError("label")
	}

	u, err := h.library.GetUnit(c.Request().Context(), label)
	if err != nil {
		return storeError("unit", label, err)
	}
	return c.JSON(http.StatusOK, u)
}

// HandleSaveUnit stores a unit under its label, replacing any previous one
func (h *LibraryHandlerImpl) HandleSaveUnit(c echo.Context) error {
	var u models.SavedUnit
	if err := c.Bind(&u); err != nil {
		return NewBadRequestError("invalid unit body", err)
	}
	if err := validateSavedUnit(&u); err != nil {
		return err
	}

	if err := h.library.SaveUnit(c.Request().Context(), u); err != nil {
		return NewInternalError("failed to save unit", err)
	}
	return c.JSON(http.StatusCreated, u)
}

// HandleDeleteUnit removes a saved unit
func (h *LibraryHandlerImpl) HandleDeleteUnit(c echo.Context) error {
	label := c.Param("label")
	if label == "" {
		return NewValidationError("label")
	}

	if err := h.library.DeleteUnit(c.Request().Context(), label); err != nil {
		return storeError("unit", label, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleListImages returns every saved background image
func (h *LibraryHandlerImpl) HandleListImages(c echo.Context) error {
	images, err := h.library.ListImages(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list images", err)
	}
	return c.JSON(http.StatusOK, images)
}

// HandleSaveImage stores a background image URL under a name
func (h *LibraryHandlerImpl) HandleSaveImage(c echo.Context) error {
	var img models.SavedImage
	if err := c.Bind(&img); err != nil {
		return NewBadRequestError("invalid image body", err)
	}
	if strings.TrimSpace(img.Name) == "" {
		return NewValidationError("name")
	}
	if strings.TrimSpace(img.URL) == "" {
		return NewValidationError("url")
	}

	if err := h.library.SaveImage(c.Request().Context(), img); err != nil {
		return NewInternalError("failed to save image", err)
	}
	return c.JSON(http.StatusCreated, img)
}

// HandleDeleteImage removes a saved image
func (h *LibraryHandlerImpl) HandleDeleteImage(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return NewValidationError("name")
	}

	if err := h.library.DeleteImage(c.Request().Context(), name); err != nil {
		return storeError("image", name, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func validateSavedUnit(u *models.SavedUnit) error {
	if strings.TrimSpace(u.Label) == "" {
		return NewValidationError("label")
	}
	if u.Type == "" {
		return NewValidationError("type")
	}
	if u.Colour != "" && !u.Colour.Valid() {
		return NewValidationError("colour")
	}
	if u.Size == "" {
		u.Size = models.DefaultSize
	}
	if !models.ValidSize(u.Size) {
		return NewValidationError("size")
	}
	return nil
}
