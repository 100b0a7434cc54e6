package taxonomy

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/psymetric/psymetric/internal/platform/auth"
	"github.com/psymetric/psymetric/internal/platform/validation"
	"github.com/psymetric/psymetric/internal/resource"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "psychologist", "assistant"))
	read.GET("/areas", h.ListAreas)
	read.GET("/dimensions", h.ListDimensions)
	read.GET("/factors", h.ListFactors)

	write := api.Group("", auth.RequireRole("admin", "psychologist"))
	write.PUT("/areas/:id/dimensions", h.SyncAreaDimensions)
	write.PUT("/factors/:id/dimensions", h.SyncFactorDimensions)
}

func (h *Handler) ListAreas(c echo.Context) error {
	all, _ := strconv.ParseBool(c.QueryParam("all"))
	inc := resource.ParseIncludes(c.QueryParam("include"))
	areas, err := h.svc.ListAreas(c.Request().Context(), all, inc)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewAreaViews(areas))
}

func (h *Handler) ListDimensions(c echo.Context) error {
	all, _ := strconv.ParseBool(c.QueryParam("all"))
	dims, err := h.svc.ListDimensions(c.Request().Context(), all)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewDimensionViews(dims))
}

func (h *Handler) ListFactors(c echo.Context) error {
	all, _ := strconv.ParseBool(c.QueryParam("all"))
	inc := resource.ParseIncludes(c.QueryParam("include"))
	factors, err := h.svc.ListFactors(c.Request().Context(), all, inc)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewFactorViews(factors))
}

type syncDimensionsRequest struct {
	DimensionIDs []int64 `json:"dimension_ids"`
}

func (h *Handler) SyncAreaDimensions(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req syncDimensionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.SyncAreaDimensions(c.Request().Context(), id, req.DimensionIDs)
	if err != nil {
		return writeSyncError(c, err, "Area not found")
	}
	return c.JSON(http.StatusOK, NewAreaView(a))
}

func (h *Handler) SyncFactorDimensions(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req syncDimensionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := h.svc.SyncFactorDimensions(c.Request().Context(), id, req.DimensionIDs)
	if err != nil {
		return writeSyncError(c, err, "Factor not found")
	}
	return c.JSON(http.StatusOK, NewFactorView(f))
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func writeSyncError(c echo.Context, err error, notFoundMsg string) error {
	var refErr *InvalidReferenceError
	if errors.As(err, &refErr) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors": validation.FieldErrors{
				refErr.Field: {fmt.Sprintf("The selected %s are invalid: %v.", refErr.Field, refErr.IDs)},
			},
		})
	}
	switch {
	case errors.Is(err, ErrAreaNotFound), errors.Is(err, ErrFactorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFoundMsg)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
