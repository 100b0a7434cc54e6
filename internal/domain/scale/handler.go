package scale

import (
	"errors"
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
	read.GET("/response-options/scales", h.ListScales)
	read.GET("/response-options/code/:scaleCode", h.OptionsForScale)
	read.GET("/response-options/:id", h.GetOption)

	write := api.Group("", auth.RequireRole("admin", "psychologist"))
	write.POST("/response-options", h.CreateOption)
	write.PATCH("/response-options/rename", h.RenameScale)
	write.PATCH("/response-options/:id", h.UpdateOption)
	write.DELETE("/response-options/:id", h.DeleteOption)
}

func (h *Handler) ListScales(c echo.Context) error {
	inc := resource.ParseIncludes(c.QueryParam("include"))
	summaries, err := h.svc.ListScales(c.Request().Context(), inc)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewScaleSummaryViews(summaries))
}

func (h *Handler) OptionsForScale(c echo.Context) error {
	options, err := h.svc.OptionsForScale(c.Request().Context(), c.Param("scaleCode"))
	if err != nil {
		switch {
		case errors.Is(err, ErrScaleNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Scale not found")
		case errors.Is(err, ErrNoOptions):
			return echo.NewHTTPError(http.StatusNotFound, "No response options found for this scale")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewOptionViews(options))
}

func (h *Handler) GetOption(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	o, err := h.svc.GetOption(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrOptionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Response option not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewOptionView(o))
}

func (h *Handler) CreateOption(c echo.Context) error {
	var req CreateOptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o, err := h.svc.CreateOption(c.Request().Context(), req)
	if err != nil {
		return writeOptionError(c, err)
	}
	return c.JSON(http.StatusCreated, NewOptionView(o))
}

func (h *Handler) UpdateOption(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateOptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	o, err := h.svc.UpdateOption(c.Request().Context(), id, req)
	if err != nil {
		return writeOptionError(c, err)
	}
	return c.JSON(http.StatusOK, NewOptionView(o))
}

func (h *Handler) DeleteOption(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteOption(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrOptionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Response option not found")
		case errors.Is(err, ErrOptionInUse):
			return echo.NewHTTPError(http.StatusConflict,
				"Cannot delete a response option that is referenced by recorded responses")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RenameScale(c echo.Context) error {
	var req RenameScaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	count, err := h.svc.RenameScale(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, ErrScaleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Scale not found")
		}
		return writeOptionError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":       "Scale renamed successfully",
		"updated_count": count,
	})
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// writeOptionError maps service errors shared by the option write paths.
func writeOptionError(c echo.Context, err error) error {
	if ve, ok := validation.AsError(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors":  ve.Errors,
		})
	}
	switch {
	case errors.Is(err, ErrOptionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Response option not found")
	case errors.Is(err, ErrDuplicateScore):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors": validation.FieldErrors{
				"score_value": {"The combination of scale_code and score_value has already been taken."},
			},
		})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
