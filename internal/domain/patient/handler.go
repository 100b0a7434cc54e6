package patient

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psymetric/psymetric/internal/platform/auth"
	"github.com/psymetric/psymetric/internal/platform/validation"
	"github.com/psymetric/psymetric/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole("admin", "psychologist", "assistant"))
	read.GET("/patients", h.List)
	read.GET("/patients/:patient_code", h.FindByCode)

	write := api.Group("", auth.RequireRole("admin", "psychologist"))
	write.POST("/patients", h.Intake)
	write.PUT("/patients/:patient_code", h.Update)
	write.DELETE("/patients/:patient_code", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	patients, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(NewViews(patients), total, pg.Limit, pg.Offset))
}

func (h *Handler) FindByCode(c echo.Context) error {
	p, err := h.svc.FindByCode(c.Request().Context(), c.Param("patient_code"))
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewView(p))
}

func (h *Handler) Intake(c echo.Context) error {
	var req IntakeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Intake(c.Request().Context(), req)
	if err != nil {
		return writePatientError(c, err)
	}
	return c.JSON(http.StatusCreated, NewView(p))
}

func (h *Handler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Update(c.Request().Context(), c.Param("patient_code"), req)
	if err != nil {
		return writePatientError(c, err)
	}
	return c.JSON(http.StatusOK, NewView(p))
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("patient_code")); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func writePatientError(c echo.Context, err error) error {
	if ve, ok := validation.AsError(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors":  ve.Errors,
		})
	}
	if errors.Is(err, ErrPatientNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
