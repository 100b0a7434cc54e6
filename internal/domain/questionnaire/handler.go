package questionnaire

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/psymetric/psymetric/internal/domain/taxonomy"
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
	read.GET("/questionnaires", h.List)
	read.GET("/questionnaires/code/:code", h.FindByCode)
	read.GET("/questions/:id", h.GetQuestion)
	read.GET("/questions/code/:code", h.QuestionsForQuestionnaire)

	write := api.Group("", auth.RequireRole("admin", "psychologist"))
	write.POST("/questionnaires", h.Create)
	write.PUT("/questionnaires/:id", h.Update)
	write.DELETE("/questionnaires/:id", h.Deactivate)
	write.PUT("/questionnaires/:id/areas", h.SyncAreas)
	write.PUT("/questionnaires/:id/factors", h.SyncFactors)
}

func (h *Handler) List(c echo.Context) error {
	all, _ := strconv.ParseBool(c.QueryParam("all"))
	inc := resource.ParseIncludes(c.QueryParam("include"))
	items, err := h.svc.List(c.Request().Context(), all, inc)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewQuestionnaireViews(items))
}

func (h *Handler) FindByCode(c echo.Context) error {
	inc := resource.ParseIncludes(c.QueryParam("include"))
	q, err := h.svc.FindByCode(c.Request().Context(), c.Param("code"), inc)
	if err != nil {
		if errors.Is(err, ErrQuestionnaireNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Questionnaire not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewQuestionnaireView(q))
}

func (h *Handler) GetQuestion(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	inc := resource.ParseIncludes(c.QueryParam("include"))
	q, err := h.svc.GetQuestion(c.Request().Context(), id, inc)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error":   true,
				"message": "Question not found",
				"details": fmt.Sprintf("No question exists with id %d", id),
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewQuestionView(q))
}

func (h *Handler) QuestionsForQuestionnaire(c echo.Context) error {
	inc := resource.ParseIncludes(c.QueryParam("include"))
	questions, err := h.svc.QuestionsForQuestionnaire(c.Request().Context(), c.Param("code"), inc)
	if err != nil {
		if errors.Is(err, ErrQuestionnaireNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Questionnaire not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, NewQuestionViews(questions))
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	q, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return writeQuestionnaireError(c, err)
	}
	return c.JSON(http.StatusCreated, NewQuestionnaireView(q))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	q, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return writeQuestionnaireError(c, err)
	}
	return c.JSON(http.StatusOK, NewQuestionnaireView(q))
}

func (h *Handler) Deactivate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrQuestionnaireNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Questionnaire not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func writeQuestionnaireError(c echo.Context, err error) error {
	if ve, ok := validation.AsError(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors":  ve.Errors,
		})
	}
	if errors.Is(err, ErrQuestionnaireNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Questionnaire not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

type syncAreasRequest struct {
	AreaIDs []int64 `json:"area_ids"`
}

type syncFactorsRequest struct {
	FactorIDs []int64 `json:"factor_ids"`
}

func (h *Handler) SyncAreas(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req syncAreasRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	q, err := h.svc.SyncAreas(c.Request().Context(), id, req.AreaIDs)
	if err != nil {
		return writeSyncError(c, err)
	}
	return c.JSON(http.StatusOK, NewQuestionnaireView(q))
}

func (h *Handler) SyncFactors(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req syncFactorsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	q, err := h.svc.SyncFactors(c.Request().Context(), id, req.FactorIDs)
	if err != nil {
		return writeSyncError(c, err)
	}
	return c.JSON(http.StatusOK, NewQuestionnaireView(q))
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func writeSyncError(c echo.Context, err error) error {
	var refErr *taxonomy.InvalidReferenceError
	if errors.As(err, &refErr) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors": validation.FieldErrors{
				refErr.Field: {fmt.Sprintf("The selected %s are invalid: %v.", refErr.Field, refErr.IDs)},
			},
		})
	}
	if errors.Is(err, ErrQuestionnaireNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Questionnaire not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
