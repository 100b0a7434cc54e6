package session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/psymetric/psymetric/internal/domain/patient"
	"github.com/psymetric/psymetric/internal/domain/questionnaire"
	"github.com/psymetric/psymetric/internal/domain/scale"
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
	grp := api.Group("", auth.RequireRole("admin", "psychologist", "assistant"))
	grp.POST("/sessions", h.Start)
	grp.GET("/sessions/:uid", h.Get)
	grp.PATCH("/sessions/:uid", h.Transition)
	grp.POST("/sessions/:uid/responses", h.RecordResponse)
}

func (h *Handler) Start(c echo.Context) error {
	var req StartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.svc.Start(c.Request().Context(), req)
	if err != nil {
		return writeSessionError(c, err)
	}
	return c.JSON(http.StatusCreated, NewView(sess))
}

func (h *Handler) Get(c echo.Context) error {
	uid, err := parseUID(c)
	if err != nil {
		return err
	}
	inc := resource.ParseIncludes(c.QueryParam("include"))
	sess, err := h.svc.Get(c.Request().Context(), uid, inc)
	if err != nil {
		return writeSessionError(c, err)
	}
	return c.JSON(http.StatusOK, NewView(sess))
}

func (h *Handler) Transition(c echo.Context) error {
	uid, err := parseUID(c)
	if err != nil {
		return err
	}
	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.svc.Transition(c.Request().Context(), uid, req)
	if err != nil {
		return writeSessionError(c, err)
	}
	return c.JSON(http.StatusOK, NewView(sess))
}

func (h *Handler) RecordResponse(c echo.Context) error {
	uid, err := parseUID(c)
	if err != nil {
		return err
	}
	var req RecordResponseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.svc.RecordResponse(c.Request().Context(), uid, req)
	if err != nil {
		return writeSessionError(c, err)
	}
	return c.JSON(http.StatusCreated, NewResponseView(resp))
}

func parseUID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(c.Param("uid"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid session uid")
	}
	return uid, nil
}

func writeSessionError(c echo.Context, err error) error {
	if ve, ok := validation.AsError(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors":  ve.Errors,
		})
	}
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Session not found")
	case errors.Is(err, patient.ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	case errors.Is(err, questionnaire.ErrQuestionnaireNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Questionnaire not found")
	case errors.Is(err, questionnaire.ErrQuestionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Question not found")
	case errors.Is(err, scale.ErrOptionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Response option not found")
	case errors.Is(err, ErrDuplicateResponse):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors": validation.FieldErrors{
				"question_id": {"This question has already been answered in this session."},
			},
		})
	case errors.Is(err, ErrSessionNotStarted):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors": validation.FieldErrors{
				"status": {"Responses can only be recorded on a STARTED session."},
			},
		})
	case errors.Is(err, ErrWrongQuestionnaire):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors": validation.FieldErrors{
				"question_id": {"The question does not belong to the session's questionnaire."},
			},
		})
	case errors.Is(err, ErrWrongScale):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "The given data was invalid.",
			"errors": validation.FieldErrors{
				"response_option_id": {"The response option does not belong to the question's scale."},
			},
		})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
