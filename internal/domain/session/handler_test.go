package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *Service, *echo.Echo) {
	svc, repo, finders := newTestService()
	seedFixtures(repo, finders)
	return NewHandler(svc), svc, echo.New()
}

func TestHandler_Start(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"patient_code":"ABC234","questionnaire_code":"BFP"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Start(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var view View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Status != StatusStarted {
		t.Errorf("expected STARTED, got %s", view.Status)
	}
	if view.CompletedAt != nil {
		t.Error("completed_at should be null on a new session")
	}
}

func TestHandler_Start_UnknownPatient(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"patient_code":"ZZZZZZ","questionnaire_code":"BFP"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Start(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if he.Message != "Patient not found" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestHandler_Get(t *testing.T) {
	h, svc, e := newTestHandler()
	sess := startSession(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/?include=patient", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("uid")
	c.SetParamValues(sess.SessionUID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := body["patient"]; !ok {
		t.Error("patient key should be present with include=patient")
	}
	if _, ok := body["responses"]; ok {
		t.Error("responses key should be absent without include=responses")
	}
}

func TestHandler_Get_InvalidUID(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("uid")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_Transition(t *testing.T) {
	h, svc, e := newTestHandler()
	sess := startSession(t, svc)

	body := `{"status":"COMPLETED","total_score":17.5}`
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("uid")
	c.SetParamValues(sess.SessionUID.String())

	if err := h.Transition(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var view View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Status != StatusCompleted || view.CompletedAt == nil {
		t.Errorf("unexpected view after completion: %+v", view)
	}
	if view.TotalScore == nil || *view.TotalScore != 17.5 {
		t.Errorf("total_score not echoed: %+v", view.TotalScore)
	}
}

func TestHandler_Transition_InvalidTransition(t *testing.T) {
	h, svc, e := newTestHandler()
	sess := startSession(t, svc)
	if _, err := svc.Transition(nil, sess.SessionUID, TransitionRequest{Status: "CANCELLED"}); err != nil {
		t.Fatalf("setup transition: %v", err)
	}

	body := `{"status":"COMPLETED"}`
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("uid")
	c.SetParamValues(sess.SessionUID.String())

	if err := h.Transition(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHandler_RecordResponse(t *testing.T) {
	h, svc, e := newTestHandler()
	sess := startSession(t, svc)

	body := `{"question_id":100,"response_option_id":10}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("uid")
	c.SetParamValues(sess.SessionUID.String())

	if err := h.RecordResponse(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_RecordResponse_Duplicate(t *testing.T) {
	h, svc, e := newTestHandler()
	sess := startSession(t, svc)

	send := func() *httptest.ResponseRecorder {
		body := `{"question_id":100,"response_option_id":10}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("uid")
		c.SetParamValues(sess.SessionUID.String())
		if err := h.RecordResponse(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return rec
	}

	if rec := send(); rec.Code != http.StatusCreated {
		t.Fatalf("first answer: expected 201, got %d", rec.Code)
	}
	rec := send()
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate answer: expected 422, got %d", rec.Code)
	}
	var resp struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Errors["question_id"]) == 0 {
		t.Errorf("expected question_id errors, got %+v", resp.Errors)
	}
}
