package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/psymetric/psymetric/internal/domain/patient"
	"github.com/psymetric/psymetric/internal/domain/questionnaire"
)

type View struct {
	SessionUID    uuid.UUID                        `json:"session_uid"`
	Status        Status                           `json:"status"`
	StartedAt     string                           `json:"started_at"`
	CompletedAt   *string                          `json:"completed_at"`
	TotalScore    *float64                         `json:"total_score"`
	Responses     *[]ResponseView                  `json:"responses,omitempty"`
	Patient       *patient.View                    `json:"patient,omitempty"`
	Questionnaire *questionnaire.QuestionnaireView `json:"questionnaire,omitempty"`
}

type ResponseView struct {
	QuestionID       int64     `json:"question_id"`
	ResponseOptionID int64     `json:"response_option_id"`
	RespondedAt      time.Time `json:"responded_at"`
}

func NewResponseView(r *Response) ResponseView {
	return ResponseView{
		QuestionID:       r.QuestionID,
		ResponseOptionID: r.ResponseOptionID,
		RespondedAt:      r.RespondedAt,
	}
}

func NewView(s *Session) View {
	view := View{
		SessionUID: s.SessionUID,
		Status:     s.Status,
		StartedAt:  s.StartedAt.UTC().Format(time.RFC3339),
		TotalScore: s.TotalScore,
	}
	if s.CompletedAt != nil {
		completed := s.CompletedAt.UTC().Format(time.RFC3339)
		view.CompletedAt = &completed
	}
	if responses, ok := s.Responses.Value(); ok {
		views := make([]ResponseView, 0, len(responses))
		for _, r := range responses {
			views = append(views, NewResponseView(r))
		}
		view.Responses = &views
	}
	if p, ok := s.Patient.Value(); ok {
		pv := patient.NewView(p)
		view.Patient = &pv
	}
	if q, ok := s.Questionnaire.Value(); ok {
		qv := questionnaire.NewQuestionnaireView(q)
		view.Questionnaire = &qv
	}
	return view
}
