package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/psymetric/psymetric/internal/platform/validation"
	"github.com/psymetric/psymetric/internal/resource"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrDuplicateResponse  = errors.New("question already answered in this session")
	ErrSessionNotStarted  = errors.New("session is not in a started state")
	ErrWrongQuestionnaire = errors.New("question does not belong to the session's questionnaire")
	ErrWrongScale         = errors.New("response option does not belong to the question's scale")
)

type Service struct {
	sessions       Repository
	patients       PatientFinder
	questionnaires QuestionnaireFinder
	questions      QuestionGetter
	options        OptionGetter
}

func NewService(sessions Repository, patients PatientFinder, questionnaires QuestionnaireFinder, questions QuestionGetter, options OptionGetter) *Service {
	return &Service{
		sessions:       sessions,
		patients:       patients,
		questionnaires: questionnaires,
		questions:      questions,
		options:        options,
	}
}

type StartRequest struct {
	PatientCode       string `json:"patient_code" validate:"required,len=6"`
	QuestionnaireCode string `json:"questionnaire_code" validate:"required,max=10"`
}

// Start opens a session for an existing patient against an active
// questionnaire and hands back its fresh uid. Codes are stored upper-cased,
// so both handles are canonicalized before the lookups.
func (s *Service) Start(ctx context.Context, req StartRequest) (*Session, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	p, err := s.patients.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(req.PatientCode)))
	if err != nil {
		return nil, err
	}
	q, err := s.questionnaires.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(req.QuestionnaireCode)))
	if err != nil {
		return nil, err
	}
	if !q.IsActive {
		return nil, validation.NewError("questionnaire_code",
			"The selected questionnaire is not active.")
	}

	sess := &Session{
		SessionUID:      uuid.New(),
		PatientID:       p.ID,
		QuestionnaireID: q.ID,
		Status:          StatusStarted,
		StartedAt:       time.Now(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by uid. include=responses,patient,questionnaire nest
// the related records.
func (s *Service) Get(ctx context.Context, uid uuid.UUID, inc resource.Includes) (*Session, error) {
	sess, err := s.sessions.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if inc.Has("responses") {
		responses, err := s.sessions.ListResponses(ctx, sess.ID)
		if err != nil {
			return nil, err
		}
		sess.Responses = resource.Loaded(responses)
	}
	if inc.Has("patient") {
		p, err := s.sessions.GetPatient(ctx, sess.PatientID)
		if err != nil {
			return nil, err
		}
		sess.Patient = resource.Loaded(p)
	}
	if inc.Has("questionnaire") {
		q, err := s.sessions.GetQuestionnaire(ctx, sess.QuestionnaireID)
		if err != nil {
			return nil, err
		}
		sess.Questionnaire = resource.Loaded(q)
	}
	return sess, nil
}

type TransitionRequest struct {
	Status     string   `json:"status" validate:"required,oneof=COMPLETED CANCELLED"`
	TotalScore *float64 `json:"total_score"`
}

// Transition moves a STARTED session to COMPLETED or CANCELLED. Completing
// stamps completed_at and stores the client-supplied total_score verbatim.
func (s *Service) Transition(ctx context.Context, uid uuid.UUID, req TransitionRequest) (*Session, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	sess, err := s.sessions.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	next := Status(req.Status)
	if !sess.Status.CanTransitionTo(next) {
		return nil, validation.NewError("status",
			fmt.Sprintf("Cannot transition a %s session to %s.", sess.Status, next))
	}

	sess.Status = next
	if next == StatusCompleted {
		now := time.Now()
		sess.CompletedAt = &now
		sess.TotalScore = req.TotalScore
	}
	if err := s.sessions.UpdateStatus(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

type RecordResponseRequest struct {
	QuestionID       int64 `json:"question_id" validate:"required"`
	ResponseOptionID int64 `json:"response_option_id" validate:"required"`
}

// RecordResponse stores one answer. The session must be running, the
// question must belong to the session's questionnaire and the option to the
// question's scale. A second answer for the same question is rejected.
func (s *Service) RecordResponse(ctx context.Context, uid uuid.UUID, req RecordResponseRequest) (*Response, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	sess, err := s.sessions.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if sess.Status != StatusStarted {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotStarted, sess.Status)
	}

	question, err := s.questions.GetByID(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}
	if question.QuestionnaireID != sess.QuestionnaireID {
		return nil, ErrWrongQuestionnaire
	}

	option, err := s.options.GetByID(ctx, req.ResponseOptionID)
	if err != nil {
		return nil, err
	}
	if option.ScaleCode != question.ScaleCode {
		return nil, ErrWrongScale
	}

	resp := &Response{
		SessionID:        sess.ID,
		QuestionID:       req.QuestionID,
		ResponseOptionID: req.ResponseOptionID,
	}
	if err := s.sessions.CreateResponse(ctx, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
