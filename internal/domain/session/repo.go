package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/psymetric/psymetric/internal/domain/patient"
	"github.com/psymetric/psymetric/internal/domain/questionnaire"
	"github.com/psymetric/psymetric/internal/domain/scale"
)

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByUID(ctx context.Context, uid uuid.UUID) (*Session, error)
	// UpdateStatus persists a state transition together with completed_at
	// and total_score.
	UpdateStatus(ctx context.Context, s *Session) error
	CreateResponse(ctx context.Context, r *Response) error
	ListResponses(ctx context.Context, sessionID int64) ([]*Response, error)
	GetPatient(ctx context.Context, patientID int64) (*patient.Patient, error)
	GetQuestionnaire(ctx context.Context, questionnaireID int64) (*questionnaire.Questionnaire, error)
}

// PatientFinder and QuestionnaireFinder resolve the public handles used when
// starting a session. The patient and questionnaire repositories satisfy
// them.
type PatientFinder interface {
	FindByCode(ctx context.Context, patientCode string) (*patient.Patient, error)
}

type QuestionnaireFinder interface {
	FindByCode(ctx context.Context, code string) (*questionnaire.Questionnaire, error)
}

type QuestionGetter interface {
	GetByID(ctx context.Context, id int64) (*questionnaire.Question, error)
}

type OptionGetter interface {
	GetByID(ctx context.Context, id int64) (*scale.ResponseOption, error)
}
