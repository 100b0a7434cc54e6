package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/psymetric/psymetric/internal/domain/patient"
	"github.com/psymetric/psymetric/internal/domain/questionnaire"
	"github.com/psymetric/psymetric/internal/resource"
)

type Status string

const (
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// CanTransitionTo reports whether the state machine allows the move. Only a
// running session can change state.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusStarted && (next == StatusCompleted || next == StatusCancelled)
}

// Session is one administration of a questionnaire to a patient. SessionUID
// is the public handle; the numeric id stays internal.
type Session struct {
	ID              int64
	SessionUID      uuid.UUID
	PatientID       int64
	QuestionnaireID int64
	Status          Status
	StartedAt       time.Time
	CompletedAt     *time.Time
	// TotalScore is persisted verbatim when a client supplies it on
	// completion. The server never computes it.
	TotalScore *float64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Responses     resource.Rel[[]*Response]
	Patient       resource.Rel[*patient.Patient]
	Questionnaire resource.Rel[*questionnaire.Questionnaire]
}

// Response records one answered question within a session. The pair
// (SessionID, QuestionID) is the primary key.
type Response struct {
	SessionID        int64
	QuestionID       int64
	ResponseOptionID int64
	RespondedAt      time.Time
}
