package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psymetric/psymetric/internal/domain/patient"
	"github.com/psymetric/psymetric/internal/domain/questionnaire"
	"github.com/psymetric/psymetric/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const sessionCols = `id, session_uid, patient_id, questionnaire_id, status,
	started_at, completed_at, total_score, created_at, updated_at`

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.SessionUID, &s.PatientID, &s.QuestionnaireID, &s.Status,
		&s.StartedAt, &s.CompletedAt, &s.TotalScore, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *repoPG) Create(ctx context.Context, s *Session) error {
	return r.conn(ctx).QueryRow(ctx,
		`INSERT INTO questionnaire_sessions (session_uid, patient_id, questionnaire_id, status, started_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		s.SessionUID, s.PatientID, s.QuestionnaireID, s.Status, s.StartedAt).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *repoPG) GetByUID(ctx context.Context, uid uuid.UUID) (*Session, error) {
	s, err := scanSession(r.conn(ctx).QueryRow(ctx,
		`SELECT `+sessionCols+` FROM questionnaire_sessions WHERE session_uid = $1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, s *Session) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE questionnaire_sessions
		 SET status = $2, completed_at = $3, total_score = $4, updated_at = NOW()
		 WHERE id = $1`,
		s.ID, s.Status, s.CompletedAt, s.TotalScore)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *repoPG) CreateResponse(ctx context.Context, resp *Response) error {
	err := r.conn(ctx).QueryRow(ctx,
		`INSERT INTO patient_responses (questionnaire_session_id, question_id, response_option_id)
		 VALUES ($1, $2, $3)
		 RETURNING responded_at`,
		resp.SessionID, resp.QuestionID, resp.ResponseOptionID).
		Scan(&resp.RespondedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateResponse
		}
		return err
	}
	return nil
}

func (r *repoPG) ListResponses(ctx context.Context, sessionID int64) ([]*Response, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT questionnaire_session_id, question_id, response_option_id, responded_at
		 FROM patient_responses
		 WHERE questionnaire_session_id = $1
		 ORDER BY responded_at ASC, question_id ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []*Response
	for rows.Next() {
		var resp Response
		if err := rows.Scan(&resp.SessionID, &resp.QuestionID, &resp.ResponseOptionID, &resp.RespondedAt); err != nil {
			return nil, err
		}
		responses = append(responses, &resp)
	}
	return responses, rows.Err()
}

func (r *repoPG) GetPatient(ctx context.Context, patientID int64) (*patient.Patient, error) {
	var p patient.Patient
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, patient_code, full_name, birth_date, gender, marital_status,
			nationality, profession, education_level, referral_reason, referred_by,
			created_at, updated_at
		 FROM patients WHERE id = $1`, patientID).
		Scan(&p.ID, &p.PatientCode, &p.FullName, &p.BirthDate, &p.Gender,
			&p.MaritalStatus, &p.Nationality, &p.Profession, &p.EducationLevel,
			&p.ReferralReason, &p.ReferredBy, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) GetQuestionnaire(ctx context.Context, questionnaireID int64) (*questionnaire.Questionnaire, error) {
	var q questionnaire.Questionnaire
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, code, title, description, edition, is_active, created_at, updated_at
		 FROM questionnaires WHERE id = $1`, questionnaireID).
		Scan(&q.ID, &q.Code, &q.Title, &q.Description, &q.Edition, &q.IsActive,
			&q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, questionnaire.ErrQuestionnaireNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}
