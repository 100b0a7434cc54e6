package patient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

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

const patientCols = `id, patient_code, full_name, birth_date, gender, marital_status,
	nationality, profession, education_level, referral_reason, referred_by,
	created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.PatientCode, &p.FullName, &p.BirthDate, &p.Gender,
		&p.MaritalStatus, &p.Nationality, &p.Profession, &p.EducationLevel,
		&p.ReferralReason, &p.ReferredBy, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func (r *repoPG) FindByCode(ctx context.Context, patientCode string) (*Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE patient_code = $1`, patientCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	err := r.conn(ctx).QueryRow(ctx,
		`INSERT INTO patients (patient_code, full_name, birth_date, gender,
			marital_status, nationality, profession, education_level,
			referral_reason, referred_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		p.PatientCode, p.FullName, p.BirthDate, p.Gender, p.MaritalStatus,
		p.Nationality, p.Profession, p.EducationLevel, p.ReferralReason, p.ReferredBy).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapPatientError(err)
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE patients SET full_name = $2, birth_date = $3, gender = $4,
			marital_status = $5, nationality = $6, profession = $7,
			education_level = $8, referral_reason = $9, referred_by = $10,
			updated_at = NOW()
		 WHERE patient_code = $1`,
		p.PatientCode, p.FullName, p.BirthDate, p.Gender, p.MaritalStatus,
		p.Nationality, p.Profession, p.EducationLevel, p.ReferralReason, p.ReferredBy)
	if err != nil {
		return mapPatientError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, patientCode string) error {
	// assessment_sessions cascade on patient deletion
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM patients WHERE patient_code = $1`, patientCode)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func mapPatientError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateCode
	}
	return err
}
