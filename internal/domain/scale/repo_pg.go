package scale

import (
	"context"
	"errors"
	"fmt"

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

// =========== Scale Repository ===========

type scaleRepoPG struct{ pool *pgxpool.Pool }

func NewScaleRepoPG(pool *pgxpool.Pool) ScaleRepository {
	return &scaleRepoPG{pool: pool}
}

func (r *scaleRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const scaleCols = `id, code, name, description, is_active, created_at, updated_at`

func scanScale(row pgx.Row) (*Scale, error) {
	var s Scale
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *scaleRepoPG) List(ctx context.Context, onlyActive bool) ([]*Scale, error) {
	query := `SELECT ` + scaleCols + ` FROM scales`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code ASC`

	rows, err := r.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scales []*Scale
	for rows.Next() {
		s, err := scanScale(rows)
		if err != nil {
			return nil, err
		}
		scales = append(scales, s)
	}
	return scales, rows.Err()
}

func (r *scaleRepoPG) FindByCode(ctx context.Context, code string) (*Scale, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+scaleCols+` FROM scales WHERE code = $1`, code)
	s, err := scanScale(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScaleNotFound
	}
	return s, err
}

// =========== ResponseOption Repository ===========

type responseOptionRepoPG struct{ pool *pgxpool.Pool }

func NewResponseOptionRepoPG(pool *pgxpool.Pool) ResponseOptionRepository {
	return &responseOptionRepoPG{pool: pool}
}

func (r *responseOptionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const optionCols = `id, scale_code, option_text, score_value, created_at, updated_at`

func scanOption(row pgx.Row) (*ResponseOption, error) {
	var o ResponseOption
	err := row.Scan(&o.ID, &o.ScaleCode, &o.OptionText, &o.ScoreValue, &o.CreatedAt, &o.UpdatedAt)
	return &o, err
}

func (r *responseOptionRepoPG) GetByID(ctx context.Context, id int64) (*ResponseOption, error) {
	row := r.conn(ctx).QueryRow(ctx,
		`SELECT `+optionCols+` FROM response_options WHERE id = $1`, id)
	o, err := scanOption(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOptionNotFound
	}
	return o, err
}

func (r *responseOptionRepoPG) ListByScale(ctx context.Context, scaleCode string) ([]*ResponseOption, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+optionCols+` FROM response_options WHERE scale_code = $1 ORDER BY score_value ASC`,
		scaleCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []*ResponseOption
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *responseOptionRepoPG) ListSummaries(ctx context.Context) ([]*ScaleSummary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT scale_code, COUNT(*) AS options_count
		FROM response_options
		GROUP BY scale_code
		ORDER BY scale_code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*ScaleSummary
	for rows.Next() {
		var s ScaleSummary
		if err := rows.Scan(&s.ScaleCode, &s.OptionsCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

func (r *responseOptionRepoPG) Create(ctx context.Context, o *ResponseOption) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO response_options (scale_code, option_text, score_value)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		o.ScaleCode, o.OptionText, o.ScoreValue).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	return mapOptionError(err)
}

func (r *responseOptionRepoPG) Update(ctx context.Context, o *ResponseOption) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE response_options
		SET scale_code = $2, option_text = $3, score_value = $4, updated_at = NOW()
		WHERE id = $1`,
		o.ID, o.ScaleCode, o.OptionText, o.ScoreValue)
	if err != nil {
		return mapOptionError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOptionNotFound
	}
	return nil
}

func (r *responseOptionRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM response_options WHERE id = $1`, id)
	if err != nil {
		return mapOptionError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOptionNotFound
	}
	return nil
}

func (r *responseOptionRepoPG) ScoreValueExists(ctx context.Context, scaleCode string, scoreValue int, excludeID int64) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM response_options
			WHERE scale_code = $1 AND score_value = $2 AND id <> $3
		)`, scaleCode, scoreValue, excludeID).Scan(&exists)
	return exists, err
}

func (r *responseOptionRepoPG) ScaleCodeReferenced(ctx context.Context, scaleCode string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM questions WHERE scale_code = $1)`,
		scaleCode).Scan(&exists)
	return exists, err
}

// RenameScale moves every row carrying oldCode to newCode in one transaction:
// the scales row itself, its response options, and the questions answered on
// it. The returned count is the number of renamed options.
func (r *responseOptionRepoPG) RenameScale(ctx context.Context, oldCode, newCode string) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE response_options SET scale_code = $2, updated_at = NOW() WHERE scale_code = $1`,
		oldCode, newCode)
	if err != nil {
		return 0, mapOptionError(err)
	}
	count := tag.RowsAffected()

	if _, err := tx.Exec(ctx,
		`UPDATE questions SET scale_code = $2, updated_at = NOW() WHERE scale_code = $1`,
		oldCode, newCode); err != nil {
		return 0, mapOptionError(err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE scales SET code = $2, updated_at = NOW() WHERE code = $1`,
		oldCode, newCode); err != nil {
		return 0, mapOptionError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return count, nil
}

// mapOptionError translates Postgres constraint violations into the package's
// sentinel errors.
func mapOptionError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicateScore
		case "23503":
			return ErrOptionInUse
		}
	}
	return err
}
