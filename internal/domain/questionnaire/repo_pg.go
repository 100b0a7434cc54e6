package questionnaire

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/psymetric/psymetric/internal/domain/scale"
	"github.com/psymetric/psymetric/internal/domain/taxonomy"
	"github.com/psymetric/psymetric/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

// =========== Questionnaire Repository ===========

type questionnaireRepoPG struct{ pool *pgxpool.Pool }

func NewQuestionnaireRepoPG(pool *pgxpool.Pool) QuestionnaireRepository {
	return &questionnaireRepoPG{pool: pool}
}

const questionnaireCols = `id, code, title, description, edition, is_active, created_at, updated_at`

func scanQuestionnaire(row pgx.Row) (*Questionnaire, error) {
	var q Questionnaire
	err := row.Scan(&q.ID, &q.Code, &q.Title, &q.Description, &q.Edition, &q.IsActive, &q.CreatedAt, &q.UpdatedAt)
	return &q, err
}

func (r *questionnaireRepoPG) List(ctx context.Context, onlyActive bool) ([]*Questionnaire, error) {
	query := `SELECT ` + questionnaireCols + ` FROM questionnaires`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code ASC`

	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Questionnaire
	for rows.Next() {
		q, err := scanQuestionnaire(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, q)
	}
	return items, rows.Err()
}

func (r *questionnaireRepoPG) GetByID(ctx context.Context, id int64) (*Questionnaire, error) {
	q, err := scanQuestionnaire(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+questionnaireCols+` FROM questionnaires WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuestionnaireNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *questionnaireRepoPG) FindByCode(ctx context.Context, code string) (*Questionnaire, error) {
	q, err := scanQuestionnaire(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+questionnaireCols+` FROM questionnaires WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuestionnaireNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *questionnaireRepoPG) Create(ctx context.Context, q *Questionnaire) error {
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO questionnaires (code, title, description, edition, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		q.Code, q.Title, q.Description, q.Edition, q.IsActive).
		Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateCode
	}
	return err
}

func (r *questionnaireRepoPG) Update(ctx context.Context, q *Questionnaire) error {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE questionnaires SET title = $2, description = $3, edition = $4,
			is_active = $5, updated_at = NOW()
		 WHERE id = $1`,
		q.ID, q.Title, q.Description, q.Edition, q.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuestionnaireNotFound
	}
	return nil
}

func (r *questionnaireRepoPG) Deactivate(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE questionnaires SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuestionnaireNotFound
	}
	return nil
}

func (r *questionnaireRepoPG) ListAreas(ctx context.Context, questionnaireID int64) ([]*taxonomy.Area, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT a.id, a.code, a.name, a.description, a.is_active, a.created_at, a.updated_at
		 FROM areas a
		 JOIN area_questionnaire aq ON aq.area_id = a.id
		 WHERE aq.questionnaire_id = $1
		 ORDER BY a.code ASC`, questionnaireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []*taxonomy.Area
	for rows.Next() {
		var a taxonomy.Area
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		areas = append(areas, &a)
	}
	return areas, rows.Err()
}

func (r *questionnaireRepoPG) ListFactors(ctx context.Context, questionnaireID int64) ([]*taxonomy.Factor, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT f.id, f.code, f.name, f.description, f.is_active, f.created_at, f.updated_at
		 FROM factors f
		 JOIN factor_questionnaire fq ON fq.factor_id = f.id
		 WHERE fq.questionnaire_id = $1
		 ORDER BY f.code ASC`, questionnaireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var factors []*taxonomy.Factor
	for rows.Next() {
		var f taxonomy.Factor
		if err := rows.Scan(&f.ID, &f.Code, &f.Name, &f.Description, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		factors = append(factors, &f)
	}
	return factors, rows.Err()
}

func (r *questionnaireRepoPG) SyncAreas(ctx context.Context, questionnaireID int64, areaIDs []int64) error {
	return r.syncEdges(ctx, "area_questionnaire", "area_id", questionnaireID, areaIDs)
}

func (r *questionnaireRepoPG) SyncFactors(ctx context.Context, questionnaireID int64, factorIDs []int64) error {
	return r.syncEdges(ctx, "factor_questionnaire", "factor_id", questionnaireID, factorIDs)
}

// syncEdges reconciles a questionnaire join table against the wanted id set
// inside one transaction. Rows present in both sets are left untouched.
func (r *questionnaireRepoPG) syncEdges(ctx context.Context, table, targetCol string, questionnaireID int64, targetIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT `+targetCol+` FROM `+table+` WHERE questionnaire_id = $1`, questionnaireID)
	if err != nil {
		return err
	}
	current := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	wanted := make(map[int64]bool, len(targetIDs))
	var toAdd []int64
	for _, id := range targetIDs {
		if wanted[id] {
			continue
		}
		wanted[id] = true
		if !current[id] {
			toAdd = append(toAdd, id)
		}
	}
	var toRemove []int64
	for id := range current {
		if !wanted[id] {
			toRemove = append(toRemove, id)
		}
	}

	if len(toRemove) > 0 {
		if _, err := tx.Exec(ctx,
			`DELETE FROM `+table+` WHERE questionnaire_id = $1 AND `+targetCol+` = ANY($2)`,
			questionnaireID, toRemove); err != nil {
			return err
		}
	}
	for _, id := range toAdd {
		if _, err := tx.Exec(ctx,
			`INSERT INTO `+table+` (questionnaire_id, `+targetCol+`) VALUES ($1, $2)`,
			questionnaireID, id); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *questionnaireRepoPG) ExistingAreaIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	return r.existingIDs(ctx, "areas", ids)
}

func (r *questionnaireRepoPG) ExistingFactorIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	return r.existingIDs(ctx, "factors", ids)
}

func (r *questionnaireRepoPG) existingIDs(ctx context.Context, table string, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT id FROM `+table+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = true
	}
	return existing, rows.Err()
}

// =========== Question Repository ===========

type questionRepoPG struct{ pool *pgxpool.Pool }

func NewQuestionRepoPG(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepoPG{pool: pool}
}

const questionCols = `id, questionnaire_id, scale_code, factor_id, question_identifier, display_order, question_text, created_at, updated_at`

func scanQuestion(row pgx.Row) (*Question, error) {
	var q Question
	err := row.Scan(&q.ID, &q.QuestionnaireID, &q.ScaleCode, &q.FactorID,
		&q.QuestionIdentifier, &q.DisplayOrder, &q.QuestionText, &q.CreatedAt, &q.UpdatedAt)
	return &q, err
}

func (r *questionRepoPG) GetByID(ctx context.Context, id int64) (*Question, error) {
	q, err := scanQuestion(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+questionCols+` FROM questions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (r *questionRepoPG) ListByQuestionnaire(ctx context.Context, questionnaireID int64) ([]*Question, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+questionCols+` FROM questions
		 WHERE questionnaire_id = $1
		 ORDER BY display_order ASC, id ASC`, questionnaireID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *questionRepoPG) ListOptions(ctx context.Context, scaleCode string) ([]*scale.ResponseOption, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT id, scale_code, option_text, score_value, created_at, updated_at
		 FROM response_options
		 WHERE scale_code = $1
		 ORDER BY score_value ASC`, scaleCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []*scale.ResponseOption
	for rows.Next() {
		var o scale.ResponseOption
		if err := rows.Scan(&o.ID, &o.ScaleCode, &o.OptionText, &o.ScoreValue, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		options = append(options, &o)
	}
	return options, rows.Err()
}
