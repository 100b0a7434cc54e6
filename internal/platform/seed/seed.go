package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Seeder loads the reference catalog: assessment areas, dimensions, factors,
// response scales and the questionnaire library. Every pass upserts by code,
// so re-running the seeder converges on the same rows without duplicating
// anything.
type Seeder struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func New(pool *pgxpool.Pool, logger zerolog.Logger) *Seeder {
	return &Seeder{pool: pool, logger: logger}
}

// Run executes all seed passes in dependency order. Entities come first so
// that the link passes can resolve their codes to ids.
func (s *Seeder) Run(ctx context.Context) error {
	passes := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"areas", func(ctx context.Context) error { return s.seedEntities(ctx, "areas", areaRows) }},
		{"dimensions", func(ctx context.Context) error { return s.seedEntities(ctx, "dimensions", dimensionRows) }},
		{"factors", func(ctx context.Context) error { return s.seedEntities(ctx, "factors", factorRows) }},
		{"scales", s.seedScales},
		{"questionnaires", s.seedQuestionnaires},
		{"links", s.seedLinks},
	}

	for _, p := range passes {
		if err := p.fn(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", p.name, err)
		}
		s.logger.Info().Str("pass", p.name).Msg("seed pass complete")
	}
	return nil
}

func (s *Seeder) seedEntities(ctx context.Context, table string, rows []entityRow) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
		INSERT INTO %s (code, name, description)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    updated_at = NOW()`, table)

	for _, row := range rows {
		if _, err := tx.Exec(ctx, query, row.Code, row.Name, row.Description); err != nil {
			return fmt.Errorf("upsert %s %s: %w", table, row.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Seeder) seedScales(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const scaleQuery = `
		INSERT INTO scales (code, name)
		VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name, updated_at = NOW()`

	const optionQuery = `
		INSERT INTO response_options (scale_code, option_text, score_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (scale_code, score_value) DO UPDATE
		SET option_text = EXCLUDED.option_text, updated_at = NOW()`

	for _, sc := range scaleRows {
		if _, err := tx.Exec(ctx, scaleQuery, sc.Code, sc.Name); err != nil {
			return fmt.Errorf("upsert scale %s: %w", sc.Code, err)
		}
		for _, opt := range sc.Options {
			if _, err := tx.Exec(ctx, optionQuery, sc.Code, opt.Text, opt.Score); err != nil {
				return fmt.Errorf("upsert option %s/%d: %w", sc.Code, opt.Score, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Seeder) seedQuestionnaires(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const questionnaireQuery = `
		INSERT INTO questionnaires (code, title, description, edition)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (code) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    edition = EXCLUDED.edition,
		    updated_at = NOW()
		RETURNING id`

	const questionQuery = `
		INSERT INTO questions (questionnaire_id, scale_code, question_identifier, display_order, question_text)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (questionnaire_id, question_identifier) DO UPDATE
		SET scale_code = EXCLUDED.scale_code,
		    display_order = EXCLUDED.display_order,
		    question_text = EXCLUDED.question_text,
		    updated_at = NOW()`

	for _, q := range questionnaireRows {
		var questionnaireID int64
		row := tx.QueryRow(ctx, questionnaireQuery, q.Code, q.Title, q.Description, q.Edition)
		if err := row.Scan(&questionnaireID); err != nil {
			return fmt.Errorf("upsert questionnaire %s: %w", q.Code, err)
		}

		for i, question := range q.Questions {
			_, err := tx.Exec(ctx, questionQuery,
				questionnaireID, question.ScaleCode, question.Identifier, i+1, question.Text)
			if err != nil {
				return fmt.Errorf("upsert question %s/%s: %w", q.Code, question.Identifier, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// seedLinks wires the code-pair link tables. Missing codes are a data error
// in the catalog, so the pass fails rather than skipping them.
func (s *Seeder) seedLinks(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	areaIDs, err := idsByCode(ctx, tx, "areas")
	if err != nil {
		return err
	}
	dimensionIDs, err := idsByCode(ctx, tx, "dimensions")
	if err != nil {
		return err
	}
	factorIDs, err := idsByCode(ctx, tx, "factors")
	if err != nil {
		return err
	}
	questionnaireIDs, err := idsByCode(ctx, tx, "questionnaires")
	if err != nil {
		return err
	}

	linkPasses := []struct {
		table     string
		ownerCol  string
		targetCol string
		owners    map[string]int64
		targets   map[string]int64
		links     []linkRow
	}{
		{"area_dimension", "area_id", "dimension_id", areaIDs, dimensionIDs, areaDimensionLinks},
		{"dimension_factor", "dimension_id", "factor_id", dimensionIDs, factorIDs, dimensionFactorLinks},
		{"area_questionnaire", "area_id", "questionnaire_id", areaIDs, questionnaireIDs, areaQuestionnaireLinks},
	}

	for _, lp := range linkPasses {
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, lp.table, lp.ownerCol, lp.targetCol)

		for _, link := range lp.links {
			ownerID, ok := lp.owners[link.Owner]
			if !ok {
				return fmt.Errorf("link %s: unknown owner code %q", lp.table, link.Owner)
			}
			for _, target := range link.Targets {
				targetID, ok := lp.targets[target]
				if !ok {
					return fmt.Errorf("link %s: unknown target code %q", lp.table, target)
				}
				if _, err := tx.Exec(ctx, query, ownerID, targetID); err != nil {
					return fmt.Errorf("link %s %s->%s: %w", lp.table, link.Owner, target, err)
				}
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func idsByCode(ctx context.Context, tx pgx.Tx, table string) (map[string]int64, error) {
	rows, err := tx.Query(ctx, fmt.Sprintf("SELECT id, code FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("load %s codes: %w", table, err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("scan %s code: %w", table, err)
		}
		ids[code] = id
	}
	return ids, rows.Err()
}
