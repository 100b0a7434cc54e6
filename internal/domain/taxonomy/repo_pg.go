package taxonomy

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

const entityCols = `id, code, name, description, is_active, created_at, updated_at`

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

func listQuery(table string, onlyActive bool) string {
	query := `SELECT ` + entityCols + ` FROM ` + table
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	return query + ` ORDER BY code ASC`
}

// syncEdges reconciles a join table against the wanted id set inside one
// transaction. Rows present in both sets are left untouched.
func syncEdges(ctx context.Context, pool *pgxpool.Pool, table, ownerCol, targetCol string, ownerID int64, targetIDs []int64) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT `+targetCol+` FROM `+table+` WHERE `+ownerCol+` = $1`, ownerID)
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
			`DELETE FROM `+table+` WHERE `+ownerCol+` = $1 AND `+targetCol+` = ANY($2)`,
			ownerID, toRemove); err != nil {
			return err
		}
	}
	for _, id := range toAdd {
		if _, err := tx.Exec(ctx,
			`INSERT INTO `+table+` (`+ownerCol+`, `+targetCol+`) VALUES ($1, $2)`,
			ownerID, id); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// =========== Area Repository ===========

type areaRepoPG struct{ pool *pgxpool.Pool }

func NewAreaRepoPG(pool *pgxpool.Pool) AreaRepository {
	return &areaRepoPG{pool: pool}
}

func scanArea(row pgx.Row) (*Area, error) {
	var a Area
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Description, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *areaRepoPG) List(ctx context.Context, onlyActive bool) ([]*Area, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, listQuery("areas", onlyActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []*Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

func (r *areaRepoPG) GetByID(ctx context.Context, id int64) (*Area, error) {
	a, err := scanArea(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+entityCols+` FROM areas WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAreaNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *areaRepoPG) FindByCode(ctx context.Context, code string) (*Area, error) {
	a, err := scanArea(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+entityCols+` FROM areas WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAreaNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *areaRepoPG) ListDimensions(ctx context.Context, areaID int64) ([]*Dimension, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT d.id, d.code, d.name, d.description, d.is_active, d.created_at, d.updated_at
		 FROM dimensions d
		 JOIN area_dimension ad ON ad.dimension_id = d.id
		 WHERE ad.area_id = $1
		 ORDER BY d.code ASC`, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDimensions(rows)
}

func (r *areaRepoPG) SyncDimensions(ctx context.Context, areaID int64, dimensionIDs []int64) error {
	return syncEdges(ctx, r.pool, "area_dimension", "area_id", "dimension_id", areaID, dimensionIDs)
}

// =========== Dimension Repository ===========

type dimensionRepoPG struct{ pool *pgxpool.Pool }

func NewDimensionRepoPG(pool *pgxpool.Pool) DimensionRepository {
	return &dimensionRepoPG{pool: pool}
}

func scanDimension(row pgx.Row) (*Dimension, error) {
	var d Dimension
	err := row.Scan(&d.ID, &d.Code, &d.Name, &d.Description, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func collectDimensions(rows pgx.Rows) ([]*Dimension, error) {
	var dims []*Dimension
	for rows.Next() {
		d, err := scanDimension(rows)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, rows.Err()
}

func (r *dimensionRepoPG) List(ctx context.Context, onlyActive bool) ([]*Dimension, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, listQuery("dimensions", onlyActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDimensions(rows)
}

func (r *dimensionRepoPG) GetByID(ctx context.Context, id int64) (*Dimension, error) {
	d, err := scanDimension(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+entityCols+` FROM dimensions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDimensionNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *dimensionRepoPG) FindByCode(ctx context.Context, code string) (*Dimension, error) {
	d, err := scanDimension(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+entityCols+` FROM dimensions WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDimensionNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *dimensionRepoPG) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT id FROM dimensions WHERE id = ANY($1)`, ids)
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

// =========== Factor Repository ===========

type factorRepoPG struct{ pool *pgxpool.Pool }

func NewFactorRepoPG(pool *pgxpool.Pool) FactorRepository {
	return &factorRepoPG{pool: pool}
}

func scanFactor(row pgx.Row) (*Factor, error) {
	var f Factor
	err := row.Scan(&f.ID, &f.Code, &f.Name, &f.Description, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (r *factorRepoPG) List(ctx context.Context, onlyActive bool) ([]*Factor, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, listQuery("factors", onlyActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var factors []*Factor
	for rows.Next() {
		f, err := scanFactor(rows)
		if err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}
	return factors, rows.Err()
}

func (r *factorRepoPG) GetByID(ctx context.Context, id int64) (*Factor, error) {
	f, err := scanFactor(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+entityCols+` FROM factors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFactorNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *factorRepoPG) FindByCode(ctx context.Context, code string) (*Factor, error) {
	f, err := scanFactor(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+entityCols+` FROM factors WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFactorNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *factorRepoPG) ListDimensions(ctx context.Context, factorID int64) ([]*Dimension, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT d.id, d.code, d.name, d.description, d.is_active, d.created_at, d.updated_at
		 FROM dimensions d
		 JOIN dimension_factor df ON df.dimension_id = d.id
		 WHERE df.factor_id = $1
		 ORDER BY d.code ASC`, factorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDimensions(rows)
}

func (r *factorRepoPG) SyncDimensions(ctx context.Context, factorID int64, dimensionIDs []int64) error {
	return syncEdges(ctx, r.pool, "dimension_factor", "factor_id", "dimension_id", factorID, dimensionIDs)
}
