package taxonomy

import "context"

type AreaRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*Area, error)
	GetByID(ctx context.Context, id int64) (*Area, error)
	FindByCode(ctx context.Context, code string) (*Area, error)
	ListDimensions(ctx context.Context, areaID int64) ([]*Dimension, error)
	// SyncDimensions replaces the area's dimension set with the given ids,
	// inserting and deleting only the difference, in one transaction.
	SyncDimensions(ctx context.Context, areaID int64, dimensionIDs []int64) error
}

type DimensionRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*Dimension, error)
	GetByID(ctx context.Context, id int64) (*Dimension, error)
	FindByCode(ctx context.Context, code string) (*Dimension, error)
	// ExistingIDs reports which of the given ids are present.
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

type FactorRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*Factor, error)
	GetByID(ctx context.Context, id int64) (*Factor, error)
	FindByCode(ctx context.Context, code string) (*Factor, error)
	ListDimensions(ctx context.Context, factorID int64) ([]*Dimension, error)
	SyncDimensions(ctx context.Context, factorID int64, dimensionIDs []int64) error
}
