package scale

import "context"

type ScaleRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*Scale, error)
	FindByCode(ctx context.Context, code string) (*Scale, error)
}

type ResponseOptionRepository interface {
	GetByID(ctx context.Context, id int64) (*ResponseOption, error)
	ListByScale(ctx context.Context, scaleCode string) ([]*ResponseOption, error)
	ListSummaries(ctx context.Context) ([]*ScaleSummary, error)
	Create(ctx context.Context, o *ResponseOption) error
	Update(ctx context.Context, o *ResponseOption) error
	Delete(ctx context.Context, id int64) error
	ScoreValueExists(ctx context.Context, scaleCode string, scoreValue int, excludeID int64) (bool, error)
	// ScaleCodeReferenced reports whether any question answers on the scale.
	ScaleCodeReferenced(ctx context.Context, scaleCode string) (bool, error)
	RenameScale(ctx context.Context, oldCode, newCode string) (int64, error)
}
