package questionnaire

import (
	"context"

	"github.com/psymetric/psymetric/internal/domain/scale"
	"github.com/psymetric/psymetric/internal/domain/taxonomy"
)

type QuestionnaireRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*Questionnaire, error)
	GetByID(ctx context.Context, id int64) (*Questionnaire, error)
	FindByCode(ctx context.Context, code string) (*Questionnaire, error)
	Create(ctx context.Context, q *Questionnaire) error
	Update(ctx context.Context, q *Questionnaire) error
	// Deactivate flips is_active off. Rows are never removed because
	// assessment_sessions reference questionnaires with ON DELETE RESTRICT.
	Deactivate(ctx context.Context, id int64) error
	ListAreas(ctx context.Context, questionnaireID int64) ([]*taxonomy.Area, error)
	ListFactors(ctx context.Context, questionnaireID int64) ([]*taxonomy.Factor, error)
	SyncAreas(ctx context.Context, questionnaireID int64, areaIDs []int64) error
	SyncFactors(ctx context.Context, questionnaireID int64, factorIDs []int64) error
	ExistingAreaIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	ExistingFactorIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

type QuestionRepository interface {
	GetByID(ctx context.Context, id int64) (*Question, error)
	// ListByQuestionnaire returns the questionnaire's questions ordered by
	// display_order.
	ListByQuestionnaire(ctx context.Context, questionnaireID int64) ([]*Question, error)
	ListOptions(ctx context.Context, scaleCode string) ([]*scale.ResponseOption, error)
}
