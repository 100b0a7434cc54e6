package questionnaire

import (
	"time"

	"github.com/psymetric/psymetric/internal/domain/scale"
	"github.com/psymetric/psymetric/internal/domain/taxonomy"
	"github.com/psymetric/psymetric/internal/resource"
)

// Questionnaire is a versioned assessment instrument. The code is a short
// unique handle (e.g. "BFP", "WISC4") used by client lookups.
type Questionnaire struct {
	ID          int64
	Code        string
	Title       string
	Description *string
	Edition     *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Questions resource.Rel[[]*Question]
	Areas     resource.Rel[[]*taxonomy.Area]
	Factors   resource.Rel[[]*taxonomy.Factor]
}

// Question belongs to exactly one questionnaire and answers against the
// response scale named by ScaleCode. FactorID is optional.
type Question struct {
	ID                 int64
	QuestionnaireID    int64
	ScaleCode          string
	FactorID           *int64
	QuestionIdentifier string
	DisplayOrder       int
	QuestionText       string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Options resource.Rel[[]*scale.ResponseOption]
}
