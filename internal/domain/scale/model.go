package scale

import (
	"time"

	"github.com/psymetric/psymetric/internal/resource"
)

// Scale is a named response scale (e.g. a Likert variant). Options reference
// it by code rather than id so that scale renames stay a bulk data operation.
type Scale struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResponseOption is a single selectable answer within a scale.
type ResponseOption struct {
	ID         int64     `json:"id"`
	ScaleCode  string    `json:"scale_code"`
	OptionText string    `json:"option_text"`
	ScoreValue int       `json:"score_value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ScaleSummary aggregates the options recorded under one scale code.
type ScaleSummary struct {
	ScaleCode    string
	OptionsCount int
	Options      resource.Rel[[]*ResponseOption]
}
