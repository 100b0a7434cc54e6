package taxonomy

import (
	"time"

	"github.com/psymetric/psymetric/internal/resource"
)

// Area is the top level of the grouping hierarchy (e.g. cognition,
// personality). Areas group dimensions, dimensions group factors.
type Area struct {
	ID          int64
	Code        string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Dimensions resource.Rel[[]*Dimension]
}

type Dimension struct {
	ID          int64
	Code        string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Factor struct {
	ID          int64
	Code        string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Dimensions resource.Rel[[]*Dimension]
}
