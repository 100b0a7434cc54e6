package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/psymetric/psymetric/internal/resource"
)

var (
	ErrAreaNotFound      = errors.New("area not found")
	ErrDimensionNotFound = errors.New("dimension not found")
	ErrFactorNotFound    = errors.New("factor not found")
	ErrInvalidReference  = errors.New("invalid reference")
)

// InvalidReferenceError reports which target ids of a sync request do not
// exist. It unwraps to ErrInvalidReference.
type InvalidReferenceError struct {
	Field string
	IDs   []int64
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s: unknown %s %v", ErrInvalidReference, e.Field, e.IDs)
}

func (e *InvalidReferenceError) Unwrap() error { return ErrInvalidReference }

type Service struct {
	areas      AreaRepository
	dimensions DimensionRepository
	factors    FactorRepository
}

func NewService(areas AreaRepository, dimensions DimensionRepository, factors FactorRepository) *Service {
	return &Service{areas: areas, dimensions: dimensions, factors: factors}
}

// ListAreas returns areas, active only unless all is set, with dimensions
// loaded per area when include=dimensions.
func (s *Service) ListAreas(ctx context.Context, all bool, inc resource.Includes) ([]*Area, error) {
	areas, err := s.areas.List(ctx, !all)
	if err != nil {
		return nil, err
	}
	if inc.Has("dimensions") {
		for _, a := range areas {
			dims, err := s.areas.ListDimensions(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			a.Dimensions = resource.Loaded(dims)
		}
	}
	return areas, nil
}

func (s *Service) ListDimensions(ctx context.Context, all bool) ([]*Dimension, error) {
	return s.dimensions.List(ctx, !all)
}

func (s *Service) ListFactors(ctx context.Context, all bool, inc resource.Includes) ([]*Factor, error) {
	factors, err := s.factors.List(ctx, !all)
	if err != nil {
		return nil, err
	}
	if inc.Has("dimensions") {
		for _, f := range factors {
			dims, err := s.factors.ListDimensions(ctx, f.ID)
			if err != nil {
				return nil, err
			}
			f.Dimensions = resource.Loaded(dims)
		}
	}
	return factors, nil
}

// SyncAreaDimensions replaces the area's dimension set and returns the area
// with the fresh set loaded. Unknown dimension ids fail the whole request.
func (s *Service) SyncAreaDimensions(ctx context.Context, areaID int64, dimensionIDs []int64) (*Area, error) {
	a, err := s.areas.GetByID(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if err := s.checkDimensionIDs(ctx, dimensionIDs); err != nil {
		return nil, err
	}
	if err := s.areas.SyncDimensions(ctx, areaID, dimensionIDs); err != nil {
		return nil, err
	}
	dims, err := s.areas.ListDimensions(ctx, areaID)
	if err != nil {
		return nil, err
	}
	a.Dimensions = resource.Loaded(dims)
	return a, nil
}

func (s *Service) SyncFactorDimensions(ctx context.Context, factorID int64, dimensionIDs []int64) (*Factor, error) {
	f, err := s.factors.GetByID(ctx, factorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkDimensionIDs(ctx, dimensionIDs); err != nil {
		return nil, err
	}
	if err := s.factors.SyncDimensions(ctx, factorID, dimensionIDs); err != nil {
		return nil, err
	}
	dims, err := s.factors.ListDimensions(ctx, factorID)
	if err != nil {
		return nil, err
	}
	f.Dimensions = resource.Loaded(dims)
	return f, nil
}

func (s *Service) checkDimensionIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	existing, err := s.dimensions.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	var missing []int64
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !existing[id] && !seen[id] {
			missing = append(missing, id)
		}
		seen[id] = true
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return &InvalidReferenceError{Field: "dimension_ids", IDs: missing}
	}
	return nil
}
