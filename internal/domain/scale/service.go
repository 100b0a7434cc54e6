package scale

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/psymetric/psymetric/internal/platform/validation"
	"github.com/psymetric/psymetric/internal/resource"
)

var (
	ErrScaleNotFound  = errors.New("scale not found")
	ErrOptionNotFound = errors.New("response option not found")
	ErrNoOptions      = errors.New("no response options for scale")
	ErrDuplicateScore = errors.New("score value already exists for scale")
	ErrOptionInUse    = errors.New("response option is referenced by recorded responses")
)

type Service struct {
	scales  ScaleRepository
	options ResponseOptionRepository
}

func NewService(scales ScaleRepository, options ResponseOptionRepository) *Service {
	return &Service{scales: scales, options: options}
}

// NormalizeCode canonicalizes a scale code the way lookups expect it:
// trimmed and upper-cased.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ListScales returns one summary per distinct scale code found in the
// response options, optionally with each scale's options loaded.
func (s *Service) ListScales(ctx context.Context, inc resource.Includes) ([]*ScaleSummary, error) {
	summaries, err := s.options.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if inc.Has("options") {
		for _, sum := range summaries {
			opts, err := s.options.ListByScale(ctx, sum.ScaleCode)
			if err != nil {
				return nil, err
			}
			sum.Options = resource.Loaded(opts)
		}
	}
	return summaries, nil
}

// OptionsForScale returns the options of one scale ordered by score value.
// The lookup is case-insensitive. Scale codes live on the options themselves,
// so any code with options resolves here whether or not a scales row was ever
// registered for it. An unknown code and a known scale with zero options are
// reported as distinct errors.
func (s *Service) OptionsForScale(ctx context.Context, code string) ([]*ResponseOption, error) {
	code = NormalizeCode(code)

	options, err := s.options.ListByScale(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(options) > 0 {
		return options, nil
	}

	// Zero options. The code still counts as a known scale when a scales row
	// or a question refers to it.
	if _, err := s.scales.FindByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoOptions, code)
	} else if !errors.Is(err, ErrScaleNotFound) {
		return nil, err
	}

	referenced, err := s.options.ScaleCodeReferenced(ctx, code)
	if err != nil {
		return nil, err
	}
	if referenced {
		return nil, fmt.Errorf("%w: %s", ErrNoOptions, code)
	}
	return nil, fmt.Errorf("%w: %s", ErrScaleNotFound, code)
}

func (s *Service) GetOption(ctx context.Context, id int64) (*ResponseOption, error) {
	return s.options.GetByID(ctx, id)
}

type CreateOptionRequest struct {
	ScaleCode  string `json:"scale_code" validate:"required,max=50"`
	OptionText string `json:"option_text" validate:"required,max=255"`
	ScoreValue *int   `json:"score_value" validate:"required"`
}

func (s *Service) CreateOption(ctx context.Context, req CreateOptionRequest) (*ResponseOption, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	code := NormalizeCode(req.ScaleCode)
	taken, err := s.options.ScoreValueExists(ctx, code, *req.ScoreValue, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, validation.NewError("score_value",
			"The combination of scale_code and score_value has already been taken.")
	}

	o := &ResponseOption{
		ScaleCode:  code,
		OptionText: req.OptionText,
		ScoreValue: *req.ScoreValue,
	}
	if err := s.options.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

type UpdateOptionRequest struct {
	ScaleCode  *string `json:"scale_code" validate:"omitempty,max=50"`
	OptionText *string `json:"option_text" validate:"omitempty,max=255"`
	ScoreValue *int    `json:"score_value"`
}

// UpdateOption applies a partial update. Uniqueness of (scale_code,
// score_value) is enforced excluding the option being updated.
func (s *Service) UpdateOption(ctx context.Context, id int64, req UpdateOptionRequest) (*ResponseOption, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	o, err := s.options.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ScaleCode != nil {
		o.ScaleCode = NormalizeCode(*req.ScaleCode)
	}
	if req.OptionText != nil {
		o.OptionText = *req.OptionText
	}
	if req.ScoreValue != nil {
		o.ScoreValue = *req.ScoreValue
	}

	taken, err := s.options.ScoreValueExists(ctx, o.ScaleCode, o.ScoreValue, o.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, validation.NewError("score_value",
			"The combination of scale_code and score_value has already been taken.")
	}

	if err := s.options.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) DeleteOption(ctx context.Context, id int64) error {
	return s.options.Delete(ctx, id)
}

type RenameScaleRequest struct {
	OldScaleCode string `json:"old_scale_code" validate:"required,max=50"`
	NewScaleCode string `json:"new_scale_code" validate:"required,max=50"`
}

// RenameScale moves every option (and dependent question) from the old scale
// code to the new one and reports how many options were updated.
func (s *Service) RenameScale(ctx context.Context, req RenameScaleRequest) (int64, error) {
	if err := validation.Struct(req); err != nil {
		return 0, err
	}

	oldCode := NormalizeCode(req.OldScaleCode)
	newCode := NormalizeCode(req.NewScaleCode)
	if oldCode == newCode {
		return 0, validation.NewError("new_scale_code",
			"The new_scale_code must be different from old_scale_code.")
	}

	count, err := s.options.RenameScale(ctx, oldCode, newCode)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: %s", ErrScaleNotFound, oldCode)
	}
	return count, nil
}
