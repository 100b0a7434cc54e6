package questionnaire

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/psymetric/psymetric/internal/domain/taxonomy"
	"github.com/psymetric/psymetric/internal/platform/validation"
	"github.com/psymetric/psymetric/internal/resource"
)

var (
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrDuplicateCode         = errors.New("questionnaire code already exists")
)

type Service struct {
	questionnaires QuestionnaireRepository
	questions      QuestionRepository
}

func NewService(questionnaires QuestionnaireRepository, questions QuestionRepository) *Service {
	return &Service{questionnaires: questionnaires, questions: questions}
}

// List returns questionnaires, active only unless all is set. include=
// questions and areas nest the related collections per questionnaire.
func (s *Service) List(ctx context.Context, all bool, inc resource.Includes) ([]*Questionnaire, error) {
	items, err := s.questionnaires.List(ctx, !all)
	if err != nil {
		return nil, err
	}
	for _, q := range items {
		if err := s.loadIncludes(ctx, q, inc); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// FindByCode resolves a questionnaire by its short code, case-insensitively.
func (s *Service) FindByCode(ctx context.Context, code string, inc resource.Includes) (*Questionnaire, error) {
	q, err := s.questionnaires.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if err := s.loadIncludes(ctx, q, inc); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) loadIncludes(ctx context.Context, q *Questionnaire, inc resource.Includes) error {
	if inc.Has("questions") {
		questions, err := s.questions.ListByQuestionnaire(ctx, q.ID)
		if err != nil {
			return err
		}
		q.Questions = resource.Loaded(questions)
	}
	if inc.Has("areas") {
		areas, err := s.questionnaires.ListAreas(ctx, q.ID)
		if err != nil {
			return err
		}
		q.Areas = resource.Loaded(areas)
	}
	if inc.Has("factors") {
		factors, err := s.questionnaires.ListFactors(ctx, q.ID)
		if err != nil {
			return err
		}
		q.Factors = resource.Loaded(factors)
	}
	return nil
}

// GetQuestion returns one question, with its scale's options when
// include=options.
func (s *Service) GetQuestion(ctx context.Context, id int64, inc resource.Includes) (*Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadQuestionOptions(ctx, []*Question{q}, inc); err != nil {
		return nil, err
	}
	return q, nil
}

// QuestionsForQuestionnaire returns the questions of the questionnaire with
// the given code, ordered by display_order.
func (s *Service) QuestionsForQuestionnaire(ctx context.Context, code string, inc resource.Includes) ([]*Question, error) {
	q, err := s.questionnaires.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.ListByQuestionnaire(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	if err := s.loadQuestionOptions(ctx, questions, inc); err != nil {
		return nil, err
	}
	return questions, nil
}

// loadQuestionOptions fills each question's options, querying every distinct
// scale code once.
func (s *Service) loadQuestionOptions(ctx context.Context, questions []*Question, inc resource.Includes) error {
	if !inc.Has("options") {
		return nil
	}
	byScale := make(map[string][]*Question)
	for _, q := range questions {
		byScale[q.ScaleCode] = append(byScale[q.ScaleCode], q)
	}
	for code, group := range byScale {
		options, err := s.questions.ListOptions(ctx, code)
		if err != nil {
			return err
		}
		for _, q := range group {
			q.Options = resource.Loaded(options)
		}
	}
	return nil
}

type CreateRequest struct {
	Code        string  `json:"code" validate:"required,max=10"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	Edition     *string `json:"edition" validate:"omitempty,max=50"`
	IsActive    *bool   `json:"is_active"`
}

// Create registers a new questionnaire. The code is stored upper-cased and
// new questionnaires are active unless is_active says otherwise.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Questionnaire, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	q := &Questionnaire{
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Title:       req.Title,
		Description: req.Description,
		Edition:     req.Edition,
		IsActive:    true,
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	err := s.questionnaires.Create(ctx, q)
	if errors.Is(err, ErrDuplicateCode) {
		return nil, validation.NewError("code", "The code has already been taken.")
	}
	if err != nil {
		return nil, err
	}
	return q, nil
}

type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Edition     *string `json:"edition" validate:"omitempty,max=50"`
	IsActive    *bool   `json:"is_active"`
}

// Update applies a partial edit. The code itself is immutable because
// recorded sessions and client bookmarks reference it.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Questionnaire, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	q, err := s.questionnaires.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Description != nil {
		q.Description = req.Description
	}
	if req.Edition != nil {
		q.Edition = req.Edition
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}

	if err := s.questionnaires.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Deactivate retires a questionnaire. It disappears from default listings but
// stays resolvable, so sessions recorded against it keep their instrument.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.questionnaires.Deactivate(ctx, id)
}

// SyncAreas replaces the questionnaire's area set and returns it with the
// fresh set loaded.
func (s *Service) SyncAreas(ctx context.Context, questionnaireID int64, areaIDs []int64) (*Questionnaire, error) {
	q, err := s.questionnaires.GetByID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	if err := checkIDs(ctx, s.questionnaires.ExistingAreaIDs, "area_ids", areaIDs); err != nil {
		return nil, err
	}
	if err := s.questionnaires.SyncAreas(ctx, questionnaireID, areaIDs); err != nil {
		return nil, err
	}
	areas, err := s.questionnaires.ListAreas(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	q.Areas = resource.Loaded(areas)
	return q, nil
}

func (s *Service) SyncFactors(ctx context.Context, questionnaireID int64, factorIDs []int64) (*Questionnaire, error) {
	q, err := s.questionnaires.GetByID(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	if err := checkIDs(ctx, s.questionnaires.ExistingFactorIDs, "factor_ids", factorIDs); err != nil {
		return nil, err
	}
	if err := s.questionnaires.SyncFactors(ctx, questionnaireID, factorIDs); err != nil {
		return nil, err
	}
	factors, err := s.questionnaires.ListFactors(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}
	q.Factors = resource.Loaded(factors)
	return q, nil
}

func checkIDs(ctx context.Context, lookup func(context.Context, []int64) (map[int64]bool, error), field string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	existing, err := lookup(ctx, ids)
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
		return &taxonomy.InvalidReferenceError{Field: field, IDs: missing}
	}
	return nil
}
