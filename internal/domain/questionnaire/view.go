package questionnaire

import (
	"time"

	"github.com/psymetric/psymetric/internal/domain/scale"
	"github.com/psymetric/psymetric/internal/domain/taxonomy"
)

type QuestionnaireView struct {
	ID          int64                  `json:"id"`
	Code        string                 `json:"code"`
	Title       string                 `json:"title"`
	Description *string                `json:"description"`
	Edition     *string                `json:"edition"`
	IsActive    bool                   `json:"is_active"`
	CreatedAt   time.Time              `json:"created_at"`
	Questions   *[]QuestionView        `json:"questions,omitempty"`
	Areas       *[]taxonomy.EntityView `json:"areas,omitempty"`
	Factors     *[]taxonomy.EntityView `json:"factors,omitempty"`
}

type QuestionView struct {
	ID                 int64               `json:"id"`
	QuestionnaireID    int64               `json:"questionnaire_id"`
	ScaleCode          string              `json:"scale_code"`
	FactorID           *int64              `json:"factor_id"`
	QuestionIdentifier string              `json:"question_identifier"`
	DisplayOrder       int                 `json:"display_order"`
	Text               string              `json:"text"`
	Options            *[]scale.OptionView `json:"options,omitempty"`
}

func NewQuestionView(q *Question) QuestionView {
	view := QuestionView{
		ID:                 q.ID,
		QuestionnaireID:    q.QuestionnaireID,
		ScaleCode:          q.ScaleCode,
		FactorID:           q.FactorID,
		QuestionIdentifier: q.QuestionIdentifier,
		DisplayOrder:       q.DisplayOrder,
		Text:               q.QuestionText,
	}
	if options, ok := q.Options.Value(); ok {
		views := scale.NewOptionViews(options)
		view.Options = &views
	}
	return view
}

func NewQuestionViews(questions []*Question) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, NewQuestionView(q))
	}
	return views
}

func NewQuestionnaireView(q *Questionnaire) QuestionnaireView {
	view := QuestionnaireView{
		ID:          q.ID,
		Code:        q.Code,
		Title:       q.Title,
		Description: q.Description,
		Edition:     q.Edition,
		IsActive:    q.IsActive,
		CreatedAt:   q.CreatedAt,
	}
	if questions, ok := q.Questions.Value(); ok {
		views := NewQuestionViews(questions)
		view.Questions = &views
	}
	if areas, ok := q.Areas.Value(); ok {
		views := taxonomy.NewAreaViews(areas)
		view.Areas = &views
	}
	if factors, ok := q.Factors.Value(); ok {
		views := taxonomy.NewFactorViews(factors)
		view.Factors = &views
	}
	return view
}

func NewQuestionnaireViews(items []*Questionnaire) []QuestionnaireView {
	views := make([]QuestionnaireView, 0, len(items))
	for _, q := range items {
		views = append(views, NewQuestionnaireView(q))
	}
	return views
}
