package questionnaire

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/psymetric/psymetric/internal/domain/scale"
	"github.com/psymetric/psymetric/internal/domain/taxonomy"
	"github.com/psymetric/psymetric/internal/platform/validation"
	"github.com/psymetric/psymetric/internal/resource"
)

// -- Mock Repositories --

type mockQuestionnaireRepo struct {
	items       map[int64]*Questionnaire
	areas       map[int64]*taxonomy.Area
	factors     map[int64]*taxonomy.Factor
	areaEdges   map[int64]map[int64]bool
	factorEdges map[int64]map[int64]bool
}

func newMockQuestionnaireRepo() *mockQuestionnaireRepo {
	return &mockQuestionnaireRepo{
		items:       make(map[int64]*Questionnaire),
		areas:       make(map[int64]*taxonomy.Area),
		factors:     make(map[int64]*taxonomy.Factor),
		areaEdges:   make(map[int64]map[int64]bool),
		factorEdges: make(map[int64]map[int64]bool),
	}
}

func (m *mockQuestionnaireRepo) add(id int64, code string, active bool) *Questionnaire {
	q := &Questionnaire{ID: id, Code: code, Title: code, IsActive: active, CreatedAt: time.Now()}
	m.items[id] = q
	m.areaEdges[id] = make(map[int64]bool)
	m.factorEdges[id] = make(map[int64]bool)
	return q
}

func (m *mockQuestionnaireRepo) addArea(id int64, code string) *taxonomy.Area {
	a := &taxonomy.Area{ID: id, Code: code, Name: code, IsActive: true}
	m.areas[id] = a
	return a
}

func (m *mockQuestionnaireRepo) addFactor(id int64, code string) *taxonomy.Factor {
	f := &taxonomy.Factor{ID: id, Code: code, Name: code, IsActive: true}
	m.factors[id] = f
	return f
}

func (m *mockQuestionnaireRepo) List(_ context.Context, onlyActive bool) ([]*Questionnaire, error) {
	var result []*Questionnaire
	for _, q := range m.items {
		if onlyActive && !q.IsActive {
			continue
		}
		result = append(result, q)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockQuestionnaireRepo) GetByID(_ context.Context, id int64) (*Questionnaire, error) {
	q, ok := m.items[id]
	if !ok {
		return nil, ErrQuestionnaireNotFound
	}
	return q, nil
}

func (m *mockQuestionnaireRepo) FindByCode(_ context.Context, code string) (*Questionnaire, error) {
	for _, q := range m.items {
		if q.Code == code {
			return q, nil
		}
	}
	return nil, ErrQuestionnaireNotFound
}

func (m *mockQuestionnaireRepo) Create(_ context.Context, q *Questionnaire) error {
	for _, existing := range m.items {
		if existing.Code == q.Code {
			return ErrDuplicateCode
		}
	}
	q.ID = int64(len(m.items) + 1)
	q.CreatedAt = time.Now()
	q.UpdatedAt = time.Now()
	m.items[q.ID] = q
	m.areaEdges[q.ID] = make(map[int64]bool)
	m.factorEdges[q.ID] = make(map[int64]bool)
	return nil
}

func (m *mockQuestionnaireRepo) Update(_ context.Context, q *Questionnaire) error {
	if _, ok := m.items[q.ID]; !ok {
		return ErrQuestionnaireNotFound
	}
	q.UpdatedAt = time.Now()
	m.items[q.ID] = q
	return nil
}

func (m *mockQuestionnaireRepo) Deactivate(_ context.Context, id int64) error {
	q, ok := m.items[id]
	if !ok {
		return ErrQuestionnaireNotFound
	}
	q.IsActive = false
	return nil
}

func (m *mockQuestionnaireRepo) ListAreas(_ context.Context, questionnaireID int64) ([]*taxonomy.Area, error) {
	var result []*taxonomy.Area
	for id := range m.areaEdges[questionnaireID] {
		result = append(result, m.areas[id])
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockQuestionnaireRepo) ListFactors(_ context.Context, questionnaireID int64) ([]*taxonomy.Factor, error) {
	var result []*taxonomy.Factor
	for id := range m.factorEdges[questionnaireID] {
		result = append(result, m.factors[id])
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockQuestionnaireRepo) SyncAreas(_ context.Context, questionnaireID int64, areaIDs []int64) error {
	syncEdgeMap(m.areaEdges[questionnaireID], areaIDs)
	return nil
}

func (m *mockQuestionnaireRepo) SyncFactors(_ context.Context, questionnaireID int64, factorIDs []int64) error {
	syncEdgeMap(m.factorEdges[questionnaireID], factorIDs)
	return nil
}

func syncEdgeMap(current map[int64]bool, ids []int64) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
		current[id] = true
	}
	for id := range current {
		if !wanted[id] {
			delete(current, id)
		}
	}
}

func (m *mockQuestionnaireRepo) ExistingAreaIDs(_ context.Context, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool)
	for _, id := range ids {
		if _, ok := m.areas[id]; ok {
			existing[id] = true
		}
	}
	return existing, nil
}

func (m *mockQuestionnaireRepo) ExistingFactorIDs(_ context.Context, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool)
	for _, id := range ids {
		if _, ok := m.factors[id]; ok {
			existing[id] = true
		}
	}
	return existing, nil
}

type mockQuestionRepo struct {
	questions map[int64]*Question
	options   map[string][]*scale.ResponseOption
}

func newMockQuestionRepo() *mockQuestionRepo {
	return &mockQuestionRepo{
		questions: make(map[int64]*Question),
		options:   make(map[string][]*scale.ResponseOption),
	}
}

func (m *mockQuestionRepo) add(id, questionnaireID int64, identifier, scaleCode string, order int) *Question {
	q := &Question{
		ID:                 id,
		QuestionnaireID:    questionnaireID,
		ScaleCode:          scaleCode,
		QuestionIdentifier: identifier,
		DisplayOrder:       order,
		QuestionText:       identifier,
	}
	m.questions[id] = q
	return q
}

func (m *mockQuestionRepo) addOption(scaleCode, text string, score int) {
	m.options[scaleCode] = append(m.options[scaleCode], &scale.ResponseOption{
		ID: int64(len(m.options[scaleCode]) + 1), ScaleCode: scaleCode, OptionText: text, ScoreValue: score,
	})
}

func (m *mockQuestionRepo) GetByID(_ context.Context, id int64) (*Question, error) {
	q, ok := m.questions[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	// Return a copy like the pg repo, which scans a fresh row per query.
	copied := *q
	return &copied, nil
}

func (m *mockQuestionRepo) ListByQuestionnaire(_ context.Context, questionnaireID int64) ([]*Question, error) {
	var result []*Question
	for _, q := range m.questions {
		if q.QuestionnaireID == questionnaireID {
			result = append(result, q)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayOrder < result[j].DisplayOrder })
	return result, nil
}

func (m *mockQuestionRepo) ListOptions(_ context.Context, scaleCode string) ([]*scale.ResponseOption, error) {
	options := m.options[scaleCode]
	sort.Slice(options, func(i, j int) bool { return options[i].ScoreValue < options[j].ScoreValue })
	return options, nil
}

func newTestService() (*Service, *mockQuestionnaireRepo, *mockQuestionRepo) {
	questionnaires := newMockQuestionnaireRepo()
	questions := newMockQuestionRepo()
	return NewService(questionnaires, questions), questionnaires, questions
}

// -- Tests --

func TestListDefaultActiveFilter(t *testing.T) {
	svc, questionnaires, _ := newTestService()
	questionnaires.add(1, "BFP", true)
	questionnaires.add(2, "OLD", false)

	got, err := svc.List(context.Background(), false, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Code != "BFP" {
		t.Errorf("expected only active questionnaires, got %+v", got)
	}

	all, _ := svc.List(context.Background(), true, nil)
	if len(all) != 2 {
		t.Errorf("expected 2 with all=true, got %d", len(all))
	}
}

func TestListIncludeQuestionsAndAreas(t *testing.T) {
	svc, questionnaires, questions := newTestService()
	questionnaires.add(1, "BFP", true)
	questionnaires.addArea(10, "PER")
	questionnaires.areaEdges[1][10] = true
	questions.add(100, 1, "Q2", "LIKERT_4", 2)
	questions.add(101, 1, "Q1", "LIKERT_4", 1)

	got, err := svc.List(context.Background(), false, resource.ParseIncludes("questions,areas"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	qs, ok := got[0].Questions.Value()
	if !ok {
		t.Fatal("questions should be loaded")
	}
	if len(qs) != 2 || qs[0].QuestionIdentifier != "Q1" {
		t.Errorf("questions not ordered by display_order: %+v", qs)
	}
	areas, ok := got[0].Areas.Value()
	if !ok || len(areas) != 1 {
		t.Errorf("areas should be loaded, got %+v", areas)
	}
}

func TestFindByCodeCaseInsensitive(t *testing.T) {
	svc, questionnaires, _ := newTestService()
	questionnaires.add(1, "BFP", true)

	got, err := svc.FindByCode(context.Background(), " bfp ", nil)
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("unexpected questionnaire: %+v", got)
	}
}

func TestFindByCodeNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.FindByCode(context.Background(), "NOPE", nil)
	if !errors.Is(err, ErrQuestionnaireNotFound) {
		t.Fatalf("expected ErrQuestionnaireNotFound, got %v", err)
	}
}

func TestGetQuestionWithOptions(t *testing.T) {
	svc, _, questions := newTestService()
	questions.add(100, 1, "Q1", "LIKERT_4", 1)
	questions.addOption("LIKERT_4", "Always", 3)
	questions.addOption("LIKERT_4", "Never", 0)

	got, err := svc.GetQuestion(context.Background(), 100, resource.ParseIncludes("options"))
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	options, ok := got.Options.Value()
	if !ok {
		t.Fatal("options should be loaded with include=options")
	}
	if len(options) != 2 || options[0].ScoreValue != 0 {
		t.Errorf("options not ordered by score: %+v", options)
	}

	bare, _ := svc.GetQuestion(context.Background(), 100, nil)
	if bare.Options.IsLoaded() {
		t.Error("options should not be loaded without include")
	}
}

func TestGetQuestionNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.GetQuestion(context.Background(), 999, nil)
	if !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuestionsForQuestionnaire(t *testing.T) {
	svc, questionnaires, questions := newTestService()
	questionnaires.add(1, "BFP", true)
	questions.add(100, 1, "Q3", "LIKERT_4", 3)
	questions.add(101, 1, "Q1", "LIKERT_4", 1)
	questions.add(102, 2, "OTHER", "LIKERT_4", 1)

	got, err := svc.QuestionsForQuestionnaire(context.Background(), "bfp", nil)
	if err != nil {
		t.Fatalf("QuestionsForQuestionnaire: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
	if got[0].QuestionIdentifier != "Q1" || got[1].QuestionIdentifier != "Q3" {
		t.Errorf("questions not ordered by display_order: %+v", got)
	}
}

func TestQuestionsForQuestionnaireUnknownCode(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.QuestionsForQuestionnaire(context.Background(), "NOPE", nil)
	if !errors.Is(err, ErrQuestionnaireNotFound) {
		t.Fatalf("expected ErrQuestionnaireNotFound, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	svc, _, _ := newTestService()
	edition := "2nd"
	q, err := svc.Create(context.Background(), CreateRequest{
		Code:    " bfp ",
		Title:   "Bateria Fatorial de Personalidade",
		Edition: &edition,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.Code != "BFP" {
		t.Errorf("expected upper-cased code, got %q", q.Code)
	}
	if !q.IsActive {
		t.Error("new questionnaires should default to active")
	}
	if q.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestCreateDuplicateCode(t *testing.T) {
	svc, questionnaires, _ := newTestService()
	questionnaires.add(1, "BFP", true)

	_, err := svc.Create(context.Background(), CreateRequest{Code: "bfp", Title: "Duplicate"})
	ve, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Errors["code"]) == 0 {
		t.Errorf("expected code errors, got %+v", ve.Errors)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Create(context.Background(), CreateRequest{})
	ve, ok := validation.AsError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"code", "title"} {
		if len(ve.Errors[field]) == 0 {
			t.Errorf("expected %s errors, got %+v", field, ve.Errors)
		}
	}
}

func TestUpdatePartial(t *testing.T) {
	svc, questionnaires, _ := newTestService()
	questionnaires.add(1, "BFP", true)

	title := "Bateria Fatorial de Personalidade"
	q, err := svc.Update(context.Background(), 1, UpdateRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if q.Title != title {
		t.Errorf("title not updated: %q", q.Title)
	}
	if q.Code != "BFP" || !q.IsActive {
		t.Errorf("untouched fields changed: %+v", q)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	title := "New Title"
	_, err := svc.Update(context.Background(), 99, UpdateRequest{Title: &title})
	if !errors.Is(err, ErrQuestionnaireNotFound) {
		t.Fatalf("expected ErrQuestionnaireNotFound, got %v", err)
	}
}

func TestDeactivate(t *testing.T) {
	svc, questionnaires, _ := newTestService()
	questionnaires.add(1, "BFP", true)

	if err := svc.Deactivate(context.Background(), 1); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	// gone from default listings, still resolvable by code
	listed, _ := svc.List(context.Background(), false, nil)
	if len(listed) != 0 {
		t.Errorf("deactivated questionnaire still listed: %+v", listed)
	}
	q, err := svc.FindByCode(context.Background(), "BFP", nil)
	if err != nil {
		t.Fatalf("FindByCode after deactivation: %v", err)
	}
	if q.IsActive {
		t.Error("questionnaire should be inactive")
	}
}

func TestDeactivateNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if err := svc.Deactivate(context.Background(), 99); !errors.Is(err, ErrQuestionnaireNotFound) {
		t.Fatalf("expected ErrQuestionnaireNotFound, got %v", err)
	}
}

func TestSyncAreas(t *testing.T) {
	svc, questionnaires, _ := newTestService()
	questionnaires.add(1, "BFP", true)
	questionnaires.addArea(10, "PER")
	questionnaires.addArea(11, "COG")
	questionnaires.areaEdges[1][11] = true

	got, err := svc.SyncAreas(context.Background(), 1, []int64{10})
	if err != nil {
		t.Fatalf("SyncAreas: %v", err)
	}
	areas, ok := got.Areas.Value()
	if !ok || len(areas) != 1 || areas[0].Code != "PER" {
		t.Errorf("unexpected areas after sync: %+v", areas)
	}
}

func TestSyncAreasInvalidReference(t *testing.T) {
	svc, questionnaires, _ := newTestService()
	questionnaires.add(1, "BFP", true)

	_, err := svc.SyncAreas(context.Background(), 1, []int64{99})
	if !errors.Is(err, taxonomy.ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	var refErr *taxonomy.InvalidReferenceError
	if !errors.As(err, &refErr) || refErr.Field != "area_ids" {
		t.Errorf("unexpected error detail: %v", err)
	}
}

func TestSyncFactors(t *testing.T) {
	svc, questionnaires, _ := newTestService()
	questionnaires.add(1, "BFP", true)
	questionnaires.addFactor(20, "F1")

	got, err := svc.SyncFactors(context.Background(), 1, []int64{20})
	if err != nil {
		t.Fatalf("SyncFactors: %v", err)
	}
	factors, ok := got.Factors.Value()
	if !ok || len(factors) != 1 {
		t.Errorf("unexpected factors after sync: %+v", factors)
	}
}

func TestSyncFactorsUnknownQuestionnaire(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.SyncFactors(context.Background(), 99, []int64{})
	if !errors.Is(err, ErrQuestionnaireNotFound) {
		t.Fatalf("expected ErrQuestionnaireNotFound, got %v", err)
	}
}
