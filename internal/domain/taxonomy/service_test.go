package taxonomy

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/psymetric/psymetric/internal/resource"
)

// -- Mock Repositories --

type mockDimensionRepo struct {
	dims map[int64]*Dimension
}

func newMockDimensionRepo() *mockDimensionRepo {
	return &mockDimensionRepo{dims: make(map[int64]*Dimension)}
}

func (m *mockDimensionRepo) add(id int64, code string, active bool) *Dimension {
	d := &Dimension{ID: id, Code: code, Name: code, IsActive: active, CreatedAt: time.Now()}
	m.dims[id] = d
	return d
}

func (m *mockDimensionRepo) List(_ context.Context, onlyActive bool) ([]*Dimension, error) {
	var result []*Dimension
	for _, d := range m.dims {
		if onlyActive && !d.IsActive {
			continue
		}
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockDimensionRepo) GetByID(_ context.Context, id int64) (*Dimension, error) {
	d, ok := m.dims[id]
	if !ok {
		return nil, ErrDimensionNotFound
	}
	return d, nil
}

func (m *mockDimensionRepo) FindByCode(_ context.Context, code string) (*Dimension, error) {
	for _, d := range m.dims {
		if d.Code == code {
			return d, nil
		}
	}
	return nil, ErrDimensionNotFound
}

func (m *mockDimensionRepo) ExistingIDs(_ context.Context, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool)
	for _, id := range ids {
		if _, ok := m.dims[id]; ok {
			existing[id] = true
		}
	}
	return existing, nil
}

type mockAreaRepo struct {
	areas     map[int64]*Area
	edges     map[int64]map[int64]bool
	dims      *mockDimensionRepo
	syncCalls int
	writes    int
}

func newMockAreaRepo(dims *mockDimensionRepo) *mockAreaRepo {
	return &mockAreaRepo{
		areas: make(map[int64]*Area),
		edges: make(map[int64]map[int64]bool),
		dims:  dims,
	}
}

func (m *mockAreaRepo) add(id int64, code string, active bool) *Area {
	a := &Area{ID: id, Code: code, Name: code, IsActive: active, CreatedAt: time.Now()}
	m.areas[id] = a
	m.edges[id] = make(map[int64]bool)
	return a
}

func (m *mockAreaRepo) List(_ context.Context, onlyActive bool) ([]*Area, error) {
	var result []*Area
	for _, a := range m.areas {
		if onlyActive && !a.IsActive {
			continue
		}
		// Append a copy like the pg repo, which scans fresh rows per query.
		copied := *a
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockAreaRepo) GetByID(_ context.Context, id int64) (*Area, error) {
	a, ok := m.areas[id]
	if !ok {
		return nil, ErrAreaNotFound
	}
	return a, nil
}

func (m *mockAreaRepo) FindByCode(_ context.Context, code string) (*Area, error) {
	for _, a := range m.areas {
		if a.Code == code {
			return a, nil
		}
	}
	return nil, ErrAreaNotFound
}

func (m *mockAreaRepo) ListDimensions(_ context.Context, areaID int64) ([]*Dimension, error) {
	var result []*Dimension
	for id := range m.edges[areaID] {
		result = append(result, m.dims.dims[id])
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockAreaRepo) SyncDimensions(_ context.Context, areaID int64, dimensionIDs []int64) error {
	m.syncCalls++
	current := m.edges[areaID]
	wanted := make(map[int64]bool, len(dimensionIDs))
	for _, id := range dimensionIDs {
		wanted[id] = true
		if !current[id] {
			current[id] = true
			m.writes++
		}
	}
	for id := range current {
		if !wanted[id] {
			delete(current, id)
			m.writes++
		}
	}
	return nil
}

type mockFactorRepo struct {
	factors map[int64]*Factor
	edges   map[int64]map[int64]bool
	dims    *mockDimensionRepo
}

func newMockFactorRepo(dims *mockDimensionRepo) *mockFactorRepo {
	return &mockFactorRepo{
		factors: make(map[int64]*Factor),
		edges:   make(map[int64]map[int64]bool),
		dims:    dims,
	}
}

func (m *mockFactorRepo) add(id int64, code string, active bool) *Factor {
	f := &Factor{ID: id, Code: code, Name: code, IsActive: active, CreatedAt: time.Now()}
	m.factors[id] = f
	m.edges[id] = make(map[int64]bool)
	return f
}

func (m *mockFactorRepo) List(_ context.Context, onlyActive bool) ([]*Factor, error) {
	var result []*Factor
	for _, f := range m.factors {
		if onlyActive && !f.IsActive {
			continue
		}
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockFactorRepo) GetByID(_ context.Context, id int64) (*Factor, error) {
	f, ok := m.factors[id]
	if !ok {
		return nil, ErrFactorNotFound
	}
	return f, nil
}

func (m *mockFactorRepo) FindByCode(_ context.Context, code string) (*Factor, error) {
	for _, f := range m.factors {
		if f.Code == code {
			return f, nil
		}
	}
	return nil, ErrFactorNotFound
}

func (m *mockFactorRepo) ListDimensions(_ context.Context, factorID int64) ([]*Dimension, error) {
	var result []*Dimension
	for id := range m.edges[factorID] {
		result = append(result, m.dims.dims[id])
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockFactorRepo) SyncDimensions(_ context.Context, factorID int64, dimensionIDs []int64) error {
	current := m.edges[factorID]
	wanted := make(map[int64]bool, len(dimensionIDs))
	for _, id := range dimensionIDs {
		wanted[id] = true
		current[id] = true
	}
	for id := range current {
		if !wanted[id] {
			delete(current, id)
		}
	}
	return nil
}

func newTestService() (*Service, *mockAreaRepo, *mockDimensionRepo, *mockFactorRepo) {
	dims := newMockDimensionRepo()
	areas := newMockAreaRepo(dims)
	factors := newMockFactorRepo(dims)
	return NewService(areas, dims, factors), areas, dims, factors
}

// -- Tests --

func TestListAreasDefaultActiveFilter(t *testing.T) {
	svc, areas, _, _ := newTestService()
	areas.add(1, "COG", true)
	areas.add(2, "OLD", false)

	got, err := svc.ListAreas(context.Background(), false, nil)
	if err != nil {
		t.Fatalf("ListAreas: %v", err)
	}
	if len(got) != 1 || got[0].Code != "COG" {
		t.Errorf("expected only active areas, got %+v", got)
	}

	all, err := svc.ListAreas(context.Background(), true, nil)
	if err != nil {
		t.Fatalf("ListAreas all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 areas with all=true, got %d", len(all))
	}
}

func TestListAreasIncludeDimensions(t *testing.T) {
	svc, areas, dims, _ := newTestService()
	a := areas.add(1, "COG", true)
	dims.add(10, "MEM", true)
	areas.edges[a.ID][10] = true

	got, err := svc.ListAreas(context.Background(), false, resource.ParseIncludes("dimensions"))
	if err != nil {
		t.Fatalf("ListAreas: %v", err)
	}
	loaded, ok := got[0].Dimensions.Value()
	if !ok {
		t.Fatal("dimensions should be loaded with include=dimensions")
	}
	if len(loaded) != 1 || loaded[0].Code != "MEM" {
		t.Errorf("unexpected dimensions: %+v", loaded)
	}

	bare, _ := svc.ListAreas(context.Background(), false, nil)
	if bare[0].Dimensions.IsLoaded() {
		t.Error("dimensions should not be loaded without include")
	}
}

func TestSyncAreaDimensions(t *testing.T) {
	svc, areas, dims, _ := newTestService()
	a := areas.add(1, "COG", true)
	dims.add(10, "MEM", true)
	dims.add(11, "ATT", true)
	dims.add(12, "LANG", true)
	areas.edges[a.ID][10] = true
	areas.edges[a.ID][12] = true

	got, err := svc.SyncAreaDimensions(context.Background(), 1, []int64{10, 11})
	if err != nil {
		t.Fatalf("SyncAreaDimensions: %v", err)
	}
	loaded, ok := got.Dimensions.Value()
	if !ok {
		t.Fatal("dimensions should be loaded after sync")
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 dimensions, got %d", len(loaded))
	}
	if !areas.edges[1][10] || !areas.edges[1][11] || areas.edges[1][12] {
		t.Errorf("unexpected edge set: %+v", areas.edges[1])
	}
}

func TestSyncAreaDimensionsIdempotent(t *testing.T) {
	svc, areas, dims, _ := newTestService()
	areas.add(1, "COG", true)
	dims.add(10, "MEM", true)
	dims.add(11, "ATT", true)

	if _, err := svc.SyncAreaDimensions(context.Background(), 1, []int64{10, 11}); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	writesAfterFirst := areas.writes

	if _, err := svc.SyncAreaDimensions(context.Background(), 1, []int64{11, 10}); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if areas.writes != writesAfterFirst {
		t.Errorf("second sync with same set performed %d extra writes", areas.writes-writesAfterFirst)
	}
}

func TestSyncAreaDimensionsEmptySetClears(t *testing.T) {
	svc, areas, dims, _ := newTestService()
	a := areas.add(1, "COG", true)
	dims.add(10, "MEM", true)
	areas.edges[a.ID][10] = true

	got, err := svc.SyncAreaDimensions(context.Background(), 1, []int64{})
	if err != nil {
		t.Fatalf("SyncAreaDimensions: %v", err)
	}
	loaded, _ := got.Dimensions.Value()
	if len(loaded) != 0 {
		t.Errorf("expected empty dimension set, got %+v", loaded)
	}
}

func TestSyncAreaDimensionsUnknownOwner(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.SyncAreaDimensions(context.Background(), 99, []int64{})
	if !errors.Is(err, ErrAreaNotFound) {
		t.Fatalf("expected ErrAreaNotFound, got %v", err)
	}
}

func TestSyncAreaDimensionsInvalidReference(t *testing.T) {
	svc, areas, dims, _ := newTestService()
	areas.add(1, "COG", true)
	dims.add(10, "MEM", true)

	_, err := svc.SyncAreaDimensions(context.Background(), 1, []int64{10, 98, 99})
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	var refErr *InvalidReferenceError
	if !errors.As(err, &refErr) {
		t.Fatal("expected InvalidReferenceError")
	}
	if len(refErr.IDs) != 2 || refErr.IDs[0] != 98 || refErr.IDs[1] != 99 {
		t.Errorf("unexpected offending ids: %v", refErr.IDs)
	}
	if areas.syncCalls != 0 {
		t.Error("sync should not run when references are invalid")
	}
}

func TestSyncFactorDimensions(t *testing.T) {
	svc, _, dims, factors := newTestService()
	factors.add(1, "F1", true)
	dims.add(10, "MEM", true)

	got, err := svc.SyncFactorDimensions(context.Background(), 1, []int64{10})
	if err != nil {
		t.Fatalf("SyncFactorDimensions: %v", err)
	}
	loaded, ok := got.Dimensions.Value()
	if !ok || len(loaded) != 1 {
		t.Errorf("unexpected dimensions after sync: %+v", loaded)
	}
}

func TestSyncFactorDimensionsUnknownOwner(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.SyncFactorDimensions(context.Background(), 42, []int64{})
	if !errors.Is(err, ErrFactorNotFound) {
		t.Fatalf("expected ErrFactorNotFound, got %v", err)
	}
}
