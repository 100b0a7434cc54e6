package taxonomy

import "time"

// EntityView is the shared wire shape of areas, dimensions and factors.
type EntityView struct {
	ID          int64         `json:"id"`
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	Dimensions  *[]EntityView `json:"dimensions,omitempty"`
}

func NewDimensionView(d *Dimension) EntityView {
	return EntityView{
		ID:          d.ID,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

func NewDimensionViews(dims []*Dimension) []EntityView {
	views := make([]EntityView, 0, len(dims))
	for _, d := range dims {
		views = append(views, NewDimensionView(d))
	}
	return views
}

func NewAreaView(a *Area) EntityView {
	view := EntityView{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		Description: a.Description,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
	}
	if dims, ok := a.Dimensions.Value(); ok {
		views := NewDimensionViews(dims)
		view.Dimensions = &views
	}
	return view
}

func NewAreaViews(areas []*Area) []EntityView {
	views := make([]EntityView, 0, len(areas))
	for _, a := range areas {
		views = append(views, NewAreaView(a))
	}
	return views
}

func NewFactorView(f *Factor) EntityView {
	view := EntityView{
		ID:          f.ID,
		Code:        f.Code,
		Name:        f.Name,
		Description: f.Description,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
	}
	if dims, ok := f.Dimensions.Value(); ok {
		views := NewDimensionViews(dims)
		view.Dimensions = &views
	}
	return view
}

func NewFactorViews(factors []*Factor) []EntityView {
	views := make([]EntityView, 0, len(factors))
	for _, f := range factors {
		views = append(views, NewFactorView(f))
	}
	return views
}
