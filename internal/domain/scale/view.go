package scale

// OptionView is the wire representation of a response option.
type OptionView struct {
	ID        int64  `json:"id"`
	ScaleCode string `json:"scale_code"`
	Text      string `json:"text"`
	Score     int    `json:"score"`
}

func NewOptionView(o *ResponseOption) OptionView {
	return OptionView{
		ID:        o.ID,
		ScaleCode: o.ScaleCode,
		Text:      o.OptionText,
		Score:     o.ScoreValue,
	}
}

func NewOptionViews(options []*ResponseOption) []OptionView {
	views := make([]OptionView, 0, len(options))
	for _, o := range options {
		views = append(views, NewOptionView(o))
	}
	return views
}

// ScaleSummaryView carries the per-scale aggregate. The options key is only
// present when the caller asked for it via include=options.
type ScaleSummaryView struct {
	ScaleCode    string        `json:"scale_code"`
	OptionsCount int           `json:"options_count"`
	Options      *[]OptionView `json:"options,omitempty"`
}

func NewScaleSummaryView(s *ScaleSummary) ScaleSummaryView {
	view := ScaleSummaryView{
		ScaleCode:    s.ScaleCode,
		OptionsCount: s.OptionsCount,
	}
	if options, ok := s.Options.Value(); ok {
		views := NewOptionViews(options)
		view.Options = &views
	}
	return view
}

func NewScaleSummaryViews(summaries []*ScaleSummary) []ScaleSummaryView {
	views := make([]ScaleSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, NewScaleSummaryView(s))
	}
	return views
}
