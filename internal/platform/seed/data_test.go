package seed

import "testing"

func codeSet(rows []entityRow) map[string]bool {
	set := make(map[string]bool, len(rows))
	for _, r := range rows {
		set[r.Code] = true
	}
	return set
}

func TestCatalogCodesAreUnique(t *testing.T) {
	for name, rows := range map[string][]entityRow{
		"areas":      areaRows,
		"dimensions": dimensionRows,
		"factors":    factorRows,
	} {
		seen := make(map[string]bool)
		for _, r := range rows {
			if seen[r.Code] {
				t.Errorf("%s: duplicate code %q", name, r.Code)
			}
			seen[r.Code] = true
		}
	}

	seenScales := make(map[string]bool)
	for _, sc := range scaleRows {
		if seenScales[sc.Code] {
			t.Errorf("scales: duplicate code %q", sc.Code)
		}
		seenScales[sc.Code] = true

		scores := make(map[int]bool)
		for _, opt := range sc.Options {
			if scores[opt.Score] {
				t.Errorf("scale %s: duplicate score %d", sc.Code, opt.Score)
			}
			scores[opt.Score] = true
		}
	}

	seenQuestionnaires := make(map[string]bool)
	for _, q := range questionnaireRows {
		if seenQuestionnaires[q.Code] {
			t.Errorf("questionnaires: duplicate code %q", q.Code)
		}
		seenQuestionnaires[q.Code] = true

		identifiers := make(map[string]bool)
		for _, question := range q.Questions {
			if identifiers[question.Identifier] {
				t.Errorf("questionnaire %s: duplicate question identifier %q", q.Code, question.Identifier)
			}
			identifiers[question.Identifier] = true
		}
	}
}

func TestQuestionsReferenceSeededScales(t *testing.T) {
	scales := make(map[string]bool, len(scaleRows))
	for _, sc := range scaleRows {
		scales[sc.Code] = true
	}

	for _, q := range questionnaireRows {
		for _, question := range q.Questions {
			if !scales[question.ScaleCode] {
				t.Errorf("questionnaire %s question %s references unknown scale %q",
					q.Code, question.Identifier, question.ScaleCode)
			}
		}
	}
}

func TestLinksResolveToCatalogCodes(t *testing.T) {
	areas := codeSet(areaRows)
	dimensions := codeSet(dimensionRows)
	factors := codeSet(factorRows)
	questionnaires := make(map[string]bool, len(questionnaireRows))
	for _, q := range questionnaireRows {
		questionnaires[q.Code] = true
	}

	for _, link := range areaDimensionLinks {
		if !areas[link.Owner] {
			t.Errorf("area_dimension: unknown area %q", link.Owner)
		}
		for _, target := range link.Targets {
			if !dimensions[target] {
				t.Errorf("area_dimension %s: unknown dimension %q", link.Owner, target)
			}
		}
	}

	for _, link := range dimensionFactorLinks {
		if !dimensions[link.Owner] {
			t.Errorf("dimension_factor: unknown dimension %q", link.Owner)
		}
		for _, target := range link.Targets {
			if !factors[target] {
				t.Errorf("dimension_factor %s: unknown factor %q", link.Owner, target)
			}
		}
	}

	for _, link := range areaQuestionnaireLinks {
		if !areas[link.Owner] {
			t.Errorf("area_questionnaire: unknown area %q", link.Owner)
		}
		for _, target := range link.Targets {
			if !questionnaires[target] {
				t.Errorf("area_questionnaire %s: unknown questionnaire %q", link.Owner, target)
			}
		}
	}
}
