package patient

import "time"

// View is the wire representation of a patient. Age is derived from the
// birth date at serialization time.
type View struct {
	PatientCode    string    `json:"patient_code"`
	FullName       string    `json:"full_name"`
	BirthDate      string    `json:"birth_date"`
	Age            int       `json:"age"`
	Gender         *string   `json:"gender"`
	MaritalStatus  *string   `json:"marital_status"`
	Nationality    *string   `json:"nationality"`
	Profession     *string   `json:"profession"`
	EducationLevel *string   `json:"education_level"`
	ReferralReason *string   `json:"referral_reason"`
	ReferredBy     *string   `json:"referred_by"`
	RegisteredAt   time.Time `json:"registered_at"`
}

func NewView(p *Patient) View {
	return View{
		PatientCode:    p.PatientCode,
		FullName:       p.FullName,
		BirthDate:      p.BirthDate.Format("2006-01-02"),
		Age:            p.Age(time.Now()),
		Gender:         p.Gender,
		MaritalStatus:  p.MaritalStatus,
		Nationality:    p.Nationality,
		Profession:     p.Profession,
		EducationLevel: p.EducationLevel,
		ReferralReason: p.ReferralReason,
		ReferredBy:     p.ReferredBy,
		RegisteredAt:   p.CreatedAt,
	}
}

func NewViews(patients []*Patient) []View {
	views := make([]View, 0, len(patients))
	for _, p := range patients {
		views = append(views, NewView(p))
	}
	return views
}
