package patient

import "time"

// Patient holds intake demographics. PatientCode is the 6-character public
// handle used in URLs and clinician-facing screens; the numeric id never
// leaves the database layer.
type Patient struct {
	ID             int64
	PatientCode    string
	FullName       string
	BirthDate      time.Time
	Gender         *string
	MaritalStatus  *string
	Nationality    *string
	Profession     *string
	EducationLevel *string
	ReferralReason *string
	ReferredBy     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Age reports full years completed at the given reference time.
func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
