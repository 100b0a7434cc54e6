package patient

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/psymetric/psymetric/internal/platform/validation"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrDuplicateCode   = errors.New("patient code already exists")
)

// codeAlphabet omits easily confused characters (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeLength = 6

const maxCodeAttempts = 5

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) FindByCode(ctx context.Context, patientCode string) (*Patient, error) {
	return s.patients.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(patientCode)))
}

type IntakeRequest struct {
	FullName       string  `json:"full_name" validate:"required,max=255"`
	BirthDate      string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender         *string `json:"gender" validate:"omitempty,max=50"`
	MaritalStatus  *string `json:"marital_status" validate:"omitempty,max=100"`
	Nationality    *string `json:"nationality" validate:"omitempty,max=100"`
	Profession     *string `json:"profession" validate:"omitempty,max=150"`
	EducationLevel *string `json:"education_level" validate:"omitempty,max=150"`
	ReferralReason *string `json:"referral_reason"`
	ReferredBy     *string `json:"referred_by" validate:"omitempty,max=255"`
}

// Intake registers a new patient under a freshly generated code, retrying on
// the unlikely code collision.
func (s *Service) Intake(ctx context.Context, req IntakeRequest) (*Patient, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, validation.NewError("birth_date", "The birth_date does not match the format Y-m-d.")
	}
	if birthDate.After(time.Now()) {
		return nil, validation.NewError("birth_date", "The birth_date must be a date before today.")
	}

	p := &Patient{
		FullName:       req.FullName,
		BirthDate:      birthDate,
		Gender:         req.Gender,
		MaritalStatus:  req.MaritalStatus,
		Nationality:    req.Nationality,
		Profession:     req.Profession,
		EducationLevel: req.EducationLevel,
		ReferralReason: req.ReferralReason,
		ReferredBy:     req.ReferredBy,
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		p.PatientCode = code
		err = s.patients.Create(ctx, p)
		if errors.Is(err, ErrDuplicateCode) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("could not allocate a unique patient code after %d attempts", maxCodeAttempts)
}

type UpdateRequest struct {
	FullName       *string `json:"full_name" validate:"omitempty,max=255"`
	BirthDate      *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender         *string `json:"gender" validate:"omitempty,max=50"`
	MaritalStatus  *string `json:"marital_status" validate:"omitempty,max=100"`
	Nationality    *string `json:"nationality" validate:"omitempty,max=100"`
	Profession     *string `json:"profession" validate:"omitempty,max=150"`
	EducationLevel *string `json:"education_level" validate:"omitempty,max=150"`
	ReferralReason *string `json:"referral_reason"`
	ReferredBy     *string `json:"referred_by" validate:"omitempty,max=255"`
}

// Update applies a partial clinician edit. The patient code itself is
// immutable.
func (s *Service) Update(ctx context.Context, patientCode string, req UpdateRequest) (*Patient, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	p, err := s.FindByCode(ctx, patientCode)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, validation.NewError("birth_date", "The birth_date does not match the format Y-m-d.")
		}
		p.BirthDate = birthDate
	}
	if req.Gender != nil {
		p.Gender = req.Gender
	}
	if req.MaritalStatus != nil {
		p.MaritalStatus = req.MaritalStatus
	}
	if req.Nationality != nil {
		p.Nationality = req.Nationality
	}
	if req.Profession != nil {
		p.Profession = req.Profession
	}
	if req.EducationLevel != nil {
		p.EducationLevel = req.EducationLevel
	}
	if req.ReferralReason != nil {
		p.ReferralReason = req.ReferralReason
	}
	if req.ReferredBy != nil {
		p.ReferredBy = req.ReferredBy
	}

	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a patient permanently, along with any assessment sessions
// recorded for them.
func (s *Service) Delete(ctx context.Context, patientCode string) error {
	return s.patients.Delete(ctx, strings.ToUpper(strings.TrimSpace(patientCode)))
}

func generateCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate patient code: %w", err)
	}
	code := make([]byte, codeLength)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(code), nil
}
