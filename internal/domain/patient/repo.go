package patient

import "context"

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	FindByCode(ctx context.Context, patientCode string) (*Patient, error)
	Create(ctx context.Context, p *Patient) error
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, patientCode string) error
}
